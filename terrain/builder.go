// Package terrain turns an authored tile map into the static world: a
// composited raster for rendering, one collider per placed tile and the
// solidity grid.
package terrain

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/grid"
	"github.com/milk9111/platformer/physics"
)

var (
	ErrNoTileset         = errors.New("terrain: no tileset image")
	ErrEmptyTileset      = errors.New("terrain: tileset is narrower than one tile")
	ErrTileOutOfTileset  = errors.New("terrain: tile id outside the tileset")
	ErrInvalidWorldWidth = errors.New("terrain: target world width must not be negative")
)

// BlitMode decides how tileset pixels are copied into the composite.
type BlitMode int

const (
	// BlitOpaqueOnly copies only fully opaque source pixels, so lower layers
	// show through transparent parts of upper tiles.
	BlitOpaqueOnly BlitMode = iota
	// BlitOverwrite copies every source pixel.
	BlitOverwrite
)

func (b BlitMode) String() string {
	switch b {
	case BlitOpaqueOnly:
		return "opaque_only"
	case BlitOverwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("BlitMode(%d)", int(b))
	}
}

func ParseBlitMode(s string) (BlitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "opaque_only", "opaque":
		return BlitOpaqueOnly, nil
	case "overwrite":
		return BlitOverwrite, nil
	default:
		return 0, fmt.Errorf("terrain: unknown blit mode %q", s)
	}
}

// ColliderPolicy decides which placements produce colliders.
type ColliderPolicy int

const (
	// CollideAllTiles gives every placed tile a collider, whatever its
	// layer's collider flag says.
	CollideAllTiles ColliderPolicy = iota
	// CollideFlaggedLayers only gives colliders to tiles on layers whose
	// collider flag is set.
	CollideFlaggedLayers
)

func (p ColliderPolicy) String() string {
	switch p {
	case CollideAllTiles:
		return "all"
	case CollideFlaggedLayers:
		return "flagged"
	default:
		return fmt.Sprintf("ColliderPolicy(%d)", int(p))
	}
}

func ParseColliderPolicy(s string) (ColliderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return CollideAllTiles, nil
	case "flagged":
		return CollideFlaggedLayers, nil
	default:
		return 0, fmt.Errorf("terrain: unknown collider policy %q", s)
	}
}

type Options struct {
	// TargetWorldWidth is the width in world units the whole map spans.
	// Zero keeps one world unit per tileset pixel.
	TargetWorldWidth float64
	Blit             BlitMode
	Colliders        ColliderPolicy
}

// Terrain is the static world built from a tile map.
type Terrain struct {
	Composite *image.RGBA
	Colliders []physics.Collider
	Solid     *grid.SolidGrid

	Width    int // cells
	Height   int // cells
	TileSize int // tileset pixels per cell
	Scale    float64
}

// Build composites the map and generates its colliders. Layers are
// processed last to first so earlier layers end up on top. Any error
// aborts the build; no partial terrain is returned.
func Build(m *TileMap, tileset image.Image, opts Options) (*Terrain, error) {
	if m == nil {
		return nil, errors.New("terrain: nil tile map")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if opts.TargetWorldWidth < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorldWidth, opts.TargetWorldWidth)
	}
	if tileset == nil {
		return nil, ErrNoTileset
	}

	ts := int(m.TileSize)
	bounds := tileset.Bounds()
	columns := bounds.Dx() / ts
	rows := bounds.Dy() / ts
	if columns == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: %dx%d image, %d px tiles", ErrEmptyTileset, bounds.Dx(), bounds.Dy(), ts)
	}

	t := &Terrain{
		Composite: image.NewRGBA(image.Rect(0, 0, int(m.MapWidth)*ts, int(m.MapHeight)*ts)),
		Colliders: make([]physics.Collider, 0, m.TileCount()),
		Solid:     grid.New(int(m.MapWidth), int(m.MapHeight)),
		Width:     int(m.MapWidth),
		Height:    int(m.MapHeight),
		TileSize:  ts,
		Scale:     1,
	}
	if opts.TargetWorldWidth > 0 {
		t.Scale = opts.TargetWorldWidth / (float64(m.MapWidth) * float64(m.TileSize))
	}

	for li := len(m.Layers) - 1; li >= 0; li-- {
		layer := m.Layers[li]
		collide := opts.Colliders == CollideAllTiles || layer.Collider
		for _, tile := range layer.Tiles {
			id, err := tile.Index()
			if err != nil {
				return nil, fmt.Errorf("terrain: layer %q: %w", layer.Name, err)
			}
			col := int(id) % columns
			row := int(id) / columns
			if row >= rows {
				return nil, fmt.Errorf("%w: id %d in a %dx%d tileset (layer %q)", ErrTileOutOfTileset, id, columns, rows, layer.Name)
			}

			src := image.Pt(bounds.Min.X+col*ts, bounds.Min.Y+row*ts)
			dst := image.Rect(int(tile.X)*ts, int(tile.Y)*ts, int(tile.X+1)*ts, int(tile.Y+1)*ts)
			blit(t.Composite, dst, tileset, src, opts.Blit)

			if !collide {
				continue
			}
			t.Colliders = append(t.Colliders, t.CellCollider(int(tile.X), int(tile.Y)))
			t.Solid.Set(int(tile.X), int(tile.Y), true)
		}
	}

	log.Printf("terrain: built %d colliders from %d tiles in %d layers (%dx%d, scale %.3f)",
		len(t.Colliders), m.TileCount(), len(m.Layers), t.Width, t.Height, t.Scale)

	return t, nil
}

func blit(dst *image.RGBA, r image.Rectangle, src image.Image, sp image.Point, mode BlitMode) {
	if mode == BlitOverwrite {
		draw.Draw(dst, r, src, sp, draw.Src)
		return
	}
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			c := color.NRGBAModel.Convert(src.At(sp.X+x, sp.Y+y)).(color.NRGBA)
			if c.A == 0xff {
				dst.Set(r.Min.X+x, r.Min.Y+y, c)
			}
		}
	}
}

// CellSize is the world size of one cell.
func (t *Terrain) CellSize() float64 {
	return float64(t.TileSize) * t.Scale
}

// WorldSize is the world extent of the whole map.
func (t *Terrain) WorldSize() cp.Vector {
	return cp.Vector{
		X: float64(t.Width) * t.CellSize(),
		Y: float64(t.Height) * t.CellSize(),
	}
}

// CellCenter returns the world center of cell (x, y). The map is centered
// on the origin and both axes run opposite to tile columns and rows.
func (t *Terrain) CellCenter(x, y int) cp.Vector {
	ts := float64(t.TileSize)
	sf := t.Scale
	mw := float64(t.Width)
	mh := float64(t.Height)
	return cp.Vector{
		X: -(float64(x)*ts*sf - (mw*ts*sf)/2) - ts*sf/2,
		Y: -(float64(y)*ts*sf - (mh*ts*sf)/2) - ts*sf/2,
	}
}

// CellCollider returns the square collider covering cell (x, y).
func (t *Terrain) CellCollider(x, y int) physics.Collider {
	s := float64(t.TileSize) * t.Scale
	return physics.NewCollider(t.CellCenter(x, y), cp.Vector{X: s, Y: s})
}

// CellAt returns the cell containing world point p.
func (t *Terrain) CellAt(p cp.Vector) (x, y int, ok bool) {
	s := t.CellSize()
	if s <= 0 {
		return 0, 0, false
	}
	half := t.WorldSize().Mult(0.5)
	fx := (half.X - p.X) / s
	fy := (half.Y - p.Y) / s
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	x, y = int(fx), int(fy)
	if x >= t.Width || y >= t.Height {
		return 0, 0, false
	}
	return x, y, true
}
