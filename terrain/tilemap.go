package terrain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

var (
	ErrInvalidDimensions = errors.New("terrain: map dimensions must be positive")
	ErrTileOutOfBounds   = errors.New("terrain: tile outside the map")
	ErrInvalidTileID     = errors.New("terrain: tile id is not an unsigned integer")
	ErrMapTooLarge       = errors.New("terrain: map is too large")
)

// Limits on what Validate accepts. The composite is allocated in one piece,
// so the pixel count is bounded as well as the cell count.
const (
	MaxCells           = 1 << 20
	MaxTileSize        = 1024
	MaxCompositePixels = 1 << 26
)

// TileMap is an authored tile map in the Sprite Fusion JSON layout.
// Layers are listed top-most first.
type TileMap struct {
	MapWidth  uint32  `json:"mapWidth"`
	MapHeight uint32  `json:"mapHeight"`
	TileSize  uint32  `json:"tileSize"`
	Layers    []Layer `json:"layers"`
}

type Layer struct {
	Name string `json:"name"`
	// Collider marks the layer as a collision layer. The builder only
	// honours it with CollideFlaggedLayers.
	Collider bool   `json:"collider"`
	Tiles    []Tile `json:"tiles"`
}

// Tile places tileset entry ID at cell (X, Y).
type Tile struct {
	ID string `json:"id"`
	X  uint32 `json:"x"`
	Y  uint32 `json:"y"`
}

// Index parses the decimal tileset index.
func (t Tile) Index() (uint32, error) {
	v, err := strconv.ParseUint(t.ID, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTileID, t.ID)
	}
	return uint32(v), nil
}

// Load reads and validates a tile map from a JSON file.
func Load(path string) (*TileMap, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: read %s: %w", path, err)
	}
	return Parse(b)
}

// LoadFS reads and validates a tile map from fsys.
func LoadFS(fsys fs.FS, path string) (*TileMap, error) {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("terrain: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes and validates tile map JSON.
func Parse(b []byte) (*TileMap, error) {
	var m TileMap
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("terrain: unmarshal tile map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the map dimensions and every tile placement.
func (m *TileMap) Validate() error {
	if m.MapWidth == 0 || m.MapHeight == 0 || m.TileSize == 0 {
		return fmt.Errorf("%w: %dx%d cells of %d", ErrInvalidDimensions, m.MapWidth, m.MapHeight, m.TileSize)
	}
	cells := uint64(m.MapWidth) * uint64(m.MapHeight)
	if cells > MaxCells || m.TileSize > MaxTileSize ||
		cells*uint64(m.TileSize)*uint64(m.TileSize) > MaxCompositePixels {
		return fmt.Errorf("%w: %dx%d cells of %d", ErrMapTooLarge, m.MapWidth, m.MapHeight, m.TileSize)
	}
	for li, layer := range m.Layers {
		for _, tile := range layer.Tiles {
			if tile.X >= m.MapWidth || tile.Y >= m.MapHeight {
				return fmt.Errorf("%w: layer %d (%q) tile at (%d,%d) in %dx%d map",
					ErrTileOutOfBounds, li, layer.Name, tile.X, tile.Y, m.MapWidth, m.MapHeight)
			}
			if _, err := tile.Index(); err != nil {
				return fmt.Errorf("layer %d (%q) tile at (%d,%d): %w", li, layer.Name, tile.X, tile.Y, err)
			}
		}
	}
	return nil
}

// TileCount returns the number of placements across all layers.
func (m *TileMap) TileCount() int {
	n := 0
	for _, layer := range m.Layers {
		n += len(layer.Tiles)
	}
	return n
}
