package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/system"
	"github.com/milk9111/platformer/terrain"
	"golang.org/x/image/colornames"
)

// Renderer owns the GPU copies of the terrain composite and the solidity
// grid overlay. Both are re-uploaded only after the terrain changes.
type Renderer struct {
	ShowGrid      bool
	ShowColliders bool

	terrain   *terrain.Terrain
	composite *ebiten.Image
	grid      *ebiten.Image
	gridDirty bool
}

func NewRenderer() *Renderer {
	return &Renderer{ShowColliders: true}
}

// Invalidate drops both uploads.
func (r *Renderer) Invalidate() {
	r.terrain = nil
}

// InvalidateGrid re-uploads the grid overlay on the next draw.
func (r *Renderer) InvalidateGrid() {
	r.gridDirty = true
}

func (r *Renderer) sync(t *terrain.Terrain) {
	if r.terrain != t {
		if r.composite != nil {
			r.composite.Deallocate()
		}
		r.composite = ebiten.NewImageFromImage(t.Composite)
		r.terrain = t
		r.gridDirty = true
	}
	if !r.gridDirty {
		return
	}
	if r.grid == nil || r.grid.Bounds().Dx() != t.Width || r.grid.Bounds().Dy() != t.Height {
		if r.grid != nil {
			r.grid.Deallocate()
		}
		r.grid = ebiten.NewImage(t.Width, t.Height)
	}
	r.grid.WritePixels(gridPixels(t))
	r.gridDirty = false
}

// gridPixels unpacks the packed solidity words into one RGBA pixel per cell.
func gridPixels(t *terrain.Terrain) []byte {
	g := t.Solid
	words := g.Words()
	pix := make([]byte, g.Len()*4)
	for i := range g.Len() {
		if words[i/32]>>(uint(i)%32)&1 == 0 {
			continue
		}
		x, y, _ := g.Cell(i)
		o := (y*t.Width + x) * 4
		// premultiplied translucent red
		pix[o], pix[o+3] = 0x60, 0x60
	}
	return pix
}

func (r *Renderer) Draw(screen *ebiten.Image, w *system.World, cam *obj.Camera) {
	t := w.Terrain
	screen.Fill(w.Spec.Camera.Background.Or(colornames.Midnightblue))
	r.sync(t)

	// the composite's top-left pixel is the world corner (+W/2, +H/2)
	ws := t.WorldSize()
	ox, oy := cam.WorldToScreen(ws.Mult(0.5))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(t.Scale*cam.Zoom(), t.Scale*cam.Zoom())
	op.GeoM.Translate(ox, oy)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(r.composite, op)

	if r.ShowGrid {
		op := &ebiten.DrawImageOptions{}
		cs := t.CellSize() * cam.Zoom()
		op.GeoM.Scale(cs, cs)
		op.GeoM.Translate(ox, oy)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(r.grid, op)
	}

	if r.ShowColliders {
		for _, c := range t.Colliders {
			if !cam.Visible(c.Bounds()) {
				continue
			}
			rect := cam.ScreenRect(c.Center, c.Size)
			vector.StrokeRect(screen, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), 1, colornames.Lime, false)
		}
	}

	b := w.Body
	bodyColor := w.Player.Color.Or(colornames.Gold)
	rect := cam.ScreenRect(b.Interpolated(w.Stepper.Alpha()), b.Collider.Size)
	vector.FillRect(screen, float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height), bodyColor, false)
	if b.Grounded {
		vector.StrokeLine(screen, float32(rect.X), float32(rect.Y+rect.Height), float32(rect.X+rect.Width), float32(rect.Y+rect.Height), 2, colornames.White, false)
	}
}
