package obj

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWorldToScreenRoundTrip(t *testing.T) {
	c := NewCamera(320, 240, 2)
	c.SetSmooth(0)
	c.SnapTo(cp.Vector{X: 10, Y: -5})

	sx, sy := c.WorldToScreen(cp.Vector{X: 10, Y: -5})
	if !near(sx, 160) || !near(sy, 120) {
		t.Fatalf("camera center maps to %v,%v, want screen center", sx, sy)
	}

	// +X world is toward the left of the screen, +Y toward the top
	sx, sy = c.WorldToScreen(cp.Vector{X: 20, Y: 5})
	if !near(sx, 140) || !near(sy, 100) {
		t.Fatalf("offset point maps to %v,%v, want 140,100", sx, sy)
	}

	p := c.ScreenToWorld(37, 211)
	bx, by := c.WorldToScreen(p)
	if !near(bx, 37) || !near(by, 211) {
		t.Fatalf("round trip = %v,%v", bx, by)
	}
}

func TestScreenRect(t *testing.T) {
	c := NewCamera(100, 100, 1)
	c.SnapTo(cp.Vector{})
	r := c.ScreenRect(cp.Vector{X: 8, Y: 0}, cp.Vector{X: 16, Y: 16})
	// world box spans x 0..16, y -8..8; its x=16,y=8 corner is top-left
	if !near(r.X, 34) || !near(r.Y, 42) || r.Width != 16 || r.Height != 16 {
		t.Fatalf("screen rect = %+v", r)
	}
}

func TestVisible(t *testing.T) {
	c := NewCamera(100, 100, 2)
	c.SnapTo(cp.Vector{})

	view := c.View()
	if view.L != -25 || view.R != 25 || view.B != -25 || view.T != 25 {
		t.Fatalf("view = %+v, want +-25 at zoom 2", view)
	}
	near := cp.NewBBForExtents(cp.Vector{X: 8}, 8, 8)
	if !c.Visible(near) {
		t.Fatalf("box near the center should be visible")
	}
	edge := cp.NewBBForExtents(cp.Vector{X: 33}, 8, 8)
	if !c.Visible(edge) {
		t.Fatalf("box touching the view edge should be visible")
	}
	far := cp.NewBBForExtents(cp.Vector{X: 500}, 8, 8)
	if c.Visible(far) {
		t.Fatalf("box far off screen should be culled")
	}
}

func TestSetScreenSize(t *testing.T) {
	c := NewCamera(100, 100, 1)
	c.SetSmooth(0)
	c.SetWorldBounds(400, 400)
	c.SetScreenSize(300, 200)
	c.SetScreenSize(0, 50)

	sx, sy := c.WorldToScreen(cp.Vector{})
	if !near(sx, 150) || !near(sy, 100) {
		t.Fatalf("camera center maps to %v,%v, want 150,100", sx, sy)
	}
	c.Update(cp.Vector{X: 1000, Y: -1000})
	if c.PosX != 50 || c.PosY != -100 {
		t.Fatalf("clamp with a 300x200 view = %v,%v, want 50,-100", c.PosX, c.PosY)
	}
}

func TestCameraClamp(t *testing.T) {
	c := NewCamera(100, 100, 1)
	c.SetSmooth(0)
	c.SetWorldBounds(400, 60)

	c.Update(cp.Vector{X: 1000, Y: 1000})
	if c.PosX != 150 {
		t.Fatalf("x clamped to %v, want 150", c.PosX)
	}
	if c.PosY != 0 {
		t.Fatalf("world shorter than the view should center, got %v", c.PosY)
	}
	c.Update(cp.Vector{X: -1000})
	if c.PosX != -150 {
		t.Fatalf("x clamped to %v, want -150", c.PosX)
	}
}

func TestCameraSmoothing(t *testing.T) {
	c := NewCamera(100, 100, 1)
	c.SetSmooth(0.5)
	c.Update(cp.Vector{X: 40, Y: -20})
	if c.PosX != 20 || c.PosY != -10 {
		t.Fatalf("half-way follow = %v,%v", c.PosX, c.PosY)
	}
	c.SetZoom(-1)
	if c.Zoom() != 1 {
		t.Fatalf("non-positive zoom must be ignored")
	}
}
