package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

// Camera maps world coordinates to screen pixels. The world is centered on
// the origin with +Y up and +X toward the left edge of the tile map, so
// screen x grows as world x shrinks and screen y grows as world y shrinks.
type Camera struct {
	PosX float64
	PosY float64

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1). higher -> faster follow. e.g. 0.15
	smooth float64
	// world extent (0 means unbounded), centered on the origin
	worldW float64
	worldH float64
}

// NewCamera creates a camera with the given logical screen size and zoom.
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{screenW: screenW, screenH: screenH, zoom: zoom, smooth: 0.15}
}

// SetZoom updates the camera zoom.
func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = z
}

// Zoom returns the current camera zoom.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetScreenSize updates the logical screen size used by the camera.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

// SetWorldBounds sets the world size used to clamp the camera.
func (c *Camera) SetWorldBounds(w, h float64) {
	c.worldW = w
	c.worldH = h
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// Update moves the camera toward the target world coordinate.
func (c *Camera) Update(target cp.Vector) {
	if c.smooth <= 0 {
		c.PosX = target.X
		c.PosY = target.Y
	} else {
		c.PosX = common.Lerp(c.PosX, target.X, c.smooth)
		c.PosY = common.Lerp(c.PosY, target.Y, c.smooth)
	}
	c.constrain()
}

// SnapTo immediately centers the camera on the given world coordinates.
func (c *Camera) SnapTo(target cp.Vector) {
	c.PosX = target.X
	c.PosY = target.Y
	c.constrain()
}

func (c *Camera) constrain() {
	// snap position to 1/zoom grid to align source texels to integer screen pixels
	c.PosX = math.Round(c.PosX*c.zoom) / c.zoom
	c.PosY = math.Round(c.PosY*c.zoom) / c.zoom

	halfW := float64(c.screenW) / c.zoom / 2
	halfH := float64(c.screenH) / c.zoom / 2
	if c.worldW > 0 {
		c.PosX = clampAxis(c.PosX, c.worldW/2, halfW)
	}
	if c.worldH > 0 {
		c.PosY = clampAxis(c.PosY, c.worldH/2, halfH)
	}
}

// clampAxis keeps a view of half-size half inside [-extent, extent], or
// centers it when the world is smaller than the view.
func clampAxis(v, extent, half float64) float64 {
	if half >= extent {
		return 0
	}
	return common.Clamp(v, -extent+half, extent-half)
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(p cp.Vector) (float64, float64) {
	sx := (c.PosX-p.X)*c.zoom + float64(c.screenW)/2
	sy := (c.PosY-p.Y)*c.zoom + float64(c.screenH)/2
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Camera) ScreenToWorld(sx, sy float64) cp.Vector {
	return cp.Vector{
		X: c.PosX - (sx-float64(c.screenW)/2)/c.zoom,
		Y: c.PosY - (sy-float64(c.screenH)/2)/c.zoom,
	}
}

// ScreenRect returns the on-screen rectangle covered by a world box given
// by its center and size.
func (c *Camera) ScreenRect(center, size cp.Vector) common.Rect {
	// the world corner with the largest x and y lands top-left on screen
	x, y := c.WorldToScreen(center.Add(size.Mult(0.5)))
	return common.Rect{X: x, Y: y, Width: size.X * c.zoom, Height: size.Y * c.zoom}
}

// View returns the world area currently on screen.
func (c *Camera) View() cp.BB {
	halfW := float64(c.screenW) / c.zoom / 2
	halfH := float64(c.screenH) / c.zoom / 2
	return cp.NewBBForExtents(cp.Vector{X: c.PosX, Y: c.PosY}, halfW, halfH)
}

// Visible reports whether a world box overlaps the view.
func (c *Camera) Visible(bb cp.BB) bool {
	return c.View().Intersects(bb)
}
