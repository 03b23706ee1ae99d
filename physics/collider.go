package physics

import "github.com/jakecoffman/cp"

// Collider is an axis-aligned box described by its center and full size.
type Collider struct {
	Center cp.Vector
	Size   cp.Vector
}

func NewCollider(center, size cp.Vector) Collider {
	return Collider{Center: center, Size: size}
}

// Valid reports whether both extents are positive.
func (c Collider) Valid() bool {
	return c.Size.X > 0 && c.Size.Y > 0
}

// TopLeft returns the corner with the smallest coordinates.
func (c Collider) TopLeft() cp.Vector {
	return c.Center.Sub(c.Size.Mult(0.5))
}

// Bounds returns the box as a Chipmunk bounding box.
func (c Collider) Bounds() cp.BB {
	tl := c.TopLeft()
	return cp.BB{L: tl.X, B: tl.Y, R: tl.X + c.Size.X, T: tl.Y + c.Size.Y}
}

// Overlaps reports whether the two boxes overlap on both axes. Intervals
// are closed, so boxes that only share an edge overlap.
func (c Collider) Overlaps(other Collider) bool {
	return Overlaps(c, other)
}

func Overlaps(a, b Collider) bool {
	atl := a.TopLeft()
	btl := b.TopLeft()

	collisionX := atl.X+a.Size.X >= btl.X && btl.X+b.Size.X >= atl.X
	collisionY := atl.Y+a.Size.Y >= btl.Y && btl.Y+b.Size.Y >= atl.Y
	return collisionX && collisionY
}
