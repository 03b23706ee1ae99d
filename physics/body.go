package physics

import "github.com/jakecoffman/cp"

// Body is a moving box advanced by gravity and directional input and
// resolved against static terrain one axis at a time.
//
// World +Y points up (the terrain builder flips tile rows), while
// Velocity.Y measures fall speed: gravity increases it and a jump sets it
// negative. The vertical displacement of a tick is therefore -Velocity.Y*dt.
// Horizontal movement is applied as a direct displacement and never
// integrated.
type Body struct {
	Position cp.Vector
	Previous cp.Vector
	Velocity cp.Vector
	Grounded bool

	// Ground and Wall hold the index of the terrain collider that decided
	// the last vertical and horizontal contact, or -1.
	Ground int
	Wall   int

	Collider Collider

	params     Params
	resolution Resolution
	events     EventQueue
}

func NewBody(pos cp.Vector, params Params) *Body {
	return &Body{
		Position: pos,
		Previous: pos,
		Ground:   -1,
		Wall:     -1,
		Collider: NewCollider(pos, params.Size),
		params:   params,
	}
}

func (b *Body) Params() Params {
	return b.params
}

// SetParams swaps the tuning values; the probe is resized immediately.
func (b *Body) SetParams(p Params) {
	b.params = p
	b.Collider.Size = p.Size
}

func (b *Body) Resolution() Resolution {
	return b.resolution
}

func (b *Body) SetResolution(r Resolution) {
	b.resolution = r
}

// Events returns the contact event queue. The host drains it once per frame.
func (b *Body) Events() *EventQueue {
	return &b.events
}

// Teleport moves the body without resolving collisions and clears its
// motion and contact state.
func (b *Body) Teleport(pos cp.Vector) {
	b.Position = pos
	b.Previous = pos
	b.Velocity = cp.Vector{}
	b.Grounded = false
	b.Ground = -1
	b.Wall = -1
	b.Collider.Center = pos
}

// Interpolated blends the previous and current positions for rendering
// between fixed steps.
func (b *Body) Interpolated(alpha float64) cp.Vector {
	return b.Previous.Lerp(b.Position, alpha)
}

// Update advances the body by dt seconds. terrain is only read.
func (b *Body) Update(dt float64, keys Keys, terrain []Collider) {
	b.Previous = b.Position
	wasGrounded := b.Grounded
	prevWall := b.Wall

	var move cp.Vector
	step := b.params.Speed * dt
	if keys.Has(KeyLeft) {
		move.X -= step
	}
	if keys.Has(KeyRight) {
		move.X += step
	}
	if keys.Has(KeyJump) && b.Grounded {
		b.Velocity.Y = -b.params.JumpImpulse
	}

	b.Velocity.Y += b.params.Gravity * dt
	move.Y = -b.Velocity.Y * dt

	// Vertical first; the horizontal probe uses the resolved height.
	b.Collider.Center = cp.Vector{X: b.Position.X, Y: b.Position.Y + move.Y}
	b.Ground = sweep(b.Collider, terrain, b.resolution)
	if b.Ground >= 0 {
		b.Velocity.Y = 0
		b.Grounded = true
	} else {
		b.Grounded = false
		b.Position.Y += move.Y
	}

	b.Wall = -1
	if move.X != 0 {
		b.Collider.Center = cp.Vector{X: b.Position.X + move.X, Y: b.Position.Y}
		b.Wall = sweep(b.Collider, terrain, b.resolution)
		if b.Wall < 0 {
			b.Position.X += move.X
		}
	}

	b.Collider.Center = b.Position

	switch {
	case b.Grounded && !wasGrounded:
		b.events.Push(Event{Kind: EventGrounded, Collider: b.Ground})
	case !b.Grounded && wasGrounded:
		b.events.Push(Event{Kind: EventAirborne, Collider: -1})
	}
	if b.Wall >= 0 && prevWall < 0 {
		b.events.Push(Event{Kind: EventBlocked, Collider: b.Wall})
	}
}
