package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func testParams() Params {
	return Params{
		Size:        cp.Vector{X: 10, Y: 10},
		Speed:       10,
		JumpImpulse: 30,
		Gravity:     10,
	}
}

func TestBodyFreeFall(t *testing.T) {
	b := NewBody(cp.Vector{X: 0, Y: 100}, testParams())

	b.Update(0.5, 0, nil)

	approxEqual(t, b.Velocity.Y, 5, 1e-12, "velocity.y")
	approxEqual(t, b.Position.Y, 97.5, 1e-12, "position.y")
	approxEqual(t, b.Position.X, 0, 1e-12, "position.x")
	if b.Grounded {
		t.Fatalf("grounded = true, want false")
	}
	if b.Collider.Center != b.Position {
		t.Fatalf("collider center %+v not synced to position %+v", b.Collider.Center, b.Position)
	}

	b.Update(0.5, 0, nil)
	approxEqual(t, b.Velocity.Y, 10, 1e-12, "velocity.y after second tick")
	approxEqual(t, b.Position.Y, 92.5, 1e-12, "position.y after second tick")
}

func TestBodyLandsOnColliderBelow(t *testing.T) {
	floor := []Collider{box(0, 0, 10, 10)}
	b := NewBody(cp.Vector{X: 0, Y: 10.5}, testParams())

	b.Update(0.5, 0, floor)

	approxEqual(t, b.Velocity.Y, 0, 0, "velocity.y")
	approxEqual(t, b.Position.Y, 10.5, 0, "position.y")
	if !b.Grounded {
		t.Fatalf("grounded = false, want true")
	}
	if b.Ground != 0 {
		t.Fatalf("ground = %d, want 0", b.Ground)
	}
}

func TestBodyJumpGating(t *testing.T) {
	t.Run("airborne_jump_ignored", func(t *testing.T) {
		b := NewBody(cp.Vector{X: 0, Y: 100}, testParams())
		b.Update(0.5, KeyJump, nil)
		approxEqual(t, b.Velocity.Y, 5, 1e-12, "velocity.y")
	})

	t.Run("grounded_jump_applies_impulse", func(t *testing.T) {
		floor := []Collider{box(0, 0, 10, 10)}
		b := NewBody(cp.Vector{X: 0, Y: 10.5}, testParams())
		b.Update(0.5, 0, floor)
		if !b.Grounded {
			t.Fatalf("setup: expected grounded")
		}

		b.Update(0.5, KeyJump, floor)

		// -30 impulse plus 10*0.5 gravity
		approxEqual(t, b.Velocity.Y, -25, 1e-12, "velocity.y")
		approxEqual(t, b.Position.Y, 10.5+12.5, 1e-12, "position.y")
		if b.Grounded {
			t.Fatalf("grounded = true after leaving the floor")
		}
	})
}

func TestBodyHorizontal(t *testing.T) {
	p := testParams()
	p.Gravity = 0

	cases := []struct {
		name    string
		keys    Keys
		terrain []Collider
		wantX   float64
		wantHit int
	}{
		{"right_free", KeyRight, nil, 10, -1},
		{"left_free", KeyLeft, nil, -10, -1},
		{"both_cancel", KeyLeft | KeyRight, nil, 0, -1},
		// probe right edge lands exactly on the wall's left edge
		{"right_touching_wall", KeyRight, []Collider{box(20, 0, 10, 10)}, 0, 0},
		{"left_into_wall", KeyLeft, []Collider{box(-12, 0, 10, 10)}, 0, 0},
		{"wall_out_of_reach", KeyRight, []Collider{box(30, 0, 10, 10)}, 10, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBody(cp.Vector{}, p)
			b.Update(1, c.keys, c.terrain)
			approxEqual(t, b.Position.X, c.wantX, 1e-12, "position.x")
			if b.Wall != c.wantHit {
				t.Fatalf("wall = %d, want %d", b.Wall, c.wantHit)
			}
		})
	}
}

func TestBodyAxesResolveIndependently(t *testing.T) {
	// Falling into the floor while walking right: the vertical move is
	// rejected but the horizontal move still happens.
	floor := []Collider{box(0, 0, 100, 10)}
	b := NewBody(cp.Vector{X: 0, Y: 10.5}, testParams())

	b.Update(0.5, KeyRight, floor)

	approxEqual(t, b.Position.Y, 10.5, 0, "position.y")
	approxEqual(t, b.Position.X, 5, 1e-12, "position.x")
	if !b.Grounded {
		t.Fatalf("grounded = false, want true")
	}
}

func TestBodyResolutionPolicy(t *testing.T) {
	floor := []Collider{box(-2, 0, 10, 10), box(2, 0, 10, 10), box(100, 0, 10, 10)}

	cases := []struct {
		name       string
		resolution Resolution
		wantGround int
	}{
		{"last_hit", ResolveLastHit, 1},
		{"first_hit", ResolveFirstHit, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBody(cp.Vector{X: 0, Y: 10.5}, testParams())
			b.SetResolution(c.resolution)
			b.Update(0.5, 0, floor)
			if !b.Grounded {
				t.Fatalf("grounded = false, want true")
			}
			if b.Ground != c.wantGround {
				t.Fatalf("ground = %d, want %d", b.Ground, c.wantGround)
			}
		})
	}
}

func TestBodyEvents(t *testing.T) {
	floor := []Collider{box(0, 0, 10, 10)}
	p := testParams()
	b := NewBody(cp.Vector{X: 0, Y: 10.5}, p)

	b.Update(0.5, 0, floor)
	evts := b.Events().Drain()
	if len(evts) != 1 || evts[0].Kind != EventGrounded || evts[0].Collider != 0 {
		t.Fatalf("expected one grounded event, got %+v", evts)
	}

	// staying on the floor does not repeat the event
	b.Update(0.5, 0, floor)
	if n := b.Events().Len(); n != 0 {
		t.Fatalf("expected no events while resting, got %d", n)
	}

	// Walk right 5 units per tick. The vertical probe still touches the
	// floor edge at x=10 and misses it at x=15.
	for i := 0; i < 4; i++ {
		b.Update(0.5, KeyRight, floor)
	}
	approxEqual(t, b.Position.X, 20, 1e-12, "position.x")
	var kinds []EventKind
	for _, e := range b.Events().Drain() {
		kinds = append(kinds, e.Kind)
	}
	if len(kinds) != 1 || kinds[0] != EventAirborne {
		t.Fatalf("expected airborne event, got %v", kinds)
	}
}

func TestBodyTeleportAndParams(t *testing.T) {
	b := NewBody(cp.Vector{}, testParams())
	b.Update(1, KeyRight, nil)
	b.Teleport(cp.Vector{X: 5, Y: 6})
	if b.Position != (cp.Vector{X: 5, Y: 6}) || b.Previous != b.Position {
		t.Fatalf("teleport did not reset position: %+v", b)
	}
	if b.Velocity != (cp.Vector{}) || b.Grounded || b.Ground != -1 {
		t.Fatalf("teleport did not clear motion: %+v", b)
	}

	p := testParams()
	p.Size = cp.Vector{X: 3, Y: 4}
	b.SetParams(p)
	if b.Collider.Size != p.Size {
		t.Fatalf("collider size = %+v, want %+v", b.Collider.Size, p.Size)
	}
}

func TestBodyInterpolated(t *testing.T) {
	p := testParams()
	p.Gravity = 0
	b := NewBody(cp.Vector{}, p)
	b.Update(1, KeyRight, nil)

	mid := b.Interpolated(0.5)
	approxEqual(t, mid.X, 5, 1e-12, "interpolated x")
	end := b.Interpolated(1)
	approxEqual(t, end.X, 10, 1e-12, "interpolated x at 1")
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}
	p := DefaultParams()
	p.Size.Y = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for zero height")
	}
	p = DefaultParams()
	p.Speed = -1
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for negative speed")
	}
}
