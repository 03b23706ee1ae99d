// Package control supplies the per-frame input state that drives a body.
package control

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/physics"
)

// State is what an input source may look at when choosing keys.
type State struct {
	Frame    int
	Time     float64
	Position cp.Vector
	Velocity cp.Vector
	Grounded bool
	Blocked  bool
}

// StateOf snapshots a body for frame n at time t.
func StateOf(n int, t float64, b *physics.Body) State {
	if b == nil {
		return State{Frame: n, Time: t}
	}
	return State{
		Frame:    n,
		Time:     t,
		Position: b.Position,
		Velocity: b.Velocity,
		Grounded: b.Grounded,
		Blocked:  b.Wall >= 0,
	}
}

// Source returns the keys held for one frame.
type Source interface {
	Keys(s State) physics.Keys
}

// Fixed holds the same keys every frame.
type Fixed physics.Keys

func (f Fixed) Keys(State) physics.Keys {
	return physics.Keys(f)
}

// Func adapts a plain function to Source.
type Func func(s State) physics.Keys

func (f Func) Keys(s State) physics.Keys {
	if f == nil {
		return 0
	}
	return f(s)
}

// Mirrored swaps left and right of the wrapped source.
type Mirrored struct {
	Source Source
}

func (m Mirrored) Keys(s State) physics.Keys {
	if m.Source == nil {
		return 0
	}
	return m.Source.Keys(s).MirrorX()
}

// Mirror wraps src when on is set.
func Mirror(src Source, on bool) Source {
	if !on {
		return src
	}
	return Mirrored{Source: src}
}
