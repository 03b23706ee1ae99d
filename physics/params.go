package physics

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// Params holds the tuning values of a moving body. Velocities are in world
// units per second.
type Params struct {
	Size        cp.Vector
	Speed       float64
	JumpImpulse float64
	Gravity     float64
}

func DefaultParams() Params {
	return Params{
		Size:        cp.Vector{X: 50, Y: 50},
		Speed:       200,
		JumpImpulse: 420,
		Gravity:     980,
	}
}

var ErrInvalidSize = errors.New("physics: body size must be positive")

func (p Params) Validate() error {
	if p.Size.X <= 0 || p.Size.Y <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, p.Size.X, p.Size.Y)
	}
	if p.Speed < 0 {
		return fmt.Errorf("physics: negative speed %v", p.Speed)
	}
	if p.JumpImpulse < 0 {
		return fmt.Errorf("physics: negative jump impulse %v", p.JumpImpulse)
	}
	return nil
}
