package physics

import "math"

const defaultMaxSteps = 5

// Stepper turns frame deltas into physics steps. With Fixed == 0 every frame
// delta is passed through unchanged, so results depend on the frame rate.
// With Fixed > 0 the delta is accumulated and consumed in whole steps of
// Fixed seconds; at most MaxSteps run per frame and any backlog beyond that
// is dropped.
type Stepper struct {
	Fixed    float64
	MaxSteps int

	acc   float64
	alpha float64
}

// Advance runs step for the frame and returns how many steps ran.
func (s *Stepper) Advance(dt float64, step func(dt float64)) int {
	if s.Fixed <= 0 {
		step(dt)
		s.alpha = 1
		return 1
	}

	maxSteps := s.MaxSteps
	if maxSteps <= 0 {
		maxSteps = defaultMaxSteps
	}

	s.acc += dt
	n := 0
	for s.acc >= s.Fixed && n < maxSteps {
		step(s.Fixed)
		s.acc -= s.Fixed
		n++
	}
	if s.acc >= s.Fixed {
		s.acc = math.Mod(s.acc, s.Fixed)
	}
	s.alpha = s.acc / s.Fixed
	return n
}

// Alpha is the fraction of a fixed step left in the accumulator after the
// last Advance, for interpolating rendered positions.
func (s *Stepper) Alpha() float64 {
	return s.alpha
}

// Reset clears the accumulator.
func (s *Stepper) Reset() {
	s.acc = 0
	s.alpha = 0
}
