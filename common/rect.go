package common

// Rect is a screen-space rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}
