package physics

import "strings"

// Keys is the set of movement keys held during a frame.
type Keys uint8

const (
	KeyLeft Keys = 1 << iota
	KeyRight
	KeyJump
)

var keyNames = []struct {
	key  Keys
	name string
}{
	{KeyLeft, "left"},
	{KeyRight, "right"},
	{KeyJump, "jump"},
}

// Has reports whether every key in k2 is held.
func (k Keys) Has(k2 Keys) bool {
	return k&k2 == k2
}

// With returns k with k2 added, or removed when held is false.
func (k Keys) With(k2 Keys, held bool) Keys {
	if held {
		return k | k2
	}
	return k &^ k2
}

// MirrorX swaps left and right.
func (k Keys) MirrorX() Keys {
	out := k &^ (KeyLeft | KeyRight)
	if k.Has(KeyLeft) {
		out |= KeyRight
	}
	if k.Has(KeyRight) {
		out |= KeyLeft
	}
	return out
}

func (k Keys) String() string {
	var names []string
	for _, kn := range keyNames {
		if k.Has(kn.key) {
			names = append(names, kn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// KeyByName looks up a key by its lower-case name.
func KeyByName(name string) (Keys, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, kn := range keyNames {
		if kn.name == name {
			return kn.key, true
		}
	}
	return 0, false
}
