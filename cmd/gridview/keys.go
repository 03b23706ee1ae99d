package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/physics"
)

// holdFrames is how long a key press counts as held. Terminals report no
// key releases, only auto-repeat, so a press is kept alive until the
// repeat would have arrived.
const holdFrames = 8

// heldKeys turns terminal key presses into held movement keys.
type heldKeys struct {
	frame int
	until [3]int
}

var _ control.Source = (*heldKeys)(nil)

func keyIndex(k physics.Keys) int {
	switch k {
	case physics.KeyLeft:
		return 0
	case physics.KeyRight:
		return 1
	default:
		return 2
	}
}

// Press marks k held for the next holdFrames frames.
func (h *heldKeys) Press(k physics.Keys) {
	h.until[keyIndex(k)] = h.frame + holdFrames
}

// Keys reports the held keys and advances one frame.
func (h *heldKeys) Keys(control.State) physics.Keys {
	var keys physics.Keys
	for i, k := range []physics.Keys{physics.KeyLeft, physics.KeyRight, physics.KeyJump} {
		if h.until[i] > h.frame {
			keys |= k
		}
	}
	h.frame++
	return keys
}

// movementKey maps a terminal key event to a movement key.
func movementKey(ev *tcell.EventKey) (physics.Keys, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return physics.KeyLeft, true
	case tcell.KeyRight:
		return physics.KeyRight, true
	case tcell.KeyUp:
		return physics.KeyJump, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'h':
			return physics.KeyLeft, true
		case 'd', 'l':
			return physics.KeyRight, true
		case ' ', 'w', 'k':
			return physics.KeyJump, true
		}
	}
	return 0, false
}
