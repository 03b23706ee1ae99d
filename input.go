package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/physics"
)

var keyBindings = []struct {
	key  physics.Keys
	keys []ebiten.Key
}{
	{physics.KeyLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
	{physics.KeyRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
	{physics.KeyJump, []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}},
}

// Keyboard reads the held movement keys from ebiten. Left and right are
// screen directions; the world applies the X mirror.
type Keyboard struct{}

var _ control.Source = (*Keyboard)(nil)

func (k *Keyboard) Keys(control.State) physics.Keys {
	var keys physics.Keys
	for _, b := range keyBindings {
		for _, key := range b.keys {
			if ebiten.IsKeyPressed(key) {
				keys |= b.key
				break
			}
		}
	}
	return keys
}
