package system

import (
	"slices"

	"github.com/milk9111/platformer/physics"
)

// fallMargin is how far below the map, in cells, a body may fall before it
// is respawned.
const fallMargin = 4

// Respawn puts the body back at the player spawn point.
func (w *World) Respawn() {
	if w == nil || w.Body == nil {
		return
	}
	w.Body.Teleport(w.Player.Spawn())
}

func (w *World) fellOut() bool {
	if w.Terrain == nil {
		return false
	}
	bottom := -w.Terrain.WorldSize().Y/2 - fallMargin*w.Terrain.CellSize()
	return w.Body.Position.Y < bottom
}

// embedded reports whether the body overlaps terrain where it stands.
func (w *World) embedded() bool {
	probe := w.Body.Collider
	probe.Center = w.Body.Position
	for _, c := range w.Terrain.Colliders {
		if probe.Overlaps(c) {
			return true
		}
	}
	return false
}

// SetCell marks a cell solid or empty, keeping the collider list and the
// solidity grid in agreement. It returns false when the cell is outside
// the map or already in the requested state.
func (w *World) SetCell(x, y int, solid bool) bool {
	if w == nil || w.Terrain == nil {
		return false
	}
	g := w.Terrain.Solid
	if _, ok := g.Index(x, y); !ok || g.Get(x, y) == solid {
		return false
	}
	g.Set(x, y, solid)
	w.syncCollider(x, y, solid)
	return true
}

// ToggleCell flips a cell and returns its new state. Cells outside the map
// report false.
func (w *World) ToggleCell(x, y int) bool {
	if w == nil || w.Terrain == nil {
		return false
	}
	if _, ok := w.Terrain.Solid.Index(x, y); !ok {
		return false
	}
	solid := w.Terrain.Solid.Toggle(x, y)
	w.syncCollider(x, y, solid)
	return solid
}

func (w *World) syncCollider(x, y int, solid bool) {
	cell := w.Terrain.CellCollider(x, y)
	if solid {
		w.Terrain.Colliders = append(w.Terrain.Colliders, cell)
		return
	}
	w.Terrain.Colliders = slices.DeleteFunc(w.Terrain.Colliders, func(c physics.Collider) bool {
		return c == cell
	})
}
