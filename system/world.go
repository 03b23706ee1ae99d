package system

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/platformer/assets"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/levels"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/terrain"
)

// LevelDir is checked for a level file before the embedded levels.
var LevelDir = "levels"

// World owns the built terrain, the player body and the step loop.
type World struct {
	Spec    prefabs.WorldSpec
	Player  prefabs.PlayerSpec
	Terrain *terrain.Terrain
	Body    *physics.Body
	Stepper *physics.Stepper
	Input   control.Source

	frame  int
	time   float64
	events []physics.Event
}

// NewWorld builds the terrain named by spec and spawns the player.
func NewWorld(spec prefabs.WorldSpec, player prefabs.PlayerSpec) (*World, error) {
	w := &World{}
	if err := w.Load(spec); err != nil {
		return nil, err
	}
	if err := w.SetPlayer(player); err != nil {
		return nil, err
	}
	w.Body.Teleport(player.Spawn())
	return w, nil
}

// Load rebuilds the terrain from spec. On error the world is unchanged.
func (w *World) Load(spec prefabs.WorldSpec) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("system: world %s: %w", spec.Name, err)
	}
	stepper, err := spec.Stepper()
	if err != nil {
		return err
	}
	terr, err := BuildTerrain(spec)
	if err != nil {
		return err
	}

	w.Spec = spec
	w.Terrain = terr
	if w.Stepper == nil || w.Stepper.Fixed != stepper.Fixed || w.Stepper.MaxSteps != stepper.MaxSteps {
		w.Stepper = stepper
	}
	if w.Body != nil {
		w.Body.SetResolution(spec.ResolutionPolicy())
		if w.embedded() {
			w.Respawn()
		}
	}
	return nil
}

// BuildTerrain loads the map and tileset named by spec and builds them.
func BuildTerrain(spec prefabs.WorldSpec) (*terrain.Terrain, error) {
	opts, err := spec.TerrainOptions()
	if err != nil {
		return nil, err
	}
	m, err := loadLevel(spec.Map)
	if err != nil {
		return nil, err
	}
	tileset, err := loadTileset(spec.Tileset, m)
	if err != nil {
		return nil, err
	}
	terr, err := terrain.Build(m, tileset, opts)
	if err != nil {
		return nil, fmt.Errorf("system: build %s: %w", spec.Map, err)
	}
	return terr, nil
}

// SetPlayer applies new tuning values, creating the body on first use.
func (w *World) SetPlayer(player prefabs.PlayerSpec) error {
	params := player.Params()
	if err := params.Validate(); err != nil {
		return fmt.Errorf("system: player %s: %w", player.Name, err)
	}
	w.Player = player
	if w.Body == nil {
		w.Body = physics.NewBody(player.Spawn(), params)
	} else {
		w.Body.SetParams(params)
	}
	w.Body.SetResolution(w.Spec.ResolutionPolicy())
	return nil
}

// Step advances the world by one frame of dt seconds and returns the
// number of physics steps that ran.
func (w *World) Step(dt float64) int {
	if w == nil || w.Body == nil || w.Terrain == nil {
		return 0
	}
	n := w.Stepper.Advance(dt, func(h float64) {
		keys := physics.Keys(0)
		if w.Input != nil {
			keys = w.Input.Keys(control.StateOf(w.frame, w.time, w.Body))
		}
		w.Body.Update(h, keys, w.Terrain.Colliders)
		w.time += h
		if w.fellOut() {
			log.Printf("system: body fell out of the world at %.1f,%.1f", w.Body.Position.X, w.Body.Position.Y)
			w.Respawn()
		}
	})
	w.frame++
	w.events = append(w.events, w.Body.Events().Drain()...)
	return n
}

// Frame is the number of frames stepped so far.
func (w *World) Frame() int { return w.frame }

// Time is the simulated time in seconds.
func (w *World) Time() float64 { return w.time }

// DrainEvents returns the contact events collected since the last call.
func (w *World) DrainEvents() []physics.Event {
	out := w.events
	w.events = nil
	return out
}

func loadLevel(name string) (*terrain.TileMap, error) {
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	if _, err := os.Stat(filepath.Join(LevelDir, filepath.FromSlash(clean))); err == nil {
		return levels.LoadFS(os.DirFS(LevelDir), clean)
	}
	return levels.Load(clean)
}

const placeholderColumns = 8

// loadTileset falls back to a generated tileset large enough for every
// tile id in m when no tileset is named.
func loadTileset(name string, m *terrain.TileMap) (image.Image, error) {
	if name != "" {
		return assets.LoadTileset(name)
	}
	maxID := uint32(0)
	for _, layer := range m.Layers {
		for _, tile := range layer.Tiles {
			if id, err := tile.Index(); err == nil && id > maxID {
				maxID = id
			}
		}
	}
	rows := int(maxID)/placeholderColumns + 1
	return assets.PlaceholderTileset(int(m.TileSize), placeholderColumns, rows+1), nil
}
