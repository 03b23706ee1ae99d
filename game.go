package main

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/obj"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/system"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// maxFrameDelta bounds the wall-clock delta after a stall (window drag,
	// breakpoint) so a single frame cannot carry the body through a tile.
	maxFrameDelta = 0.1
)

// overrides are command-line settings that win over world.yaml, also
// after a hot reload.
type overrides struct {
	Level  string
	Script string
	Fixed  float64
}

func (o overrides) apply(spec *prefabs.WorldSpec) {
	if o.Level != "" {
		spec.Map = o.Level
	}
	if o.Script != "" {
		spec.Input.Script = o.Script
	}
	if o.Fixed > 0 {
		spec.Timestep = prefabs.TimestepSpec{Mode: "fixed", Step: o.Fixed, MaxSteps: spec.Timestep.MaxSteps}
	}
}

type Game struct {
	world    *system.World
	camera   *obj.Camera
	keyboard *Keyboard
	renderer *Renderer
	watcher  *prefabs.Watcher
	over     overrides

	debug bool
	last  time.Time
	keys  string
}

func NewGame(over overrides, debug, watch bool) (*Game, error) {
	spec, err := loadWorldSpec(over)
	if err != nil {
		return nil, err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	world, err := system.NewWorld(*spec, *player)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:    world,
		camera:   obj.NewCamera(baseWidth, baseHeight, spec.Zoom()),
		keyboard: &Keyboard{},
		renderer: NewRenderer(),
		over:     over,
		debug:    debug,
	}
	if err := g.configure(); err != nil {
		return nil, err
	}
	g.camera.SnapTo(world.Body.Position)

	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, system.LevelDir, "assets")
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func loadWorldSpec(over overrides) (*prefabs.WorldSpec, error) {
	return prefabs.LoadWorldSpec("", over.apply)
}

// configure applies the parts of the current world spec that live outside
// the simulation: camera settings and the input source.
func (g *Game) configure() error {
	spec := g.world.Spec
	g.camera.SetZoom(spec.Zoom())
	g.camera.SetSmooth(spec.Camera.Smoothness)
	ws := g.world.Terrain.WorldSize()
	g.camera.SetWorldBounds(ws.X, ws.Y)

	var src control.Source = g.keyboard
	if spec.Input.Script != "" {
		b, err := prefabs.LoadScript(spec.Input.Script)
		if err != nil {
			return fmt.Errorf("load script %s: %w", spec.Input.Script, err)
		}
		s, err := control.NewScript(spec.Input.Script, b)
		if err != nil {
			return err
		}
		src = s
	}
	g.world.Input = control.Mirror(src, spec.Mirror())
	g.renderer.Invalidate()
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !g.last.IsZero() {
		dt = min(now.Sub(g.last).Seconds(), maxFrameDelta)
	}
	g.last = now

	g.reload()
	g.handleInput()

	g.world.Step(dt)
	for _, evt := range g.world.DrainEvents() {
		if g.debug {
			log.Printf("frame %d: %s (collider %d)", g.world.Frame(), evt.Kind, evt.Collider)
		}
	}

	g.camera.Update(g.world.Body.Interpolated(g.world.Stepper.Alpha()))
	return nil
}

func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.world.Respawn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.renderer.ShowGrid = !g.renderer.ShowGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.renderer.ShowColliders = !g.renderer.ShowColliders
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		p := g.camera.ScreenToWorld(float64(mx), float64(my))
		if x, y, ok := g.world.Terrain.CellAt(p); ok {
			solid := g.world.ToggleCell(x, y)
			g.renderer.InvalidateGrid()
			if g.debug {
				log.Printf("cell %d,%d solid=%v", x, y, solid)
			}
		}
	}
	g.keys = g.keyboard.Keys(control.State{}).String()
}

// reload applies files changed on disk. A failed reload is logged and the
// previous configuration stays active.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("hot reload: %v", err)
	default:
	}

	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	var player, world bool
	for _, name := range changed {
		switch base := strings.ToLower(filepath.Base(name)); {
		case base == "player.yaml":
			player = true
		default:
			world = true
		}
	}

	if player {
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			log.Printf("hot reload: %v", err)
		} else if err := g.world.SetPlayer(*spec); err != nil {
			log.Printf("hot reload: %v", err)
		} else {
			log.Printf("hot reload: player %s", spec.Name)
		}
	}
	if world {
		spec, err := loadWorldSpec(g.over)
		if err != nil {
			log.Printf("hot reload: %v", err)
			return
		}
		if err := g.world.Load(*spec); err != nil {
			log.Printf("hot reload: %v", err)
			return
		}
		if err := g.configure(); err != nil {
			log.Printf("hot reload: %v", err)
			return
		}
		log.Printf("hot reload: world %s (%s)", spec.Name, spec.Map)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world, g.camera)

	b := g.world.Body
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\npos: %.1f, %.1f  vy: %.1f\ngrounded: %v  keys: %s\ncolliders: %d  solid: %d\n[R] respawn [G] grid [C] colliders [click] toggle cell",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		b.Position.X, b.Position.Y, b.Velocity.Y,
		b.Grounded, g.keys,
		len(g.world.Terrain.Colliders), g.world.Terrain.Solid.Count(),
	))
}

// LayoutF keeps the logical height fixed and follows the window's aspect
// ratio, so resizing shows more or less of the level sideways.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w := float64(baseWidth)
	if outsideWidth > 0 && outsideHeight > 0 {
		w = math.Round(outsideWidth / outsideHeight * baseHeight)
	}
	g.camera.SetScreenSize(int(w), baseHeight)
	return w, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
