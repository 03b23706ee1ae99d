// Command gridview runs the platformer in a terminal. Each terminal cell is
// one map cell: solid cells come from the packed solidity grid and the body
// is drawn over them.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/system"
)

const tick = 16 * time.Millisecond

const (
	glyphEmpty = ' '
	glyphSolid = '█'
	glyphBody  = '@'
)

type viewer struct {
	screen tcell.Screen
	world  *system.World
	keys   *heldKeys
	status string
}

func main() {
	levelName := flag.String("level", "", "level in levels/ (.json or .tmx), overrides world.yaml")
	scriptName := flag.String("script", "", "drive the body with a tengo script instead of the keyboard")
	frames := flag.Int("frames", 0, "quit after this many frames (0 runs until q)")
	flag.Parse()

	world, keys, err := newWorld(*levelName, *scriptName)
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("gridview: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("gridview: %v", err)
	}

	v := &viewer{screen: screen, world: world, keys: keys}
	v.run(*frames)
	screen.Fini()
}

func newWorld(level, script string) (*system.World, *heldKeys, error) {
	spec, err := prefabs.LoadWorldSpec("", func(s *prefabs.WorldSpec) {
		if level != "" {
			s.Map = level
		}
		if script != "" {
			s.Input.Script = script
		}
	})
	if err != nil {
		return nil, nil, err
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, nil, err
	}
	world, err := system.NewWorld(*spec, *player)
	if err != nil {
		return nil, nil, err
	}

	keys := &heldKeys{}
	var src control.Source = keys
	if spec.Input.Script != "" {
		b, err := prefabs.LoadScript(spec.Input.Script)
		if err != nil {
			return nil, nil, err
		}
		s, err := control.NewScript(spec.Input.Script, b)
		if err != nil {
			return nil, nil, err
		}
		src = s
	}
	world.Input = control.Mirror(src, spec.Mirror())
	return world, keys, nil
}

func (v *viewer) run(maxFrames int) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now
			v.world.Step(dt)
			for _, evt := range v.world.DrainEvents() {
				v.status = fmt.Sprintf("frame %d: %s", v.world.Frame(), evt.Kind)
			}
			v.draw()
			if maxFrames > 0 && v.world.Frame() >= maxFrames {
				return
			}
		}
	}
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
			v.world.Respawn()
			return true
		}
		if k, ok := movementKey(ev); ok {
			v.keys.Press(k)
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()
	solid := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	body := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	for y, row := range cellRows(v.world) {
		for x, r := range row {
			style := solid
			if r == glyphBody {
				style = body
			}
			v.screen.SetContent(x, y, r, nil, style)
		}
	}

	b := v.world.Body
	line := fmt.Sprintf("pos %.1f,%.1f grounded %v  %s  [arrows/wasd] move [r] respawn [q] quit",
		b.Position.X, b.Position.Y, b.Grounded, v.status)
	for i, r := range line {
		v.screen.SetContent(i, v.world.Terrain.Height+1, r, nil, tcell.StyleDefault)
	}
	v.screen.Show()
}

// cellRows renders the solidity grid and the body as one rune per cell,
// row 0 at the top.
func cellRows(w *system.World) [][]rune {
	t := w.Terrain
	rows := make([][]rune, t.Height)
	for y := range rows {
		rows[y] = make([]rune, t.Width)
		for x := range rows[y] {
			rows[y][x] = glyphEmpty
		}
	}
	t.Solid.Each(func(x, y int) {
		rows[y][x] = glyphSolid
	})

	for _, c := range bodyCells(w) {
		rows[c[1]][c[0]] = glyphBody
	}
	return rows
}

// bodyCells lists the map cells covered by the body's box.
func bodyCells(w *system.World) [][2]int {
	t := w.Terrain
	s := t.CellSize()
	half := t.WorldSize().Mult(0.5)
	box := w.Body.Collider.Size.Mult(0.5)

	// the (+x, +y) corner has the lowest cell index on both axes
	lo := half.Sub(w.Body.Position.Add(box)).Mult(1 / s)
	hi := half.Sub(w.Body.Position.Sub(box)).Mult(1 / s)
	x0, y0 := max(int(math.Floor(lo.X)), 0), max(int(math.Floor(lo.Y)), 0)
	x1, y1 := min(int(math.Ceil(hi.X))-1, t.Width-1), min(int(math.Ceil(hi.Y))-1, t.Height-1)

	var out [][2]int
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			out = append(out, [2]int{x, y})
		}
	}
	return out
}
