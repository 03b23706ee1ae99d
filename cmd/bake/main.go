// Command bake builds a level offline. It writes the composite image as a
// PNG and reports the colliders and the solidity grid the game would use.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"

	"github.com/milk9111/platformer/prefabs"
	"github.com/milk9111/platformer/system"
	"github.com/milk9111/platformer/terrain"
)

type options struct {
	World     string
	Level     string
	Tileset   string
	Target    float64
	Blit      string
	Colliders string
	Out       string
	Grid      string
}

func main() {
	var opts options
	flag.StringVar(&opts.World, "world", "world.yaml", "world prefab to read defaults from")
	flag.StringVar(&opts.Level, "level", "", "level in levels/ (.json or .tmx)")
	flag.StringVar(&opts.Tileset, "tileset", "", "tileset image in assets/")
	flag.Float64Var(&opts.Target, "target", -1, "target world width (0 keeps native size)")
	flag.StringVar(&opts.Blit, "blit", "", "blit mode: opaque_only or overwrite")
	flag.StringVar(&opts.Colliders, "colliders", "", "collider policy: all or flagged")
	flag.StringVar(&opts.Out, "out", "composite.png", "composite PNG output path")
	flag.StringVar(&opts.Grid, "grid", "", "write the solidity grid as text to this path")
	flag.Parse()

	t, err := bake(opts)
	if err != nil {
		log.Fatalf("bake: %v", err)
	}
	fmt.Printf("%dx%d cells, tile %d, scale %.3f, %d colliders, %d solid cells\n",
		t.Width, t.Height, t.TileSize, t.Scale, len(t.Colliders), t.Solid.Count())
}

func (o options) apply(spec *prefabs.WorldSpec) {
	if o.Level != "" {
		spec.Map = o.Level
	}
	if o.Tileset != "" {
		spec.Tileset = o.Tileset
	}
	if o.Target >= 0 {
		spec.TargetWorldWidth = o.Target
	}
	if o.Blit != "" {
		spec.BlitMode = o.Blit
	}
	if o.Colliders != "" {
		spec.ColliderLayers = o.Colliders
	}
}

func bake(opts options) (*terrain.Terrain, error) {
	spec, err := prefabs.LoadWorldSpec(opts.World, opts.apply)
	if err != nil {
		return nil, err
	}

	t, err := system.BuildTerrain(*spec)
	if err != nil {
		return nil, err
	}

	if opts.Out != "" {
		if err := writeFile(opts.Out, func(w io.Writer) error {
			return png.Encode(w, t.Composite)
		}); err != nil {
			return nil, err
		}
		log.Printf("bake: wrote %s", opts.Out)
	}
	if opts.Grid != "" {
		if err := writeFile(opts.Grid, func(w io.Writer) error {
			return writeGrid(w, t)
		}); err != nil {
			return nil, err
		}
		log.Printf("bake: wrote %s", opts.Grid)
	}
	return t, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// writeGrid prints one line per map row, '#' for solid cells.
func writeGrid(w io.Writer, t *terrain.Terrain) error {
	g := t.Solid
	bw := bufio.NewWriter(w)
	for y := range g.Height() {
		for x := range g.Width() {
			c := byte('.')
			if g.Get(x, y) {
				c = '#'
			}
			bw.WriteByte(c)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
