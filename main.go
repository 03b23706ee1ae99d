package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level in levels/ (.json or .tmx), overrides world.yaml")
	scriptName := flag.String("script", "", "drive the player with a tengo script from prefabs/scripts")
	fixed := flag.Float64("fixed", 0, "fixed physics step in seconds (0 keeps world.yaml)")
	watch := flag.Bool("watch", true, "hot reload prefabs, levels and assets from disk")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platformer")

	game, err := NewGame(overrides{
		Level:  *levelName,
		Script: *scriptName,
		Fixed:  *fixed,
	}, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
