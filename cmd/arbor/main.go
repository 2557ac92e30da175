//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"arbor/internal/app"
	"arbor/internal/species"
	"arbor/internal/tree"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var (
		p    tree.Params
		name string
	)
	if cfg.Preset != "" {
		loaded, err := species.LoadFile(cfg.Preset)
		if err != nil {
			log.Fatal(err)
		}
		p = loaded
		name = cfg.Preset
	} else {
		factory, ok := species.Lookup(cfg.Species)
		if !ok {
			log.Fatalf("unknown species %q (have: %s)", cfg.Species, strings.Join(species.Names(), ", "))
		}
		p = factory(nil)
		name = cfg.Species
	}

	game, err := app.New(name, p, cfg.Seed, cfg.Width, cfg.Height)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("arbor — " + name)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
