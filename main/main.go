package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/carmethene/fluidsim/pkg/fluid"
	"github.com/carmethene/fluidsim/pkg/scenario"
)

func main() {
	log.SetPrefix("fluidsim: ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	sim, err := fluid.New(cfg.width, cfg.height,
		float32(cfg.viscosity), float32(cfg.diffusion), float32(cfg.decay))
	if err != nil {
		log.Fatal(err)
	}
	sim.Iterations = cfg.iterations
	if cfg.profile {
		sim.SetTickHook(profileTick)
	}
	log.Printf("grid %dx%d viscosity=%g diffusion=%g decay=%g step=%v",
		sim.NumX, sim.NumY, sim.Viscosity(), sim.Diffusion(), sim.DecayRate(), cfg.step)

	if cfg.headless {
		if err := runHeadless(cfg, sim); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Print(helpText())

	game, err := NewGame(cfg, sim)
	if err != nil {
		log.Fatal(err)
	}
	w, h := game.renderer.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Fluid")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func runHeadless(cfg config, sim *fluid.Fluid) error {
	sim.SetGravity(0, float32(cfg.gravity))
	rep, err := scenario.Run(sim, scenario.Config{
		Ticks:         cfg.ticks,
		Step:          cfg.dt(),
		SourceDensity: float32(cfg.sourceDensity),
		Push:          float32(cfg.push),
		ForceEvery:    10,
		Progress: func(tick int, total float64) {
			if (tick+1)&tick == 0 || tick == cfg.ticks {
				log.Printf("tick %d total density %.3f", tick, total)
			}
		},
	})
	if err != nil {
		return err
	}
	log.Printf("red density %v", rep.Red)
	return rep.Write(os.Stdout)
}
