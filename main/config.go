package main

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/carmethene/fluidsim/pkg/render"
)

type config struct {
	width, height int
	scale         int
	step          time.Duration

	viscosity float64
	diffusion float64
	decay     float64
	gravity   float64

	sourceDensity float64
	push          float64
	iterations    int

	profile  bool
	headless bool
	ticks    int
	palette  render.Palette
}

func parseFlags(args []string) (config, error) {
	var cfg config
	var palette string

	fs := flag.NewFlagSet("fluidsim", flag.ContinueOnError)
	fs.IntVar(&cfg.width, "width", 60, "simulation width in cells, border included")
	fs.IntVar(&cfg.height, "height", 100, "simulation height in cells, border included")
	fs.IntVar(&cfg.scale, "scale", 5, "display pixels per cell")
	fs.DurationVar(&cfg.step, "step", 30*time.Millisecond, "simulated time per tick")
	fs.Float64Var(&cfg.viscosity, "viscosity", 0.0002, "kinematic viscosity")
	fs.Float64Var(&cfg.diffusion, "diffusion", 0.0001, "density diffusion rate")
	fs.Float64Var(&cfg.decay, "decay", 0.5, "density removed per second")
	fs.Float64Var(&cfg.gravity, "gravity", -10, "vertical gravity used when gravity is switched on")
	fs.Float64Var(&cfg.sourceDensity, "source-density", 15, "strength of placed sources")
	fs.Float64Var(&cfg.push, "push", 40, "strength of applied forces")
	fs.IntVar(&cfg.iterations, "iterations", 10, "relaxation sweeps per solve")
	fs.BoolVar(&cfg.profile, "profile", false, "log the duration of every tick")
	fs.BoolVar(&cfg.headless, "headless", false, "run a scripted session without a window")
	fs.IntVar(&cfg.ticks, "ticks", 200, "number of ticks in headless mode")
	fs.StringVar(&palette, "palette", "grey", "velocity palette: grey or sci")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	p, err := render.ParsePalette(palette)
	if err != nil {
		return cfg, err
	}
	cfg.palette = p
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch {
	case c.width < 3 || c.height < 3:
		return fmt.Errorf("grid must be at least 3x3, got %dx%d", c.width, c.height)
	case c.scale < 1:
		return fmt.Errorf("scale must be positive, got %d", c.scale)
	case c.step <= 0:
		return fmt.Errorf("step must be positive, got %v", c.step)
	case c.iterations < 1:
		return fmt.Errorf("iterations must be positive, got %d", c.iterations)
	case c.headless && c.ticks < 1:
		return errors.New("headless mode needs at least one tick")
	}
	return nil
}

// dt is the tick length in seconds.
func (c config) dt() float32 {
	return float32(c.step.Seconds())
}
