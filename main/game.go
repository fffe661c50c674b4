package main

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/carmethene/fluidsim/pkg/fluid"
	"github.com/carmethene/fluidsim/pkg/render"
)

type Game struct {
	cfg      config
	sim      *fluid.Fluid
	renderer *render.Renderer
	opts     render.Options

	colour   colorful.Color
	gravity  bool
	showHelp bool
	lastTick time.Time
}

func NewGame(cfg config, sim *fluid.Fluid) (*Game, error) {
	r, err := render.New(sim.NumX, sim.NumY, cfg.scale)
	if err != nil {
		return nil, err
	}
	g := &Game{
		cfg:      cfg,
		sim:      sim,
		renderer: r,
		opts:     render.Options{Palette: cfg.palette},
		lastTick: time.Now(),
	}
	g.pickColour()
	return g, nil
}

func (g *Game) pickColour() {
	g.colour = colorful.HappyColor()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys(inpututil.IsKeyJustPressed, ebiten.IsKeyPressed)
	g.handleMouse()

	if now := time.Now(); now.Sub(g.lastTick) >= g.cfg.step {
		g.lastTick = now
		if err := g.sim.Tick(g.cfg.dt()); err != nil {
			return err
		}
	}
	return nil
}

// handleKeys applies every key that went down this frame. justPressed and
// held report keyboard state, normally from inpututil and ebiten.
func (g *Game) handleKeys(justPressed, held func(ebiten.Key) bool) {
	if justPressed(ebiten.KeyG) {
		g.gravity = !g.gravity
		gv := float32(0)
		if g.gravity {
			gv = float32(g.cfg.gravity)
		}
		g.sim.SetGravity(0, gv)
		log.Printf("gravity %v", onOff(g.gravity))
	}
	if justPressed(ebiten.KeyS) {
		g.opts.ShowSources = !g.opts.ShowSources
	}
	if justPressed(ebiten.KeyC) {
		g.sim.ClearSources()
	}
	if justPressed(ebiten.KeyR) {
		if held(ebiten.KeyShift) {
			g.sim.Reset()
			log.Print("reset all fields")
		} else {
			g.sim.ClearDensity()
		}
	}
	if justPressed(ebiten.KeyX) {
		g.pickColour()
	}
	if justPressed(ebiten.KeyL) {
		g.opts.ClampColours = !g.opts.ClampColours
	}
	if justPressed(ebiten.KeyV) {
		g.opts.ShowVelocity = !g.opts.ShowVelocity
	}
	if justPressed(ebiten.KeyP) {
		g.opts.Palette = g.opts.Palette.Next()
		log.Printf("velocity palette %v", g.opts.Palette)
	}
	if justPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
}

func (g *Game) handleMouse() {
	x, y := g.renderer.CellAt(ebiten.CursorPosition())
	push := float32(g.cfg.push)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.pickColour()
		g.sim.ApplyForce(x, y, push)
	}

	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		g.sim.EraseSource(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s := float32(g.cfg.sourceDensity)
		g.sim.PlaceSource(x, y, float32(g.colour.R)*s, float32(g.colour.G)*s, float32(g.colour.B)*s)
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) || ebiten.IsKeyPressed(ebiten.KeySpace) {
		g.sim.ApplyForce(x, y, push)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.renderer.Draw(g.sim, g.opts); err != nil {
		log.Print(err)
		return
	}
	g.renderer.Upscale()
	screen.WritePixels(g.renderer.Pixels())

	total := g.sim.TotalDensity(fluid.DensityRed) +
		g.sim.TotalDensity(fluid.DensityGreen) +
		g.sim.TotalDensity(fluid.DensityBlue)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f\nDensity: %.1f\nGravity: %s",
		ebiten.ActualFPS(), total, onOff(g.gravity)))
	if g.showHelp {
		drawHelp(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (w, h int) {
	return g.renderer.Size()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
