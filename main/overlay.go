package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var controls = [][2]string{
	{"Left Mouse", "Draw sources (a new press picks a colour)"},
	{"Right Mouse", "Erase sources"},
	{"Middle/Space", "Apply force"},
	{"G", "Toggle gravity"},
	{"S", "Show sources"},
	{"C", "Clear sources"},
	{"R", "Reset density"},
	{"Shift+R", "Reset density, velocity and sources"},
	{"X", "Change colour"},
	{"L", "Clamp colours"},
	{"V", "Show velocity"},
	{"P", "Switch velocity palette"},
	{"H", "Toggle this help"},
	{"Esc", "Quit"},
}

func helpText() string {
	var b strings.Builder
	b.WriteString("Fluid\n=====\n\n")
	for _, c := range controls {
		fmt.Fprintf(&b, "%-13s %s\n", c[0], c[1])
	}
	return b.String()
}

func drawHelp(screen *ebiten.Image) {
	const lineHeight = 14
	y := 40
	for _, line := range strings.Split(helpText(), "\n") {
		text.Draw(screen, line, basicfont.Face7x13, 8, y, color.White)
		y += lineHeight
	}
}
