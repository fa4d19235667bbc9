// Package theme holds the colour schemes a cube can be drawn with.
package theme

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
)

// ErrUnknownTheme is returned by Get for an unregistered name.
var ErrUnknownTheme = errors.New("theme: unknown theme")

// Default is the theme used when none is configured.
const Default = "cube"

// Theme is a colour for every face label plus the piece body and the
// background.
type Theme struct {
	Name       string
	Faces      [6]uint32 // indexed by cube.Face
	Piece      uint32
	Background uint32
}

var themes = map[string]Theme{
	"cube": {
		Name: "cube",
		Faces: [6]uint32{
			cube.L: 0x82ca38,
			cube.R: 0x41aac8,
			cube.D: 0xffef48,
			cube.U: 0xfff7ff,
			cube.B: 0xff8c0a,
			cube.F: 0xef3923,
		},
		Piece:      0x08101a,
		Background: 0xffffff,
	},
	"classic": {
		Name: "classic",
		Faces: [6]uint32{
			cube.L: 0xff5800,
			cube.R: 0xc41e3a,
			cube.D: 0xffd500,
			cube.U: 0xffffff,
			cube.B: 0x0051ba,
			cube.F: 0x009e60,
		},
		Piece:      0x111111,
		Background: 0x1d1f21,
	},
}

// Get returns a theme by name.
func Get(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return t, nil
}

// Names lists the registered themes in sorted order.
func Names() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Palette converts the theme into the colours a cube is recoloured with.
func (t Theme) Palette() cube.Palette {
	return cube.Palette{Faces: t.Faces, Body: t.Piece}
}

// Hex formats a colour as #rrggbb.
func Hex(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xffffff)
}

// Color converts a colour for lipgloss.
func Color(c uint32) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}

// FaceColor returns the lipgloss colour of a face label.
func (t Theme) FaceColor(f cube.Face) lipgloss.Color {
	return Color(t.Faces[f])
}
