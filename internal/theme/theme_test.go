package theme

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
)

func TestDefaultTheme(t *testing.T) {
	th, err := Get(Default)
	if err != nil {
		t.Fatal(err)
	}
	if th.Faces[cube.U] != 0xfff7ff || th.Faces[cube.F] != 0xef3923 {
		t.Errorf("unexpected default colours %x", th.Faces)
	}
	if got := Hex(th.Piece); got != "#08101a" {
		t.Errorf("Hex(piece) = %s", got)
	}
	if got := string(th.FaceColor(cube.R)); got != "#41aac8" {
		t.Errorf("FaceColor(R) = %s", got)
	}
}

func TestPaletteRecolorsCube(t *testing.T) {
	th, _ := Get("classic")
	c := cube.Generate(2)
	c.Recolor(th.Palette())
	for _, p := range c.Pieces() {
		for _, s := range p.Stickers {
			if s.Color != th.Faces[s.Face] {
				t.Errorf("sticker %v has colour %x", s.Face, s.Color)
			}
		}
	}
}

func TestUnknownTheme(t *testing.T) {
	if _, err := Get("neon"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("expected ErrUnknownTheme, got %v", err)
	}
	names := Names()
	if len(names) != 2 || names[0] != "classic" || names[1] != "cube" {
		t.Errorf("Names() = %v", names)
	}
}
