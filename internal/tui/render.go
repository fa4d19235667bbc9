package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/raycast"
	"github.com/SeamusWaldron/cubeplay/internal/theme"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// stickerInset is the sticker half-size as a fraction of the piece half-size.
const stickerInset = 0.86

var light = vecmath.V3(0.35, 1, 0.6).Normalize()

// Canvas is a grid of colours, one per ray.
type Canvas struct {
	W, H int
	Pix  []uint32
}

// At returns the colour at pixel (x, y), with y growing downwards.
func (c *Canvas) At(x, y int) uint32 {
	return c.Pix[y*c.W+x]
}

// Rasterize casts one ray per pixel of a w×h grid through cam and shades
// what it hits. Pixels that miss the cube get bg.
func Rasterize(cb *cube.Cube, cam *raycast.Camera, bg uint32, w, h int) *Canvas {
	cv := &Canvas{W: w, H: h, Pix: make([]uint32, w*h)}
	targets := raycast.Prepare(cb.PieceNodes()...)
	half := 0.5 / float64(cb.Size())

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hit, ok := targets.Cast(cam.Ray(PixelNDC(x, y, w, h)))
			if !ok {
				cv.Pix[y*w+x] = bg
				continue
			}
			cv.Pix[y*w+x] = shade(cb, hit, half)
		}
	}
	return cv
}

// PixelNDC maps the centre of pixel (x, y) to normalized device coordinates.
func PixelNDC(x, y, w, h int) vecmath.Vec2 {
	return vecmath.V2(
		(float64(x)+0.5)/float64(w)*2-1,
		1-(float64(y)+0.5)/float64(h)*2,
	)
}

func shade(cb *cube.Cube, hit raycast.Hit, half float64) uint32 {
	p, ok := cb.PieceByNode(hit.Node)
	if !ok {
		return 0
	}
	n := vecmath.RoundToAxis(hit.Normal)
	color := p.Color
	if s, ok := p.StickerAt(n); ok && onSticker(hit.Node.WorldToLocal(hit.Point), n, half) {
		color = s.Color
	}
	world := hit.Node.LocalToWorldDir(n).Normalize()
	return scale(color, 0.55+0.45*math.Max(0, world.Dot(light)))
}

// onSticker reports whether a point on a piece face lies inside the sticker
// rather than on the border around it.
func onSticker(local, normal vecmath.Vec3, half float64) bool {
	a := vecmath.MainAxis(normal)
	lim := half * stickerInset
	for _, b := range vecmath.Axes {
		if b != a && math.Abs(local.Get(b)) > lim {
			return false
		}
	}
	return true
}

func scale(c uint32, k float64) uint32 {
	ch := func(shift uint) uint32 {
		v := math.Round(float64((c>>shift)&0xff) * k)
		return uint32(min(max(v, 0), 255)) << shift
	}
	return ch(16) | ch(8) | ch(0)
}

// Render draws the canvas with upper half blocks, two pixel rows per line.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := 0; row+1 < c.H; row += 2 {
		if row > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.W; {
			top, bot := c.At(x, row), c.At(x, row+1)
			n := 1
			for x+n < c.W && c.At(x+n, row) == top && c.At(x+n, row+1) == bot {
				n++
			}
			style := lipgloss.NewStyle().
				Foreground(theme.Color(top)).
				Background(theme.Color(bot))
			b.WriteString(style.Render(strings.Repeat("▀", n)))
			x += n
		}
	}
	return b.String()
}
