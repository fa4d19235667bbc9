package cube

import (
	"fmt"
	"math"

	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// Cell is a lattice cell, each index in [0,size).
type Cell struct {
	X, Y, Z int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Get returns the index along axis.
func (c Cell) Get(a vecmath.Axis) int {
	switch a {
	case vecmath.X:
		return c.X
	case vecmath.Y:
		return c.Y
	default:
		return c.Z
	}
}

// LayerCoord converts a lattice index into the signed layer coordinate used
// by moves. Odd sizes count outward from the centre slice (size 3: -1, 0, 1).
// Even sizes have no centre slice and skip zero (size 4: -2, -1, 1, 2).
func LayerCoord(size, index int) int {
	twice := 2*index - (size - 1) // 2·offset, always an integer
	if size%2 == 1 {
		return twice / 2
	}
	if twice < 0 {
		return (twice - 1) / 2
	}
	return (twice + 1) / 2
}

// LayerIndex is the inverse of LayerCoord. It reports false for a
// coordinate that names no layer of a cube of this size.
func LayerIndex(size, coord int) (int, bool) {
	for i := 0; i < size; i++ {
		if LayerCoord(size, i) == coord {
			return i, true
		}
	}
	return 0, false
}

// Layers returns every valid layer coordinate for a size, lowest first.
func Layers(size int) []int {
	out := make([]int, size)
	for i := range out {
		out[i] = LayerCoord(size, i)
	}
	return out
}

// latticeOffset converts an index into a cube-local position component.
// The lattice has spacing 1/size and the cube spans [-1/2, 1/2].
func latticeOffset(size, index int) float64 {
	return (float64(index) - float64(size-1)/2) / float64(size)
}

// latticeIndex snaps a cube-local position component to the nearest index.
func latticeIndex(size int, p float64) int {
	i := int(math.Round(p*float64(size) + float64(size-1)/2))
	return min(max(i, 0), size-1)
}

// Position returns the cube-local centre of a cell.
func Position(size int, c Cell) vecmath.Vec3 {
	return vecmath.V3(latticeOffset(size, c.X), latticeOffset(size, c.Y), latticeOffset(size, c.Z))
}

// CellAt returns the cell nearest to a cube-local position.
func CellAt(size int, p vecmath.Vec3) Cell {
	return Cell{latticeIndex(size, p.X), latticeIndex(size, p.Y), latticeIndex(size, p.Z)}
}
