package cube

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// State is the serialized form of a cube: per piece, its name, cube-frame
// position and Euler XYZ rotation in radians.
type State struct {
	Size      int            `json:"size"`
	Names     []string       `json:"names"`
	Positions []vecmath.Vec3 `json:"positions"`
	Rotations []vecmath.Vec3 `json:"rotations"`
}

// Serialize captures the committed cube.
func (c *Cube) Serialize() State {
	n := len(c.pieces)
	s := State{
		Size:      c.size,
		Names:     make([]string, n),
		Positions: make([]vecmath.Vec3, n),
		Rotations: make([]vecmath.Vec3, n),
	}
	for i, p := range c.pieces {
		s.Names[i] = p.Node.Name
		s.Positions[i] = c.ObjectPosition(p.ID)
		rot := p.Node.Local.Rotation
		if p.Node.Parent() != c.Object {
			rot = c.Object.World().Rotation.Inverse().Mul(p.Node.World().Rotation)
		}
		s.Rotations[i] = rot.Euler()
	}
	return s
}

// Restore loads a saved state. The state is validated first; on any
// mismatch it returns ErrStateMismatch and the cube is left untouched.
func (c *Cube) Restore(s State) error {
	ids, err := c.validate(s)
	if err != nil {
		return err
	}
	c.Deselect()
	for i, id := range ids {
		n := c.pieces[id].Node
		n.Local.Position = s.Positions[i]
		n.Local.Rotation = vecmath.QuatFromEuler(s.Rotations[i])
	}
	c.Commit()
	return nil
}

func (c *Cube) validate(s State) ([]int, error) {
	n := len(c.pieces)
	if s.Size != c.size {
		return nil, fmt.Errorf("%w: size %d, cube is %d", ErrStateMismatch, s.Size, c.size)
	}
	if len(s.Names) != n || len(s.Positions) != n || len(s.Rotations) != n {
		return nil, fmt.Errorf("%w: expected %d pieces", ErrStateMismatch, n)
	}

	ids := make([]int, n)
	seen := make(map[int]bool, n)
	cells := make(map[Cell]bool, n)
	for i, name := range s.Names {
		num, ok := strings.CutPrefix(name, "piece-")
		if !ok {
			return nil, fmt.Errorf("%w: unknown piece %q", ErrStateMismatch, name)
		}
		id, err := strconv.Atoi(num)
		if err != nil || id < 0 || id >= n || seen[id] {
			return nil, fmt.Errorf("%w: unknown piece %q", ErrStateMismatch, name)
		}
		seen[id] = true
		ids[i] = id

		cell := CellAt(c.size, s.Positions[i])
		if !s.Positions[i].ApproxEqual(Position(c.size, cell), 0.25/float64(c.size)) || cells[cell] {
			return nil, fmt.Errorf("%w: piece %q is off the lattice", ErrStateMismatch, name)
		}
		cells[cell] = true
	}
	return ids, nil
}
