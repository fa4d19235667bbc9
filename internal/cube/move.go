package cube

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

var (
	// ErrInvalidLayer is returned when a move names a layer the cube does not have.
	ErrInvalidLayer = errors.New("cube: invalid layer")
	// ErrStateMismatch is returned when a saved state does not fit the cube.
	ErrStateMismatch = errors.New("cube: saved state does not match")
)

// Move is a rotation of one layer, or of the whole cube, by a whole number
// of quarter turns. Turns follow the right-hand rule about +Axis.
type Move struct {
	Axis  vecmath.Axis
	Turns int
	Layer int  // signed layer coordinate, ignored when Whole is set
	Whole bool // rotate the whole cube instead of one layer
}

// Angle returns the rotation in radians.
func (m Move) Angle() float64 {
	return float64(m.Turns) * vecmath.QuarterTurn
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	m.Turns = -m.Turns
	return m
}

func (m Move) String() string {
	if m.Whole {
		return fmt.Sprintf("%s%+d", m.Axis, m.Turns)
	}
	return fmt.Sprintf("%s[%d]%+d", m.Axis, m.Layer, m.Turns)
}

// Apply performs a move instantly, without animation, and commits the
// result to the lattice.
func (c *Cube) Apply(m Move) error {
	if m.Whole {
		c.Edges.RotateOnWorldAxis(m.Axis.Unit(), m.Angle())
		c.Edges.Local.Rotation = c.Edges.Local.Rotation.Snap()
		c.Object.Local.Rotation = c.Edges.Local.Rotation
		return nil
	}
	if _, ok := LayerIndex(c.size, m.Layer); !ok {
		return fmt.Errorf("%w: %d on a %dx%dx%d cube", ErrInvalidLayer, m.Layer, c.size, c.size, c.size)
	}
	c.Select(c.QueryLayer(m.Axis, m.Layer))
	c.Group.RotateOnAxis(m.Axis.Unit(), m.Angle())
	c.Commit()
	return nil
}
