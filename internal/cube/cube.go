// Package cube models an NxNxN twisty puzzle as a scene graph of pieces on a
// centred lattice. It answers which pieces form a layer, moves pieces
// between rotation frames, snaps them back onto the lattice after a turn and
// decides whether the puzzle is solved.
package cube

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SeamusWaldron/cubeplay/internal/scene"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// Supported sizes.
const (
	MinSize = 2
	MaxSize = 5
)

// Sticker is a coloured face of a piece.
type Sticker struct {
	Face  Face         // label, fixed at generation
	Dir   vecmath.Vec3 // outward direction in the piece's local frame
	Color uint32
}

// Piece is one cubie.
type Piece struct {
	ID       int
	Home     Cell
	Node     *scene.Node
	Stickers []Sticker
	Color    uint32 // body colour
}

// StickerAt returns the sticker whose outward direction matches a local
// normal, if the piece has one there.
func (p *Piece) StickerAt(normal vecmath.Vec3) (Sticker, bool) {
	for _, s := range p.Stickers {
		if s.Dir.ApproxEqual(normal, 1e-6) {
			return s, true
		}
	}
	return Sticker{}, false
}

// Palette holds the colours applied by Recolor.
type Palette struct {
	Faces [6]uint32 // indexed by Face
	Body  uint32
}

// Cube is the puzzle model.
//
// Node layout:
//
//	Root
//	├── Holder
//	│   └── Animator
//	│       └── Object (cube frame)
//	│           ├── pieces...
//	│           └── Group (layer rotation frame)
//	├── Edges (hit box for the whole cube)
//	└── Helper (drag plane)
type Cube struct {
	Root     *scene.Node
	Holder   *scene.Node
	Animator *scene.Node
	Object   *scene.Node
	Group    *scene.Node
	Edges    *scene.Node
	Helper   *scene.Node

	size   int
	pieces []*Piece
	cells  []Cell // committed cell per piece ID
	owner  map[Cell]int
}

// Generate builds a solved cube of the given size. It panics for sizes
// outside [MinSize, MaxSize].
func Generate(size int) *Cube {
	if size < MinSize || size > MaxSize {
		panic(fmt.Sprintf("cube: unsupported size %d", size))
	}

	c := &Cube{
		Root:     scene.NewNode("scene"),
		Holder:   scene.NewNode("holder"),
		Animator: scene.NewNode("animator"),
		Object:   scene.NewNode("object"),
		Group:    scene.NewNode("controls"),
		Edges:    scene.NewNode("edges"),
		Helper:   scene.NewNode("helper"),
		size:     size,
	}
	c.Root.Add(c.Holder)
	c.Holder.Add(c.Animator)
	c.Animator.Add(c.Object)
	c.Object.Add(c.Group)
	c.Root.Add(c.Edges)
	c.Root.Add(c.Helper)

	c.Edges.Shape = scene.Box{Half: vecmath.V3(0.5, 0.5, 0.5)}
	c.Helper.Shape = scene.Plane{}
	c.Helper.Local.Rotation = vecmath.AxisAngle(vecmath.Y.Unit(), vecmath.QuarterTurn/2)

	scale := c.DisplayScale()
	c.Holder.Local.Scale = scale
	c.Edges.Local.Scale = scale

	half := 0.5 / float64(size)
	last := size - 1
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			for z := 0; z < size; z++ {
				cell := Cell{x, y, z}
				p := &Piece{ID: len(c.pieces), Home: cell}
				p.Node = scene.NewNode(pieceName(p.ID))
				p.Node.Local.Position = Position(size, cell)
				p.Node.Shape = scene.Box{Half: vecmath.V3(half, half, half)}

				for _, f := range Faces {
					idx := cell.Get(f.Axis())
					if (f.Sign() < 0 && idx == 0) || (f.Sign() > 0 && idx == last) {
						p.Stickers = append(p.Stickers, Sticker{Face: f, Dir: f.Normal()})
					}
				}

				c.pieces = append(c.pieces, p)
				c.Object.Add(p.Node)
			}
		}
	}

	c.cells = make([]Cell, len(c.pieces))
	c.owner = make(map[Cell]int, len(c.pieces))
	for _, p := range c.pieces {
		c.cells[p.ID] = p.Home
		c.owner[p.Home] = p.ID
	}
	return c
}

func pieceName(id int) string {
	return fmt.Sprintf("piece-%d", id)
}

// Size returns the edge length in pieces.
func (c *Cube) Size() int { return c.size }

// Pieces returns every piece in ID order. The slice must not be modified.
func (c *Cube) Pieces() []*Piece { return c.pieces }

// Piece returns the piece with the given ID.
func (c *Cube) Piece(id int) *Piece { return c.pieces[id] }

// PieceNodes returns the scene nodes of every piece.
func (c *Cube) PieceNodes() []*scene.Node {
	nodes := make([]*scene.Node, len(c.pieces))
	for i, p := range c.pieces {
		nodes[i] = p.Node
	}
	return nodes
}

// PieceByNode returns the piece owning a scene node.
func (c *Cube) PieceByNode(n *scene.Node) (*Piece, bool) {
	for _, p := range c.pieces {
		if p.Node == n {
			return p, true
		}
	}
	return nil, false
}

// DisplayScale is the scale applied to the holder and edges box. A 2x2x2
// cube is drawn slightly smaller so its pieces do not look oversized.
func (c *Cube) DisplayScale() float64 {
	if c.size == 2 {
		return 0.825
	}
	return 1
}

// ObjectPosition returns the current position of a piece in the cube frame,
// whichever rotation frame the piece is attached to.
func (c *Cube) ObjectPosition(id int) vecmath.Vec3 {
	p := c.pieces[id]
	if p.Node.Parent() == c.Object {
		return p.Node.Local.Position
	}
	return c.Object.WorldToLocal(p.Node.World().Position)
}

// LayerOf returns the signed layer coordinate of a piece along an axis,
// from its current position snapped to the lattice.
func (c *Cube) LayerOf(id int, axis vecmath.Axis) int {
	cell := CellAt(c.size, c.ObjectPosition(id))
	return LayerCoord(c.size, cell.Get(axis))
}

// QueryLayer returns the IDs of the pieces in a layer. An empty result is
// valid.
func (c *Cube) QueryLayer(axis vecmath.Axis, coord int) []int {
	var ids []int
	for _, p := range c.pieces {
		if c.LayerOf(p.ID, axis) == coord {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Reparent moves pieces from one frame to another, preserving their world
// transforms. Pieces not currently attached to from are left alone. It
// returns the number of pieces moved.
func (c *Cube) Reparent(ids []int, from, to *scene.Node) int {
	moved := 0
	for _, id := range ids {
		n := c.pieces[id].Node
		if n.Parent() != from {
			continue
		}
		to.Attach(n)
		moved++
	}
	return moved
}

// Select resets the layer group and attaches the given pieces to it.
func (c *Cube) Select(ids []int) {
	c.Deselect()
	c.Group.Local = vecmath.Identity()
	c.Reparent(ids, c.Object, c.Group)
}

// Selected returns the IDs of pieces currently in the layer group.
func (c *Cube) Selected() []int {
	var ids []int
	for _, p := range c.pieces {
		if p.Node.Parent() == c.Group {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Deselect moves every piece in the layer group back to the cube frame.
func (c *Cube) Deselect() {
	c.Reparent(c.Selected(), c.Group, c.Object)
	c.Group.Local = vecmath.Identity()
}

// Commit returns every piece to the cube frame, snaps positions to the
// nearest lattice point and rotations to the nearest quarter turns, and
// records the resulting piece-to-cell assignment.
func (c *Cube) Commit() {
	c.Deselect()
	clear(c.owner)
	for _, p := range c.pieces {
		cell := CellAt(c.size, p.Node.Local.Position)
		p.Node.Local.Position = Position(c.size, cell)
		p.Node.Local.Rotation = p.Node.Local.Rotation.Snap()
		p.Node.Local.Scale = 1
		c.cells[p.ID] = cell
		c.owner[cell] = p.ID
	}
}

// Cell returns the committed cell of a piece.
func (c *Cube) Cell(id int) Cell { return c.cells[id] }

// At returns the piece committed to a cell.
func (c *Cube) At(cell Cell) (int, bool) {
	id, ok := c.owner[cell]
	return id, ok
}

// Lattice returns a snapshot of the committed piece-to-cell assignment,
// indexed by piece ID.
func (c *Cube) Lattice() []Cell {
	return slices.Clone(c.cells)
}

// Aligned reports whether every piece sits on a lattice point with a
// quarter-turn orientation.
func (c *Cube) Aligned(tol float64) bool {
	for _, p := range c.pieces {
		pos := c.ObjectPosition(p.ID)
		if !pos.ApproxEqual(Position(c.size, CellAt(c.size, pos)), tol) {
			return false
		}
		rot := p.Node.Local.Rotation
		if p.Node.Parent() != c.Object {
			rot = c.Object.World().Rotation.Inverse().Mul(p.Node.World().Rotation)
		}
		if !rot.Aligned(tol) {
			return false
		}
	}
	return true
}

// Recolor applies a palette to stickers and piece bodies. Geometry is not
// touched.
func (c *Cube) Recolor(pal Palette) {
	for _, p := range c.pieces {
		p.Color = pal.Body
		for i := range p.Stickers {
			p.Stickers[i].Color = pal.Faces[p.Stickers[i].Face]
		}
	}
}

// Reset clears any whole-cube rotation.
func (c *Cube) Reset() {
	id := vecmath.IdentityQuat()
	c.Holder.Local.Rotation = id
	c.Animator.Local.Rotation = id
	c.Object.Local.Rotation = id
	c.Edges.Local.Rotation = id
}

// sides buckets every sticker label by the side of the cube it currently
// faces, keyed by Face.
func (c *Cube) sides() [6][]Face {
	var out [6][]Face
	centre := c.Object.World().Position
	half := 0.5 / float64(c.size)
	for _, p := range c.pieces {
		w := p.Node.World()
		for _, s := range p.Stickers {
			pos := w.Apply(s.Dir.Scale(half)).Sub(centre)
			side := FaceOf(pos)
			out[side] = append(out[side], s.Face)
		}
	}
	return out
}

// SolvedCheck reports whether every side of the cube shows a single label.
func (c *Cube) SolvedCheck() bool {
	for _, labels := range c.sides() {
		if len(labels) == 0 {
			continue
		}
		for _, l := range labels[1:] {
			if l != labels[0] {
				return false
			}
		}
	}
	return true
}

// String renders each side as the labels it shows.
func (c *Cube) String() string {
	var b strings.Builder
	names := [6]string{"x-", "x+", "y-", "y+", "z-", "z+"}
	for side, labels := range c.sides() {
		b.WriteString(names[side])
		b.WriteString(": ")
		for _, l := range labels {
			b.WriteString(l.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
