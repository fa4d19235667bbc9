package cube

import (
	"errors"
	"testing"

	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

func TestGenerate(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		c := Generate(size)
		if got := len(c.Pieces()); got != size*size*size {
			t.Errorf("size %d: %d pieces, want %d", size, got, size*size*size)
		}

		names := make(map[string]bool)
		cells := make(map[Cell]bool)
		perFace := make(map[Face]int)
		for _, p := range c.Pieces() {
			if names[p.Node.Name] {
				t.Errorf("size %d: duplicate piece name %s", size, p.Node.Name)
			}
			names[p.Node.Name] = true
			if cells[p.Home] {
				t.Errorf("size %d: duplicate home cell %v", size, p.Home)
			}
			cells[p.Home] = true
			if len(p.Stickers) > 3 {
				t.Errorf("size %d: piece %d has %d stickers", size, p.ID, len(p.Stickers))
			}
			for _, s := range p.Stickers {
				perFace[s.Face]++
			}
		}
		for _, f := range Faces {
			if perFace[f] != size*size {
				t.Errorf("size %d: face %v has %d stickers, want %d", size, f, perFace[f], size*size)
			}
		}
	}
}

func TestGenerateOrderIsXMajor(t *testing.T) {
	c := Generate(3)
	if got := c.Piece(1).Home; got != (Cell{0, 0, 1}) {
		t.Errorf("piece 1 home %v, want (0,0,1)", got)
	}
	if got := c.Piece(9).Home; got != (Cell{1, 0, 0}) {
		t.Errorf("piece 9 home %v, want (1,0,0)", got)
	}
}

func TestLayerCoord(t *testing.T) {
	cases := []struct {
		size int
		want []int
	}{
		{2, []int{-1, 1}},
		{3, []int{-1, 0, 1}},
		{4, []int{-2, -1, 1, 2}},
		{5, []int{-2, -1, 0, 1, 2}},
	}
	for _, c := range cases {
		got := Layers(c.size)
		for i := range c.want {
			if got[i] != c.want[i] {
				t.Errorf("Layers(%d) = %v, want %v", c.size, got, c.want)
				break
			}
		}
		for i, coord := range c.want {
			if idx, ok := LayerIndex(c.size, coord); !ok || idx != i {
				t.Errorf("LayerIndex(%d, %d) = %d,%v", c.size, coord, idx, ok)
			}
		}
	}
	if _, ok := LayerIndex(4, 0); ok {
		t.Error("a 4x4x4 cube has no centre layer")
	}
}

func TestQueryLayer(t *testing.T) {
	c := Generate(3)
	ids := c.QueryLayer(vecmath.X, 1)
	if len(ids) != 9 {
		t.Fatalf("QueryLayer(X, 1) returned %d pieces, want 9", len(ids))
	}
	for _, id := range ids {
		if c.Piece(id).Home.X != 2 {
			t.Errorf("piece %d at %v is not in the +x layer", id, c.Piece(id).Home)
		}
	}
	if got := len(Generate(4).QueryLayer(vecmath.Y, 0)); got != 0 {
		t.Errorf("QueryLayer on a missing layer returned %d pieces", got)
	}
	if got := len(Generate(5).QueryLayer(vecmath.Z, 0)); got != 25 {
		t.Errorf("centre slice of 5x5x5 has %d pieces, want 25", got)
	}
}

func TestReparentPreservesWorld(t *testing.T) {
	c := Generate(4)
	c.Object.Local.Rotation = vecmath.AxisAngle(vecmath.V3(1, 2, 0.5), 0.9)
	c.Group.Local.Position = vecmath.V3(0.1, 0, 0)
	c.Group.Local.Rotation = vecmath.AxisAngle(vecmath.Z.Unit(), 0.3)

	ids := c.QueryLayer(vecmath.Y, -2)
	before := make([]vecmath.Transform, len(ids))
	for i, id := range ids {
		before[i] = c.Piece(id).Node.World()
	}
	if n := c.Reparent(ids, c.Object, c.Group); n != len(ids) {
		t.Fatalf("moved %d pieces, want %d", n, len(ids))
	}
	for i, id := range ids {
		if !c.Piece(id).Node.World().ApproxEqual(before[i], 1e-9) {
			t.Errorf("piece %d moved when reparented", id)
		}
	}
	if n := c.Reparent(ids, c.Object, c.Group); n != 0 {
		t.Errorf("pieces not under the source frame were moved: %d", n)
	}
}

func TestNewCubeIsSolved(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		if !Generate(size).SolvedCheck() {
			t.Errorf("new %dx%dx%d cube should be solved", size, size, size)
		}
	}
}

func TestQuarterTurnBreaksSolved(t *testing.T) {
	c := Generate(3)
	if err := c.Apply(Move{Axis: vecmath.X, Turns: 1, Layer: 1}); err != nil {
		t.Fatal(err)
	}
	if c.SolvedCheck() {
		t.Error("cube should not be solved after a quarter turn")
		t.Log(c.String())
	}
}

func TestMoveThenInverseIsSolved(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		for _, axis := range vecmath.Axes {
			for _, layer := range Layers(size) {
				c := Generate(size)
				m := Move{Axis: axis, Turns: 1, Layer: layer}
				if err := c.Apply(m); err != nil {
					t.Fatal(err)
				}
				if err := c.Apply(m.Inverse()); err != nil {
					t.Fatal(err)
				}
				if !c.SolvedCheck() {
					t.Errorf("size %d: %v then inverse should be solved", size, m)
					t.Log(c.String())
				}
			}
		}
	}
}

func TestFourQuarterTurnsRestoreCells(t *testing.T) {
	c := Generate(3)
	m := Move{Axis: vecmath.Y, Turns: 1, Layer: 1}
	for i := 0; i < 4; i++ {
		if err := c.Apply(m); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range c.Pieces() {
		if c.Cell(p.ID) != p.Home {
			t.Errorf("piece %d at %v after four turns, want %v", p.ID, c.Cell(p.ID), p.Home)
		}
	}
	if !c.SolvedCheck() {
		t.Error("four quarter turns should be solved")
		t.Log(c.String())
	}
}

func TestLatticeTracksCells(t *testing.T) {
	c := Generate(3)
	corner := Cell{2, 2, 2}
	id, ok := c.At(corner)
	if !ok {
		t.Fatal("no piece at corner")
	}
	if err := c.Apply(Move{Axis: vecmath.X, Turns: 1, Layer: 1}); err != nil {
		t.Fatal(err)
	}
	if got := c.Cell(id); got != (Cell{2, 0, 2}) {
		t.Errorf("corner moved to %v, want (2,0,2)", got)
	}
	if owner, _ := c.At(Cell{2, 0, 2}); owner != id {
		t.Errorf("cell (2,0,2) owned by %d, want %d", owner, id)
	}
	snap := c.Lattice()
	snap[id] = Cell{}
	if c.Cell(id) == (Cell{}) {
		t.Error("Lattice should return a copy")
	}
}

func TestCommitSnapsDrift(t *testing.T) {
	c := Generate(5)
	c.Select(c.QueryLayer(vecmath.Z, 2))
	c.Group.RotateOnAxis(vecmath.Z.Unit(), vecmath.QuarterTurn+0.02)
	if c.Aligned(1e-9) {
		t.Fatal("drifted layer should not be aligned")
	}
	c.Commit()
	if !c.Aligned(1e-9) {
		t.Error("commit should snap every piece onto the lattice")
	}
	if len(c.Selected()) != 0 {
		t.Error("commit should empty the layer group")
	}
}

func TestInvalidLayer(t *testing.T) {
	c := Generate(4)
	err := c.Apply(Move{Axis: vecmath.X, Turns: 1, Layer: 0})
	if !errors.Is(err, ErrInvalidLayer) {
		t.Errorf("expected ErrInvalidLayer, got %v", err)
	}
}

func TestWholeCubeRotationStaysSolved(t *testing.T) {
	c := Generate(3)
	for _, axis := range vecmath.Axes {
		if err := c.Apply(Move{Axis: axis, Turns: 1, Whole: true}); err != nil {
			t.Fatal(err)
		}
		if !c.SolvedCheck() {
			t.Errorf("whole-cube rotation about %v broke solved state", axis)
		}
	}
	if !c.Object.Local.Rotation.ApproxEqual(c.Edges.Local.Rotation, 1e-12) {
		t.Error("object should follow the edges box rotation")
	}
	c.Reset()
	if !c.Object.Local.Rotation.ApproxEqual(vecmath.IdentityQuat(), 1e-12) {
		t.Error("Reset should clear the cube rotation")
	}
}

func TestSerializeRestore(t *testing.T) {
	c := Generate(3)
	moves := []Move{
		{Axis: vecmath.Y, Turns: 1, Layer: 1},
		{Axis: vecmath.X, Turns: -1, Layer: 1},
		{Axis: vecmath.Z, Turns: 2, Layer: 1},
	}
	for _, m := range moves {
		if err := c.Apply(m); err != nil {
			t.Fatal(err)
		}
	}
	saved := c.Serialize()

	fresh := Generate(3)
	if err := fresh.Restore(saved); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	for _, p := range c.Pieces() {
		if fresh.Cell(p.ID) != c.Cell(p.ID) {
			t.Errorf("piece %d restored to %v, want %v", p.ID, fresh.Cell(p.ID), c.Cell(p.ID))
		}
		if !fresh.Piece(p.ID).Node.Local.Rotation.ApproxEqual(p.Node.Local.Rotation, 1e-9) {
			t.Errorf("piece %d restored with a different rotation", p.ID)
		}
	}
	if fresh.SolvedCheck() {
		t.Error("restored scrambled cube reports solved")
	}
}

func TestRestoreMismatch(t *testing.T) {
	c := Generate(3)
	before := c.Lattice()

	bad := Generate(2).Serialize()
	if err := c.Restore(bad); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("size mismatch: got %v", err)
	}

	s := Generate(3).Serialize()
	s.Names[4] = "piece-999"
	if err := c.Restore(s); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("bad name: got %v", err)
	}

	s = Generate(3).Serialize()
	s.Positions = s.Positions[:10]
	if err := c.Restore(s); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("short positions: got %v", err)
	}

	s = Generate(3).Serialize()
	s.Positions[0] = s.Positions[1]
	if err := c.Restore(s); !errors.Is(err, ErrStateMismatch) {
		t.Errorf("two pieces in one cell: got %v", err)
	}

	after := c.Lattice()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("failed restore modified the cube")
		}
	}
}

func TestRecolor(t *testing.T) {
	c := Generate(2)
	pal := Palette{Faces: [6]uint32{1, 2, 3, 4, 5, 6}, Body: 0x08101a}
	before := c.Piece(0).Node.Local
	c.Recolor(pal)
	for _, p := range c.Pieces() {
		if p.Color != pal.Body {
			t.Errorf("piece %d body colour %x", p.ID, p.Color)
		}
		for _, s := range p.Stickers {
			if s.Color != pal.Faces[s.Face] {
				t.Errorf("piece %d sticker %v colour %d", p.ID, s.Face, s.Color)
			}
		}
	}
	if !c.Piece(0).Node.Local.ApproxEqual(before, 0) {
		t.Error("Recolor changed geometry")
	}
}

func TestStickerAt(t *testing.T) {
	c := Generate(3)
	id, _ := c.At(Cell{0, 2, 2})
	p := c.Piece(id)
	if s, ok := p.StickerAt(vecmath.V3(-1, 0, 0)); !ok || s.Face != L {
		t.Errorf("expected L sticker, got %v %v", s.Face, ok)
	}
	if _, ok := p.StickerAt(vecmath.V3(1, 0, 0)); ok {
		t.Error("corner piece has no +x sticker")
	}
}
