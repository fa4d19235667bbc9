package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/theme"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

func themedCube(size int) *cube.Cube {
	c := cube.Generate(size)
	th, _ := theme.Get(theme.Default)
	c.Recolor(th.Palette())
	return c
}

func TestDocumentNodeCount(t *testing.T) {
	for size := cube.MinSize; size <= cube.MaxSize; size++ {
		doc := Document(themedCube(size))
		// holder, animator, object, layer group, pieces, stickers
		want := 4 + size*size*size + 6*size*size
		if len(doc.Nodes) != want {
			t.Errorf("size %d: %d nodes, want %d", size, len(doc.Nodes), want)
		}
		// one body mesh plus one sticker mesh per face colour
		if len(doc.Meshes) != 7 {
			t.Errorf("size %d: %d meshes, want 7", size, len(doc.Meshes))
		}
		if len(doc.Materials) != 7 {
			t.Errorf("size %d: %d materials, want 7", size, len(doc.Materials))
		}
		if len(doc.Scenes[0].Nodes) != 1 || doc.Nodes[doc.Scenes[0].Nodes[0]].Name != "holder" {
			t.Errorf("size %d: unexpected scene roots %v", size, doc.Scenes[0].Nodes)
		}
	}
}

func TestDocumentFollowsPieceTransforms(t *testing.T) {
	c := themedCube(3)
	if err := c.Apply(cube.Move{Axis: vecmath.Y, Turns: 1, Layer: 1}); err != nil {
		t.Fatal(err)
	}
	doc := Document(c)

	byName := make(map[string]*gltf.Node)
	for _, n := range doc.Nodes {
		byName[n.Name] = n
	}
	for _, p := range c.Pieces() {
		n := byName[p.Node.Name]
		if n == nil {
			t.Fatalf("missing node %s", p.Node.Name)
		}
		pos := p.Node.Local.Position
		if n.Translation != [3]float64{pos.X, pos.Y, pos.Z} {
			t.Errorf("%s translation %v, want %v", p.Node.Name, n.Translation, pos)
		}
		if n.Rotation != p.Node.Local.Rotation.XYZW() {
			t.Errorf("%s rotation %v", p.Node.Name, n.Rotation)
		}
		if len(n.Children) != len(p.Stickers) {
			t.Errorf("%s has %d children, want %d", p.Node.Name, len(n.Children), len(p.Stickers))
		}
	}
}

func TestSaveBinaryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.glb")
	if err := Save(path, themedCube(2)); err != nil {
		t.Fatal(err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := 4 + 8 + 24; len(doc.Nodes) != want {
		t.Errorf("reopened document has %d nodes, want %d", len(doc.Nodes), want)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, themedCube(3), false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"piece-0"`)) {
		t.Error("encoded document is missing piece nodes")
	}
	if !bytes.Contains(buf.Bytes(), []byte("data:application/octet-stream;base64")) {
		t.Error("buffers are not embedded")
	}
}
