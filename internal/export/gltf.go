// Package export writes the cube's scene graph as a glTF document.
package export

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/scene"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// stickerInset is the sticker half-size as a fraction of the piece half-size.
const stickerInset = 0.85

type stickerKey struct {
	face  cube.Face
	color uint32
}

type builder struct {
	doc       *gltf.Document
	c         *cube.Cube
	half      float64
	materials map[uint32]int
	bodies    map[uint32]int
	stickers  map[stickerKey]int
}

// Document builds a glTF document from the visible part of the cube's scene
// graph: holder, animator, object, layer group and pieces. Each piece gets
// a body mesh and one child node per sticker.
func Document(c *cube.Cube) *gltf.Document {
	b := &builder{
		doc:       gltf.NewDocument(),
		c:         c,
		half:      0.5 / float64(c.Size()),
		materials: make(map[uint32]int),
		bodies:    make(map[uint32]int),
		stickers:  make(map[stickerKey]int),
	}
	b.doc.Asset.Generator = "cubeplay"
	root := b.node(c.Holder)
	b.doc.Scenes[0].Nodes = append(b.doc.Scenes[0].Nodes, root)
	return b.doc
}

// node appends n and its subtree and returns n's index.
func (b *builder) node(n *scene.Node) int {
	gn := &gltf.Node{
		Name:        n.Name,
		Translation: [3]float64{n.Local.Position.X, n.Local.Position.Y, n.Local.Position.Z},
		Rotation:    n.Local.Rotation.XYZW(),
		Scale:       [3]float64{n.Local.Scale, n.Local.Scale, n.Local.Scale},
	}
	idx := len(b.doc.Nodes)
	b.doc.Nodes = append(b.doc.Nodes, gn)

	if p, ok := b.c.PieceByNode(n); ok {
		gn.Mesh = gltf.Index(b.bodyMesh(p.Color))
		for _, s := range p.Stickers {
			gn.Children = append(gn.Children, len(b.doc.Nodes))
			b.doc.Nodes = append(b.doc.Nodes, &gltf.Node{
				Name:     fmt.Sprintf("%s-%s", n.Name, s.Face),
				Mesh:     gltf.Index(b.stickerMesh(s)),
				Rotation: [4]float64{0, 0, 0, 1},
				Scale:    [3]float64{1, 1, 1},
			})
		}
	}

	for _, child := range n.Children() {
		gn.Children = append(gn.Children, b.node(child))
	}
	return idx
}

func (b *builder) material(color uint32) int {
	if m, ok := b.materials[color]; ok {
		return m
	}
	r, g, bl := linear(color>>16), linear(color>>8), linear(color)
	b.doc.Materials = append(b.doc.Materials, &gltf.Material{
		Name: fmt.Sprintf("#%06x", color&0xffffff),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{r, g, bl, 1},
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(0.6),
		},
	})
	m := len(b.doc.Materials) - 1
	b.materials[color] = m
	return m
}

func (b *builder) bodyMesh(color uint32) int {
	if m, ok := b.bodies[color]; ok {
		return m
	}
	pos, nrm, idx := box(float32(b.half))
	m := b.mesh("piece", pos, nrm, idx, b.material(color))
	b.bodies[color] = m
	return m
}

func (b *builder) stickerMesh(s cube.Sticker) int {
	key := stickerKey{s.Face, s.Color}
	if m, ok := b.stickers[key]; ok {
		return m
	}
	pos, nrm, idx := quad(s.Dir, b.half)
	m := b.mesh("sticker-"+s.Face.String(), pos, nrm, idx, b.material(s.Color))
	b.stickers[key] = m
	return m
}

func (b *builder) mesh(name string, pos, nrm [][3]float32, idx []uint16, material int) int {
	b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(modeler.WriteIndices(b.doc, idx)),
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(b.doc, pos),
				gltf.NORMAL:   modeler.WriteNormal(b.doc, nrm),
			},
			Material: gltf.Index(material),
		}},
	})
	return len(b.doc.Meshes) - 1
}

// box returns an axis-aligned cube of half-size h with per-face normals.
func box(h float32) (pos, nrm [][3]float32, idx []uint16) {
	for _, f := range cube.Faces {
		n := f.Normal()
		p, _, i := face(n, float64(h), float64(h))
		base := uint16(len(pos))
		for _, v := range p {
			pos = append(pos, v)
			nrm = append(nrm, vec32(n))
		}
		for _, k := range i {
			idx = append(idx, base+k)
		}
	}
	return pos, nrm, idx
}

// quad returns a sticker facing dir, slightly proud of a piece of half-size h.
func quad(dir vecmath.Vec3, h float64) (pos, nrm [][3]float32, idx []uint16) {
	pos, _, idx = face(dir, h*1.01, h*stickerInset)
	for range pos {
		nrm = append(nrm, vec32(dir))
	}
	return pos, nrm, idx
}

// face returns a square of half-size size centred at dir·dist, wound
// counter-clockwise when seen from outside.
func face(dir vecmath.Vec3, dist, size float64) (pos, nrm [][3]float32, idx []uint16) {
	a := vecmath.MainAxis(dir)
	u := vecmath.Axes[(a+1)%3].Unit()
	v := vecmath.Axes[(a+2)%3].Unit()
	if dir.Get(a) < 0 {
		u, v = v, u
	}
	c := dir.Scale(dist)
	for _, corner := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		p := c.Add(u.Scale(corner[0] * size)).Add(v.Scale(corner[1] * size))
		pos = append(pos, vec32(p))
	}
	return pos, nil, []uint16{0, 1, 2, 0, 2, 3}
}

func vec32(v vecmath.Vec3) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

// linear converts one 8-bit sRGB channel to linear intensity.
func linear(c uint32) float64 {
	s := float64(c&0xff) / 255
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// Write encodes the cube as glTF JSON with embedded buffers, or as GLB.
func Write(w io.Writer, c *cube.Cube, binary bool) error {
	doc := Document(c)
	if !binary {
		for _, buf := range doc.Buffers {
			buf.EmbeddedResource()
		}
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode gltf: %w", err)
	}
	return nil
}

// Save writes the cube to path. A .glb extension selects the binary
// container.
func Save(path string, c *cube.Cube) error {
	doc := Document(c)
	var err error
	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		for _, buf := range doc.Buffers {
			buf.EmbeddedResource()
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("failed to save gltf: %w", err)
	}
	return nil
}
