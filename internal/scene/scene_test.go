package scene

import (
	"math"
	"testing"

	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

const tol = 1e-9

func TestAttachPreservesWorld(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.Add(a)
	root.Add(b)
	a.Local.Position = vecmath.V3(1, 2, 3)
	a.Local.Rotation = vecmath.AxisAngle(vecmath.V3(0, 1, 0), 0.7)
	b.Local.Rotation = vecmath.AxisAngle(vecmath.V3(1, 0, 1), -1.2)
	b.Local.Scale = 2

	leaf := NewNode("leaf")
	a.Add(leaf)
	leaf.Local.Position = vecmath.V3(0.3, -0.1, 0.5)
	leaf.Local.Rotation = vecmath.AxisAngle(vecmath.V3(0, 0, 1), 0.4)

	before := leaf.World()
	b.Attach(leaf)
	if leaf.Parent() != b {
		t.Fatal("leaf should now be a child of b")
	}
	if len(a.Children()) != 0 {
		t.Error("leaf still listed under a")
	}
	if !leaf.World().ApproxEqual(before, tol) {
		t.Errorf("world transform changed: %+v -> %+v", before, leaf.World())
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	root := NewNode("root")
	n := NewNode("n")
	root.Add(n)
	root.Local.Scale = 1.25
	n.Local.Position = vecmath.V3(0.5, 0, 0)
	n.Local.Rotation = vecmath.AxisAngle(vecmath.X.Unit(), vecmath.QuarterTurn)

	p := vecmath.V3(0.1, 0.2, 0.3)
	if got := n.WorldToLocal(n.LocalToWorld(p)); !got.ApproxEqual(p, tol) {
		t.Errorf("round trip gave %v, want %v", got, p)
	}
}

func TestRotateOnWorldAxisUnderRotatedParent(t *testing.T) {
	root := NewNode("root")
	parent := NewNode("parent")
	child := NewNode("child")
	root.Add(parent)
	parent.Add(child)
	parent.Local.Rotation = vecmath.AxisAngle(vecmath.X.Unit(), vecmath.QuarterTurn)
	child.Local.Position = vecmath.V3(0, 0, 0)

	child.RotateOnWorldAxis(vecmath.Y.Unit(), vecmath.QuarterTurn)
	// The child's local +X should now point along world -Z.
	got := child.LocalToWorldDir(vecmath.X.Unit())
	if !got.ApproxEqual(vecmath.V3(0, 0, -1), tol) {
		t.Errorf("local +x maps to %v, want (0,0,-1)", got)
	}
}

func TestLookAtTranslateZ(t *testing.T) {
	n := NewNode("helper")
	n.LookAt(vecmath.V3(1, 0, 0))
	n.TranslateZ(0.5)
	if !n.Local.Position.ApproxEqual(vecmath.V3(0.5, 0, 0), tol) {
		t.Errorf("position %v, want (0.5,0,0)", n.Local.Position)
	}
}

func TestBoxIntersect(t *testing.T) {
	b := Box{Half: vecmath.V3(0.5, 0.5, 0.5)}
	dist, normal, ok := b.Intersect(vecmath.V3(0, 0, 5), vecmath.V3(0, 0, -1))
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(dist-4.5) > tol {
		t.Errorf("t = %v, want 4.5", dist)
	}
	if !normal.ApproxEqual(vecmath.Z.Unit(), tol) {
		t.Errorf("normal %v, want +z", normal)
	}

	if _, _, ok := b.Intersect(vecmath.V3(2, 0, 5), vecmath.V3(0, 0, -1)); ok {
		t.Error("ray beside the box should miss")
	}
	if _, _, ok := b.Intersect(vecmath.V3(0, 0, 5), vecmath.V3(0, 0, 1)); ok {
		t.Error("ray pointing away should miss")
	}

	_, normal, ok = b.Intersect(vecmath.V3(-3, 0.1, 0.2), vecmath.V3(1, 0, 0))
	if !ok || !normal.ApproxEqual(vecmath.V3(-1, 0, 0), tol) {
		t.Errorf("entry through -x face: ok=%v normal=%v", ok, normal)
	}
}

func TestPlaneIntersect(t *testing.T) {
	p := Plane{}
	dist, normal, ok := p.Intersect(vecmath.V3(3, 4, -2), vecmath.V3(0, 0, 1))
	if !ok || math.Abs(dist-2) > tol {
		t.Fatalf("unbounded plane: ok=%v t=%v", ok, dist)
	}
	if !normal.ApproxEqual(vecmath.V3(0, 0, -1), tol) {
		t.Errorf("normal should face the ray origin, got %v", normal)
	}

	bounded := Plane{Half: vecmath.V2(1, 1)}
	if _, _, ok := bounded.Intersect(vecmath.V3(3, 0, 1), vecmath.V3(0, 0, -1)); ok {
		t.Error("hit outside bounded plane")
	}
}

func TestFind(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.Add(a)
	a.Add(b)
	if root.Find("b") != b {
		t.Error("Find should locate nested node")
	}
	count := 0
	root.Walk(func(*Node) { count++ })
	if count != 3 {
		t.Errorf("Walk visited %d nodes, want 3", count)
	}
}
