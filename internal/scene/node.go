// Package scene is a minimal scene graph: named nodes with a local
// transform, a parent and children. World transforms are composed
// explicitly on demand, so moving a node between parents is a pure
// transform calculation.
package scene

import (
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// Node is a scene-graph node.
type Node struct {
	Name  string
	Local vecmath.Transform
	Shape Shape

	parent   *Node
	children []*Node
}

// NewNode creates a detached node with the identity transform.
func NewNode(name string) *Node {
	return &Node{Name: name, Local: vecmath.Identity()}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Add appends child to n, detaching it from any previous parent. The
// child's local transform is kept, so its world transform changes.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Its local transform is kept.
func (n *Node) Remove(child *Node) {
	if child.parent != n {
		return
	}
	n.remove(child)
	child.parent = nil
}

func (n *Node) remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// Attach moves child under n while preserving its world transform.
func (n *Node) Attach(child *Node) {
	world := child.World()
	child.Local = n.World().Inverse().Mul(world)
	n.Add(child)
}

// World returns the node's transform relative to the scene root.
func (n *Node) World() vecmath.Transform {
	if n.parent == nil {
		return n.Local
	}
	return n.parent.World().Mul(n.Local)
}

// LocalToWorld maps a point in n's local space to world space.
func (n *Node) LocalToWorld(p vecmath.Vec3) vecmath.Vec3 {
	return n.World().Apply(p)
}

// WorldToLocal maps a world-space point into n's local space.
func (n *Node) WorldToLocal(p vecmath.Vec3) vecmath.Vec3 {
	return n.World().Inverse().Apply(p)
}

// WorldToLocalDir maps a world-space direction into n's local space.
func (n *Node) WorldToLocalDir(d vecmath.Vec3) vecmath.Vec3 {
	return n.World().Inverse().ApplyDir(d)
}

// LocalToWorldDir maps a local direction into world space.
func (n *Node) LocalToWorldDir(d vecmath.Vec3) vecmath.Vec3 {
	return n.World().ApplyDir(d)
}

// RotateOnAxis rotates the node about an axis expressed in its own local
// frame.
func (n *Node) RotateOnAxis(axis vecmath.Vec3, angle float64) {
	n.Local.Rotation = n.Local.Rotation.Mul(vecmath.AxisAngle(axis, angle)).Normalize()
}

// RotateOnWorldAxis rotates the node about a world-space axis through its
// own origin.
func (n *Node) RotateOnWorldAxis(axis vecmath.Vec3, angle float64) {
	if n.parent != nil {
		axis = n.parent.World().Rotation.Inverse().Rotate(axis)
	}
	n.Local.Rotation = vecmath.AxisAngle(axis, angle).Mul(n.Local.Rotation).Normalize()
}

// LookAt orients the node so its local +Z axis points at target, given in
// the parent's frame.
func (n *Node) LookAt(target vecmath.Vec3) {
	dir := target.Sub(n.Local.Position)
	if dir.Len() == 0 {
		return
	}
	n.Local.Rotation = vecmath.LookRotation(dir)
}

// TranslateZ moves the node along its local +Z axis.
func (n *Node) TranslateZ(d float64) {
	n.Local.Position = n.Local.Position.Add(n.Local.Rotation.Rotate(vecmath.Z.Unit()).Scale(d))
}

// Walk calls fn for n and every descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}
