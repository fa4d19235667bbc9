package raycast

import (
	"math"

	"github.com/SeamusWaldron/cubeplay/internal/scene"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// Hit describes the nearest intersection of a ray with a shaped node.
type Hit struct {
	Node     *scene.Node
	Normal   vecmath.Vec3 // surface normal in the node's local frame
	Point    vecmath.Vec3 // world space
	Distance float64      // ray parameter
}

// Raycaster casts pointer rays through a camera.
type Raycaster struct {
	Camera *Camera
}

// New creates a raycaster for cam.
func New(cam *Camera) *Raycaster {
	return &Raycaster{Camera: cam}
}

// CastRay casts a ray through the NDC point p against the candidates and
// their descendants. Nodes without a shape are skipped.
func (r *Raycaster) CastRay(p vecmath.Vec2, candidates ...*scene.Node) (Hit, bool) {
	return Prepare(candidates...).Cast(r.Camera.Ray(p))
}

type target struct {
	node *scene.Node
	inv  vecmath.Transform
}

// Targets is a set of shaped nodes with their world inverses cached, for
// casting many rays against a scene that is not changing.
type Targets []target

// Prepare collects every shaped node under the candidates.
func Prepare(candidates ...*scene.Node) Targets {
	var ts Targets
	for _, c := range candidates {
		c.Walk(func(n *scene.Node) {
			if n.Shape != nil {
				ts = append(ts, target{node: n, inv: n.World().Inverse()})
			}
		})
	}
	return ts
}

// Cast returns the nearest hit of ray among the targets.
func (ts Targets) Cast(ray Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, tg := range ts {
		o := tg.inv.Apply(ray.Origin)
		d := tg.inv.ApplyDir(ray.Dir)
		t, normal, ok := tg.node.Shape.Intersect(o, d)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{Node: tg.node, Normal: normal, Point: ray.At(t), Distance: t}
		found = true
	}
	return best, found
}
