// Package raycast maps 2D pointer positions to hits on scene nodes.
package raycast

import (
	"math"

	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// Default camera settings.
const (
	DefaultFOV   = 10.0 // degrees
	stageWidth   = 2.0
	stageHeight  = 3.0
	distanceTrim = 0.5
)

// Ray is a half-line in world space. Dir is not normalized.
type Ray struct {
	Origin vecmath.Vec3
	Dir    vecmath.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float64) vecmath.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position vecmath.Vec3
	Target   vecmath.Vec3
	Up       vecmath.Vec3
	FOV      float64 // vertical field of view in degrees
	Aspect   float64 // width / height
}

// NewCamera returns a camera on the (1,1,1) diagonal framed for the given
// viewport aspect ratio.
func NewCamera(fov, aspect float64) *Camera {
	c := &Camera{Up: vecmath.Y.Unit(), FOV: fov}
	c.Fit(aspect)
	return c
}

// Fit places the camera on the diagonal so a 2x3 stage fills a viewport with
// the given aspect ratio.
func (c *Camera) Fit(aspect float64) {
	if c.FOV <= 0 {
		c.FOV = DefaultFOV
	}
	if aspect <= 0 {
		aspect = 1
	}
	c.Aspect = aspect
	half := vecmath.Radians(c.FOV) / 2

	var d float64
	if stageWidth/stageHeight < aspect {
		d = stageHeight / 2 / math.Tan(half)
	} else {
		d = stageWidth / aspect / (2 * math.Tan(half))
	}
	d *= distanceTrim
	c.Position = vecmath.V3(d, d, d)
	c.Target = vecmath.Vec3{}
}

func (c *Camera) basis() (forward, right, up vecmath.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	worldUp := c.Up
	if worldUp.Len() == 0 {
		worldUp = vecmath.Y.Unit()
	}
	right = forward.Cross(worldUp).Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Ray returns the ray through a point in normalized device coordinates,
// where (-1,-1) is the bottom-left and (1,1) the top-right of the viewport.
func (c *Camera) Ray(ndc vecmath.Vec2) Ray {
	forward, right, up := c.basis()
	t := math.Tan(vecmath.Radians(c.FOV) / 2)
	dir := forward.
		Add(right.Scale(ndc.X * t * c.Aspect)).
		Add(up.Scale(ndc.Y * t))
	return Ray{Origin: c.Position, Dir: dir}
}

// Project maps a world point to normalized device coordinates and returns
// its depth along the view direction.
func (c *Camera) Project(p vecmath.Vec3) (vecmath.Vec2, float64) {
	forward, right, up := c.basis()
	rel := p.Sub(c.Position)
	depth := rel.Dot(forward)
	if depth <= 0 {
		return vecmath.Vec2{}, depth
	}
	t := math.Tan(vecmath.Radians(c.FOV) / 2)
	x := rel.Dot(right) / depth / (t * c.Aspect)
	y := rel.Dot(up) / depth / t
	return vecmath.V2(x, y), depth
}
