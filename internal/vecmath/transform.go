package vecmath

// Transform is a rigid transform with uniform scale:
// world = Position + Rotation·(Scale·local).
// Uniform scale keeps the set closed under composition and inversion, which
// is what makes reparenting exact.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rotation: IdentityQuat(), Scale: 1}
}

// Mul returns t∘c, the transform that applies c first and then t.
func (t Transform) Mul(c Transform) Transform {
	return Transform{
		Position: t.Apply(c.Position),
		Rotation: t.Rotation.Mul(c.Rotation).Normalize(),
		Scale:    t.Scale * c.Scale,
	}
}

// Inverse returns the inverse transform.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Inverse()
	s := 1 / t.Scale
	return Transform{
		Position: inv.Rotate(t.Position).Scale(-s),
		Rotation: inv,
		Scale:    s,
	}
}

// Apply maps a point from local to parent space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rotation.Rotate(p.Scale(t.Scale)).Add(t.Position)
}

// ApplyDir maps a direction from local to parent space (no translation).
func (t Transform) ApplyDir(d Vec3) Vec3 {
	return t.Rotation.Rotate(d.Scale(t.Scale))
}

// ApproxEqual reports whether two transforms agree within tol.
func (t Transform) ApproxEqual(o Transform, tol float64) bool {
	d := t.Scale - o.Scale
	if d < 0 {
		d = -d
	}
	return d <= tol &&
		t.Position.ApproxEqual(o.Position, tol) &&
		t.Rotation.ApproxEqual(o.Rotation, tol)
}
