package scene

import "github.com/go-gl/mathgl/mgl32"

// Plane represents a half-space: n·p + d = 0.
// Normal points into the "inside" of the frustum.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
// Positive means on the "inside" (same side as Normal).
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromVP extracts the six frustum planes from projection*view
// (Gribb/Hartmann). The planes are normalized so DistanceTo returns a
// true distance in world units.
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	f.Planes[0] = planeFrom(r3.Add(r0))
	f.Planes[1] = planeFrom(r3.Sub(r0))
	f.Planes[2] = planeFrom(r3.Add(r1))
	f.Planes[3] = planeFrom(r3.Sub(r1))
	f.Planes[4] = planeFrom(r3.Add(r2))
	f.Planes[5] = planeFrom(r3.Sub(r2))
	return f
}

func planeFrom(v mgl32.Vec4) Plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v[3] / l}
}

// Intersects returns false if the box is completely outside the frustum.
// Uses the "p-vertex" test: for each plane, the corner most aligned with
// the plane normal must not be outside.
func (b Bounds) Intersects(f *Frustum) bool {
	for i := range f.Planes {
		p := f.Planes[i]
		var pv mgl32.Vec3
		for a := 0; a < 3; a++ {
			pv[a] = b.Max[a]
			if p.Normal[a] < 0 {
				pv[a] = b.Min[a]
			}
		}
		if p.DistanceTo(pv) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the box enclosing all eight corners moved by m.
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	mn, mx := b.Min, b.Max
	corners := [8]mgl32.Vec3{
		{mn[0], mn[1], mn[2]},
		{mx[0], mn[1], mn[2]},
		{mn[0], mx[1], mn[2]},
		{mx[0], mx[1], mn[2]},
		{mn[0], mn[1], mx[2]},
		{mx[0], mn[1], mx[2]},
		{mn[0], mx[1], mx[2]},
		{mx[0], mx[1], mx[2]},
	}
	first := mgl32.TransformCoordinate(corners[0], m)
	out := Bounds{Min: first, Max: first}
	for _, c := range corners[1:] {
		out = out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// Extend grows the box to contain p.
func (b Bounds) Extend(p mgl32.Vec3) Bounds {
	for a := 0; a < 3; a++ {
		if p[a] < b.Min[a] {
			b.Min[a] = p[a]
		}
		if p[a] > b.Max[a] {
			b.Max[a] = p[a]
		}
	}
	return b
}

// Union returns the smallest box containing both.
func (b Bounds) Union(o Bounds) Bounds {
	return b.Extend(o.Min).Extend(o.Max)
}
