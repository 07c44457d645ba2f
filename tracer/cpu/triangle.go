package cpu

import (
	"github.com/chewxy/math32"

	"github.com/mcvine/chord/types"
)

// Denominator threshold below which a ray is treated as parallel to a
// triangle's plane.
const triangleEpsilon = 1e-10

// intersectTriangle intersects a ray with the triangle (v0, v1, v2).
//
// The face normal is the cross product of the v0-v1 and v0-v2 edges; the
// ray is intersected with the face plane and the hit point classified with
// three edge half-plane tests against that normal. Hits behind the ray
// origin are rejected.
func intersectTriangle(orig, vel, v0, v1, v2 types.Vec3) (float32, types.Vec3, bool) {
	edge0 := v1.Sub(v0)
	edge1 := v2.Sub(v0)
	n := edge0.Cross(edge1)

	den := n.Dot(vel)
	if math32.Abs(den) < triangleEpsilon {
		return 0, types.Vec3{}, false
	}

	t := n.Dot(v0.Sub(orig)) / den
	if t < 0 {
		return 0, types.Vec3{}, false
	}
	p := orig.Add(vel.Mul(t))

	// Inside/outside test: p must lie on the normal side of every edge.
	if n.Dot(edge0.Cross(p.Sub(v0))) < 0 {
		return 0, types.Vec3{}, false
	}
	if n.Dot(v2.Sub(v1).Cross(p.Sub(v1))) < 0 {
		return 0, types.Vec3{}, false
	}
	if n.Dot(v0.Sub(v2).Cross(p.Sub(v2))) < 0 {
		return 0, types.Vec3{}, false
	}

	return t, p, true
}
