package cpu

import (
	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/types"
)

// intersectSphere evaluates a ray against a sphere centered on the origin.
// Both quadratic roots get a candidate slot; roots behind the ray origin
// keep the miss sentinel. A tangent ray reports its double root in both
// slots.
func intersectSphere(orig, vel types.Vec3, s solid.Sphere, ts []float32, pts *pointCursor) {
	a := vel.Dot(vel)
	b := 2 * orig.Dot(vel)
	c := orig.Dot(orig) - s.Radius*s.Radius

	x0, x1, ok := solveQuadratic(a, b, c)
	if !ok {
		return
	}

	for slot, t := range [2]float32{x0, x1} {
		if t < 0 {
			continue
		}
		ts[slot] = t
		pts.TryPush(orig.Add(vel.Mul(t)))
	}
}
