package cpu

import (
	"github.com/chewxy/math32"

	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/types"
)

// intersectCylinder evaluates a ray against a finite cylinder centered on
// the origin with its axis along Z. Candidate slot order: top cap, bottom
// cap, then up to two side roots in the order the solver reports them.
func intersectCylinder(orig, vel types.Vec3, c solid.Cylinder, ts []float32, pts *pointCursor) {
	halfH := c.Height / 2
	r2 := c.Radius * c.Radius

	// End caps at z = +h/2 and -h/2, accepted when the hit lies inside
	// the radius.
	if vel[2] != 0 {
		for slot, zcap := range [2]float32{halfH, -halfH} {
			t := (zcap - orig[2]) / vel[2]
			x := orig[0] + vel[0]*t
			y := orig[1] + vel[1]*t
			if x*x+y*y < r2 {
				ts[slot] = t
				pts.TryPush(types.XYZ(x, y, zcap))
			}
		}
	}

	// Side surface: a 2D circle intersection in the XY plane, each root
	// clipped by the cylinder height.
	if vel[0] == 0 && vel[1] == 0 {
		return
	}
	a := vel[0]*vel[0] + vel[1]*vel[1]
	b := 2 * (orig[0]*vel[0] + orig[1]*vel[1])
	cc := orig[0]*orig[0] + orig[1]*orig[1] - r2

	x0, x1, ok := solveQuadratic(a, b, cc)
	if !ok {
		return
	}

	for slot, t := range [2]float32{x0, x1} {
		z := orig[2] + vel[2]*t
		if math32.Abs(z) < halfH {
			ts[2+slot] = t
			pts.TryPush(types.XYZ(orig[0]+vel[0]*t, orig[1]+vel[1]*t, z))
		}
	}
}
