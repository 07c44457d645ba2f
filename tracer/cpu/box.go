package cpu

import (
	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/types"
)

// intersectBox evaluates a ray against the six bounded faces of a box
// centered on the origin. Candidate slot order: +X, -X, +Y, -Y, +Z, -Z.
// Faces whose normal velocity component is zero are skipped and their
// slots keep the miss sentinel.
func intersectBox(orig, vel types.Vec3, b solid.Box, ts []float32, pts *pointCursor) {
	halfX, halfY, halfZ := b.X/2, b.Y/2, b.Z/2

	if vel[0] != 0 {
		for slot, face := range [2]float32{halfX, -halfX} {
			if t, p, ok := intersectRect(orig[1], orig[2], orig[0]-face, face,
				vel[1], vel[2], vel[0], halfY, halfZ, keyX); ok {
				ts[slot] = t
				pts.TryPush(p)
			}
		}
	}

	if vel[1] != 0 {
		for slot, face := range [2]float32{halfY, -halfY} {
			if t, p, ok := intersectRect(orig[2], orig[0], orig[1]-face, face,
				vel[2], vel[0], vel[1], halfZ, halfX, keyY); ok {
				ts[2+slot] = t
				pts.TryPush(p)
			}
		}
	}

	if vel[2] != 0 {
		for slot, face := range [2]float32{halfZ, -halfZ} {
			if t, p, ok := intersectRect(orig[0], orig[1], orig[2]-face, face,
				vel[0], vel[1], vel[2], halfX, halfY, keyZ); ok {
				ts[4+slot] = t
				pts.TryPush(p)
			}
		}
	}
}
