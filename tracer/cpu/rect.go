package cpu

import (
	"github.com/chewxy/math32"

	"github.com/mcvine/chord/types"
)

// axisKey selects which permutation of the solid's (X, Y, Z) axes a local
// plane frame represents. The local frame always has the plane normal
// along local z; the key records which physical axis that is, so one
// bounded-plane routine serves all box faces and the pyramid base.
type axisKey int

const (
	// Local (x, y, z) maps to physical (X, Y, Z); plane normal along Z.
	keyZ axisKey = iota
	// Local (x, y, z) maps to physical (Y, Z, X); plane normal along X.
	keyX
	// Local (x, y, z) maps to physical (Z, X, Y); plane normal along Y.
	keyY
)

// intersectRect intersects a ray with a bounded axis-aligned plane.
//
// The ray is supplied in the plane's local frame: (x, y) are the in-plane
// origin components, z is the origin's normal component already shifted by
// the plane offset zdiff, and (va, vb, vc) are the matching velocity
// components. The hit is accepted only when both in-plane coordinates fall
// strictly inside the half extents (halfA, halfB); the returned point is
// remapped into the solid frame through key. The caller must reject rays
// with vc == 0 before calling.
func intersectRect(x, y, z, zdiff, va, vb, vc, halfA, halfB float32, key axisKey) (float32, types.Vec3, bool) {
	t := -z / vc
	a := x + va*t
	b := y + vb*t

	if !(math32.Abs(a) < halfA && math32.Abs(b) < halfB) {
		return 0, types.Vec3{}, false
	}

	var p types.Vec3
	switch key {
	case keyZ:
		p = types.XYZ(a, b, zdiff)
	case keyX:
		p = types.XYZ(zdiff, a, b)
	case keyY:
		p = types.XYZ(b, zdiff, a)
	}
	return t, p, true
}
