package cpu

import (
	"github.com/chewxy/math32"

	"github.com/mcvine/chord/tracer"
	"github.com/mcvine/chord/types"
)

// propagate advances ray i to its sampled scattering site: the origin
// moves to the site and the ray's clock accumulates the scattering time.
// Rays that pass through without scattering are left untouched.
func propagate(i int, origins []types.Vec3, rayTimes []float32,
	scatPos []types.Vec3, scatTimes []float32) {

	if scatTimes[i] == tracer.NoScatter {
		return
	}
	origins[i] = scatPos[i]
	rayTimes[i] += scatTimes[i]
}

// updateProbability attenuates ray i's survival probability over the path
// from its entry point (the first simplified point slot) to its scattering
// site, using the material attenuation length atten.
func updateProbability(i int, probs []float32, scatPos, entryPts []types.Vec3,
	scatTimes []float32, atten float32) {

	if scatTimes[i] == tracer.NoScatter {
		return
	}
	dist := scatPos[i].Sub(entryPts[2*i]).Len()
	probs[i] *= math32.Exp(-dist / atten)
}
