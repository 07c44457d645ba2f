package cpu

import (
	"math/rand"

	"github.com/mcvine/chord/tracer"
	"github.com/mcvine/chord/types"
)

// prepRand creates one private uniform random stream per ray in the block.
// Each stream is seeded from the batch seed combined with the ray's
// absolute index, so a batch produces identical draws regardless of how it
// is split across tracers, and identical seeds reproduce identical
// scattering sites.
func prepRand(numRays int, rayOffset, seed uint32) []*rand.Rand {
	states := make([]*rand.Rand, numRays)
	for i := range states {
		states[i] = rand.New(rand.NewSource(mixSeed(seed, rayOffset+uint32(i))))
	}
	return states
}

// mixSeed combines the batch seed with a ray index using a splitmix64
// finalizer so that adjacent rays get well-separated source seeds.
func mixSeed(seed, index uint32) int64 {
	z := uint64(seed)<<32 | uint64(index)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// calcScatteringSites samples one point on ray i's chord through the
// solid. With a valid ordered pair (t0, p0), (t1, p1) it draws u from the
// ray's private stream and produces the site p0 + u*(p1-p0) at time
// t0 + u*(t1-t0); a zero-length chord therefore collapses to its tangent
// point for any u. Rays without a valid pair get the no-scatter sentinel
// in their time slot and their position slot is left untouched.
func calcScatteringSites(i int, ts []float32, pts []types.Vec3,
	scatPos []types.Vec3, scatTimes []float32, states []*rand.Rand) {

	t0, t1 := ts[2*i], ts[2*i+1]
	if t0 == tracer.NoHit || t1 == tracer.NoHit {
		scatTimes[i] = tracer.NoScatter
		return
	}

	p0, p1 := pts[2*i], pts[2*i+1]
	u := states[i].Float32()

	scatPos[i] = p0.Add(p1.Sub(p0).Mul(u))
	scatTimes[i] = t0 + u*(t1-t0)
}
