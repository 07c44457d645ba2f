package cpu

import (
	"github.com/mcvine/chord/tracer"
	"github.com/mcvine/chord/types"
)

// simplifyTimePointPairs compacts ray i's candidate buffer into the
// canonical entry/exit representation: the first outGroup non-sentinel
// times, scanned in face evaluation order, with remaining output slots
// sentinel-filled. The candidate point buffer was populated through the
// point cursor in the same face order, so its first outGroup slots already
// pair with the surviving times and are carried over unchanged. Running
// the compaction on its own output is a no-op.
func simplifyTimePointPairs(i int, times []float32, coords []types.Vec3,
	inGroupTime, inGroupCoord, outGroup int,
	simpTimes []float32, simpCoords []types.Vec3) {

	in := i * inGroupTime
	out := i * outGroup

	kept := 0
	for j := 0; j < inGroupTime && kept < outGroup; j++ {
		if times[in+j] != tracer.NoHit {
			simpTimes[out+kept] = times[in+j]
			kept++
		}
	}
	for ; kept < outGroup; kept++ {
		simpTimes[out+kept] = tracer.NoHit
	}

	for j := 0; j < outGroup && j < inGroupCoord; j++ {
		simpCoords[out+j] = coords[i*inGroupCoord+j]
	}
}

// forceIntersectionOrder enforces entry time <= exit time for ray i. When
// the two simplified times swap, their 3-float point blocks swap with
// them as a unit; a time is never reordered apart from its point.
func forceIntersectionOrder(i int, ts []float32, coords []types.Vec3) {
	t0, t1 := ts[2*i], ts[2*i+1]
	if t0 == tracer.NoHit || t1 == tracer.NoHit || t0 <= t1 {
		return
	}
	ts[2*i], ts[2*i+1] = t1, t0
	coords[2*i], coords[2*i+1] = coords[2*i+1], coords[2*i]
}
