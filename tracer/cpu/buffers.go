package cpu

import (
	"math/rand"

	"github.com/mcvine/chord/types"
)

// Candidate point slots retained per ray. Any intersection accepted after
// the second one is dropped without error.
const pointSlotsPerRay = 2

// Scratch buffers for one batch call. Allocated when a batch request is
// processed and released once results have been written back; no state
// survives across calls.
type bufferSet struct {
	// Raw per-face candidate times, one group of slots per ray. The
	// group stride is the traced solid's face count.
	CandidateTimes []float32

	// Candidate intersection points, two slots per ray, written through
	// the shared point cursor in face evaluation order.
	CandidatePoints []types.Vec3

	// Private uniform random stream per ray.
	RandStates []*rand.Rand
}

// Allocate a new empty buffer set.
func newBufferSet() *bufferSet {
	return &bufferSet{}
}

// Resize buffers for a block of numRays rays traced against a solid with
// the given candidate face count.
func (bs *bufferSet) Resize(numRays, faces int) error {
	if numRays < 0 || faces <= 0 {
		return ErrInvalidBufferDims
	}
	bs.CandidateTimes = make([]float32, numRays*faces)
	bs.CandidatePoints = make([]types.Vec3, numRays*pointSlotsPerRay)
	return nil
}

// Release all buffers.
func (bs *bufferSet) Release() {
	bs.CandidateTimes = nil
	bs.CandidatePoints = nil
	bs.RandStates = nil
}

// initArray fills data with val.
func initArray[T any](data []T, val T) {
	for i := range data {
		data[i] = val
	}
}

// pointCursor writes accepted intersection points into a ray's fixed point
// slots. The cursor only ever advances; once both slots are filled further
// pushes are dropped, which caps each ray at two retained points no matter
// how many faces report a hit.
type pointCursor struct {
	slots []types.Vec3
	next  int
}

func newPointCursor(slots []types.Vec3) *pointCursor {
	return &pointCursor{slots: slots}
}

// TryPush appends a point to the next free slot and reports whether the
// point was retained.
func (c *pointCursor) TryPush(p types.Vec3) bool {
	if c.next >= len(c.slots) {
		return false
	}
	c.slots[c.next] = p
	c.next++
	return true
}
