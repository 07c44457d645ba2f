// Package tracer defines the contract between batch drivers and the
// devices that execute the intersection kernel pipeline.
package tracer

import (
	"fmt"
	"time"

	"github.com/mcvine/chord/types"
)

// Sentinel values carried by the result arrays. Downstream physics code
// depends on these exact values; they are part of the wire format.
const (
	// NoHit fills a time slot for which no boundary intersection exists.
	NoHit float32 = -1

	// NoScatter fills a scatter time slot for a ray that passes through
	// without a valid chord.
	NoScatter float32 = -5
)

type UpdateType uint8

const (
	// Replace the solid traced by the next batch. Data is a solid.Solid.
	SetSolid UpdateType = iota

	// Set the attenuation length used by the probability update stage.
	// Data is a float32; zero disables the stage.
	SetAttenuation

	// Toggle scattering site sampling and the stages downstream of it.
	// Data is a bool; sampling starts enabled.
	EnableScatter
)

// RayBatch bundles the host-side state for one batch of N rays together
// with the output collections the pipeline populates. Origins and
// Velocities are immutable for the duration of a batch.
type RayBatch struct {
	Origins    []types.Vec3
	Velocities []types.Vec3

	// Absolute time and survival probability per ray, updated by the
	// propagation and attenuation stages.
	Times         []float32
	Probabilities []float32

	// Entry/exit pair per ray: 2 times and 2 points, NoHit sentinel when
	// fewer than two boundary intersections exist.
	IntersectTimes  []float32
	IntersectPoints []types.Vec3

	// One scattering site per ray; ScatterTimes carries NoScatter for
	// rays without a valid chord.
	ScatterPos   []types.Vec3
	ScatterTimes []float32
}

// NewRayBatch allocates batch state and result collections for the given
// origin/velocity arrays.
func NewRayBatch(origins, velocities []types.Vec3) (*RayBatch, error) {
	if len(origins) != len(velocities) {
		return nil, fmt.Errorf("tracer: origin/velocity length mismatch (%d != %d)", len(origins), len(velocities))
	}

	n := len(origins)
	batch := &RayBatch{
		Origins:         origins,
		Velocities:      velocities,
		Times:           make([]float32, n),
		Probabilities:   make([]float32, n),
		IntersectTimes:  make([]float32, 2*n),
		IntersectPoints: make([]types.Vec3, 2*n),
		ScatterPos:      make([]types.Vec3, n),
		ScatterTimes:    make([]float32, n),
	}
	for i := 0; i < n; i++ {
		batch.Probabilities[i] = 1
	}
	return batch, nil
}

// NumRays returns the batch size N.
func (b *RayBatch) NumRays() int {
	return len(b.Origins)
}

// A unit of work that is processed by a tracer: a contiguous ray range of
// the batch attached via Setup.
type BatchRequest struct {
	// First ray index and number of rays assigned to this tracer.
	RayOffset uint32
	NumRays   uint32

	// Seed for the per-ray random streams. The stream of ray i is derived
	// from Seed and the absolute ray index, so splitting a batch across
	// tracers does not change its results.
	Seed uint32

	// Work-group sizing hint for kernel dispatch. Zero lets the device
	// pick; the value never affects results.
	WorkGroupSize uint32

	// A channel to signal on completion with the number of processed rays.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

// Tracer statistics for the last processed batch.
type Stats struct {
	// Number of rays assigned to this tracer.
	NumRays uint32

	// Time spent executing the kernel pipeline.
	BatchTime time.Duration

	// Time spent committing queued updates.
	UpdateTime time.Duration
}

type Tracer interface {
	// Get tracer id.
	Id() string

	// Shutdown and cleanup tracer.
	Close()

	// Get the tracer's computation speed estimate relative to a baseline
	// single-worker implementation.
	Speed() uint32

	// Attach the batch whose ray ranges subsequent requests refer to.
	Setup(batch *RayBatch) error

	// Enqueue a batch request.
	Enqueue(BatchRequest)

	// Append a change to the tracer's update buffer. Changes are
	// committed before the next batch request is processed.
	Update(UpdateType, interface{})

	// Retrieve last batch statistics.
	Stats() *Stats
}
