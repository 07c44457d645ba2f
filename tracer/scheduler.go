package tracer

import "math"

// The BlockScheduler interface is implemented by all batch scheduling
// algorithms.
type BlockScheduler interface {
	// Split a batch of numRays rays into contiguous blocks and assign one
	// to each tracer in the pool, using feedback collected from previous
	// batches where available.
	//
	// This function returns the block size assignment for each tracer in
	// the input list; assignments always sum to numRays.
	Schedule(tracers []Tracer, numRays uint32) []uint32
}

// The naive scheduler splits the batch proportionally to each tracer's
// static speed estimate.
type naiveScheduler struct {
	blockAssignment []uint32
}

// Create a new naive scheduler instance.
func NewNaiveScheduler() BlockScheduler {
	return &naiveScheduler{}
}

func (sch *naiveScheduler) Schedule(tracers []Tracer, numRays uint32) []uint32 {
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
	}

	var total float64
	for _, tr := range tracers {
		total += float64(tr.Speed())
	}
	scaler := float64(numRays) / total

	for idx, tr := range tracers {
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(float64(tr.Speed())*scaler)))
	}

	rebalanceBlocks(sch.blockAssignment, numRays)

	return sch.blockAssignment
}

// rebalanceBlocks adjusts a block assignment whose per-tracer rounding
// over- or under-shot the batch size so that the blocks sum to numRays
// again. A surplus is assigned to the first tracer; a deficit is taken
// back from the end of the pool, emptying blocks when the pool has more
// tracers than the batch has rays.
func rebalanceBlocks(blocks []uint32, numRays uint32) {
	var scheduled uint32
	for _, block := range blocks {
		scheduled += block
	}

	if scheduled <= numRays {
		blocks[0] += numRays - scheduled
		return
	}

	excess := scheduled - numRays
	for idx := len(blocks) - 1; idx >= 0 && excess > 0; idx-- {
		take := blocks[idx]
		if take > excess {
			take = excess
		}
		blocks[idx] -= take
		excess -= take
	}
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent batches is approximately the same and uses the rays/time ratio
// of the previous batch to rebalance the pool.
type perfectScheduler struct {
	blockAssignment []uint32
	naive           BlockScheduler
}

// Create a new perfect scheduler instance.
func NewPerfectScheduler() BlockScheduler {
	return &perfectScheduler{naive: NewNaiveScheduler()}
}

// Split a batch into blocks of variable size and assign to the pool of
// tracers using feedback collected from previous batches.
//
// The first invocation (and any invocation after the pool changes size)
// falls back to the naive speed-estimate split. Subsequent invocations
// assign tracer w a share proportional to (numRays_w / batchTime_w) from
// the previous batch.
func (sch *perfectScheduler) Schedule(tracers []Tracer, numRays uint32) []uint32 {
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
		copy(sch.blockAssignment, sch.naive.Schedule(tracers, numRays))
		return sch.blockAssignment
	}

	// Use last batch statistics. A tracer without usable feedback (an
	// empty block or a zero batch time) would poison the ratios with
	// Inf/NaN, so the whole call falls back to the naive split.
	var total float64
	for _, tr := range tracers {
		stats := tr.Stats()
		if stats.NumRays == 0 || stats.BatchTime <= 0 {
			copy(sch.blockAssignment, sch.naive.Schedule(tracers, numRays))
			return sch.blockAssignment
		}
		total += float64(stats.NumRays) / float64(stats.BatchTime)
	}

	scaler := float64(numRays) / total
	for idx, tr := range tracers {
		stats := tr.Stats()
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(float64(stats.NumRays)/float64(stats.BatchTime)*scaler)))
	}

	rebalanceBlocks(sch.blockAssignment, numRays)

	return sch.blockAssignment
}
