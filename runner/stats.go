package runner

import "time"

type TracerStat struct {
	// The tracer id.
	Id string

	// The number of rays assigned to this tracer and the percentage of
	// the batch they represent.
	NumRays      uint32
	BatchPercent float32

	// Processing time for the assigned block.
	BatchTime time.Duration
}

type BatchStats struct {
	// Individual tracer stats.
	Tracers []TracerStat

	// Total processing time for the entire batch.
	BatchTime time.Duration
}
