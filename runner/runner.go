// Package runner coordinates a set of tracers processing slices of a
// shared ray batch.
package runner

import (
	"fmt"
	"time"

	"github.com/mcvine/chord/log"
	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/tracer"
	"github.com/mcvine/chord/tracer/cpu"
)

type Runner interface {
	// Process the attached batch, splitting it between the attached
	// tracers.
	Run(seed uint32) (BatchStats, error)

	// Shutdown runner and any attached tracer.
	Close()
}

type defaultRunner struct {
	logger log.Logger

	options   Options
	batch     *tracer.RayBatch
	scheduler tracer.BlockScheduler
	tracers   []tracer.Tracer

	// Shared channels for tracer completion signals.
	doneChan chan uint32
	errChan  chan error
}

// Create a new runner that splits the given batch between a set of cpu
// tracers using the supplied block scheduler.
func NewDefault(batch *tracer.RayBatch, sol solid.Solid, scheduler tracer.BlockScheduler, opts Options) (Runner, error) {
	if batch == nil {
		return nil, ErrBatchNotDefined
	}
	if sol == nil {
		return nil, ErrSolidNotDefined
	}
	if err := sol.Validate(); err != nil {
		return nil, err
	}

	if opts.NumTracers <= 0 {
		opts.NumTracers = 1
	}

	r := &defaultRunner{
		logger:    log.New("runner"),
		options:   opts,
		batch:     batch,
		scheduler: scheduler,
		tracers:   make([]tracer.Tracer, opts.NumTracers),
		doneChan:  make(chan uint32, opts.NumTracers),
		errChan:   make(chan error, opts.NumTracers),
	}

	for i := 0; i < opts.NumTracers; i++ {
		tr := cpu.NewTracer(fmt.Sprintf("cpu-%d", i), opts.WorkersPerTracer, cpu.DefaultPipeline())
		if err := tr.Setup(batch); err != nil {
			r.Close()
			return nil, err
		}

		tr.Update(tracer.SetSolid, sol)
		if opts.Attenuation > 0 {
			tr.Update(tracer.SetAttenuation, opts.Attenuation)
		}
		if opts.DisableScatter {
			tr.Update(tracer.EnableScatter, false)
		}

		r.tracers[i] = tr
	}

	return r, nil
}

func (r *defaultRunner) Close() {
	for _, tr := range r.tracers {
		if tr != nil {
			tr.Close()
		}
	}
	r.tracers = nil
}

func (r *defaultRunner) Run(seed uint32) (BatchStats, error) {
	if len(r.tracers) == 0 {
		return BatchStats{}, ErrNoTracers
	}

	numRays := uint32(r.batch.NumRays())
	blocks := r.scheduler.Schedule(r.tracers, numRays)
	r.logger.Debugf("block assignment: %v", blocks)

	start := time.Now()
	var offset uint32
	for i, tr := range r.tracers {
		tr.Enqueue(tracer.BatchRequest{
			RayOffset:     offset,
			NumRays:       blocks[i],
			Seed:          seed,
			WorkGroupSize: r.options.WorkGroupSize,
			DoneChan:      r.doneChan,
			ErrChan:       r.errChan,
		})
		offset += blocks[i]
	}

	var pending = len(r.tracers)
	for pending > 0 {
		select {
		case <-r.doneChan:
			pending--
		case err := <-r.errChan:
			return BatchStats{}, err
		}
	}

	stats := BatchStats{
		Tracers:   make([]TracerStat, len(r.tracers)),
		BatchTime: time.Since(start),
	}
	for i, tr := range r.tracers {
		trStats := tr.Stats()
		stats.Tracers[i] = TracerStat{
			Id:           tr.Id(),
			NumRays:      trStats.NumRays,
			BatchPercent: float32(trStats.NumRays) * 100.0 / float32(numRays),
			BatchTime:    trStats.BatchTime,
		}
	}

	return stats, nil
}
