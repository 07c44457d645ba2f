// Package cpu implements the tracer contract with the intersection kernel
// pipeline executed on goroutine work-groups.
package cpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/mcvine/chord/log"
	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/tracer"
)

type Tracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The device executing this tracer's kernels.
	device *Device

	// The tracer id.
	id string

	// The batch pipeline.
	pipeline *Pipeline

	// A buffer for queuing updates. Updates are grouped by type and
	// latest updates always overwrite the previous ones.
	updateBuffer map[tracer.UpdateType]interface{}

	// A channel for receiving batch requests from the runner.
	batchReqChan chan tracer.BatchRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for the last processed batch.
	stats *tracer.Stats

	// The attached ray batch and the per-call scratch buffers.
	batch   *tracer.RayBatch
	scratch *bufferSet

	// Committed solid, attenuation length and scatter toggle.
	solid   solid.Solid
	atten   float32
	scatter bool
}

// Create a new cpu tracer backed by the given number of workers. A value
// of zero or less selects one worker per CPU.
func NewTracer(id string, workers int, pipeline *Pipeline) tracer.Tracer {
	dev := NewDevice(id, workers)

	return &Tracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		device:       dev,
		id:           id,
		pipeline:     pipeline,
		updateBuffer: make(map[tracer.UpdateType]interface{}),
		batchReqChan: make(chan tracer.BatchRequest, 16),
		stats:        &tracer.Stats{},
		scatter:      true,
	}
}

// Get tracer id.
func (tr *Tracer) Id() string {
	return tr.id
}

// Get the computation speed estimate: the number of device workers.
func (tr *Tracer) Speed() uint32 {
	return uint32(tr.device.Workers)
}

// Attach the batch whose ray ranges subsequent requests refer to and
// start the request worker.
func (tr *Tracer) Setup(batch *tracer.RayBatch) error {
	tr.Lock()
	defer tr.Unlock()

	if batch == nil {
		return ErrNoBatch
	}
	n := batch.NumRays()
	if len(batch.Times) != n || len(batch.Probabilities) != n ||
		len(batch.IntersectTimes) != 2*n || len(batch.IntersectPoints) != 2*n ||
		len(batch.ScatterPos) != n || len(batch.ScatterTimes) != n {
		return ErrBatchMismatch
	}

	tr.batch = batch
	if tr.closeChan == nil {
		tr.startWorker()
	}

	return nil
}

// Shutdown and cleanup tracer.
func (tr *Tracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan != nil {
		tr.closeChan <- struct{}{}

		// wait for worker to ack close and shutdown channel
		<-tr.closeChan
		close(tr.closeChan)
		tr.closeChan = nil
	}

	tr.batch = nil
	tr.scratch = nil
}

// Enqueue batch request. Requests are never dropped: callers wait for a
// completion signal per request, so when the queue is full the send blocks
// until the worker frees a slot.
func (tr *Tracer) Enqueue(req tracer.BatchRequest) {
	tr.batchReqChan <- req
}

// Append a change to the tracer's update buffer.
func (tr *Tracer) Update(updateType tracer.UpdateType, data interface{}) {
	tr.Lock()
	defer tr.Unlock()

	tr.updateBuffer[updateType] = data
}

// Retrieve last batch statistics.
func (tr *Tracer) Stats() *tracer.Stats {
	return tr.stats
}

// Commit queued changes.
func (tr *Tracer) commitUpdates() error {
	tr.Lock()
	defer tr.Unlock()

	for updateType, data := range tr.updateBuffer {
		switch updateType {
		case tracer.SetSolid:
			sol, ok := data.(solid.Solid)
			if !ok {
				return fmt.Errorf("cpu tracer (%s): unsupported solid payload type %T", tr.id, data)
			}
			if err := sol.Validate(); err != nil {
				return err
			}
			tr.solid = sol
		case tracer.SetAttenuation:
			atten, ok := data.(float32)
			if !ok {
				return fmt.Errorf("cpu tracer (%s): unsupported attenuation payload type %T", tr.id, data)
			}
			tr.atten = atten
		case tracer.EnableScatter:
			enabled, ok := data.(bool)
			if !ok {
				return fmt.Errorf("cpu tracer (%s): unsupported scatter toggle payload type %T", tr.id, data)
			}
			tr.scatter = enabled
		default:
			return fmt.Errorf("cpu tracer (%s): unsupported update type %d", tr.id, updateType)
		}
	}

	tr.updateBuffer = make(map[tracer.UpdateType]interface{})
	return nil
}

// Spawn a go-routine to process batch requests.
func (tr *Tracer) startWorker() {
	readyChan := make(chan struct{})
	tr.closeChan = make(chan struct{})

	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		close(readyChan)
		for {
			select {
			case req := <-tr.batchReqChan:
				startTime := time.Now()
				if err := tr.commitUpdates(); err != nil {
					req.ErrChan <- err
					continue
				}
				updateTime := time.Since(startTime)

				startTime = time.Now()
				if err := tr.processBatch(&req); err != nil {
					req.ErrChan <- err
					continue
				}

				tr.stats = &tracer.Stats{
					NumRays:    req.NumRays,
					BatchTime:  time.Since(startTime),
					UpdateTime: updateTime,
				}

				req.DoneChan <- req.NumRays
			case <-tr.closeChan:
				// Ack close
				tr.closeChan <- struct{}{}
				return
			}
		}
	}()

	// Wait for go-routine to start
	<-readyChan
}

// Execute the kernel pipeline for one batch request. Scratch buffers live
// exactly as long as this call.
func (tr *Tracer) processBatch(req *tracer.BatchRequest) error {
	if tr.batch == nil {
		return ErrNoBatch
	}
	if tr.solid == nil {
		return ErrNoSolid
	}
	if int(req.RayOffset)+int(req.NumRays) > tr.batch.NumRays() {
		return ErrBatchMismatch
	}

	tr.scratch = newBufferSet()
	if err := tr.scratch.Resize(int(req.NumRays), tr.solid.Faces()); err != nil {
		return err
	}
	defer func() {
		tr.scratch.Release()
		tr.scratch = nil
	}()

	for _, stage := range tr.pipeline.stages() {
		stageTime, err := stage(tr, req)
		if err != nil {
			return err
		}
		tr.logger.Debugf("stage completed in %s", stageTime)
	}

	return nil
}

// Select the candidate intersection kernel for the committed solid. The
// returned kernel reads the ray at off+i and fills ray i's scratch slots.
func (tr *Tracer) intersectKernel(off int) (func(i int), error) {
	batch := tr.batch
	scratch := tr.scratch

	cursorFor := func(i int) *pointCursor {
		return newPointCursor(scratch.CandidatePoints[pointSlotsPerRay*i : pointSlotsPerRay*(i+1)])
	}

	switch s := tr.solid.(type) {
	case solid.Box:
		return func(i int) {
			intersectBox(batch.Origins[off+i], batch.Velocities[off+i], s,
				scratch.CandidateTimes[6*i:6*(i+1)], cursorFor(i))
		}, nil
	case solid.Sphere:
		return func(i int) {
			intersectSphere(batch.Origins[off+i], batch.Velocities[off+i], s,
				scratch.CandidateTimes[2*i:2*(i+1)], cursorFor(i))
		}, nil
	case solid.Cylinder:
		return func(i int) {
			intersectCylinder(batch.Origins[off+i], batch.Velocities[off+i], s,
				scratch.CandidateTimes[4*i:4*(i+1)], cursorFor(i))
		}, nil
	case solid.Pyramid:
		return func(i int) {
			intersectPyramid(batch.Origins[off+i], batch.Velocities[off+i], s,
				scratch.CandidateTimes[5*i:5*(i+1)], cursorFor(i))
		}, nil
	}
	return nil, fmt.Errorf("cpu tracer (%s): no intersection kernel for solid type %s", tr.id, tr.solid.Type())
}
