package cpu

import (
	"runtime"
	"sync"
	"time"
)

// A Device executes per-ray kernels across a pool of goroutine workers.
// It is the CPU stand-in for a compute device command queue: one kernel
// invocation per index, grouped into work-groups, with a full barrier
// before Exec1D returns.
type Device struct {
	// Device name, used in logs and stats.
	Name string

	// Number of concurrent workers.
	Workers int
}

// Create a new device backed by the given number of workers. A value of
// zero or less selects one worker per CPU.
func NewDevice(name string, workers int) *Device {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Device{
		Name:    name,
		Workers: workers,
	}
}

// Execute a 1D kernel over the index range [offset, offset+globalWorkSize).
// If localWorkSize is equal to 0 the device will pick a work-group split
// matching its worker count. Work-group sizing never affects results;
// kernels write disjoint per-index data.
func (d *Device) Exec1D(offset, globalWorkSize, localWorkSize int, kernel func(index int)) (time.Duration, error) {
	if offset < 0 || globalWorkSize < 0 || localWorkSize < 0 {
		return 0, ErrInvalidWorkSize
	}
	if globalWorkSize == 0 {
		return 0, nil
	}
	if localWorkSize == 0 {
		localWorkSize = (globalWorkSize + d.Workers - 1) / d.Workers
	}

	tick := time.Now()

	var wg sync.WaitGroup
	for begin := offset; begin < offset+globalWorkSize; begin += localWorkSize {
		end := begin + localWorkSize
		if end > offset+globalWorkSize {
			end = offset + globalWorkSize
		}

		wg.Add(1)
		go func(begin, end int) {
			defer wg.Done()
			for index := begin; index < end; index++ {
				kernel(index)
			}
		}(begin, end)
	}
	wg.Wait()

	return time.Since(tick), nil
}
