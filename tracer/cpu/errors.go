package cpu

import "errors"

var (
	ErrNoSolid         = errors.New("cpu tracer: no solid defined")
	ErrNoBatch         = errors.New("cpu tracer: no batch attached")
	ErrBatchMismatch   = errors.New("cpu tracer: batch result buffers incorrectly sized")
	ErrInvalidWorkSize = errors.New("cpu device: work sizes must be non-negative")

	ErrInvalidBufferDims = errors.New("cpu tracer: scratch buffer dimensions must be positive")
)
