package runner

type Options struct {
	// Number of cpu tracers to attach. A value of zero or less selects
	// a single tracer.
	NumTracers int

	// Number of device workers per tracer. A value of zero or less
	// selects one worker per CPU.
	WorkersPerTracer int

	// Work-group size hint forwarded with every batch request. Zero
	// lets the device pick an even split across its workers.
	WorkGroupSize uint32

	// Attenuation length for the probability update stage. Zero
	// disables attenuation.
	Attenuation float32

	// Skip scattering site sampling; the batch stops after the ordered
	// entry/exit pairs.
	DisableScatter bool
}
