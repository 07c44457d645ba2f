package cpu

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/mcvine/chord/tracer"
	"github.com/mcvine/chord/types"
)

// An alias for functions that can be used as stages of the batch pipeline.
type PipelineStage func(tr *Tracer, req *tracer.BatchRequest) (time.Duration, error)

// The ordered list of stages executed for every batch request. Stages run
// strictly in sequence with a full barrier in between: each stage only
// starts once the previous one has finished for every ray in the block.
type Pipeline struct {
	// Prefill scratch and result buffers with their sentinel values and
	// seed the per-ray random streams.
	Init PipelineStage

	// Evaluate the per-face candidate intersections for the attached
	// solid.
	Intersect PipelineStage

	// Compact each ray's candidates into the canonical entry/exit pair.
	Reduce PipelineStage

	// Enforce entry time <= exit time, swapping times and points as a
	// unit.
	Order PipelineStage

	// Sample one scattering site per ray chord. May be nil to stop the
	// pipeline after the ordered pairs.
	Sample PipelineStage

	// Optional stages executed after sampling.
	PostProcess []PipelineStage
}

// DefaultPipeline assembles the standard intersect/reduce/order/sample
// sequence followed by the scattering physics updates.
func DefaultPipeline() *Pipeline {
	return &Pipeline{
		Init:      InitBuffers(),
		Intersect: IntersectSolid(),
		Reduce:    SimplifyPairs(),
		Order:     OrderPairs(),
		Sample:    SampleScatterSites(),
		PostProcess: []PipelineStage{
			PropagateRays(),
			UpdateProbabilities(),
		},
	}
}

// stages returns the pipeline's non-nil stages in execution order.
func (p *Pipeline) stages() []PipelineStage {
	out := make([]PipelineStage, 0, 5+len(p.PostProcess))
	for _, stage := range []PipelineStage{p.Init, p.Intersect, p.Reduce, p.Order, p.Sample} {
		if stage != nil {
			out = append(out, stage)
		}
	}
	return append(out, p.PostProcess...)
}

// Prefill the candidate buffers with the miss sentinel, the point buffers
// with FLT_MAX and seed the per-ray random streams.
func InitBuffers() PipelineStage {
	return func(tr *Tracer, req *tracer.BatchRequest) (time.Duration, error) {
		tick := time.Now()

		unwritten := types.XYZ(math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32)
		initArray(tr.scratch.CandidateTimes, tracer.NoHit)
		initArray(tr.scratch.CandidatePoints, unwritten)

		off, n := int(req.RayOffset), int(req.NumRays)
		initArray(tr.batch.ScatterPos[off:off+n], unwritten)
		initArray(tr.batch.ScatterTimes[off:off+n], tracer.NoScatter)

		tr.scratch.RandStates = prepRand(n, req.RayOffset, req.Seed)

		return time.Since(tick), nil
	}
}

// Run the attached solid's candidate intersection kernel.
func IntersectSolid() PipelineStage {
	return func(tr *Tracer, req *tracer.BatchRequest) (time.Duration, error) {
		kernel, err := tr.intersectKernel(int(req.RayOffset))
		if err != nil {
			return 0, err
		}
		return tr.device.Exec1D(0, int(req.NumRays), int(req.WorkGroupSize), kernel)
	}
}

// Compact the candidate buffers into the batch's entry/exit collections.
func SimplifyPairs() PipelineStage {
	return func(tr *Tracer, req *tracer.BatchRequest) (time.Duration, error) {
		off := int(req.RayOffset)
		faces := tr.solid.Faces()
		scratch := tr.scratch
		simpTimes := tr.batch.IntersectTimes[2*off:]
		simpPoints := tr.batch.IntersectPoints[2*off:]

		return tr.device.Exec1D(0, int(req.NumRays), int(req.WorkGroupSize), func(i int) {
			simplifyTimePointPairs(i, scratch.CandidateTimes, scratch.CandidatePoints,
				faces, pointSlotsPerRay, pointSlotsPerRay, simpTimes, simpPoints)
		})
	}
}

// Enforce the entry/exit ordering invariant on the batch collections.
func OrderPairs() PipelineStage {
	return func(tr *Tracer, req *tracer.BatchRequest) (time.Duration, error) {
		off := int(req.RayOffset)
		simpTimes := tr.batch.IntersectTimes[2*off:]
		simpPoints := tr.batch.IntersectPoints[2*off:]

		return tr.device.Exec1D(0, int(req.NumRays), int(req.WorkGroupSize), func(i int) {
			forceIntersectionOrder(i, simpTimes, simpPoints)
		})
	}
}

// Draw one scattering site per ray chord. The stage is a no-op while
// scattering is toggled off.
func SampleScatterSites() PipelineStage {
	return func(tr *Tracer, req *tracer.BatchRequest) (time.Duration, error) {
		if !tr.scatter {
			return 0, nil
		}

		off := int(req.RayOffset)
		scratch := tr.scratch
		simpTimes := tr.batch.IntersectTimes[2*off:]
		simpPoints := tr.batch.IntersectPoints[2*off:]
		scatPos := tr.batch.ScatterPos[off:]
		scatTimes := tr.batch.ScatterTimes[off:]

		return tr.device.Exec1D(0, int(req.NumRays), int(req.WorkGroupSize), func(i int) {
			calcScatteringSites(i, simpTimes, simpPoints, scatPos, scatTimes, scratch.RandStates)
		})
	}
}

// Move scattered rays to their scattering sites and advance their clocks.
func PropagateRays() PipelineStage {
	return func(tr *Tracer, req *tracer.BatchRequest) (time.Duration, error) {
		if !tr.scatter {
			return 0, nil
		}

		off := int(req.RayOffset)
		origins := tr.batch.Origins[off:]
		rayTimes := tr.batch.Times[off:]
		scatPos := tr.batch.ScatterPos[off:]
		scatTimes := tr.batch.ScatterTimes[off:]

		return tr.device.Exec1D(0, int(req.NumRays), int(req.WorkGroupSize), func(i int) {
			propagate(i, origins, rayTimes, scatPos, scatTimes)
		})
	}
}

// Apply attenuation along the entry-to-scatter path. The stage is a no-op
// until a positive attenuation length is set on the tracer.
func UpdateProbabilities() PipelineStage {
	return func(tr *Tracer, req *tracer.BatchRequest) (time.Duration, error) {
		if !tr.scatter || tr.atten <= 0 {
			return 0, nil
		}

		off := int(req.RayOffset)
		atten := tr.atten
		probs := tr.batch.Probabilities[off:]
		entryPts := tr.batch.IntersectPoints[2*off:]
		scatPos := tr.batch.ScatterPos[off:]
		scatTimes := tr.batch.ScatterTimes[off:]

		return tr.device.Exec1D(0, int(req.NumRays), int(req.WorkGroupSize), func(i int) {
			updateProbability(i, probs, scatPos, entryPts, scatTimes, atten)
		})
	}
}
