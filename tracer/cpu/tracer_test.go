package cpu

import (
	"testing"
	"time"

	"github.com/mcvine/chord/solid"
	"github.com/mcvine/chord/tracer"
	"github.com/mcvine/chord/types"
)

func traceBlock(t *testing.T, tr tracer.Tracer, req tracer.BatchRequest) {
	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)
	req.DoneChan = doneChan
	req.ErrChan = errChan

	tr.Enqueue(req)

	select {
	case <-doneChan:
	case err := <-errChan:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for batch request")
	}
}

func TestTracerPipeline(t *testing.T) {
	origins := []types.Vec3{
		types.XYZ(0, 0, -10),
		types.XYZ(10, 10, -10),
		types.XYZ(-4, 0, 0),
	}
	velocities := []types.Vec3{
		types.XYZ(0, 0, 1),
		types.XYZ(0, 0, 1),
		types.XYZ(1, 0, 0.5),
	}

	batch, err := tracer.NewRayBatch(origins, velocities)
	if err != nil {
		t.Fatal(err)
	}

	tr := NewTracer("test", 2, DefaultPipeline())
	defer tr.Close()

	if err = tr.Setup(batch); err != nil {
		t.Fatal(err)
	}
	tr.Update(tracer.SetSolid, solid.Box{X: 4, Y: 4, Z: 4})
	tr.Update(tracer.SetAttenuation, float32(2.0))

	traceBlock(t, tr, tracer.BatchRequest{
		RayOffset: 0,
		NumRays:   uint32(batch.NumRays()),
		Seed:      42,
	})

	// Ray 0 crosses both Z faces; the pair comes out ordered.
	if !approxEq(batch.IntersectTimes[0], 8) || !approxEq(batch.IntersectTimes[1], 12) {
		t.Fatalf("expected ray 0 pair (8, 12); got (%g, %g)", batch.IntersectTimes[0], batch.IntersectTimes[1])
	}
	if batch.IntersectPoints[0] != types.XYZ(0, 0, -2) || batch.IntersectPoints[1] != types.XYZ(0, 0, 2) {
		t.Fatalf("expected ray 0 points (0,0,-2), (0,0,2); got %v, %v", batch.IntersectPoints[0], batch.IntersectPoints[1])
	}

	// Its scattering site sits on the chord and its state advanced.
	scatT := batch.ScatterTimes[0]
	if scatT < 8 || scatT > 12 {
		t.Fatalf("expected ray 0 scattering time inside [8, 12]; got %g", scatT)
	}
	if batch.Origins[0] != batch.ScatterPos[0] {
		t.Fatalf("expected ray 0 to propagate to its scattering site; got %v", batch.Origins[0])
	}
	if batch.Times[0] != scatT {
		t.Fatalf("expected ray 0 clock to accumulate %g; got %g", scatT, batch.Times[0])
	}
	if batch.Probabilities[0] >= 1 {
		t.Fatalf("expected ray 0 probability to attenuate below 1; got %g", batch.Probabilities[0])
	}

	// Ray 1 misses: sentinel pair, no scattering, state untouched.
	if batch.IntersectTimes[2] != tracer.NoHit || batch.IntersectTimes[3] != tracer.NoHit {
		t.Fatalf("expected ray 1 pair sentinel-filled; got (%g, %g)", batch.IntersectTimes[2], batch.IntersectTimes[3])
	}
	if batch.ScatterTimes[1] != tracer.NoScatter {
		t.Fatalf("expected ray 1 no-scatter sentinel; got %g", batch.ScatterTimes[1])
	}
	if batch.Origins[1] != types.XYZ(10, 10, -10) || batch.Probabilities[1] != 1 {
		t.Fatalf("expected ray 1 state untouched; got %v with probability %g", batch.Origins[1], batch.Probabilities[1])
	}

	// Ray 2 enters through -X and exits through +Z.
	if !approxEq(batch.IntersectTimes[4], 2) || !approxEq(batch.IntersectTimes[5], 4) {
		t.Fatalf("expected ray 2 pair (2, 4); got (%g, %g)", batch.IntersectTimes[4], batch.IntersectTimes[5])
	}

	stats := tr.Stats()
	if stats.NumRays != uint32(batch.NumRays()) {
		t.Fatalf("expected stats for %d rays; got %d", batch.NumRays(), stats.NumRays)
	}
}

func TestTracerBlockSplitInvariance(t *testing.T) {
	const numRays = 64

	makeBatch := func() *tracer.RayBatch {
		origins := make([]types.Vec3, numRays)
		velocities := make([]types.Vec3, numRays)
		for i := 0; i < numRays; i++ {
			origins[i] = types.XYZ(float32(i%8)*0.4-1.4, float32(i/8)*0.4-1.4, -10)
			velocities[i] = types.XYZ(0, 0, 1)
		}
		batch, err := tracer.NewRayBatch(origins, velocities)
		if err != nil {
			t.Fatal(err)
		}
		return batch
	}

	trace := func(batch *tracer.RayBatch, blocks []uint32) {
		tr := NewTracer("test", 4, DefaultPipeline())
		defer tr.Close()

		if err := tr.Setup(batch); err != nil {
			t.Fatal(err)
		}
		tr.Update(tracer.SetSolid, solid.Sphere{Radius: 2})

		var offset uint32
		for _, block := range blocks {
			traceBlock(t, tr, tracer.BatchRequest{
				RayOffset: offset,
				NumRays:   block,
				Seed:      7,
			})
			offset += block
		}
	}

	whole := makeBatch()
	trace(whole, []uint32{numRays})

	split := makeBatch()
	trace(split, []uint32{numRays / 4, 3 * numRays / 4})

	for i := 0; i < numRays; i++ {
		if whole.ScatterTimes[i] != split.ScatterTimes[i] {
			t.Fatalf("expected ray %d scattering time to be split-invariant; got %g and %g",
				i, whole.ScatterTimes[i], split.ScatterTimes[i])
		}
		if whole.IntersectTimes[2*i] != split.IntersectTimes[2*i] {
			t.Fatalf("expected ray %d entry time to be split-invariant; got %g and %g",
				i, whole.IntersectTimes[2*i], split.IntersectTimes[2*i])
		}
	}
}

func TestTracerEnqueueBackpressure(t *testing.T) {
	batch, err := tracer.NewRayBatch(
		[]types.Vec3{types.XYZ(0, 0, -10)},
		[]types.Vec3{types.XYZ(0, 0, 1)},
	)
	if err != nil {
		t.Fatal(err)
	}

	tr := NewTracer("test", 1, DefaultPipeline())
	defer tr.Close()

	if err = tr.Setup(batch); err != nil {
		t.Fatal(err)
	}
	tr.Update(tracer.SetSolid, solid.Sphere{Radius: 2})

	// Flood the tracer with more requests than the queue holds; none may
	// be dropped, every request must eventually signal completion.
	const numReqs = 40
	doneChan := make(chan uint32, numReqs)
	errChan := make(chan error, numReqs)
	for i := 0; i < numReqs; i++ {
		tr.Enqueue(tracer.BatchRequest{
			NumRays:  1,
			Seed:     42,
			DoneChan: doneChan,
			ErrChan:  errChan,
		})
	}

	for i := 0; i < numReqs; i++ {
		select {
		case <-doneChan:
		case err = <-errChan:
			t.Fatal(err)
		case <-time.After(5 * time.Second):
			t.Fatalf("timeout waiting for request %d of %d", i+1, numReqs)
		}
	}
}

func TestTracerScatterToggle(t *testing.T) {
	batch, err := tracer.NewRayBatch(
		[]types.Vec3{types.XYZ(0, 0, -10)},
		[]types.Vec3{types.XYZ(0, 0, 1)},
	)
	if err != nil {
		t.Fatal(err)
	}

	tr := NewTracer("test", 1, DefaultPipeline())
	defer tr.Close()

	if err = tr.Setup(batch); err != nil {
		t.Fatal(err)
	}
	tr.Update(tracer.SetSolid, solid.Sphere{Radius: 2})
	tr.Update(tracer.EnableScatter, false)

	traceBlock(t, tr, tracer.BatchRequest{NumRays: 1, Seed: 42})

	// The chord is still found but no site is drawn and the ray stays put.
	if !approxEq(batch.IntersectTimes[0], 8) || !approxEq(batch.IntersectTimes[1], 12) {
		t.Fatalf("expected pair (8, 12); got (%g, %g)", batch.IntersectTimes[0], batch.IntersectTimes[1])
	}
	if batch.ScatterTimes[0] != tracer.NoScatter {
		t.Fatalf("expected the no-scatter sentinel; got %g", batch.ScatterTimes[0])
	}
	if batch.Origins[0] != types.XYZ(0, 0, -10) || batch.Times[0] != 0 {
		t.Fatalf("expected ray state untouched; got %v at t=%g", batch.Origins[0], batch.Times[0])
	}
}

func TestTracerSetupErrors(t *testing.T) {
	tr := NewTracer("test", 1, DefaultPipeline())
	defer tr.Close()

	if err := tr.Setup(nil); err != ErrNoBatch {
		t.Fatalf("expected ErrNoBatch; got %v", err)
	}

	batch, err := tracer.NewRayBatch(make([]types.Vec3, 4), make([]types.Vec3, 4))
	if err != nil {
		t.Fatal(err)
	}
	batch.IntersectTimes = batch.IntersectTimes[:3]
	if err = tr.Setup(batch); err != ErrBatchMismatch {
		t.Fatalf("expected ErrBatchMismatch; got %v", err)
	}
}

func TestTracerNoSolid(t *testing.T) {
	batch, err := tracer.NewRayBatch(make([]types.Vec3, 4), make([]types.Vec3, 4))
	if err != nil {
		t.Fatal(err)
	}

	tr := NewTracer("test", 1, DefaultPipeline())
	defer tr.Close()

	if err = tr.Setup(batch); err != nil {
		t.Fatal(err)
	}

	doneChan := make(chan uint32, 1)
	errChan := make(chan error, 1)
	tr.Enqueue(tracer.BatchRequest{
		NumRays:  4,
		DoneChan: doneChan,
		ErrChan:  errChan,
	})

	select {
	case <-doneChan:
		t.Fatal("expected batch without a solid to fail")
	case err = <-errChan:
		if err != ErrNoSolid {
			t.Fatalf("expected ErrNoSolid; got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for batch request")
	}
}
