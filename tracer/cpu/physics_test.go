package cpu

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/mcvine/chord/tracer"
	"github.com/mcvine/chord/types"
)

func TestPropagate(t *testing.T) {
	origins := []types.Vec3{types.XYZ(0, 0, -10), types.XYZ(5, 5, -10)}
	rayTimes := []float32{1, 1}
	scatPos := []types.Vec3{types.XYZ(0, 0, 1), {}}
	scatTimes := []float32{9.5, tracer.NoScatter}

	for i := 0; i < 2; i++ {
		propagate(i, origins, rayTimes, scatPos, scatTimes)
	}

	if origins[0] != scatPos[0] {
		t.Fatalf("expected scattered ray to move to %v; got %v", scatPos[0], origins[0])
	}
	if rayTimes[0] != 10.5 {
		t.Fatalf("expected scattered ray clock at 10.5; got %g", rayTimes[0])
	}

	if origins[1] != types.XYZ(5, 5, -10) || rayTimes[1] != 1 {
		t.Fatalf("expected pass-through ray to be untouched; got %v at t=%g", origins[1], rayTimes[1])
	}
}

func TestUpdateProbability(t *testing.T) {
	probs := []float32{1, 0.5}
	entryPts := []types.Vec3{
		types.XYZ(0, 0, -2), {},
		{}, {},
	}
	scatPos := []types.Vec3{types.XYZ(0, 0, 1), {}}
	scatTimes := []float32{9.5, tracer.NoScatter}

	for i := 0; i < 2; i++ {
		updateProbability(i, probs, scatPos, entryPts, scatTimes, 2.0)
	}

	// Path length from entry (0,0,-2) to site (0,0,1) is 3.
	exp := math32.Exp(-3.0 / 2.0)
	if math32.Abs(probs[0]-exp) > 1e-6 {
		t.Fatalf("expected attenuated probability %g; got %g", exp, probs[0])
	}
	if probs[1] != 0.5 {
		t.Fatalf("expected pass-through probability to be untouched; got %g", probs[1])
	}
}
