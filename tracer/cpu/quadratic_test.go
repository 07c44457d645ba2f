package cpu

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestSolveQuadratic(t *testing.T) {
	type spec struct {
		a, b, c float32
		expX0   float32
		expX1   float32
		expOK   bool
	}
	specs := []spec{
		// (x-2)(x-3) = 0
		{1, -5, 6, 2, 3, true},
		// roots reported in ascending order regardless of sign of b
		{1, 5, 6, -3, -2, true},
		// no real roots
		{1, 0, 1, 0, 0, false},
		// double root at x = 4
		{1, -8, 16, 4, 4, true},
		// b dominates 4ac; the textbook formula loses the small root here
		{1, -10, 0.25, 0.0250628, 9.9749372, true},
	}

	for index, s := range specs {
		x0, x1, ok := solveQuadratic(s.a, s.b, s.c)
		if ok != s.expOK {
			t.Fatalf("[spec %d] expected ok %t; got %t", index, s.expOK, ok)
		}
		if !ok {
			continue
		}
		if !approxEq(x0, s.expX0) || !approxEq(x1, s.expX1) {
			t.Fatalf("[spec %d] expected roots (%g, %g); got (%g, %g)", index, s.expX0, s.expX1, x0, x1)
		}
		if x0 > x1 {
			t.Fatalf("[spec %d] roots out of order: %g > %g", index, x0, x1)
		}
	}
}

func approxEq(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}
