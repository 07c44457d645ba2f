package cpu

import "github.com/chewxy/math32"

// solveQuadratic finds the real roots of a*x^2 + b*x + c = 0 and reports
// whether any exist. On success x0 <= x1; a double root is returned twice.
//
// The roots are computed through q = -(b + sign(b)*sqrt(b^2-4ac))/2 with
// x0 = q/a and x1 = c/q, which avoids the catastrophic cancellation of the
// textbook formula when b dominates 4ac. A zero leading coefficient is not
// handled here; callers short-circuit rays whose relevant velocity
// components vanish before building the coefficients.
func solveQuadratic(a, b, c float32) (x0, x1 float32, ok bool) {
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return 0, 0, false
	case disc == 0:
		x0 = -0.5 * b / a
		return x0, x0, true
	}

	var q float32
	if b < 0 {
		q = -0.5 * (b - math32.Sqrt(disc))
	} else {
		q = -0.5 * (b + math32.Sqrt(disc))
	}

	x0 = q / a
	x1 = c / q
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return x0, x1, true
}
