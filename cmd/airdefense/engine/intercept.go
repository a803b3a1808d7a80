package engine

import (
	"errors"
	"math"

	"github.com/sentinelx/sentinelx/pkg/vector"
)

// ErrNoIntercept indicates the current geometry admits no straight-line
// intercept at the configured interceptor speed. The caller skips the
// threat this tick; the geometry may become solvable on a later one.
var ErrNoIntercept = errors.New("no feasible intercept trajectory")

const epsilon = 1e-6

// InterceptTime solves for the smallest strictly-positive time t at which
// an interceptor launched from defensePos at speed interceptorSpeed reaches
// the threat's extrapolated position threatPos + threatVel*t.
//
// With R = threatPos - defensePos and V = threatVel, t satisfies
// |R + V*t| = S*t, i.e. the quadratic a*t^2 + b*t + c = 0 with
// a = V·V - S^2, b = 2*R·V, c = R·R. When |a| is negligible the closing
// speed equals S and the equation degenerates to the linear b*t + c = 0.
func InterceptTime(defensePos, threatPos, threatVel vector.Vec3, interceptorSpeed float64) (float64, error) {
	r := threatPos.Sub(defensePos)
	v := threatVel
	s := interceptorSpeed

	a := v.Dot(v) - s*s
	b := 2 * r.Dot(v)
	c := r.Dot(r)

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, ErrNoIntercept
	}

	if math.Abs(a) < epsilon {
		if math.Abs(b) < epsilon {
			return 0, ErrNoIntercept
		}
		t := -c / b
		if t > 0 {
			return t, nil
		}
		return 0, ErrNoIntercept
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b + sqrtDisc) / (2 * a)
	t2 := (-b - sqrtDisc) / (2 * a)

	// Smallest strictly-positive root.
	best := 0.0
	for _, t := range [2]float64{t1, t2} {
		if t > 0 && (best == 0 || t < best) {
			best = t
		}
	}
	if best == 0 {
		return 0, ErrNoIntercept
	}
	return best, nil
}
