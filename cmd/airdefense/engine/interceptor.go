package engine

import (
	"github.com/google/uuid"

	"github.com/sentinelx/sentinelx/pkg/vector"
)

// Interceptor is a counter-object launched toward a predicted intercept
// point. It flies a straight line at launch velocity until it either
// collides with its target or exceeds its lifetime.
//
// TargetID is a weak reference: it names a threat in the caller-owned store
// rather than holding it, so a neutralized threat can never dangle. The
// controller resolves it against the threat slice each tick.
type Interceptor struct {
	ID       uuid.UUID
	Name     string
	Position vector.Vec3
	Velocity vector.Vec3

	Destroyed bool
	Trail     []vector.Vec3

	TargetID uuid.UUID

	// Lifetime is the flight budget in seconds; Elapsed grows
	// monotonically until the interceptor is destroyed.
	Lifetime float64
	Elapsed  float64
}

// Advance steps the interceptor by dt seconds and reports whether it
// expired this step. An interceptor that outlives its budget is destroyed
// without touching any counters; the caller releases the target's
// Targeted flag. A no-op once destroyed.
func (in *Interceptor) Advance(dt float64) (expired bool) {
	if in.Destroyed {
		return false
	}

	in.Elapsed += dt
	if in.Elapsed > in.Lifetime {
		in.Destroyed = true
		return true
	}

	in.Trail = appendTrail(in.Trail, in.Position)
	in.Position = in.Position.Add(in.Velocity.Scale(dt))
	return false
}
