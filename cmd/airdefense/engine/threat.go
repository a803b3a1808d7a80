// Package engine implements the air-defense engagement core: entity motion
// models, intercept-time prediction, capacity-constrained launch assignment,
// and per-tick collision resolution.
package engine

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/sentinelx/sentinelx/pkg/vector"
)

// ThreatKind identifies the motion model of a threat.
type ThreatKind string

const (
	// KindBallistic threats fall under constant gravity with no speed bound.
	KindBallistic ThreatKind = "BALLISTIC"
	// KindEvasive threats apply randomized lateral acceleration with their
	// speed clamped to [MinEvasiveSpeed, MaxEvasiveSpeed].
	KindEvasive ThreatKind = "EVASIVE"
)

const (
	gravityAccel    = 9.8
	evasionStrength = 100.0

	// MinEvasiveSpeed and MaxEvasiveSpeed bound an evasive threat's speed.
	MinEvasiveSpeed = 200.0
	MaxEvasiveSpeed = 800.0

	// TrailLimit caps every entity's position trail; oldest entries are
	// evicted first.
	TrailLimit = 200
)

// Threat is an airborne object the defense must neutralize. Threats are
// owned by the run-level store for the duration of a run and are never
// removed; once Destroyed or HitGround they stay in the collection, inert.
type Threat struct {
	ID       uuid.UUID
	Name     string
	Kind     ThreatKind
	Position vector.Vec3
	Velocity vector.Vec3

	// Destroyed and HitGround are monotonic: once set they are never
	// cleared. Targeted is true while exactly one live interceptor is
	// assigned to this threat.
	Destroyed bool
	HitGround bool
	Targeted  bool

	Trail []vector.Vec3

	rng *rand.Rand
}

// NewThreat creates a threat of the given kind. The random source drives
// evasive maneuvering and is injected so tests can use a deterministic one.
func NewThreat(kind ThreatKind, name string, position, velocity vector.Vec3, rng *rand.Rand) *Threat {
	return &Threat{
		ID:       uuid.New(),
		Name:     name,
		Kind:     kind,
		Position: position,
		Velocity: velocity,
		rng:      rng,
	}
}

// Advance steps the threat's motion model by dt seconds: acceleration is
// applied to velocity first, the pre-update position is appended to the
// trail, then position integrates by explicit Euler. A no-op once the
// threat is destroyed or has hit the ground.
func (t *Threat) Advance(dt float64) {
	if t.Destroyed || t.HitGround {
		return
	}

	switch t.Kind {
	case KindBallistic:
		t.Velocity.Z -= gravityAccel * dt
	case KindEvasive:
		perturbation := vector.Vec3{
			X: t.rng.Float64()*2 - 1,
			Y: t.rng.Float64()*2 - 1,
			Z: t.rng.Float64()*0.6 - 0.3,
		}.Normalize().Scale(evasionStrength * dt)
		t.Velocity = t.Velocity.Add(perturbation)

		speed := t.Velocity.Magnitude()
		if speed > MaxEvasiveSpeed {
			t.Velocity = t.Velocity.Normalize().Scale(MaxEvasiveSpeed)
		} else if speed < MinEvasiveSpeed {
			t.Velocity = t.Velocity.Normalize().Scale(MinEvasiveSpeed)
		}
	}

	t.Trail = appendTrail(t.Trail, t.Position)
	t.Position = t.Position.Add(t.Velocity.Scale(dt))
}

// Neutralized reports whether the threat is destroyed or grounded.
func (t *Threat) Neutralized() bool {
	return t.Destroyed || t.HitGround
}

// Status returns a display status for the threat.
func (t *Threat) Status() string {
	switch {
	case t.Destroyed:
		return "DESTROYED"
	case t.HitGround:
		return "HIT_GROUND"
	case t.Targeted:
		return "TARGETED"
	default:
		return "ACTIVE"
	}
}

func appendTrail(trail []vector.Vec3, pos vector.Vec3) []vector.Vec3 {
	trail = append(trail, pos)
	if len(trail) > TrailLimit {
		trail = trail[len(trail)-TrailLimit:]
	}
	return trail
}
