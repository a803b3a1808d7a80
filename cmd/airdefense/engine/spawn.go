package engine

import (
	"fmt"
	"math/rand"

	"github.com/sentinelx/sentinelx/pkg/vector"
)

// Range is a closed interval sampled uniformly during spawning.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Sample draws a uniform value from the interval.
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// SpawnRanges describes the position and velocity envelopes threats are
// generated from.
type SpawnRanges struct {
	PosX Range `yaml:"pos_x"`
	PosY Range `yaml:"pos_y"`
	PosZ Range `yaml:"pos_z"`
	VelX Range `yaml:"vel_x"`
	VelY Range `yaml:"vel_y"`
	VelZ Range `yaml:"vel_z"`
}

// DefaultBallisticRanges returns the standard missile spawn envelope:
// high-altitude entry anywhere around the defended area, descending fast.
func DefaultBallisticRanges() SpawnRanges {
	return SpawnRanges{
		PosX: Range{Min: -30000, Max: 30000},
		PosY: Range{Min: -30000, Max: 30000},
		PosZ: Range{Min: 25000, Max: 40000},
		VelX: Range{Min: -2000, Max: 2000},
		VelY: Range{Min: -2000, Max: 2000},
		VelZ: Range{Min: -1500, Max: -800},
	}
}

// DefaultEvasiveRanges returns the standard jet spawn envelope: a southern
// approach line, flying north at altitude.
func DefaultEvasiveRanges() SpawnRanges {
	return SpawnRanges{
		PosX: Range{Min: -30000, Max: 30000},
		PosY: Range{Min: -30000, Max: -30000},
		PosZ: Range{Min: 20000, Max: 30000},
		VelX: Range{Min: -2500, Max: 2500},
		VelY: Range{Min: 800, Max: 1200},
		VelZ: Range{Min: -400, Max: 400},
	}
}

func (sr SpawnRanges) sample(rng *rand.Rand) (pos, vel vector.Vec3) {
	pos = vector.Vec3{X: sr.PosX.Sample(rng), Y: sr.PosY.Sample(rng), Z: sr.PosZ.Sample(rng)}
	vel = vector.Vec3{X: sr.VelX.Sample(rng), Y: sr.VelY.Sample(rng), Z: sr.VelZ.Sample(rng)}
	return pos, vel
}

// SpawnBallisticThreats generates count ballistic threats within the given
// envelope, named M1..Mn.
func SpawnBallisticThreats(count int, ranges SpawnRanges, rng *rand.Rand) []*Threat {
	threats := make([]*Threat, 0, count)
	for i := 1; i <= count; i++ {
		pos, vel := ranges.sample(rng)
		threats = append(threats, NewThreat(KindBallistic, fmt.Sprintf("M%d", i), pos, vel, rng))
	}
	return threats
}

// SpawnEvasiveThreats generates count evasive threats within the given
// envelope, named J1..Jn.
func SpawnEvasiveThreats(count int, ranges SpawnRanges, rng *rand.Rand) []*Threat {
	threats := make([]*Threat, 0, count)
	for i := 1; i <= count; i++ {
		pos, vel := ranges.sample(rng)
		threats = append(threats, NewThreat(KindEvasive, fmt.Sprintf("J%d", i), pos, vel, rng))
	}
	return threats
}
