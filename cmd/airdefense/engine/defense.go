package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sentinelx/sentinelx/pkg/vector"
)

// KillRadius is the distance in units below which a threat-interceptor
// pair counts as a hit.
const KillRadius = 200.0

const eventLogLimit = 1000

// Manual intercept rejection outcomes. These report why a request was
// refused without mutating any state.
var (
	ErrAlreadyNeutralized = errors.New("threat already neutralized")
	ErrAlreadyTargeted    = errors.New("threat already targeted by an active interceptor")
)

// AlertCategory classifies event notifications sent to the alert sink.
type AlertCategory string

const (
	AlertLaunch    AlertCategory = "launch"
	AlertIntercept AlertCategory = "intercept"
	AlertHit       AlertCategory = "hit"
	AlertExpiry    AlertCategory = "expiry"
)

// AlertFunc receives event notifications for launches, intercepts, and
// ground impacts. A nil sink disables notifications.
type AlertFunc func(message string, category AlertCategory)

// Stats holds the cumulative engagement counters. They never decrease.
type Stats struct {
	Launches    int
	Intercepted int
	Missed      int
}

// DefenseController orchestrates detection, intercept prediction,
// capacity-constrained assignment, launch, and collision resolution for a
// fixed defensive position.
//
// The controller is a single-writer state machine: DetectAndLaunch, Update,
// RecordMisses, and ManualIntercept must not be invoked concurrently with
// each other. Configuration updates are the exception: they may arrive from
// another goroutine between ticks and take effect at the start of the next
// controller call.
type DefenseController struct {
	Position vector.Vec3

	cfgMu            sync.RWMutex
	radarRange       float64
	interceptorSpeed float64
	maxInterceptors  int

	alert        AlertFunc
	interceptors []*Interceptor
	events       []string
	stats        Stats
}

// NewDefenseController creates a defense controller at the given position.
func NewDefenseController(position vector.Vec3, radarRange, interceptorSpeed float64, maxInterceptors int, alert AlertFunc) *DefenseController {
	return &DefenseController{
		Position:         position,
		radarRange:       radarRange,
		interceptorSpeed: interceptorSpeed,
		maxInterceptors:  maxInterceptors,
		alert:            alert,
	}
}

// UpdateConfiguration replaces the live-tunable parameters. The new values
// apply from the next tick; an in-flight tick keeps the snapshot it read at
// its start.
func (dc *DefenseController) UpdateConfiguration(radarRange, interceptorSpeed float64, maxInterceptors int) {
	dc.cfgMu.Lock()
	defer dc.cfgMu.Unlock()
	dc.radarRange = radarRange
	dc.interceptorSpeed = interceptorSpeed
	dc.maxInterceptors = maxInterceptors
}

func (dc *DefenseController) configSnapshot() (radarRange, interceptorSpeed float64, maxInterceptors int) {
	dc.cfgMu.RLock()
	defer dc.cfgMu.RUnlock()
	return dc.radarRange, dc.interceptorSpeed, dc.maxInterceptors
}

// EstimateInterceptTime is the pure intercept-geometry query for a single
// threat against the current interceptor speed. It is used by both
// automatic detection and operator-triggered intercept requests.
func (dc *DefenseController) EstimateInterceptTime(threat *Threat) (float64, error) {
	_, speed, _ := dc.configSnapshot()
	return InterceptTime(dc.Position, threat.Position, threat.Velocity, speed)
}

type candidate struct {
	threat *Threat
	eta    float64
}

// DetectAndLaunch scans the threats, orders solvable in-range candidates by
// ascending intercept time, and launches interceptors at the most
// time-critical ones up to the remaining capacity. Unassigned candidates
// stay eligible on later ticks.
func (dc *DefenseController) DetectAndLaunch(threats []*Threat) {
	radarRange, speed, maxInterceptors := dc.configSnapshot()

	var candidates []candidate
	for _, threat := range threats {
		if threat.Destroyed || threat.Targeted || threat.HitGround {
			continue
		}
		if threat.Position.DistanceTo(dc.Position) > radarRange {
			continue
		}
		eta, err := InterceptTime(dc.Position, threat.Position, threat.Velocity, speed)
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{threat: threat, eta: eta})
	}
	if len(candidates) == 0 {
		return
	}

	// Most time-critical first; stable sort keeps input order on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].eta < candidates[j].eta
	})

	available := maxInterceptors - dc.activeCount()
	for _, selected := range assignByCapacity(candidates, available) {
		dc.launch(selected.threat, selected.eta, speed, "Interceptor")
	}
}

// assignByCapacity selects which ordered candidates receive an interceptor
// this tick. The selection is equivalent to a constraint search over
// target/skip assignments that prefers "target" and accepts the first
// assignment not exceeding capacity: processed in ascending-time order that
// is exactly the prefix of size min(capacity, len(candidates)).
func assignByCapacity(candidates []candidate, capacity int) []candidate {
	if capacity <= 0 {
		return nil
	}
	if capacity > len(candidates) {
		capacity = len(candidates)
	}
	return candidates[:capacity]
}

// LaunchInterceptor constructs an interceptor aimed at the threat's
// predicted position at tEst, without registering it. Both the automatic
// and the manual paths build interceptors here and then append them to the
// active collection.
func (dc *DefenseController) LaunchInterceptor(threat *Threat, tEst float64) *Interceptor {
	_, speed, _ := dc.configSnapshot()
	return dc.buildInterceptor(threat, tEst, speed)
}

func (dc *DefenseController) buildInterceptor(threat *Threat, tEst, speed float64) *Interceptor {
	interceptPoint := threat.Position.Add(threat.Velocity.Scale(tEst))
	direction := interceptPoint.Sub(dc.Position).Normalize()

	return &Interceptor{
		ID:       uuid.New(),
		Name:     fmt.Sprintf("I%d", dc.stats.Launches+1),
		Position: dc.Position,
		Velocity: direction.Scale(speed),
		TargetID: threat.ID,
		Lifetime: tEst*2.0 + 1.0,
	}
}

// launch registers a freshly built interceptor against the threat and
// performs the shared launch bookkeeping.
func (dc *DefenseController) launch(threat *Threat, eta, speed float64, label string) *Interceptor {
	interceptor := dc.buildInterceptor(threat, eta, speed)
	dc.interceptors = append(dc.interceptors, interceptor)
	threat.Targeted = true
	dc.stats.Launches++

	msg := fmt.Sprintf("%s %s launched for %s (eta %.1fs)", label, interceptor.Name, threat.Name, eta)
	dc.recordEvent(msg, AlertLaunch)
	return interceptor
}

// ManualIntercept launches immediately against a specific threat,
// bypassing the capacity-ordered queue but subject to the same feasibility
// check and the same bookkeeping as an automatic launch. Invalid requests
// are rejected without mutating state.
func (dc *DefenseController) ManualIntercept(threat *Threat) (*Interceptor, error) {
	if threat == nil {
		return nil, ErrAlreadyNeutralized
	}
	if threat.Neutralized() {
		return nil, ErrAlreadyNeutralized
	}
	if threat.Targeted {
		return nil, ErrAlreadyTargeted
	}

	_, speed, _ := dc.configSnapshot()
	eta, err := InterceptTime(dc.Position, threat.Position, threat.Velocity, speed)
	if err != nil {
		return nil, err
	}

	return dc.launch(threat, eta, speed, "Manual interceptor"), nil
}

// Update advances every active interceptor, resolves collisions against
// the live threats, compacts the active collection, and records ground
// impacts. Expired interceptors release their target's Targeted flag
// without touching the intercept or miss counters.
func (dc *DefenseController) Update(dt float64, threats []*Threat) {
	byID := make(map[uuid.UUID]*Threat, len(threats))
	for _, threat := range threats {
		byID[threat.ID] = threat
	}

	for _, interceptor := range dc.interceptors {
		if expired := interceptor.Advance(dt); expired {
			// A missing target is treated as no longer valid.
			if target, ok := byID[interceptor.TargetID]; ok && !target.Neutralized() {
				target.Targeted = false
			}
			dc.recordEvent(fmt.Sprintf("%s expired without contact", interceptor.Name), AlertExpiry)
		}
	}

	for _, threat := range threats {
		if threat.Neutralized() {
			continue
		}
		for _, interceptor := range dc.interceptors {
			if interceptor.Destroyed {
				continue
			}
			if threat.Position.DistanceTo(interceptor.Position) < KillRadius {
				threat.Destroyed = true
				interceptor.Destroyed = true
				dc.stats.Intercepted++
				dc.recordEvent(fmt.Sprintf("%s intercepted by %s", threat.Name, interceptor.Name), AlertIntercept)
				break
			}
		}
	}

	active := dc.interceptors[:0]
	for _, interceptor := range dc.interceptors {
		if !interceptor.Destroyed {
			active = append(active, interceptor)
		}
	}
	dc.interceptors = active

	dc.RecordMisses(threats)
}

// RecordMisses marks threats whose altitude has reached the ground as
// misses. Usable independently of Update.
func (dc *DefenseController) RecordMisses(threats []*Threat) {
	for _, threat := range threats {
		if threat.Neutralized() || threat.Position.Z > 0 {
			continue
		}
		threat.HitGround = true
		threat.Targeted = false
		dc.stats.Missed++
		dc.recordEvent(fmt.Sprintf("%s hit ground!", threat.Name), AlertHit)
	}
}

func (dc *DefenseController) activeCount() int {
	count := 0
	for _, interceptor := range dc.interceptors {
		if !interceptor.Destroyed {
			count++
		}
	}
	return count
}

func (dc *DefenseController) recordEvent(msg string, category AlertCategory) {
	dc.events = append(dc.events, msg)
	if len(dc.events) > eventLogLimit {
		dc.events = dc.events[len(dc.events)-eventLogLimit:]
	}
	if dc.alert != nil {
		dc.alert(msg, category)
	}
}

// Interceptors returns a copy of the active interceptor collection.
func (dc *DefenseController) Interceptors() []*Interceptor {
	out := make([]*Interceptor, len(dc.interceptors))
	copy(out, dc.interceptors)
	return out
}

// Stats returns the cumulative engagement counters.
func (dc *DefenseController) Stats() Stats {
	return dc.stats
}

// EventTail returns up to n of the most recent event messages.
func (dc *DefenseController) EventTail(n int) []string {
	if n <= 0 || len(dc.events) == 0 {
		return nil
	}
	if n > len(dc.events) {
		n = len(dc.events)
	}
	tail := make([]string, n)
	copy(tail, dc.events[len(dc.events)-n:])
	return tail
}
