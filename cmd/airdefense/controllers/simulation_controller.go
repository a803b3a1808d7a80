// Package controllers drives the air-defense engagement loop: it owns the
// threat store, paces the tick, and exposes a read-only snapshot plus the
// operator controls.
package controllers

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/sentinelx/sentinelx/cmd/airdefense/config"
	"github.com/sentinelx/sentinelx/cmd/airdefense/engine"
	"github.com/sentinelx/sentinelx/cmd/airdefense/reporting"
	"github.com/sentinelx/sentinelx/pkg/logger"
	"github.com/sentinelx/sentinelx/pkg/vector"
)

// ErrUnknownThreat is returned by ManualIntercept for an ID not in the
// threat store.
var ErrUnknownThreat = fmt.Errorf("unknown threat")

// TerminationCondition describes why a run ended.
type TerminationCondition struct {
	Type        string
	Description string
}

// SimulationController manages one engagement run. A single goroutine
// advances the simulation; all external access is serialized through the
// controller mutex, so operator commands land between ticks.
type SimulationController struct {
	cfg       *config.SimulationConfig
	rng       *rand.Rand
	threats   []*engine.Threat
	defense   *engine.DefenseController
	simLogger *reporting.SimulationLogger

	startTime time.Time
	endTime   time.Time
	isRunning atomic.Bool

	mu       sync.Mutex
	simTime  float64
	ticks    int64
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSimulationController builds a controller from the configuration. A
// zero random seed selects a time-based one.
func NewSimulationController(cfg *config.SimulationConfig, simLogger *reporting.SimulationLogger) *SimulationController {
	seed := cfg.Simulation.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sc := &SimulationController{
		cfg:       cfg,
		rng:       rng,
		simLogger: simLogger,
		stopChan:  make(chan struct{}),
	}

	sc.defense = engine.NewDefenseController(
		vector.Vec3{},
		cfg.Defense.RadarRange,
		cfg.Defense.InterceptorSpeed,
		cfg.Defense.MaxInterceptors,
		sc.onAlert,
	)

	sc.spawnThreats()
	return sc
}

func (sc *SimulationController) spawnThreats() {
	missiles := engine.SpawnBallisticThreats(sc.cfg.Threats.NumMissiles, sc.cfg.Threats.MissileEnvelope, sc.rng)
	jets := engine.SpawnEvasiveThreats(sc.cfg.Threats.NumJets, sc.cfg.Threats.JetEnvelope, sc.rng)
	sc.threats = append(missiles, jets...)

	for _, threat := range sc.threats {
		sc.simLogger.LogSpawn(threat.ID, threat.Name, string(threat.Kind))
	}
}

// onAlert bridges defense events into the reporting logger. It only fires
// inside DetectAndLaunch, Update, or ManualIntercept, all of which run
// under the controller mutex, so reading simTime here is safe.
func (sc *SimulationController) onAlert(message string, category engine.AlertCategory) {
	switch category {
	case engine.AlertLaunch:
		sc.simLogger.LogLaunch(sc.simTime, message)
	case engine.AlertIntercept:
		sc.simLogger.LogInterception(sc.simTime, message)
	case engine.AlertHit:
		sc.simLogger.LogGroundImpact(sc.simTime, message)
	case engine.AlertExpiry:
		sc.simLogger.LogExpiry(sc.simTime, message)
	}
}

// Start launches the tick loop. It returns immediately; use Wait or the
// context to observe completion.
func (sc *SimulationController) Start(ctx context.Context) error {
	if sc.isRunning.Swap(true) {
		return fmt.Errorf("simulation already running")
	}
	sc.startTime = time.Now()

	logger.Infof("Starting engagement: %d threats, radar range %.0f, %d interceptor slots",
		len(sc.threats), sc.cfg.Defense.RadarRange, sc.cfg.Defense.MaxInterceptors)

	sc.wg.Add(1)
	go sc.runLoop(ctx)
	return nil
}

func (sc *SimulationController) runLoop(ctx context.Context) {
	defer sc.wg.Done()

	ticker := time.NewTicker(sc.cfg.Simulation.TickRate)
	defer ticker.Stop()

	statusTicker := time.NewTicker(5 * time.Second)
	defer statusTicker.Stop()

	dt := sc.cfg.Simulation.TickRate.Seconds()

	for {
		select {
		case <-ctx.Done():
			sc.finish("cancelled", ctx.Err().Error())
			return
		case <-sc.stopChan:
			sc.finish("stopped", "stop requested")
			return
		case <-ticker.C:
			sc.runTick(dt)

			if condition := sc.checkTermination(); condition != nil {
				sc.finish(condition.Type, condition.Description)
				return
			}
		case <-statusTicker.C:
			snap := sc.Snapshot()
			logger.Infof("t=%.1fs | active threats: %d | interceptors in flight: %d | intercepted: %d | missed: %d",
				snap.SimTime, snap.ActiveThreats, snap.ActiveInterceptors,
				snap.Stats.Intercepted, snap.Stats.Missed)
		}
	}
}

// runTick advances the whole simulation by dt seconds: scan and launch
// against the pre-movement picture, move the threats, then move the
// interceptors and resolve collisions and ground impacts.
func (sc *SimulationController) runTick(dt float64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.defense.DetectAndLaunch(sc.threats)

	for _, threat := range sc.threats {
		threat.Advance(dt)
	}

	sc.defense.Update(dt, sc.threats)

	sc.simTime += dt
	sc.ticks++
}

func (sc *SimulationController) checkTermination() *TerminationCondition {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.cfg.Simulation.Duration > 0 && sc.simTime >= sc.cfg.Simulation.Duration.Seconds() {
		return &TerminationCondition{
			Type:        "duration",
			Description: fmt.Sprintf("configured duration %v elapsed", sc.cfg.Simulation.Duration),
		}
	}

	for _, threat := range sc.threats {
		if !threat.Neutralized() {
			return nil
		}
	}
	if len(sc.defense.Interceptors()) > 0 {
		return nil
	}
	return &TerminationCondition{
		Type:        "resolved",
		Description: "all threats neutralized",
	}
}

func (sc *SimulationController) finish(conditionType, description string) {
	sc.isRunning.Store(false)
	sc.endTime = time.Now()
	logger.Infof("Engagement finished (%s): %s", conditionType, description)
}

// Stop requests a graceful stop and blocks until the loop exits.
func (sc *SimulationController) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopChan) })
	sc.wg.Wait()
}

// Wait blocks until the tick loop has exited.
func (sc *SimulationController) Wait() {
	sc.wg.Wait()
}

// IsRunning reports whether the tick loop is active.
func (sc *SimulationController) IsRunning() bool {
	return sc.isRunning.Load()
}

// ThreatView is a read-only copy of one threat's observable state.
type ThreatView struct {
	ID       uuid.UUID
	Name     string
	Kind     engine.ThreatKind
	Position vector.Vec3
	Velocity vector.Vec3
	Status   string
}

// InterceptorView is a read-only copy of one interceptor's observable
// state.
type InterceptorView struct {
	ID       uuid.UUID
	Name     string
	Position vector.Vec3
	TargetID uuid.UUID
}

// Snapshot is a consistent copy of the run state at one instant.
type Snapshot struct {
	SimTime            float64
	Ticks              int64
	Threats            []ThreatView
	Interceptors       []InterceptorView
	ActiveThreats      int
	ActiveInterceptors int
	Stats              engine.Stats
	RecentEvents       []string
}

// Snapshot copies the current state for concurrent readers. The copy is
// taken under the controller mutex, so it is consistent with tick
// boundaries.
func (sc *SimulationController) Snapshot() Snapshot {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	snap := Snapshot{
		SimTime:      sc.simTime,
		Ticks:        sc.ticks,
		Stats:        sc.defense.Stats(),
		RecentEvents: sc.defense.EventTail(20),
	}

	for _, threat := range sc.threats {
		snap.Threats = append(snap.Threats, ThreatView{
			ID:       threat.ID,
			Name:     threat.Name,
			Kind:     threat.Kind,
			Position: threat.Position,
			Velocity: threat.Velocity,
			Status:   threat.Status(),
		})
		if !threat.Neutralized() {
			snap.ActiveThreats++
		}
	}

	for _, interceptor := range sc.defense.Interceptors() {
		snap.Interceptors = append(snap.Interceptors, InterceptorView{
			ID:       interceptor.ID,
			Name:     interceptor.Name,
			Position: interceptor.Position,
			TargetID: interceptor.TargetID,
		})
	}
	snap.ActiveInterceptors = len(snap.Interceptors)

	return snap
}

// ManualIntercept launches an operator-requested interceptor against the
// identified threat. It is serialized against the tick loop, so the
// outcome reflects the state between ticks.
func (sc *SimulationController) ManualIntercept(threatID uuid.UUID) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	for _, threat := range sc.threats {
		if threat.ID == threatID {
			_, err := sc.defense.ManualIntercept(threat)
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownThreat, threatID)
}

// SetRadarRange adjusts the detection radius for subsequent ticks.
func (sc *SimulationController) SetRadarRange(radarRange float64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg.Defense.RadarRange = radarRange
	sc.applyDefenseConfig()
}

// SetInterceptorSpeed adjusts the interceptor speed used by subsequent
// launches and feasibility checks.
func (sc *SimulationController) SetInterceptorSpeed(speed float64) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg.Defense.InterceptorSpeed = speed
	sc.applyDefenseConfig()
}

// SetMaxInterceptors adjusts the concurrent interceptor capacity.
// Lowering it below the current in-flight count launches nothing new
// until attrition brings the count back under the cap.
func (sc *SimulationController) SetMaxInterceptors(n int) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cfg.Defense.MaxInterceptors = n
	sc.applyDefenseConfig()
}

func (sc *SimulationController) applyDefenseConfig() {
	sc.defense.UpdateConfiguration(
		sc.cfg.Defense.RadarRange,
		sc.cfg.Defense.InterceptorSpeed,
		sc.cfg.Defense.MaxInterceptors,
	)
}

// Threats returns the live threat store. Callers must not mutate it; for
// display use Snapshot instead.
func (sc *SimulationController) Threats() []*engine.Threat {
	return sc.threats
}

// Stats returns the cumulative engagement counters.
func (sc *SimulationController) Stats() engine.Stats {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.defense.Stats()
}
