// Package airdefense registers the air-defense engagement simulation:
// ballistic and evasive threats inbound on a fixed defense position that
// detects, predicts, launches, and scores intercepts in real time.
package airdefense

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/sentinelx/sentinelx/cmd/airdefense/config"
	"github.com/sentinelx/sentinelx/cmd/airdefense/controllers"
	"github.com/sentinelx/sentinelx/cmd/airdefense/reporting"
	"github.com/sentinelx/sentinelx/pkg/logger"
	"github.com/sentinelx/sentinelx/pkg/simulation"
)

// SimulationName is the registry name of this simulation.
const SimulationName = "Air Defense"

// AirDefenseSimulation wires the engagement engine, controller, and
// reporting into the simulation lifecycle.
type AirDefenseSimulation struct {
	cfg        *config.SimulationConfig
	controller *controllers.SimulationController
	simLogger  *reporting.SimulationLogger
	mu         sync.Mutex
}

// NewAirDefenseSimulation creates a new instance of the air-defense
// simulation.
func NewAirDefenseSimulation() simulation.Simulation {
	return &AirDefenseSimulation{}
}

// Name returns the simulation name.
func (s *AirDefenseSimulation) Name() string {
	return SimulationName
}

// Description returns the simulation description.
func (s *AirDefenseSimulation) Description() string {
	return "Ballistic missiles and evasive jets against a fixed defense position with capacity-limited interceptors"
}

// Configure loads the configuration file and overlays environment and
// parameter overrides.
func (s *AirDefenseSimulation) Configure(params map[string]interface{}) error {
	opts, err := ValidateAndParse(params)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	path := opts.ConfigFile
	if path == "" {
		path = filepath.Join("cmd", "airdefense", "config.yaml")
	}
	cfg, err := config.LoadConfigOrDefault(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.MergeWithEnvironment()
	opts.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.ConsoleLevel))

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	return nil
}

// Run executes the engagement until resolution, duration expiry, or
// cancellation, then prints the summary and writes the report.
func (s *AirDefenseSimulation) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.cfg == nil {
		s.mu.Unlock()
		return fmt.Errorf("simulation not configured")
	}
	cfg := s.cfg

	s.simLogger = reporting.NewSimulationLogger(uuid.New().String(), cfg.Logging.EventBufferSize, true)
	s.controller = controllers.NewSimulationController(cfg, s.simLogger)
	controller := s.controller
	simLogger := s.simLogger
	s.mu.Unlock()

	logger.Info(cfg.String())

	if err := controller.Start(ctx); err != nil {
		return err
	}
	controller.Wait()

	stats := controller.Stats()
	threats := controller.Threats()

	remaining := 0
	for _, threat := range threats {
		if !threat.Neutralized() {
			remaining++
		}
	}
	simLogger.PrintSummary(simLogger.GetSummary(stats.Launches, stats.Intercepted, stats.Missed, remaining))

	if cfg.Logging.EnableReport {
		generator := reporting.NewReportGenerator(simLogger, reporting.ReportConfig{
			OutputDir: cfg.Logging.ReportOutputPath,
			SimulationConfig: map[string]interface{}{
				"radar_range":       cfg.Defense.RadarRange,
				"interceptor_speed": cfg.Defense.InterceptorSpeed,
				"max_interceptors":  cfg.Defense.MaxInterceptors,
				"num_missiles":      cfg.Threats.NumMissiles,
				"num_jets":          cfg.Threats.NumJets,
				"tick_rate":         cfg.Simulation.TickRate.String(),
			},
		})
		if _, err := generator.Save(generator.Generate(stats, threats)); err != nil {
			logger.Errorf("Failed to save engagement report: %v", err)
		}
	}

	return nil
}

// Stop requests a graceful stop of a running simulation.
func (s *AirDefenseSimulation) Stop() error {
	s.mu.Lock()
	controller := s.controller
	s.mu.Unlock()

	if controller != nil {
		controller.Stop()
	}
	return nil
}

func init() {
	err := simulation.DefaultRegistry.Register(SimulationName, NewAirDefenseSimulation)
	if err != nil {
		logger.Errorf("Failed to register air defense simulation: %v", err)
	}
}
