// Package config defines the air-defense simulation configuration and its
// YAML loading, validation, and override layers.
package config

import (
	"fmt"
	"time"

	"github.com/sentinelx/sentinelx/cmd/airdefense/engine"
)

// SimulationConfig is the root configuration for an air-defense run.
type SimulationConfig struct {
	Simulation SimulationSettings `yaml:"simulation"`
	Defense    DefenseSettings    `yaml:"defense"`
	Threats    ThreatSettings     `yaml:"threats"`
	Logging    LoggingSettings    `yaml:"logging"`
}

// SimulationSettings controls run identity and pacing.
type SimulationSettings struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	TickRate    time.Duration `yaml:"tick_rate"`
	Duration    time.Duration `yaml:"duration"`
	RandomSeed  int64         `yaml:"random_seed"`
}

// DefenseSettings holds the defense position's live-tunable parameters.
type DefenseSettings struct {
	RadarRange       float64 `yaml:"radar_range"`
	InterceptorSpeed float64 `yaml:"interceptor_speed"`
	MaxInterceptors  int     `yaml:"max_interceptors"`
}

// ThreatSettings controls the generated threat population.
type ThreatSettings struct {
	NumMissiles     int                `yaml:"num_missiles"`
	NumJets         int                `yaml:"num_jets"`
	MissileEnvelope engine.SpawnRanges `yaml:"missile_envelope"`
	JetEnvelope     engine.SpawnRanges `yaml:"jet_envelope"`
}

// LoggingSettings controls console output and report generation.
type LoggingSettings struct {
	ConsoleLevel     string `yaml:"console_level"`
	EnableReport     bool   `yaml:"enable_report"`
	ReportOutputPath string `yaml:"report_output_path"`
	EventBufferSize  int    `yaml:"event_buffer_size"`
}

// Validate checks the configuration for invalid values.
func (c *SimulationConfig) Validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %v", c.Simulation.TickRate)
	}
	if c.Simulation.Duration < 0 {
		return fmt.Errorf("simulation.duration must not be negative, got %v", c.Simulation.Duration)
	}
	if c.Defense.RadarRange <= 0 {
		return fmt.Errorf("defense.radar_range must be positive, got %v", c.Defense.RadarRange)
	}
	if c.Defense.InterceptorSpeed <= 0 {
		return fmt.Errorf("defense.interceptor_speed must be positive, got %v", c.Defense.InterceptorSpeed)
	}
	if c.Defense.MaxInterceptors < 0 {
		return fmt.Errorf("defense.max_interceptors must not be negative, got %d", c.Defense.MaxInterceptors)
	}
	if c.Threats.NumMissiles < 0 {
		return fmt.Errorf("threats.num_missiles must not be negative, got %d", c.Threats.NumMissiles)
	}
	if c.Threats.NumJets < 0 {
		return fmt.Errorf("threats.num_jets must not be negative, got %d", c.Threats.NumJets)
	}
	if c.Threats.NumMissiles == 0 && c.Threats.NumJets == 0 {
		return fmt.Errorf("at least one threat must be configured")
	}
	if c.Logging.EventBufferSize <= 0 {
		return fmt.Errorf("logging.event_buffer_size must be positive, got %d", c.Logging.EventBufferSize)
	}
	return nil
}

// GetDefaultConfig returns the standard engagement scenario.
func GetDefaultConfig() *SimulationConfig {
	return &SimulationConfig{
		Simulation: SimulationSettings{
			Name:        "air-defense",
			Description: "Ballistic and evasive threats against a fixed defense position",
			TickRate:    10 * time.Millisecond,
			Duration:    2 * time.Minute,
			RandomSeed:  0,
		},
		Defense: DefenseSettings{
			RadarRange:       30000,
			InterceptorSpeed: 10000,
			MaxInterceptors:  30,
		},
		Threats: ThreatSettings{
			NumMissiles:     20,
			NumJets:         8,
			MissileEnvelope: engine.DefaultBallisticRanges(),
			JetEnvelope:     engine.DefaultEvasiveRanges(),
		},
		Logging: LoggingSettings{
			ConsoleLevel:     "info",
			EnableReport:     true,
			ReportOutputPath: "./reports",
			EventBufferSize:  1000,
		},
	}
}

// String returns a human-readable summary of the configuration.
func (c *SimulationConfig) String() string {
	return fmt.Sprintf(
		"Simulation: %s (tick %v, duration %v)\n"+
			"Defense: radar %.0f, interceptor speed %.0f, max interceptors %d\n"+
			"Threats: %d missiles, %d jets",
		c.Simulation.Name, c.Simulation.TickRate, c.Simulation.Duration,
		c.Defense.RadarRange, c.Defense.InterceptorSpeed, c.Defense.MaxInterceptors,
		c.Threats.NumMissiles, c.Threats.NumJets,
	)
}
