package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := GetDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from path, falling back to
// the defaults when the file does not exist.
func LoadConfigOrDefault(path string) (*SimulationConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return GetDefaultConfig(), nil
	}
	return LoadConfig(path)
}

// SaveConfig writes the configuration to a YAML file.
func SaveConfig(cfg *SimulationConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// MergeWithEnvironment overrides configuration values from SENTINEL_*
// environment variables. Unset or malformed variables are ignored.
func (c *SimulationConfig) MergeWithEnvironment() {
	if v := os.Getenv("SENTINEL_TICK_RATE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Simulation.TickRate = d
		}
	}
	if v := os.Getenv("SENTINEL_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Simulation.Duration = d
		}
	}
	if v := os.Getenv("SENTINEL_RANDOM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Simulation.RandomSeed = n
		}
	}
	if v := os.Getenv("SENTINEL_RADAR_RANGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Defense.RadarRange = f
		}
	}
	if v := os.Getenv("SENTINEL_INTERCEPTOR_SPEED"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Defense.InterceptorSpeed = f
		}
	}
	if v := os.Getenv("SENTINEL_MAX_INTERCEPTORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Defense.MaxInterceptors = n
		}
	}
	if v := os.Getenv("SENTINEL_NUM_MISSILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Threats.NumMissiles = n
		}
	}
	if v := os.Getenv("SENTINEL_NUM_JETS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Threats.NumJets = n
		}
	}
	if v := os.Getenv("SENTINEL_LOG_LEVEL"); v != "" {
		c.Logging.ConsoleLevel = v
	}
	if v := os.Getenv("SENTINEL_REPORT_PATH"); v != "" {
		c.Logging.ReportOutputPath = v
	}
}

// CLIOverrides carries optional command-line parameter overrides. Nil
// fields leave the configuration untouched.
type CLIOverrides struct {
	TickRate         *time.Duration
	Duration         *time.Duration
	RandomSeed       *int64
	RadarRange       *float64
	InterceptorSpeed *float64
	MaxInterceptors  *int
	NumMissiles      *int
	NumJets          *int
}

// MergeWithCLIOverrides applies non-nil overrides on top of the current
// configuration. CLI values win over both file and environment.
func (c *SimulationConfig) MergeWithCLIOverrides(o CLIOverrides) {
	if o.TickRate != nil {
		c.Simulation.TickRate = *o.TickRate
	}
	if o.Duration != nil {
		c.Simulation.Duration = *o.Duration
	}
	if o.RandomSeed != nil {
		c.Simulation.RandomSeed = *o.RandomSeed
	}
	if o.RadarRange != nil {
		c.Defense.RadarRange = *o.RadarRange
	}
	if o.InterceptorSpeed != nil {
		c.Defense.InterceptorSpeed = *o.InterceptorSpeed
	}
	if o.MaxInterceptors != nil {
		c.Defense.MaxInterceptors = *o.MaxInterceptors
	}
	if o.NumMissiles != nil {
		c.Threats.NumMissiles = *o.NumMissiles
	}
	if o.NumJets != nil {
		c.Threats.NumJets = *o.NumJets
	}
}
