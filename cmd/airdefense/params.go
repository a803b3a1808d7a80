package airdefense

import (
	"fmt"
	"time"

	"github.com/sentinelx/sentinelx/cmd/airdefense/config"
)

// RunOptions holds the parsed run parameters. Zero-valued fields mean "use
// the configuration file value".
type RunOptions struct {
	ConfigFile       string
	NumMissiles      *int
	NumJets          *int
	RadarRange       *float64
	InterceptorSpeed *float64
	MaxInterceptors  *int
	TickRate         *time.Duration
	Duration         *time.Duration
	RandomSeed       *int64
	LogLevel         string
	EnableReport     *bool
}

// ValidateAndParse validates and parses the raw parameters into RunOptions.
func ValidateAndParse(params map[string]interface{}) (*RunOptions, error) {
	opts := &RunOptions{}

	if v, ok := params["config_file"]; ok {
		opts.ConfigFile = fmt.Sprintf("%v", v)
	}

	if n, ok, err := intParam(params, "num_missiles"); err != nil {
		return nil, err
	} else if ok {
		if n < 0 {
			return nil, fmt.Errorf("num_missiles must not be negative")
		}
		opts.NumMissiles = &n
	}

	if n, ok, err := intParam(params, "num_jets"); err != nil {
		return nil, err
	} else if ok {
		if n < 0 {
			return nil, fmt.Errorf("num_jets must not be negative")
		}
		opts.NumJets = &n
	}

	if f, ok, err := floatParam(params, "radar_range"); err != nil {
		return nil, err
	} else if ok {
		if f <= 0 {
			return nil, fmt.Errorf("radar_range must be positive")
		}
		opts.RadarRange = &f
	}

	if f, ok, err := floatParam(params, "interceptor_speed"); err != nil {
		return nil, err
	} else if ok {
		if f <= 0 {
			return nil, fmt.Errorf("interceptor_speed must be positive")
		}
		opts.InterceptorSpeed = &f
	}

	if n, ok, err := intParam(params, "max_interceptors"); err != nil {
		return nil, err
	} else if ok {
		if n < 0 {
			return nil, fmt.Errorf("max_interceptors must not be negative")
		}
		opts.MaxInterceptors = &n
	}

	if d, ok, err := durationParam(params, "tick_rate"); err != nil {
		return nil, err
	} else if ok {
		if d <= 0 {
			return nil, fmt.Errorf("tick_rate must be positive")
		}
		opts.TickRate = &d
	}

	if d, ok, err := durationParam(params, "duration"); err != nil {
		return nil, err
	} else if ok {
		if d < 0 {
			return nil, fmt.Errorf("duration must not be negative")
		}
		opts.Duration = &d
	}

	if n, ok, err := intParam(params, "random_seed"); err != nil {
		return nil, err
	} else if ok {
		seed := int64(n)
		opts.RandomSeed = &seed
	}

	if v, ok := params["log_level"]; ok {
		opts.LogLevel = fmt.Sprintf("%v", v)
	}

	if v, ok := params["enable_report"]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return nil, fmt.Errorf("enable_report must be a boolean")
		}
		opts.EnableReport = &b
	}

	return opts, nil
}

// Apply overlays the parsed options onto a loaded configuration.
func (o *RunOptions) Apply(cfg *config.SimulationConfig) {
	cfg.MergeWithCLIOverrides(config.CLIOverrides{
		TickRate:         o.TickRate,
		Duration:         o.Duration,
		RandomSeed:       o.RandomSeed,
		RadarRange:       o.RadarRange,
		InterceptorSpeed: o.InterceptorSpeed,
		MaxInterceptors:  o.MaxInterceptors,
		NumMissiles:      o.NumMissiles,
		NumJets:          o.NumJets,
	})
	if o.LogLevel != "" {
		cfg.Logging.ConsoleLevel = o.LogLevel
	}
	if o.EnableReport != nil {
		cfg.Logging.EnableReport = *o.EnableReport
	}
}

func intParam(params map[string]interface{}, key string) (int, bool, error) {
	v, ok := params[key]
	if !ok {
		return 0, false, nil
	}
	switch val := v.(type) {
	case int:
		return val, true, nil
	case int64:
		return int(val), true, nil
	case float64:
		return int(val), true, nil
	default:
		return 0, false, fmt.Errorf("%s must be an integer", key)
	}
}

func floatParam(params map[string]interface{}, key string) (float64, bool, error) {
	v, ok := params[key]
	if !ok {
		return 0, false, nil
	}
	switch val := v.(type) {
	case float64:
		return val, true, nil
	case int:
		return float64(val), true, nil
	default:
		return 0, false, fmt.Errorf("%s must be a number", key)
	}
}

func durationParam(params map[string]interface{}, key string) (time.Duration, bool, error) {
	v, ok := params[key]
	if !ok {
		return 0, false, nil
	}
	switch val := v.(type) {
	case time.Duration:
		return val, true, nil
	case string:
		d, err := time.ParseDuration(val)
		if err != nil {
			return 0, false, fmt.Errorf("invalid %s format: %w", key, err)
		}
		return d, true, nil
	default:
		return 0, false, fmt.Errorf("%s must be a duration", key)
	}
}
