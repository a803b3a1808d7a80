package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sentinelx/sentinelx/cmd/airdefense/engine"
	"github.com/sentinelx/sentinelx/pkg/logger"
)

// ReportGenerator produces the post-run engagement report.
type ReportGenerator struct {
	logger *SimulationLogger
	config ReportConfig
}

// ReportConfig configures report generation.
type ReportConfig struct {
	OutputDir        string
	SimulationConfig map[string]interface{}
}

// EngagementReport is the serialized post-run report.
type EngagementReport struct {
	Metadata ReportMetadata         `json:"metadata"`
	Summary  EngagementSummary      `json:"summary"`
	Threats  []ThreatOutcome        `json:"threats"`
	Timeline []TimelineEntry        `json:"timeline"`
	EventLog []EventLogEntry        `json:"event_log"`
	Config   map[string]interface{} `json:"configuration,omitempty"`
}

// ReportMetadata contains report identity and timing.
type ReportMetadata struct {
	SimulationID    string    `json:"simulation_id"`
	GeneratedAt     time.Time `json:"generated_at"`
	SimulationStart time.Time `json:"simulation_start"`
	SimulationEnd   time.Time `json:"simulation_end"`
	Duration        string    `json:"duration"`
	Version         string    `json:"version"`
}

// EngagementSummary is the headline outcome of the run.
type EngagementSummary struct {
	Outcome            string  `json:"outcome"`
	InterceptorsFired  int     `json:"interceptors_fired"`
	ThreatsIntercepted int     `json:"threats_intercepted"`
	GroundImpacts      int     `json:"ground_impacts"`
	ThreatsRemaining   int     `json:"threats_remaining"`
	InterceptRate      float64 `json:"intercept_rate"`
}

// ThreatOutcome records the final state of one threat.
type ThreatOutcome struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// TimelineEntry is a significant event on the run timeline.
type TimelineEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	SimTime     float64   `json:"sim_time_s"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
}

// EventLogEntry is a raw logged event.
type EventLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
}

// NewReportGenerator creates a generator over the run's logger.
func NewReportGenerator(logger *SimulationLogger, config ReportConfig) *ReportGenerator {
	return &ReportGenerator{
		logger: logger,
		config: config,
	}
}

// Generate builds the engagement report from the logged events, the final
// counters, and the threat store.
func (g *ReportGenerator) Generate(stats engine.Stats, threats []*engine.Threat) *EngagementReport {
	events := g.logger.GetEvents()

	remaining := 0
	outcomes := make([]ThreatOutcome, 0, len(threats))
	for _, threat := range threats {
		if !threat.Neutralized() {
			remaining++
		}
		outcomes = append(outcomes, ThreatOutcome{
			Name:   threat.Name,
			Kind:   string(threat.Kind),
			Status: threat.Status(),
		})
	}

	summary := g.logger.GetSummary(stats.Launches, stats.Intercepted, stats.Missed, remaining)

	report := &EngagementReport{
		Metadata: ReportMetadata{
			SimulationID:    summary.SimulationID,
			GeneratedAt:     time.Now(),
			SimulationStart: summary.StartTime,
			SimulationEnd:   summary.StartTime.Add(summary.Duration),
			Duration:        summary.Duration.String(),
			Version:         "1.0",
		},
		Summary: EngagementSummary{
			Outcome:            describeOutcome(stats, remaining),
			InterceptorsFired:  stats.Launches,
			ThreatsIntercepted: stats.Intercepted,
			GroundImpacts:      stats.Missed,
			ThreatsRemaining:   remaining,
			InterceptRate:      interceptRate(stats),
		},
		Threats: outcomes,
		Config:  g.config.SimulationConfig,
	}

	for _, event := range events {
		report.EventLog = append(report.EventLog, EventLogEntry{
			Timestamp: event.Timestamp,
			Type:      event.Type,
			Severity:  event.Severity,
			Message:   event.Message,
		})
		if isSignificantEvent(event) {
			report.Timeline = append(report.Timeline, TimelineEntry{
				Timestamp:   event.Timestamp,
				SimTime:     event.SimTime,
				EventType:   event.Type,
				Description: event.Message,
			})
		}
	}

	return report
}

// Save writes the report as indented JSON into the output directory and
// returns the written path.
func (g *ReportGenerator) Save(report *EngagementReport) (string, error) {
	if err := os.MkdirAll(g.config.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	id := report.Metadata.SimulationID
	if len(id) > 8 {
		id = id[:8]
	}
	filename := fmt.Sprintf("engagement_%s_%s.json", id, time.Now().Format("20060102_150405"))
	path := filepath.Join(g.config.OutputDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	logger.Successf("Engagement report saved to: %s", path)
	return path, nil
}

func describeOutcome(stats engine.Stats, remaining int) string {
	switch {
	case remaining > 0:
		return "INCOMPLETE"
	case stats.Missed == 0:
		return "ALL_THREATS_INTERCEPTED"
	case stats.Intercepted == 0:
		return "DEFENSE_OVERWHELMED"
	default:
		return "PARTIAL_DEFENSE"
	}
}

func interceptRate(stats engine.Stats) float64 {
	resolved := stats.Intercepted + stats.Missed
	if resolved == 0 {
		return 0
	}
	return float64(stats.Intercepted) / float64(resolved)
}

func isSignificantEvent(event EngagementEvent) bool {
	switch event.Type {
	case EventTypeInterception, EventTypeGroundImpact, EventTypeLaunch:
		return true
	}
	return false
}
