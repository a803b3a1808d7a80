package reporting

import (
	"encoding/json"
	"math/rand"
	"os"
	"testing"

	"github.com/sentinelx/sentinelx/cmd/airdefense/engine"
	"github.com/sentinelx/sentinelx/pkg/vector"
)

func newQuietLogger() *SimulationLogger {
	return NewSimulationLogger("test-run", 100, false)
}

func TestLoggerBuffersEvents(t *testing.T) {
	sl := NewSimulationLogger("test-run", 3, false)

	for i := 0; i < 10; i++ {
		sl.LogLaunch(float64(i), "launch")
	}

	events := sl.GetEvents()
	if len(events) != 3 {
		t.Fatalf("retained %d events, want 3", len(events))
	}
	// Oldest entries were evicted first.
	if events[0].SimTime != 7 {
		t.Errorf("oldest retained SimTime = %v, want 7", events[0].SimTime)
	}
}

func TestGetSummaryCountsByType(t *testing.T) {
	sl := newQuietLogger()
	sl.LogLaunch(1.0, "launch one")
	sl.LogLaunch(2.0, "launch two")
	sl.LogInterception(3.0, "kill")
	sl.LogGroundImpact(4.0, "impact")

	summary := sl.GetSummary(2, 1, 1, 0)

	if summary.EventCounts[EventTypeLaunch] != 2 {
		t.Errorf("launch count = %d, want 2", summary.EventCounts[EventTypeLaunch])
	}
	if summary.EventCounts[EventTypeInterception] != 1 {
		t.Errorf("interception count = %d, want 1", summary.EventCounts[EventTypeInterception])
	}
	if summary.Launches != 2 || summary.Intercepted != 1 || summary.Missed != 1 {
		t.Errorf("counters = %d/%d/%d, want 2/1/1",
			summary.Launches, summary.Intercepted, summary.Missed)
	}
}

func TestGenerateReport(t *testing.T) {
	sl := newQuietLogger()
	sl.LogLaunch(0.5, "Interceptor I1 launched for M1 (eta 2.0s)")
	sl.LogInterception(2.5, "M1 intercepted by I1")
	sl.LogGroundImpact(5.0, "M2 hit ground!")

	rng := rand.New(rand.NewSource(1))
	intercepted := engine.NewThreat(engine.KindBallistic, "M1", vector.Vec3{Z: 10000}, vector.Vec3{Z: -500}, rng)
	intercepted.Destroyed = true
	grounded := engine.NewThreat(engine.KindBallistic, "M2", vector.Vec3{Z: 10000}, vector.Vec3{Z: -500}, rng)
	grounded.HitGround = true

	generator := NewReportGenerator(sl, ReportConfig{OutputDir: t.TempDir()})
	report := generator.Generate(
		engine.Stats{Launches: 1, Intercepted: 1, Missed: 1},
		[]*engine.Threat{intercepted, grounded},
	)

	if report.Summary.Outcome != "PARTIAL_DEFENSE" {
		t.Errorf("Outcome = %q, want PARTIAL_DEFENSE", report.Summary.Outcome)
	}
	if report.Summary.InterceptRate != 0.5 {
		t.Errorf("InterceptRate = %v, want 0.5", report.Summary.InterceptRate)
	}
	if len(report.Threats) != 2 {
		t.Fatalf("reported %d threats, want 2", len(report.Threats))
	}
	if report.Threats[0].Status != "DESTROYED" || report.Threats[1].Status != "HIT_GROUND" {
		t.Errorf("threat statuses = %q, %q, want DESTROYED, HIT_GROUND",
			report.Threats[0].Status, report.Threats[1].Status)
	}
	// Launch, interception, and ground impact all land on the timeline.
	if len(report.Timeline) != 3 {
		t.Errorf("timeline has %d entries, want 3", len(report.Timeline))
	}
}

func TestSaveReportWritesJSON(t *testing.T) {
	sl := newQuietLogger()
	dir := t.TempDir()
	generator := NewReportGenerator(sl, ReportConfig{OutputDir: dir})

	report := generator.Generate(engine.Stats{}, nil)
	path, err := generator.Save(report)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var loaded EngagementReport
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if loaded.Metadata.SimulationID != "test-run" {
		t.Errorf("SimulationID = %q, want test-run", loaded.Metadata.SimulationID)
	}
}

func TestDescribeOutcome(t *testing.T) {
	cases := []struct {
		name      string
		stats     engine.Stats
		remaining int
		want      string
	}{
		{"clean sweep", engine.Stats{Intercepted: 5}, 0, "ALL_THREATS_INTERCEPTED"},
		{"total loss", engine.Stats{Missed: 5}, 0, "DEFENSE_OVERWHELMED"},
		{"mixed", engine.Stats{Intercepted: 3, Missed: 2}, 0, "PARTIAL_DEFENSE"},
		{"cut short", engine.Stats{Intercepted: 1}, 4, "INCOMPLETE"},
	}

	for _, tc := range cases {
		if got := describeOutcome(tc.stats, tc.remaining); got != tc.want {
			t.Errorf("%s: describeOutcome() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
