// Package reporting provides the engagement event log, colored console
// output, and post-run report generation for the air-defense simulation.
package reporting

import (
	"fmt"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// EventType constants
const (
	EventTypeSpawn        = "spawn"
	EventTypeLaunch       = "launch"
	EventTypeInterception = "interception"
	EventTypeGroundImpact = "ground_impact"
	EventTypeExpiry       = "expiry"
	EventTypeSystem       = "system"
)

// Severity constants
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Color definitions
var (
	colorInfo     = color.New(color.FgCyan)
	colorWarning  = color.New(color.FgYellow)
	colorError    = color.New(color.FgRed)
	colorCritical = color.New(color.FgRed, color.Bold)
	colorSuccess  = color.New(color.FgGreen)
)

// EngagementEvent is a single logged simulation event.
type EngagementEvent struct {
	Timestamp time.Time
	SimTime   float64
	Type      string
	Severity  string
	EntityID  *uuid.UUID
	Message   string
	Details   map[string]interface{}
}

// SimulationLogger records engagement events and mirrors the important
// ones to the console. Safe for concurrent use.
type SimulationLogger struct {
	simulationID string
	startTime    time.Time
	bufferSize   int
	console      bool
	events       []EngagementEvent
	mu           sync.RWMutex
}

// NewSimulationLogger creates a logger for one run. bufferSize bounds the
// retained event history; console controls whether events are printed.
func NewSimulationLogger(simulationID string, bufferSize int, console bool) *SimulationLogger {
	sl := &SimulationLogger{
		simulationID: simulationID,
		startTime:    time.Now(),
		bufferSize:   bufferSize,
		console:      console,
		events:       make([]EngagementEvent, 0),
	}

	sl.printEvent(SeverityInfo, "Simulation Started",
		fmt.Sprintf("ID: %s | Time: %s", simulationID, sl.startTime.Format("15:04:05")))

	return sl
}

// LogSpawn records the creation of a threat.
func (sl *SimulationLogger) LogSpawn(entityID uuid.UUID, name, kind string) {
	sl.logEvent(EngagementEvent{
		Timestamp: time.Now(),
		Type:      EventTypeSpawn,
		Severity:  SeverityInfo,
		EntityID:  &entityID,
		Message:   fmt.Sprintf("Threat spawned: %s (%s)", name, kind),
		Details:   map[string]interface{}{"kind": kind},
	})
}

// LogLaunch records an interceptor launch, automatic or manual.
func (sl *SimulationLogger) LogLaunch(simTime float64, message string) {
	sl.logEvent(EngagementEvent{
		Timestamp: time.Now(),
		SimTime:   simTime,
		Type:      EventTypeLaunch,
		Severity:  SeverityInfo,
		Message:   message,
	})
	sl.printEvent(SeverityInfo, "🚀 Launch", message)
}

// LogInterception records a successful threat kill.
func (sl *SimulationLogger) LogInterception(simTime float64, message string) {
	sl.logEvent(EngagementEvent{
		Timestamp: time.Now(),
		SimTime:   simTime,
		Type:      EventTypeInterception,
		Severity:  SeverityInfo,
		Message:   message,
	})
	sl.printEvent(SeverityInfo, "💥 Intercept", message)
}

// LogGroundImpact records a threat reaching the ground undefended.
func (sl *SimulationLogger) LogGroundImpact(simTime float64, message string) {
	sl.logEvent(EngagementEvent{
		Timestamp: time.Now(),
		SimTime:   simTime,
		Type:      EventTypeGroundImpact,
		Severity:  SeverityCritical,
		Message:   message,
	})
	sl.printEvent(SeverityCritical, "☄️  Ground Impact", message)
}

// LogExpiry records an interceptor running out its flight budget.
func (sl *SimulationLogger) LogExpiry(simTime float64, message string) {
	sl.logEvent(EngagementEvent{
		Timestamp: time.Now(),
		SimTime:   simTime,
		Type:      EventTypeExpiry,
		Severity:  SeverityWarning,
		Message:   message,
	})
}

// LogError records a system error.
func (sl *SimulationLogger) LogError(message string, err error) {
	sl.logEvent(EngagementEvent{
		Timestamp: time.Now(),
		Type:      EventTypeSystem,
		Severity:  SeverityError,
		Message:   message,
		Details:   map[string]interface{}{"error": err.Error()},
	})
	sl.printEvent(SeverityError, "Error", fmt.Sprintf("%s: %v", message, err))
}

func (sl *SimulationLogger) logEvent(event EngagementEvent) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	sl.events = append(sl.events, event)
	if sl.bufferSize > 0 && len(sl.events) > sl.bufferSize {
		sl.events = sl.events[len(sl.events)-sl.bufferSize:]
	}
}

func (sl *SimulationLogger) printEvent(severity, eventType, message string) {
	if !sl.console {
		return
	}

	var severityColor *color.Color
	switch severity {
	case SeverityWarning:
		severityColor = colorWarning
	case SeverityError:
		severityColor = colorError
	case SeverityCritical:
		severityColor = colorCritical
	default:
		severityColor = colorInfo
	}

	fmt.Printf("[%s] %s %s | %s\n",
		time.Now().Format("15:04:05.000"),
		severityColor.Sprint(fmt.Sprintf("%-8s", severity)),
		eventType,
		message)
}

// GetEvents returns a copy of all retained events.
func (sl *SimulationLogger) GetEvents() []EngagementEvent {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	events := make([]EngagementEvent, len(sl.events))
	copy(events, sl.events)
	return events
}

// RunSummary aggregates a finished run.
type RunSummary struct {
	SimulationID string
	StartTime    time.Time
	Duration     time.Duration
	TotalEvents  int
	EventCounts  map[string]int
	Launches     int
	Intercepted  int
	Missed       int
	Remaining    int
}

// GetSummary builds a summary from the retained events and the final
// engagement counters.
func (sl *SimulationLogger) GetSummary(launches, intercepted, missed, remaining int) RunSummary {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	eventCounts := make(map[string]int)
	for _, event := range sl.events {
		eventCounts[event.Type]++
	}

	return RunSummary{
		SimulationID: sl.simulationID,
		StartTime:    sl.startTime,
		Duration:     time.Since(sl.startTime),
		TotalEvents:  len(sl.events),
		EventCounts:  eventCounts,
		Launches:     launches,
		Intercepted:  intercepted,
		Missed:       missed,
		Remaining:    remaining,
	}
}

// PrintSummary prints a formatted end-of-run summary.
func (sl *SimulationLogger) PrintSummary(summary RunSummary) {
	colorSuccess.Println("\n╔════════════════════════════════════════════╗")
	colorSuccess.Println("║            ENGAGEMENT SUMMARY              ║")
	colorSuccess.Println("╚════════════════════════════════════════════╝")

	fmt.Printf("\n📊 Duration: %v | Total Events: %d\n", summary.Duration.Round(time.Millisecond), summary.TotalEvents)

	fmt.Println("\n🎯 Engagement Results:")
	fmt.Printf("   %-20s: %d\n", "interceptors fired", summary.Launches)
	fmt.Printf("   %-20s: %d\n", "threats intercepted", summary.Intercepted)
	fmt.Printf("   %-20s: %d\n", "ground impacts", summary.Missed)
	fmt.Printf("   %-20s: %d\n", "threats remaining", summary.Remaining)

	if len(summary.EventCounts) > 0 {
		fmt.Println("\n📈 Event Distribution:")
		for eventType, count := range summary.EventCounts {
			fmt.Printf("   %-20s: %d\n", eventType, count)
		}
	}

	colorSuccess.Println("\n══════════════════════════════════════════════")
}
