// Package logger provides the leveled, colored console logger shared by the
// CLI and the simulations.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// Logger is a leveled logger. Prefixed child loggers tag every line with a
// component name (e.g. RADAR, LAUNCHER).
type Logger struct {
	mu       sync.Mutex
	level    Level
	writer   io.Writer
	prefix   string
	noColor  bool
	showTime bool
}

var defaultLogger = New()

// New creates a logger writing to stdout at InfoLevel.
func New() *Logger {
	return &Logger{
		level:    InfoLevel,
		writer:   os.Stdout,
		showTime: true,
	}
}

// NewWithWriter creates a logger writing to w without color or timestamps,
// which keeps test output stable.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		level:   InfoLevel,
		writer:  w,
		noColor: true,
	}
}

// WithPrefix returns a child logger that tags every message with prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		level:    l.level,
		writer:   l.writer,
		prefix:   prefix,
		noColor:  l.noColor,
		showTime: l.showTime,
	}
}

// SetLevel sets the default logger's level.
func SetLevel(level Level) {
	defaultLogger.mu.Lock()
	defaultLogger.level = level
	defaultLogger.mu.Unlock()
}

// SetNoColor disables color output on the default logger.
func SetNoColor(noColor bool) {
	defaultLogger.mu.Lock()
	defaultLogger.noColor = noColor
	defaultLogger.mu.Unlock()
}

// WithPrefix returns a child of the default logger.
func WithPrefix(prefix string) *Logger { return defaultLogger.WithPrefix(prefix) }

// Package-level helpers for the default logger.
func Debug(args ...interface{})                 { defaultLogger.Debug(args...) }
func Debugf(format string, args ...interface{}) { defaultLogger.Debugf(format, args...) }
func Info(args ...interface{})                  { defaultLogger.Info(args...) }
func Infof(format string, args ...interface{})  { defaultLogger.Infof(format, args...) }
func Warn(args ...interface{})                  { defaultLogger.Warn(args...) }
func Warnf(format string, args ...interface{})  { defaultLogger.Warnf(format, args...) }
func Error(args ...interface{})                 { defaultLogger.Error(args...) }
func Errorf(format string, args ...interface{}) { defaultLogger.Errorf(format, args...) }
func Fatal(args ...interface{})                 { defaultLogger.Fatal(args...) }
func Fatalf(format string, args ...interface{}) { defaultLogger.Fatalf(format, args...) }

func (l *Logger) log(level Level, message string) {
	l.mu.Lock()
	if level < l.level {
		l.mu.Unlock()
		return
	}

	var parts []string
	if l.showTime {
		timestamp := time.Now().Format("15:04:05")
		parts = append(parts, l.paint(colorGray, timestamp))
	}

	levelStr, levelColor := levelTag(level)
	parts = append(parts, l.paint(levelColor, levelStr))

	if l.prefix != "" {
		parts = append(parts, l.paint(colorCyan, "["+l.prefix+"]"))
	}
	parts = append(parts, message)

	_, _ = fmt.Fprintln(l.writer, strings.Join(parts, " "))
	l.mu.Unlock()

	if level == FatalLevel {
		os.Exit(1)
	}
}

func (l *Logger) paint(color, s string) string {
	if l.noColor {
		return s
	}
	return color + s + colorReset
}

func levelTag(level Level) (string, string) {
	switch level {
	case DebugLevel:
		return "DEBUG", colorGray
	case InfoLevel:
		return "INFO ", colorGreen
	case WarnLevel:
		return "WARN ", colorYellow
	case ErrorLevel:
		return "ERROR", colorRed
	case FatalLevel:
		return "FATAL", colorRed + colorBold
	default:
		return "?????", colorReset
	}
}

func (l *Logger) Debug(args ...interface{}) { l.log(DebugLevel, fmt.Sprint(args...)) }
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Info(args ...interface{}) { l.log(InfoLevel, fmt.Sprint(args...)) }
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Warn(args ...interface{}) { l.log(WarnLevel, fmt.Sprint(args...)) }
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Error(args ...interface{}) { l.log(ErrorLevel, fmt.Sprint(args...)) }
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Fatal(args ...interface{}) { l.log(FatalLevel, fmt.Sprint(args...)) }
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(FatalLevel, fmt.Sprintf(format, args...))
}

// ParseLevel parses a string log level, defaulting to info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}
