package logger

import (
	"fmt"
	"strings"
)

// Success logs a success message with a checkmark.
func Success(args ...interface{}) {
	defaultLogger.Info("✅ " + fmt.Sprint(args...))
}

// Successf logs a formatted success message.
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message.
func Progress(args ...interface{}) {
	defaultLogger.Info("🔄 " + fmt.Sprint(args...))
}

// Progressf logs a formatted progress message.
func Progressf(format string, args ...interface{}) {
	Progress(fmt.Sprintf(format, args...))
}

// LogSection prints a visual section separator around a title.
func LogSection(title string) {
	line := strings.Repeat("=", 50)
	if defaultLogger.noColor {
		fmt.Println(line)
		fmt.Println(title)
		fmt.Println(line)
		return
	}
	fmt.Println(colorCyan + line + colorReset)
	fmt.Println(colorCyan + colorBold + title + colorReset)
	fmt.Println(colorCyan + line + colorReset)
}

// LogKeyValue prints a key-value pair with the key highlighted.
func LogKeyValue(key string, value interface{}) {
	if defaultLogger.noColor {
		fmt.Printf("%s: %v\n", key, value)
		return
	}
	fmt.Printf("%s%s:%s %v\n", colorCyan, key, colorReset, value)
}
