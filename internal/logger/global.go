package logger

import "os"

// Global logger instance, configured from LOG_LEVEL and LOG_FORMAT at
// startup and reconfigured once the service config has been loaded.
var globalLogger *Logger

func init() {
	globalLogger = NewDefault()
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		globalLogger.SetLevel(ParseLevel(levelStr))
	}
	if formatStr := os.Getenv("LOG_FORMAT"); formatStr != "" {
		globalLogger.SetFormat(ParseFormat(formatStr))
	}
}

// Configure reconfigures the global logger
func Configure(level, format string) {
	globalLogger.SetLevel(ParseLevel(level))
	globalLogger.SetFormat(ParseFormat(format))
}

// Global returns the global logger
func Global() *Logger {
	return globalLogger
}

// Component returns a component-scoped copy of the global logger
func Component(name string) *Logger {
	return globalLogger.WithComponent(name)
}
