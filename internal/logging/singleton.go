package logging

import (
	"io"
	"os"
	"sync"
)

var (
	mu        sync.Mutex
	instance  *Logger
	logConfig *Config

	fallbackOutput io.Writer = os.Stdout
)

// Configure sets the configuration the next GetLogger call builds from.
// Passing nil drops the current logger.
func Configure(config *Config) {
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
	instance = nil
}

// GetLogger returns the process-wide logger. Without a configuration, or
// with one NewLogger rejects, it falls back to an info-level stdout logger.
func GetLogger() *Logger {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	if logConfig == nil {
		instance = NewWriterLogger(fallbackOutput, LevelInfo)
		instance.Warn("logging.Configure was not called, logging to stdout at info level")
		return instance
	}

	logger, err := NewLogger(logConfig)
	if err != nil {
		instance = NewWriterLogger(fallbackOutput, LevelInfo)
		instance.Error("Failed to initialize logger, logging to stdout at info level: %v", err)
		return instance
	}

	instance = logger
	return instance
}
