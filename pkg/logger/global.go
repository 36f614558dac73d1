package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	globalLogger *Logger
	mu           sync.RWMutex
	once         sync.Once
)

// GetLogger returns the process-wide logger. Until SetLogger is called it is
// a JSON logger on stderr at warn level; DEBUG=true or LOG_LEVEL override it.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if globalLogger != nil {
			return
		}
		level := "warn"
		if os.Getenv("DEBUG") == "true" {
			level = "debug"
		} else if v := os.Getenv("LOG_LEVEL"); v != "" {
			level = v
		}
		globalLogger = New(Config{Level: level, Format: "json", Output: "stderr"})
	})

	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// SetLogger replaces the process-wide logger and points zerolog's global
// logger at it, so third-party code using zerolog/log shares the sink.
func SetLogger(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = l
	log.Logger = l.logger
}

// Component returns the process-wide logger tagged with a component name.
func Component(name string) *Logger {
	return GetLogger().WithComponent(name)
}
