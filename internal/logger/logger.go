package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	logger         *log.Logger
	initLoggerOnce sync.Once
)

// InitLogger initializes the default logger
func InitLogger() {
	initLoggerOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "bigocheck",
		})
		logger.SetLevel(log.InfoLevel)
	})
}

func ensureInitialized() {
	InitLogger()
}

// SetLevel sets the logging level
func SetLevel(level log.Level) {
	ensureInitialized()
	logger.SetLevel(level)
}

// SetLevelName sets the level from a name such as "debug" or "warn".
func SetLevelName(name string) error {
	level, err := log.ParseLevel(name)
	if err != nil {
		return err
	}
	SetLevel(level)
	return nil
}

// SetDebug toggles debug logging
func SetDebug(debug bool) {
	ensureInitialized()
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

func Info(msg string, keyvals ...any) {
	ensureInitialized()
	logger.Info(msg, keyvals...)
}

func Debug(msg string, keyvals ...any) {
	ensureInitialized()
	logger.Debug(msg, keyvals...)
}

func Warn(msg string, keyvals ...any) {
	ensureInitialized()
	logger.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...any) {
	ensureInitialized()
	logger.Error(msg, keyvals...)
}

// With returns a child logger carrying the given key/value pairs
func With(keyvals ...any) *log.Logger {
	ensureInitialized()
	return logger.With(keyvals...)
}

// SetOutput redirects log output, e.g. away from stdout in stdio transports.
func SetOutput(w io.Writer) {
	ensureInitialized()
	logger.SetOutput(w)
}

// Disable discards all log output
func Disable() {
	SetOutput(io.Discard)
}
