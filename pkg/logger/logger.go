package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Leveled logger shared by the catalog services.
// Call sites use printf-style helpers; records are written through zerolog,
// human-readable on a console by default and JSON when LOG_FORMAT=json.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	level  Level = LevelInfo
	zl           = newZerolog(os.Stdout, os.Getenv("LOG_FORMAT") == "json")
)

func newZerolog(w io.Writer, jsonOut bool) zerolog.Logger {
	if !jsonOut {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).With().Timestamp().Str("service", "catalog").Logger()
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = LevelDebug
	case "warn", "warning":
		level = LevelWarn
	case "error":
		level = LevelError
	case "fatal":
		level = LevelFatal
	default:
		level = LevelInfo
	}
}

// SetOutput redirects log records, e.g. to a buffer in tests.
func SetOutput(w io.Writer, jsonOut bool) {
	mu.Lock()
	defer mu.Unlock()
	zl = newZerolog(w, jsonOut)
}

func current(l Level) (zerolog.Logger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return zl, l >= level
}

func Debugf(format string, v ...interface{}) {
	if z, ok := current(LevelDebug); ok {
		z.Debug().Msgf(format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if z, ok := current(LevelInfo); ok {
		z.Info().Msgf(format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if z, ok := current(LevelWarn); ok {
		z.Warn().Msgf(format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if z, ok := current(LevelError); ok {
		z.Error().Msgf(format, v...)
	}
}

// Fatalf always logs and exits the process.
func Fatalf(format string, v ...interface{}) {
	z, _ := current(LevelFatal)
	z.Fatal().Msgf(format, v...)
}

// Println kept for brief messages (maps to Info)
func Println(v ...interface{}) {
	if z, ok := current(LevelInfo); ok {
		z.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
	}
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
