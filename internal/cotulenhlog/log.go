// Package cotulenhlog wires up a named, leveled logger for the engine's
// Game Controller. Leaf components (position store, stack manager,
// air-defense map, move generator) never log; only the controller, the
// sole mutator of game state, does.
package cotulenhlog

import (
	"os"

	logging "github.com/op/go-logging"
)

// Level mirrors the subset of go-logging levels the controller uses.
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
	LevelDebug
)

func (l Level) toBackend() logging.Level {
	switch l {
	case LevelError:
		return logging.ERROR
	case LevelWarning:
		return logging.WARNING
	case LevelInfo:
		return logging.INFO
	default:
		return logging.DEBUG
	}
}

// ParseLevel maps a config string ("error", "warning", "info", "debug")
// to a Level, defaulting to LevelWarning for anything unrecognized.
func ParseLevel(s string) Level {
	switch s {
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelWarning
	}
}

// New returns a logger named for the given subsystem (e.g. "game"),
// configured to write to stderr at the given level.
func New(name string, level Level) *logging.Logger {
	log := logging.MustGetLogger(name)
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortfunc} %{level:.4s} %{message}`,
	)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level.toBackend(), name)
	logging.SetBackend(leveled)
	return log
}

// Discard returns a logger backed by nothing (level above any message
// the controller emits), for use in tests and library embedding where
// stderr chatter is unwanted.
func Discard() *logging.Logger {
	log := logging.MustGetLogger("cotulenh-discard")
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(logging.CRITICAL, "cotulenh-discard")
	logging.SetBackend(leveled)
	return log
}
