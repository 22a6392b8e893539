// Package verbosity defines the ordered logging verbosity levels consumed by
// the evaluation pipeline. The options core stores a Level; the pipeline maps
// it to a slog level when it sets up its logger. This package never logs.
package verbosity

import (
	"log/slog"
	"strings"

	evalerr "github.com/gridwave/bempot/internal/errors"
)

// Level is an ordered verbosity level, from Low (errors and warnings only)
// to High (per-block assembly detail).
type Level int

const (
	// Low suppresses everything below warnings.
	Low Level = iota
	// Default reports run-level progress. This is the baseline level assigned
	// on construction of evaluation options.
	Default
	// High additionally reports per-block assembly and timing detail.
	High
)

// Levels returns every level in ascending order.
func Levels() []Level {
	return []Level{Low, Default, High}
}

// String returns the canonical lowercase name of the level.
func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Default:
		return "default"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Valid reports whether l is a recognized level.
func (l Level) Valid() bool {
	return l >= Low && l <= High
}

// SlogLevel maps the level onto the slog level used by the evaluation
// pipeline's logger.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case Low:
		return slog.LevelWarn
	case High:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Parse converts a level name to a Level. Matching is case-insensitive.
// "medium" is accepted as an alias for "default".
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "default", "medium":
		return Default, nil
	case "high":
		return High, nil
	default:
		return Default, evalerr.UnknownVerbosityLevel(s)
	}
}
