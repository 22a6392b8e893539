package options

import (
	"strings"

	evalerr "github.com/gridwave/bempot/internal/errors"
)

// Mode selects which of the two structurally different evaluation algorithms
// runs: dense quadrature-based pointwise evaluation, or hierarchical-matrix
// compressed evaluation. The set is closed; dispatch sites switch over it
// exhaustively.
type Mode int

const (
	// ModeDense assembles dense operators and evaluates kernels pairwise.
	// This is the default evaluation mode. For a single charge distribution
	// the potential is a quadrature sum with kernel values computed once per
	// (target, source) pair and discarded; for repeated evaluation the same
	// values are accumulated into a reusable dense matrix.
	ModeDense Mode = iota
	// ModeHMat assembles hierarchical matrices: the operator matrix is stored
	// in block low-rank form, trading exact pairwise evaluation for
	// sub-quadratic storage and application under a compression tolerance.
	ModeHMat
)

// String returns the canonical lowercase mode tag.
func (m Mode) String() string {
	switch m {
	case ModeDense:
		return "dense"
	case ModeHMat:
		return "hmat"
	default:
		return "unknown"
	}
}

// ParseMode converts a raw mode tag to a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dense":
		return ModeDense, nil
	case "hmat":
		return ModeHMat, nil
	default:
		return ModeDense, evalerr.UnknownEvaluationMode(s)
	}
}
