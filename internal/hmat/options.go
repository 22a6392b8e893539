// Package hmat implements the hierarchical-matrix representation of assembled
// potential operators: a geometric cluster tree over target and source points,
// a block partition into admissible (well-separated) and inadmissible blocks,
// low-rank compression of admissible blocks via adaptive cross approximation,
// and matrix-vector application against the compressed form.
package hmat

import (
	"fmt"

	evalerr "github.com/gridwave/bempot/internal/errors"
)

// Options configures hierarchical-matrix assembly. It is owned by this
// subsystem; the evaluation options core stores a validated copy when the
// caller switches to hmat mode.
type Options struct {
	// Tolerance is the relative stopping tolerance of the adaptive cross
	// approximation. Smaller values yield more accurate, higher-rank blocks.
	Tolerance float64
	// Eta is the admissibility parameter: a block is compressed when
	// min(diam(rows), diam(cols)) <= Eta * dist(rows, cols).
	Eta float64
	// LeafSize is the maximum number of points in an undivided cluster.
	LeafSize int
	// MaxRank caps the rank of a compressed block. Blocks that fail to reach
	// the tolerance within MaxRank terms are stored densely.
	MaxRank int
}

// DefaultOptions returns the default hierarchical-matrix configuration.
func DefaultOptions() Options {
	return Options{
		Tolerance: 1e-4,
		Eta:       1.2,
		LeafSize:  32,
		MaxRank:   64,
	}
}

// Validate checks the option invariants. All fields must be strictly positive.
func (o Options) Validate() error {
	if o.Tolerance <= 0 {
		return evalerr.NewInvalidArgument(fmt.Sprintf("hmat tolerance must be positive, got %g", o.Tolerance))
	}
	if o.Eta <= 0 {
		return evalerr.NewInvalidArgument(fmt.Sprintf("hmat admissibility eta must be positive, got %g", o.Eta))
	}
	if o.LeafSize <= 0 {
		return evalerr.NewInvalidArgument(fmt.Sprintf("hmat leaf size must be positive, got %d", o.LeafSize))
	}
	if o.MaxRank <= 0 {
		return evalerr.NewInvalidArgument(fmt.Sprintf("hmat max rank must be positive, got %d", o.MaxRank))
	}
	return nil
}
