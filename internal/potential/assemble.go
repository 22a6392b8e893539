package potential

import (
	"context"
	"fmt"
	"time"

	evalerr "github.com/gridwave/bempot/internal/errors"
	"github.com/gridwave/bempot/internal/hmat"
	"github.com/gridwave/bempot/internal/options"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// AssembledOperator is a reusable matrix representation of a potential
// operator for a fixed set of target points. Element (i, j) holds the
// potential produced at target i by a unit charge at quadrature point j, with
// the quadrature weight folded in, so applying the operator to a vector of
// density values yields the potentials.
type AssembledOperator struct {
	mode  options.Mode
	dense *mat.Dense
	h     *hmat.Matrix
	rows  int
	cols  int
}

// Assemble builds the matrix representation of the potential operator at the
// given target points, dispatching on the configured evaluation mode.
func (e *Evaluator) Assemble(ctx context.Context, targets []r3.Vec) (*AssembledOperator, error) {
	if len(targets) == 0 {
		return nil, evalerr.NewInvalidArgument("no target points supplied")
	}

	workers := e.opts.ParallelizationOptions().Resolve()
	mode := e.opts.EvaluationMode()
	e.log.Info("assembling potential operator",
		"mode", mode.String(),
		"rows", len(targets),
		"cols", e.rule.Len(),
		"workers", workers,
	)
	start := time.Now()

	op := &AssembledOperator{mode: mode, rows: len(targets), cols: e.rule.Len()}

	switch mode {
	case options.ModeDense:
		dense, err := e.assembleDense(ctx, targets, workers)
		if err != nil {
			return nil, err
		}
		op.dense = dense
	case options.ModeHMat:
		h, err := hmat.Assemble(ctx, targets, e.rule.Points, e.entry(targets), e.opts.HMatOptions(), workers)
		if err != nil {
			return nil, err
		}
		e.log.Debug("hmat assembly finished", "compressionRatio", h.CompressionRatio())
		op.h = h
	default:
		return nil, evalerr.NewAssemblyError(fmt.Sprintf("unhandled evaluation mode %q", mode))
	}

	e.log.Debug("assembly finished", "elapsed", time.Since(start))
	return op, nil
}

// entry returns the operator entry generator: weighted kernel values.
func (e *Evaluator) entry(targets []r3.Vec) func(i, j int) float64 {
	return func(i, j int) float64 {
		return e.rule.Weights[j] * e.kern.Evaluate(targets[i], e.rule.Points[j])
	}
}

// assembleDense fills the dense operator matrix row-block-parallel.
func (e *Evaluator) assembleDense(ctx context.Context, targets []r3.Vec, workers int) (*mat.Dense, error) {
	entry := e.entry(targets)
	dense := mat.NewDense(len(targets), e.rule.Len(), nil)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(targets); lo += targetChunk {
		lo := lo
		hi := min(lo+targetChunk, len(targets))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				for j := 0; j < e.rule.Len(); j++ {
					dense.Set(i, j, entry(i, j))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, evalerr.WrapWithMessage(err, evalerr.Assembly, "dense assembly aborted")
	}
	return dense, nil
}

// Dims returns the operator dimensions (targets, quadrature points).
func (op *AssembledOperator) Dims() (rows, cols int) {
	return op.rows, op.cols
}

// Mode returns the evaluation mode the operator was assembled under.
func (op *AssembledOperator) Mode() options.Mode {
	return op.mode
}

// Apply evaluates the potentials produced by the charge distribution with the
// given density values at the quadrature points.
func (op *AssembledOperator) Apply(density []float64) ([]float64, error) {
	if len(density) != op.cols {
		return nil, evalerr.NewInvalidArgument(
			fmt.Sprintf("density has %d values but the operator has %d columns", len(density), op.cols))
	}
	switch op.mode {
	case options.ModeDense:
		out := mat.NewVecDense(op.rows, nil)
		out.MulVec(op.dense, mat.NewVecDense(len(density), density))
		result := make([]float64, op.rows)
		copy(result, out.RawVector().Data)
		return result, nil
	case options.ModeHMat:
		return op.h.MatVec(density)
	default:
		return nil, evalerr.NewRuntimeError(fmt.Sprintf("unhandled evaluation mode %q", op.mode))
	}
}
