// Package potential implements the evaluation pipeline consuming finalized
// EvaluationOptions. An Evaluator reads the options once at the start of a
// run and dispatches to the dense or hierarchical-matrix code path; the
// options object is treated as immutable input for the duration of the run.
package potential

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	evalerr "github.com/gridwave/bempot/internal/errors"
	"github.com/gridwave/bempot/internal/kernel"
	"github.com/gridwave/bempot/internal/options"
	"github.com/gridwave/bempot/internal/quadrature"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// targetChunk is the number of target points handed to one worker at a time.
const targetChunk = 64

// Evaluator evaluates the potential generated by charge distributions on a
// boundary quadrature rule. It is safe for concurrent use once constructed.
type Evaluator struct {
	kern kernel.Kernel
	rule quadrature.Rule
	opts *options.EvaluationOptions
	log  *slog.Logger
}

// NewEvaluator creates an evaluator for the given kernel and quadrature rule.
// The options object must be fully configured; the evaluator does not mutate
// it. A nil logger installs a text logger on stderr gated by the configured
// verbosity level.
func NewEvaluator(k kernel.Kernel, rule quadrature.Rule, opts *options.EvaluationOptions, log *slog.Logger) (*Evaluator, error) {
	if k == nil {
		return nil, evalerr.NewInvalidArgument("evaluator requires a kernel")
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = options.New()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: opts.VerbosityLevel().SlogLevel(),
		}))
	}
	return &Evaluator{kern: k, rule: rule, opts: opts, log: log}, nil
}

// EvaluateAtPoints evaluates the potential of a single charge distribution at
// the given target points. density holds the distribution values at the
// quadrature points. Kernel values are computed once per (target, quadrature
// point) pair and discarded; work is spread over the resolved thread count.
func (e *Evaluator) EvaluateAtPoints(ctx context.Context, density []float64, targets []r3.Vec) ([]float64, error) {
	if len(density) != e.rule.Len() {
		return nil, evalerr.NewInvalidArgument(
			fmt.Sprintf("density has %d values but the quadrature rule has %d points", len(density), e.rule.Len()))
	}
	if len(targets) == 0 {
		return nil, evalerr.NewInvalidArgument("no target points supplied")
	}

	workers := e.opts.ParallelizationOptions().Resolve()
	e.log.Info("evaluating potential",
		"kernel", e.kern.Name(),
		"targets", len(targets),
		"quadraturePoints", e.rule.Len(),
		"workers", workers,
	)
	start := time.Now()

	result := make([]float64, len(targets))
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
				result[i] = e.potentialAt(targets[i], density)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, evalerr.WrapWithMessage(err, evalerr.Runtime, "potential evaluation aborted")
	}

	e.log.Debug("pointwise evaluation finished", "elapsed", time.Since(start))
	return result, nil
}

// potentialAt computes the quadrature sum for one target point.
func (e *Evaluator) potentialAt(target r3.Vec, density []float64) float64 {
	var sum float64
	for j, y := range e.rule.Points {
		sum += e.rule.Weights[j] * density[j] * e.kern.Evaluate(target, y)
	}
	return sum
}
