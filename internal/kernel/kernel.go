// Package kernel provides the kernel functions appearing under the boundary
// integral of a potential operator. Kernels are pure functions of a target
// and source point; the evaluation pipeline calls them once per point pair.
package kernel

import (
	"math"
	"strings"

	evalerr "github.com/gridwave/bempot/internal/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kernel evaluates the integral kernel at a (target, source) point pair.
type Kernel interface {
	// Evaluate returns the kernel value K(x, y). Coincident points return 0;
	// the singular self-contribution is excluded from the quadrature sum.
	Evaluate(target, source r3.Vec) float64
	// Name returns the canonical kernel name used in problem files.
	Name() string
}

// LaplaceSingleLayer is the 3D Laplace single-layer kernel 1/(4*pi*r).
type LaplaceSingleLayer struct{}

// Evaluate implements Kernel.
func (LaplaceSingleLayer) Evaluate(target, source r3.Vec) float64 {
	r := r3.Norm(r3.Sub(target, source))
	if r == 0 {
		return 0
	}
	return 1 / (4 * math.Pi * r)
}

// Name implements Kernel.
func (LaplaceSingleLayer) Name() string { return "laplace" }

// Yukawa is the modified Helmholtz (screened Coulomb) kernel
// exp(-lambda*r)/(4*pi*r). Lambda must be non-negative; lambda 0 reduces to
// the Laplace single-layer kernel.
type Yukawa struct {
	Lambda float64
}

// Evaluate implements Kernel.
func (k Yukawa) Evaluate(target, source r3.Vec) float64 {
	r := r3.Norm(r3.Sub(target, source))
	if r == 0 {
		return 0
	}
	return math.Exp(-k.Lambda*r) / (4 * math.Pi * r)
}

// Name implements Kernel.
func (k Yukawa) Name() string { return "yukawa" }

// New returns the kernel registered under the given name. lambda is only
// consulted by kernels that take a screening parameter.
func New(name string, lambda float64) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "laplace":
		return LaplaceSingleLayer{}, nil
	case "yukawa":
		if lambda < 0 {
			return nil, evalerr.NewInvalidArgument("yukawa kernel requires a non-negative lambda")
		}
		return Yukawa{Lambda: lambda}, nil
	default:
		return nil, evalerr.UnknownKernel(name)
	}
}
