// Package quadrature provides boundary quadrature rules: weighted point sets
// approximating the boundary integral of a potential. Rules are plain data;
// generation of Gauss-Legendre rules lives in legendre.go.
package quadrature

import (
	"fmt"
	"math"

	evalerr "github.com/gridwave/bempot/internal/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rule is a quadrature rule over a boundary: sample points y_j with weights
// w_j approximating the integral as sum_j w_j * f(y_j).
type Rule struct {
	Points  []r3.Vec
	Weights []float64
}

// NewRule builds a rule from parallel point and weight slices.
func NewRule(points []r3.Vec, weights []float64) (Rule, error) {
	r := Rule{Points: points, Weights: weights}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Len returns the number of quadrature points.
func (r Rule) Len() int {
	return len(r.Points)
}

// Validate checks the rule invariants: non-empty, matching lengths, and
// finite weights.
func (r Rule) Validate() error {
	if len(r.Points) == 0 {
		return evalerr.NewInvalidArgument("quadrature rule must have at least one point")
	}
	if len(r.Points) != len(r.Weights) {
		return evalerr.NewInvalidArgument(
			fmt.Sprintf("quadrature rule has %d points but %d weights", len(r.Points), len(r.Weights)))
	}
	for j, w := range r.Weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return evalerr.NewInvalidArgument(fmt.Sprintf("quadrature weight %d is not finite", j))
		}
	}
	return nil
}

// Append returns a rule combining r with other. Used to compose per-panel
// rules into one boundary rule.
func (r Rule) Append(other Rule) Rule {
	return Rule{
		Points:  append(append([]r3.Vec{}, r.Points...), other.Points...),
		Weights: append(append([]float64{}, r.Weights...), other.Weights...),
	}
}

// SegmentRule maps an n-point Gauss-Legendre rule onto the straight segment
// from a to b, scaling weights by the segment half-length.
func SegmentRule(a, b r3.Vec, n int) (Rule, error) {
	nodes, weights, err := GaussLegendre(n)
	if err != nil {
		return Rule{}, err
	}
	mid := r3.Scale(0.5, r3.Add(a, b))
	half := r3.Scale(0.5, r3.Sub(b, a))
	scale := 0.5 * r3.Norm(r3.Sub(b, a))

	rule := Rule{
		Points:  make([]r3.Vec, n),
		Weights: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		rule.Points[i] = r3.Add(mid, r3.Scale(nodes[i], half))
		rule.Weights[i] = weights[i] * scale
	}
	return rule, nil
}
