package quadrature

import (
	"fmt"
	"math"

	evalerr "github.com/gridwave/bempot/internal/errors"
)

// newtonTol is the convergence tolerance for Legendre root finding.
const newtonTol = 1e-14

// GaussLegendre returns the nodes and weights of the n-point Gauss-Legendre
// rule on [-1, 1]. Roots of the Legendre polynomial P_n are located by Newton
// iteration from the Chebyshev initial guess.
func GaussLegendre(n int) (nodes, weights []float64, err error) {
	if n < 1 {
		return nil, nil, evalerr.NewInvalidArgument(fmt.Sprintf("gauss-legendre order must be positive, got %d", n))
	}

	nodes = make([]float64, n)
	weights = make([]float64, n)

	// Roots are symmetric about zero; compute the non-negative half.
	for i := 0; i < (n+1)/2; i++ {
		x := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))

		var dp float64
		for iter := 0; iter < 100; iter++ {
			var p float64
			p, dp = legendre(n, x)
			dx := p / dp
			x -= dx
			if math.Abs(dx) < newtonTol {
				break
			}
		}

		w := 2 / ((1 - x*x) * dp * dp)
		nodes[i] = -x
		nodes[n-1-i] = x
		weights[i] = w
		weights[n-1-i] = w
	}
	return nodes, weights, nil
}

// legendre evaluates the Legendre polynomial P_n and its derivative at x via
// the three-term recurrence.
func legendre(n int, x float64) (p, dp float64) {
	p0, p1 := 1.0, x
	for k := 2; k <= n; k++ {
		p0, p1 = p1, ((2*float64(k)-1)*x*p1-(float64(k)-1)*p0)/float64(k)
	}
	if n == 0 {
		return 1, 0
	}
	if n == 1 {
		return x, 1
	}
	dp = float64(n) * (x*p1 - p0) / (x*x - 1)
	return p1, dp
}
