package hmat

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// aca builds a partially pivoted adaptive cross approximation of the block
// spanned by rowIdx x colIdx. It returns factors u (m x k) and v (n x k) such
// that the block is approximated by u * v^T, or ok=false when the tolerance
// was not reached within maxRank terms (the caller stores the block densely).
func aca(rowIdx, colIdx []int, entry func(i, j int) float64, tol float64, maxRank int) (u, v *mat.Dense, ok bool) {
	m := len(rowIdx)
	n := len(colIdx)
	if maxRank > m {
		maxRank = m
	}
	if maxRank > n {
		maxRank = n
	}

	var uCols, vCols [][]float64
	usedRows := make(map[int]bool, maxRank)
	usedCols := make(map[int]bool, maxRank)

	// Frobenius norm estimate of the accumulated approximation, updated per
	// term; the stopping test compares the newest term against it.
	var normSq float64

	pivotRow := 0
	for k := 0; k < maxRank; k++ {
		// Residual row at the current pivot.
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = entry(rowIdx[pivotRow], colIdx[j])
			for t := range uCols {
				row[j] -= uCols[t][pivotRow] * vCols[t][j]
			}
		}

		pivotCol, pivotVal := argmaxAbs(row, usedCols)
		if pivotVal == 0 {
			// Residual row vanished: the block is exactly rank k.
			return packFactors(uCols, vCols, m, n), packFactorsV(vCols, n), true
		}

		// Residual column at the pivot column, scaled by the pivot.
		col := make([]float64, m)
		for i := 0; i < m; i++ {
			col[i] = entry(rowIdx[i], colIdx[pivotCol])
			for t := range uCols {
				col[i] -= uCols[t][i] * vCols[t][pivotCol]
			}
			col[i] /= row[pivotCol]
		}

		usedRows[pivotRow] = true
		usedCols[pivotCol] = true
		uCols = append(uCols, col)
		vCols = append(vCols, row)

		termSq := dotSelf(col) * dotSelf(row)
		normSq += termSq
		if math.Sqrt(termSq) <= tol*math.Sqrt(normSq) {
			return packFactors(uCols, vCols, m, n), packFactorsV(vCols, n), true
		}

		// Next pivot row: largest residual entry in the newest column among
		// unused rows.
		pivotRow, _ = argmaxAbs(col, usedRows)
		if usedRows[pivotRow] {
			break
		}
	}

	return nil, nil, false
}

// argmaxAbs returns the index of the largest-magnitude entry not in skip,
// along with its magnitude.
func argmaxAbs(xs []float64, skip map[int]bool) (int, float64) {
	best, bestVal := 0, -1.0
	for i, x := range xs {
		if skip[i] {
			continue
		}
		if a := math.Abs(x); a > bestVal {
			best, bestVal = i, a
		}
	}
	if bestVal < 0 {
		return 0, 0
	}
	return best, bestVal
}

func dotSelf(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x * x
	}
	return s
}

// packFactors assembles the u factor (m x k) from accumulated columns.
func packFactors(uCols, vCols [][]float64, m, n int) *mat.Dense {
	k := len(uCols)
	if k == 0 {
		return mat.NewDense(m, 1, nil)
	}
	u := mat.NewDense(m, k, nil)
	for t, col := range uCols {
		for i := 0; i < m; i++ {
			u.Set(i, t, col[i])
		}
	}
	return u
}

// packFactorsV assembles the v factor (n x k) from accumulated rows.
func packFactorsV(vCols [][]float64, n int) *mat.Dense {
	k := len(vCols)
	if k == 0 {
		return mat.NewDense(n, 1, nil)
	}
	v := mat.NewDense(n, k, nil)
	for t, row := range vCols {
		for j := 0; j < n; j++ {
			v.Set(j, t, row[j])
		}
	}
	return v
}
