package hmat

import (
	"context"
	"fmt"

	evalerr "github.com/gridwave/bempot/internal/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// block is one node of the block partition. Admissible blocks store low-rank
// factors u (m x k) and v (n x k); inadmissible leaf blocks store the dense
// submatrix.
type block struct {
	rows *cluster
	cols *cluster

	dense *mat.Dense
	u, v  *mat.Dense
}

// Matrix is a hierarchical representation of a rows x cols operator matrix
// defined entrywise by a generator function. After assembly it is immutable
// and safe for concurrent application.
type Matrix struct {
	numRows int
	numCols int
	blocks  []*block
	opts    Options
}

// Assemble builds a hierarchical matrix for the operator with entries
// entry(i, j), where i indexes targets and j indexes sources. Block filling
// runs on up to workers goroutines; workers < 1 means one.
func Assemble(ctx context.Context, targets, sources []r3.Vec, entry func(i, j int) float64, opts Options, workers int) (*Matrix, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(targets) == 0 || len(sources) == 0 {
		return nil, evalerr.NewInvalidArgument("hmat assembly requires at least one target and one source point")
	}
	if workers < 1 {
		workers = 1
	}

	rowTree := buildCluster(targets, seq(len(targets)), opts.LeafSize)
	colTree := buildCluster(sources, seq(len(sources)), opts.LeafSize)

	m := &Matrix{
		numRows: len(targets),
		numCols: len(sources),
		opts:    opts,
	}
	m.partition(rowTree, colTree)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, b := range m.blocks {
		b := b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fillBlock(b, entry, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, evalerr.WrapWithMessage(err, evalerr.Assembly, "hmat assembly aborted")
	}
	return m, nil
}

// partition recursively splits the block (rows, cols) until it is admissible
// or both clusters are leaves.
func (m *Matrix) partition(rows, cols *cluster) {
	if admissible(rows, cols, m.opts.Eta) || (rows.isLeaf() && cols.isLeaf()) {
		m.blocks = append(m.blocks, &block{rows: rows, cols: cols})
		return
	}
	for _, rc := range children(rows) {
		for _, cc := range children(cols) {
			m.partition(rc, cc)
		}
	}
}

// children returns the child clusters, or the cluster itself if it is a leaf.
func children(c *cluster) []*cluster {
	if c.isLeaf() {
		return []*cluster{c}
	}
	return []*cluster{c.left, c.right}
}

// fillBlock stores the block either as ACA low-rank factors or densely when
// the block is inadmissible or compression fails to converge.
func fillBlock(b *block, entry func(i, j int) float64, opts Options) {
	if admissible(b.rows, b.cols, opts.Eta) {
		if u, v, ok := aca(b.rows.indices, b.cols.indices, entry, opts.Tolerance, opts.MaxRank); ok {
			b.u, b.v = u, v
			return
		}
	}
	d := mat.NewDense(len(b.rows.indices), len(b.cols.indices), nil)
	for bi, i := range b.rows.indices {
		for bj, j := range b.cols.indices {
			d.Set(bi, bj, entry(i, j))
		}
	}
	b.dense = d
}

// Dims returns the dimensions of the represented matrix.
func (m *Matrix) Dims() (rows, cols int) {
	return m.numRows, m.numCols
}

// MatVec applies the hierarchical matrix to x and returns the product.
func (m *Matrix) MatVec(x []float64) ([]float64, error) {
	if len(x) != m.numCols {
		return nil, evalerr.NewInvalidArgument(
			fmt.Sprintf("hmat matvec: vector length %d does not match %d columns", len(x), m.numCols))
	}
	y := make([]float64, m.numRows)
	for _, b := range m.blocks {
		applyBlock(b, x, y)
	}
	return y, nil
}

// applyBlock accumulates the block's contribution into y.
func applyBlock(b *block, x, y []float64) {
	xb := make([]float64, len(b.cols.indices))
	for bj, j := range b.cols.indices {
		xb[bj] = x[j]
	}
	xv := mat.NewVecDense(len(xb), xb)

	yb := mat.NewVecDense(len(b.rows.indices), nil)
	if b.dense != nil {
		yb.MulVec(b.dense, xv)
	} else {
		// u * (v^T * x), evaluated right to left.
		_, k := b.v.Dims()
		tmp := mat.NewVecDense(k, nil)
		tmp.MulVec(b.v.T(), xv)
		yb.MulVec(b.u, tmp)
	}
	for bi, i := range b.rows.indices {
		y[i] += yb.AtVec(bi)
	}
}

// CompressionRatio returns stored floats divided by the dense entry count.
// Values below 1 indicate effective compression.
func (m *Matrix) CompressionRatio() float64 {
	var stored int
	for _, b := range m.blocks {
		if b.dense != nil {
			r, c := b.dense.Dims()
			stored += r * c
			continue
		}
		ur, uc := b.u.Dims()
		vr, vc := b.v.Dims()
		stored += ur*uc + vr*vc
	}
	return float64(stored) / float64(m.numRows*m.numCols)
}

// seq returns [0, 1, ..., n-1].
func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
