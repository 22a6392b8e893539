package hmat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// cluster is a node in the geometric cluster tree. Leaves hold at most
// LeafSize point indices; interior nodes split their index set at the median
// along the widest axis of the bounding box.
type cluster struct {
	// indices into the original point set, contiguous per subtree.
	indices []int
	// lo and hi are the corners of the axis-aligned bounding box.
	lo, hi r3.Vec
	left   *cluster
	right  *cluster
}

// buildCluster recursively builds a cluster tree over the given indices.
func buildCluster(pts []r3.Vec, indices []int, leafSize int) *cluster {
	c := &cluster{indices: indices}
	c.lo, c.hi = boundingBox(pts, indices)

	if len(indices) <= leafSize {
		return c
	}

	axis := widestAxis(c.lo, c.hi)
	sort.Slice(indices, func(i, j int) bool {
		return coord(pts[indices[i]], axis) < coord(pts[indices[j]], axis)
	})

	mid := len(indices) / 2
	c.left = buildCluster(pts, indices[:mid], leafSize)
	c.right = buildCluster(pts, indices[mid:], leafSize)
	return c
}

func (c *cluster) isLeaf() bool {
	return c.left == nil
}

// diameter returns the diagonal length of the bounding box.
func (c *cluster) diameter() float64 {
	return r3.Norm(r3.Sub(c.hi, c.lo))
}

// boxDist returns the distance between the bounding boxes of two clusters,
// zero if they overlap.
func boxDist(a, b *cluster) float64 {
	var sum float64
	for axis := 0; axis < 3; axis++ {
		gap := math.Max(coord(a.lo, axis), coord(b.lo, axis)) - math.Min(coord(a.hi, axis), coord(b.hi, axis))
		if gap > 0 {
			sum += gap * gap
		}
	}
	return math.Sqrt(sum)
}

// admissible reports whether the block (rows, cols) is well-separated enough
// for low-rank compression under the given admissibility parameter.
func admissible(rows, cols *cluster, eta float64) bool {
	d := boxDist(rows, cols)
	if d == 0 {
		return false
	}
	return math.Min(rows.diameter(), cols.diameter()) <= eta*d
}

func boundingBox(pts []r3.Vec, indices []int) (lo, hi r3.Vec) {
	lo = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, i := range indices {
		p := pts[i]
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		lo.Z = math.Min(lo.Z, p.Z)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
		hi.Z = math.Max(hi.Z, p.Z)
	}
	return lo, hi
}

func widestAxis(lo, hi r3.Vec) int {
	dx := hi.X - lo.X
	dy := hi.Y - lo.Y
	dz := hi.Z - lo.Z
	if dx >= dy && dx >= dz {
		return 0
	}
	if dy >= dz {
		return 1
	}
	return 2
}

func coord(v r3.Vec, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
