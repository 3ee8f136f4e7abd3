package adbscan

import (
	"math"
	"sort"
)

// kdTree is a static 2D k-d tree over point indices. It backs the
// 1-nearest-neighbor classifier used for label propagation, the radius
// queries of the default DBSCAN, and the centroid index used during
// alignment.
//
// The tree is stored implicitly in a flat slice: ids is arranged so that each
// subtree occupies a contiguous range with its median at the middle element,
// alternating split axes per level. No separate node structs are allocated.
type kdTree struct {
	pts []Point
	ids []int
}

func newKDTree(pts []Point) *kdTree {
	ids := make([]int, len(pts))
	for i := range ids {
		ids[i] = i
	}
	t := &kdTree{pts: pts, ids: ids}
	t.build(0, len(ids), 0)
	return t
}

func coord(p Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

func sqDist(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// build arranges ids[lo:hi] so the axis-median sits at the middle index.
// Sorting the whole range is O(n log^2 n) overall, which is fine for the
// dataset sizes this library targets and keeps the layout deterministic.
func (t *kdTree) build(lo, hi, axis int) {
	if hi-lo <= 1 {
		return
	}
	seg := t.ids[lo:hi]
	sort.Slice(seg, func(a, b int) bool {
		ca, cb := coord(t.pts[seg[a]], axis), coord(t.pts[seg[b]], axis)
		if ca != cb {
			return ca < cb
		}
		return seg[a] < seg[b]
	})
	mid := (lo + hi) / 2
	t.build(lo, mid, 1-axis)
	t.build(mid+1, hi, 1-axis)
}

// Nearest returns the index of the reference point closest to q, or -1 for
// an empty tree. Equidistant candidates resolve to the lowest point index so
// queries are deterministic.
func (t *kdTree) Nearest(q Point) int {
	best := -1
	bestD := math.Inf(1)
	var walk func(lo, hi, axis int)
	walk = func(lo, hi, axis int) {
		if lo >= hi {
			return
		}
		mid := (lo + hi) / 2
		id := t.ids[mid]
		d := sqDist(q, t.pts[id])
		if d < bestD || (d == bestD && id < best) {
			bestD = d
			best = id
		}
		delta := coord(q, axis) - coord(t.pts[id], axis)
		if delta < 0 {
			walk(lo, mid, 1-axis)
			if delta*delta <= bestD {
				walk(mid+1, hi, 1-axis)
			}
		} else {
			walk(mid+1, hi, 1-axis)
			if delta*delta <= bestD {
				walk(lo, mid, 1-axis)
			}
		}
	}
	walk(0, len(t.ids), 0)
	return best
}

// Within returns the indices of all reference points at euclidean distance
// <= r from q, in ascending index order. The query point's own index is
// included when it is part of the tree.
func (t *kdTree) Within(q Point, r float64) []int {
	r2 := r * r
	var out []int
	var walk func(lo, hi, axis int)
	walk = func(lo, hi, axis int) {
		if lo >= hi {
			return
		}
		mid := (lo + hi) / 2
		id := t.ids[mid]
		if sqDist(q, t.pts[id]) <= r2 {
			out = append(out, id)
		}
		c := coord(t.pts[id], axis)
		if coord(q, axis)-r <= c {
			walk(lo, mid, 1-axis)
		}
		if coord(q, axis)+r >= c {
			walk(mid+1, hi, 1-axis)
		}
	}
	walk(0, len(t.ids), 0)
	sort.Ints(out)
	return out
}

// nnClassifier assigns each query point the label of its nearest reference
// point (k=1). A query that coincides with a reference point reproduces that
// reference's own label, since it is its own nearest neighbor at distance
// zero.
type nnClassifier struct {
	tree   *kdTree
	labels []Label
}

func fitNN(refs []Point, labels []Label) *nnClassifier {
	return &nnClassifier{tree: newKDTree(refs), labels: labels}
}

func (c *nnClassifier) Predict(queries []Point) []Label {
	out := make([]Label, len(queries))
	for i, q := range queries {
		ref := c.tree.Nearest(q)
		if ref < 0 {
			out[i] = Noise
			continue
		}
		out[i] = c.labels[ref]
	}
	return out
}
