package adbscan

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// BoundaryBuilder turns one cluster's points into a footprint geometry. The
// step parameter is a traversal stride: builders may skip ahead step points
// at a time while walking candidates, trading boundary fidelity for speed.
type BoundaryBuilder interface {
	Boundary(points []orb.Point, step int) (orb.Geometry, error)
}

// HullBoundary is the geometry-backed BoundaryBuilder: it returns the convex
// hull of the cluster as a counterclockwise orb.Polygon. Degenerate clusters
// (fewer than three distinct points, or all collinear) fall back to an
// orb.MultiPoint since no polygon exists for them.
type HullBoundary struct{}

func (HullBoundary) Boundary(points []orb.Point, step int) (orb.Geometry, error) {
	if step < 1 {
		step = 1
	}

	cand := append([]orb.Point(nil), points...)
	sort.Slice(cand, func(a, b int) bool {
		if cand[a][0] != cand[b][0] {
			return cand[a][0] < cand[b][0]
		}
		return cand[a][1] < cand[b][1]
	})
	cand = dedupePoints(cand)
	if step > 1 {
		cand = stridePoints(cand, step)
	}
	if len(cand) < 3 {
		return orb.MultiPoint(cand), nil
	}

	hull := monotoneChain(cand)
	if len(hull) < 3 {
		return orb.MultiPoint(cand), nil
	}

	ring := orb.Ring(append(hull, hull[0]))
	if ring.Orientation() != orb.CCW {
		ring.Reverse()
	}
	poly := orb.Polygon{ring}
	if planar.Area(poly) == 0 {
		return orb.MultiPoint(cand), nil
	}
	return poly, nil
}

// PointSetBoundary is the plain fallback BoundaryBuilder: it returns the
// cluster's points as an orb.MultiPoint without constructing any polygon.
// Useful when a downstream consumer does its own footprint construction.
type PointSetBoundary struct{}

func (PointSetBoundary) Boundary(points []orb.Point, _ int) (orb.Geometry, error) {
	return orb.MultiPoint(append([]orb.Point(nil), points...)), nil
}

// BoundaryOptions configures ClusterBoundaries.
type BoundaryOptions struct {
	// Step is forwarded to the builder; values below 1 become 1.
	Step int

	// CRS is an optional coordinate-reference annotation carried through to
	// the BoundarySet unmodified. This package never interprets it.
	CRS string

	// Parallelism bounds the per-cluster workers. Results are keyed by
	// label, so output is identical regardless of scheduling order.
	Parallelism Parallelism

	// Builder constructs each cluster's geometry; default HullBoundary.
	Builder BoundaryBuilder
}

// BoundarySet maps every non-noise label to its cluster's footprint.
type BoundarySet struct {
	Polygons map[Label]orb.Geometry
	CRS      string
}

// ClusterBoundaries groups points by their final label, skipping Noise, and
// builds one footprint geometry per cluster. The result's key set is exactly
// the set of non-noise labels present in labels.
func ClusterBoundaries(labels []Label, points []Point, opts BoundaryOptions) (*BoundarySet, error) {
	if len(labels) != len(points) {
		return nil, fmt.Errorf("got %d labels for %d points", len(labels), len(points))
	}
	builder := opts.Builder
	if builder == nil {
		builder = HullBoundary{}
	}
	step := opts.Step
	if step < 1 {
		step = 1
	}

	groups := make(map[Label][]orb.Point)
	for i, l := range labels {
		if l == Noise {
			continue
		}
		groups[l] = append(groups[l], orb.Point{points[i].X, points[i].Y})
	}
	ids := make([]Label, 0, len(groups))
	for l := range groups {
		ids = append(ids, l)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	geoms, err := parallelMap(opts.Parallelism.WorkerCount(), ids, func(l Label) (orb.Geometry, error) {
		g, err := builder.Boundary(groups[l], step)
		if err != nil {
			return nil, fmt.Errorf("building boundary for cluster %d: %w", l, err)
		}
		return g, nil
	})
	if err != nil {
		return nil, err
	}

	polys := make(map[Label]orb.Geometry, len(ids))
	for k, l := range ids {
		polys[l] = geoms[k]
	}
	return &BoundarySet{Polygons: polys, CRS: opts.CRS}, nil
}

// monotoneChain computes the convex hull of sorted, deduplicated points.
// The returned hull is counterclockwise and open (first point not repeated).
func monotoneChain(sorted []orb.Point) []orb.Point {
	var lower, upper []orb.Point
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	// Each chain's last point is the other chain's first.
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func dedupePoints(sorted []orb.Point) []orb.Point {
	out := sorted[:0]
	for i, p := range sorted {
		if i == 0 || p != sorted[i-1] {
			out = append(out, p)
		}
	}
	return out
}

// stridePoints keeps every step-th point plus both extremes, so coarsening
// never discards the hull's endpoints on the sort axis.
func stridePoints(sorted []orb.Point, step int) []orb.Point {
	out := make([]orb.Point, 0, len(sorted)/step+2)
	for i := 0; i < len(sorted); i += step {
		out = append(out, sorted[i])
	}
	if last := sorted[len(sorted)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}
