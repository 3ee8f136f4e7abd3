package adbscan

import (
	"reflect"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

func TestClusterBoundariesTotality(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1},
		{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 10, Y: 11},
		{X: 50, Y: 50},
	}
	labels := []Label{0, 0, 0, 0, 3, 3, 3, Noise}

	set, err := ClusterBoundaries(labels, pts, BoundaryOptions{})
	if err != nil {
		t.Fatalf("ClusterBoundaries failed: %v", err)
	}
	if len(set.Polygons) != 2 {
		t.Fatalf("Expected 2 boundaries, got %d", len(set.Polygons))
	}
	for _, l := range []Label{0, 3} {
		if _, ok := set.Polygons[l]; !ok {
			t.Errorf("Missing boundary for cluster %d", l)
		}
	}
	if _, ok := set.Polygons[Noise]; ok {
		t.Error("Noise must never get a boundary")
	}
}

func TestHullBoundarySquare(t *testing.T) {
	// Unit square corners plus an interior point: the hull is the square,
	// the interior point must not appear on the ring.
	pts := []orb.Point{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}}

	geom, err := HullBoundary{}.Boundary(pts, 1)
	if err != nil {
		t.Fatalf("Boundary failed: %v", err)
	}
	poly, ok := geom.(orb.Polygon)
	if !ok {
		t.Fatalf("Expected orb.Polygon, got %T", geom)
	}
	ring := poly[0]
	if !ring.Closed() {
		t.Error("hull ring must be closed")
	}
	if ring.Orientation() != orb.CCW {
		t.Error("hull ring must be counterclockwise")
	}
	if len(ring) != 5 {
		t.Errorf("Expected 4 corners + closing point, got %d positions", len(ring))
	}
	if area := planar.Area(poly); area != 1 {
		t.Errorf("Expected unit area, got %g", area)
	}
	for _, p := range ring {
		if p == (orb.Point{0.5, 0.5}) {
			t.Error("interior point leaked onto the hull")
		}
	}
}

func TestHullBoundaryDegenerateFallsBackToMultiPoint(t *testing.T) {
	cases := [][]orb.Point{
		{{1, 1}},
		{{0, 0}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, // collinear
	}
	for _, pts := range cases {
		geom, err := HullBoundary{}.Boundary(pts, 1)
		if err != nil {
			t.Fatalf("Boundary failed: %v", err)
		}
		if _, ok := geom.(orb.MultiPoint); !ok {
			t.Errorf("points %v: expected orb.MultiPoint, got %T", pts, geom)
		}
	}
}

func TestHullBoundaryStepKeepsExtremes(t *testing.T) {
	// Coarsening with a large step must still span the full x-extent.
	var pts []orb.Point
	for i := 0; i <= 20; i++ {
		pts = append(pts, orb.Point{float64(i), 0}, orb.Point{float64(i), 5})
	}

	geom, err := HullBoundary{}.Boundary(pts, 7)
	if err != nil {
		t.Fatalf("Boundary failed: %v", err)
	}
	poly, ok := geom.(orb.Polygon)
	if !ok {
		t.Fatalf("Expected orb.Polygon, got %T", geom)
	}
	bound := poly.Bound()
	if bound.Min[0] != 0 || bound.Max[0] != 20 {
		t.Errorf("Expected x-extent [0,20], got [%g,%g]", bound.Min[0], bound.Max[0])
	}
}

func TestPointSetBoundary(t *testing.T) {
	pts := []orb.Point{{0, 0}, {1, 0}, {0, 1}}
	geom, err := PointSetBoundary{}.Boundary(pts, 3)
	if err != nil {
		t.Fatalf("Boundary failed: %v", err)
	}
	mp, ok := geom.(orb.MultiPoint)
	if !ok {
		t.Fatalf("Expected orb.MultiPoint, got %T", geom)
	}
	if len(mp) != len(pts) {
		t.Errorf("Expected %d points, got %d", len(pts), len(mp))
	}
}

func TestClusterBoundariesCRSPassthrough(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	labels := []Label{0, 0, 0}

	set, err := ClusterBoundaries(labels, pts, BoundaryOptions{CRS: "EPSG:3857"})
	if err != nil {
		t.Fatalf("ClusterBoundaries failed: %v", err)
	}
	if set.CRS != "EPSG:3857" {
		t.Errorf("Expected CRS passed through unmodified, got %q", set.CRS)
	}
}

func TestClusterBoundariesParallelMatchesSequential(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
		{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 10, Y: 11},
		{X: 20, Y: 20}, {X: 21, Y: 20}, {X: 20, Y: 21},
	}
	labels := []Label{0, 0, 0, 1, 1, 1, 2, 2, 2}

	seq, err := ClusterBoundaries(labels, pts, BoundaryOptions{Parallelism: Sequential()})
	if err != nil {
		t.Fatalf("sequential extraction failed: %v", err)
	}
	par, err := ClusterBoundaries(labels, pts, BoundaryOptions{Parallelism: Workers(3)})
	if err != nil {
		t.Fatalf("parallel extraction failed: %v", err)
	}
	if !reflect.DeepEqual(seq.Polygons, par.Polygons) {
		t.Error("parallel extraction diverged from sequential")
	}
}

func TestClusterBoundariesCustomBuilder(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	labels := []Label{0, 0, 0}

	set, err := ClusterBoundaries(labels, pts, BoundaryOptions{Builder: PointSetBoundary{}})
	if err != nil {
		t.Fatalf("ClusterBoundaries failed: %v", err)
	}
	if _, ok := set.Polygons[0].(orb.MultiPoint); !ok {
		t.Errorf("Expected the injected builder's MultiPoint, got %T", set.Polygons[0])
	}
}

func TestClusterBoundariesLengthMismatch(t *testing.T) {
	if _, err := ClusterBoundaries([]Label{0}, []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, BoundaryOptions{}); err == nil {
		t.Error("Expected error for label/point length mismatch")
	}
}
