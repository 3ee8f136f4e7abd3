package adbscan

import "testing"

// blobPoints builds two tight blobs plus one far outlier. Blob one occupies
// indices 0-3, blob two 4-7, the outlier is last.
func blobPoints() []Point {
	return []Point{
		{X: 0, Y: 0}, {X: 0.1, Y: 0}, {X: 0, Y: 0.1}, {X: 0.1, Y: 0.1},
		{X: 10, Y: 10}, {X: 10.1, Y: 10}, {X: 10, Y: 10.1}, {X: 10.1, Y: 10.1},
		{X: 50, Y: 50},
	}
}

func TestDBSCANTwoBlobs(t *testing.T) {
	labels := DBSCAN{}.Cluster(blobPoints(), 0.5, 3, nil)

	for i := 1; i < 4; i++ {
		if labels[i] != labels[0] {
			t.Errorf("point %d: got %d, want blob one's label %d", i, labels[i], labels[0])
		}
	}
	for i := 5; i < 8; i++ {
		if labels[i] != labels[4] {
			t.Errorf("point %d: got %d, want blob two's label %d", i, labels[i], labels[4])
		}
	}
	if labels[0] == labels[4] {
		t.Errorf("blobs should carry distinct labels, both got %d", labels[0])
	}
	// Ids are assigned in scan order of the founding core point.
	if labels[0] != 0 || labels[4] != 1 {
		t.Errorf("Expected labels 0 and 1, got %d and %d", labels[0], labels[4])
	}
	if labels[8] != Noise {
		t.Errorf("outlier: got %d, want Noise", labels[8])
	}
}

func TestDBSCANAllNoise(t *testing.T) {
	pts := []Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}
	labels := DBSCAN{}.Cluster(pts, 1, 2, nil)
	for i, l := range labels {
		if l != Noise {
			t.Errorf("point %d: got %d, want Noise", i, l)
		}
	}
}

func TestDBSCANSelfSufficientWeight(t *testing.T) {
	// A lone point whose own weight reaches minPts is core by itself.
	pts := []Point{{X: 0, Y: 0}, {X: 100, Y: 100}}
	weights := []float64{5, 1}

	labels := DBSCAN{}.Cluster(pts, 1, 5, weights)
	if labels[0] != 0 {
		t.Errorf("heavy point: got %d, want cluster 0", labels[0])
	}
	if labels[1] != Noise {
		t.Errorf("light point: got %d, want Noise", labels[1])
	}
}

func TestDBSCANWeightsBelowThreshold(t *testing.T) {
	// Two close points whose combined weight stays under minPts stay noise.
	pts := []Point{{X: 0, Y: 0}, {X: 0.1, Y: 0}}
	weights := []float64{0.5, 0.5}

	labels := DBSCAN{}.Cluster(pts, 1, 2, weights)
	for i, l := range labels {
		if l != Noise {
			t.Errorf("point %d: got %d, want Noise", i, l)
		}
	}
}

func TestDBSCANEmptyInput(t *testing.T) {
	if labels := (DBSCAN{}).Cluster(nil, 1, 2, nil); labels != nil {
		t.Errorf("Expected nil labels for empty input, got %v", labels)
	}
}
