package adbscan

// DensityClusterer partitions a point set into density-connected clusters.
// Implementations return one label per input point, using non-negative ids
// for clusters and Noise for unassigned points. The weights slice is either
// nil (every point counts as 1) or the same length as points.
type DensityClusterer interface {
	Cluster(points []Point, eps float64, minPts int, weights []float64) []Label
}

// DBSCAN is the default DensityClusterer. A point is a core point when the
// summed weight of its eps-neighborhood, itself included, reaches minPts;
// with nil weights this is the classic minimum-neighbor-count rule. A single
// point whose own weight reaches minPts is therefore core by itself.
//
// Cluster ids are assigned in increasing point-index order of each cluster's
// founding core point, starting at 0, so output is deterministic for a given
// input.
type DBSCAN struct{}

func (DBSCAN) Cluster(points []Point, eps float64, minPts int, weights []float64) []Label {
	n := len(points)
	if n == 0 {
		return nil
	}

	// -2 marks not-yet-visited points; it never escapes this function.
	const unclassified Label = -2

	tree := newKDTree(points)
	labels := make([]Label, n)
	for i := range labels {
		labels[i] = unclassified
	}

	next := Label(0)
	for i := 0; i < n; i++ {
		if labels[i] != unclassified {
			continue
		}

		neighbors := tree.Within(points[i], eps)
		if neighborWeight(neighbors, weights) < float64(minPts) {
			labels[i] = Noise
			continue
		}

		// New cluster seeded from core point i.
		labels[i] = next
		seed := append([]int(nil), neighbors...)
		for len(seed) > 0 {
			q := seed[0]
			seed = seed[1:]

			if labels[q] == Noise {
				// Border point reachable from this cluster.
				labels[q] = next
			}
			if labels[q] != unclassified {
				continue
			}
			labels[q] = next

			qNeighbors := tree.Within(points[q], eps)
			if neighborWeight(qNeighbors, weights) >= float64(minPts) {
				seed = append(seed, qNeighbors...)
			}
		}
		next++
	}

	return labels
}

func neighborWeight(neighbors []int, weights []float64) float64 {
	if weights == nil {
		return float64(len(neighbors))
	}
	var sum float64
	for _, i := range neighbors {
		sum += weights[i]
	}
	return sum
}
