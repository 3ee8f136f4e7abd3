package adbscan

import (
	"math"
	"math/rand/v2"
	"slices"
)

// oneDraw runs a single ensemble repetition: draw a random subsample of
// ⌊n*fraction⌋ points without replacement, cluster the subsample, then
// propagate the subsample's labels to every point through 1-nearest-neighbor
// classification. The returned vector covers all n points in input order.
//
// Subsample points predict their own cluster label back exactly: each is its
// own nearest neighbor at distance zero. With fraction 1.0 the draw therefore
// degenerates to a plain run of the density primitive on the full dataset.
//
// minPts is scaled by the sampled fraction, floored at 1, because a
// subsample proportionally contains fewer neighbors than the full dataset.
func oneDraw(rng *rand.Rand, points []Point, weights []float64, fraction, eps float64, minPts int, clusterer DensityClusterer) []Label {
	n := len(points)
	size := int(float64(n) * fraction)
	if size < 1 {
		size = 1
	}
	ids := rng.Perm(n)[:size]
	// A draw is an unordered set. Sorting keeps the primitive's cluster
	// numbering aligned with input order, so a fraction-1.0 draw reproduces
	// the primitive's direct output exactly.
	slices.Sort(ids)

	sample := make([]Point, size)
	var sampleWeights []float64
	if weights != nil {
		sampleWeights = make([]float64, size)
	}
	for k, id := range ids {
		sample[k] = points[id]
		if weights != nil {
			sampleWeights[k] = weights[id]
		}
	}

	scaled := int(math.Floor(float64(minPts) * fraction))
	if scaled < 1 {
		scaled = 1
	}

	sampleLabels := clusterer.Cluster(sample, eps, scaled, sampleWeights)
	return fitNN(sample, sampleLabels).Predict(points)
}
