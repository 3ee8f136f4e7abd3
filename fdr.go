package adbscan

import "sort"

// FDR returns the p-value cut-off that controls the false discovery rate at
// level alpha across n simultaneous tests. Walking the p-values from largest
// to smallest, the first one below its rank's criterion (rank*alpha/n) sets
// the cut-off; when none qualifies the conservative Bonferroni bound alpha/n
// is returned instead.
func FDR(pvalues []float64, alpha float64) float64 {
	n := len(pvalues)
	if n == 0 {
		return alpha
	}

	sorted := append([]float64(nil), pvalues...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	for i, p := range sorted {
		criterion := float64(n-i) * alpha / float64(n)
		if p < criterion {
			return criterion
		}
	}
	return alpha / float64(n)
}
