package adbscan

import (
	"fmt"
	"log"
	"sort"
)

// AlignLabels rewrites every run's cluster labels into the reference run's
// label space so that the ensemble vote compares like with like. solutions
// holds one label vector per run, each covering all points in input order.
//
// The reference run is the one with the most distinct non-noise labels
// (earliest run on ties). Every other run's cluster centroids are matched to
// their nearest reference centroid and the run's labels substituted with the
// matched reference label; noise and unmatched labels become Noise. The
// reference run itself passes through unchanged. Two run-local clusters may
// match the same reference centroid, in which case they merge under the
// reference label; that is intended behavior, not a conflict.
//
// When no run found any cluster at all, alignment is impossible: a warning
// is logged and the input is returned as-is.
//
// The alignment of each run is independent of the others, so runs are
// distributed across par's workers; output is identical to the sequential
// path regardless of scheduling.
func AlignLabels(solutions [][]Label, points []Point, par Parallelism) ([][]Label, error) {
	if len(solutions) == 0 {
		return nil, fmt.Errorf("no runs to align")
	}
	for r, run := range solutions {
		if len(run) != len(points) {
			return nil, fmt.Errorf("run %d has %d labels for %d points", r, len(run), len(points))
		}
	}

	ref := referenceRun(solutions)
	refIDs, refCenters := centroidTable(solutions[ref], points)
	if len(refIDs) == 0 {
		log.Printf("[ADBSCAN] no clusters identified in any run, returning labels unaligned")
		return solutions, nil
	}
	refTree := newKDTree(refCenters)

	runs := make([]int, len(solutions))
	for r := range runs {
		runs[r] = r
	}
	return parallelMap(par.WorkerCount(), runs, func(r int) ([]Label, error) {
		if r == ref {
			return append([]Label(nil), solutions[r]...), nil
		}
		return remapRun(solutions[r], points, refIDs, refTree), nil
	})
}

// referenceRun picks the run with the strictly largest count of distinct
// non-noise labels; the earliest such run wins ties.
func referenceRun(solutions [][]Label) int {
	best, bestCount := 0, -1
	for r, run := range solutions {
		seen := make(map[Label]struct{})
		for _, l := range run {
			if l != Noise {
				seen[l] = struct{}{}
			}
		}
		if len(seen) > bestCount {
			best, bestCount = r, len(seen)
		}
	}
	return best
}

// remapRun substitutes run's labels with the reference label whose centroid
// is nearest to each of run's own cluster centroids. Labels without a remap
// entry (noise included) resolve to Noise.
func remapRun(run []Label, points []Point, refIDs []Label, refTree *kdTree) []Label {
	ids, centers := centroidTable(run, points)
	remap := make(map[Label]Label, len(ids))
	for k, id := range ids {
		remap[id] = refIDs[refTree.Nearest(centers[k])]
	}

	out := make([]Label, len(run))
	for i, l := range run {
		mapped, ok := remap[l]
		if !ok {
			mapped = Noise
		}
		out[i] = mapped
	}
	return out
}

// centroidTable returns each non-noise label appearing in run together with
// the mean coordinate of the points carrying it, labels in ascending order.
func centroidTable(run []Label, points []Point) ([]Label, []Point) {
	type accum struct {
		sumX, sumY float64
		count      int
	}
	byLabel := make(map[Label]*accum)
	for i, l := range run {
		if l == Noise {
			continue
		}
		a := byLabel[l]
		if a == nil {
			a = &accum{}
			byLabel[l] = a
		}
		a.sumX += points[i].X
		a.sumY += points[i].Y
		a.count++
	}

	ids := make([]Label, 0, len(byLabel))
	for l := range byLabel {
		ids = append(ids, l)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	centers := make([]Point, len(ids))
	for k, l := range ids {
		a := byLabel[l]
		centers[k] = Point{X: a.sumX / float64(a.count), Y: a.sumY / float64(a.count)}
	}
	return ids, centers
}
