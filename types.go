package adbscan

import "runtime"

// Label identifies the cluster a point belongs to. Cluster ids are
// non-negative and only meaningful within a single run until AlignLabels has
// rewritten them into the reference run's id space.
type Label int

// Noise is the reserved label for points that belong to no cluster.
const Noise Label = -1

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Centroid returns the mean coordinate of points, or the zero Point when the
// slice is empty.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return Point{X: sumX / n, Y: sumY / n}
}

// Parallelism selects how many workers the label-alignment and
// boundary-extraction stages may use. The ensemble draws themselves never
// parallelize: each draw advances the shared random stream in a fixed order,
// so running them concurrently would break reproducibility under a fixed
// seed. Only alignment and boundary extraction fan out.
//
// The zero value behaves like Sequential().
type Parallelism struct {
	workers int
}

// Sequential runs every stage on the calling goroutine.
func Sequential() Parallelism {
	return Parallelism{workers: 1}
}

// Workers runs parallelizable stages with a fixed worker count. Counts below
// one degrade to sequential execution.
func Workers(n int) Parallelism {
	if n < 1 {
		n = 1
	}
	return Parallelism{workers: n}
}

// AllCores runs parallelizable stages with one worker per logical CPU,
// resolved once at the time of the call.
func AllCores() Parallelism {
	return Parallelism{workers: runtime.NumCPU()}
}

// WorkerCount reports the resolved worker count, always at least one.
func (p Parallelism) WorkerCount() int {
	if p.workers < 1 {
		return 1
	}
	return p.workers
}
