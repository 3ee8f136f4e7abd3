// Package adbscan implements A-DBSCAN consensus clustering: many DBSCAN
// passes over random subsamples, each extended to the full dataset by
// nearest-neighbor label propagation, aligned into a common label space by
// nearest-centroid matching, and reduced to final labels by majority vote
// with a confidence threshold. A companion routine turns the final clusters
// into boundary polygons.
package adbscan

import (
	"fmt"
	"math/rand/v2"
)

// ADBSCAN runs the ensemble. Construct with New; the zero value is not
// usable.
type ADBSCAN struct {
	cfg       Config
	clusterer DensityClusterer
	rng       *rand.Rand
}

// Option customizes an ADBSCAN beyond its Config.
type Option func(*ADBSCAN)

// WithClusterer substitutes the density primitive used for each draw. The
// default is the built-in weighted DBSCAN.
func WithClusterer(c DensityClusterer) Option {
	return func(a *ADBSCAN) { a.clusterer = c }
}

// WithRand sets the random stream that drives subsampling. The stream is
// consumed once per draw in a fixed order, so a fixed-seed source makes Fit
// fully reproducible. The default source is seeded randomly.
func WithRand(rng *rand.Rand) Option {
	return func(a *ADBSCAN) { a.rng = rng }
}

// New validates cfg and builds a ready-to-fit ADBSCAN.
func New(cfg Config, opts ...Option) (*ADBSCAN, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a := &ADBSCAN{
		cfg:       cfg,
		clusterer: DBSCAN{},
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Result holds the outcome of one Fit.
type Result struct {
	// Labels is the final label per point, in input order. A point whose
	// winning vote share fell below VoteThreshold carries Noise here even
	// when its winning label was a real cluster.
	Labels []Label

	// Votes is the pre-threshold consensus per point.
	Votes []Vote

	// Solutions and Aligned are the raw and aligned per-run label vectors,
	// populated only when Config.KeepSolutions is set.
	Solutions [][]Label
	Aligned   [][]Label
}

// Fit runs the full ensemble over points: Reps sequential draws, label
// alignment, majority vote, and the confidence threshold. weights is either
// nil or one non-negative weight per point, forwarded to the density
// primitive (restricted to each draw's subsample).
//
// The draws never parallelize — each consumes the shared random stream in a
// fixed order, and reproducibility under a fixed seed depends on that order.
// Config.Parallelism accelerates only the alignment stage.
func (a *ADBSCAN) Fit(points []Point, weights []float64) (*Result, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("invalid config: empty point set")
	}
	if weights != nil && len(weights) != len(points) {
		return nil, fmt.Errorf("got %d weights for %d points", len(weights), len(points))
	}

	solutions := make([][]Label, a.cfg.Reps)
	for r := range solutions {
		solutions[r] = oneDraw(a.rng, points, weights, a.cfg.SampleFraction, a.cfg.Eps, a.cfg.MinSamples, a.clusterer)
	}

	aligned, err := AlignLabels(solutions, points, a.cfg.Parallelism)
	if err != nil {
		return nil, fmt.Errorf("aligning labels: %w", err)
	}

	votes := Ensemble(aligned)
	labels := make([]Label, len(points))
	for i, v := range votes {
		if v.Share < a.cfg.VoteThreshold {
			labels[i] = Noise
		} else {
			labels[i] = v.Label
		}
	}

	res := &Result{Labels: labels, Votes: votes}
	if a.cfg.KeepSolutions {
		res.Solutions = solutions
		res.Aligned = aligned
	}
	return res, nil
}
