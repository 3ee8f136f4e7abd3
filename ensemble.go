package adbscan

// Vote is the consensus outcome for one point: the label most runs agreed on
// and the fraction of runs that voted for it.
type Vote struct {
	Label Label
	Share float64
}

// Ensemble computes the per-point majority vote across aligned runs. For
// each point the most frequent label wins with share count/R; when two
// labels tie on frequency the smaller label value wins, keeping the result
// deterministic (Go's map iteration order is randomized, so relying on it
// would make repeated fits disagree on tied points).
//
// Purely derived; the input is not modified.
func Ensemble(aligned [][]Label) []Vote {
	if len(aligned) == 0 {
		return nil
	}
	n := len(aligned[0])
	reps := float64(len(aligned))

	votes := make([]Vote, n)
	counts := make(map[Label]int)
	for i := 0; i < n; i++ {
		clear(counts)
		for _, run := range aligned {
			counts[run[i]]++
		}

		winner := Noise
		winnerCount := -1
		for l, c := range counts {
			if c > winnerCount || (c == winnerCount && l < winner) {
				winner = l
				winnerCount = c
			}
		}
		votes[i] = Vote{Label: winner, Share: float64(winnerCount) / reps}
	}
	return votes
}
