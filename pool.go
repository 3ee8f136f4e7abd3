package adbscan

import "golang.org/x/sync/errgroup"

// parallelMap applies fn to every item and returns the results in input
// order, regardless of worker scheduling. With workers <= 1 it runs inline
// on the calling goroutine. The first error aborts the whole stage; no
// partial results are returned.
func parallelMap[T, R any](workers int, items []T, fn func(T) (R, error)) ([]R, error) {
	results := make([]R, len(items))

	if workers <= 1 {
		for i, item := range items {
			r, err := fn(item)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			r, err := fn(item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
