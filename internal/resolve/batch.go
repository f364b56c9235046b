package resolve

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// All resolves each path independently, running up to jobs resolutions at
// once. Results are returned in input order. A failing input only sets Err
// on its own Result.
func All(ctx context.Context, r *Resolver, paths []string, jobs int) []Result {
	results := make([]Result, len(paths))
	if jobs < 1 {
		jobs = 1
	}

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, p := range paths {
		g.Go(func() error {
			results[i], _ = r.Trace(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
