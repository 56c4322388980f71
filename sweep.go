package kmst

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/kmst/core"
)

// Sweep solves the same node set for every k in ks, concurrently up to
// Options.Concurrency, and returns the solutions in ks order. Each k gets its
// own distance matrix, pruning, model and solver call, so a custom Solver
// must be safe for concurrent use. The first failure cancels the remaining
// solves and is returned.
func Sweep(ctx context.Context, root core.Point, candidates []core.Point, ks []int, opts ...Option) ([]*Solution, error) {
	if len(ks) == 0 {
		return nil, fmt.Errorf("%w: empty k list", ErrInput)
	}
	o := gatherOptions(opts)
	out := make([]*Solution, len(ks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Concurrency)
	for i, k := range ks {
		g.Go(func() error {
			sol, err := solve(gctx, root, candidates, k, o)
			if err != nil {
				return fmt.Errorf("sweep k=%d: %w", k, err)
			}
			out[i] = sol

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// KRange returns from, from+step, ... up to and including to.
func KRange(from, to, step int) []int {
	if step < 1 {
		step = 1
	}
	var ks []int
	for k := from; k <= to; k += step {
		ks = append(ks, k)
	}

	return ks
}
