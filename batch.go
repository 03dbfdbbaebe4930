package alphapers

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ComputeBatch runs ComputeContext on independent point clouds
// concurrently, at most cfg.Workers at a time. When there are fewer clouds
// than workers, each cloud gets an equal share of the workers for itself.
// results[i] belongs to clouds[i]. The first failure or the end of ctx
// stops the clouds in flight and is returned with its cloud index.
func ComputeBatch(ctx context.Context, clouds [][]Atom, cfg Config) ([]*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	results := make([]*Result, len(clouds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	inner := cfg
	inner.Workers = shareWorkers(cfg.Workers, len(clouds))
	for i, atoms := range clouds {
		i, atoms := i, atoms
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := inner
			c.Logger = inner.Logger.With(zap.Int("cloud", i))
			r, err := ComputeContext(ctx, atoms, c)
			if err != nil {
				return fmt.Errorf("alphapers: cloud %d: %w", i, err)
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

// shareWorkers returns the workers each cloud may use when clouds run at
// once on a pool of workers.
func shareWorkers(workers, clouds int) int {
	if clouds < 1 {
		return workers
	}
	return max(1, workers/clouds)
}
