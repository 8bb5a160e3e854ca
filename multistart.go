package scheduler

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/acme/campus-scheduler/config"
)

// maxMultiStartWorkers bounds the multi-start worker pool.
const maxMultiStartWorkers = 4

// RunMulti runs numSolutions independent evolutionary engine instances in
// parallel with distinct seeds derived from baseSeed, and returns them
// sorted by fitness descending. The only thing that crosses the goroutine
// boundary is the read-only *ProblemInstance; each worker owns its own
// random generator and population.
func RunMulti(ctx context.Context, problem *ProblemInstance, numSolutions int, baseSeed int64, cfg config.Config, logger *zap.Logger) ([]RunResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if numSolutions <= 0 {
		return nil, nil
	}

	limit := numSolutions
	if limit > maxMultiStartWorkers {
		limit = maxMultiStartWorkers
	}

	results := make([]RunResult, numSolutions)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	for i := 0; i < numSolutions; i++ {
		i := i
		seed := baseSeed + int64(i)
		g.Go(func() error {
			cancel := func() bool {
				select {
				case <-gctx.Done():
					return true
				default:
					return false
				}
			}
			res := RunOnce(problem, seed, cfg, nil, cancel, logger)
			mu.Lock()
			results[i] = res
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Fitness > results[j].Fitness
	})

	logger.Info("multi-start complete", zap.Int("num_solutions", numSolutions), zap.Int("workers", limit))

	return results, nil
}
