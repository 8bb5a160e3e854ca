package scheduler

import (
	"context"

	"go.uber.org/zap"

	"github.com/acme/campus-scheduler/config"
)

// Scheduler is the in-process facade over BuildProblem/RunOnce/RunMulti:
// New takes a Problem Instance and a set of options, and Run executes one
// evolutionary search over it.
type Scheduler struct {
	problem *ProblemInstance
	cfg     config.Config
	logger  *zap.Logger
}

// New builds a Scheduler over problem, applying cfgOpts on top of the
// Config already baked into problem (the one BuildProblem used), not
// config.Default() — the grid shape and GA parameters a caller loaded for
// BuildProblem must stay in effect for the runs that follow.
func New(problem *ProblemInstance, logger *zap.Logger, cfgOpts ...config.Option) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := problem.Config
	for _, opt := range cfgOpts {
		opt(&cfg)
	}
	return &Scheduler{
		problem: problem,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run executes a single evolutionary run with the given seed.
func (s *Scheduler) Run(seed int64, progress ProgressFunc, cancel CancelSignal) RunResult {
	return RunOnce(s.problem, seed, s.cfg, progress, cancel, s.logger)
}

// RunMulti executes numSolutions independent runs in parallel.
func (s *Scheduler) RunMulti(ctx context.Context, numSolutions int, baseSeed int64) ([]RunResult, error) {
	return RunMulti(ctx, s.problem, numSolutions, baseSeed, s.cfg, s.logger)
}
