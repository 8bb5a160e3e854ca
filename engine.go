package scheduler

import (
	"math/rand"
	"sort"
	"time"

	"github.com/MaxHalford/eaopt"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/acme/campus-scheduler/config"
	"github.com/acme/campus-scheduler/scherr"
)

// ProgressEvent is reported to an optional progress sink after each
// generation. Generation is 0-based (the first generation reports 0).
type ProgressEvent struct {
	Generation  uint
	BestFitness float64
}

// ProgressFunc receives a ProgressEvent between generations.
type ProgressFunc func(ProgressEvent)

// CancelSignal is polled at the top of every generation. A nil CancelSignal
// means the run cannot be cancelled.
type CancelSignal func() bool

// RunResult is the caller-visible outcome of one evolutionary run. Err is
// non-nil only when the run was cancelled before generation 0 completed
// (scherr.Cancelled) or was aborted because a repaired schedule failed the
// feasibility post-condition (scherr.KindInternalInvariantViolated); a
// RunResult with a non-nil Err carries a zero Schedule.
type RunResult struct {
	RunID               string
	Schedule            Schedule
	Fitness             float64
	FitnessHistory      []float64
	GenerationsExecuted uint
	StoppedEarly        bool
	WallTimeSeconds     float64
	Err                 error
}

// population is a thin alias over eaopt.Individuals, reusing eaopt's
// exported genome/fitness pairing type for population bookkeeping instead
// of re-declaring one. See DESIGN.md for why the generational control loop
// itself is hand-rolled rather than delegated to eaopt.GA.
type population eaopt.Individuals

// RunOnce executes one evolutionary run over problem with the given seed
// and cfg. progress and cancel may be nil. It is deterministic under a
// fixed seed: every stochastic decision is drawn, in a fixed order, from
// the single *rand.Rand this function owns.
func RunOnce(problem *ProblemInstance, seed int64, cfg config.Config, progress ProgressFunc, cancel CancelSignal, logger *zap.Logger) RunResult {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	runID := uuid.NewString()
	rng := rand.New(rand.NewSource(seed))

	result := RunResult{RunID: runID}

	if cancel != nil && cancel() {
		result.Err = scherr.Cancelled
		result.WallTimeSeconds = time.Since(start).Seconds()
		logger.Info("run cancelled before first generation", zap.String("run_id", runID))
		return result
	}

	pop := initialPopulation(problem, cfg, rng)
	if len(pop) == 0 {
		result.WallTimeSeconds = time.Since(start).Seconds()
		logger.Warn("empty initial population", zap.String("run_id", runID))
		return result
	}

	mutationRate := cfg.MutationRate
	var best *chromosome
	bestFitness := -1.0
	generationsWithoutImprovement := 0

	elitismCount := int(float64(cfg.PopulationSize) * cfg.ElitismRate)
	tournamentSize := cfg.TournamentSize
	if tournamentSize > len(pop) {
		tournamentSize = len(pop)
	}

	var generation uint
	for ; generation < uint(cfg.MaxGenerations); generation++ {
		if cancel != nil && cancel() {
			if best == nil {
				result.Err = scherr.Cancelled
				result.WallTimeSeconds = time.Since(start).Seconds()
				logger.Info("run cancelled before first generation", zap.String("run_id", runID))
				return result
			}
			break
		}

		sort.Slice(pop, func(i, j int) bool { return pop[i].Fitness < pop[j].Fitness }) // eaopt minimize convention
		currentBest := individualFitness(pop[0])
		result.FitnessHistory = append(result.FitnessHistory, currentBest)

		if currentBest > bestFitness {
			bestFitness = currentBest
			best = pop[0].Genome.(*chromosome).Clone().(*chromosome)
			generationsWithoutImprovement = 0
		} else {
			generationsWithoutImprovement++
		}

		if progress != nil {
			progress(ProgressEvent{Generation: generation, BestFitness: currentBest})
		}

		if currentBest >= cfg.EarlyStopFitness {
			result.StoppedEarly = true
			generation++
			logger.Debug("early stop", zap.String("run_id", runID), zap.Uint("generation", generation), zap.Float64("fitness", currentBest))
			break
		}

		if generationsWithoutImprovement > cfg.StagnationWindow {
			mutationRate = mutationRate * 1.1
			if mutationRate > cfg.MutationRateCap {
				mutationRate = cfg.MutationRateCap
			}
		}

		next := make(population, 0, len(pop))
		for i := 0; i < elitismCount && i < len(pop); i++ {
			next = append(next, pop[i])
		}

		for len(next) < cfg.PopulationSize {
			p1 := tournamentSelect(pop, tournamentSize, rng)
			p2 := tournamentSelect(pop, tournamentSize, rng)

			child := p1.Genome.(*chromosome).Clone().(*chromosome)
			child.Crossover(p2.Genome.(*chromosome), rng)

			if rng.Float64() < mutationRate {
				child.Mutate(rng)
			}

			if err := checkInvariant(child.sched); err != nil {
				logger.Error("repair post-condition failed", zap.String("run_id", runID), zap.Error(err))
				result.Err = err
				result.GenerationsExecuted = generation
				result.WallTimeSeconds = time.Since(start).Seconds()
				return result
			}

			f, _ := child.Evaluate()
			next = append(next, eaopt.Individual{Genome: child, Fitness: f})
		}

		pop = next
	}

	if best == nil && len(pop) > 0 {
		sort.Slice(pop, func(i, j int) bool { return pop[i].Fitness < pop[j].Fitness })
		best = pop[0].Genome.(*chromosome).Clone().(*chromosome)
	}

	if best != nil {
		result.Schedule = best.sched
		result.Fitness = Fitness(best.sched, cfg)
	}
	result.GenerationsExecuted = generation
	result.WallTimeSeconds = time.Since(start).Seconds()

	logger.Info("run complete",
		zap.String("run_id", runID),
		zap.Uint("generations", result.GenerationsExecuted),
		zap.Float64("fitness", result.Fitness),
		zap.Bool("stopped_early", result.StoppedEarly),
	)

	return result
}

// initialPopulation builds cfg.PopulationSize chromosomes via the
// Chromosome Constructor, each from an independent draw on rng.
func initialPopulation(problem *ProblemInstance, cfg config.Config, rng *rand.Rand) population {
	if len(problem.Sessions) == 0 {
		return nil
	}
	pop := make(population, 0, cfg.PopulationSize)
	for i := 0; i < cfg.PopulationSize; i++ {
		sched := ConstructChromosome(problem, rng)
		c := newChromosome(problem, cfg, sched)
		f, _ := c.Evaluate()
		pop = append(pop, eaopt.Individual{Genome: c, Fitness: f})
	}
	return pop
}

// tournamentSelect samples size distinct individuals uniformly from pop and
// returns the fittest, breaking ties on first-seen order.
func tournamentSelect(pop population, size int, rng *rand.Rand) eaopt.Individual {
	if size <= 0 || size > len(pop) {
		size = len(pop)
	}
	idx := rng.Perm(len(pop))[:size]

	best := pop[idx[0]]
	for _, i := range idx[1:] {
		if pop[i].Fitness < best.Fitness { // lower eaopt score == higher fitness
			best = pop[i]
		}
	}
	return best
}

// checkInvariant returns a KindInternalInvariantViolated error when a
// repaired schedule fails the feasibility post-condition; RunOnce logs it
// and aborts the run with it in RunResult.Err.
func checkInvariant(sched Schedule) error {
	if !sched.Feasible() {
		return scherr.New(scherr.KindInternalInvariantViolated, "repaired schedule is not feasible")
	}
	return nil
}
