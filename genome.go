package scheduler

import (
	"math/rand"

	"github.com/MaxHalford/eaopt"

	"github.com/acme/campus-scheduler/config"
)

// mutationStrategy enumerates the mutation strategies available to
// Mutate. mutRoom is a deliberate no-op: it is kept as a named strategy so
// the selection probabilities stay evenly split across three branches,
// rather than rewriting a room assignment.
type mutationStrategy int

const (
	mutTimeslot mutationStrategy = iota
	mutSwap
	mutRoom
)

// chromosome implements eaopt.Genome over a Schedule: Clone, Crossover,
// Mutate, and Evaluate all operate on the Assignment slice it carries.
type chromosome struct {
	problem *ProblemInstance
	cfg     config.Config
	sched   Schedule
}

// newChromosome wraps a freshly constructed Schedule.
func newChromosome(problem *ProblemInstance, cfg config.Config, sched Schedule) *chromosome {
	return &chromosome{problem: problem, cfg: cfg, sched: sched}
}

// Clone makes a copy of the chromosome. Required by eaopt.Genome.
func (c *chromosome) Clone() eaopt.Genome {
	return &chromosome{problem: c.problem, cfg: c.cfg, sched: c.sched.Clone()}
}

// Evaluate returns eaopt's minimize-convention score: 1 - Fitness(sched),
// so that the genome with the highest fitness has the lowest eaopt score.
func (c *chromosome) Evaluate() (float64, error) {
	return 1 - Fitness(c.sched, c.cfg), nil
}

// Mutate applies one of three mutation strategies, then repairs the
// result. Required by eaopt.Genome.
func (c *chromosome) Mutate(rng *rand.Rand) {
	if len(c.sched) == 0 {
		return
	}
	switch mutationStrategy(rng.Intn(3)) {
	case mutTimeslot:
		idx := rng.Intn(len(c.sched))
		c.sched[idx].Slot = randomSlot(c.problem.Slots, rng)
	case mutSwap:
		if len(c.sched) > 1 {
			i, j := distinctIndices(len(c.sched), rng)
			c.sched[i].Slot, c.sched[j].Slot = c.sched[j].Slot, c.sched[i].Slot
		}
	case mutRoom:
		// No-op: room reassignment is left to timeslot mutation and repair.
	}
	c.sched = Repair(c.sched)
}

// Crossover performs two-point crossover with repair in place on c, taking
// genes from other. Required by eaopt.Genome.
func (c *chromosome) Crossover(other eaopt.Genome, rng *rand.Rand) {
	o := other.(*chromosome)
	c.sched = Repair(twoPointCrossover(c.sched, o.sched, rng))
}

func randomSlot(grid []TimeSlot, rng *rand.Rand) TimeSlot {
	return grid[rng.Intn(len(grid))]
}

func distinctIndices(n int, rng *rand.Rand) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n)
	for j == i && n > 1 {
		j = rng.Intn(n)
	}
	return i, j
}

// individualFitness extracts fitness (higher is better) back out of an
// eaopt.Individual built from a *chromosome.
func individualFitness(ind eaopt.Individual) float64 {
	return 1 - ind.Fitness
}

// scheduleOf extracts the Schedule carried by an eaopt.Individual built
// from a *chromosome.
func scheduleOf(ind eaopt.Individual) Schedule {
	return ind.Genome.(*chromosome).sched
}
