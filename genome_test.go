package scheduler

import (
	"math/rand"
	"testing"

	"github.com/k0kubun/pp"

	"github.com/acme/campus-scheduler/config"
)

func TestChromosomeImplementsEaoptGenome(t *testing.T) {
	problem, cfg := tinyProblem()
	rng := rand.New(rand.NewSource(1))
	sched := ConstructChromosome(problem, rng)
	c := newChromosome(problem, cfg, sched)

	clone := c.Clone().(*chromosome)
	if len(clone.sched) != len(c.sched) {
		t.Error("expected clone to carry the same schedule length. Clone:", pp.Sprint(clone.sched))
	}

	f, err := c.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if f < 0 || f > 1 {
		t.Error("expected Evaluate to return a value in [0, 1], got:", f)
	}
}

func TestMutationAlwaysLeavesAFeasibleSchedule(t *testing.T) {
	problem, cfg := tinyProblem()
	rng := rand.New(rand.NewSource(7))
	sched := ConstructChromosome(problem, rng)
	c := newChromosome(problem, cfg, sched)

	for i := 0; i < 50; i++ {
		c.Mutate(rng)
		if !c.sched.Feasible() {
			t.Fatal("schedule infeasible after mutation round", i, pp.Sprint(c.sched))
		}
	}
}

func TestCrossoverAlwaysLeavesAFeasibleSchedule(t *testing.T) {
	problem, cfg := tinyProblem()
	rng := rand.New(rand.NewSource(3))
	a := newChromosome(problem, cfg, ConstructChromosome(problem, rng))
	b := newChromosome(problem, cfg, ConstructChromosome(problem, rng))

	a.Crossover(b, rng)
	if !a.sched.Feasible() {
		t.Error("schedule infeasible after crossover:", pp.Sprint(a.sched))
	}
}

func TestRoomMutationIsANoOp(t *testing.T) {
	problem, cfg := tinyProblem()
	rng := rand.New(rand.NewSource(11))
	sched := ConstructChromosome(problem, rng)
	c := newChromosome(problem, cfg, sched)
	before := c.sched.Clone()

	// Applying Repair directly exercises what the "room" mutation branch
	// does: nothing, beyond the repair pass that always follows a mutation.
	c.sched = Repair(c.sched)

	if len(c.sched) != len(before) {
		t.Error("expected room mutation branch to leave schedule length unchanged")
	}
}

// tinyProblem builds a minimal ProblemInstance used across genome-level
// tests: one cohort, one lab subject, one instructor, one lab room.
func tinyProblem() (*ProblemInstance, config.Config) {
	cfg := config.Apply(config.WithGrid([]string{"Mon", "Tue"}, 4))
	cohorts := []CohortInput{
		{ID: "CS-UG-1", StudentCount: 30, Subjects: "Lab101"},
	}
	subjects := []SubjectInput{
		{Name: "Lab101", Credits: 2, Type: SubjectLab},
	}
	instructors := []InstructorInput{
		{ID: "T1", FullName: "Instructor One", Subjects: "Lab101", Available: true},
	}
	rooms := []RoomInput{
		{ID: "R1", Name: "Lab Room", Capacity: 40, Type: RoomLaboratory},
	}
	problem, err := BuildProblem(cohorts, subjects, instructors, rooms, cfg)
	if err != nil {
		panic(err)
	}
	return problem, cfg
}
