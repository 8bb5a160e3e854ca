package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/campus-scheduler/config"
)

func TestRunMultiReturnsNilForNonPositiveCount(t *testing.T) {
	problem, cfg := trivialProblem(t)
	results, err := RunMulti(context.Background(), problem, 0, 1, cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestRunMultiProducesOneResultPerRequestedSolution(t *testing.T) {
	problem, cfg := trivialProblem(t)
	results, err := RunMulti(context.Background(), problem, 6, 100, cfg, nil)
	require.NoError(t, err)
	require.Len(t, results, 6)
}

func TestRunMultiSortsResultsByFitnessDescending(t *testing.T) {
	problem, cfg := trivialProblem(t)
	results, err := RunMulti(context.Background(), problem, 5, 1, cfg, nil)
	require.NoError(t, err)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Fitness, results[i].Fitness)
	}
}

func TestRunMultiGivesEachRunADistinctRunID(t *testing.T) {
	cfg := config.Apply(config.WithGrid([]string{"Mon", "Tue"}, 3), config.WithPopulationSize(8))
	cohorts := []CohortInput{{ID: "A", StudentCount: 10, Subjects: "Math,Phys"}}
	subjects := []SubjectInput{
		{Name: "Math", Credits: 3, Type: SubjectTheory},
		{Name: "Phys", Credits: 3, Type: SubjectTheory},
	}
	instructors := []InstructorInput{{ID: "T1", Subjects: "Math,Phys", Available: true}}
	rooms := []RoomInput{{ID: "R1", Capacity: 10, Type: RoomLectureHall}}
	problem, err := BuildProblem(cohorts, subjects, instructors, rooms, cfg)
	require.NoError(t, err)

	results, err := RunMulti(context.Background(), problem, 4, 1, cfg, nil)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, r := range results {
		seen[r.RunID] = true
	}
	assert.Len(t, seen, 4, "each run should carry a distinct RunID")
}
