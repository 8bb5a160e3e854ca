package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/campus-scheduler/config"
	"github.com/acme/campus-scheduler/scherr"
)

func trivialProblem(t *testing.T) (*ProblemInstance, config.Config) {
	cfg := config.Apply(config.WithGrid([]string{"Mon"}, 1), config.WithPopulationSize(4))
	cohorts := []CohortInput{{ID: "A", StudentCount: 10, Subjects: "Math"}}
	subjects := []SubjectInput{{Name: "Math", Credits: 2, Type: SubjectTheory}}
	instructors := []InstructorInput{{ID: "T1", Subjects: "Math", Available: true}}
	rooms := []RoomInput{{ID: "R1", Capacity: 10, Type: RoomLectureHall}}
	p, err := BuildProblem(cohorts, subjects, instructors, rooms, cfg)
	require.NoError(t, err)
	return p, cfg
}

func TestRunOnceIsDeterministicForAFixedSeed(t *testing.T) {
	problem, cfg := trivialProblem(t)
	r1 := RunOnce(problem, 123, cfg, nil, nil, nil)
	r2 := RunOnce(problem, 123, cfg, nil, nil, nil)

	assert.Equal(t, r1.Schedule, r2.Schedule)
	assert.Equal(t, r1.Fitness, r2.Fitness)
	assert.Equal(t, r1.FitnessHistory, r2.FitnessHistory)
}

func TestRunOnceStopsEarlyOnAPerfectTrivialInstance(t *testing.T) {
	problem, cfg := trivialProblem(t)
	// One session, one slot, no possible conflict: fitness should hit 1.0
	// on generation 0 already, at or above the early-stop threshold.
	result := RunOnce(problem, 1, cfg, nil, nil, nil)
	assert.True(t, result.StoppedEarly)
	assert.GreaterOrEqual(t, result.Fitness, cfg.EarlyStopFitness)
	assert.Equal(t, uint(1), result.GenerationsExecuted)
}

func TestRunOnceCancelledBeforeFirstGenerationReturnsCancelledError(t *testing.T) {
	problem, cfg := trivialProblem(t)
	alwaysCancel := func() bool { return true }

	result := RunOnce(problem, 1, cfg, nil, alwaysCancel, nil)
	require.Error(t, result.Err)
	assert.True(t, scherr.Is(result.Err, scherr.KindCancelled))
	assert.Empty(t, result.Schedule)
	assert.Equal(t, uint(0), result.GenerationsExecuted)
}

func TestRunOnceProgressesWithPopulationSizeOne(t *testing.T) {
	problem, cfg := trivialProblem(t)
	cfg.PopulationSize = 1
	cfg.EarlyStopFitness = 2.0 // unreachable, force the generation loop to run fully
	cfg.MaxGenerations = 3

	result := RunOnce(problem, 7, cfg, nil, nil, nil)
	assert.False(t, result.StoppedEarly)
	assert.Equal(t, uint(3), result.GenerationsExecuted)
	assert.NotEmpty(t, result.Schedule)
}

func TestRunOnceReportsProgressPerGeneration(t *testing.T) {
	problem, cfg := trivialProblem(t)
	cfg.EarlyStopFitness = 2.0
	cfg.MaxGenerations = 5

	var events []ProgressEvent
	RunOnce(problem, 2, cfg, func(e ProgressEvent) { events = append(events, e) }, nil, nil)

	require.Len(t, events, 5)
	assert.Equal(t, uint(0), events[0].Generation)
	assert.Equal(t, uint(4), events[4].Generation)
}

func TestRunOnceOnEmptyProblemReturnsZeroResult(t *testing.T) {
	cfg := config.Default()
	p, err := BuildProblem(nil, nil, nil, nil, cfg)
	require.NoError(t, err)

	result := RunOnce(p, 1, cfg, nil, nil, nil)
	assert.NoError(t, result.Err)
	assert.Empty(t, result.Schedule)
	assert.Equal(t, float64(0), result.Fitness)
}
