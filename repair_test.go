package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acme/campus-scheduler/scherr"
)

func TestSubstituteInstructorAppliesCleanSwap(t *testing.T) {
	sched := Schedule{
		{CohortID: "A", InstructorID: "T1", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 1}},
		{CohortID: "B", InstructorID: "T2", RoomID: "R2", Slot: TimeSlot{Day: 0, Hour: 2}},
	}
	out, diff, err := SubstituteInstructor(sched, "T1", "T3")
	require.NoError(t, err)
	require.Len(t, diff.Changed, 1)
	assert.Equal(t, InstructorID("T3"), diff.Changed[0].InstructorID)
	assert.Equal(t, InstructorID("T3"), out[0].InstructorID)
	assert.Equal(t, InstructorID("T2"), out[1].InstructorID)
}

func TestSubstituteInstructorRefusesOnConflictAndLeavesScheduleUnchanged(t *testing.T) {
	sched := Schedule{
		{CohortID: "A", InstructorID: "T1", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 1}},
		{CohortID: "B", InstructorID: "T3", RoomID: "R2", Slot: TimeSlot{Day: 0, Hour: 1}}, // same slot as T1
	}
	out, diff, err := SubstituteInstructor(sched, "T1", "T3")
	require.Error(t, err)
	assert.True(t, scherr.Is(err, scherr.KindInfeasibleRepair))

	var serr *scherr.Error
	require.ErrorAs(t, err, &serr)
	require.Len(t, serr.ConflictingSlots, 1)
	assert.Equal(t, 1, serr.ConflictingSlots[0].Hour)

	assert.Equal(t, sched, out, "schedule must be returned unchanged on refusal")
	assert.Empty(t, diff.Changed)
}

func TestSubstituteRoomCancelsWhenCapacityInsufficient(t *testing.T) {
	sched := Schedule{
		{CohortID: "A", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 1}},
		{CohortID: "B", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 2}},
	}
	lookup := func(id CohortID) (int, bool) {
		switch id {
		case "A":
			return 50, true
		case "B":
			return 10, true
		}
		return 0, false
	}

	out, cancelled := SubstituteRoom(sched, "R1", "R2", 20, lookup)
	require.Len(t, cancelled, 1)
	assert.Equal(t, CohortID("A"), cancelled[0].CohortID)
	require.Len(t, out, 1)
	assert.Equal(t, CohortID("B"), out[0].CohortID)
	assert.Equal(t, RoomID("R2"), out[0].RoomID)
}

func TestSubstituteRoomRewritesEveryAssignmentWhenCapacityAllows(t *testing.T) {
	sched := Schedule{
		{CohortID: "A", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 1}},
		{CohortID: "B", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 2}},
	}
	lookup := func(CohortID) (int, bool) { return 15, true }

	out, cancelled := SubstituteRoom(sched, "R1", "R2", 20, lookup)
	assert.Empty(t, cancelled)
	require.Len(t, out, 2)
	for _, a := range out {
		assert.Equal(t, RoomID("R2"), a.RoomID)
	}
}

func TestCancelForInstructorDropsAllOfTheirAssignments(t *testing.T) {
	sched := Schedule{
		{CohortID: "A", InstructorID: "T1", Slot: TimeSlot{Day: 0, Hour: 1}},
		{CohortID: "B", InstructorID: "T2", Slot: TimeSlot{Day: 0, Hour: 2}},
		{CohortID: "C", InstructorID: "T1", Slot: TimeSlot{Day: 0, Hour: 3}},
	}
	out, cancelled := CancelForInstructor(sched, "T1")
	require.Len(t, cancelled, 2)
	require.Len(t, out, 1)
	assert.Equal(t, InstructorID("T2"), out[0].InstructorID)
}

func TestCancelForRoomDropsAllOccupants(t *testing.T) {
	sched := Schedule{
		{CohortID: "A", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 1}},
		{CohortID: "B", RoomID: "R2", Slot: TimeSlot{Day: 0, Hour: 2}},
	}
	out, cancelled := CancelForRoom(sched, "R1")
	require.Len(t, cancelled, 1)
	require.Len(t, out, 1)
	assert.Equal(t, RoomID("R2"), out[0].RoomID)
}

func TestRepairIsIdempotent(t *testing.T) {
	sched := Schedule{
		{CohortID: "A", InstructorID: "T1", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 1}},
		{CohortID: "A", InstructorID: "T2", RoomID: "R2", Slot: TimeSlot{Day: 0, Hour: 1}}, // conflicts with cohort A above
		{CohortID: "B", InstructorID: "T1", RoomID: "R1", Slot: TimeSlot{Day: 0, Hour: 1}}, // conflicts with instructor T1 and room R1
	}
	once := Repair(sched)
	twice := Repair(once)
	assert.Equal(t, once, twice)
}
