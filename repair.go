package scheduler

import "github.com/acme/campus-scheduler/scherr"

// SubstitutionDiff describes what changed between the schedule passed to
// SubstituteInstructor/SubstituteRoom and the one it returned.
type SubstitutionDiff struct {
	Changed []Assignment // the rewritten assignments, after rewriting
}

// SubstituteInstructor validates feasibility of swapping originalID for
// substituteID across every Assignment currently held by originalID, and
// either applies the substitution to every affected Assignment or returns
// an InfeasibleRepair error listing the conflicting slots. The input
// schedule is never mutated; a new snapshot is returned.
func SubstituteInstructor(sched Schedule, originalID, substituteID InstructorID) (Schedule, SubstitutionDiff, error) {
	substituteOccupied := make(map[TimeSlot]struct{})
	for _, a := range sched {
		if a.InstructorID == substituteID {
			substituteOccupied[a.Slot] = struct{}{}
		}
	}

	var conflicts []scherr.Slot
	for _, a := range sched {
		if a.InstructorID != originalID {
			continue
		}
		if _, taken := substituteOccupied[a.Slot]; taken {
			conflicts = append(conflicts, scherr.Slot{Day: a.Slot.Day, Hour: a.Slot.Hour})
		}
	}
	if len(conflicts) > 0 {
		return sched, SubstitutionDiff{}, &scherr.Error{
			Kind:             scherr.KindInfeasibleRepair,
			Message:          "substitute instructor already occupied at conflicting slots",
			ConflictingSlots: conflicts,
		}
	}

	out := sched.Clone()
	var changed []Assignment
	for i := range out {
		if out[i].InstructorID == originalID {
			out[i].InstructorID = substituteID
			changed = append(changed, out[i])
		}
	}
	return out, SubstitutionDiff{Changed: changed}, nil
}

// CohortLookup resolves a cohort's student count, used by SubstituteRoom to
// decide whether an Assignment must be cancelled rather than rewritten.
type CohortLookup func(CohortID) (studentCount int, ok bool)

// SubstituteRoom rewrites every Assignment in oldRoomID to newRoomID,
// except where the cohort's student count exceeds newRoom's capacity: that
// Assignment is cancelled (dropped from the returned schedule and reported
// in cancellations) instead of rewritten.
func SubstituteRoom(sched Schedule, oldRoomID, newRoomID RoomID, newRoomCapacity int, lookup CohortLookup) (Schedule, []Assignment) {
	out := make(Schedule, 0, len(sched))
	var cancellations []Assignment

	for _, a := range sched {
		if a.RoomID != oldRoomID {
			out = append(out, a)
			continue
		}
		count, ok := lookup(a.CohortID)
		if ok && count > newRoomCapacity {
			cancellations = append(cancellations, a)
			continue
		}
		a.RoomID = newRoomID
		out = append(out, a)
	}
	return out, cancellations
}

// CancelForInstructor drops every Assignment held by instructorID from the
// schedule, for use when no substitute instructor is available. It returns
// the remaining schedule and the list of cancelled Assignments.
func CancelForInstructor(sched Schedule, instructorID InstructorID) (Schedule, []Assignment) {
	return cancelWhere(sched, func(a Assignment) bool { return a.InstructorID == instructorID })
}

// CancelForRoom drops every Assignment held by roomID from the schedule,
// for use when no substitute room is available.
func CancelForRoom(sched Schedule, roomID RoomID) (Schedule, []Assignment) {
	return cancelWhere(sched, func(a Assignment) bool { return a.RoomID == roomID })
}

func cancelWhere(sched Schedule, match func(Assignment) bool) (Schedule, []Assignment) {
	out := make(Schedule, 0, len(sched))
	var cancelled []Assignment
	for _, a := range sched {
		if match(a) {
			cancelled = append(cancelled, a)
			continue
		}
		out = append(out, a)
	}
	return out, cancelled
}
