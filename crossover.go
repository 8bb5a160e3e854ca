package scheduler

import "math/rand"

// twoPointCrossover performs two-point crossover: let n = min(|p1|, |p2|).
// If n < 2, return p1. Otherwise sample c1 in [1, n/2], c2 in [n/2, n-1]
// and build p1[0:c1] ++ p2[c1:c2] ++ p1[c2:]. The result is not repaired
// here; callers apply Repair.
func twoPointCrossover(p1, p2 Schedule, rng *rand.Rand) Schedule {
	n := len(p1)
	if len(p2) < n {
		n = len(p2)
	}
	if n < 2 {
		return p1.Clone()
	}

	half := n / 2
	c1 := 1 + rng.Intn(half) // [1, n/2]
	c2 := half + rng.Intn(n-half)  // [n/2, n-1]

	child := make(Schedule, 0, c1+(c2-c1)+(len(p1)-c2))
	child = append(child, p1[:c1]...)
	child = append(child, p2[c1:c2]...)
	child = append(child, p1[c2:]...)
	return child
}

// Repair is the deterministic conflict-removal pass applied after
// crossover and mutation: it scans the schedule in order, tracking used
// (instructor, slot), (cohort, slot) and (room, slot), and drops any
// Assignment that collides with one already kept. Repair is order-sensitive
// and deterministic, and idempotent: repair(repair(s)) == repair(s).
func Repair(sched Schedule) Schedule {
	byInstructor := usedSlots[InstructorID]{}
	byCohort := usedSlots[CohortID]{}
	byRoom := usedSlots[RoomID]{}

	out := make(Schedule, 0, len(sched))
	for _, a := range sched {
		if !byInstructor.free(a.InstructorID, a.Slot) ||
			!byCohort.free(a.CohortID, a.Slot) ||
			!byRoom.free(a.RoomID, a.Slot) {
			continue
		}
		out = append(out, a)
		byInstructor.mark(a.InstructorID, a.Slot)
		byCohort.mark(a.CohortID, a.Slot)
		byRoom.mark(a.RoomID, a.Slot)
	}
	return out
}
