package scheduler

import (
	"math/rand"
	"sort"
)

// usedSlots tracks, per resource id, the set of TimeSlots already committed.
type usedSlots[K comparable] map[K]map[TimeSlot]struct{}

func (u usedSlots[K]) free(key K, slot TimeSlot) bool {
	slots, ok := u[key]
	if !ok {
		return true
	}
	_, taken := slots[slot]
	return !taken
}

func (u usedSlots[K]) mark(key K, slot TimeSlot) {
	slots, ok := u[key]
	if !ok {
		slots = make(map[TimeSlot]struct{})
		u[key] = slots
	}
	slots[slot] = struct{}{}
}

// candidateSlot is one feasible (slot, room) pairing found while placing a
// session.
type candidateSlot struct {
	slot TimeSlot
	room Room
}

// ConstructChromosome builds a feasible Schedule for the given Problem
// Instance using rng for every stochastic decision. Sessions that cannot
// be placed are silently dropped.
func ConstructChromosome(p *ProblemInstance, rng *rand.Rand) Schedule {
	sessions := orderedSessions(p.Sessions, rng)

	byInstructor := usedSlots[InstructorID]{}
	byCohort := usedSlots[CohortID]{}
	byRoom := usedSlots[RoomID]{}

	schedule := make(Schedule, 0, len(sessions))

	for _, session := range sessions {
		instructorID, ok := p.PreSelected[CohortSubject{CohortID: session.CohortID, SubjectName: session.SubjectName}]
		if !ok {
			continue
		}

		pool := eligibleRooms(p.RoomPool(session.SubjectType), session.StudentCount)
		if len(pool) == 0 {
			continue
		}

		order := preferredSlotOrder(p.Slots, session.SubjectType)

		var candidates []candidateSlot
		for _, slot := range order {
			if !byInstructor.free(instructorID, slot) || !byCohort.free(session.CohortID, slot) {
				continue
			}
			for _, room := range pool {
				if byRoom.free(room.ID, slot) {
					candidates = append(candidates, candidateSlot{slot: slot, room: room})
					break
				}
			}
		}

		if len(candidates) == 0 {
			continue
		}

		chosen := candidates[rng.Intn(len(candidates))]
		schedule = append(schedule, Assignment{
			CohortID:     session.CohortID,
			SubjectName:  session.SubjectName,
			InstructorID: instructorID,
			RoomID:       chosen.room.ID,
			Slot:         chosen.slot,
			WeekLabel:    DefaultWeekLabel,
		})
		byInstructor.mark(instructorID, chosen.slot)
		byCohort.mark(session.CohortID, chosen.slot)
		byRoom.mark(chosen.room.ID, chosen.slot)
	}

	return schedule
}

// orderedSessions sorts sessions by (is_not_lab, -credits, random
// tiebreaker) so labs and heavier-credit sessions place first, when room
// and instructor availability is scarcest. Each session is decorated with
// its own random key before sorting, so the key travels with the session
// through the permutation instead of staying pinned to a slice position.
func orderedSessions(sessions []ClassSession, rng *rand.Rand) []ClassSession {
	type keyed struct {
		session ClassSession
		key     float64
	}
	decorated := make([]keyed, len(sessions))
	for i, s := range sessions {
		decorated[i] = keyed{session: s, key: rng.Float64()}
	}
	sort.SliceStable(decorated, func(i, j int) bool {
		a, b := decorated[i].session, decorated[j].session
		iNotLab := a.SubjectType != SubjectLab
		jNotLab := b.SubjectType != SubjectLab
		if iNotLab != jNotLab {
			return !iNotLab // labs (is_not_lab == false) sort first
		}
		if a.Credits != b.Credits {
			return a.Credits > b.Credits
		}
		return decorated[i].key < decorated[j].key
	})
	out := make([]ClassSession, len(decorated))
	for i, d := range decorated {
		out[i] = d.session
	}
	return out
}

// preferredSlotOrder builds the preferred-slot iteration order: labs
// prefer hour >= 3, non-labs prefer hour <= 3. Within each group, the
// time-grid order is preserved.
func preferredSlotOrder(grid []TimeSlot, subjectType SubjectType) []TimeSlot {
	out := make([]TimeSlot, 0, len(grid))
	var rest []TimeSlot
	for _, slot := range grid {
		preferred := slot.Hour <= 3
		if subjectType == SubjectLab {
			preferred = slot.Hour >= 3
		}
		if preferred {
			out = append(out, slot)
		} else {
			rest = append(rest, slot)
		}
	}
	return append(out, rest...)
}

// eligibleRooms filters a room pool to rooms with capacity >= studentCount.
func eligibleRooms(pool []Room, studentCount int) []Room {
	out := make([]Room, 0, len(pool))
	for _, r := range pool {
		if r.Capacity >= studentCount {
			out = append(out, r)
		}
	}
	return out
}
