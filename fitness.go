package scheduler

import (
	"sort"

	"github.com/acme/campus-scheduler/config"
)

// Fitness penalty weights.
const (
	weightDoubleBooking        = 1000.0
	weightIntraDayGap          = 15.0
	weightExcessiveConsecutive = 25.0
	weightInstructorImbalance  = 50.0
)

// Fitness evaluates a Schedule against cfg and returns a score in (0, 1]:
// fitness = 1 / (1 + total_penalty). Empty schedules score 0. Fitness is a
// pure function of the (unordered) multiset of Assignments plus cfg: it
// reads no ambient state.
func Fitness(schedule Schedule, cfg config.Config) float64 {
	if len(schedule) == 0 {
		return 0
	}

	penalty := doubleBookingPenalty(schedule)
	penalty += cohortQualityPenalty(schedule, cfg.MaxConsecutive)
	penalty += instructorImbalancePenalty(schedule, len(cfg.Days))

	return 1 / (1 + penalty)
}

// doubleBookingPenalty counts, for each of instructor/cohort/room,
// len(slots) - len(set(slots)), summed across all three, weighted.
func doubleBookingPenalty(schedule Schedule) float64 {
	instr := map[InstructorID][]TimeSlot{}
	coh := map[CohortID][]TimeSlot{}
	room := map[RoomID][]TimeSlot{}
	for _, a := range schedule {
		instr[a.InstructorID] = append(instr[a.InstructorID], a.Slot)
		coh[a.CohortID] = append(coh[a.CohortID], a.Slot)
		room[a.RoomID] = append(room[a.RoomID], a.Slot)
	}

	var duplicates int
	duplicates += countDuplicates(instr)
	duplicates += countDuplicates(coh)
	duplicates += countDuplicates(room)

	return weightDoubleBooking * float64(duplicates)
}

func countDuplicates[K comparable](m map[K][]TimeSlot) int {
	total := 0
	for _, slots := range m {
		total += len(slots) - len(distinctSlots(slots))
	}
	return total
}

func distinctSlots(slots []TimeSlot) map[TimeSlot]struct{} {
	set := make(map[TimeSlot]struct{}, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return set
}

// cohortQualityPenalty applies the intra-day gap and excessive-consecutive
// penalties per (cohort, day).
//
// gap = h[i+1] - h[i] - 1, and the penalty only triggers when gap > 1 - so
// a single empty hour is unpenalised but two empty hours cost 2*weight,
// not 1*weight.
func cohortQualityPenalty(schedule Schedule, maxConsecutive int) float64 {
	type dayKey struct {
		cohort CohortID
		day    int
	}
	hoursByDay := map[dayKey][]int{}
	for _, a := range schedule {
		k := dayKey{cohort: a.CohortID, day: a.Slot.Day}
		hoursByDay[k] = append(hoursByDay[k], a.Slot.Hour)
	}

	var penalty float64
	for _, hours := range hoursByDay {
		sort.Ints(hours)

		for i := 0; i+1 < len(hours); i++ {
			gap := hours[i+1] - hours[i] - 1
			if gap > 1 {
				penalty += weightIntraDayGap * float64(gap)
			}
		}

		run := longestConsecutiveRun(hours)
		if run > maxConsecutive {
			penalty += weightExcessiveConsecutive * float64(run-maxConsecutive)
		}
	}
	return penalty
}

// longestConsecutiveRun returns the longest run of consecutive integers in
// a sorted slice.
func longestConsecutiveRun(sortedHours []int) int {
	if len(sortedHours) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(sortedHours); i++ {
		if sortedHours[i] == sortedHours[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// instructorImbalancePenalty computes, for each instructor, the variance of
// hours-per-day across the week, weighted.
func instructorImbalancePenalty(schedule Schedule, numDays int) float64 {
	hoursPerDay := map[InstructorID]map[int]int{}
	for _, a := range schedule {
		byDay, ok := hoursPerDay[a.InstructorID]
		if !ok {
			byDay = make(map[int]int)
			hoursPerDay[a.InstructorID] = byDay
		}
		byDay[a.Slot.Day]++
	}

	var penalty float64
	for _, byDay := range hoursPerDay {
		values := make([]float64, 0, numDays)
		for _, hours := range byDay {
			values = append(values, float64(hours))
		}
		penalty += weightInstructorImbalance * variance(values)
	}
	return penalty
}

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var acc float64
	for _, v := range values {
		d := v - mean
		acc += d * d
	}
	return acc / float64(len(values))
}
