// Package scheduler is a university timetable scheduler core: a
// constraint-aware metaheuristic search engine that assigns weekly class
// sessions to (day, hour, room, instructor) tuples while respecting hard
// resource-exclusion constraints and optimising a weighted set of soft
// teaching-quality preferences.
//
// Imagine a registrar with a batch of cohorts, a roster of instructors and
// their qualifications, and a set of rooms of varying type and capacity.
// `scheduler` turns that into a Problem Instance, evolves a population of
// candidate weekly schedules with a genetic algorithm, and hands back the
// best schedule found together with its fitness history. When a disruption
// hits later in the term - an instructor going on leave, a room closing -
// the package's repair optimiser returns a patched copy of the live schedule
// instead of re-running the whole search.
//
// The scheduling problem is NP-hard, so this package uses a heuristic
// approach: a genetic algorithm backed by
// github.com/MaxHalford/eaopt for genome and population bookkeeping, with a
// hand-rolled generational loop (elitism, adaptive mutation, early
// stopping, cancellation) layered on top - see DESIGN.md in the module
// root for why the generational loop isn't delegated to eaopt's own GA
// orchestration.
package scheduler
