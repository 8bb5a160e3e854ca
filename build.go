package scheduler

import (
	"sort"
	"strings"

	"github.com/acme/campus-scheduler/config"
	"github.com/acme/campus-scheduler/scherr"
)

// CohortInput, SubjectInput, InstructorInput and RoomInput are the plain
// input record shapes BuildProblem accepts. They exist so the core never
// has to reach into an application's own ORM/DTO types.
type CohortInput struct {
	ID           string
	Department   string
	Level        string
	Semester     string
	StudentCount int
	Subjects     string // comma-separated subject names
}

// SubjectInput is the plain record shape for a taught subject.
type SubjectInput struct {
	Name    string
	Code    string
	Credits int
	Type    SubjectType
}

// InstructorInput is the plain record shape for an instructor.
type InstructorInput struct {
	ID              string
	FullName        string
	Email           string
	Department      string
	Subjects        string // comma-separated subject names
	MaxHoursPerWeek int
	Available       bool
}

// RoomInput is the plain record shape for a bookable room.
type RoomInput struct {
	ID       string
	Name     string
	Capacity int
	Type     RoomType
}

// sessionCount maps a subject's type and credit weight to the number of
// weekly sessions it requires.
func sessionCount(subjectType SubjectType, credits int) int {
	switch {
	case subjectType == SubjectLab:
		n := 2 * credits
		if n > 4 {
			n = 4
		}
		return n
	case credits >= 4:
		return 3
	case credits == 3:
		return 2
	default:
		return 1
	}
}

// validSubjectTypes enumerates the subject_type values a SubjectInput may
// declare.
var validSubjectTypes = map[SubjectType]struct{}{
	SubjectTheory:    {},
	SubjectLab:       {},
	SubjectPractical: {},
}

// validateRecords checks the per-record constraints BuildProblem requires
// before it will build a Problem Instance: non-positive capacity, unknown
// subject_type, and duplicate ids within a record set are all rejected.
// Validation failure aborts the whole build.
func validateRecords(cohorts []CohortInput, subjects []SubjectInput, instructors []InstructorInput, rooms []RoomInput) error {
	seenCohort := make(map[string]struct{}, len(cohorts))
	for _, c := range cohorts {
		if c.ID == "" {
			continue
		}
		if _, dup := seenCohort[c.ID]; dup {
			return scherr.New(scherr.KindMalformedInput, "duplicate cohort id: "+c.ID)
		}
		seenCohort[c.ID] = struct{}{}
	}

	for _, s := range subjects {
		if _, ok := validSubjectTypes[s.Type]; !ok {
			return scherr.New(scherr.KindMalformedInput, "unknown subject type for subject: "+s.Name)
		}
	}

	seenInstructor := make(map[string]struct{}, len(instructors))
	for _, in := range instructors {
		if _, dup := seenInstructor[in.ID]; dup {
			return scherr.New(scherr.KindMalformedInput, "duplicate instructor id: "+in.ID)
		}
		seenInstructor[in.ID] = struct{}{}
	}

	seenRoom := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		if r.Capacity <= 0 {
			return scherr.New(scherr.KindMalformedInput, "non-positive room capacity: "+r.ID)
		}
		if _, dup := seenRoom[r.ID]; dup {
			return scherr.New(scherr.KindMalformedInput, "duplicate room id: "+r.ID)
		}
		seenRoom[r.ID] = struct{}{}
	}

	return nil
}

// BuildProblem converts raw resource records into an immutable Problem
// Instance. Cohorts, subjects, instructors and rooms are taken as plain
// record sets; nothing here reads a file or a database. A record that
// fails validation aborts the whole build and returns a
// scherr.KindMalformedInput error.
func BuildProblem(cohorts []CohortInput, subjects []SubjectInput, instructors []InstructorInput, rooms []RoomInput, cfg config.Config) (*ProblemInstance, error) {
	if err := validateRecords(cohorts, subjects, instructors, rooms); err != nil {
		return nil, err
	}

	p := &ProblemInstance{
		Config:               cfg,
		QualifiedInstructors: make(map[string][]InstructorID),
		PreSelected:          make(map[CohortSubject]InstructorID),
		Instructors:          make(map[InstructorID]Instructor),
		Workloads:            make(map[InstructorID]int),
	}

	p.Slots = buildSlotGrid(cfg)

	for _, r := range rooms {
		room := Room{ID: RoomID(r.ID), Name: r.Name, Capacity: r.Capacity, Type: r.Type}
		if room.Type == RoomLaboratory {
			p.LabRooms = append(p.LabRooms, room)
		} else {
			p.OtherRooms = append(p.OtherRooms, room)
		}
	}

	subjectByName := make(map[string]SubjectInput, len(subjects))
	for _, s := range subjects {
		subjectByName[s.Name] = s
	}

	// Qualified-instructor index, first-seen order preserved for stable
	// tie-breaking during pre-selection.
	for _, in := range instructors {
		if !in.Available {
			continue
		}
		id := InstructorID(in.ID)
		maxHours := in.MaxHoursPerWeek
		if maxHours <= 0 {
			maxHours = 20
		}
		subjSet := make(map[string]struct{})
		for _, name := range splitCSV(in.Subjects) {
			subjSet[name] = struct{}{}
			p.QualifiedInstructors[name] = append(p.QualifiedInstructors[name], id)
		}
		p.Instructors[id] = Instructor{
			ID:              id,
			FullName:        in.FullName,
			Subjects:        subjSet,
			MaxHoursPerWeek: maxHours,
			Available:       in.Available,
		}
		p.Workloads[id] = 0
	}

	for _, c := range cohorts {
		cohortID := CohortID(c.ID)
		if cohortID == "" {
			cohortID = NewCohortID(c.Department, c.Level, c.Semester)
		}
		for _, subjectName := range splitCSV(c.Subjects) {
			subj, ok := subjectByName[subjectName]
			if !ok {
				continue
			}
			count := sessionCount(subj.Type, subj.Credits)

			qualified := p.QualifiedInstructors[subjectName]
			if len(qualified) == 0 {
				p.Diagnostics.UnqualifiedSessions += count
				continue
			}
			if len(eligibleRooms(p.RoomPool(subj.Type), c.StudentCount)) == 0 {
				p.Diagnostics.UnplaceableSessions += count
				continue
			}

			best := qualified[0]
			for _, cand := range qualified[1:] {
				if p.Workloads[cand] < p.Workloads[best] {
					best = cand
				}
			}
			p.Workloads[best] += count
			p.PreSelected[CohortSubject{CohortID: cohortID, SubjectName: subjectName}] = best

			for i := 0; i < count; i++ {
				p.Sessions = append(p.Sessions, ClassSession{
					CohortID:     cohortID,
					SubjectName:  subjectName,
					SubjectType:  subj.Type,
					StudentCount: c.StudentCount,
					Credits:      subj.Credits,
					HoursPerWeek: count,
				})
			}
		}
	}

	return p, nil
}

// buildSlotGrid returns the ordered TimeSlot vector for a day/hour grid.
func buildSlotGrid(cfg config.Config) []TimeSlot {
	slots := make([]TimeSlot, 0, len(cfg.Days)*cfg.HoursPerDay)
	for d := range cfg.Days {
		for h := 1; h <= cfg.HoursPerDay; h++ {
			slots = append(slots, TimeSlot{Day: d, Hour: h})
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Ordinal(cfg.HoursPerDay) < slots[j].Ordinal(cfg.HoursPerDay)
	})
	return slots
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
