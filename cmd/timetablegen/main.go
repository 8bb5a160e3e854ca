// Command timetablegen is a thin demonstration binary: it loads
// configuration, builds a logger, assembles a small example Problem
// Instance, runs the multi-start orchestrator, and prints the best
// RunResult as JSON. It carries no behaviour the scheduler library doesn't
// already have.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	scheduler "github.com/acme/campus-scheduler"
	"github.com/acme/campus-scheduler/config"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml/json/toml)")
	numSolutions := flag.Int("solutions", 3, "number of independent evolutionary runs")
	baseSeed := flag.Int64("seed", 42, "base random seed")
	env := flag.String("env", "development", "log environment: development|production")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := scheduler.NewLogger(scheduler.LogEnv(*env))
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	problem, err := scheduler.BuildProblem(exampleCohorts, exampleSubjects, exampleInstructors, exampleRooms, cfg)
	if err != nil {
		log.Fatalf("failed to build problem instance: %v", err)
	}

	s := scheduler.New(problem, logger)
	results, err := s.RunMulti(context.Background(), *numSolutions, *baseSeed)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}
	if len(results) == 0 {
		log.Fatal("no results produced")
	}

	out, err := json.MarshalIndent(results[0], "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal result: %v", err)
	}
	fmt.Println(string(out))
}

var exampleCohorts = []scheduler.CohortInput{
	{ID: "CS-UG-1", Department: "CS", Level: "UG", Semester: "1", StudentCount: 35, Subjects: "Programming,ProgrammingLab"},
}

var exampleSubjects = []scheduler.SubjectInput{
	{Name: "Programming", Credits: 3, Type: scheduler.SubjectTheory},
	{Name: "ProgrammingLab", Credits: 2, Type: scheduler.SubjectLab},
}

var exampleInstructors = []scheduler.InstructorInput{
	{ID: "T1", FullName: "Ada Lovelace", Subjects: "Programming,ProgrammingLab", MaxHoursPerWeek: 20, Available: true},
}

var exampleRooms = []scheduler.RoomInput{
	{ID: "R1", Name: "Lab 1", Capacity: 40, Type: scheduler.RoomLaboratory},
	{ID: "R2", Name: "Hall 1", Capacity: 60, Type: scheduler.RoomLectureHall},
}
