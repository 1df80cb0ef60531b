// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package harness

import (
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of running one case.
type Result struct {
	Case     Case
	Passed   bool
	WantCode int
	GotCode  int
	Reason   string // reason code, empty when the case passed
	Detail   string // human readable explanation of the failure
	Duration time.Duration
}

// Report collects the results of a run.
type Report struct {
	ID       uuid.UUID
	Root     string
	Started  time.Time
	Finished time.Time
	Results  []Result
}

func newReport(root string) *Report {
	return &Report{
		ID:      uuid.New(),
		Root:    root,
		Started: time.Now().UTC(),
	}
}

// Passed returns the number of passing results.
func (r *Report) Passed() (n int) {
	for _, result := range r.Results {
		if result.Passed {
			n++
		}
	}
	return n
}

// Failed returns the number of failing results.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// Failures returns the failing results in run order.
func (r *Report) Failures() []Result {
	var list []Result
	for _, result := range r.Results {
		if !result.Passed {
			list = append(list, result)
		}
	}
	return list
}

// Dirs returns the directories holding cases, in first seen order.
func (r *Report) Dirs() []string {
	var list []string
	seen := map[string]bool{}
	for _, result := range r.Results {
		if !seen[result.Case.Dir] {
			seen[result.Case.Dir] = true
			list = append(list, result.Case.Dir)
		}
	}
	return list
}
