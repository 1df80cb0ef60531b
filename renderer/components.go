// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/mdhender/ippc/harness"
)

//go:generate templ generate

// dirResults holds the rows shown for one test directory.
// Tests and Passed count every case, including hidden passes.
type dirResults struct {
	Dir    string
	Rows   []harness.Result
	Tests  int
	Passed int
}

// groupByDir splits the results by directory, in the order of report.Dirs.
func groupByDir(report *harness.Report, failuresOnly bool) []dirResults {
	var dirs []dirResults
	for _, dir := range report.Dirs() {
		d := dirResults{Dir: dir}
		for _, r := range report.Results {
			if r.Case.Dir != dir {
				continue
			}
			d.Tests++
			if r.Passed {
				d.Passed++
				if failuresOnly {
					continue
				}
			}
			d.Rows = append(d.Rows, r)
		}
		dirs = append(dirs, d)
	}
	return dirs
}

// rate returns the share of passing tests as a percentage rounded to
// one decimal place.
func rate(passed, total int) string {
	if total == 0 {
		return "n/a"
	}
	pct := math.Round(1000*float64(passed)/float64(total)) / 10
	return humanize.FtoaWithDigits(pct, 1) + "%"
}
