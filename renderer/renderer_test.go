// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maloquacious/semver"
	"github.com/mdhender/ippc/harness"
	"github.com/mdhender/ippc/renderer"
)

func testReport() *harness.Report {
	return &harness.Report{
		ID:      uuid.MustParse("6f1c2b1e-8d0a-4c55-9f3e-2a7b0c9d1e42"),
		Root:    "tests",
		Started: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
		Results: []harness.Result{
			{Case: harness.NewCase("tests/parse-only/move.src"), Passed: true, Duration: time.Millisecond},
			{Case: harness.NewCase("tests/parse-only/read.src"), Passed: true, WantCode: 22, GotCode: 22},
			{
				Case:     harness.NewCase("tests/parse-only/<odd>.src"),
				WantCode: 0,
				GotCode:  23,
				Reason:   harness.ReasonExitCode,
				Detail:   `exit code: got 23, want 0: invalid word "a&b"`,
			},
		},
	}
}

func render(t *testing.T, options ...renderer.Option) string {
	t.Helper()
	r, err := renderer.New(options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, testReport()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRender(t *testing.T) {
	version := semver.Version{Major: 1, Minor: 2, Patch: 3}
	got := render(t, renderer.WithVersion(version))
	for _, want := range []string{
		"<!doctype html>",
		"<title>IPPcode21 test report</title>",
		"tests: 3<br>",
		`passed: <span class="pass">2</span>`,
		`failed: <span class="fail">1</span>`,
		"success rate: 66.7%",
		"<h2>tests/parse-only</h2>",
		"<td>move</td>",
		"<td>&lt;odd&gt;</td>",
		"failed: EXIT_CODE",
		`invalid word &#34;a&amp;b&#34;`,
		"ippc " + version.String(),
		"run 6f1c2b1e-8d0a-4c55-9f3e-2a7b0c9d1e42",
		"</body></html>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	if strings.Contains(got, "<odd>") {
		t.Errorf("output contains an unescaped case name")
	}
}

func TestRender_FailuresOnly(t *testing.T) {
	got := render(t, renderer.WithFailuresOnly(true), renderer.WithTitle("Parser & lexer"))
	if strings.Contains(got, "<td>move</td>") {
		t.Errorf("output lists a passing case")
	}
	if !strings.Contains(got, "<td>&lt;odd&gt;</td>") {
		t.Errorf("output is missing the failing case")
	}
	if !strings.Contains(got, "<p>tests: 3<br>passed: 2</p>") {
		t.Errorf("directory counts must include hidden cases")
	}
	if !strings.Contains(got, "<h1>Parser &amp; lexer</h1>") {
		t.Errorf("output is missing the escaped title")
	}
}

func TestRender_EmptyReport(t *testing.T) {
	r, err := renderer.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, &harness.Report{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "success rate: n/a") {
		t.Errorf("output is missing the empty rate")
	}
}

func TestRender_RateRounds(t *testing.T) {
	report := &harness.Report{Root: "tests"}
	for i := 0; i < 6; i++ {
		report.Results = append(report.Results, harness.Result{
			Case:   harness.NewCase(fmt.Sprintf("tests/case%d.src", i)),
			Passed: i == 0,
		})
	}
	r, err := renderer.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(context.Background(), &buf, report); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// 1 of 6 is 16.666...%
	if got := buf.String(); !strings.Contains(got, "success rate: 16.7%") {
		t.Errorf("output is missing the rounded rate")
	}
}

func TestRenderRuns(t *testing.T) {
	r, err := renderer.New(renderer.WithTitle("runs"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var buf bytes.Buffer
	err = r.RenderRuns(context.Background(), &buf, []renderer.RunLink{
		{Href: "/runs/42", Root: "a<b", Started: time.Now(), Passed: 2, Failed: 1},
	})
	if err != nil {
		t.Fatalf("RenderRuns: %v", err)
	}
	got := buf.String()
	for _, want := range []string{
		`<a href="/runs/42">`,
		"<td>a&lt;b</td>",
		`<td class="pass">2</td><td class="fail">1</td><td>66.7%</td>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q", want)
		}
	}

	buf.Reset()
	if err := r.RenderRuns(context.Background(), &buf, nil); err != nil {
		t.Fatalf("RenderRuns: %v", err)
	}
	if !strings.Contains(buf.String(), "<p>no runs</p>") {
		t.Errorf("output is missing the empty index")
	}
}

func TestNew_RejectsBlankTitle(t *testing.T) {
	if _, err := renderer.New(renderer.WithTitle("  ")); err == nil {
		t.Errorf("WithTitle(blank): got nil error")
	}
}
