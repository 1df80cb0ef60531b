// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mdhender/ippc"
)

// countingReader fails every read and remembers that it was called.
type countingReader struct {
	reads int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.reads++
	return 0, errors.New("standard input was read")
}

func execute(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(stdin)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{}, args...)) // nil would fall back to os.Args
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestUsageErrors_ReadNoInput(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
	}{
		{"positional argument", []string{"parse", "extra"}},
		{"unknown flag", []string{"parse", "--bogus"}},
		{"unknown shorthand", []string{"parse", "-x"}},
		{"unknown root flag", []string{"--bogus", "parse"}},
		{"too many lex files", []string{"lex", "a.src", "b.src"}},
		{"unknown command", []string{"frobnicate"}},
		{"test argument", []string{"test", "tests"}},
		{"version argument", []string{"version", "now"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			stdin := &countingReader{}
			_, _, err := execute(t, stdin, tc.args...)
			if got := ippc.ExitCode(err); got != ippc.ExitUsage {
				t.Errorf("exit code: got %d (%v), want %d", got, err, ippc.ExitUsage)
			}
			if stdin.reads != 0 {
				t.Errorf("standard input was read %d times", stdin.reads)
			}
		})
	}
}

func TestParse_Stdin(t *testing.T) {
	stdout, _, err := execute(t, strings.NewReader(".IPPcode21\n"), "parse", "--no-declaration")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := "<program language=\"IPPcode21\"/>\n"; stdout != want {
		t.Errorf("output: got %q, want %q", stdout, want)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	stdout, stderr, err := execute(t, strings.NewReader(".IPPcode21\nMOVE GF@x\n"), "parse")
	if got := ippc.ExitCode(err); got != ippc.ExitSyntax {
		t.Fatalf("exit code: got %d (%v), want %d", got, err, ippc.ExitSyntax)
	}
	if stdout != "" {
		t.Errorf("stdout: got %q, want nothing", stdout)
	}
	if !strings.Contains(stderr, "<stdin>:2:") || !strings.Contains(stderr, "error: MOVE: expected symb") {
		t.Errorf("stderr: got %q", stderr)
	}
}

func TestRoot_NoArgsShowsHelp(t *testing.T) {
	stdout, _, err := execute(t, &countingReader{})
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if !strings.Contains(stdout, "Available Commands:") {
		t.Errorf("stdout: got %q, want help", stdout)
	}
}
