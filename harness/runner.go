// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package harness

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mdhender/ippc"
	"github.com/spf13/afero"
)

//go:generate mockgen -write_package_comment=false -package=harness_test -destination=mock_store_test.go github.com/mdhender/ippc/harness RunStore

// RunStore persists finished reports.
type RunStore interface {
	InsertRun(ctx context.Context, report *Report) error
}

// Runner compiles each case in-process and checks the result.
type Runner struct {
	logger        *slog.Logger
	fs            afero.Fs
	createMissing bool
	store         RunStore
}

// NewRunner creates a new Runner that reads cases from the OS file system.
// The logger may be nil.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		logger: logger,
		fs:     afero.NewOsFs(),
	}
}

// SetFS sets the filesystem for testing.
func (r *Runner) SetFS(fs afero.Fs) {
	r.fs = fs
}

// SetCreateMissing controls whether missing .in, .out and .rc files are
// written out with their default contents.
func (r *Runner) SetCreateMissing(flag bool) {
	r.createMissing = flag
}

// SetStore sets the store that receives the finished report.
func (r *Runner) SetStore(store RunStore) {
	r.store = store
}

// RunDir discovers the cases under root and runs them.
func (r *Runner) RunDir(ctx context.Context, root string, recursive bool) (*Report, error) {
	cases, err := Discover(r.fs, root, recursive)
	if err != nil {
		return nil, err
	}
	r.logger.Info("harness: discovered", "root", root, "cases", len(cases))
	return r.run(ctx, root, cases)
}

// Run runs the cases in order. If the context is cancelled, the report
// holds the results of the cases that finished and the context error
// is returned with it.
func (r *Runner) Run(ctx context.Context, cases []Case) (*Report, error) {
	return r.run(ctx, "", cases)
}

func (r *Runner) run(ctx context.Context, root string, cases []Case) (*Report, error) {
	report := newReport(root)
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			report.Finished = time.Now().UTC()
			return report, err
		}
		result := r.runCase(ctx, c)
		if result.Passed {
			r.logger.Debug("harness: pass", "case", c.Source, "code", result.GotCode)
		} else {
			r.logger.Warn("harness: fail", "case", c.Source, "reason", result.Reason, "detail", result.Detail)
		}
		report.Results = append(report.Results, result)
	}
	report.Finished = time.Now().UTC()

	if r.store != nil {
		if err := r.store.InsertRun(ctx, report); err != nil {
			return report, &ErrStore{Op: "insert run", Err: err}
		}
	}
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, c Case) Result {
	started := time.Now()
	result := Result{Case: c}
	fail := func(reason, detail string) Result {
		result.Reason, result.Detail = reason, detail
		result.Duration = time.Since(started)
		return result
	}

	if r.createMissing {
		if err := r.createDefaults(c); err != nil {
			return fail(ReasonCode(err), err.Error())
		}
	}

	src, err := afero.ReadFile(r.fs, c.Source)
	if err != nil {
		err = &ErrFile{Op: "read", Path: c.Source, Err: err}
		return fail(ReasonCode(err), err.Error())
	}
	args, err := r.readOptional(c.Input)
	if err != nil {
		return fail(ReasonCode(err), err.Error())
	}
	result.WantCode, err = r.wantCode(c)
	if err != nil {
		return fail(ReasonCode(err), err.Error())
	}

	var output []byte
	var compileErr error
	switch fields := strings.Fields(string(args)); {
	case len(fields) == 1 && fields[0] == "--help":
		result.GotCode = ippc.ExitOK
	case len(fields) != 0:
		compileErr = fmt.Errorf("arguments %q: %w", fields, ippc.ErrUsage)
		result.GotCode = ippc.ExitCode(compileErr)
	default:
		output, compileErr = ippc.CompileXML(ctx, c.Source, src, r.logger)
		result.GotCode = ippc.ExitCode(compileErr)
	}

	if result.GotCode != result.WantCode {
		detail := fmt.Sprintf("exit code: got %d, want %d", result.GotCode, result.WantCode)
		if compileErr != nil {
			detail = fmt.Sprintf("%s: %v", detail, compileErr)
		}
		return fail(ReasonExitCode, detail)
	}

	if result.GotCode == ippc.ExitOK && output != nil {
		want, err := r.readOptional(c.Output)
		if err != nil {
			return fail(ReasonCode(err), err.Error())
		}
		diff, err := CompareXML(output, want)
		if err != nil {
			return fail(ReasonCode(err), err.Error())
		} else if diff != "" {
			return fail(ReasonOutput, diff)
		}
	}

	result.Passed = true
	result.Duration = time.Since(started)
	return result
}

// wantCode returns the expected exit code. A missing file means 0.
func (r *Runner) wantCode(c Case) (int, error) {
	data, err := r.readOptional(c.ReturnCode)
	if err != nil {
		return 0, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return ippc.ExitOK, nil
	}
	code, err := strconv.Atoi(text)
	if err != nil {
		return 0, &ErrReturnCode{Path: c.ReturnCode, Text: text}
	}
	return code, nil
}

// readOptional returns the contents of the file, or nil if it does not exist.
func (r *Runner) readOptional(path string) ([]byte, error) {
	data, err := afero.ReadFile(r.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, &ErrFile{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// createDefaults writes an empty .in and .out and a .rc holding 0 for
// any that are missing.
func (r *Runner) createDefaults(c Case) error {
	for _, f := range []struct {
		path string
		data string
	}{
		{c.Input, ""},
		{c.Output, ""},
		{c.ReturnCode, "0"},
	} {
		ok, err := afero.Exists(r.fs, f.path)
		if err != nil {
			return &ErrFile{Op: "stat", Path: f.path, Err: err}
		} else if ok {
			continue
		}
		if err := afero.WriteFile(r.fs, f.path, []byte(f.data), 0644); err != nil {
			return &ErrFile{Op: "create", Path: f.path, Err: err}
		}
		r.logger.Info("harness: created", "path", f.path)
	}
	return nil
}
