// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mdhender/ippc/harness"
)

// RunSummary is the stored outline of a harness run.
type RunSummary struct {
	ID       uuid.UUID
	Root     string
	Started  time.Time
	Finished time.Time
	Passed   int
	Failed   int
}

// Total returns the number of cases in the run.
func (r RunSummary) Total() int {
	return r.Passed + r.Failed
}

// InsertRun persists a report and its results in a single transaction.
func (s *SQLiteStore) InsertRun(ctx context.Context, report *harness.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const runQuery = `
		INSERT INTO runs (id, root, started_at, finished_at, passed, failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, runQuery,
		report.ID.String(),
		report.Root,
		report.Started.Format(time.RFC3339Nano),
		report.Finished.Format(time.RFC3339Nano),
		report.Passed(),
		report.Failed(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	const resultQuery = `
		INSERT INTO results (run_id, seq, source, passed, want_code, got_code, reason, detail, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, r := range report.Results {
		_, err = tx.ExecContext(ctx, resultQuery,
			report.ID.String(),
			i+1,
			r.Case.Source,
			boolToInt(r.Passed),
			r.WantCode,
			r.GotCode,
			r.Reason,
			r.Detail,
			r.Duration.Nanoseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert result %s: %w", r.Case.Source, err)
		}
	}

	return tx.Commit()
}

// RunSummaries returns every stored run, newest first.
func (s *SQLiteStore) RunSummaries(ctx context.Context) ([]RunSummary, error) {
	const query = `
		SELECT id, root, started_at, finished_at, passed, failed
		FROM runs
		ORDER BY started_at DESC, id
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var id, started, finished string
		if err := rows.Scan(&id, &run.Root, &started, &finished, &run.Passed, &run.Failed); err != nil {
			return nil, err
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("run %q: %w", id, err)
		}
		if run.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %s: started_at: %w", id, err)
		}
		if run.Finished, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("run %s: finished_at: %w", id, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun loads a stored run back into a report.
// Returns nil if the run does not exist.
func (s *SQLiteStore) GetRun(ctx context.Context, id uuid.UUID) (*harness.Report, error) {
	const runQuery = `SELECT root, started_at, finished_at FROM runs WHERE id = ?`
	report := &harness.Report{ID: id}
	var started, finished string
	err := s.db.QueryRowContext(ctx, runQuery, id.String()).Scan(&report.Root, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	if report.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("run %s: started_at: %w", id, err)
	}
	if report.Finished, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("run %s: finished_at: %w", id, err)
	}

	const resultQuery = `
		SELECT source, passed, want_code, got_code, reason, detail, duration_ns
		FROM results
		WHERE run_id = ?
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, resultQuery, id.String())
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r harness.Result
		var source string
		var passed int
		var duration int64
		if err := rows.Scan(&source, &passed, &r.WantCode, &r.GotCode, &r.Reason, &r.Detail, &duration); err != nil {
			return nil, err
		}
		r.Case = harness.NewCase(source)
		r.Passed = passed != 0
		r.Duration = time.Duration(duration)
		report.Results = append(report.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return report, nil
}

// DeleteRun removes a run and its results.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
