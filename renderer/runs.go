// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import (
	"context"
	"io"
	"time"
)

// RunLink is one row of the run index.
type RunLink struct {
	Href    string
	Root    string
	Started time.Time
	Passed  int
	Failed  int
}

// RenderRuns writes an index page linking to each run.
func (r *Renderer) RenderRuns(ctx context.Context, w io.Writer, runs []RunLink) error {
	return runIndex(r.title, r.version.String(), runs).Render(ctx, w)
}
