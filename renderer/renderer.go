// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/maloquacious/semver"
	"github.com/mdhender/ippc"
	"github.com/mdhender/ippc/harness"
)

// Renderer writes a harness report as an HTML 5 page.
type Renderer struct {
	title        string
	failuresOnly bool
	version      semver.Version
}

func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		title:   "IPPcode21 test report",
		version: ippc.Version(),
	}
	for _, option := range options {
		err := option(r)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Render writes the page for the report to w.
func (r *Renderer) Render(ctx context.Context, w io.Writer, report *harness.Report) error {
	return r.Page(report).Render(ctx, w)
}

// Page returns the component for the whole document.
func (r *Renderer) Page(report *harness.Report) templ.Component {
	return reportPage(r.title, r.version.String(), report, groupByDir(report, r.failuresOnly))
}
