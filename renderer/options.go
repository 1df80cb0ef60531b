// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import (
	"fmt"
	"strings"

	"github.com/maloquacious/semver"
)

type Option func(p *Renderer) error

// WithTitle sets the page title and heading.
func WithTitle(title string) Option {
	return func(p *Renderer) error {
		if strings.TrimSpace(title) == "" {
			return fmt.Errorf("title: must not be blank")
		}
		p.title = title
		return nil
	}
}

// WithFailuresOnly hides passing cases from the per-directory listings.
// The counts still include them.
func WithFailuresOnly(flag bool) Option {
	return func(p *Renderer) error {
		p.failuresOnly = flag
		return nil
	}
}

func WithVersion(v semver.Version) Option {
	return func(p *Renderer) error {
		p.version = v
		return nil
	}
}
