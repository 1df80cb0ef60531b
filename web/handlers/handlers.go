// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mdhender/ippc/harness"
	"github.com/mdhender/ippc/renderer"
	store "github.com/mdhender/ippc/stores/sqlite"
)

// Store defines the store operations needed by the handlers.
type Store interface {
	RunSummaries(ctx context.Context) ([]store.RunSummary, error)
	GetRun(ctx context.Context, id uuid.UUID) (*harness.Report, error)
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store    Store
	renderer *renderer.Renderer
	logger   *slog.Logger
}

// New creates a new Handlers with the given store and renderer.
// The logger may be nil.
func New(s Store, r *renderer.Renderer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handlers{store: s, renderer: r, logger: logger}
}
