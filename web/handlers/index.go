// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"bytes"
	"net/http"

	"github.com/mdhender/ippc/renderer"
)

// Index lists the stored runs, newest first.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	runs, err := h.store.RunSummaries(r.Context())
	if err != nil {
		h.logger.Error("index: runs", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	links := make([]renderer.RunLink, 0, len(runs))
	for _, run := range runs {
		links = append(links, renderer.RunLink{
			Href:    "/runs/" + run.ID.String(),
			Root:    run.Root,
			Started: run.Started,
			Passed:  run.Passed,
			Failed:  run.Failed,
		})
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderRuns(r.Context(), &buf, links); err != nil {
		h.logger.Error("index: render", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
