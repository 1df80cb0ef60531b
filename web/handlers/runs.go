// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"bytes"
	"net/http"

	"github.com/google/uuid"
)

// Run renders the report for the run named by the {id} path value.
func (h *Handlers) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid run id", http.StatusBadRequest)
		return
	}
	report, err := h.store.GetRun(r.Context(), id)
	if err != nil {
		h.logger.Error("run: get", "id", id, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	} else if report == nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(r.Context(), &buf, report); err != nil {
		h.logger.Error("run: render", "id", id, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
