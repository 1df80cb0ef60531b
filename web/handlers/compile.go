// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mdhender/ippc"
)

// maxSourceBytes limits the size of a posted source.
const maxSourceBytes = 1 << 20

type compileResponse struct {
	Success    bool   `json:"success"`
	ExitCode   int    `json:"exit_code"`
	Error      string `json:"error,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
	XML        string `json:"xml,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp compileResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// Compile translates the posted source and returns the document, or
// the exit code and diagnostic the command line tool would report.
func (h *Handlers) Compile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSourceBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, compileResponse{ExitCode: ippc.ExitUsage, Error: err.Error()})
		return
	}

	const name = "source"
	data, err := ippc.CompileXML(r.Context(), name, src, h.logger)
	if err != nil {
		resp := compileResponse{ExitCode: ippc.ExitCode(err), Error: err.Error()}
		if diag, ok := ippc.DiagnosticFor(err); ok {
			var buf bytes.Buffer
			ippc.PrintDiagnostic(&buf, diag, name, src)
			resp.Diagnostic = buf.String()
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(w, http.StatusOK, compileResponse{Success: true, XML: string(data)})
}
