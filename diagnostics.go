// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Diagnostic represents a lexer or parser error with a span in the
// original source.
type Diagnostic struct {
	Severity slog.Level // Error, Warning, Info
	Message  string     // "DEFVAR: expected var"
	Span     Span       // where in the file it occurred
	Notes    []string   // optional additional help messages
}

// DiagnosticFor returns the diagnostic attached to err, if there is one.
func DiagnosticFor(err error) (Diagnostic, bool) {
	var d interface{ Diagnostic() Diagnostic }
	if errors.As(err, &d) {
		return d.Diagnostic(), true
	}
	return Diagnostic{}, false
}

// PrintDiagnostic writes the diagnostic followed by the source line and a
// caret under the start of the span, with the rest of the span underlined.
// Only the first line of a span is shown.
func PrintDiagnostic(w io.Writer, diag Diagnostic, filename string, src []byte) {
	// Header: file:line:column: error: message
	span := diag.Span
	_, _ = fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
		filename, span.Line, span.Column,
		strings.ToLower(diag.Severity.String()), diag.Message)

	if line := findLine(src, span.Start); len(line) != 0 {
		_, _ = fmt.Fprintf(w, "    %s\n", line)

		// caret underline
		caretCount := runeColumnOffset(span.Column, line)
		_, _ = fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", caretCount), underline(span, src))
	}

	// Notes
	for _, note := range diag.Notes {
		_, _ = fmt.Fprintf(w, "    note: %s\n", note)
	}
}

// underline returns a caret followed by a tilde for each remaining
// character of the span on its first line.
func underline(span Span, src []byte) string {
	if span.End > len(src) {
		span.End = len(src)
	}
	if span.Start >= span.End {
		return "^"
	}
	text := span.Text(src)
	if i := bytes.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	return "^" + strings.Repeat("~", max(utf8.RuneCount(text)-1, 0))
}

// findLine returns the line containing the start byte.
// It searches backwards from start to find the start of the line,
// then forward until it finds a line break or the end of input.
// The returned line does not include the line break. If there is
// no line, returns an empty slice.
func findLine(src []byte, start int) []byte {
	if start >= len(src) || start < 0 {
		return []byte{}
	}

	lineStart := 0
	for i := start - 1; i >= 0; i-- {
		if iseol(src[i]) {
			lineStart = i + 1
			break
		}
	}

	lineEnd := len(src)
	for i := lineStart; i < len(src); i++ {
		if iseol(src[i]) {
			lineEnd = i
			break
		}
	}

	return src[lineStart:lineEnd]
}

// runeColumnOffset returns the number of characters before the 1-based
// column, with tabs kept as single characters.
func runeColumnOffset(column int, b []byte) (offset int) {
	for column > 1 && len(b) != 0 {
		// b is not empty, so DecodeRune will always return a width of 1 or more
		_, w := utf8.DecodeRune(b)
		offset++
		column--
		b = b[w:]
	}
	return offset
}
