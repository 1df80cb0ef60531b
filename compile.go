// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

import (
	"bytes"
	"context"
	"log/slog"
)

// Compile preprocesses, lexes and parses the source text.
// The logger may be nil.
func Compile(ctx context.Context, name string, input []byte, logger *slog.Logger) (*Program, error) {
	words := Preprocess(input)
	tokens, err := NewLexer(ctx, name, logger).Lex(words)
	if err != nil {
		return nil, err
	}
	return NewParser(ctx, name, tokens, logger).Parse()
}

// CompileXML compiles the source text and renders the document.
// Nothing is returned on failure.
func CompileXML(ctx context.Context, name string, input []byte, logger *slog.Logger, options ...EmitterOption) ([]byte, error) {
	program, err := Compile(ctx, name, input, logger)
	if err != nil {
		return nil, err
	}
	e, err := NewEmitter(options...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := e.Emit(&buf, program); err != nil {
		return nil, &ParseError{Msg: "emit", Err: err}
	}
	return buf.Bytes(), nil
}
