// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrUsage is returned when the tool is invoked incorrectly.
// It is detected before any input is read.
var ErrUsage = errors.New("invalid usage")

// HeaderError is returned when the first word is not the language header.
type HeaderError struct {
	Position
	Found string // empty when the input has no words at all
}

func (e *HeaderError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("missing header %s", HeaderLiteral)
	}
	return fmt.Sprintf("%d:%d: expected header %s: found %q", e.Line, e.Column, HeaderLiteral, e.Found)
}

func (e *HeaderError) Diagnostic() Diagnostic {
	return Diagnostic{
		Severity: slog.LevelError,
		Message:  fmt.Sprintf("expected header %s", HeaderLiteral),
		Span:     Span{Start: e.Start, End: e.Start + len(e.Found), Line: e.Line, Column: e.Column},
	}
}

// LexicalError is returned when a word matches no token pattern.
type LexicalError struct {
	Position
	Word string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%d:%d: invalid word %q", e.Line, e.Column, e.Word)
}

func (e *LexicalError) Diagnostic() Diagnostic {
	return Diagnostic{
		Severity: slog.LevelError,
		Message:  fmt.Sprintf("invalid word %q", e.Word),
		Span:     Span{Start: e.Start, End: e.Start + len(e.Word), Line: e.Line, Column: e.Column},
		Notes:    lexicalNotes(e.Word),
	}
}

// SyntaxError is returned when the token stream violates the grammar.
type SyntaxError struct {
	Token    *Token
	Opcode   string // instruction being parsed, empty at an instruction position
	Expected string // e.g. "var", "symb", "instruction", "end of line"
}

func (e *SyntaxError) Error() string {
	found := describe(e.Token)
	if e.Opcode == "" {
		return fmt.Sprintf("%d:%d: expected %s: found %s", e.Token.Line, e.Token.Column, e.Expected, found)
	}
	return fmt.Sprintf("%d:%d: %s: expected %s: found %s", e.Token.Line, e.Token.Column, e.Opcode, e.Expected, found)
}

func (e *SyntaxError) Diagnostic() Diagnostic {
	msg := fmt.Sprintf("expected %s", e.Expected)
	if e.Opcode != "" {
		msg = fmt.Sprintf("%s: %s", e.Opcode, msg)
	}
	return Diagnostic{
		Severity: slog.LevelError,
		Message:  msg,
		Span:     spanFromToken(e.Token),
	}
}

// ParseError is returned when the derivation fails without a more
// specific cause.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse failed: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("parse failed: %s", e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Exit codes returned by the command line tools.
const (
	ExitOK      = 0
	ExitUsage   = 10
	ExitHeader  = 21
	ExitSyntax  = 22
	ExitLexical = 23
	ExitParse   = 99
)

// ExitCode returns the process exit code for a given error.
// Wrapped errors are unwrapped; nil maps to ExitOK and anything
// unrecognized to ExitParse.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var headerErr *HeaderError
	var lexicalErr *LexicalError
	var syntaxErr *SyntaxError
	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.As(err, &headerErr):
		return ExitHeader
	case errors.As(err, &lexicalErr):
		return ExitLexical
	case errors.As(err, &syntaxErr):
		return ExitSyntax
	default:
		return ExitParse
	}
}

// describe names a token for error messages.
func describe(tok *Token) string {
	switch {
	case tok == nil:
		return "nothing"
	case tok.Kind == EndOfInput:
		return "end of input"
	case tok.Kind == NewlineMarker:
		return "end of line"
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Original)
}
