// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

import "fmt"

/*
Invariants:
  - The token list ends with exactly one EndOfInput token.
    NewCursor panics if it does not, since that's a bug in the caller.
  - Current() never returns nil.
  - Advance() never moves past EndOfInput. Once the cursor reaches it,
    Current() always returns it.
  - RetagCurrentAsLabel is the only way the token list is modified, and
    it changes at most the Kind and Display of the current token, at most
    once per token.
*/

// Cursor is a one-token lookahead view over a token list.
type Cursor struct {
	tokens []*Token
	pos    int
}

// NewCursor returns a cursor positioned on the first token.
func NewCursor(tokens []*Token) *Cursor {
	if len(tokens) == 0 || tokens[len(tokens)-1].IsNot(EndOfInput) {
		panic("assert(tokens[len(tokens)-1].Kind == EndOfInput)")
	}
	return &Cursor{tokens: tokens}
}

// Current returns the lookahead token without consuming it.
func (c *Cursor) Current() *Token {
	return c.tokens[c.pos]
}

// Advance consumes and returns the current token.
// EndOfInput is returned repeatedly; the cursor doesn't move past it.
func (c *Cursor) Advance() *Token {
	tok := c.tokens[c.pos]
	if tok.Kind != EndOfInput {
		c.pos++
	}
	return tok
}

// Match reports whether the current token matches the given kind.
func (c *Cursor) Match(kind Kind) bool {
	return c.Current().Is(kind)
}

// MatchOneOf reports whether the current token matches any of the kinds.
func (c *Cursor) MatchOneOf(kinds ...Kind) bool {
	return c.Current().IsOneOf(kinds...)
}

// Accept consumes and returns the current token if its Kind equals kind.
// It returns nil if the current token does not match.
func (c *Cursor) Accept(kind Kind) *Token {
	if c.Match(kind) {
		return c.Advance()
	}
	return nil
}

// AcceptOneOf consumes and returns the current token if its Kind matches
// any of the provided kinds. It returns nil if there is no match.
func (c *Cursor) AcceptOneOf(kinds ...Kind) *Token {
	if c.MatchOneOf(kinds...) {
		return c.Advance()
	}
	return nil
}

// IsAtEnd reports whether the cursor has reached EndOfInput.
func (c *Cursor) IsAtEnd() bool {
	return c.Match(EndOfInput)
}

// RetagCurrentAsLabel reinterprets the current token as a label.
//
// Keywords are lexically valid label names, so when the grammar wants a
// label and finds a Type or Instruction token, the token is retagged.
// An Instruction keeps its original spelling rather than the uppercase
// mnemonic.
//
// It returns an error and changes nothing if the current token is not a
// Type or Instruction, or if it was already retagged.
func (c *Cursor) RetagCurrentAsLabel() error {
	tok := c.Current()
	if tok.retagged {
		return fmt.Errorf("%d:%d: token already retagged", tok.Line, tok.Column)
	}
	switch tok.Kind {
	case Type:
		tok.Kind = Label
	case Instruction:
		tok.Kind, tok.Display = Label, Escape(tok.Original)
	default:
		return fmt.Errorf("%d:%d: cannot retag %s as %s", tok.Line, tok.Column, tok.Kind, Label)
	}
	tok.retagged = true
	return nil
}
