package ippc

// Token represents a single classified word from the input.
type Token struct {
	Position

	Kind Kind // e.g. Instruction, Variable, IntConst, etc.

	// Value is the normalized value of the token: the uppercase mnemonic
	// for instructions, the payload after the "@" for constants.
	Value string

	// Display is the escaped text written to the output document.
	Display string

	// Original is the word exactly as it appeared in the source.
	Original string

	retagged bool
}

// Is reports whether tok.Kind matches the provided kind.
//
// It returns false if tok is nil.
func (tok *Token) Is(kind Kind) bool {
	if tok == nil {
		return false
	}
	return tok.Kind == kind
}

// IsOneOf reports whether tok.Kind matches any of the provided kinds.
//
// It returns false if tok is nil.
//
// This is useful when the grammar accepts several token kinds at the same
// operand position, e.g.:
//
//	if tok.IsOneOf(ippc.Variable, ippc.IntConst, ippc.StringConst) {
//	    ...
//	}
func (tok *Token) IsOneOf(kinds ...Kind) bool {
	if tok == nil {
		return false
	}
	for _, kind := range kinds {
		if tok.Kind == kind {
			return true
		}
	}
	return false
}

// IsNot reports whether tok.Kind does not match the provided kind.
// It is the opposite of Is(kind)
//
// It returns true if tok is nil.
func (tok *Token) IsNot(kind Kind) bool {
	return !tok.Is(kind)
}

// Retagged reports whether the token was reinterpreted as a label.
func (tok *Token) Retagged() bool {
	return tok != nil && tok.retagged
}

// Position represents a position in the original source code.
// Line and Column are 1-based.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, character column
	Start  int // byte index into input (0-based)
}

// Span represents a range in the source: [Start, End).
type Span struct {
	// Byte offsets into the original input slice.
	// End is exclusive: input[Start:End] is the word.
	Start int
	End   int

	// 1-based line and column of the *start* of the span.
	Line   int
	Column int
}

// Text is a helper to return the original text of the span.
func (s Span) Text(input []byte) []byte {
	return input[s.Start:s.End]
}

// spanFromToken creates a Span that covers a single token.
func spanFromToken(tok *Token) Span {
	return Span{
		Start:  tok.Position.Start,
		End:    tok.Position.Start + len(tok.Original),
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
	}
}
