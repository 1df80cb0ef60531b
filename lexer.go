// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// HeaderLiteral is the mandatory first word of every program.
// It is matched without regard to case.
const HeaderLiteral = ".IPPcode21"

// Lexer invariants
//
// The lexer classifies whole words; it never splits or joins them.
// Every word becomes exactly one token and the token list always ends
// with exactly one EndOfInput token.
//
// Classification is a priority list, first match wins:
//
//   1. the header literal (any case)           Header
//   2. the line break marker                   NewlineMarker
//   3. letters and digits only                 Type, Instruction or Label
//   4. identifier                              Label
//   5. (GF|LF|TF)@identifier                   Variable
//   6. nil@nil                                 NilConst
//   7. bool@true, bool@false                   BoolConst
//   8. int@[+-]digits                          IntConst
//   9. string@ with \ddd escapes               StringConst
//
// A word that matches nothing is a lexical error. The header check on
// the first word runs before any other word is classified, so a bad
// header is reported even when later words are also invalid.

type Lexer struct {
	name string // name of the input source

	// logging
	ctx        context.Context
	logger     *slog.Logger
	tokenCount int
}

func NewLexer(ctx context.Context, name string, logger *slog.Logger) *Lexer {
	return &Lexer{
		name:   name,
		ctx:    ctx,
		logger: logger,
	}
}

// Lex classifies the words with a silent lexer.
func Lex(words []Word) ([]*Token, error) {
	return NewLexer(context.Background(), "", nil).Lex(words)
}

// Lex returns the token list for the words, terminated by EndOfInput.
// It stops at the first word that cannot be classified.
func (l *Lexer) Lex(words []Word) ([]*Token, error) {
	if len(words) == 0 {
		l.error(Position{Line: 1, Column: 1}, "missing header")
		return nil, &HeaderError{Position: Position{Line: 1, Column: 1}}
	} else if !strings.EqualFold(words[0].Text, HeaderLiteral) {
		l.error(words[0].Position, "expected header: found %q", words[0].Text)
		return nil, &HeaderError{Position: words[0].Position, Found: words[0].Text}
	}

	tokens := make([]*Token, 0, len(words)+1)
	for _, w := range words {
		tok, ok := classify(w)
		if !ok {
			l.error(w.Position, "invalid word %q", w.Text)
			return nil, &LexicalError{Position: w.Position, Word: w.Text}
		}
		tokens = append(tokens, tok)
	}

	// end of input sits just past the last word
	last := words[len(words)-1]
	end := Position{Line: last.Line, Column: last.Column + utf8.RuneCountInString(last.Text), Start: last.Start + len(last.Text)}
	if last.Newline {
		end = Position{Line: last.Line + 1, Column: 1, Start: last.Start + 1}
	}
	tokens = append(tokens, &Token{Position: end, Kind: EndOfInput})

	l.tokenCount = len(tokens)
	l.debug("lexed %d words into %d tokens", len(words), l.tokenCount)

	return tokens, nil
}

// classify returns the token for a single word.
// It returns false if the word matches no pattern.
func classify(w Word) (*Token, bool) {
	text := w.Text
	tok := &Token{Position: w.Position, Original: text}

	switch {
	case strings.EqualFold(text, HeaderLiteral):
		tok.Kind, tok.Value, tok.Display = Header, HeaderLiteral, text
	case w.Newline:
		tok.Kind, tok.Value, tok.Display = NewlineMarker, NewlineMarkerText, NewlineMarkerText
	case isAlnumWord(text):
		if typeKeywords[text] {
			tok.Kind, tok.Value, tok.Display = Type, text, text
		} else if upper := strings.ToUpper(text); isOpcode(upper) {
			tok.Kind, tok.Value, tok.Display = Instruction, upper, upper
		} else {
			tok.Kind, tok.Value, tok.Display = Label, text, text
		}
	case isIdentifier(text):
		tok.Kind, tok.Value, tok.Display = Label, text, Escape(text)
	case isVariable(text):
		tok.Kind, tok.Value, tok.Display = Variable, text, Escape(text)
	case text == "nil@nil":
		tok.Kind, tok.Value, tok.Display = NilConst, "nil", "nil"
	case text == "bool@true" || text == "bool@false":
		value := strings.TrimPrefix(text, "bool@")
		tok.Kind, tok.Value, tok.Display = BoolConst, value, value
	case isIntConst(text):
		value := strings.TrimPrefix(text, "int@")
		tok.Kind, tok.Value, tok.Display = IntConst, value, value
	case isStringConst(text):
		value := strings.TrimPrefix(text, "string@")
		tok.Kind, tok.Value, tok.Display = StringConst, value, Escape(value)
	default:
		return nil, false
	}

	return tok, true
}

func isOpcode(upper string) bool {
	_, ok := signatures[upper]
	return ok
}

// isAlnumWord reports whether s is a non-empty run of ASCII letters and digits.
func isAlnumWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isalnum(s[i]) {
			return false
		}
	}
	return true
}

// isIdentifier reports whether s is a label or variable name.
func isIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentRune(s[i]) {
			return false
		}
	}
	return true
}

// isVariable reports whether s is a frame-qualified variable.
func isVariable(s string) bool {
	for _, frame := range []string{"GF@", "LF@", "TF@"} {
		if name, ok := strings.CutPrefix(s, frame); ok {
			return isIdentifier(name)
		}
	}
	return false
}

func isIntConst(s string) bool {
	digits, ok := strings.CutPrefix(s, "int@")
	if !ok {
		return false
	}
	if digits != "" && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if !isdigit(digits[i]) {
			return false
		}
	}
	return true
}

// isStringConst reports whether s is a string constant. The payload may
// be empty; a backslash must be followed by exactly three digits.
// Words never contain whitespace or "#" since the preprocessor splits
// and strips on them.
func isStringConst(s string) bool {
	payload, ok := strings.CutPrefix(s, "string@")
	if !ok {
		return false
	}
	return badEscape(payload) < 0
}

// badEscape returns the index of the first backslash in s that does not
// start a three digit escape sequence, or -1 if there is none.
func badEscape(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+3 >= len(s) || !isdigit(s[i+1]) || !isdigit(s[i+2]) || !isdigit(s[i+3]) {
				return i
			}
			i += 3
		case '#':
			return i
		}
		if isspace(s[i]) || iseol(s[i]) {
			return i
		}
	}
	return -1
}

// lexicalNotes returns hints for an invalid word.
func lexicalNotes(word string) []string {
	var notes []string
	switch {
	case strings.HasPrefix(word, "string@"):
		if i := badEscape(strings.TrimPrefix(word, "string@")); i >= 0 {
			notes = append(notes, fmt.Sprintf("column %d: escape sequences are a backslash followed by three decimal digits", len("string@")+i+1))
		}
	case strings.HasPrefix(word, "int@"):
		notes = append(notes, "integer constants are an optional sign followed by decimal digits")
	case strings.HasPrefix(word, "bool@"):
		notes = append(notes, "boolean constants are bool@true or bool@false")
	case strings.HasPrefix(word, "nil@"):
		notes = append(notes, "the only nil constant is nil@nil")
	case strings.Contains(word, "@"):
		notes = append(notes, "variables are GF@, LF@ or TF@ followed by a name")
	}
	return notes
}

func (l *Lexer) debug(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf("%s: %s", l.name, fmt.Sprintf(format, args...)))
}

func (l *Lexer) error(pos Position, format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Error(fmt.Sprintf("%s:%d:%d: %s", l.name, pos.Line, pos.Column, fmt.Sprintf(format, args...)))
}
