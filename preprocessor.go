// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

// NewlineMarkerText is the text of the word that stands in for a run of line breaks.
const NewlineMarkerText = "@newline@"

// Word is a run of non-space characters from the source, or a marker
// for a run of line breaks.
type Word struct {
	Position
	Text    string
	Newline bool // true for the line break marker
}

// Preprocess splits the input into words.
//
// Comments (from "#" to end of line) are removed, leading blank lines are
// dropped, and every run of line breaks (including blank or comment-only
// lines between them) collapses into a single newline marker word.
// Words are separated by runs of ASCII whitespace.
//
// Preprocess never fails; every input produces a (possibly empty) list.
func Preprocess(input []byte) []Word {
	var words []Word
	var pending *Word // line break marker waiting for the next word

	line, column := 1, 1
	for pos := 0; pos < len(input); {
		ch := input[pos]
		switch {
		case ch == '#':
			// comment runs to end of line; the line break itself is kept
			for pos < len(input) && !iseol(input[pos]) {
				pos, column = pos+1, column+runeWidth(input[pos])
			}
		case iseol(ch):
			if pending == nil && len(words) != 0 {
				pending = &Word{
					Position: Position{Line: line, Column: column, Start: pos},
					Text:     NewlineMarkerText,
					Newline:  true,
				}
			}
			if ch == CR && pos+1 < len(input) && input[pos+1] == LF {
				pos++
			}
			pos, line, column = pos+1, line+1, 1
		case isspace(ch):
			pos, column = pos+1, column+1
		default:
			if pending != nil {
				words = append(words, *pending)
				pending = nil
			}
			word := Word{Position: Position{Line: line, Column: column, Start: pos}}
			for pos < len(input) && !isspace(input[pos]) && !iseol(input[pos]) && input[pos] != '#' {
				pos, column = pos+1, column+runeWidth(input[pos])
			}
			word.Text = string(input[word.Start:pos])
			words = append(words, word)
		}
	}
	if pending != nil {
		words = append(words, *pending)
	}

	return words
}

// runeWidth returns 1 for the first byte of a UTF-8 sequence and 0 for
// continuation bytes, so columns count characters rather than bytes.
func runeWidth(ch byte) int {
	if ch&0xC0 == 0x80 {
		return 0
	}
	return 1
}
