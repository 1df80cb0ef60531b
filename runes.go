// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package ippc

const (
	// CR and LF are control characters, respectively coded 0x0D (13 decimal) and 0x0A (10 decimal).
	// Windows uses CR + LF, Unix/Mac uses LF, Classic Mac uses CR.
	// All three are accepted as line breaks.

	// CR is 0x0D or '\r'
	CR byte = 13

	// LF is 0x0A or '\n'
	LF byte = 10
)

func init() {
	for _, ch := range []byte{' ', '\t', '\v', '\f'} {
		spaces[ch] = true
	}
	for ch := 'a'; ch <= 'z'; ch++ {
		letters[ch] = true
	}
	for ch := 'A'; ch <= 'Z'; ch++ {
		letters[ch] = true
	}
	for ch := '0'; ch <= '9'; ch++ {
		digits[ch] = true
	}
	for _, ch := range []byte{'_', '-', '$', '&', '%', '*', '!', '?'} {
		specials[ch] = true
	}
}

var (
	spaces   = [256]bool{} // horizontal whitespace, not including end of line
	letters  = [256]bool{}
	digits   = [256]bool{}
	specials = [256]bool{} // punctuation allowed in identifiers
)

// isspace reports whether ch is horizontal ASCII whitespace.
// Bytes of multi-byte UTF-8 sequences are never spaces.
func isspace(ch byte) bool {
	return spaces[ch]
}

func iseol(ch byte) bool {
	return ch == LF || ch == CR
}

func isalnum(ch byte) bool {
	return letters[ch] || digits[ch]
}

func isdigit(ch byte) bool {
	return digits[ch]
}

// isIdentStart reports whether ch may start an identifier.
func isIdentStart(ch byte) bool {
	return letters[ch] || specials[ch]
}

// isIdentRune reports whether ch may follow the first character of an identifier.
func isIdentRune(ch byte) bool {
	return letters[ch] || digits[ch] || specials[ch]
}
