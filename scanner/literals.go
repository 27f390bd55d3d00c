/*
File    : cluefront/scanner/literals.go
Package : scanner

Number, string, raw-string, and identifier readers — the scanner
actions the symbol dispatch table's FUNCTION variant hands control to,
plus the ones driven from the main switch in Scan (digit/alpha
dispatch).
*/
package scanner

import (
	"strings"

	"github.com/clueshift/cluefront/token"
)

// scanNumber reads a NUMBER literal starting at the already-consumed
// digit c. Base is decimal unless c == '0' and the next character
// selects a hex or binary prefix.
func (s *state) scanNumber(c rune) {
	if c == '0' {
		switch s.peek(0) {
		case 'x', 'X':
			s.current++
			s.readNumberBody(isHexDigit, false)
			return
		case 'b', 'B':
			s.current++
			s.readNumberBody(isBinDigit, false)
			return
		}
	}
	s.readNumberBody(isDigit, true)
}

// readNumberBody implements the shared digit/fraction/exponent/suffix
// scanning loop; simple is true only for decimal literals, which alone
// accept an exponent. A fractional part is accepted in every base.
func (s *state) readNumberBody(check func(rune) bool, simple bool) {
	start := s.current
	for check(s.peek(0)) {
		s.current++
	}
	if s.peek(0) == '.' && check(s.peek(1)) {
		s.current++
		for check(s.peek(0)) {
			s.current++
		}
	}
	if simple {
		if c := s.peek(0); c == 'e' || c == 'E' {
			nc := s.peek(1)
			if !isDigit(nc) {
				if nc == '-' && isDigit(s.peek(2)) {
					s.current++
				} else {
					s.warn("Malformed number")
				}
			}
			s.current++
			for isDigit(s.peek(0)) {
				s.current++
			}
		}
	} else if s.current == start {
		s.warn("Malformed number")
	}

	// Typed suffix: LL, or UL followed by a mandatory L (forming ULL).
	// Matched case-insensitively, so "uL", "Ul", "ll", etc. all count.
	switch strings.ToUpper(s.substr(s.current, s.current+2)) {
	case "LL":
		s.current += 2
	case "UL":
		if c := s.peek(2); c == 'L' || c == 'l' {
			s.current += 3
		} else {
			s.warn("Malformed number")
		}
	}
	s.addToken(token.NUMBER)
}

// readString scans a quoted string up to the next unescaped occurrence
// of strend, stripping \r, \n, \t from the emitted lexeme while still
// counting embedded newlines toward the line number.
func (s *state) readString(strend rune) {
	startLine := s.line
	for !s.ended() && s.peek(0) != strend {
		switch s.peek(0) {
		case '\\':
			s.current++
		case '\n':
			startLine++
		}
		s.current++
	}
	if s.ended() {
		s.warn("Unterminated string")
		s.line = startLine
		return
	}
	s.current++
	literal := stripCRLFTab(s.substr(s.start, s.current))
	s.addLiteralToken(token.STRING, literal)
	s.line = startLine
}

// readRawString scans a backtick string and transcodes it into the
// target language's long-bracket literal form.
func (s *state) readRawString() {
	startLine := s.line
	for !s.ended() && (s.peek(0) != '`' || s.lookBack(0) == '\\') {
		if s.peek(0) == '\n' {
			startLine++
		}
		s.current++
	}
	if s.ended() {
		s.warn("Unterminated string")
		s.line = startLine
		return
	}
	s.current++
	body := s.substr(s.start+1, s.current-1)

	brackets := ""
	must := strings.HasSuffix(body, "]")
	for must || strings.Contains(body, "]"+brackets+"]") {
		brackets += "="
		must = false
	}
	literal := "[" + brackets + "[" + strings.ReplaceAll(body, "\\`", "`") + "]" + brackets + "]"
	s.addLiteralToken(token.STRING, literal)
	s.line = startLine
}

func stripCRLFTab(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t':
			return -1
		}
		return r
	}, s)
}

// readIdentifier reads the longest run of [A-Za-z0-9_] starting at the
// already-consumed first character.
func (s *state) readIdentifier() string {
	for isIdentChar(s.peek(0)) {
		s.current++
	}
	return s.substr(s.start, s.current)
}

// readComment implements the single-line comment scanner action; it
// consumes through (but not including) the next newline, matching the
// symbol table's '/','/' branch.
func (s *state) readComment() {
	for s.peek(0) != '\n' && !s.ended() {
		s.current++
	}
}

// readMultilineComment implements the block comment scanner action; it
// tracks embedded newlines so line numbers stay accurate afterward.
func (s *state) readMultilineComment() {
	for !(s.ended() || (s.peek(0) == '*' && s.peek(1) == '/')) {
		if s.peek(0) == '\n' {
			s.line++
		}
		s.current++
	}
	if s.ended() {
		s.warn("Unterminated comment")
		return
	}
	s.current += 2
}
