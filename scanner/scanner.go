/*
File    : cluefront/scanner/scanner.go
Package : scanner

Package scanner tokenizes preprocessed Clue source into a stream of
token.Token values, terminated by an EOF token. It is keyword-aware (it
enforces the Lua-keyword-reservation policy) and multi-character-aware
(compound assignment, comparison, and safe-navigation operators) via a
nested symbol dispatch table built once and shared read-only across
every Scan call.

Rather than stopping on the first bad byte, this scanner collects every
diagnostic it finds and keeps going: a malformed number in line 3
should not hide an unexpected character in line 40. It reports a
single aggregate error at the end covering every problem it saw.
*/
package scanner

import (
	"fmt"
	"strings"

	"github.com/clueshift/cluefront/token"
)

// state is the scanner's mutable cursor over the rune slice being
// tokenized. It tracks current/start indices rather than a single
// character, so lexeme extraction and bounded look-back are just slice
// operations.
type state struct {
	filename string
	code     []rune
	size     int

	start   int
	current int
	line    int

	last   token.Kind
	tokens []token.Token

	errors  []string
	errored bool
}

func newState(code, filename string) *state {
	runes := []rune(code)
	return &state{
		filename: filename,
		code:     runes,
		size:     len(runes),
		line:     1,
		last:     token.EOF,
	}
}

func (s *state) ended() bool { return s.current >= s.size }

func (s *state) at(pos int) rune {
	if pos < 0 || pos >= s.size {
		return 0
	}
	return s.code[pos]
}

func (s *state) advance() rune {
	c := s.at(s.current)
	s.current++
	return c
}

func (s *state) compare(expected rune) bool {
	if s.ended() || s.at(s.current) != expected {
		return false
	}
	s.current++
	return true
}

func (s *state) peek(offset int) rune { return s.at(s.current + offset) }

func (s *state) lookBack(offset int) rune { return s.at(s.current - offset - 1) }

func (s *state) substr(start, end int) string {
	if end > s.size {
		end = s.size
	}
	if start >= end {
		return ""
	}
	return string(s.code[start:end])
}

func (s *state) addLiteralToken(kind token.Kind, literal string) {
	s.tokens = append(s.tokens, token.NewAt(kind, literal, s.line))
}

func (s *state) addToken(kind token.Kind) {
	lexeme := s.substr(s.start, s.current)
	s.last = kind
	s.tokens = append(s.tokens, token.NewAt(kind, lexeme, s.line))
}

// warn records a collected diagnostic and keeps scanning rather than
// aborting, so one bad token doesn't hide later ones.
func (s *state) warn(message string) {
	s.errors = append(s.errors, fmt.Sprintf(
		"Error in file %q at line %d!\nError: %q\n", s.filename, s.line, message,
	))
	s.errored = true
}

// reserved records a diagnostic for a Lua-reserved keyword used as an
// identifier and degrades the token to IDENTIFIER so later stages can
// continue.
func (s *state) reserved(keyword, msg string) token.Kind {
	s.warn(fmt.Sprintf(
		"'%s' is a reserved keyword in Lua and it cannot be used as a variable, %s",
		keyword, msg,
	))
	return token.IDENTIFIER
}

// scanChar matches c against symbols, recursing through SYMBOLS(next,
// default) branches, invoking FUNCTION branches, or emitting the JUST
// token — a three-way dispatch over the symbol table. It returns false
// when c has no entry at all, letting the caller fall through to
// digit/alpha/whitespace handling.
func (s *state) scanChar(table symbolTable, c rune) bool {
	if c < 0 || c > 127 {
		return false
	}
	entry, ok := table[byte(c)]
	if !ok {
		return false
	}
	switch entry.kind {
	case symJust:
		s.addToken(entry.just)
	case symNested:
		next := s.advance()
		if !s.scanChar(*entry.nested, next) {
			s.current--
			s.addToken(entry.def)
		}
	case symFunc:
		entry.fn(s)
	}
	return true
}

// Scan tokenizes code (already analyzed and preprocessed) into a token
// stream terminated by EOF. filename is used only for diagnostics.
func Scan(code, filename string) ([]token.Token, error) {
	symbols, keywords := tables()
	s := newState(code, filename)

	for !s.ended() {
		s.start = s.current
		c := s.advance()

		if s.scanChar(symbols, c) {
			continue
		}

		switch {
		case isSpace(c):
			// whitespace other than '\n' (which has its own symbol-table
			// function entry) is simply skipped.
		case isDigit(c):
			s.scanNumber(c)
		case isAlpha(c) || c == '_':
			s.scanIdentifier(keywords)
		default:
			s.warn(fmt.Sprintf("Unexpected character '%c'", c))
		}
	}

	if s.errored {
		for _, e := range s.errors {
			fmt.Print(e)
		}
		return nil, fmt.Errorf("Cannot continue until the above errors are fixed")
	}

	s.addLiteralToken(token.EOF, "<end>")
	return s.tokens, nil
}

func (s *state) scanIdentifier(keywords map[string]keywordEntry) {
	ident := s.readIdentifier()
	kind := token.IDENTIFIER

	if entry, ok := keywords[ident]; ok {
		switch {
		case fieldPosition(s.last):
			kind = token.IDENTIFIER
		case entry.kind == kwReserved:
			kind = s.reserved(ident, entry.msg)
		case entry.kind == kwErrorMsg:
			s.warn(entry.msg)
			kind = token.IDENTIFIER
		default: // kwJust, kwTarget: both carry a concrete token kind
			kind = entry.tok
		}
	}
	s.addToken(kind)
}

// fieldPosition reports whether an identifier right after '.', '?.',
// '::', or '?::' should always be treated as a field/member name, never
// a keyword, even if its text collides with one.
func fieldPosition(last token.Kind) bool {
	switch last {
	case token.DOT, token.SAFEDOT, token.DOUBLE_COLON, token.SAFE_DOUBLE_COLON:
		return true
	default:
		return false
	}
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBinDigit(c rune) bool { return c == '0' || c == '1' }

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c rune) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}

// Dump renders a token slice one token per line, for debugging and for
// the cmd/clue driver.
func Dump(tokens []token.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		fmt.Fprintf(&b, "%s\n", t)
	}
	return b.String()
}
