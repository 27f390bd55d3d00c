/*
File    : cluefront/analyzer/analyzer.go
Package : analyzer

Package analyzer implements the first pipeline stage: byte-to-character
decoding, comment stripping that preserves line counts, and
string-literal pass-through, producing a single normalized source
string the preprocessor can consume one rune at a time.
*/
package analyzer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/juju/errors"
)

// Result is the analyzer's output: the normalized source and the final
// line count reached while producing it.
type Result struct {
	Source string
	Lines  int
}

// reader is a one-rune-lookahead decoder over a byte stream, the Go
// analogue of the Rust PeekableBufReader<R>.
type reader struct {
	br     *bufio.Reader
	peeked *rune
	peekOK bool
}

func newReader(r *bufio.Reader) *reader {
	return &reader{br: r}
}

func (rd *reader) readRune() (rune, bool, error) {
	if rd.peekOK {
		c, ok := *rd.peeked, true
		rd.peekOK = false
		rd.peeked = nil
		return c, ok, nil
	}
	c, size, err := rd.br.ReadRune()
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if c == utf8.RuneError && size == 1 {
		return utf8.RuneError, true, nil
	}
	return c, true, nil
}

func (rd *reader) peekRune() (rune, bool, error) {
	if !rd.peekOK {
		c, ok, err := rd.readRune()
		if err != nil {
			return 0, false, err
		}
		rd.peeked = &c
		rd.peekOK = ok
	}
	if !rd.peekOK {
		return 0, false, nil
	}
	return *rd.peeked, true, nil
}

// AnalyzeFile reads path as UTF-8 bytes and produces the normalized
// source string plus final line count.
func AnalyzeFile(path, filename string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, errors.Annotatef(err, "cannot open %q", path)
	}
	defer f.Close()
	return Analyze(bufio.NewReader(f), filename)
}

// Analyze runs the analyzer over an arbitrary byte source; AnalyzeFile
// is a thin convenience wrapper used by real files, Analyze is what
// tests exercise directly against in-memory strings.
func Analyze(br *bufio.Reader, filename string) (Result, error) {
	rd := newReader(br)
	var out strings.Builder
	line := 1

	for {
		c, ok, err := rd.readRune()
		if err != nil {
			return Result{}, errors.Annotatef(err, "error in file %q at line %d", filename, line)
		}
		if !ok {
			break
		}

		switch {
		case c == '\n':
			out.WriteRune('\n')
			line++

		case c == '\'' || c == '"' || c == '`':
			out.WriteRune(c)
			if err := copyStringLiteral(rd, &out, c, &line); err != nil {
				return Result{}, errors.Annotatef(err, "error in file %q at line %d", filename, line)
			}

		case c == '/':
			next, nok, _ := rd.peekRune()
			switch {
			case nok && next == '/':
				rd.readRune()
				if err := skipLineComment(rd); err != nil {
					return Result{}, err
				}
			case nok && next == '*':
				rd.readRune()
				n, err := skipBlockComment(rd)
				if err != nil {
					return Result{}, errors.Annotatef(err, "error in file %q at line %d", filename, line+n)
				}
				for i := 0; i < n; i++ {
					out.WriteRune('\n')
				}
				line += n
			default:
				out.WriteRune('/')
			}

		case c == utf8.RuneError:
			return Result{}, fmt.Errorf("Error in file %q at line %d!\nInvalid character '�'", filename, line)

		default:
			out.WriteRune(c)
		}
	}

	return Result{Source: out.String(), Lines: line}, nil
}

// copyStringLiteral copies bytes through to the next unescaped
// occurrence of end, UTF-8 decoding each character, counting embedded
// newlines, and refusing to let a backslash-escaped delimiter terminate
// the literal.
func copyStringLiteral(rd *reader, out *strings.Builder, end rune, line *int) error {
	for {
		c, ok, err := rd.readRune()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("Unterminated string")
		}
		if c == '\n' {
			*line++
		}
		out.WriteRune(c)
		if c == '\\' {
			nc, nok, err := rd.readRune()
			if err != nil {
				return err
			}
			if nok {
				if nc == '\n' {
					*line++
				}
				out.WriteRune(nc)
			}
			continue
		}
		if c == end {
			return nil
		}
	}
}

func skipLineComment(rd *reader) error {
	for {
		c, ok, err := rd.peekRune()
		if err != nil {
			return err
		}
		if !ok || c == '\n' {
			return nil
		}
		rd.readRune()
	}
}

// skipBlockComment consumes up to and including the closing "*/" and
// returns the number of newlines it swallowed, which the caller re-emits
// so line numbers downstream stay accurate.
func skipBlockComment(rd *reader) (int, error) {
	newlines := 0
	for {
		c, ok, err := rd.readRune()
		if err != nil {
			return newlines, err
		}
		if !ok {
			return newlines, fmt.Errorf("Unterminated comment")
		}
		if c == '\n' {
			newlines++
			continue
		}
		if c == '*' {
			nc, nok, err := rd.peekRune()
			if err != nil {
				return newlines, err
			}
			if nok && nc == '/' {
				rd.readRune()
				return newlines, nil
			}
		}
	}
}
