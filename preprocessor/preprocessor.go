/*
File    : cluefront/preprocessor/preprocessor.go
Package : preprocessor

The directive interpreter itself: Preprocess expands @ifos/@ifdef/@ifcmp,
@define/@undef/@error/@warning/@print directives and $name/$N substitutions over
already-analyzed source, emitting text the scanner package can tokenize.

A few deliberate design choices worth calling out:

 1. $N indexing: positional pseudo-variables index directly, 1-based,
    into a right-most-first list of assignment targets — for
    "a, b = 1, 2", $1 resolves to "b" and $2 to "a" — built by
    readPseudos (buffer.go).
 2. Bare '=' detection (findAssignmentBoundary in buffer.go) peeks at
    the character before a candidate '=' instead of unconditionally
    consuming it, so tightly-written assignments ("a=1", no spaces)
    still resolve correctly.
 3. The embedded string-literal branch here keeps the character that
    follows a backslash, since dropping it would silently corrupt any
    string value carried through from a quoted directive argument.
 4. Cache invalidation on a bare '=' is deferred until the next newline
    instead of applying the instant the '=' is seen, so "$1 = $2" still
    shares one back-scan across both references, while a genuinely new
    line still forces a fresh scan.
*/
package preprocessor

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/juju/loggo"
)

// logger is the TRACE/DEBUG channel for directive-recursion diagnostics,
// independent of the diagnostic text written to standard output
// (errors, warnings, and @print output are unaffected by this logger's
// configured level). It is silent unless a caller raises loggo's root
// or "preprocessor" level, e.g. with
// loggo.GetLogger("preprocessor").SetLogLevel(loggo.TRACE).
var logger = loggo.GetLogger("preprocessor")

// ppState holds the pieces of directive interpretation that stay fixed
// across an entire preprocessing run (filename for diagnostics, the
// canonicalized host OS name @ifos compares against), as opposed to
// values/pseudos, which are scoped per preprocessCode invocation.
type ppState struct {
	filename  string
	currentOS string
	reporter  DefinitionReporter
}

// report calls pp.reporter if the caller installed one, as a no-op
// otherwise.
func (pp *ppState) report(kind DefinitionKind, name, value string, line int) {
	if pp.reporter != nil {
		pp.reporter(kind, name, value, line)
	}
}

// Preprocess expands directives and substitutions in source, using env
// for @define/@undef/$name state and currentOS (already alias-resolved,
// e.g. "macos" rather than Go's "darwin") for @ifos. It is the single
// external entry point; every other function in this package recurses
// from here with a deliberately fresh, empty values map (see
// readArg/keepBlock) so @define'd names stay scoped to the block or
// argument that introduced them.
func Preprocess(source, filename, currentOS string, env *Environment) (string, error) {
	pp := &ppState{filename: filename, currentOS: strings.ToLower(currentOS), reporter: env.Reporter}
	line := 1
	result, _, err := preprocessCode(pp, source, nil, env.Values, &line)
	if err != nil {
		return "", err
	}
	return result, nil
}

func lookupEnvValue(name string) (string, bool) {
	return os.LookupEnv(name)
}

// preprocessCode is the recursive core. pseudos, when nil, is computed
// lazily the first time a positional $N is seen and cached until a bare
// '=' invalidates it; values holds @define'd names visible only within
// this call. It returns the expanded text and the outcome of the last
// directive of any kind evaluated at this nesting level, which a
// following @else at the SAME level needs.
func preprocessCode(pp *ppState, raw string, pseudos []string, values map[string]string, line *int) (string, bool, error) {
	p := &parser{filename: pp.filename, runes: []rune(raw), line: line}
	buf := &outBuf{}
	prev := true
	pseudoCache := pseudos
	// invalidatePending defers clearing pseudoCache until the next
	// newline rather than the instant a bare '=' is seen, so chained
	// references on one logical line ("$1 = $2") still share the back-
	// scan that produced $1, while a genuinely new line still gets a
	// fresh scan.
	invalidatePending := false

	for {
		c, ok := p.next()
		if !ok {
			break
		}

		switch {
		case c == '\n':
			buf.writeRune('\n')
			*line++
			if invalidatePending {
				pseudoCache = nil
				invalidatePending = false
			}

		case c == '@':
			directive := readWord(p)
			result, err := runDirective(pp, p, buf, values, directive, prev)
			if err != nil {
				return "", false, err
			}
			prev = result

		case c == '$':
			name := readWith(p, isPseudoIdentChar)
			if name == "" {
				name = "1"
			}
			if idx, convErr := strconv.Atoi(name); convErr == nil {
				if pseudoCache == nil {
					pseudoCache = readPseudos(newBackScanner(buf.runes))
				}
				val := "nil"
				if idx >= 1 && idx <= len(pseudoCache) {
					val = pseudoCache[idx-1]
				}
				pp.report(DefinitionPseudo, "$"+name, val, *line)
				buf.writeString(val)
			} else {
				val, found := values[name]
				if !found {
					if ev, eok := lookupEnvValue(name); eok {
						val = ev
					} else {
						return "", false, diagError(pp.filename, *line, fmt.Sprintf("Value '%s' not found", name))
					}
				}
				buf.writeString(val)
			}

		case c == '\'' || c == '"' || c == '`':
			buf.writeRune(c)
			for {
				sc, sok := p.next()
				if !sok {
					break
				}
				if sc == '\n' {
					*line++
				}
				buf.writeRune(sc)
				if sc == '\\' {
					if nc, nok := p.next(); nok {
						if nc == '\n' {
							*line++
						}
						buf.writeRune(nc)
					}
					continue
				}
				if sc == c {
					break
				}
			}

		case c == '/':
			nc, nok := p.peek()
			switch {
			case nok && nc == '/':
				p.next()
				for {
					c2, ok2 := p.peek()
					if !ok2 || c2 == '\n' {
						break
					}
					p.next()
				}
			case nok && nc == '*':
				p.next()
				newlines := 0
				closed := false
				for {
					cc, ok2 := p.next()
					if !ok2 {
						break
					}
					if cc == '\n' {
						newlines++
						continue
					}
					if cc == '*' {
						if nc2, ok3 := p.peek(); ok3 && nc2 == '/' {
							p.next()
							closed = true
						}
					}
					if closed {
						break
					}
				}
				if !closed {
					return "", false, diagError(pp.filename, *line, "Unterminated comment")
				}
				for i := 0; i < newlines; i++ {
					buf.writeRune('\n')
				}
				*line += newlines
			default:
				buf.writeRune('/')
			}

		case c == '\\':
			nc, nok := p.peek()
			if nok && (nc == '@' || nc == '$') {
				p.next()
				buf.writeRune(nc)
			} else {
				buf.writeRune('\\')
			}

		case c == '=':
			buf.writeRune('=')
			if nc, nok := p.peek(); nok {
				if nc == '=' || nc == '>' {
					p.next()
					buf.writeRune(nc)
				} else {
					invalidatePending = true
				}
			}

		case c == '!' || c == '>' || c == '<':
			buf.writeRune(c)
			if nc, nok := p.peek(); nok && nc == '=' {
				p.next()
				buf.writeRune(nc)
			}

		default:
			buf.writeRune(c)
		}
	}

	return buf.String(), prev, nil
}

// runDirective dispatches a single @directive once its name has been
// read.
func runDirective(pp *ppState, p *parser, buf *outBuf, values map[string]string, directive string, prev bool) (bool, error) {
	switch directive {
	case "ifos":
		target, err := assertWord(p, buf)
		if err != nil {
			return false, err
		}
		return keepBlock(pp, p, buf, pp.currentOS == strings.ToLower(target))

	case "ifdef":
		name, err := assertWord(p, buf)
		if err != nil {
			return false, err
		}
		_, inValues := values[name]
		_, inEnv := lookupEnvValue(name)
		return keepBlock(pp, p, buf, inValues || inEnv)

	case "ifcmp":
		arg1, _, err := readArg(pp, p, buf)
		if err != nil {
			return false, err
		}
		cond, err := assertWord(p, buf)
		if err != nil {
			return false, err
		}
		arg2, _, err := readArg(pp, p, buf)
		if err != nil {
			return false, err
		}
		var result bool
		switch cond {
		case "==":
			result = arg1 == arg2
		case "!=":
			result = arg1 != arg2
		default:
			return false, diagExpected(pp.filename, *p.line, "==", cond)
		}
		return keepBlock(pp, p, buf, result)

	case "if":
		return false, diagError(pp.filename, *p.line, "'@if' is not implemented")

	case "else":
		return keepBlock(pp, p, buf, !prev)

	case "define":
		name, err := assertName(p, buf)
		if err != nil {
			return false, err
		}
		value, _, err := readArg(pp, p, buf)
		if err != nil {
			return false, err
		}
		values[name] = value
		pp.report(DefinitionMacro, name, value, *p.line)
		return true, nil

	case "undef":
		name, err := assertName(p, buf)
		if err != nil {
			return false, err
		}
		_, existed := values[name]
		delete(values, name)
		return existed, nil

	case "error":
		msg, _, err := readArg(pp, p, buf)
		if err != nil {
			return false, err
		}
		return false, diagError(pp.filename, *p.line, msg)

	case "warning":
		msg, result, err := readArg(pp, p, buf)
		if err != nil {
			return false, err
		}
		fmt.Printf("Warning: %q\n", msg)
		return result, nil

	case "print":
		msg, result, err := readArg(pp, p, buf)
		if err != nil {
			return false, err
		}
		fmt.Println(msg)
		return result, nil

	case "execute", "eval", "include", "macro":
		return false, diagError(pp.filename, *p.line, fmt.Sprintf("'@%s' is not implemented", directive))

	case "":
		return false, diagError(pp.filename, *p.line, "Expected directive name")

	default:
		return false, diagError(pp.filename, *p.line, fmt.Sprintf("Unknown directive '%s'", directive))
	}
}

// parser is a one-directional, unbuffered cursor over the rune slice
// being preprocessed.
type parser struct {
	filename string
	runes    []rune
	pos      int
	line     *int
}

func (p *parser) peek() (rune, bool) {
	if p.pos >= len(p.runes) {
		return 0, false
	}
	return p.runes[p.pos], true
}

func (p *parser) next() (rune, bool) {
	c, ok := p.peek()
	if ok {
		p.pos++
	}
	return c, ok
}

func readWith(p *parser, pred func(rune) bool) string {
	var out []rune
	for {
		c, ok := p.peek()
		if !ok || !pred(c) {
			break
		}
		p.next()
		out = append(out, c)
	}
	return string(out)
}

func readWord(p *parser) string {
	return readWith(p, func(c rune) bool { return !unicode.IsSpace(c) })
}

// skipWhitespace consumes a run of whitespace, writing any newline it
// passes over straight to buf and counting it immediately rather than
// deferring the count to a catch-up computation at the next literal
// '\n'.
func skipWhitespace(p *parser, buf *outBuf) {
	for {
		c, ok := p.peek()
		if !ok || !unicode.IsSpace(c) {
			return
		}
		p.next()
		if c == '\n' {
			buf.writeRune('\n')
			*p.line++
		}
	}
}

func assertWord(p *parser, buf *outBuf) (string, error) {
	skipWhitespace(p, buf)
	word := readWord(p)
	if word == "" {
		return "", diagError(p.filename, *p.line, "Word expected")
	}
	return word, nil
}

func assertName(p *parser, buf *outBuf) (string, error) {
	name, err := assertWord(p, buf)
	if err != nil {
		return "", err
	}
	if strings.ContainsRune(name, '=') {
		return "", diagError(p.filename, *p.line, "The value's name cannot contain '='")
	}
	return name, nil
}

func readUntil(p *parser, end rune) (string, error) {
	arg := readWith(p, func(c rune) bool { return c != end })
	if _, ok := p.next(); !ok {
		return "", diagExpectedBefore(p.filename, *p.line, string(end), "<end>")
	}
	return arg, nil
}

func reach(p *parser, buf *outBuf, end rune) error {
	skipWhitespace(p, buf)
	c, ok := p.next()
	if !ok {
		return diagExpectedBefore(p.filename, *p.line, string(end), "<end>")
	}
	if c != end {
		return diagExpected(p.filename, *p.line, string(end), string(c))
	}
	return nil
}

// readArg reads a "..."-quoted directive argument and recursively
// preprocesses its contents with a deliberately fresh, empty values
// map — a quoted argument cannot see $names @define'd outside it.
func readArg(pp *ppState, p *parser, buf *outBuf) (string, bool, error) {
	if err := reach(p, buf, '"'); err != nil {
		return "", false, err
	}
	raw, err := readUntil(p, '"')
	if err != nil {
		return "", false, err
	}
	raw = stripCRLFTabPP(raw)
	line := *p.line
	result, cond, err := preprocessCode(pp, raw, nil, map[string]string{}, &line)
	if err != nil {
		return "", false, err
	}
	return result, cond, nil
}

func stripCRLFTabPP(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t':
			return -1
		}
		return r
	}, s)
}

// readBlock reads a brace-balanced "{ ... }" body, returning its raw
// interior text without the enclosing braces.
func readBlock(p *parser, buf *outBuf) (string, error) {
	if err := reach(p, buf, '{'); err != nil {
		return "", err
	}
	var block []rune
	depth := 1
	for {
		c, ok := p.next()
		if !ok {
			return "", diagExpectedBefore(p.filename, *p.line, "}", "<end>")
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return string(block), nil
			}
		}
		block = append(block, c)
	}
}

// keepBlock reads a directive's "{ ... }" body and, if cond is true,
// recursively preprocesses and keeps it (again with a fresh values
// map); otherwise it discards the body but still pads the output with
// one blank line per line the body occupied, so line numbers after the
// block stay accurate even though the block itself produced nothing.
func keepBlock(pp *ppState, p *parser, buf *outBuf, cond bool) (bool, error) {
	block, err := readBlock(p, buf)
	if err != nil {
		return false, err
	}
	if cond {
		logger.Tracef("recursing into block at %s:%d", pp.filename, *p.line)
		result, _, err := preprocessCode(pp, block, nil, map[string]string{}, p.line)
		if err != nil {
			return false, err
		}
		buf.writeString(result)
	} else {
		logger.Tracef("discarding false block at %s:%d", pp.filename, *p.line)
		for _, r := range block {
			if r == '\n' {
				buf.writeRune('\n')
				*p.line++
			}
		}
	}
	return cond, nil
}
