/*
File    : cluefront/preprocessor/buffer.go
Package : preprocessor

The growable output buffer each preprocessCode invocation builds into,
plus the backward pseudo-variable scanner: a reverse scan over the text
already emitted in the current call, used to resolve $N references
against whatever was written immediately before them.

The scanner caches its parsed pseudo-target list and invalidates that
cache whenever a bare '=' is emitted (see preprocessCode in
preprocessor.go), since an '=' marks the start of a new assignment
whose left-hand targets any later $N in the same call should resolve
against.
*/
package preprocessor

// outBuf is the per-call output accumulator. A []rune gives us cheap
// backward indexing for the pseudo scanner without a second copy of
// the text.
type outBuf struct {
	runes []rune
}

func (b *outBuf) writeRune(r rune) { b.runes = append(b.runes, r) }

func (b *outBuf) writeString(s string) { b.runes = append(b.runes, []rune(s)...) }

func (b *outBuf) String() string { return string(b.runes) }

func (b *outBuf) len() int { return len(b.runes) }

// backScanner walks a rune slice from its end towards its start,
// mirroring the one-directional consume-only semantics of the Rust
// Peekable<Rev<Iter<char>>> the original pseudo scanner is built on.
type backScanner struct {
	runes []rune
	pos   int
}

func newBackScanner(runes []rune) *backScanner {
	return &backScanner{runes: runes, pos: len(runes)}
}

func (b *backScanner) next() (rune, bool) {
	if b.pos <= 0 {
		return 0, false
	}
	b.pos--
	return b.runes[b.pos], true
}

func (b *backScanner) peek() (rune, bool) {
	if b.pos <= 0 {
		return 0, false
	}
	return b.runes[b.pos-1], true
}

func isPreprocWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

func skipWhitespaceBackward(b *backScanner) {
	for {
		c, ok := b.peek()
		if !ok || !isPreprocWhitespace(c) {
			return
		}
		b.next()
	}
}

func isPseudoIdentChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_'
}

// findAssignmentBoundary scans backward looking for a bare '=' — one
// that is not part of '==' or '!='. It leaves the scanner positioned
// immediately after the char preceding that '=', ready for
// skipWhitespaceBackward + name reading. Unlike the Rust original,
// this peeks rather than unconditionally consumes the character before
// '=', so a tight "a=1" assignment with no surrounding whitespace still
// resolves correctly.
func findAssignmentBoundary(b *backScanner) bool {
	for {
		c, ok := b.peek()
		if !ok {
			return false
		}
		if c != '=' {
			b.next()
			continue
		}
		b.next() // consume '='
		before, ok := b.peek()
		if ok && (before == '!' || before == '=') {
			b.next() // part of != or ==, keep searching further back
			continue
		}
		return true
	}
}

// readPseudos resolves the assignment-target list immediately before
// the text already scanned, rightmost target first. "a, b = 1, 2"
// yields ["b", "a"] — $1 addresses the rightmost target, $2 the next,
// and so on.
func readPseudos(b *backScanner) []string {
	if !findAssignmentBoundary(b) {
		return nil
	}
	skipWhitespaceBackward(b)

	var names []string
	for {
		var nameRunes []rune
		for {
			c, ok := b.peek()
			if !ok || !isPseudoIdentChar(c) {
				break
			}
			b.next()
			nameRunes = append([]rune{c}, nameRunes...)
		}
		names = append(names, string(nameRunes))
		skipWhitespaceBackward(b)
		c, ok := b.next()
		if !ok || c != ',' {
			break
		}
		skipWhitespaceBackward(b)
	}
	return names
}
