/*
File    : cluefront/scanner/tables.go
Package : scanner

This file builds the two process-wide read-only singletons the scanner
depends on: the symbol dispatch table and the keyword table. Both are
built once, lazily, behind sync.Once, and never mutated after that —
multiple Scan calls (even concurrent ones, one per goroutine scanning
independent sources) share the same tables safely.
*/
package scanner

import (
	"sync"

	"github.com/clueshift/cluefront/token"
)

// symbolEntry is a tagged variant: exactly one of the three dispatch
// cases — a plain token, a nested lookahead table, or a function — is
// active, distinguished by kind.
type symbolEntry struct {
	kind   symbolEntryKind
	just   token.Kind         // symJust
	nested *symbolTable       // symNested
	def    token.Kind         // symNested: emitted when lookahead misses
	fn     func(s *state)     // symFunc
}

type symbolEntryKind int

const (
	symJust symbolEntryKind = iota
	symNested
	symFunc
)

// symbolTable is sparse and keyed by the raw byte value of an ASCII
// character; Clue source punctuation never needs more than one byte to
// select a dispatch branch.
type symbolTable map[byte]symbolEntry

func just(k token.Kind) symbolEntry {
	return symbolEntry{kind: symJust, just: k}
}

func nested(next symbolTable, def token.Kind) symbolEntry {
	return symbolEntry{kind: symNested, nested: &next, def: def}
}

func fn(f func(s *state)) symbolEntry {
	return symbolEntry{kind: symFunc, fn: f}
}

// keywordEntry is a tagged variant over a keyword's disposition: a
// plain token, a renamed target-language token, or a reserved word that
// degrades to IDENTIFIER with an attached diagnostic message.
type keywordEntry struct {
	kind keywordEntryKind
	tok  token.Kind
	msg  string
}

type keywordEntryKind int

const (
	kwJust keywordEntryKind = iota
	kwTarget
	kwReserved
	kwErrorMsg
)

var (
	tablesOnce    sync.Once
	symbols       symbolTable
	keywords      map[string]keywordEntry
)

func buildTables() {
	symbols = symbolTable{
		'(': just(token.ROUND_BRACKET_OPEN),
		')': just(token.ROUND_BRACKET_CLOSED),
		'[': just(token.SQUARE_BRACKET_OPEN),
		']': just(token.SQUARE_BRACKET_CLOSED),
		'{': just(token.CURLY_BRACKET_OPEN),
		'}': just(token.CURLY_BRACKET_CLOSED),
		',': just(token.COMMA),
		';': just(token.SEMICOLON),
		'#': just(token.HASHTAG),
		'~': just(token.BIT_NOT),

		'.': nested(symbolTable{
			'.': nested(symbolTable{
				'.': just(token.THREEDOTS),
				'=': just(token.CONCATENATE),
			}, token.TWODOTS),
		}, token.DOT),

		'+': nested(symbolTable{'=': just(token.INCREASE)}, token.PLUS),
		'-': nested(symbolTable{'=': just(token.DECREASE)}, token.MINUS),
		'*': nested(symbolTable{'=': just(token.MULTIPLY)}, token.STAR),
		'^': nested(symbolTable{
			'=': just(token.EXPONENTIATE),
			'^': just(token.BIT_XOR),
		}, token.CARET),
		'/': nested(symbolTable{
			'/': fn((*state).readComment),
			'*': fn((*state).readMultilineComment),
			'=': just(token.DIVIDE),
			'_': just(token.FLOOR_DIVISION),
		}, token.SLASH),
		'%': nested(symbolTable{'=': just(token.MODULATE)}, token.PERCENTUAL),
		'!': nested(symbolTable{'=': just(token.NOT_EQUAL)}, token.NOT),
		'=': nested(symbolTable{
			'=': just(token.EQUAL),
			'>': just(token.ARROW),
		}, token.DEFINE),
		'<': nested(symbolTable{
			'=': just(token.SMALLER_EQUAL),
			'<': just(token.LEFT_SHIFT),
		}, token.SMALLER),
		'>': nested(symbolTable{
			'=': just(token.BIGGER_EQUAL),
			'>': just(token.RIGHT_SHIFT),
		}, token.BIGGER),
		'?': nested(symbolTable{
			'=': fn(func(s *state) { s.warn("'?=' is deprecated and was replaced with '&&='") }),
			'>': just(token.SAFE_EXPRESSION),
			'.': just(token.SAFEDOT),
			':': fn(func(s *state) {
				if s.compare(':') {
					s.addToken(token.SAFE_DOUBLE_COLON)
				} else {
					s.current--
				}
			}),
			'[': just(token.SAFE_SQUARE_BRACKET),
		}, token.QUESTION_MARK),
		'&': nested(symbolTable{'&': just(token.AND)}, token.BIT_AND),
		':': nested(symbolTable{
			':': just(token.DOUBLE_COLON),
			'=': fn(func(s *state) { s.warn("':=' is deprecated and was replaced with '||='") }),
		}, token.COLON),
		'|': nested(symbolTable{'|': just(token.OR)}, token.BIT_OR),

		'\n': fn(func(s *state) { s.line++ }),
		'"':  fn(func(s *state) { s.readString('"') }),
		'\'': fn(func(s *state) { s.readString('\'') }),
		'`':  fn((*state).readRawString),
	}

	keywords = map[string]keywordEntry{
		"and":      {kind: kwReserved, msg: "'and' operators in Clue are made with '&&'"},
		"not":      {kind: kwReserved, msg: "'not' operators in Clue are made with '!'"},
		"or":       {kind: kwReserved, msg: "'or' operators in Clue are made with '||'"},
		"do":       {kind: kwReserved, msg: "'do ... end' blocks in Clue are made like this: '{ ... }'"},
		"end":      {kind: kwReserved, msg: "code blocks in Clue are closed with '}'"},
		"function": {kind: kwReserved, msg: "functions in Clue are defined with the 'fn' keyword"},
		"repeat":   {kind: kwReserved, msg: "'repeat ... until x' loops in Clue are made like this: 'loop { ... } until x'"},
		"then":     {kind: kwReserved, msg: "code blocks in Clue are opened with '{'"},

		"if":     {kind: kwTarget, tok: token.IF},
		"elseif": {kind: kwTarget, tok: token.ELSEIF},
		"else":   {kind: kwTarget, tok: token.ELSE},
		"for":    {kind: kwTarget, tok: token.FOR},
		"in":     {kind: kwTarget, tok: token.IN},
		"while":  {kind: kwTarget, tok: token.WHILE},
		"until":  {kind: kwTarget, tok: token.UNTIL},
		"local":  {kind: kwTarget, tok: token.LOCAL},
		"return": {kind: kwTarget, tok: token.RETURN},
		"true":   {kind: kwTarget, tok: token.TRUE},
		"false":  {kind: kwTarget, tok: token.FALSE},
		"nil":    {kind: kwTarget, tok: token.NIL},
		"break":  {kind: kwTarget, tok: token.BREAK},

		"of":          {kind: kwJust, tok: token.OF},
		"with":        {kind: kwJust, tok: token.WITH},
		"meta":        {kind: kwJust, tok: token.META},
		"global":      {kind: kwJust, tok: token.GLOBAL},
		"fn":          {kind: kwJust, tok: token.FN},
		"method":      {kind: kwJust, tok: token.METHOD},
		"loop":        {kind: kwJust, tok: token.LOOP},
		"static":      {kind: kwJust, tok: token.STATIC},
		"enum":        {kind: kwJust, tok: token.ENUM},
		"continue":    {kind: kwJust, tok: token.CONTINUE},
		"try":         {kind: kwJust, tok: token.TRY},
		"catch":       {kind: kwJust, tok: token.CATCH},
		"match":       {kind: kwJust, tok: token.MATCH},
		"default":     {kind: kwJust, tok: token.DEFAULT},

		"macro":       {kind: kwErrorMsg, msg: "'macro' is deprecated and was replaced with '@define'"},
		"constructor": {kind: kwErrorMsg, msg: "'constructor' is reserved for a future Clue version and cannot be used"},
		"struct":      {kind: kwErrorMsg, msg: "'struct' is reserved for a future Clue version and cannot be used"},
		"extern":      {kind: kwErrorMsg, msg: "'extern' is reserved for a future Clue version and cannot be used"},
	}
}

func tables() (symbolTable, map[string]keywordEntry) {
	tablesOnce.Do(buildTables)
	return symbols, keywords
}
