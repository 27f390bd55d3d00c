/*
File    : cluefront/lsp/lsp.go
Package : lsp

Package lsp implements an optional symbol-reporting sink: a narrow
(token, value, location, kind, modifiers) record emitted once per
definition-site the scanner or a future caller identifies, intended for
an external language server to consume.
*/
package lsp

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// SymbolKind classifies a Definition. VARIABLE, FUNCTION, ENUM, and
// CONSTANT reuse the Language Server Protocol's own SymbolKind numbers,
// since those four map directly onto LSP concepts a real client already
// understands. PSEUDO, MACRO, and ARGUMENT have no official LSP
// SymbolKind counterpart (positional back-references, preprocessor
// macros, and directive/function arguments are all Clue-specific), so
// they take otherwise-unused numbers from the same enumeration rather
// than colliding with one of the four above.
type SymbolKind int

const (
	KindVariable SymbolKind = 13 // LSP SymbolKind.Variable
	KindFunction SymbolKind = 12 // LSP SymbolKind.Function
	KindEnum     SymbolKind = 10 // LSP SymbolKind.Enum
	KindConstant SymbolKind = 14 // LSP SymbolKind.Constant
	KindPseudo   SymbolKind = 20 // unused LSP slot (Key); a $N back-reference
	KindMacro    SymbolKind = 24 // unused LSP slot (Event); an @define name
	KindArgument SymbolKind = 26 // unused LSP slot (TypeParameter); a declared parameter
)

// SymbolModifier is a bitmask of storage-class qualifiers attached to a
// Definition.
type SymbolModifier int

const (
	ModNone   SymbolModifier = 0
	ModStatic SymbolModifier = 1
	ModGlobal SymbolModifier = 2
	ModLocal  SymbolModifier = 4
)

// Position is a single line/column pair, 1-indexed like token.Token's
// Line field.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is the half-open span a definition occupies.
type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Definition is the record a Sink emits for each recognized definition
// site: a token's text, its resolved value (when statically known), the
// span it occupies, and LSP-style kind/modifier metadata.
type Definition struct {
	ID        uint64         `json:"id"`
	Token     string         `json:"token"`
	Value     string         `json:"value"`
	Location  Location       `json:"location"`
	Kind      SymbolKind     `json:"kind"`
	Modifiers SymbolModifier `json:"modifiers"`
}

// Sink receives Definition records as they are discovered. StdoutSink
// is the only implementation this module carries; a real language
// server would supply its own (a socket, an RPC channel) since the
// transport itself is out of scope here.
type Sink interface {
	Emit(Definition) error
}

// StdoutSink prints each definition as a single "DEFINITION {json}"
// line.
type StdoutSink struct{}

func (StdoutSink) Emit(d Definition) error {
	body, err := json.Marshal(d)
	if err != nil {
		return err
	}
	fmt.Printf("DEFINITION %s\n", body)
	return nil
}

// HashToken derives a Definition's stable ID from its token text with
// FNV-1a, a process-independent 64-bit hash with no seeding or
// collision-resistance requirements beyond stable identity.
func HashToken(token string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(token))
	return h.Sum64()
}
