/*
File    : cluefront/lsp/classify.go
Package : lsp

Classifies IDENTIFIER tokens from a scanned token stream into a
SymbolKind by looking at local syntactic context, so a caller reporting
definitions does not have to default every identifier to KindVariable.
*/
package lsp

import "github.com/clueshift/cluefront/token"

// ClassifyTokens returns a SymbolKind for every token in tokens, indexed
// the same way; non-IDENTIFIER entries are left at the zero Kind and
// should be ignored by the caller. The classification only looks at the
// immediately preceding token kind and a small amount of parameter-list
// state, so it is a heuristic rather than a full grammar: it correctly
// labels declaration sites ("local x", "fn f(a, b)", "enum E", "static
// C") but falls back to KindVariable for any other identifier use,
// including plain references.
func ClassifyTokens(tokens []token.Token) []SymbolKind {
	kinds := make([]SymbolKind, len(tokens))
	nextParenStartsParams := false
	inParamList := false

	for i, t := range tokens {
		switch t.Kind {
		case token.ROUND_BRACKET_OPEN:
			if nextParenStartsParams {
				inParamList = true
			}
			nextParenStartsParams = false
			continue
		case token.ROUND_BRACKET_CLOSED:
			inParamList = false
			continue
		case token.FN, token.METHOD:
			continue
		}

		if t.Kind != token.IDENTIFIER {
			nextParenStartsParams = false
			continue
		}

		prev := token.EOF
		if i > 0 {
			prev = tokens[i-1].Kind
		}

		switch {
		case prev == token.FN || prev == token.METHOD:
			kinds[i] = KindFunction
			nextParenStartsParams = true
		case inParamList && (prev == token.ROUND_BRACKET_OPEN || prev == token.COMMA):
			kinds[i] = KindArgument
		case prev == token.LOCAL:
			kinds[i] = KindVariable
		case prev == token.ENUM:
			kinds[i] = KindEnum
		case prev == token.STATIC:
			kinds[i] = KindConstant
		default:
			kinds[i] = KindVariable
		}
	}
	return kinds
}
