/*
File    : cluefront/lsp/classify_test.go
Package : lsp
*/
package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clueshift/cluefront/token"
)

func TestClassifyTokens_LocalDeclarationIsVariable(t *testing.T) {
	tokens := []token.Token{
		token.NewAt(token.LOCAL, "local", 1),
		token.NewAt(token.IDENTIFIER, "x", 1),
		token.NewAt(token.EOF, "<end>", 1),
	}
	kinds := ClassifyTokens(tokens)
	assert.Equal(t, KindVariable, kinds[1])
}

func TestClassifyTokens_FunctionNameAndArguments(t *testing.T) {
	tokens := []token.Token{
		token.NewAt(token.FN, "fn", 1),
		token.NewAt(token.IDENTIFIER, "add", 1),
		token.NewAt(token.ROUND_BRACKET_OPEN, "(", 1),
		token.NewAt(token.IDENTIFIER, "a", 1),
		token.NewAt(token.COMMA, ",", 1),
		token.NewAt(token.IDENTIFIER, "b", 1),
		token.NewAt(token.ROUND_BRACKET_CLOSED, ")", 1),
		token.NewAt(token.EOF, "<end>", 1),
	}
	kinds := ClassifyTokens(tokens)
	assert.Equal(t, KindFunction, kinds[1])
	assert.Equal(t, KindArgument, kinds[3])
	assert.Equal(t, KindArgument, kinds[5])
}

func TestClassifyTokens_EnumAndStaticDeclarations(t *testing.T) {
	tokens := []token.Token{
		token.NewAt(token.ENUM, "enum", 1),
		token.NewAt(token.IDENTIFIER, "Color", 1),
		token.NewAt(token.STATIC, "static", 2),
		token.NewAt(token.IDENTIFIER, "MAX", 2),
		token.NewAt(token.EOF, "<end>", 2),
	}
	kinds := ClassifyTokens(tokens)
	assert.Equal(t, KindEnum, kinds[1])
	assert.Equal(t, KindConstant, kinds[3])
}

func TestClassifyTokens_PlainReferenceDefaultsToVariable(t *testing.T) {
	tokens := []token.Token{
		token.NewAt(token.IDENTIFIER, "x", 1),
		token.NewAt(token.PLUS, "+", 1),
		token.NewAt(token.IDENTIFIER, "y", 1),
		token.NewAt(token.EOF, "<end>", 1),
	}
	kinds := ClassifyTokens(tokens)
	assert.Equal(t, KindVariable, kinds[0])
	assert.Equal(t, KindVariable, kinds[2])
}

func TestClassifyTokens_ArgumentsOnlyApplyInsideTheDeclaringParens(t *testing.T) {
	tokens := []token.Token{
		token.NewAt(token.FN, "fn", 1),
		token.NewAt(token.IDENTIFIER, "f", 1),
		token.NewAt(token.ROUND_BRACKET_OPEN, "(", 1),
		token.NewAt(token.IDENTIFIER, "a", 1),
		token.NewAt(token.ROUND_BRACKET_CLOSED, ")", 1),
		token.NewAt(token.ROUND_BRACKET_OPEN, "(", 2),
		token.NewAt(token.IDENTIFIER, "b", 2),
		token.NewAt(token.ROUND_BRACKET_CLOSED, ")", 2),
		token.NewAt(token.EOF, "<end>", 2),
	}
	kinds := ClassifyTokens(tokens)
	assert.Equal(t, KindArgument, kinds[3])
	assert.Equal(t, KindVariable, kinds[6])
}

func TestSymbolKind_AllConstantsAreDistinct(t *testing.T) {
	seen := map[SymbolKind]bool{}
	for _, k := range []SymbolKind{
		KindVariable, KindFunction, KindEnum, KindConstant,
		KindPseudo, KindMacro, KindArgument,
	} {
		assert.False(t, seen[k], "duplicate SymbolKind value %d", k)
		seen[k] = true
	}
}
