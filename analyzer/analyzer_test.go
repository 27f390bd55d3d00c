/*
File    : cluefront/analyzer/analyzer_test.go
Package : analyzer
*/
package analyzer

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func analyze(t *testing.T, src string) Result {
	t.Helper()
	result, err := Analyze(bufio.NewReader(strings.NewReader(src)), "test.clue")
	assert.NoError(t, err)
	return result
}

func TestAnalyze_PassesPlainSourceThrough(t *testing.T) {
	result := analyze(t, "local x = 1\nlocal y = 2\n")
	assert.Equal(t, "local x = 1\nlocal y = 2\n", result.Source)
	assert.Equal(t, 3, result.Lines)
}

func TestAnalyze_StripsLineCommentReplacingItWithANewline(t *testing.T) {
	result := analyze(t, "local x = 1 // a comment\nlocal y = 2\n")
	assert.Equal(t, "local x = 1 \nlocal y = 2\n", result.Source)
	assert.Equal(t, 3, result.Lines)
}

func TestAnalyze_StripsBlockCommentPreservingEmbeddedNewlines(t *testing.T) {
	result := analyze(t, "local x = 1 /* a\nmultiline\ncomment */ local y = 2\n")
	assert.Equal(t, "local x = 1 \n\n local y = 2\n", result.Source)
	assert.Equal(t, 4, result.Lines)
}

func TestAnalyze_LeavesStringLiteralContentsUntouched(t *testing.T) {
	result := analyze(t, `local s = "not // a comment, not /* a comment */ either"`)
	assert.Equal(t, `local s = "not // a comment, not /* a comment */ either"`, result.Source)
}

func TestAnalyze_EscapedQuoteDoesNotTerminateString(t *testing.T) {
	result := analyze(t, `local s = "a \" b" + 1`)
	assert.Equal(t, `local s = "a \" b" + 1`, result.Source)
}

func TestAnalyze_UnterminatedBlockCommentErrors(t *testing.T) {
	_, err := Analyze(bufio.NewReader(strings.NewReader("local x = 1 /* never closed")), "test.clue")
	assert.Error(t, err)
}

func TestAnalyze_UnterminatedStringErrors(t *testing.T) {
	_, err := Analyze(bufio.NewReader(strings.NewReader(`local s = "never closed`)), "test.clue")
	assert.Error(t, err)
}
