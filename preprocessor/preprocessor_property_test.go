package preprocessor

import (
	"bufio"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/clueshift/cluefront/analyzer"
)

// plainLineGen generates a line of Clue-free text: letters and digits
// only, so it can never contain a directive '@', a substitution '$', or
// a string/comment delimiter the analyzer or preprocessor would need to
// interpret. Every property in this file relies on that guarantee.
func plainLineGen() gopter.Gen {
	return gen.SliceOfN(4, gen.AlphaString()).Map(func(words []string) string {
		return strings.Join(words, " ")
	})
}

func plainSourceGen() gopter.Gen {
	return gen.SliceOfN(6, plainLineGen()).Map(func(lines []string) string {
		return strings.Join(lines, "\n")
	})
}

// TestProperty_PreprocessIsIdempotentOnPlainSource checks the
// idempotence property: preprocessing output that already contains no
// directives or pseudo-references is a no-op the second time around.
func TestProperty_PreprocessIsIdempotentOnPlainSource(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("preprocess(preprocess(S)) == preprocess(S) for directive-free S", prop.ForAll(
		func(source string) bool {
			env := NewEnvironment("linux", nil, nil)
			once, err := Preprocess(source, "prop.clue", "linux", env)
			if err != nil {
				return false
			}
			twice, err := Preprocess(once, "prop.clue", "linux", NewEnvironment("linux", nil, nil))
			if err != nil {
				return false
			}
			return once == twice
		},
		plainSourceGen(),
	))

	properties.TestingRun(t)
}

// TestProperty_AnalyzeLineCountMatchesNewlineCount checks the
// newline-count-preservation property for the analyzer: with no
// comments or string literals in play, Lines is exactly one more than
// the number of embedded newlines.
func TestProperty_AnalyzeLineCountMatchesNewlineCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("Lines == 1 + newline count for comment/string-free source", prop.ForAll(
		func(source string) bool {
			result, err := analyzer.Analyze(bufio.NewReader(strings.NewReader(source)), "prop.clue")
			if err != nil {
				return false
			}
			return result.Lines == 1+strings.Count(source, "\n") && result.Source == source
		},
		plainSourceGen(),
	))

	properties.TestingRun(t)
}

// TestProperty_PreprocessPreservesNewlineCount encodes the same
// newline-preservation property one stage later: a directive-free
// preprocess pass must not add or drop lines either.
func TestProperty_PreprocessPreservesNewlineCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("preprocess does not change the newline count of directive-free source", prop.ForAll(
		func(source string) bool {
			out, err := Preprocess(source, "prop.clue", "linux", NewEnvironment("linux", nil, nil))
			if err != nil {
				return false
			}
			return strings.Count(out, "\n") == strings.Count(source, "\n")
		},
		plainSourceGen(),
	))

	properties.TestingRun(t)
}
