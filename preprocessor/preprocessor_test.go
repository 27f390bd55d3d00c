package preprocessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustPreprocess(t *testing.T, source string, env *Environment) string {
	t.Helper()
	if env == nil {
		env = NewEnvironment("linux", nil, nil)
	}
	out, err := Preprocess(source, "test.clue", "linux", env)
	assert.NoError(t, err)
	return out
}

func TestPreprocess_PassthroughWithNoDirectives(t *testing.T) {
	out := mustPreprocess(t, "local x = 1\nprint(x)\n", nil)
	assert.Equal(t, "local x = 1\nprint(x)\n", out)
}

func TestPreprocess_PseudoVariablesRightmostFirst(t *testing.T) {
	out := mustPreprocess(t, "a, b = 1, 2\n$1 = $2", nil)
	assert.Equal(t, "a, b = 1, 2\nb = a", out)
}

func TestPreprocess_BareDollarDefaultsToIndexOne(t *testing.T) {
	out := mustPreprocess(t, "x = 1\nprint($)", nil)
	assert.Equal(t, "x = 1\nprint(x)", out)
}

func TestPreprocess_MissingPseudoYieldsNil(t *testing.T) {
	out := mustPreprocess(t, "x = 1\n$2", nil)
	assert.Equal(t, "x = 1\nnil", out)
}

func TestPreprocess_DefineAndSubstitute(t *testing.T) {
	out := mustPreprocess(t, `@define GREETING "hi"
print($GREETING)`, nil)
	assert.Equal(t, "\nprint(hi)", out)
}

func TestPreprocess_UndefRemovesValue(t *testing.T) {
	env := NewEnvironment("linux", nil, map[string]string{"FLAG": "1"})
	out, err := Preprocess("@undef FLAG\n@ifdef FLAG { print(1) }", "test.clue", "linux", env)
	assert.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestPreprocess_IfosMatchesCurrentOS(t *testing.T) {
	out := mustPreprocess(t, `@ifos linux {local ok = true}`, nil)
	assert.Equal(t, "local ok = true", out)
}

func TestPreprocess_IfosMismatchProducesBlankPadding(t *testing.T) {
	out := mustPreprocess(t, "@ifos windows {\nlocal ok = true\n}", nil)
	assert.Equal(t, "\n\n", out)
}

func TestPreprocess_IfElseChain(t *testing.T) {
	out := mustPreprocess(t, `@ifos windows {local a = 1}@else {local a = 2}`, nil)
	assert.Equal(t, "local a = 2", out)
}

func TestPreprocess_IfcmpEquality(t *testing.T) {
	out := mustPreprocess(t, `@ifcmp "clue" == "clue"{local matched = true}`, nil)
	assert.Equal(t, "local matched = true", out)
}

// readArg deliberately preprocesses its quoted argument with a fresh,
// empty values map, so a directive argument cannot see values @define'd
// outside it — this locks in that scoping rule.
func TestPreprocess_IfcmpArgumentCannotSeeOuterDefine(t *testing.T) {
	env := NewEnvironment("linux", nil, map[string]string{"NAME": "clue"})
	_, err := Preprocess(`@ifcmp "$NAME" == "clue"{}`, "test.clue", "linux", env)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Value 'NAME' not found")
}

func TestPreprocess_IfcmpUnknownOperatorReportsEqualsExpected(t *testing.T) {
	_, err := Preprocess(`@ifcmp "a" ~= "b"{}`, "test.clue", "linux", NewEnvironment("linux", nil, nil))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Expected '=='")
}

func TestPreprocess_UnknownDirectiveErrors(t *testing.T) {
	_, err := Preprocess("@bogus", "test.clue", "linux", NewEnvironment("linux", nil, nil))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown directive 'bogus'")
}

func TestPreprocess_ErrorDirectiveIsFatal(t *testing.T) {
	_, err := Preprocess(`@error "boom"`, "test.clue", "linux", NewEnvironment("linux", nil, nil))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestPreprocess_EscapedAtAndDollarAreLiteral(t *testing.T) {
	out := mustPreprocess(t, `\@ifos \$notavar`, nil)
	assert.Equal(t, "@ifos $notavar", out)
}

func TestPreprocess_IdempotentOnPlainSource(t *testing.T) {
	source := "local x = 1\nreturn x\n"
	once := mustPreprocess(t, source, nil)
	twice := mustPreprocess(t, once, nil)
	assert.Equal(t, once, twice)
}

func TestPreprocess_ReporterSeesMacroDefinition(t *testing.T) {
	var got []string
	env := NewEnvironment("linux", nil, nil)
	env.Reporter = func(kind DefinitionKind, name, value string, line int) {
		if kind == DefinitionMacro {
			got = append(got, name+"="+value)
		}
	}
	_, err := Preprocess(`@define GREETING "hi"`, "test.clue", "linux", env)
	assert.NoError(t, err)
	assert.Equal(t, []string{"GREETING=hi"}, got)
}

func TestPreprocess_ReporterSeesPseudoResolution(t *testing.T) {
	var got []string
	env := NewEnvironment("linux", nil, nil)
	env.Reporter = func(kind DefinitionKind, name, value string, line int) {
		if kind == DefinitionPseudo {
			got = append(got, name+"="+value)
		}
	}
	out, err := Preprocess("a, b = 1, 2\n$1 = $2", "test.clue", "linux", env)
	assert.NoError(t, err)
	assert.Equal(t, "a, b = 1, 2\nb = a", out)
	assert.Equal(t, []string{"$1=b", "$2=a"}, got)
}

func TestReadPseudos_TightAssignmentNoSpaces(t *testing.T) {
	names := readPseudos(newBackScanner([]rune("a=1\n")))
	assert.Equal(t, []string{"a"}, names)
}

func TestReadPseudos_IgnoresEqualityOperator(t *testing.T) {
	names := readPseudos(newBackScanner([]rune("if x == 1\n")))
	assert.Nil(t, names)
}
