/*
File    : cluefront/preprocessor/env.go
Package : preprocessor

Package preprocessor implements directive expansion (@if*, @define,
@undef, @error, @warning, @print), $name/$N pseudo-variable
substitution, and its own comment/string handling so it can be invoked
recursively on fragments (directive arguments, block bodies) without
going back through the analyzer.

The values table tracks @define/@undef state and OS identity; its
OS-alias seed data comes from a config.Defaults rather than a literal
match arm, so the alias table stays configurable instead of hardcoded.
*/
package preprocessor

// DefinitionKind distinguishes the two kinds of site DefinitionReporter
// is notified about.
type DefinitionKind int

const (
	// DefinitionMacro marks an @define NAME "VALUE" directive: NAME is
	// being given a value other directives and $name can now read.
	DefinitionMacro DefinitionKind = iota
	// DefinitionPseudo marks a $N positional back-reference being
	// resolved against the assignment target it indexes into.
	DefinitionPseudo
)

// DefinitionReporter receives a notification each time Preprocess
// resolves a macro definition or a pseudo-variable reference. It is
// deliberately independent of package lsp so this package can be used
// without a language-server dependency; a caller that wants lsp.
// Definition records wires one up itself (see cmd/clue and repl).
type DefinitionReporter func(kind DefinitionKind, name, value string, line int)

// Environment holds the directive values table a Preprocess call reads
// and writes. Values set by @define and cleared by @undef live here;
// callers seed it with command-line -D style definitions and with the
// running OS name.
type Environment struct {
	Values map[string]string

	// Reporter, when set, is called for every macro definition and
	// pseudo-variable resolution Preprocess performs. Left nil, a
	// Preprocess call does no reporting at all.
	Reporter DefinitionReporter
}

// NewEnvironment builds an environment with the given OS name already
// defined as "OS" (resolved through aliases when os has an entry there)
// and any extra seed values layered on top of it. A seed entry named
// "OS" replaces the OS-derived one.
func NewEnvironment(os string, aliases map[string]string, seed map[string]string) *Environment {
	values := make(map[string]string, len(seed)+1)
	if resolved, ok := aliases[os]; ok {
		values["OS"] = resolved
	} else {
		values["OS"] = os
	}
	for k, v := range seed {
		values[k] = v
	}
	return &Environment{Values: values}
}
