/*
File    : cluefront/repl/repl.go
Package : repl

Package repl implements an interactive Read-Preprocess-Scan-Print loop
for Clue source: one line in, one preprocess+scan pass out, colorized
by message class (banner, success, error, info). It is not an
evaluator — there is no parser or code generator here, only the
analyzer-adjacent preprocess+scan pipeline exercised per line.
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/clueshift/cluefront/lsp"
	"github.com/clueshift/cluefront/preprocessor"
	"github.com/clueshift/cluefront/scanner"
	"github.com/clueshift/cluefront/token"
)

// Color definitions for REPL output: blueColor for separators,
// greenColor for the banner, yellowColor for successful token output,
// redColor for errors, cyanColor for info text.
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl represents the Read-Preprocess-Scan-Print Loop instance.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	// OS is the canonicalized host name (already alias-resolved) @ifos
	// compares against. Env carries @define'd/seed values across the
	// whole session, the way a real build would accumulate -D flags.
	OS  string
	Env *preprocessor.Environment

	// Report, when true, also prints a lsp.StdoutSink "DEFINITION"
	// record for every IDENTIFIER token the scanner produces.
	Report bool
}

// NewRepl creates and initializes a new Repl instance.
func NewRepl(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to the Clue front-end REPL!")
	cyanColor.Fprintf(writer, "%s\n", "Type a line of Clue source and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop. reader is accepted for interface
// symmetry with writer but otherwise unused: readline handles its own
// terminal I/O directly.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	if r.Env == nil {
		r.Env = preprocessor.NewEnvironment(r.OS, nil, nil)
	}
	if r.Report && r.Env.Reporter == nil {
		r.Env.Reporter = reportDirectiveDefinition
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.executeWithRecovery(writer, line)
	}
}

// executeWithRecovery preprocesses and scans a single line, printing its
// token stream in yellow or its error in red. The defer/recover guard
// around a single turn means one bad line can't kill the session.
func (r *Repl) executeWithRecovery(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", recovered)
		}
	}()

	pre, err := preprocessor.Preprocess(line, "<repl>", r.OS, r.Env)
	if err != nil {
		redColor.Fprintf(writer, "%v\n", err)
		return
	}

	tokens, err := scanner.Scan(pre, "<repl>")
	if err != nil {
		redColor.Fprintf(writer, "%v\n", err)
		return
	}

	yellowColor.Fprint(writer, scanner.Dump(tokens))

	if r.Report {
		r.reportDefinitions(writer, tokens)
	}
}

// reportDefinitions emits a DEFINITION record for each IDENTIFIER token,
// classified by lsp.ClassifyTokens. A real language server would instead
// track scope and filter to actual definition sites; this is the minimal
// sink use the REPL exercises.
func (r *Repl) reportDefinitions(writer io.Writer, tokens []token.Token) {
	sink := lsp.StdoutSink{}
	kinds := lsp.ClassifyTokens(tokens)
	for i, t := range tokens {
		if t.Kind != token.IDENTIFIER {
			continue
		}
		def := lsp.Definition{
			ID:    lsp.HashToken(t.Lexeme),
			Token: t.Lexeme,
			Value: t.Lexeme,
			Location: lsp.Location{
				Start: lsp.Position{Line: t.Line, Column: 1},
				End:   lsp.Position{Line: t.Line, Column: 1 + len(t.Lexeme)},
			},
			Kind: kinds[i],
		}
		if err := sink.Emit(def); err != nil {
			fmt.Fprintf(writer, "DEFINITION error: %v\n", err)
		}
	}
}

// reportDirectiveDefinition is wired as the preprocessor's
// DefinitionReporter for a REPL session that starts without one already
// installed (Env created on demand rather than passed in by cmd/clue),
// so @define names and $N back-references are still reported as they
// resolve.
func reportDirectiveDefinition(kind preprocessor.DefinitionKind, name, value string, line int) {
	symbolKind := lsp.KindMacro
	if kind == preprocessor.DefinitionPseudo {
		symbolKind = lsp.KindPseudo
	}
	lsp.StdoutSink{}.Emit(lsp.Definition{
		ID:    lsp.HashToken(name),
		Token: name,
		Value: value,
		Location: lsp.Location{
			Start: lsp.Position{Line: line, Column: 1},
			End:   lsp.Position{Line: line, Column: 1 + len(name)},
		},
		Kind: symbolKind,
	})
}
