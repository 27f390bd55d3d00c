/*
File    : cluefront/cmd/clue/main.go
Package : main

cluefront's driver program: not a parser or code generator, just the
command-line seam that exercises the library. In file mode it runs the
three pipeline stages (analyze, preprocess, scan) over each path given
on the command line and prints the resulting token stream, or the
aggregated error, per file. With no paths it starts an interactive REPL
instead.

Flags are parsed with pborman/getopt rather than raw os.Args indexing.
*/
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/pborman/getopt"

	"github.com/clueshift/cluefront/analyzer"
	"github.com/clueshift/cluefront/config"
	"github.com/clueshift/cluefront/lsp"
	"github.com/clueshift/cluefront/preprocessor"
	"github.com/clueshift/cluefront/repl"
	"github.com/clueshift/cluefront/scanner"
	"github.com/clueshift/cluefront/token"
)

// VERSION is the current version of the cluefront driver.
var VERSION = "v0.1.0"

// AUTHOR is the contact point carried in the banner and --version output.
var AUTHOR = "cluefront maintainers"

// LICENSE is the declared software license.
var LICENSE = "MIT"

// PROMPT is the command prompt displayed in REPL mode.
var PROMPT = "clue >>> "

// BANNER is the ASCII art shown at REPL startup.
var BANNER = `
   ▄████▄   ██▓    █    ██ ▓█████
  ▒██▀ ▀█  ▓██▒    ██  ▓██▒▓█   ▀
  ▒▓█    ▄ ▒██░   ▓██  ▒██░▒███
  ▒▓▓▄ ▄██▒▒██░   ▓▓█  ░██░▒▓█  ▄
  ▒ ▓███▀ ░░██████▒▒█████▓ ░▒████▒
  ░ ░▒ ▒  ░░ ▒░▓  ░░▒▓▒ ▒ ▒ ░░ ▒░ ░
    ░  ▒   ░ ░ ▒  ░░░▒░ ░ ░  ░ ░  ░
  ░             ░ ░  ░░░ ░ ░    ░
  ░ ░             ░  ░  ░        ░  ░
  ░
`

// LINE is the separator used in the banner and help output.
var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	var (
		defines  []string
		osName   string
		cfgPath  string
		lspFlag  bool
		help     bool
		showVers bool
	)

	getopt.ListVarLong(&defines, "define", 'D', "define NAME=VALUE, repeatable", "NAME=VALUE[,...]")
	getopt.StringVarLong(&osName, "os", 0, "override the host OS name @ifos compares against", "OS")
	getopt.StringVarLong(&cfgPath, "config", 'c', "path to a cluefront.yaml defaults file", "PATH")
	getopt.BoolVarLong(&lspFlag, "lsp", 0, "emit DEFINITION records for scanned identifiers")
	getopt.BoolVarLong(&help, "help", 'h', "display this help message")
	getopt.BoolVarLong(&showVers, "version", 'v', "display version information")
	getopt.SetParameters("[FILE ...]")
	getopt.Parse()

	if help {
		showHelp()
		os.Exit(0)
	}
	if showVers {
		showVersion()
		os.Exit(0)
	}

	defaults, err := loadConfig(cfgPath)
	if err != nil {
		redColor.Fprintf(os.Stderr, "[CONFIG ERROR] %v\n", err)
		os.Exit(1)
	}

	goos := osName
	if goos == "" {
		goos = runtime.GOOS
	}
	canonicalOS := defaults.CanonicalOS(goos)

	seed := make(map[string]string, len(defaults.Values)+len(defines))
	for k, v := range defaults.Values {
		seed[k] = v
	}
	for _, d := range defines {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			redColor.Fprintf(os.Stderr, "[USAGE ERROR] --define %q is not NAME=VALUE\n", d)
			os.Exit(1)
		}
		seed[name] = value
	}
	env := preprocessor.NewEnvironment(canonicalOS, defaults.OSAliases, seed)
	if lspFlag {
		env.Reporter = reportDefinitionsFromDirectives
	}

	files := getopt.Args()
	if len(files) == 0 {
		repler := repl.NewRepl(BANNER, VERSION, AUTHOR, LINE, LICENSE, PROMPT)
		repler.OS = canonicalOS
		repler.Env = env
		repler.Report = lspFlag
		repler.Start(os.Stdin, os.Stdout)
		return
	}

	exitCode := 0
	for _, path := range files {
		if err := runFile(path, canonicalOS, env, lspFlag); err != nil {
			redColor.Fprintf(os.Stderr, "%v\n", err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// loadConfig reads the optional cluefront.yaml. An empty path still goes
// through config.Load so the built-in OS alias table (darwin -> macos)
// is always in effect, matching/file-mode and REPL mode consistently.
func loadConfig(path string) (config.Defaults, error) {
	if path == "" {
		path = "cluefront.yaml"
	}
	return config.Load(path)
}

// runFile drives the full analyze -> preprocess -> scan pipeline over a
// single file and prints its token stream.
func runFile(path, canonicalOS string, env *preprocessor.Environment, reportDefs bool) error {
	analyzed, err := analyzer.AnalyzeFile(path, path)
	if err != nil {
		return fmt.Errorf("[ANALYZE ERROR] %s: %w", path, err)
	}

	preprocessed, err := preprocessor.Preprocess(analyzed.Source, path, canonicalOS, env)
	if err != nil {
		return fmt.Errorf("[PREPROCESS ERROR] %s: %w", path, err)
	}

	tokens, err := scanner.Scan(preprocessed, path)
	if err != nil {
		return fmt.Errorf("[SCAN ERROR] %s: %w", path, err)
	}

	yellowColor.Print(scanner.Dump(tokens))
	if reportDefs {
		emitDefinitions(tokens)
	}
	return nil
}

// emitDefinitions reports a DEFINITION record for each IDENTIFIER token
// in the scanned stream, classified by lsp.ClassifyTokens rather than
// assumed to all be plain variables.
func emitDefinitions(tokens []token.Token) {
	sink := lsp.StdoutSink{}
	kinds := lsp.ClassifyTokens(tokens)
	for i, t := range tokens {
		if t.Kind != token.IDENTIFIER {
			continue
		}
		sink.Emit(lsp.Definition{
			ID:    lsp.HashToken(t.Lexeme),
			Token: t.Lexeme,
			Value: t.Lexeme,
			Location: lsp.Location{
				Start: lsp.Position{Line: t.Line, Column: 1},
				End:   lsp.Position{Line: t.Line, Column: 1 + len(t.Lexeme)},
			},
			Kind: kinds[i],
		})
	}
}

// reportDefinitionsFromDirectives is wired as the preprocessor's
// DefinitionReporter when --lsp is set, so @define names and $N
// back-references are reported as they are resolved, not just the
// identifiers that survive into the scanned token stream.
func reportDefinitionsFromDirectives(kind preprocessor.DefinitionKind, name, value string, line int) {
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

func showHelp() {
	cyanColor.Println("clue - the Clue front-end (analyzer / preprocessor / scanner)")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  clue                       Start an interactive REPL")
	yellowColor.Println("  clue FILE [FILE ...]       Run the pipeline over one or more files")
	cyanColor.Println("")
	getopt.PrintUsage(os.Stdout)
	cyanColor.Println("")
	cyanColor.Println("REPL COMMANDS:")
	yellowColor.Println("  .exit                      Exit the REPL")
}

func showVersion() {
	cyanColor.Println("clue - the Clue front-end")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENSE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}
