/*
Llg builds the LL(1) predictive parsing table for a context-free grammar.

The grammar is given in BNF, one rule per line, as either the positional
arguments (each one a line) or the contents of a file. Left recursion and left
factoring are removed from it, and the parsing table of the result is printed
along with a warning if any cell ends up with more than one rule, which means
the grammar is not LL(1). If no grammar is given, an interactive session is
started instead where rules can be typed in one at a time.

Usage:

	llg [flags] [PRODUCTION ...]
	llg [flags] -i FILE

Each line of BNF is of the form:

	HEAD -> SYMBOL SYMBOL ... | SYMBOL ... | ...

with symbols separated by spaces. The head of the first line is the start
symbol.

The flags are:

	--version
		Give the current version of LLGram and then exit.

	-i, --input FILE
		Read the grammar from FILE. Cannot be given along with productions as
		arguments.

	-o, --output FILE
		Write output to FILE instead of stdout.

	-v, --verbose
		Show every intermediate step: the grammar after each transformation
		and the FIRST and FOLLOW sets of each nonterminal.

	--epsilon SYMBOL
		Use SYMBOL for the empty string instead of "ε".

	--eof SYMBOL
		Use SYMBOL for end of input instead of "$".

	--as-is
		Build the table from the grammar exactly as given, without removing
		left recursion or left factoring.

	--check TOKENS
		After building the table, run a predictive parse of the given
		space-separated tokens and report whether they were accepted. The
		program exits with a non-zero status if they were not.

	-c, --config FILE
		Read default settings from the given TOML config file.

	-r, --repl
		Start an interactive session even if a grammar was given; it is loaded
		into the session first.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading input in interactive mode, even if
		launched in a tty with stdin and stdout.

Once an interactive session has started, type "HELP" to show the commands.
To exit, type "QUIT".
*/
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dekarrin/llgram"
	"github.com/dekarrin/llgram/internal/analysis"
	"github.com/dekarrin/llgram/internal/config"
	"github.com/dekarrin/llgram/internal/llerrors"
	"github.com/dekarrin/llgram/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGrammarError indicates that the grammar given could not be read.
	ExitGrammarError

	// ExitInitError indicates an unsuccessful program execution due to bad
	// arguments or an issue setting up input or output.
	ExitInitError

	// ExitRejected indicates that the tokens given with --check are not
	// accepted by the parsing table.
	ExitRejected
)

var (
	returnCode int = ExitSuccess

	flagVersion = pflag.Bool("version", false, "Give the current version of LLGram and then exit.")
	flagInput   = pflag.StringP("input", "i", "", "Read the grammar from the given file.")
	flagOutput  = pflag.StringP("output", "o", "", "Write output to the given file instead of stdout.")
	flagVerbose = pflag.BoolP("verbose", "v", false, "Show intermediate calculations.")
	flagEpsilon = pflag.String("epsilon", "", "Use the given symbol for the empty string.")
	flagEOF     = pflag.String("eof", "", "Use the given symbol for end of input.")
	flagAsIs    = pflag.Bool("as-is", false, "Do not remove left recursion or left factoring before building the table.")
	flagCheck   = pflag.String("check", "", "Run a predictive parse of the given space-separated tokens.")
	flagConfig  = pflag.StringP("config", "c", "", "Read settings from the given TOML file.")
	flagREPL    = pflag.BoolP("repl", "r", false, "Start an interactive session.")
	flagDirect  = pflag.BoolP("direct", "d", false, "Do not use readline for interactive input.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	productions := pflag.Args()
	if len(productions) > 0 && *flagInput != "" {
		fmt.Fprintf(os.Stderr, "ERROR: argument -i/--input: not allowed with argument productions\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitInitError
		return
	}

	if *flagInput != "" {
		data, err := os.ReadFile(*flagInput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		productions = strings.Split(string(data), "\n")
	}

	var out io.Writer = os.Stdout
	if *flagOutput != "" {
		f, err := os.Create(*flagOutput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
		defer f.Close()
		out = f
	}

	logger := stderrLogger(*flagVerbose)

	if len(productions) == 0 || *flagREPL {
		returnCode = runREPL(cfg, productions, logger)
		return
	}

	returnCode = runOnce(cfg, productions, out, logger)
}

// loadConfig reads the config file if one was given and applies flags on top
// of it.
func loadConfig() (config.File, error) {
	var cfg config.File
	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
	}

	if pflag.Lookup("epsilon").Changed {
		cfg.Grammar.Epsilon = *flagEpsilon
	}
	if pflag.Lookup("eof").Changed {
		cfg.Grammar.EOF = *flagEOF
	}
	if *flagAsIs {
		normalize := false
		cfg.Grammar.Normalize = &normalize
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func runOnce(cfg config.File, productions []string, out io.Writer, logger analysis.Logger) int {
	rep, err := analysis.Run(strings.Join(productions, "\n"), analysis.Options{
		Epsilon: cfg.Grammar.Epsilon,
		EOF:     cfg.Grammar.EOF,
		AsIs:    !cfg.Grammar.ShouldNormalize(),
		Logger:  logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", llerrors.Human(err))
		return ExitGrammarError
	}

	var text string
	if *flagVerbose {
		text = rep.Text(cfg.Output.Width)
	} else {
		text = rep.TableText(cfg.Output.Width)
	}
	if _, err := io.WriteString(out, text); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitInitError
	}

	if pflag.Lookup("check").Changed {
		if err := rep.Check(strings.Fields(*flagCheck)); err != nil {
			fmt.Fprintf(out, "\nRejected: %s\n", err.Error())
			return ExitRejected
		}
		fmt.Fprintf(out, "\nAccepted\n")
	}

	return ExitSuccess
}

func runREPL(cfg config.File, productions []string, logger analysis.Logger) int {
	eng, err := llgram.New(os.Stdin, os.Stdout, llgram.Options{
		Epsilon:     cfg.Grammar.Epsilon,
		EOF:         cfg.Grammar.EOF,
		AsIs:        !cfg.Grammar.ShouldNormalize(),
		Width:       cfg.Output.Width,
		ForceDirect: *flagDirect,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitInitError
	}
	defer eng.Close()

	if len(productions) > 0 {
		if err := eng.AddLines(productions...); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", llerrors.Human(err))
			return ExitGrammarError
		}
	}

	if err := eng.RunUntilQuit(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		return ExitInitError
	}
	return ExitSuccess
}

// stderrLogger returns a Logger that writes to stderr. DEBUG lines are dropped
// unless verbose is set.
func stderrLogger(verbose bool) analysis.Logger {
	l := log.New(os.Stderr, "", 0)
	return func(format string, a ...interface{}) {
		if !verbose && strings.HasPrefix(format, "DEBUG") {
			return
		}
		l.Printf(format, a...)
	}
}
