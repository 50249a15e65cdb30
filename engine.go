// Package llgram contains an interactive engine for building up a grammar one
// line at a time and inspecting its LL(1) analysis until the user quits.
package llgram

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/llgram/internal/analysis"
	"github.com/dekarrin/llgram/internal/command"
	"github.com/dekarrin/llgram/internal/config"
	"github.com/dekarrin/llgram/internal/grammar"
	"github.com/dekarrin/llgram/internal/input"
	"github.com/dekarrin/llgram/internal/llerrors"
	"github.com/dekarrin/rosed"
)

// Options are the settings an Engine starts with. Epsilon, EOF, and AsIs can
// be changed from within the REPL afterwards.
type Options struct {
	// Epsilon is the symbol for the empty string. If empty,
	// grammar.DefaultEpsilon is used.
	Epsilon string

	// EOF is the symbol for end of input. If empty, grammar.DefaultEOF is
	// used.
	EOF string

	// AsIs is whether tables are built without first removing left recursion
	// and left factoring.
	AsIs bool

	// Width is the width of output. If 0, config.DefaultWidth is used.
	Width int

	// ForceDirect disables readline even if the engine is attached to a
	// terminal.
	ForceDirect bool

	// HistoryFile is where readline keeps lines typed in. If empty, history
	// is not saved. It has no effect when readline is not used.
	HistoryFile string

	// Logger receives debug output from each analysis. If nil, nothing is
	// logged.
	Logger analysis.Logger
}

// Engine contains the things needed to run the REPL attached to an input
// stream and an output stream.
type Engine struct {
	in      input.Reader
	out     *bufio.Writer
	opts    Options
	lines   []string
	running bool

	// last successful analysis of lines with opts. nil when either has
	// changed since.
	report *analysis.Report
}

// New creates a new engine ready to operate on the given input and output
// streams. If nil is given for the input stream, stdin is used; for the output
// stream, stdout is used. Readline is used only when attached to both and not
// disabled with ForceDirect.
func New(inputStream io.Reader, outputStream io.Writer, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}
	if opts.Width == 0 {
		opts.Width = config.DefaultWidth
	}
	if opts.Epsilon != "" && opts.Epsilon == opts.EOF {
		return nil, fmt.Errorf("epsilon and end-of-input symbols cannot both be %q", opts.Epsilon)
	}

	eng := &Engine{
		out:  bufio.NewWriter(outputStream),
		opts: opts,
	}

	useReadline := !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout
	if useReadline {
		var err error
		eng.in, err = input.NewInteractiveReader(opts.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// AddLines adds lines of BNF to the grammar before the REPL starts. If the
// result is not a valid grammar, none of them are added and the error is
// returned.
func (eng *Engine) AddLines(lines ...string) error {
	candidate := append(append([]string{}, eng.lines...), lines...)
	if _, err := eng.parse(candidate); err != nil {
		return err
	}
	eng.lines = candidate
	eng.report = nil
	return nil
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	if err := eng.in.Close(); err != nil {
		return fmt.Errorf("close input reader: %w", err)
	}

	return nil
}

// RunUntilQuit reads commands and runs them until QUIT is given or input
// ends.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "LLGram LL(1) grammar analyzer\n"
	if eng.opts.ForceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "=============================\n"
	introMsg += "Enter rules such as \"S -> a S | ε\", then TABLE or ANALYZE. Type HELP for all commands.\n"
	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		line, err := eng.in.ReadLine()
		if err != nil {
			if err == io.EOF || errors.Is(err, readline.ErrInterrupt) {
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		cmd, err := command.Parse(line)
		if err != nil {
			if err := eng.write(llerrors.Human(err) + "\nTry HELP for valid commands\n"); err != nil {
				return err
			}
			continue
		}
		if cmd.Verb == "" {
			continue
		}
		if cmd.Verb == "QUIT" {
			break
		}

		output, err := eng.Execute(cmd)
		if err != nil {
			output = rosed.Edit(llerrors.Human(err)).Wrap(eng.opts.Width).String()
		}
		if output != "" && !strings.HasSuffix(output, "\n") {
			output += "\n"
		}
		if err := eng.write(output); err != nil {
			return err
		}
	}

	return eng.write("Goodbye\n")
}

// Execute runs a single command and returns its output. Errors are for the
// user and can be shown with llerrors.Human. QUIT does nothing here; it is
// handled by RunUntilQuit.
func (eng *Engine) Execute(cmd command.Command) (string, error) {
	switch cmd.Verb {
	case "ADD":
		g, err := eng.parse(append(append([]string{}, eng.lines...), cmd.Text))
		if err != nil {
			return "", err
		}
		eng.lines = append(eng.lines, cmd.Text)
		eng.report = nil
		return fmt.Sprintf("Grammar now has %d rules for %d nonterminals", g.Len(), len(g.NonTerminals())), nil
	case "SHOW":
		g, err := eng.parse(eng.lines)
		if err != nil {
			return "", err
		}
		if g.Len() == 0 {
			return "(no rules yet)", nil
		}
		return g.String(), nil
	case "CLEAR":
		eng.lines = nil
		eng.report = nil
		return "Grammar cleared", nil
	case "EPSILON", "EOF":
		return eng.setSymbol(cmd.Verb, cmd.Args[0])
	case "NORMALIZE":
		eng.opts.AsIs = cmd.Args[0] == "OFF"
		eng.report = nil
		if eng.opts.AsIs {
			return "Tables will be built from the grammar as it is", nil
		}
		return "Left recursion and left factoring will be removed before building tables", nil
	case "ANALYZE":
		rep, err := eng.analyze()
		if err != nil {
			return "", err
		}
		return rep.Text(eng.opts.Width), nil
	case "TABLE":
		rep, err := eng.analyze()
		if err != nil {
			return "", err
		}
		return rep.TableText(eng.opts.Width), nil
	case "FIRST", "FOLLOW":
		rep, err := eng.analyze()
		if err != nil {
			return "", err
		}
		return rep.SetsText(cmd.Verb, cmd.Args[0]), nil
	case "CHECK":
		rep, err := eng.analyze()
		if err != nil {
			return "", err
		}
		if err := rep.Check(cmd.Args); err != nil {
			return "Rejected: " + err.Error(), nil
		}
		if rep.Ambiguous {
			return "Accepted (the table is ambiguous, so the first rule of each conflicting cell was used)", nil
		}
		return "Accepted", nil
	case "HELP":
		output := rosed.Edit("").
			WithOptions(rosed.Options{ParagraphSeparator: "\n", NoTrailingLineSeparators: true}).
			Insert(rosed.End, "Here are the commands you can use:\n").
			InsertDefinitionsTable(rosed.End, command.Help, eng.opts.Width).
			String()
		return output, nil
	case "QUIT":
		return "", nil
	default:
		return "", llerrors.Commandf("I don't know how to %s", cmd.Verb)
	}
}

func (eng *Engine) setSymbol(which, sym string) (string, error) {
	updated := eng.opts
	if which == "EPSILON" {
		updated.Epsilon = sym
	} else {
		updated.EOF = sym
	}

	eps, eof := updated.Epsilon, updated.EOF
	if eps == "" {
		eps = grammar.DefaultEpsilon
	}
	if eof == "" {
		eof = grammar.DefaultEOF
	}
	if eps == eof {
		return "", llerrors.Commandf("epsilon and end of input cannot both be %q", sym)
	}

	old := eng.opts
	eng.opts = updated
	if _, err := eng.parse(eng.lines); err != nil {
		eng.opts = old
		return "", err
	}
	eng.report = nil

	if which == "EPSILON" {
		return fmt.Sprintf("Epsilon is now %q", eps), nil
	}
	return fmt.Sprintf("End of input is now %q", eof), nil
}

func (eng *Engine) parse(lines []string) (grammar.Grammar, error) {
	return grammar.ParseBNF(strings.Join(lines, "\n"), eng.opts.Epsilon, eng.opts.EOF)
}

func (eng *Engine) analyze() (analysis.Report, error) {
	if eng.report != nil {
		return *eng.report, nil
	}

	rep, err := analysis.Run(strings.Join(eng.lines, "\n"), analysis.Options{
		Epsilon: eng.opts.Epsilon,
		EOF:     eng.opts.EOF,
		AsIs:    eng.opts.AsIs,
		Logger:  eng.opts.Logger,
	})
	if err != nil {
		return rep, err
	}
	eng.report = &rep
	return rep, nil
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}
