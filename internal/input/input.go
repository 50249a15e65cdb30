// Package input reads lines typed into the LLGram REPL, either from a terminal
// with line editing or directly from any stream.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

const (
	// DefaultPrompt is shown before each line read by an InteractiveReader.
	DefaultPrompt = "llg> "
)

// Reader reads one line of REPL input at a time.
type Reader interface {
	// ReadLine returns the next line with surrounding whitespace removed. At
	// end of input it returns io.EOF.
	ReadLine() (string, error)

	// AllowBlank sets whether ReadLine returns blank lines instead of skipping
	// them.
	AllowBlank(allow bool)

	// SetPrompt sets the text shown before each line is typed. Readers that
	// do not show a prompt ignore it.
	SetPrompt(p string)

	Close() error
}

// DirectReader is a Reader for any io.Reader. It does no terminal handling, so
// control and escape sequences are passed through as-is.
//
// Create one with [NewDirectReader].
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveReader is a Reader that uses readline on the terminal, giving
// line editing and history. Use it only when stdin is a TTY.
//
// Create one with [NewInteractiveReader]. It must be closed to restore the
// terminal.
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewDirectReader returns a DirectReader that reads from r.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader returns an InteractiveReader showing DefaultPrompt. If
// historyFile is not empty, lines typed are saved to it and loaded from it on
// the next run.
func NewInteractiveReader(historyFile string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      DefaultPrompt,
		HistoryFile: historyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveReader{
		rl:     rl,
		prompt: DefaultPrompt,
	}, nil
}

// Close releases the reader. A DirectReader holds nothing, but Close should
// still be called on it as on any Reader.
func (dr *DirectReader) Close() error {
	return nil
}

// Close tears down readline and restores the terminal.
func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

// ReadLine reads the next line. Unless blanks are allowed, it blocks until a
// line with at least one non-space character is read.
//
// A final line without a trailing newline is still returned; io.EOF is
// returned only once there is nothing left.
func (dr *DirectReader) ReadLine() (string, error) {
	for {
		line, err := dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || dr.blanksAllowed {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// ReadLine reads the next line from the terminal. Unless blanks are allowed,
// it blocks until a line with at least one non-space character is typed.
// Pressing Ctrl-C on an empty line gives readline.ErrInterrupt; Ctrl-D gives
// io.EOF.
func (ir *InteractiveReader) ReadLine() (string, error) {
	for {
		line, err := ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || ir.blanksAllowed {
			return line, nil
		}
	}
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

// SetPrompt does nothing; a DirectReader shows no prompt.
func (dr *DirectReader) SetPrompt(p string) {}

// SetPrompt updates the prompt to the given text.
func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

// Prompt returns the current prompt.
func (ir *InteractiveReader) Prompt() string {
	return ir.prompt
}
