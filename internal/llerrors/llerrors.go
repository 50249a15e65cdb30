// Package llerrors holds the error types produced while reading and analyzing
// grammars. Each error carries both a technical message (returned by Error())
// and a shorter message meant to be shown to whoever typed the grammar in.
package llerrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGrammarSyntax is the cause of any error created for a line of
	// BNF that is not of the form "HEAD -> BODY | BODY ...".
	ErrInvalidGrammarSyntax = errors.New("invalid grammar syntax")

	// ErrInvalidProduction is the cause of any error created for a production
	// that cannot exist, such as one whose only symbol is its own head.
	ErrInvalidProduction = errors.New("invalid production")

	// ErrParse is the cause of any error created when a sentence is rejected
	// by a predictive parse.
	ErrParse = errors.New("sentence rejected")

	// ErrBadCommand is the cause of any error created for REPL input that is
	// not a valid command.
	ErrBadCommand = errors.New("bad command")
)

// GrammarError is returned when grammar text or a production fails to
// validate. Calling errors.Is on it with ErrInvalidGrammarSyntax or
// ErrInvalidProduction reports which kind it is.
type GrammarError struct {
	// Line is the 1-based line of the input the error occurred on. It is 0 if
	// the error did not come from parsing text.
	Line int

	kind  error
	msg   string
	human string
}

func (e *GrammarError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.msg)
	}
	return e.msg
}

// Human returns the message that should be shown to the user.
func (e *GrammarError) Human() string {
	return e.human
}

// Unwrap returns the kind sentinel of e.
func (e *GrammarError) Unwrap() error {
	return e.kind
}

// Syntax returns a new error of kind ErrInvalidGrammarSyntax for the given
// 1-based line whose text was text.
func Syntax(line int, text string, reason string) error {
	msg := fmt.Sprintf("%s: %q", reason, text)
	return &GrammarError{
		Line:  line,
		kind:  ErrInvalidGrammarSyntax,
		msg:   msg,
		human: fmt.Sprintf("invalid grammar: line %d: %s", line, reason),
	}
}

// NoRules returns a new error of kind ErrInvalidGrammarSyntax for grammar
// text that does not declare any rule.
func NoRules() error {
	return &GrammarError{
		kind:  ErrInvalidGrammarSyntax,
		msg:   "no rules in grammar text",
		human: "invalid grammar: no rules given",
	}
}

// Production returns a new error of kind ErrInvalidProduction for the
// production with the given head and body.
func Production(head string, body []string, reason string) error {
	prod := head + " -> " + strings.Join(body, " ")
	return &GrammarError{
		kind:  ErrInvalidProduction,
		msg:   fmt.Sprintf("%s: %s", reason, prod),
		human: fmt.Sprintf("invalid grammar: production %q %s", prod, reason),
	}
}

// WithLine returns a copy of err with its line set, if err is a
// *GrammarError. Any other error is returned unchanged.
func WithLine(err error, line int) error {
	var gErr *GrammarError
	if !errors.As(err, &gErr) {
		return err
	}

	cp := *gErr
	cp.Line = line
	if cp.kind == ErrInvalidProduction {
		cp.human = fmt.Sprintf("invalid grammar: line %d: %s", line, strings.TrimPrefix(cp.human, "invalid grammar: "))
	}
	return &cp
}

// ParseError is returned when a sequence of tokens is rejected by an LL(1)
// table.
type ParseError struct {
	// Pos is the 0-based index of the offending token. It is equal to the
	// number of tokens if the rejection happened at end of input.
	Pos int

	// Token is the offending token.
	Token string

	// Expected is the set of tokens that would have been accepted, if known.
	Expected []string

	msg string
}

func (e *ParseError) Error() string {
	return e.msg
}

// Unwrap returns ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Rejected returns a new *ParseError for a token at the given position.
func Rejected(pos int, token string, expected []string, format string, a ...interface{}) *ParseError {
	msg := fmt.Sprintf(format, a...)
	if len(expected) > 0 {
		msg += fmt.Sprintf("; expected one of: %s", strings.Join(expected, ", "))
	}
	return &ParseError{
		Pos:      pos,
		Token:    token,
		Expected: expected,
		msg:      fmt.Sprintf("token %d (%q): %s", pos+1, token, msg),
	}
}

// CommandError is returned when a line typed into the REPL is not a command
// that can be run. Its message is meant for the user as-is.
type CommandError struct {
	msg string
}

func (e *CommandError) Error() string {
	return e.msg
}

// Unwrap returns ErrBadCommand.
func (e *CommandError) Unwrap() error {
	return ErrBadCommand
}

// Commandf returns a new *CommandError with a message created from a format
// string.
func Commandf(format string, a ...interface{}) *CommandError {
	return &CommandError{msg: fmt.Sprintf(format, a...)}
}

// Human gets the message to display to the user for the given error. If it is
// a *GrammarError, its human message is returned; otherwise, err.Error() is
// returned.
func Human(err error) string {
	var gErr *GrammarError
	if errors.As(err, &gErr) {
		return gErr.Human()
	}
	return err.Error()
}

// IsInvalidGrammar returns whether err was caused by malformed grammar input.
func IsInvalidGrammar(err error) bool {
	return errors.Is(err, ErrInvalidGrammarSyntax) || errors.Is(err, ErrInvalidProduction)
}
