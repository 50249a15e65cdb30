package grammar

import (
	"strings"

	"github.com/dekarrin/llgram/internal/llerrors"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefinitionSeparator separates the head of a line of BNF from its
	// alternatives.
	DefinitionSeparator = "->"

	// AlternationSeparator separates the alternatives of a line of BNF.
	AlternationSeparator = "|"
)

// ParseBNF parses a grammar from BNF text. Each non-blank line must be of the
// form:
//
//	HEAD -> SYMBOL SYMBOL ... | SYMBOL ... | ...
//
// Symbols are separated by whitespace, so "( A )" is three symbols while
// "(A)" is one. The head of the first line is the start symbol. Lines may
// repeat a head to give it more alternatives. epsilon and eof give the symbols
// used for the empty derivation and end of input; if empty, DefaultEpsilon and
// DefaultEOF are used.
//
// The text is converted to Unicode normal form C before it is split, so two
// spellings of the same character are read as the same symbol.
//
// If any line is malformed, an error matching llerrors.ErrInvalidGrammarSyntax
// is returned; if any alternative is a production that derives only its own
// head, an error matching llerrors.ErrInvalidProduction is returned. In either
// case no grammar is returned.
func ParseBNF(text, epsilon, eof string) (Grammar, error) {
	return ParseBNFStart(text, "", epsilon, eof)
}

// ParseBNFStart is like ParseBNF but uses the given start symbol instead of
// the head of the first line. If start is empty, it behaves exactly as
// ParseBNF.
func ParseBNFStart(text, start, epsilon, eof string) (Grammar, error) {
	text = norm.NFC.String(text)
	epsilon = norm.NFC.String(epsilon)
	eof = norm.NFC.String(eof)
	start = norm.NFC.String(start)

	g := New(start, epsilon, eof)

	lines := strings.Split(text, "\n")
	for i := range lines {
		lineNum := i + 1
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		rules, err := parseLine(line, lineNum)
		if err != nil {
			return Grammar{}, err
		}
		for _, r := range rules {
			g.AddRule(r)
		}
	}

	return g, nil
}

// MustParseBNF is like ParseBNF but panics if there is an error.
func MustParseBNF(text, epsilon, eof string) Grammar {
	g, err := ParseBNF(text, epsilon, eof)
	if err != nil {
		panic(err.Error())
	}
	return g
}

// parseLine parses a single line of BNF into the rules it declares.
func parseLine(line string, lineNum int) ([]Rule, error) {
	parts := strings.Split(line, DefinitionSeparator)
	if len(parts) < 2 {
		return nil, llerrors.Syntax(lineNum, line, "not of the form 'HEAD -> SYMBOL SYMBOL | SYMBOL ...'")
	}
	if len(parts) > 2 {
		return nil, llerrors.Syntax(lineNum, line, "more than one '"+DefinitionSeparator+"' in line")
	}

	headSyms := strings.Fields(parts[0])
	if len(headSyms) == 0 {
		return nil, llerrors.Syntax(lineNum, line, "missing head before '"+DefinitionSeparator+"'")
	}
	if len(headSyms) > 1 {
		return nil, llerrors.Syntax(lineNum, line, "head must be a single symbol")
	}
	head := headSyms[0]

	var rules []Rule
	for _, alt := range strings.Split(parts[1], AlternationSeparator) {
		body := strings.Fields(alt)
		if len(body) == 0 {
			return nil, llerrors.Syntax(lineNum, line, "empty alternative; write epsilon explicitly")
		}

		r, err := NewRule(head, body...)
		if err != nil {
			return nil, llerrors.WithLine(err, lineNum)
		}
		rules = append(rules, r)
	}

	return rules, nil
}
