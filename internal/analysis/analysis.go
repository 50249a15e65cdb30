// Package analysis runs the full LL(1) analysis of a grammar: reading it from
// BNF, removing left recursion and left factoring, finding FIRST and FOLLOW
// sets, and building the predictive parsing table. Every front end of LLGram
// goes through this package so that they all report the same thing.
package analysis

import (
	"github.com/dekarrin/llgram/internal/grammar"
	"github.com/dekarrin/llgram/internal/llerrors"
)

// Logger receives warnings and debug output from a Run. It has the same
// signature as log.Printf.
type Logger func(format string, a ...interface{})

// Options control how an analysis is run. The zero value analyzes a grammar
// written with the default epsilon and end-of-input symbols, normalizes it
// before building the table, and logs nothing.
type Options struct {
	// Epsilon is the symbol for the empty derivation. If empty,
	// grammar.DefaultEpsilon is used.
	Epsilon string

	// EOF is the symbol for end of input. If empty, grammar.DefaultEOF is
	// used.
	EOF string

	// Start is the start symbol. If empty, the head of the first rule is
	// used.
	Start string

	// AsIs disables removal of left recursion and left factoring, so that the
	// table is built from the grammar exactly as it was given.
	AsIs bool

	// Logger is called with warnings about the grammar and with a line for
	// each stage of the analysis. If nil, nothing is logged.
	Logger Logger
}

func (opts Options) logf(format string, a ...interface{}) {
	if opts.Logger != nil {
		opts.Logger(format, a...)
	}
}

// Report is the result of analyzing a grammar.
type Report struct {
	// Original is the grammar as it was read.
	Original grammar.Grammar

	// Normalized is whether left recursion and left factoring were removed
	// before the table was built. NoLeftRecursion and NoLeftFactoring are
	// only set if it is true.
	Normalized bool

	// NoLeftRecursion is Original after removal of left recursion.
	NoLeftRecursion grammar.Grammar

	// NoLeftFactoring is NoLeftRecursion after removal of left factoring.
	NoLeftFactoring grammar.Grammar

	// First is the FIRST set of each nonterminal of the grammar the table was
	// built from, each in sorted order.
	First map[string][]string

	// Follow is the FOLLOW set of each nonterminal of the grammar the table
	// was built from, each in sorted order.
	Follow map[string][]string

	// Table is the LL(1) parsing table.
	Table grammar.LL1Table

	// Ambiguous is whether any cell of Table holds more than one rule, in
	// which case the grammar is not LL(1).
	Ambiguous bool

	// ResidualRecursion lists the nonterminals of the table grammar that are
	// still left-recursive. It is empty unless left-recursion removal could
	// not fully succeed, or the analysis was run with AsIs.
	ResidualRecursion []string

	// Vanished lists the nonterminals of Original that no longer appear as a
	// head after normalization because every one of their productions was
	// left-recursive.
	Vanished []string
}

// Analyzed returns the grammar that the table, FIRST, and FOLLOW sets were
// computed from.
func (r Report) Analyzed() grammar.Grammar {
	if r.Normalized {
		return r.NoLeftFactoring
	}
	return r.Original
}

// Run reads a grammar from BNF text and analyzes it. If the text is not a
// valid grammar, the returned error matches llerrors.ErrInvalidGrammarSyntax
// or llerrors.ErrInvalidProduction and llerrors.Human gives a message for the
// user; no partial report is returned.
//
// An ambiguous grammar is not an error. Check Report.Ambiguous.
func Run(text string, opts Options) (Report, error) {
	g, err := grammar.ParseBNFStart(text, opts.Start, opts.Epsilon, opts.EOF)
	if err != nil {
		return Report{}, err
	}
	if g.Len() < 1 {
		return Report{}, llerrors.NoRules()
	}
	opts.logf("DEBUG read grammar with %d rules for %d nonterminals", g.Len(), len(g.NonTerminals()))

	return RunGrammar(g, opts), nil
}

// RunGrammar analyzes an already-built grammar. The Epsilon, EOF, and Start of
// opts are ignored in favor of those of g.
func RunGrammar(g grammar.Grammar, opts Options) Report {
	rep := Report{
		Original:   g,
		Normalized: !opts.AsIs,
	}

	analyzed := g
	if rep.Normalized {
		rep.NoLeftRecursion = g.RemoveLeftRecursion()
		opts.logf("DEBUG removed left recursion; %d rules for %d nonterminals", rep.NoLeftRecursion.Len(), len(rep.NoLeftRecursion.NonTerminals()))

		for _, nt := range g.NonTerminals() {
			if !rep.NoLeftRecursion.IsNonTerminal(nt) {
				rep.Vanished = append(rep.Vanished, nt)
				opts.logf("WARN  every production of %s is left-recursive; it derives no terminal string and was removed", nt)
			}
		}

		rep.NoLeftFactoring = rep.NoLeftRecursion.RemoveLeftFactoring()
		opts.logf("DEBUG removed left factoring; %d rules for %d nonterminals", rep.NoLeftFactoring.Len(), len(rep.NoLeftFactoring.NonTerminals()))

		analyzed = rep.NoLeftFactoring
	}

	rep.ResidualRecursion = analyzed.LeftRecursiveNonTerminals()
	if rep.Normalized && len(rep.ResidualRecursion) > 0 {
		opts.logf("WARN  nonterminals still left-recursive after removal: %v", rep.ResidualRecursion)
	}

	rep.First = map[string][]string{}
	rep.Follow = map[string][]string{}
	for _, nt := range analyzed.NonTerminals() {
		rep.First[nt] = analyzed.FIRST(nt).Elements()
		rep.Follow[nt] = analyzed.FOLLOW(nt).Elements()
	}

	rep.Table = analyzed.LLParseTable()
	rep.Ambiguous = rep.Table.Ambiguous()
	if rep.Ambiguous {
		for _, c := range rep.Table.Conflicts() {
			opts.logf("DEBUG conflict: %s", c)
		}
	}
	opts.logf("DEBUG built table with %d rows and %d columns; ambiguous=%t", len(rep.Table.NonTerminals()), len(rep.Table.Terminals()), rep.Ambiguous)

	return rep
}

// Check runs a predictive parse of tokens with the report's table. It returns
// nil if they are accepted and a *llerrors.ParseError if not.
func (r Report) Check(tokens []string) error {
	return r.Table.Recognize(tokens)
}
