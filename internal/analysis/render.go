package analysis

import (
	"fmt"
	"strings"

	"github.com/dekarrin/llgram/internal/grammar"
	"github.com/dekarrin/llgram/internal/util"
	"github.com/dekarrin/rosed"
)

// AmbiguityWarning is shown after the table of a grammar that is not LL(1).
const AmbiguityWarning = "The input language is not LL(1) because ambiguities were found in its parsing table."

// Text returns the full report as it is shown by the CLI: each stage of the
// grammar, the FIRST and FOLLOW set of every nonterminal, and the parsing
// table, with a warning at the end if the table is ambiguous. width is the
// maximum width of the table and of any wrapped message.
func (r Report) Text(width int) string {
	var sb strings.Builder

	sb.WriteString(GrammarText("Original", r.Original))
	if r.Normalized {
		sb.WriteString("\n")
		sb.WriteString(GrammarText("After removing left-recursion", r.NoLeftRecursion))
		sb.WriteString("\n")
		sb.WriteString(GrammarText("After removing left-factoring", r.NoLeftFactoring))
	}

	g := r.Analyzed()

	sb.WriteString("\n")
	for _, nt := range g.NonTerminals() {
		sb.WriteString(fmt.Sprintf("FIRST(%s) = %s\n", nt, util.StringSetOf(r.First[nt]...)))
	}

	sb.WriteString("\n")
	for _, nt := range g.NonTerminals() {
		sb.WriteString(fmt.Sprintf("FOLLOW(%s) = %s\n", nt, util.StringSetOf(r.Follow[nt]...)))
	}

	sb.WriteString("\nParsing Table:\n")
	sb.WriteString(r.TableText(width))

	return sb.String()
}

// TableText returns only the parsing table of the report, followed by the
// ambiguity warning and the list of conflicting cells if the table is
// ambiguous.
func (r Report) TableText(width int) string {
	var sb strings.Builder

	sb.WriteString(r.Table.Render(width))
	if !strings.HasSuffix(sb.String(), "\n") {
		sb.WriteString("\n")
	}

	if r.Ambiguous {
		sb.WriteString("\n")
		sb.WriteString(wrap("WARNING: "+AmbiguityWarning, width))
		sb.WriteString("\n")
		for _, c := range r.Table.Conflicts() {
			sb.WriteString(wrap("  "+c.String(), width))
			sb.WriteString("\n")
		}
	}

	if len(r.ResidualRecursion) > 0 {
		sb.WriteString("\n")
		msg := fmt.Sprintf("WARNING: still left-recursive: %s", strings.Join(r.ResidualRecursion, ", "))
		sb.WriteString(wrap(msg, width))
		sb.WriteString("\n")
	}

	return sb.String()
}

// SetsText returns FIRST or FOLLOW of a single symbol of the analyzed grammar
// as a line of text, e.g. "FIRST(E) = {(, id}". which must be "FIRST" or
// "FOLLOW".
func (r Report) SetsText(which string, sym string) string {
	g := r.Analyzed()

	var set util.StringSet
	if which == "FOLLOW" {
		set = g.FOLLOW(sym)
	} else {
		set = g.FIRST(sym)
	}
	return fmt.Sprintf("%s(%s) = %s", which, sym, set)
}

// GrammarText returns the grammar in BNF with the given title line above it.
func GrammarText(title string, g grammar.Grammar) string {
	return title + ":\n" + g.String() + "\n"
}

func wrap(msg string, width int) string {
	if width < 2 {
		return msg
	}
	return rosed.Edit(msg).Wrap(width).String()
}
