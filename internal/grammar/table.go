package grammar

import (
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
)

// LL1Table is an LL(1) predictive parsing table. It maps a nonterminal and a
// lookahead terminal (or end of input) to the rule to expand the nonterminal
// with. A cell may hold more than one rule, in which case the table is
// ambiguous and the grammar it came from is not LL(1).
//
// The zero value is an empty table.
type LL1Table struct {
	cells map[string]map[string][]Rule

	nonTerminals []string
	terminals    []string

	start     string
	epsilon   string
	eof       string
	ambiguous bool
}

// Conflict is a cell of an LL1Table that holds more than one rule.
type Conflict struct {
	NonTerminal string
	Terminal    string
	Rules       []Rule
}

// String returns the conflict as e.g. "M[S, a] = {S -> A, S -> B}".
func (c Conflict) String() string {
	ruleStrs := make([]string, len(c.Rules))
	for i := range c.Rules {
		ruleStrs[i] = c.Rules[i].String()
	}
	return "M[" + c.NonTerminal + ", " + c.Terminal + "] = {" + strings.Join(ruleStrs, ", ") + "}"
}

// ParsingTable builds the LL(1) parsing table for g and returns it along with
// whether any of its cells hold more than one rule. If normalize is true, left
// recursion and then left factoring are removed from g before the table is
// built; otherwise the table is built from g as it is, which shows exactly
// where g fails to be LL(1).
//
// An ambiguous table is not an error; every cell that could be filled is, and
// the conflicting ones hold all of the rules that compete for them.
func (g Grammar) ParsingTable(normalize bool) (LL1Table, bool) {
	src := g
	if normalize {
		src = g.RemoveLeftRecursion().RemoveLeftFactoring()
	}

	M := src.LLParseTable()
	return M, M.Ambiguous()
}

// LLParseTable builds the LL(1) parsing table for g exactly as it is.
//
// This is Algorithm 4.31, "Construction of a predictive parsing table" from
// the purple dragon book: for every rule A -> α, and for every terminal a in
// FIRST(α), add the rule to M[A, a]. If ε is in FIRST(α), add it to M[A, b]
// for every b in FOLLOW(A) as well ($ included).
func (g Grammar) LLParseTable() LL1Table {
	eps := g.Epsilon()

	M := LL1Table{
		cells:        map[string]map[string][]Rule{},
		nonTerminals: g.NonTerminals(),
		start:        g.StartSymbol(),
		epsilon:      eps,
		eof:          g.EOF(),
	}

	terms := g.Terminals()
	sort.Strings(terms)
	M.terminals = append(terms, g.EOF())

	for _, A := range g.heads {
		for _, r := range g.rules[A] {
			alphaFirst := g.FIRSTOf(r.Body)

			for _, a := range alphaFirst.Elements() {
				if a != eps {
					M.place(A, a, r)
					continue
				}
				for _, b := range g.FOLLOW(A).Elements() {
					M.place(A, b, r)
				}
			}
		}
	}

	return M
}

// place puts r in M[A, a]. If the cell already holds some other rule, the
// table becomes ambiguous.
func (M *LL1Table) place(A, a string, r Rule) {
	row, ok := M.cells[A]
	if !ok {
		row = map[string][]Rule{}
		M.cells[A] = row
	}

	for _, existing := range row[a] {
		if existing.Equal(r) {
			return
		}
	}

	if len(row[a]) > 0 {
		M.ambiguous = true
	}
	row[a] = append(row[a], r.Copy())
}

// Ambiguous returns whether any cell of M holds more than one rule.
func (M LL1Table) Ambiguous() bool {
	return M.ambiguous
}

// Get returns the rule in M[A, a]. It returns false if the cell is empty or
// holds more than one rule.
func (M LL1Table) Get(A, a string) (Rule, bool) {
	cell := M.cells[A][a]
	if len(cell) != 1 {
		return Rule{}, false
	}
	return cell[0].Copy(), true
}

// Cell returns every rule in M[A, a], in the order they were placed. It
// returns nil for an empty cell.
func (M LL1Table) Cell(A, a string) []Rule {
	cell := M.cells[A][a]
	if cell == nil {
		return nil
	}
	cp := make([]Rule, len(cell))
	for i := range cell {
		cp[i] = cell[i].Copy()
	}
	return cp
}

// Conflicts returns every cell of M holding more than one rule, ordered by
// row and then by column.
func (M LL1Table) Conflicts() []Conflict {
	var conflicts []Conflict
	for _, A := range M.NonTerminals() {
		for _, a := range M.Terminals() {
			cell := M.Cell(A, a)
			if len(cell) > 1 {
				conflicts = append(conflicts, Conflict{NonTerminal: A, Terminal: a, Rules: cell})
			}
		}
	}
	return conflicts
}

// NonTerminals returns the row labels of M in the order of the grammar it was
// built from.
func (M LL1Table) NonTerminals() []string {
	nts := make([]string, len(M.nonTerminals))
	copy(nts, M.nonTerminals)
	return nts
}

// Terminals returns the column labels of M: the terminals of the grammar it
// was built from in alphabetical order, followed by the end-of-input symbol.
func (M LL1Table) Terminals() []string {
	terms := make([]string, len(M.terminals))
	copy(terms, M.terminals)
	return terms
}

// StartSymbol returns the start symbol of the grammar M was built from.
func (M LL1Table) StartSymbol() string {
	return M.start
}

// EOF returns the end-of-input symbol of the grammar M was built from.
func (M LL1Table) EOF() string {
	return M.eof
}

// Rows returns the contents of M as text, one row per nonterminal and one
// column per terminal, with a header row and column of labels. Cells holding
// several rules list all of them separated by ", ".
func (M LL1Table) Rows() [][]string {
	terms := M.Terminals()

	topRow := []string{""}
	topRow = append(topRow, terms...)
	data := [][]string{topRow}

	for _, A := range M.NonTerminals() {
		dataRow := []string{A}
		for _, a := range terms {
			var ruleStrs []string
			for _, r := range M.cells[A][a] {
				ruleStrs = append(ruleStrs, r.String())
			}
			dataRow = append(dataRow, strings.Join(ruleStrs, ", "))
		}
		data = append(data, dataRow)
	}

	return data
}

// Render returns M drawn as a bordered text table no wider than width.
func (M LL1Table) Render(width int) string {
	return rosed.Edit("").
		InsertTableOpts(0, M.Rows(), width, rosed.Options{
			TableBorders: true,
		}).
		String()
}

// String returns M drawn as a bordered text table 80 characters wide.
func (M LL1Table) String() string {
	return M.Render(80)
}

// isNonTerminal returns whether sym labels a row of M.
func (M LL1Table) isNonTerminal(sym string) bool {
	for _, A := range M.nonTerminals {
		if A == sym {
			return true
		}
	}
	return false
}

// expected returns the terminals that have a rule in the row of A.
func (M LL1Table) expected(A string) []string {
	var terms []string
	row := M.cells[A]
	for _, a := range M.terminals {
		if len(row[a]) > 0 {
			terms = append(terms, a)
		}
	}
	return terms
}
