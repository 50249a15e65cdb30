// Package grammar contains the context-free grammar model used by LLGram along
// with the analyses and transformations needed to build LL(1) predictive
// parsing tables from it: FIRST and FOLLOW sets, left-recursion removal,
// left-factoring removal, and parsing table construction.
//
// A symbol is a nonterminal if and only if it is the head of at least one rule
// in the grammar; every other symbol in a body, except for the grammar's
// epsilon symbol, is a terminal. A symbol that is referenced but never given a
// rule is therefore a terminal.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/llgram/internal/util"
)

const (
	// DefaultEpsilon is the symbol used for the empty derivation when no other
	// is given.
	DefaultEpsilon = "ε"

	// DefaultEOF is the symbol used for end of input when no other is given.
	DefaultEOF = "$"
)

// Grammar is a context-free grammar. Rules are kept grouped by head, with
// heads in the order they were first added and the rules of each head in the
// order they were added. Adding a rule that already exists has no effect.
//
// Transformations of a Grammar return a new Grammar and leave the original
// as-is. Assigning a Grammar to another variable does not copy its rules;
// call Copy to get one that can be modified independently.
//
// The zero value is an empty grammar that uses DefaultEpsilon and DefaultEOF.
// Grammars are not safe for concurrent use.
type Grammar struct {
	// Start is the start symbol. If it is empty, the head of the first rule
	// added is used.
	Start string

	epsilon string
	eof     string

	heads []string
	rules map[string][]Rule

	cache *analysisCache
}

// analysisCache holds computed FIRST and FOLLOW sets. It is cleared entirely
// on any change to the rules.
type analysisCache struct {
	first  map[string]util.StringSet
	follow map[string]util.StringSet
}

func (c *analysisCache) clear() {
	c.first = nil
	c.follow = nil
}

// New returns an empty Grammar with the given start symbol and epsilon and
// end-of-input symbols. If start is empty, the head of the first rule added
// will be the start symbol. If epsilon or eof are empty, DefaultEpsilon and
// DefaultEOF are used respectively.
func New(start, epsilon, eof string) Grammar {
	return Grammar{
		Start:   start,
		epsilon: epsilon,
		eof:     eof,
		rules:   map[string][]Rule{},
		cache:   &analysisCache{},
	}
}

// emptyLike returns a new empty grammar with the same start, epsilon, and eof
// as g.
func (g Grammar) emptyLike() Grammar {
	return New(g.Start, g.epsilon, g.eof)
}

// Epsilon returns the symbol that denotes the empty derivation.
func (g Grammar) Epsilon() string {
	if g.epsilon == "" {
		return DefaultEpsilon
	}
	return g.epsilon
}

// EOF returns the symbol that denotes end of input.
func (g Grammar) EOF() string {
	if g.eof == "" {
		return DefaultEOF
	}
	return g.eof
}

// StartSymbol returns the start symbol of the grammar. If Start is not set,
// this is the head of the first rule; if there are no rules either, it is
// the empty string.
func (g Grammar) StartSymbol() string {
	if g.Start != "" {
		return g.Start
	}
	if len(g.heads) > 0 {
		return g.heads[0]
	}
	return ""
}

// AddRule adds r to the grammar. It returns false if an identical rule
// already exists, in which case the grammar is unchanged.
//
// r must be valid, as if created with NewRule; AddRule panics otherwise.
func (g *Grammar) AddRule(r Rule) bool {
	if _, err := NewRule(r.Head, r.Body...); err != nil {
		panic(fmt.Sprintf("add invalid rule: %s", err.Error()))
	}

	if g.rules == nil {
		g.rules = map[string][]Rule{}
	}

	existing, isHead := g.rules[r.Head]
	for i := range existing {
		if existing[i].Body.Equal(r.Body) {
			return false
		}
	}

	if !isHead {
		g.heads = append(g.heads, r.Head)
	}
	g.rules[r.Head] = append(existing, r.Copy())
	g.invalidate()
	return true
}

// Add creates the rule head -> body and adds it to the grammar. It returns an
// error matching llerrors.ErrInvalidProduction if the rule is not valid.
// Adding a rule that already exists is not an error.
func (g *Grammar) Add(head string, body ...string) error {
	r, err := NewRule(head, body...)
	if err != nil {
		return err
	}
	g.AddRule(r)
	return nil
}

// RemoveRule removes the rule equal to r from the grammar. It returns whether
// there was such a rule. If it was the last rule of its head, the head stops
// being a nonterminal.
func (g *Grammar) RemoveRule(r Rule) bool {
	existing := g.rules[r.Head]
	for i := range existing {
		if existing[i].Body.Equal(r.Body) {
			updated := make([]Rule, 0, len(existing)-1)
			updated = append(updated, existing[:i]...)
			updated = append(updated, existing[i+1:]...)

			if len(updated) == 0 {
				g.RemoveNonTerminal(r.Head)
			} else {
				g.rules[r.Head] = updated
				g.invalidate()
			}
			return true
		}
	}
	return false
}

// RemoveNonTerminal removes every rule of the given head. It returns whether
// there were any.
func (g *Grammar) RemoveNonTerminal(head string) bool {
	if _, ok := g.rules[head]; !ok {
		return false
	}

	delete(g.rules, head)
	for i := range g.heads {
		if g.heads[i] == head {
			updated := make([]string, 0, len(g.heads)-1)
			updated = append(updated, g.heads[:i]...)
			updated = append(updated, g.heads[i+1:]...)
			g.heads = updated
			break
		}
	}
	g.invalidate()
	return true
}

func (g *Grammar) invalidate() {
	if g.cache == nil {
		g.cache = &analysisCache{}
		return
	}
	g.cache.clear()
}

// NonTerminals returns the heads of the grammar in the order they were first
// added.
func (g Grammar) NonTerminals() []string {
	nts := make([]string, len(g.heads))
	copy(nts, g.heads)
	return nts
}

// Terminals returns every symbol used in a body that is neither a nonterminal
// nor epsilon, in the order they first appear.
func (g Grammar) Terminals() []string {
	var terms []string
	seen := util.StringSet{}

	for _, h := range g.heads {
		for _, r := range g.rules[h] {
			for _, sym := range r.Body {
				if seen.Has(sym) || g.IsNonTerminal(sym) || sym == g.Epsilon() {
					continue
				}
				seen.Add(sym)
				terms = append(terms, sym)
			}
		}
	}

	return terms
}

// IsNonTerminal returns whether sym is the head of at least one rule.
func (g Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.rules[sym]
	return ok
}

// IsTerminal returns whether sym is a terminal. Only symbols that appear in
// some body are considered; the epsilon and end-of-input symbols are not
// terminals.
func (g Grammar) IsTerminal(sym string) bool {
	if sym == g.Epsilon() || g.IsNonTerminal(sym) {
		return false
	}
	for _, h := range g.heads {
		for _, r := range g.rules[h] {
			if r.Body.HasSymbol(sym) {
				return true
			}
		}
	}
	return false
}

// Rules returns copies of all rules whose head is the given nonterminal, in
// the order they were added. It returns nil if head is not a nonterminal.
func (g Grammar) Rules(head string) []Rule {
	existing := g.rules[head]
	if existing == nil {
		return nil
	}
	rules := make([]Rule, len(existing))
	for i := range existing {
		rules[i] = existing[i].Copy()
	}
	return rules
}

// AllRules returns copies of every rule of the grammar, grouped by head.
func (g Grammar) AllRules() []Rule {
	var all []Rule
	for _, h := range g.heads {
		all = append(all, g.Rules(h)...)
	}
	return all
}

// Len returns the total number of rules in the grammar.
func (g Grammar) Len() int {
	count := 0
	for _, h := range g.heads {
		count += len(g.rules[h])
	}
	return count
}

// Copy returns a deep copy of g that does not share any storage with it.
func (g Grammar) Copy() Grammar {
	cp := g.emptyLike()
	for _, r := range g.AllRules() {
		cp.AddRule(r)
	}
	return cp
}

// Equal returns whether o is a Grammar (or *Grammar) with the same start,
// epsilon, and end-of-input symbols and the same set of rules. The order
// rules were added in does not matter.
func (g Grammar) Equal(o any) bool {
	other, ok := o.(Grammar)
	if !ok {
		otherPtr, ok := o.(*Grammar)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if g.StartSymbol() != other.StartSymbol() || g.Epsilon() != other.Epsilon() || g.EOF() != other.EOF() {
		return false
	}
	if g.Len() != other.Len() {
		return false
	}

	keys := map[string]bool{}
	for _, r := range g.AllRules() {
		keys[r.key()] = true
	}
	for _, r := range other.AllRules() {
		if !keys[r.key()] {
			return false
		}
	}
	return true
}

// String returns the grammar in BNF, one line per nonterminal with all of its
// alternatives separated by " | ". The result can be read back with ParseBNF.
func (g Grammar) String() string {
	var sb strings.Builder

	for i, h := range g.heads {
		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(h)
		sb.WriteString(" ->")
		for j, r := range g.rules[h] {
			if j > 0 {
				sb.WriteString(" |")
			}
			sb.WriteRune(' ')
			sb.WriteString(r.Body.String())
		}
	}

	return sb.String()
}

// normalizeEpsilons returns a copy of g in which every body longer than one
// symbol has had its epsilons removed. A body made only of epsilons becomes
// the single epsilon body.
func (g Grammar) normalizeEpsilons() Grammar {
	norm := g.emptyLike()
	for _, h := range g.heads {
		for _, r := range g.rules[h] {
			r.Body = dropEpsilons(r.Body, g.Epsilon())
			if len(r.Body) == 1 && r.Body[0] == r.Head {
				// only an epsilon-padded self loop; it derives nothing.
				continue
			}
			norm.AddRule(r)
		}
	}
	return norm
}

// dropEpsilons returns body with epsilon removed when it is longer than one
// symbol.
func dropEpsilons(body Production, epsilon string) Production {
	if len(body) < 2 {
		return body.Copy()
	}

	var dropped Production
	for _, sym := range body {
		if sym != epsilon {
			dropped = append(dropped, sym)
		}
	}
	if len(dropped) == 0 {
		return Production{epsilon}
	}
	return dropped
}

// concat returns the concatenation of the given bodies as it would be
// written after epsilon removal.
func concat(epsilon string, bodies ...Production) Production {
	var joined Production
	for _, b := range bodies {
		joined = append(joined, b...)
	}
	return dropEpsilons(joined, epsilon)
}
