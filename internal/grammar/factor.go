package grammar

import (
	"fmt"

	"github.com/dekarrin/llgram/internal/util"
)

// RemoveLeftFactoring returns a grammar that derives the same language as g
// but in which no two alternatives of any nonterminal begin with the same
// symbol. g is not modified.
//
// This is Algorithm 4.21 from the purple dragon book, applied until nothing
// changes. In each pass, the alternatives of each nonterminal A are grouped by
// their first symbol. For every group with more than one member, the longest
// prefix α shared by all of them is found, and the group
//
//	A -> α β1 | α β2 | ... | α βn
//
// is replaced with
//
//	A  -> α A'
//	A' -> β1 | β2 | ... | βn
//
// where an empty β becomes epsilon. New nonterminals are named the same way as
// in RemoveLeftRecursion, each group getting its own.
func (g Grammar) RemoveLeftFactoring() Grammar {
	cur := g.normalizeEpsilons()
	cur.Start = g.StartSymbol()

	for cur.HasLeftFactors() {
		next := cur.leftFactorPass()
		if next.Equal(cur) {
			// every pass over a grammar with left factors splits at least one
			// group, so this can only happen due to a bug.
			panic(fmt.Sprintf("left-factoring pass made no progress on grammar:\n%s", cur.String()))
		}
		cur = next
	}

	return cur
}

// HasLeftFactors returns whether any nonterminal of g has two or more
// alternatives that begin with the same symbol.
func (g Grammar) HasLeftFactors() bool {
	for _, h := range g.heads {
		firsts := util.StringSet{}
		for _, r := range g.rules[h] {
			if firsts.Has(r.Body[0]) {
				return true
			}
			firsts.Add(r.Body[0])
		}
	}
	return false
}

// leftFactorPass does a single pass of left-factoring over all nonterminals.
func (g Grammar) leftFactorPass() Grammar {
	eps := g.Epsilon()

	taken := util.StringSetOf(g.NonTerminals()...)
	for _, t := range g.Terminals() {
		taken.Add(t)
	}

	out := g.emptyLike()

	for _, h := range g.heads {
		var groupOrder []string
		groups := map[string][]Production{}
		for _, r := range g.rules[h] {
			first := r.Body[0]
			if _, ok := groups[first]; !ok {
				groupOrder = append(groupOrder, first)
			}
			groups[first] = append(groups[first], r.Body)
		}

		for _, first := range groupOrder {
			members := groups[first]
			if len(members) == 1 {
				out.AddRule(Rule{Head: h, Body: members[0]})
				continue
			}

			prefix := longestCommonPrefix(members)
			fresh := freshName(h, taken)
			taken.Add(fresh)

			out.AddRule(Rule{Head: h, Body: concat(eps, prefix, Production{fresh})})
			for _, m := range members {
				suffix := m[len(prefix):]
				if len(suffix) == 0 {
					suffix = Production{eps}
				}
				out.AddRule(Rule{Head: fresh, Body: suffix.Copy()})
			}
		}
	}

	return out.normalizeEpsilons()
}

// longestCommonPrefix returns the longest sequence of symbols that begins
// every one of prods. prods must not be empty.
func longestCommonPrefix(prods []Production) Production {
	prefix := prods[0]
	for _, p := range prods[1:] {
		n := 0
		for n < len(prefix) && n < len(p) && prefix[n] == p[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix.Copy()
}
