package grammar

import (
	"github.com/dekarrin/llgram/internal/util"
)

// FIRST returns FIRST(X): the set of terminals that can begin a string derived
// from X, including epsilon if X can derive the empty string. For a terminal
// (or any symbol that is not a nonterminal of g), this is just {X}.
//
// The returned set may be freely modified by the caller.
func (g Grammar) FIRST(X string) util.StringSet {
	if g.IsNonTerminal(X) {
		return g.firstSets()[X].Copy()
	}
	return util.StringSetOf(X)
}

// FIRSTOf returns the FIRST set of a sequence of symbols. Symbols are scanned
// left to right, adding FIRST of each and stopping at the first one that
// cannot derive epsilon. Epsilon is in the result only if every symbol can
// derive it. FIRSTOf of an empty sequence is {ε}.
func (g Grammar) FIRSTOf(body Production) util.StringSet {
	return g.firstOfUsing(body, g.firstSets())
}

// firstOfUsing gives FIRST of body taking FIRST of nonterminals from sets.
func (g Grammar) firstOfUsing(body Production, sets map[string]util.StringSet) util.StringSet {
	eps := g.Epsilon()
	first := util.StringSet{}

	for _, sym := range body {
		var symFirst util.StringSet
		if g.IsNonTerminal(sym) {
			symFirst = sets[sym]
		} else {
			symFirst = util.StringSetOf(sym)
		}

		for t := range symFirst {
			if t != eps {
				first.Add(t)
			}
		}
		if !symFirst.Has(eps) {
			return first
		}
	}

	// every symbol (if any) can derive epsilon
	first.Add(eps)
	return first
}

// firstSets returns FIRST of every nonterminal. They are found together by
// growing each set until none of them change, which gives the smallest sets
// that satisfy FIRST(A) = union of FIRST(body) over every body of A. Finding
// them this way instead of by recursion means left-recursive grammars are fine.
func (g Grammar) firstSets() map[string]util.StringSet {
	if g.cache != nil && g.cache.first != nil {
		return g.cache.first
	}

	sets := make(map[string]util.StringSet, len(g.heads))
	for _, h := range g.heads {
		sets[h] = util.StringSet{}
	}

	updated := true
	for updated {
		updated = false
		for _, h := range g.heads {
			for _, r := range g.rules[h] {
				if sets[h].AddAll(g.firstOfUsing(r.Body, sets)) {
					updated = true
				}
			}
		}
	}

	if g.cache != nil {
		g.cache.first = sets
	}
	return sets
}

// FOLLOW returns FOLLOW(X): the set of terminals that can come immediately
// after X in some sentential form derived from the start symbol, including the
// end-of-input symbol if X can end one.
//
// The returned set may be freely modified by the caller.
func (g Grammar) FOLLOW(X string) util.StringSet {
	return g.follow(X, util.StringSet{}).Copy()
}

// follow finds FOLLOW(X). path holds the symbols whose FOLLOW set is being
// found further up the current chain of calls; FOLLOW of a symbol already on
// the path adds nothing, since whatever it would add is about to be added by
// the call that is already finding it.
//
// Because of that, the result of a call with a non-empty path may be missing
// members, so only results for an empty path are kept in the cache.
func (g Grammar) follow(X string, path util.StringSet) util.StringSet {
	if g.cache != nil && g.cache.follow != nil {
		if cached, ok := g.cache.follow[X]; ok {
			return cached
		}
	}

	eps := g.Epsilon()
	topLevel := path.Empty()

	path.Add(X)
	defer path.Remove(X)

	followSet := util.StringSet{}
	if X == g.StartSymbol() {
		followSet.Add(g.EOF())
	}

	for _, h := range g.heads {
		for _, r := range g.rules[h] {
			for i := range r.Body {
				if r.Body[i] != X {
					continue
				}

				beta := r.Body[i+1:]
				propagate := true
				if len(beta) > 0 {
					betaFirst := g.FIRSTOf(beta)
					for t := range betaFirst {
						if t != eps {
							followSet.Add(t)
						}
					}
					propagate = betaFirst.Has(eps)
				}

				if propagate && !path.Has(h) {
					followSet.AddAll(g.follow(h, path))
				}
			}
		}
	}

	if topLevel && g.cache != nil {
		if g.cache.follow == nil {
			g.cache.follow = map[string]util.StringSet{}
		}
		g.cache.follow[X] = followSet
	}

	return followSet
}
