package grammar

import (
	"github.com/dekarrin/llgram/internal/util"
)

// PrimeMarker is appended to the name of a nonterminal to create a new one
// derived from it.
const PrimeMarker = "'"

// RemoveLeftRecursion returns a grammar that derives the same language as g
// but in which no nonterminal is left-recursive, either immediately (A -> A α)
// or through other nonterminals (A -> B α, B -> A β). g is not modified.
//
// This is Algorithm 4.19 from the purple dragon book, with two changes: the
// nonterminals are ordered as they first appear in g, and a production
// Ai -> Aj γ is only rewritten in terms of Aj's bodies if doing so exposes
// immediate left recursion on Ai, which keeps grammars that have no indirect
// recursion from growing for no reason. Nonterminals that are not
// left-recursive keep their productions as they were.
//
// Each new nonterminal is named after the one it was split from with
// PrimeMarker appended as many times as needed to get a name that is not
// already a symbol of the grammar.
//
// A nonterminal whose every production is left-recursive derives no terminal
// string at all. It is replaced by only its primed nonterminal; callers that
// care can check for nonterminals of g missing from the result.
func (g Grammar) RemoveLeftRecursion() Grammar {
	eps := g.Epsilon()
	order := g.NonTerminals()

	taken := util.StringSetOf(order...)
	for _, t := range g.Terminals() {
		taken.Add(t)
	}

	// working copy of the bodies for each nonterminal. by the time Ai is
	// processed, the entry for every Aj with j < i holds its final
	// productions.
	bodies := map[string][]Production{}
	for _, h := range order {
		for _, r := range g.rules[h] {
			bodies[h] = appendUniqueProduction(bodies[h], dropEpsilons(r.Body, eps))
		}
	}

	out := g.emptyLike()
	out.Start = g.StartSymbol()

	for i, Ai := range order {
		for j := 0; j < i; j++ {
			bodies[Ai] = substituteLeading(Ai, order[j], bodies[Ai], bodies[order[j]], eps)
		}

		// eliminate immediate left recursion.
		//
		// A -> A α1 | A α2 | ... | A αm | β1 | β2 | ... | βn
		//
		// becomes
		//
		// A  -> β1 A' | β2 A' | ... | βn A'
		// A' -> α1 A' | α2 A' | ... | αm A' | ε
		var alphas, betas []Production
		for _, body := range bodies[Ai] {
			if body[0] == Ai {
				if len(body) > 1 {
					alphas = append(alphas, body[1:])
				}
				// A -> A by itself is a loop that derives nothing and is
				// dropped.
			} else {
				betas = append(betas, body)
			}
		}

		if len(alphas) == 0 {
			for _, beta := range betas {
				out.AddRule(Rule{Head: Ai, Body: beta})
			}
			bodies[Ai] = betas
			continue
		}

		AiPrime := freshName(Ai, taken)
		taken.Add(AiPrime)

		var newAiBodies []Production
		for _, beta := range betas {
			body := concat(eps, beta, Production{AiPrime})
			newAiBodies = appendUniqueProduction(newAiBodies, body)
			out.AddRule(Rule{Head: Ai, Body: body})
		}
		for _, alpha := range alphas {
			body := concat(eps, alpha, Production{AiPrime})
			if len(body) == 1 && body[0] == AiPrime {
				// alpha was only epsilon, so this is A' -> A'.
				continue
			}
			out.AddRule(Rule{Head: AiPrime, Body: body})
		}
		out.AddRule(Rule{Head: AiPrime, Body: Production{eps}})

		bodies[Ai] = newAiBodies
	}

	return out.normalizeEpsilons()
}

// substituteLeading replaces every body of Ai that starts with Aj with the
// bodies made by putting each of AjBodies in place of the leading Aj, but only
// if at least one of the new bodies then starts with Ai. The new list of
// bodies for Ai is returned.
func substituteLeading(Ai, Aj string, AiBodies, AjBodies []Production, eps string) []Production {
	var updated []Production

	for _, body := range AiBodies {
		if body[0] != Aj {
			updated = appendUniqueProduction(updated, body)
			continue
		}

		gamma := body[1:]
		var replaced []Production
		exposesRecursion := false
		for _, delta := range AjBodies {
			newBody := concat(eps, delta, gamma)
			if len(newBody) == 1 && newBody[0] == Ai {
				continue
			}
			if newBody[0] == Ai {
				exposesRecursion = true
			}
			replaced = append(replaced, newBody)
		}

		if exposesRecursion {
			for _, r := range replaced {
				updated = appendUniqueProduction(updated, r)
			}
		} else {
			updated = appendUniqueProduction(updated, body)
		}
	}

	return updated
}

// LeftRecursiveNonTerminals returns the nonterminals of g that can derive a
// sentential form beginning with themselves, in the order they appear in g.
// Both immediate and indirect recursion are found, including recursion hidden
// behind a prefix of symbols that can derive epsilon.
func (g Grammar) LeftRecursiveNonTerminals() []string {
	eps := g.Epsilon()

	// leftmost[A] is every nonterminal that can be the first symbol of a
	// body of A once any nullable prefix is taken away.
	leftmost := map[string]util.StringSet{}
	for _, h := range g.heads {
		leftmost[h] = util.StringSet{}
		for _, r := range g.rules[h] {
			for _, sym := range r.Body {
				if sym == eps {
					continue
				}
				if !g.IsNonTerminal(sym) {
					break
				}
				leftmost[h].Add(sym)
				if !g.FIRST(sym).Has(eps) {
					break
				}
			}
		}
	}

	var recursive []string
	for _, h := range g.heads {
		visited := util.StringSet{}
		pending := leftmost[h].Elements()
		for len(pending) > 0 {
			next := pending[0]
			pending = pending[1:]
			if next == h {
				recursive = append(recursive, h)
				break
			}
			if visited.Has(next) {
				continue
			}
			visited.Add(next)
			pending = append(pending, leftmost[next].Elements()...)
		}
	}

	return recursive
}

// freshName returns the shortest name made by appending PrimeMarker to base
// that is not in taken.
func freshName(base string, taken util.StringSet) string {
	name := base + PrimeMarker
	for taken.Has(name) {
		name += PrimeMarker
	}
	return name
}

func appendUniqueProduction(list []Production, p Production) []Production {
	for i := range list {
		if list[i].Equal(p) {
			return list
		}
	}
	return append(list, p)
}
