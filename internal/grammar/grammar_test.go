package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/dekarrin/llgram/internal/llerrors"
	"github.com/stretchr/testify/assert"
)

// example grammars shared between tests
var (
	exBookLL1 = []string{
		"E -> T E'",
		"E' -> + T E' | ε",
		"T -> F T'",
		"T' -> * F T' | ε",
		"F -> ( E ) | id",
	}

	exIndirectRecursion = []string{
		"S -> A a | b",
		"A -> A c | S d | ε",
	}

	exIndirectRecursionSolved = []string{
		"S -> A a | b",
		"A -> A' | b d A'",
		"A' -> c A' | a d A' | ε",
	}

	exLeftRecursiveExpr = []string{
		"E -> E + T | T",
		"T -> T * F | F",
		"F -> ( E ) | id",
	}

	exAmbiguous = []string{
		"S -> A | B",
		"A -> a A b | ε",
		"B -> a B b b | ε",
	}

	exDanglingElse = []string{
		"S -> i E t S | i E t S e S | a",
		"E -> b",
	}

	exDanglingElseFactored = []string{
		"S -> i E t S S' | a",
		"S' -> ε | e S",
		"E -> b",
	}

	exDeclarations = []string{
		"P -> D",
		"D -> T : id ; D | ε",
		"T -> real | int",
	}

	// every example grammar; transformations must work on all of them.
	allExamples = [][]string{
		exBookLL1,
		exIndirectRecursion,
		exIndirectRecursionSolved,
		exLeftRecursiveExpr,
		exAmbiguous,
		{
			"E -> pa Q R | pa Q S | pa T",
			"U -> e",
		},
		exDanglingElse,
		exDanglingElseFactored,
		{
			"X -> a A",
			"A -> x X",
		},
		{
			"S -> ( A ) | ε",
			"A -> T E",
			"E -> & T E | ε",
			"T -> ( A ) | a | b | c",
		},
		{
			"L -> % w D | U#",
			"U -> ! w D U | ε",
			"D -> : w D | w L",
		},
		{
			"S -> A B e",
			"A -> d B | a S | c",
			"B -> a S | c",
		},
		{
			"Exp -> Exp + Exp2 | Exp - Exp2 | Exp2",
			"Exp2 -> Exp2 * Exp3 | Exp2 / Exp3 | Exp3",
			"Exp3 -> num | ( Exp )",
		},
		{
			"E -> T + E | T",
			"T -> int | int * T | ( E )",
		},
		exDeclarations,
	}
)

func Test_NewRule(t *testing.T) {
	testCases := []struct {
		name      string
		head      string
		body      []string
		expectErr bool
	}{
		{
			name: "normal rule",
			head: "A",
			body: []string{"a", "B"},
		},
		{
			name: "epsilon rule",
			head: "A",
			body: []string{"ε"},
		},
		{
			name: "left-recursive rule",
			head: "A",
			body: []string{"A", "b"},
		},
		{
			name:      "self-loop",
			head:      "A",
			body:      []string{"A"},
			expectErr: true,
		},
		{
			name:      "empty body",
			head:      "A",
			expectErr: true,
		},
		{
			name:      "empty head",
			body:      []string{"a"},
			expectErr: true,
		},
		{
			name:      "empty symbol",
			head:      "A",
			body:      []string{"a", ""},
			expectErr: true,
		},
		{
			name: "symbols with spaces are allowed",
			head: "long name",
			body: []string{"a b", "c"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := NewRule(tc.head, tc.body...)

			if tc.expectErr {
				assert.Error(err)
				assert.True(errors.Is(err, llerrors.ErrInvalidProduction))
				return
			}
			if !assert.NoError(err) {
				return
			}
			assert.Equal(tc.head, actual.Head)
			assert.Equal(Production(tc.body), actual.Body)
		})
	}
}

func Test_Rule_IsLeftRecursive(t *testing.T) {
	assert := assert.New(t)

	assert.True(MustRule("A", "A", "b").IsLeftRecursive())
	assert.False(MustRule("A", "b", "A").IsLeftRecursive())
	assert.False(MustRule("A", "ε").IsLeftRecursive())
}

func Test_Grammar_AddRule(t *testing.T) {
	assert := assert.New(t)

	g := New("", "", "")

	assert.True(g.AddRule(MustRule("S", "a", "S")))
	assert.True(g.AddRule(MustRule("S", "b")))
	assert.False(g.AddRule(MustRule("S", "a", "S")), "duplicate rule was added")
	assert.True(g.AddRule(MustRule("A", "c")))

	assert.Equal(3, g.Len())
	assert.Equal([]string{"S", "A"}, g.NonTerminals())
	assert.Equal("S", g.StartSymbol())
	assert.Equal([]Rule{MustRule("S", "a", "S"), MustRule("S", "b")}, g.Rules("S"))

	assert.Panics(func() {
		g.AddRule(Rule{Head: "B", Body: Production{"B"}})
	})
}

func Test_Grammar_RemoveRule(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar(exDeclarations)

	assert.False(g.RemoveRule(MustRule("T", "bool")))
	assert.True(g.RemoveRule(MustRule("T", "real")))
	assert.Equal([]Rule{MustRule("T", "int")}, g.Rules("T"))

	assert.True(g.RemoveRule(MustRule("T", "int")))
	assert.False(g.IsNonTerminal("T"))
	assert.True(g.IsTerminal("T"), "symbol with no rules left should be a terminal")
	assert.Equal([]string{"P", "D"}, g.NonTerminals())
}

func Test_Grammar_Terminals(t *testing.T) {
	testCases := []struct {
		name    string
		rules   []string
		expectT []string
		expectN []string
	}{
		{
			name:    "book example",
			rules:   exBookLL1,
			expectT: []string{"+", "*", "(", ")", "id"},
			expectN: []string{"E", "E'", "T", "T'", "F"},
		},
		{
			name:    "declarations",
			rules:   exDeclarations,
			expectT: []string{":", "id", ";", "real", "int"},
			expectN: []string{"P", "D", "T"},
		},
		{
			name: "referenced nonterminal with no rules is a terminal",
			rules: []string{
				"S -> A b",
			},
			expectT: []string{"A", "b"},
			expectN: []string{"S"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := setupGrammar(tc.rules)

			assert.Equal(tc.expectT, g.Terminals())
			assert.Equal(tc.expectN, g.NonTerminals())
		})
	}
}

func Test_Grammar_Equal(t *testing.T) {
	assert := assert.New(t)

	g1 := setupGrammar([]string{
		"S -> a | b",
		"A -> c",
	})
	g2 := setupGrammar([]string{
		"S -> b",
		"A -> c",
		"S -> a",
	})
	g3 := setupGrammar([]string{
		"S -> a | b | c",
		"A -> c",
	})

	assert.True(g1.Equal(g2))
	assert.True(g1.Equal(&g2))
	assert.False(g1.Equal(g3))
	assert.False(g1.Equal("S -> a | b\nA -> c"))

	otherEps := MustParseBNF("S -> a | b\nA -> c", "e", "")
	assert.False(g1.Equal(otherEps))
}

func Test_Grammar_String(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar([]string{
		"S -> a S",
		"A -> ε",
		"S -> b",
	})

	assert.Equal("S -> a S | b\nA -> ε", g.String())
}

func Test_Grammar_String_RoundTrip(t *testing.T) {
	for _, ex := range allExamples {
		t.Run(ex[0], func(t *testing.T) {
			assert := assert.New(t)

			g := setupGrammar(ex)

			reparsed, err := ParseBNF(g.String(), g.Epsilon(), g.EOF())
			if !assert.NoError(err) {
				return
			}
			assert.True(g.Equal(reparsed), "round trip through String() changed the grammar:\nbefore:\n%s\nafter:\n%s", g, reparsed)
		})
	}
}

func Test_Grammar_Copy(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar(exDeclarations)
	cp := g.Copy()
	cp.AddRule(MustRule("T", "bool"))

	assert.Equal(5, g.Len())
	assert.Equal(6, cp.Len())
	assert.False(g.FIRST("P").Has("bool"))
	assert.True(cp.FIRST("P").Has("bool"))
}

func Test_Grammar_BinaryEncoding(t *testing.T) {
	assert := assert.New(t)

	g := MustParseBNF(strings.Join(exBookLL1, "\n"), "", "#")
	data, err := g.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var decoded Grammar
	err = decoded.UnmarshalBinary(data)
	if !assert.NoError(err) {
		return
	}

	assert.True(g.Equal(decoded))
	assert.Equal(g.String(), decoded.String(), "rule order not preserved")
	assert.Equal("#", decoded.EOF())

	err = decoded.UnmarshalBinary(data[:len(data)/2])
	assert.Error(err)
	assert.True(g.Equal(decoded), "failed decode modified the grammar")
}

// setupGrammar parses a grammar from the given lines of BNF, using the default
// epsilon and end-of-input symbols.
func setupGrammar(rules []string) Grammar {
	return MustParseBNF(strings.Join(rules, "\n"), "", "")
}

// assertIdenticalProductionSets asserts whether the two grammars have the same
// nonterminals and that all nonterminals with the same name have the same sets
// of productions, not necessarily in the same order.
func assertIdenticalProductionSets(assert *assert.Assertions, expect, actual Grammar) {
	expectNonTerminals := expect.NonTerminals()
	actualNonTerminals := actual.NonTerminals()

	if !assert.ElementsMatch(expectNonTerminals, actualNonTerminals, "grammars do not have the same non-terminals") {
		return
	}

	for _, nt := range expectNonTerminals {
		var expBodies, actBodies []string
		for _, r := range expect.Rules(nt) {
			expBodies = append(expBodies, r.Body.String())
		}
		for _, r := range actual.Rules(nt) {
			actBodies = append(actBodies, r.Body.String())
		}

		assert.ElementsMatchf(expBodies, actBodies, "expected %s to have same productions as %v but was %v", nt, expBodies, actBodies)
	}
}
