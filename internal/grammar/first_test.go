package grammar

import (
	"testing"

	"github.com/dekarrin/llgram/internal/util"
	"github.com/stretchr/testify/assert"
)

func Test_Grammar_FIRST(t *testing.T) {
	testCases := []struct {
		name   string
		rules  []string
		expect map[string][]string
	}{
		{
			name:  "purple dragon example 4.30",
			rules: exBookLL1,
			expect: map[string][]string{
				"E":  {"(", "id"},
				"E'": {"+", "ε"},
				"T":  {"(", "id"},
				"T'": {"*", "ε"},
				"F":  {"(", "id"},
				"id": {"id"},
				"+":  {"+"},
			},
		},
		{
			name:  "declarations",
			rules: exDeclarations,
			expect: map[string][]string{
				"P": {"int", "real", "ε"},
				"D": {"int", "real", "ε"},
				"T": {"int", "real"},
			},
		},
		{
			name:  "left-recursive grammar",
			rules: exLeftRecursiveExpr,
			expect: map[string][]string{
				"E": {"(", "id"},
				"T": {"(", "id"},
				"F": {"(", "id"},
			},
		},
		{
			name: "epsilon through left recursion",
			rules: []string{
				"A -> A x | ε",
			},
			expect: map[string][]string{
				"A": {"x", "ε"},
			},
		},
		{
			name: "epsilon only at end of nullable chain",
			rules: []string{
				"S -> A B c",
				"A -> a | ε",
				"B -> b | ε",
			},
			expect: map[string][]string{
				"S": {"a", "b", "c"},
				"A": {"a", "ε"},
				"B": {"b", "ε"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := setupGrammar(tc.rules)

			for sym, expect := range tc.expect {
				actual := g.FIRST(sym)
				assert.Equal(util.StringSetOf(expect...).Elements(), actual.Elements(), "FIRST(%s)", sym)
			}
		})
	}
}

func Test_Grammar_FIRSTOf(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar(exBookLL1)

	assert.Equal([]string{")", "*"}, g.FIRSTOf(Production{"T'", ")"}).Elements())
	assert.Equal([]string{"*", "+", "ε"}, g.FIRSTOf(Production{"T'", "E'"}).Elements())
	assert.Equal([]string{"ε"}, g.FIRSTOf(Production{"ε"}).Elements())
	assert.Equal([]string{"ε"}, g.FIRSTOf(nil).Elements())
}

func Test_Grammar_FOLLOW(t *testing.T) {
	testCases := []struct {
		name   string
		rules  []string
		expect map[string][]string
	}{
		{
			name:  "purple dragon example 4.30",
			rules: exBookLL1,
			expect: map[string][]string{
				"E":  {"$", ")"},
				"E'": {"$", ")"},
				"T":  {"$", ")", "+"},
				"T'": {"$", ")", "+"},
				"F":  {"$", ")", "*", "+"},
			},
		},
		{
			name:  "declarations",
			rules: exDeclarations,
			expect: map[string][]string{
				"P": {"$"},
				"D": {"$"},
				"T": {":"},
			},
		},
		{
			name: "mutual propagation cycle",
			rules: []string{
				"S -> A x",
				"A -> b B",
				"B -> c A | y | ε",
			},
			expect: map[string][]string{
				"S": {"$"},
				"A": {"x"},
				"B": {"x"},
			},
		},
		{
			name: "every occurrence in a body is counted",
			rules: []string{
				"S -> A a A b",
				"A -> c",
			},
			expect: map[string][]string{
				"A": {"a", "b"},
			},
		},
		{
			name:  "dangling else after factoring",
			rules: exDanglingElseFactored,
			expect: map[string][]string{
				"S":  {"$", "e"},
				"S'": {"$", "e"},
				"E":  {"t"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := setupGrammar(tc.rules)

			for sym, expect := range tc.expect {
				actual := g.FOLLOW(sym)
				assert.Equal(util.StringSetOf(expect...).Elements(), actual.Elements(), "FOLLOW(%s)", sym)
			}
		})
	}
}

func Test_Grammar_FOLLOW_cacheInvalidation(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar([]string{
		"S -> A a",
		"A -> b",
	})

	assert.Equal([]string{"a"}, g.FOLLOW("A").Elements())

	// the returned set must not alias the cache
	g.FOLLOW("A").Add("zzz")
	assert.Equal([]string{"a"}, g.FOLLOW("A").Elements())

	g.AddRule(MustRule("S", "A", "c"))
	assert.Equal([]string{"a", "c"}, g.FOLLOW("A").Elements())
	assert.Equal([]string{"b"}, g.FIRST("S").Elements())

	g.AddRule(MustRule("A", "d"))
	assert.Equal([]string{"b", "d"}, g.FIRST("S").Elements())

	g.RemoveRule(MustRule("S", "A", "a"))
	assert.Equal([]string{"c"}, g.FOLLOW("A").Elements())
}
