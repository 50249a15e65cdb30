package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_ParsingTable(t *testing.T) {
	testCases := []struct {
		name            string
		rules           []string
		normalize       bool
		expect          map[[2]string]string
		expectAmbiguous bool
	}{
		{
			name:      "left-recursive expression grammar, normalized",
			rules:     exLeftRecursiveExpr,
			normalize: true,
			expect: map[[2]string]string{
				{"E", "("}:   "E -> T E'",
				{"E", "id"}:  "E -> T E'",
				{"E'", "+"}:  "E' -> + T E'",
				{"E'", ")"}:  "E' -> ε",
				{"E'", "$"}:  "E' -> ε",
				{"T", "("}:   "T -> F T'",
				{"T", "id"}:  "T -> F T'",
				{"T'", "*"}:  "T' -> * F T'",
				{"T'", "+"}:  "T' -> ε",
				{"T'", ")"}:  "T' -> ε",
				{"T'", "$"}:  "T' -> ε",
				{"F", "id"}:  "F -> id",
				{"F", "("}:   "F -> ( E )",
			},
		},
		{
			name:  "declarations, as-is",
			rules: exDeclarations,
			expect: map[[2]string]string{
				{"P", "real"}: "P -> D",
				{"P", "int"}:  "P -> D",
				{"P", "$"}:    "P -> D",
				{"D", "int"}:  "D -> T : id ; D",
				{"D", "real"}: "D -> T : id ; D",
				{"D", "$"}:    "D -> ε",
				{"T", "int"}:  "T -> int",
				{"T", "real"}: "T -> real",
			},
		},
		{
			name:            "left-recursive expression grammar, as-is",
			rules:           exLeftRecursiveExpr,
			expectAmbiguous: true,
		},
		{
			name:            "indirect recursion, normalized",
			rules:           exIndirectRecursion,
			normalize:       true,
			expectAmbiguous: true,
		},
		{
			name:            "inherently ambiguous",
			rules:           exAmbiguous,
			normalize:       true,
			expectAmbiguous: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			g := setupGrammar(tc.rules)

			M, ambiguous := g.ParsingTable(tc.normalize)

			assert.Equal(tc.expectAmbiguous, ambiguous)
			assert.Equal(ambiguous, M.Ambiguous())
			assert.Equal(ambiguous, len(M.Conflicts()) > 0)

			if tc.expect == nil {
				return
			}

			actual := map[[2]string]string{}
			for _, A := range M.NonTerminals() {
				for _, a := range M.Terminals() {
					if r, ok := M.Get(A, a); ok {
						actual[[2]string{A, a}] = r.String()
					}
				}
			}
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Grammar_ParsingTable_danglingElse(t *testing.T) {
	assert := assert.New(t)

	g := setupGrammar(exDanglingElse)

	M, ambiguous := g.ParsingTable(true)

	r, ok := M.Get("S", "i")
	if assert.True(ok) {
		assert.Equal("S -> i E t S S'", r.String())
	}
	r, ok = M.Get("S", "a")
	if assert.True(ok) {
		assert.Equal("S -> a", r.String())
	}
	r, ok = M.Get("E", "b")
	if assert.True(ok) {
		assert.Equal("E -> b", r.String())
	}
	r, ok = M.Get("S'", "$")
	if assert.True(ok) {
		assert.Equal("S' -> ε", r.String())
	}

	// else can either close the nearest if or be left to an outer one.
	assert.True(ambiguous)
	conflicts := M.Conflicts()
	if assert.Len(conflicts, 1) {
		assert.Equal("M[S', e] = {S' -> ε, S' -> e S}", conflicts[0].String())
	}
	_, ok = M.Get("S'", "e")
	assert.False(ok, "Get returned a rule for a conflicting cell")
	assert.Len(M.Cell("S'", "e"), 2)
}

func Test_LL1Table_Terminals(t *testing.T) {
	assert := assert.New(t)

	M := setupGrammar(exBookLL1).LLParseTable()

	assert.Equal([]string{"(", ")", "*", "+", "id", "$"}, M.Terminals())
	assert.Equal([]string{"E", "E'", "T", "T'", "F"}, M.NonTerminals())
	assert.Equal("E", M.StartSymbol())
	assert.Equal("$", M.EOF())
	assert.Nil(M.Cell("F", "+"))
}

func Test_LL1Table_Rows(t *testing.T) {
	assert := assert.New(t)

	M := setupGrammar(exBookLL1).LLParseTable()

	rows := M.Rows()
	if !assert.Len(rows, 6) {
		return
	}
	assert.Equal([]string{"", "(", ")", "*", "+", "id", "$"}, rows[0])
	assert.Equal([]string{"E", "E -> T E'", "", "", "", "E -> T E'", ""}, rows[1])
	assert.Equal([]string{"E'", "", "E' -> ε", "", "E' -> + T E'", "", "E' -> ε"}, rows[2])

	ambig := setupGrammar(exDanglingElseFactored).LLParseTable().Rows()
	assert.Contains(ambig[2], "S' -> ε, S' -> e S")
}

func Test_LL1Table_Render(t *testing.T) {
	assert := assert.New(t)

	M := setupGrammar(exBookLL1).LLParseTable()

	rendered := M.Render(200)
	assert.Contains(rendered, "E' -> + T E'")
	assert.Contains(rendered, "T' -> * F T'")
	assert.NotEmpty(M.String())
}
