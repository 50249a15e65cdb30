package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/dekarrin/llgram/internal/llerrors"
	"github.com/stretchr/testify/assert"
)

func Test_LL1Table_Recognize(t *testing.T) {
	testCases := []struct {
		name           string
		rules          []string
		normalize      bool
		input          string
		expectErr      bool
		expectPos      int
		expectToken    string
		expectExpected []string
	}{
		{
			name:      "expression accepted",
			rules:     exLeftRecursiveExpr,
			normalize: true,
			input:     "id + id * id",
		},
		{
			name:      "parenthesized expression accepted",
			rules:     exLeftRecursiveExpr,
			normalize: true,
			input:     "( id + id ) * id",
		},
		{
			name:           "missing operand",
			rules:          exLeftRecursiveExpr,
			normalize:      true,
			input:          "id +",
			expectErr:      true,
			expectPos:      2,
			expectToken:    "$",
			expectExpected: []string{"(", "id"},
		},
		{
			name:           "two operands in a row",
			rules:          exLeftRecursiveExpr,
			normalize:      true,
			input:          "id id",
			expectErr:      true,
			expectPos:      1,
			expectToken:    "id",
			expectExpected: []string{")", "*", "+", "$"},
		},
		{
			name:           "unbalanced parenthesis",
			rules:          exLeftRecursiveExpr,
			normalize:      true,
			input:          "( id",
			expectErr:      true,
			expectPos:      2,
			expectToken:    "$",
			expectExpected: []string{")"},
		},
		{
			name:  "declarations accepted",
			rules: exDeclarations,
			input: "int : id ; real : id ;",
		},
		{
			name:  "empty declaration list accepted",
			rules: exDeclarations,
			input: "",
		},
		{
			name:        "left-recursive table is rejected instead of looping",
			rules:       exLeftRecursiveExpr,
			input:       "id",
			expectErr:   true,
			expectPos:   0,
			expectToken: "id",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			M, _ := setupGrammar(tc.rules).ParsingTable(tc.normalize)

			err := M.Recognize(strings.Fields(tc.input))

			if !tc.expectErr {
				assert.NoError(err)
				return
			}

			assert.True(errors.Is(err, llerrors.ErrParse))
			var pErr *llerrors.ParseError
			if !assert.True(errors.As(err, &pErr)) {
				return
			}
			assert.Equal(tc.expectPos, pErr.Pos)
			assert.Equal(tc.expectToken, pErr.Token)
			if tc.expectExpected != nil {
				assert.Equal(tc.expectExpected, pErr.Expected)
			}
		})
	}
}
