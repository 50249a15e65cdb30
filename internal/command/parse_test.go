package command

import (
	"errors"
	"testing"

	"github.com/dekarrin/llgram/internal/llerrors"
	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Command
		expectErr bool
	}{
		{
			name:   "blank",
			input:  "   ",
			expect: Command{},
		},
		{
			name:  "add keeps case of rule",
			input: "add  S -> a B | ε ",
			expect: Command{
				Verb: "ADD",
				Args: []string{"S", "->", "a", "B", "|", "ε"},
				Text: "S -> a B | ε",
			},
		},
		{
			name:  "bare rule is added",
			input: "Expr -> Expr + Term",
			expect: Command{
				Verb: "ADD",
				Args: []string{"Expr", "->", "Expr", "+", "Term"},
				Text: "Expr -> Expr + Term",
			},
		},
		{
			name:      "rule headed by a verb is a command",
			input:     "first -> a",
			expectErr: true,
		},
		{
			name:   "alias",
			input:  "bye",
			expect: Command{Verb: "QUIT"},
		},
		{
			name:   "first of symbol",
			input:  "FIRST E'",
			expect: Command{Verb: "FIRST", Args: []string{"E'"}, Text: "E'"},
		},
		{
			name:   "check with tokens",
			input:  "check id + id",
			expect: Command{Verb: "CHECK", Args: []string{"id", "+", "id"}, Text: "id + id"},
		},
		{
			name:   "check empty string",
			input:  "CHECK",
			expect: Command{Verb: "CHECK"},
		},
		{
			name:   "normalize off",
			input:  "normalize no",
			expect: Command{Verb: "NORMALIZE", Args: []string{"OFF"}, Text: "no"},
		},
		{
			name:      "normalize bad value",
			input:     "normalize maybe",
			expectErr: true,
		},
		{
			name:      "add without rule",
			input:     "ADD S",
			expectErr: true,
		},
		{
			name:      "follow without symbol",
			input:     "FOLLOW",
			expectErr: true,
		},
		{
			name:      "table with args",
			input:     "TABLE please",
			expectErr: true,
		},
		{
			name:      "unknown verb",
			input:     "DANCE",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := Parse(tc.input)
			if tc.expectErr {
				assert.True(errors.Is(err, llerrors.ErrBadCommand), "expected bad command error but got: %v", err)
				return
			}
			if !assert.NoError(err) {
				return
			}

			assert.Equal(tc.expect, actual)
		})
	}
}
