package serr

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Error(t *testing.T) {
	testCases := []struct {
		name      string
		err       Error
		expectMsg string
		expectIs  []error
		expectNot []error
	}{
		{
			name:      "message only",
			err:       New("bad thing"),
			expectMsg: "bad thing",
			expectNot: []error{ErrDB},
		},
		{
			name:      "message and causes",
			err:       New("grammar line 2", ErrInvalidGrammar, ErrBadArgument),
			expectMsg: "grammar line 2: " + ErrInvalidGrammar.Error(),
			expectIs:  []error{ErrInvalidGrammar, ErrBadArgument},
			expectNot: []error{ErrNotFound},
		},
		{
			name:      "cause only",
			err:       New("", ErrNotFound),
			expectMsg: ErrNotFound.Error(),
			expectIs:  []error{ErrNotFound},
		},
		{
			name:      "DB wrap",
			err:       WrapDB("could not get analysis", errors.New("disk full")),
			expectMsg: "could not get analysis: disk full",
			expectIs:  []error{ErrDB},
		},
		{
			name:      "wrapped cause",
			err:       New("lookup", fmt.Errorf("inner: %w", ErrNotFound)),
			expectMsg: "lookup: inner: " + ErrNotFound.Error(),
			expectIs:  []error{ErrNotFound},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expectMsg, tc.err.Error())
			for _, target := range tc.expectIs {
				assert.ErrorIs(tc.err, target)
			}
			for _, target := range tc.expectNot {
				assert.NotErrorIs(tc.err, target)
			}
		})
	}
}

type codeErr struct{ code int }

func (ce *codeErr) Error() string { return "code" }

func Test_Error_As(t *testing.T) {
	assert := assert.New(t)

	err := New("", ErrInvalidGrammar, &codeErr{code: 19})

	var target *codeErr
	if assert.True(errors.As(err, &target)) {
		assert.Equal(19, target.code)
	}

	var pathErr *fs.PathError
	assert.False(errors.As(err, &pathErr))
}
