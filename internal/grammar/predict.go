package grammar

import (
	"github.com/dekarrin/llgram/internal/llerrors"
	"github.com/dekarrin/llgram/internal/util"
)

// Recognize runs a table-driven predictive parse of tokens and returns nil if
// they form a sentence of the grammar M was built from. Otherwise, the returned
// error is a *llerrors.ParseError for the first token that could not be
// matched.
//
// tokens should not include the end-of-input symbol; it is added
// automatically. If M is ambiguous, the first rule placed in a conflicting
// cell is used, so a rejection from an ambiguous table does not prove the
// tokens are not in the language.
//
// This is Algorithm 4.34, "Table-driven predictive parsing" from the purple
// dragon book.
func (M LL1Table) Recognize(tokens []string) error {
	input := make([]string, len(tokens), len(tokens)+1)
	copy(input, tokens)
	input = append(input, M.eof)

	stack := util.Stack[string]{Of: []string{M.eof, M.start}}
	pos := 0

	// height of the stack beneath each nonterminal that is being expanded
	// without having consumed a token yet. if a nonterminal comes up again
	// while the stack is still above that height, it came from its own
	// expansion and is left-recursive; expanding it would never stop.
	expanding := map[string]int{}

	for stack.Peek() != M.eof {
		X := stack.Peek()
		a := input[pos]

		if !M.isNonTerminal(X) {
			if X != a {
				return llerrors.Rejected(pos, a, []string{X}, "expected %q", X)
			}
			stack.Pop()
			pos++
			expanding = map[string]int{}
			continue
		}

		cell := M.cells[X][a]
		if len(cell) == 0 {
			return llerrors.Rejected(pos, a, M.expected(X), "no production of %s begins with %q", X, a)
		}

		if _, ok := expanding[X]; ok {
			return llerrors.Rejected(pos, a, nil, "%s is left-recursive and cannot be expanded predictively", X)
		}

		stack.Pop()
		expanding[X] = stack.Len()
		body := cell[0].Body
		for i := len(body) - 1; i >= 0; i-- {
			if body[i] != M.epsilon {
				stack.Push(body[i])
			}
		}

		for nt, h := range expanding {
			if stack.Len() <= h {
				delete(expanding, nt)
			}
		}
	}

	if pos != len(tokens) {
		return llerrors.Rejected(pos, input[pos], []string{M.eof}, "expected end of input")
	}

	return nil
}
