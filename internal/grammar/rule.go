package grammar

import (
	"strings"

	"github.com/dekarrin/llgram/internal/llerrors"
)

// Production is the ordered body of a Rule. The empty derivation is written
// as a Production holding only the epsilon symbol of its grammar; a Production
// of length zero is never a valid body.
type Production []string

// Copy returns a deep copy of p.
func (p Production) Copy() Production {
	if p == nil {
		return nil
	}
	cp := make(Production, len(p))
	copy(cp, p)
	return cp
}

// Equal returns whether o is a Production (or []string) with the same symbols
// as p in the same order.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		sl, ok := o.([]string)
		if !ok {
			return false
		}
		other = Production(sl)
	}

	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String returns the symbols of p joined by single spaces.
func (p Production) String() string {
	return strings.Join(p, " ")
}

// HasSymbol returns whether sym appears anywhere in p.
func (p Production) HasSymbol(sym string) bool {
	for i := range p {
		if p[i] == sym {
			return true
		}
	}
	return false
}

// key is used to index productions in maps.
func (p Production) key() string {
	// unit separator; symbols from text never hold it since they are split on
	// whitespace, and programmatic ones are very unlikely to.
	return strings.Join(p, "\x1f")
}

// Rule is a single production of a grammar: a head nonterminal and one body it
// can expand to. Alternatives of the same nonterminal are separate Rules that
// share a Head.
//
// Rule should not be created directly with a struct literal; use NewRule so
// that its invariants are checked.
type Rule struct {
	Head string
	Body Production
}

// NewRule creates a Rule with the given head and body symbols. It returns an
// error matching llerrors.ErrInvalidProduction if the head is empty, the body
// is empty, or the body consists of only the head.
func NewRule(head string, body ...string) (Rule, error) {
	if head == "" {
		return Rule{}, llerrors.Production(head, body, "has an empty head")
	}
	if len(body) == 0 {
		return Rule{}, llerrors.Production(head, body, "has an empty body")
	}
	for i := range body {
		if body[i] == "" {
			return Rule{}, llerrors.Production(head, body, "has an empty symbol")
		}
	}
	if len(body) == 1 && body[0] == head {
		return Rule{}, llerrors.Production(head, body, "derives only its own head")
	}

	return Rule{Head: head, Body: Production(body).Copy()}, nil
}

// MustRule is like NewRule but panics on error.
func MustRule(head string, body ...string) Rule {
	r, err := NewRule(head, body...)
	if err != nil {
		panic(err.Error())
	}
	return r
}

// Copy returns a deep copy of r.
func (r Rule) Copy() Rule {
	return Rule{Head: r.Head, Body: r.Body.Copy()}
}

// IsLeftRecursive returns whether the body of r begins with its head.
func (r Rule) IsLeftRecursive() bool {
	return len(r.Body) > 0 && r.Body[0] == r.Head
}

// Equal returns whether o is a Rule (or *Rule) with the same head and body.
func (r Rule) Equal(o any) bool {
	other, ok := o.(Rule)
	if !ok {
		otherPtr, ok := o.(*Rule)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	return r.Head == other.Head && r.Body.Equal(other.Body)
}

// String returns the rule in BNF, e.g. "A -> b C d".
func (r Rule) String() string {
	return r.Head + " -> " + r.Body.String()
}

func (r Rule) key() string {
	return r.Head + "\x1e" + r.Body.key()
}
