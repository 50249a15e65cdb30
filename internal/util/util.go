// Package util contains small generic helpers used across LLGram.
package util

import (
	"sort"
)

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	return Alphabetized(m)
}

// CustomComparable is an interface for items that may be checked against
// arbitrary other objects.
type CustomComparable interface {
	Equal(other any) bool
}

// EqualSlices checks that the two slices contain the same items in the same
// order, calling Equal on elements of sl1 with elements of sl2 as the
// argument.
func EqualSlices[T CustomComparable](sl1 []T, sl2 []T) bool {
	if len(sl1) != len(sl2) {
		return false
	}

	for i := range sl1 {
		if !sl1[i].Equal(sl2[i]) {
			return false
		}
	}

	return true
}

// SortBy sorts a copy of items using the given less function and returns the
// copy. The sort is stable.
func SortBy[E any](items []E, less func(left, right E) bool) []E {
	sorted := make([]E, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	return sorted
}

// Stack is a LIFO stack. The last element of Of is the top of the stack.
type Stack[E any] struct {
	Of []E
}

// Push puts v on top of the stack.
func (s *Stack[E]) Push(v E) {
	s.Of = append(s.Of, v)
}

// Pop removes and returns the top of the stack. It panics if the stack is
// empty.
func (s *Stack[E]) Pop() E {
	if len(s.Of) == 0 {
		panic("pop of empty stack")
	}
	v := s.Of[len(s.Of)-1]
	s.Of = s.Of[:len(s.Of)-1]
	return v
}

// Peek returns the top of the stack without removing it. If the stack is
// empty, the zero value of E is returned.
func (s Stack[E]) Peek() E {
	var v E
	if len(s.Of) > 0 {
		v = s.Of[len(s.Of)-1]
	}
	return v
}

// Len returns the number of items on the stack.
func (s Stack[E]) Len() int {
	return len(s.Of)
}

// Empty returns whether there are no items on the stack.
func (s Stack[E]) Empty() bool {
	return len(s.Of) == 0
}
