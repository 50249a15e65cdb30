package util

import (
	"sort"
	"strings"
)

// StringSet is a set of strings backed by a map. The zero value is an empty
// set that can be read from but must be made with make() or NewStringSet
// before elements are added.
type StringSet map[string]bool

// NewStringSet creates a new StringSet containing every key of the given maps
// whose value is true.
func NewStringSet(of ...map[string]bool) StringSet {
	s := StringSet{}
	for _, m := range of {
		for k := range m {
			if m[k] {
				s[k] = true
			}
		}
	}
	return s
}

// StringSetOf returns a StringSet containing the given elements.
func StringSetOf(sl ...string) StringSet {
	s := make(StringSet, len(sl))
	for i := range sl {
		s[sl[i]] = true
	}
	return s
}

// Copy returns a new StringSet with the same elements as s.
func (s StringSet) Copy() StringSet {
	cp := make(StringSet, len(s))
	for k := range s {
		cp[k] = true
	}
	return cp
}

// Has returns whether value is in s.
func (s StringSet) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Add adds value to s.
func (s StringSet) Add(value string) {
	s[value] = true
}

// Remove removes value from s. It is not an error to remove a value that is
// not present.
func (s StringSet) Remove(value string) {
	delete(s, value)
}

// Len returns the number of elements in s.
func (s StringSet) Len() int {
	return len(s)
}

// Empty returns whether s has no elements.
func (s StringSet) Empty() bool {
	return len(s) == 0
}

// AddAll adds every element of o to s and returns whether s grew as a result.
func (s StringSet) AddAll(o StringSet) bool {
	grew := false
	for k := range o {
		if !s.Has(k) {
			s[k] = true
			grew = true
		}
	}
	return grew
}

// Union returns a new set with the elements of both s and o.
func (s StringSet) Union(o StringSet) StringSet {
	u := s.Copy()
	u.AddAll(o)
	return u
}

// Difference returns a new set with the elements of s that are not in o.
func (s StringSet) Difference(o StringSet) StringSet {
	d := StringSet{}
	for k := range s {
		if !o.Has(k) {
			d[k] = true
		}
	}
	return d
}

// Intersection returns a new set with the elements in both s and o.
func (s StringSet) Intersection(o StringSet) StringSet {
	in := StringSet{}
	for k := range s {
		if o.Has(k) {
			in[k] = true
		}
	}
	return in
}

// DisjointWith returns whether s and o share no elements.
func (s StringSet) DisjointWith(o StringSet) bool {
	for k := range s {
		if o.Has(k) {
			return false
		}
	}
	return true
}

// Equal returns whether o is a StringSet (or map[string]bool) with exactly the
// same elements as s.
func (s StringSet) Equal(o any) bool {
	other, ok := o.(StringSet)
	if !ok {
		m, ok := o.(map[string]bool)
		if !ok {
			return false
		}
		other = StringSet(m)
	}

	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// Elements returns the elements of s in alphabetical order.
func (s StringSet) Elements() []string {
	return OrderedKeys(s)
}

// String shows the contents of s in alphabetical order, e.g. "{a, b, c}".
func (s StringSet) String() string {
	return "{" + strings.Join(s.Elements(), ", ") + "}"
}

// Alphabetized returns the elements of any string-keyed map in alphabetical
// order.
func Alphabetized[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
