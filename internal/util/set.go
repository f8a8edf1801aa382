// Package util holds small generic collection helpers shared across the
// compiler's stages, in the spirit of a normal project's grab-bag internal
// package: no single stage owns these, and none of them encode compiler
// semantics.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// KeySet is a set of comparable elements backed by a map.
type KeySet[E comparable] map[E]bool

// NewKeySet builds a KeySet, optionally seeded from existing maps.
func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// Add inserts value into the set. No effect if already present.
func (s KeySet[E]) Add(value E) { s[value] = true }

// Remove deletes value from the set. No effect if absent.
func (s KeySet[E]) Remove(value E) { delete(s, value) }

// Has reports whether value is in the set.
func (s KeySet[E]) Has(value E) bool {
	_, ok := s[value]
	return ok
}

// Len reports the number of elements.
func (s KeySet[E]) Len() int { return len(s) }

// Elements returns the set's contents in unspecified order.
func (s KeySet[E]) Elements() []E {
	if s == nil {
		return nil
	}
	sl := make([]E, 0, len(s))
	for k := range s {
		sl = append(sl, k)
	}
	return sl
}

// StringOrdered renders the set's contents sorted by their %v form, for
// deterministic diagnostic metadata (e.g. "missing variants: A, B, C").
func (s KeySet[E]) StringOrdered() string {
	convs := make([]string, 0, len(s))
	for k := range s {
		convs = append(convs, fmt.Sprintf("%v", k))
	}
	sort.Strings(convs)
	return "{" + strings.Join(convs, ", ") + "}"
}

// MakeTextList renders items as a natural-language list ("a", "a and b", or
// "a, b, and c"), for multi-item text such as a list of missing match arms.
func MakeTextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		out := make([]string, len(items))
		copy(out, items)
		out[len(out)-1] = "and " + out[len(out)-1]
		return strings.Join(out, ", ")
	}
}
