// Package parity provides a set that keeps only the keys toggled an odd number of times.
//
// Toggling the edges of each absorbed face into a Set leaves exactly the outer
// boundary of the face cluster: an edge shared by two absorbed faces is toggled
// twice and cancels out.
package parity

import (
	"cmp"
	"slices"
)

// Set is a symmetric-difference accumulator. The zero value is not usable; call New.
type Set[K cmp.Ordered] struct {
	m map[K]struct{}
}

// New returns an empty set.
func New[K cmp.Ordered]() *Set[K] {
	return &Set[K]{m: make(map[K]struct{})}
}

// Toggle inserts k if absent and removes it if present.
// It reports whether k is in the set afterwards.
func (s *Set[K]) Toggle(k K) bool {
	if _, ok := s.m[k]; ok {
		delete(s.m, k)
		return false
	}
	s.m[k] = struct{}{}
	return true
}

// ToggleAll toggles every key in order. A key repeated in keys toggles twice.
func (s *Set[K]) ToggleAll(keys ...K) {
	for _, k := range keys {
		s.Toggle(k)
	}
}

// Contains reports whether k is in the set.
func (s *Set[K]) Contains(k K) bool {
	_, ok := s.m[k]
	return ok
}

// ContainsAny reports whether any of keys is in the set.
func (s *Set[K]) ContainsAny(keys ...K) bool {
	for _, k := range keys {
		if _, ok := s.m[k]; ok {
			return true
		}
	}
	return false
}

// Intersects reports whether s and other have a key in common.
func (s *Set[K]) Intersects(other *Set[K]) bool {
	small, large := s, other
	if len(large.m) < len(small.m) {
		small, large = large, small
	}
	for k := range small.m {
		if _, ok := large.m[k]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of keys in the set.
func (s *Set[K]) Len() int {
	return len(s.m)
}

// Keys returns the keys in ascending order.
func (s *Set[K]) Keys() []K {
	keys := make([]K, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
