package parity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	s := New[uint32]()

	assert.True(t, s.Toggle(7))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Toggle(7))
	assert.False(t, s.Contains(7))
	assert.Equal(t, 0, s.Len())
}

func TestToggleAll_OddCountsSurvive(t *testing.T) {
	s := New[int]()

	// 1 x3, 2 x2, 3 x1, 4 x4
	s.ToggleAll(1, 2, 3, 4)
	s.ToggleAll(1, 2, 4)
	s.ToggleAll(1, 4, 4)

	assert.Equal(t, []int{1, 3}, s.Keys())
}

func TestToggleAll_SquareBoundary(t *testing.T) {
	// Two triangles forming a quad: a-b-c and c-b-d share edge b-c.
	const (
		ab = iota
		bc
		ca
		bd
		dc
	)
	s := New[int]()
	s.ToggleAll(ab, bc, ca)
	s.ToggleAll(bc, bd, dc)

	assert.Equal(t, []int{ab, ca, bd, dc}, s.Keys())
	assert.False(t, s.Contains(bc))
}

func TestContainsAny(t *testing.T) {
	s := New[string]()
	s.ToggleAll("a", "b")

	tests := []struct {
		name string
		keys []string
		want bool
	}{
		{"none", nil, false},
		{"miss", []string{"x", "y"}, false},
		{"last", []string{"x", "b"}, true},
		{"first", []string{"a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ContainsAny(tt.keys...))
		})
	}
}

func TestIntersects(t *testing.T) {
	a := New[int]()
	a.ToggleAll(1, 2, 3)
	b := New[int]()
	b.ToggleAll(3, 4)
	c := New[int]()
	c.ToggleAll(5)

	assert.True(t, a.Intersects(b))
	assert.True(t, b.Intersects(a))
	assert.False(t, a.Intersects(c))
	assert.False(t, New[int]().Intersects(a))
}
