package region

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/planetgen/pkg/icosphere"
)

func TestKey_Symmetric(t *testing.T) {
	pairs := [][2]uint16{{0, 1}, {5, 3}, {0, 65535}, {1234, 4321}, {7, 7}}
	for _, p := range pairs {
		assert.Equal(t, Key(p[0], p[1]), Key(p[1], p[0]), "pair %v", p)
	}
}

func TestKey_Injective(t *testing.T) {
	seen := make(map[EdgeKey][2]uint16)
	for a := uint16(0); a < 300; a++ {
		for b := a; b < 300; b++ {
			k := Key(a, b)
			if prev, ok := seen[k]; ok {
				t.Fatalf("Key(%d,%d) collides with %v", a, b, prev)
			}
			seen[k] = [2]uint16{a, b}
		}
	}
}

func TestKey_Layout(t *testing.T) {
	k := Key(0x0102, 0x0001)
	assert.Equal(t, EdgeKey(0x00010102), k)

	lo, hi := k.Vertices()
	assert.Equal(t, uint16(1), lo)
	assert.Equal(t, uint16(0x0102), hi)
	assert.Equal(t, "1-258", k.String())
}

func TestFromMesh_BaseIcosahedronBorders(t *testing.T) {
	mesh, err := icosphere.Build(0)
	require.NoError(t, err)

	regions, err := FromMesh(mesh.Vertices, mesh.Indices)
	require.NoError(t, err)
	require.Len(t, regions, 20)

	for i := range regions {
		assert.Len(t, Neighbors(regions, i), 3, "region %d", i)
	}
}

func TestFromMesh_EveryEdgeSharedTwice(t *testing.T) {
	mesh, err := icosphere.Build(3)
	require.NoError(t, err)

	regions, err := FromMesh(mesh.Vertices, mesh.Indices)
	require.NoError(t, err)

	counts := make(map[EdgeKey]int)
	for _, r := range regions {
		for _, e := range r.Edges {
			counts[e]++
		}
	}
	for e, n := range counts {
		if n != 2 {
			t.Fatalf("edge %s used %d times, want 2", e, n)
		}
	}
}

func TestFromMesh_Errors(t *testing.T) {
	vertices := []mgl64.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	_, err := FromMesh(vertices, []uint16{0, 1})
	if !errors.Is(err, ErrIndexCount) {
		t.Errorf("expected ErrIndexCount, got %v", err)
	}

	_, err = FromMesh(vertices, []uint16{0, 1, 3})
	if !errors.Is(err, ErrIndexRange) {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
}

func TestRegion_BordersAndCentroid(t *testing.T) {
	vertices := []mgl64.Vec3{{0, 0, 0}, {3, 0, 0}, {0, 3, 0}, {3, 3, 0}, {9, 9, 9}}

	a := New([3]uint16{0, 1, 2}, vertices)
	b := New([3]uint16{2, 1, 3}, vertices)
	c := New([3]uint16{3, 4, 1}, vertices)
	d := New([3]uint16{4, 3, 0}, vertices)

	assert.True(t, a.Borders(&b))
	assert.True(t, b.Borders(&a))
	assert.True(t, b.Borders(&c))
	// a and c share only vertex 1.
	assert.False(t, a.Borders(&c))
	// a and d share only vertex 0.
	assert.False(t, a.Borders(&d))

	assert.True(t, a.Centroid().ApproxEqual(mgl64.Vec3{1, 1, 0}), "centroid %v", a.Centroid())
}
