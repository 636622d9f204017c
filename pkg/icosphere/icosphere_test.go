package icosphere

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Counts(t *testing.T) {
	for n := 0; n <= 5; n++ {
		mesh, err := Build(n)
		require.NoError(t, err, "n=%d", n)

		assert.Len(t, mesh.Vertices, VertexCount(n), "vertices at n=%d", n)
		assert.Equal(t, TriangleCount(n), mesh.TriangleCount(), "triangles at n=%d", n)
	}
}

func TestBuild_UnitLength(t *testing.T) {
	for n := 0; n <= 5; n++ {
		mesh, err := Build(n)
		require.NoError(t, err)

		for i, v := range mesh.Vertices {
			if d := math.Abs(v.Len() - 1); d > 1e-9 {
				t.Fatalf("n=%d vertex %d: |v| off by %g", n, i, d)
			}
		}
	}
}

func TestBuild_IndicesInRange(t *testing.T) {
	mesh, err := Build(MaxSubdivisions)
	require.NoError(t, err)

	assert.Len(t, mesh.Vertices, 40962)
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := Build(4)
	require.NoError(t, err)
	b, err := Build(4)
	require.NoError(t, err)

	assert.Equal(t, a.Indices, b.Indices)
	require.Equal(t, len(a.Vertices), len(b.Vertices))
	for i := range a.Vertices {
		for k := 0; k < 3; k++ {
			if math.Float64bits(a.Vertices[i][k]) != math.Float64bits(b.Vertices[i][k]) {
				t.Fatalf("vertex %d differs: %v vs %v", i, a.Vertices[i], b.Vertices[i])
			}
		}
	}
}

func TestBuild_InvalidSubdivisions(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want error
	}{
		{"negative", -1, ErrNegativeSubdivisions},
		{"too deep", MaxSubdivisions + 1, ErrTooManySubdivisions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.n)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build(%d) error = %v, want %v", tt.n, err, tt.want)
			}
		})
	}
}

func TestSubdivide_Winding(t *testing.T) {
	vertices, indices := Base()
	next, out := Subdivide(vertices, indices)

	// Each child triangle keeps the outward orientation of its parent.
	for i := 0; i < len(out); i += 3 {
		a, b, c := next[out[i]], next[out[i+1]], next[out[i+2]]
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c)
		if normal.Dot(centroid) <= 0 {
			t.Fatalf("triangle %d is wound inward", i/3)
		}
	}
}

func TestSubdivide_SharesMidpoints(t *testing.T) {
	vertices, indices := Base()
	next, _ := Subdivide(vertices, indices)

	// 30 icosahedron edges each contribute exactly one midpoint.
	assert.Len(t, next, 12+30)
}

func TestBase_ReturnsCopies(t *testing.T) {
	v1, i1 := Base()
	v1[0][0] = 42
	i1[0] = 99

	v2, i2 := Base()
	assert.NotEqual(t, 42.0, v2[0][0])
	assert.NotEqual(t, uint16(99), i2[0])
}
