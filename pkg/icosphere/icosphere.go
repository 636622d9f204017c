// Package icosphere builds geodesic sphere meshes by recursive subdivision of an icosahedron.
package icosphere

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxSubdivisions is the deepest level whose vertex count fits uint16 indices.
// Level 6 has 40962 vertices; level 7 would need 163842.
const MaxSubdivisions = 6

// Build errors.
var (
	ErrNegativeSubdivisions = errors.New("subdivisions must not be negative")
	ErrTooManySubdivisions  = errors.New("subdivisions exceed uint16 index range")
)

// Golden ratio.
var phi = (1 + math.Sqrt(5)) / 2

// baseVertices are the 12 corners of a regular icosahedron before normalization.
var baseVertices = [12]mgl64.Vec3{
	{-1, phi, 0},
	{1, phi, 0},
	{-1, -phi, 0},
	{1, -phi, 0},
	{0, -1, phi},
	{0, 1, phi},
	{0, -1, -phi},
	{0, 1, -phi},
	{phi, 0, -1},
	{phi, 0, 1},
	{-phi, 0, -1},
	{-phi, 0, 1},
}

// baseIndices are the 20 counter-clockwise faces of the icosahedron.
var baseIndices = [60]uint16{
	0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
	1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
	3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
	4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
}

// Mesh is an indexed triangle list on the unit sphere.
type Mesh struct {
	Vertices []mgl64.Vec3
	Indices  []uint16 // three per triangle
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint16 {
	return [3]uint16{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// VertexCount returns the vertex count after n subdivisions: 10·4^n + 2.
func VertexCount(n int) int {
	return 10*(1<<(2*n)) + 2
}

// TriangleCount returns the triangle count after n subdivisions: 20·4^n.
func TriangleCount(n int) int {
	return 20 * (1 << (2 * n))
}

// Base returns fresh copies of the normalized icosahedron vertices and its indices.
func Base() ([]mgl64.Vec3, []uint16) {
	vertices := make([]mgl64.Vec3, len(baseVertices))
	for i, v := range baseVertices {
		vertices[i] = v.Normalize()
	}
	indices := make([]uint16, len(baseIndices))
	copy(indices, baseIndices[:])
	return vertices, indices
}

// Build returns the icosahedron subdivided the given number of times.
// The result is fully deterministic.
func Build(subdivisions int) (*Mesh, error) {
	if subdivisions < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSubdivisions, subdivisions)
	}
	if subdivisions > MaxSubdivisions {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySubdivisions, subdivisions, MaxSubdivisions)
	}

	vertices, indices := Base()
	for range subdivisions {
		vertices, indices = Subdivide(vertices, indices)
	}
	return &Mesh{Vertices: vertices, Indices: indices}, nil
}

// Subdivide splits every triangle into four, projecting new midpoints onto the
// unit sphere. Midpoints of shared edges are created once and reused.
// The vertex slice is appended to; the returned index slice is new.
func Subdivide(vertices []mgl64.Vec3, indices []uint16) ([]mgl64.Vec3, []uint16) {
	out := make([]uint16, 0, len(indices)*4)
	cache := make(map[uint32]uint16, len(indices)/2)

	midpoint := func(a, b uint16) uint16 {
		key := pairKey(a, b)
		if mid, ok := cache[key]; ok {
			return mid
		}
		pos := vertices[a].Add(vertices[b]).Mul(0.5).Normalize()
		mid := uint16(len(vertices))
		vertices = append(vertices, pos)
		cache[key] = mid
		return mid
	}

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		ab := midpoint(a, b)
		bc := midpoint(b, c)
		ca := midpoint(c, a)

		out = append(out,
			a, ab, ca,
			ab, b, bc,
			ca, bc, c,
			ab, bc, ca,
		)
	}
	return vertices, out
}

// pairKey packs an unordered index pair with the smaller index in the high bits.
func pairKey(a, b uint16) uint32 {
	if a > b {
		a, b = b, a
	}
	return uint32(a)<<16 | uint32(b)
}
