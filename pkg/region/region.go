// Package region wraps mesh triangles as regions whose adjacency is derived from
// canonical edge keys rather than stored as a graph.
package region

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh conversion errors.
var (
	ErrIndexCount = errors.New("index count is not a multiple of 3")
	ErrIndexRange = errors.New("vertex index out of range")
)

// EdgeKey identifies an unordered pair of 16-bit vertex indices.
// The smaller index sits in the high 16 bits.
type EdgeKey uint32

// Key returns the canonical key for the edge between vertices a and b.
// Key(a, b) == Key(b, a).
func Key(a, b uint16) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey(uint32(a)<<16 | uint32(b))
}

// Vertices returns the two vertex indices of the edge, smaller first.
func (k EdgeKey) Vertices() (lo, hi uint16) {
	return uint16(k >> 16), uint16(k)
}

// String returns the edge as "lo-hi".
func (k EdgeKey) String() string {
	lo, hi := k.Vertices()
	return fmt.Sprintf("%d-%d", lo, hi)
}

// Region is one triangular face of the mesh.
type Region struct {
	Corners [3]mgl64.Vec3
	Edges   [3]EdgeKey // ab, bc, ca
}

// New creates a region from a triangle's vertex indices.
// It does not check that the surrounding mesh is closed.
func New(tri [3]uint16, vertices []mgl64.Vec3) Region {
	a, b, c := tri[0], tri[1], tri[2]
	return Region{
		Corners: [3]mgl64.Vec3{vertices[a], vertices[b], vertices[c]},
		Edges:   [3]EdgeKey{Key(a, b), Key(b, c), Key(c, a)},
	}
}

// Borders reports whether r and other share an edge.
func (r *Region) Borders(other *Region) bool {
	for _, e := range r.Edges {
		if e == other.Edges[0] || e == other.Edges[1] || e == other.Edges[2] {
			return true
		}
	}
	return false
}

// Centroid returns the mean of the three corners.
func (r *Region) Centroid() mgl64.Vec3 {
	return r.Corners[0].Add(r.Corners[1]).Add(r.Corners[2]).Mul(1.0 / 3.0)
}

// FromMesh builds one region per triangle of an indexed triangle list.
func FromMesh(vertices []mgl64.Vec3, indices []uint16) ([]Region, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrIndexCount, len(indices))
	}

	regions := make([]Region, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		tri := [3]uint16{indices[i], indices[i+1], indices[i+2]}
		for _, idx := range tri {
			if int(idx) >= len(vertices) {
				return nil, fmt.Errorf("%w: triangle %d references %d (have %d vertices)",
					ErrIndexRange, i/3, idx, len(vertices))
			}
		}
		regions = append(regions, New(tri, vertices))
	}
	return regions, nil
}

// Neighbors returns the indices of every region bordering regions[i].
// This is a linear scan; use it for diagnostics, not inner loops.
func Neighbors(regions []Region, i int) []int {
	var out []int
	for j := range regions {
		if j != i && regions[i].Borders(&regions[j]) {
			out = append(out, j)
		}
	}
	return out
}
