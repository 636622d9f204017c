package planet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats_CoversSphere(t *testing.T) {
	pl, err := Generate(Params{Subdivisions: 4, Plates: 10, Seed: 1, Radius: 1}, nil)
	require.NoError(t, err)

	st := ComputeStats(pl)
	require.Len(t, st.Plates, 10)

	// Geodesic triangles tile the sphere exactly.
	assert.InDelta(t, SphereArea, st.TotalArea, 1e-6)
	assert.InDelta(t, 1.0, st.OceanicFraction+st.ContinentalFraction, 1e-9)

	regions := 0
	for _, ps := range st.Plates {
		regions += ps.Regions
		assert.Greater(t, ps.Area, 0.0)
		assert.GreaterOrEqual(t, ps.Neighbors, 1)
		assert.Greater(t, ps.BoundaryEdges, 0)
	}
	assert.Equal(t, len(pl.Regions), regions)
}

func TestComputeStats_SinglePlate(t *testing.T) {
	pl, err := Generate(Params{Subdivisions: 0, Plates: 1, Seed: 0, Radius: 1}, nil)
	require.NoError(t, err)

	st := ComputeStats(pl)
	require.Len(t, st.Plates, 1)
	assert.Equal(t, 0, st.Plates[0].Neighbors)
	assert.Equal(t, 0, st.Plates[0].BoundaryEdges)
	assert.InDelta(t, 1.0, st.Plates[0].Fraction, 1e-12)
}
