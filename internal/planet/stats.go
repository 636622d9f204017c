package planet

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"

	"github.com/Faultbox/planetgen/pkg/tectonics"
)

// PlateStats summarizes one plate on the unit sphere.
type PlateStats struct {
	Index          int
	Classification tectonics.Classification
	Regions        int
	Area           float64 // steradians
	Fraction       float64 // share of the sphere surface
	Centroid       s2.LatLng
	BoundaryEdges  int
	Neighbors      int
}

// Stats summarizes a generated planet.
type Stats struct {
	Plates              []PlateStats
	TotalArea           float64
	OceanicFraction     float64
	ContinentalFraction float64
}

// ComputeStats measures plate areas and adjacency.
func ComputeStats(p *Planet) Stats {
	var st Stats
	st.Plates = make([]PlateStats, len(p.Plates))

	for pi, plate := range p.Plates {
		ps := PlateStats{
			Index:          pi,
			Classification: plate.Classification,
			Regions:        len(plate.Regions),
			BoundaryEdges:  plate.Edges.Len(),
		}

		var weighted mgl64.Vec3
		for _, idx := range plate.Regions {
			r := &p.Regions[idx]
			area := s2.PointArea(toPoint(r.Corners[0]), toPoint(r.Corners[1]), toPoint(r.Corners[2]))
			ps.Area += area
			weighted = weighted.Add(r.Centroid().Mul(area))
		}
		if weighted.Len() > 0 {
			ps.Centroid = s2.LatLngFromPoint(toPoint(weighted))
		}

		for oi, other := range p.Plates {
			if oi != pi && plate.Borders(other) {
				ps.Neighbors++
			}
		}

		st.TotalArea += ps.Area
		st.Plates[pi] = ps
	}

	if st.TotalArea == 0 {
		return st
	}
	for i := range st.Plates {
		ps := &st.Plates[i]
		ps.Fraction = ps.Area / st.TotalArea
		if ps.Classification == tectonics.Continental {
			st.ContinentalFraction += ps.Fraction
		} else {
			st.OceanicFraction += ps.Fraction
		}
	}
	return st
}

// SphereArea is the area of the unit sphere.
const SphereArea = 4 * math.Pi

func toPoint(v mgl64.Vec3) s2.Point {
	return s2.Point{Vector: r3.Vector{X: v[0], Y: v[1], Z: v[2]}.Normalize()}
}
