// Package tectonics partitions sphere regions into tectonic plates by randomized region growing.
package tectonics

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetgen/pkg/parity"
	"github.com/Faultbox/planetgen/pkg/region"
)

// Classification is the crust type of a plate.
type Classification uint8

// Classification constants.
const (
	Oceanic Classification = iota
	Continental
)

// ContinentalThreshold: a plate is continental when its sample is strictly greater.
const ContinentalThreshold = 0.6

// String returns a human-readable classification name.
func (c Classification) String() string {
	switch c {
	case Oceanic:
		return "Oceanic"
	case Continental:
		return "Continental"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// classify maps a uniform [0,1) sample to a classification.
func classify(sample float32) Classification {
	if sample > ContinentalThreshold {
		return Continental
	}
	return Oceanic
}

// Plate is a contiguous cluster of regions.
type Plate struct {
	Classification Classification

	// MotionAxis is a unit vector. A point p on the plate moves along p × MotionAxis.
	MotionAxis mgl64.Vec3

	// Regions holds region indices in the order they were absorbed.
	Regions []int

	// Edges holds the plate boundary: edges used by an odd number of its regions.
	Edges *parity.Set[region.EdgeKey]
}

func newPlate(c Classification) *Plate {
	return &Plate{
		Classification: c,
		Edges:          parity.New[region.EdgeKey](),
	}
}

// Touches reports whether r shares an edge with the plate boundary.
func (p *Plate) Touches(r *region.Region) bool {
	return p.Edges.ContainsAny(r.Edges[:]...)
}

// Borders reports whether two plates share a boundary edge.
func (p *Plate) Borders(other *Plate) bool {
	return p.Edges.Intersects(other.Edges)
}

// absorb appends a region and toggles its edges into the boundary.
func (p *Plate) absorb(index int, r *region.Region) {
	p.Regions = append(p.Regions, index)
	p.Edges.ToggleAll(r.Edges[:]...)
}

// CountByClassification returns the number of plates of each classification.
func CountByClassification(plates []*Plate) map[Classification]int {
	counts := make(map[Classification]int)
	for _, p := range plates {
		counts[p.Classification]++
	}
	return counts
}
