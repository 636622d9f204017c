package planet

import (
	"github.com/Faultbox/planetgen/pkg/formats"
)

// PLNT converts the planet into the PLNT file representation.
func (p *Planet) PLNT() *formats.PLNT {
	out := &formats.PLNT{
		Version: formats.CurrentPLNTVersion,
		Params: formats.PLNTParams{
			Subdivisions: uint32(p.Params.Subdivisions),
			Plates:       uint32(p.Params.Plates),
			Seed:         p.Params.Seed,
			Radius:       p.Params.Radius,
		},
		Vertices: make([]formats.PLNTVertex, len(p.Vertices)),
		Plates:   make([]formats.PLNTPlate, len(p.Plates)),
	}

	for i, v := range p.Vertices {
		out.Vertices[i] = formats.PLNTVertex(v)
	}

	for i, plate := range p.Plates {
		regions := make([]uint32, len(plate.Regions))
		for j, idx := range plate.Regions {
			regions[j] = uint32(idx)
		}
		out.Plates[i] = formats.PLNTPlate{
			Classification: uint8(plate.Classification),
			MotionAxis:     plate.MotionAxis,
			Regions:        regions,
		}
	}
	return out
}
