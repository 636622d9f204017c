package server

import (
	"github.com/Faultbox/planetgen/internal/planet"
)

// Message types exchanged over /ws.
const (
	TypeMesh  = "mesh"
	TypeStats = "stats"
	TypeError = "error"
)

// Request is a client message. Only Type is read.
type Request struct {
	Type string `json:"type"`
}

// ParamsJSON mirrors planet.Params.
type ParamsJSON struct {
	Subdivisions int     `json:"subdivisions"`
	Plates       int     `json:"plates"`
	Seed         uint64  `json:"seed"`
	Radius       float64 `json:"radius"`
}

// VertexJSON is one emitted vertex.
type VertexJSON struct {
	Position [4]uint32  `json:"position"`
	Color    [4]float32 `json:"color"`
}

// MeshMessage is sent once when a websocket client connects.
type MeshMessage struct {
	Type     string       `json:"type"`
	Params   ParamsJSON   `json:"params"`
	Stride   int          `json:"stride"`
	Vertices []VertexJSON `json:"vertices"`
	// Indices are 0..len(Vertices) and are not sent.
	IndexCount int `json:"index_count"`
}

// PlateStatsJSON summarizes one plate.
type PlateStatsJSON struct {
	Index          int     `json:"index"`
	Classification string  `json:"classification"`
	Regions        int     `json:"regions"`
	Fraction       float64 `json:"fraction"`
	CentroidLat    float64 `json:"centroid_lat"`
	CentroidLng    float64 `json:"centroid_lng"`
	BoundaryEdges  int     `json:"boundary_edges"`
	Neighbors      int     `json:"neighbors"`
}

// StatsMessage answers a {"type":"stats"} request.
type StatsMessage struct {
	Type                string           `json:"type"`
	Params              ParamsJSON       `json:"params"`
	Plates              []PlateStatsJSON `json:"plates"`
	OceanicFraction     float64          `json:"oceanic_fraction"`
	ContinentalFraction float64          `json:"continental_fraction"`
}

// ErrorMessage answers requests the server does not understand.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Health is the body of GET /.
type Health struct {
	Status   string     `json:"status"`
	Params   ParamsJSON `json:"params"`
	Vertices int        `json:"vertices"`
	Clients  int        `json:"clients"`
}

func paramsJSON(p planet.Params) ParamsJSON {
	return ParamsJSON{
		Subdivisions: p.Subdivisions,
		Plates:       p.Plates,
		Seed:         p.Seed,
		Radius:       p.Radius,
	}
}

func newMeshMessage(p *planet.Planet) MeshMessage {
	vertices := make([]VertexJSON, len(p.Vertices))
	for i, v := range p.Vertices {
		vertices[i] = VertexJSON(v)
	}
	return MeshMessage{
		Type:       TypeMesh,
		Params:     paramsJSON(p.Params),
		Stride:     planet.VertexStride,
		Vertices:   vertices,
		IndexCount: len(p.Indices),
	}
}

func newStatsMessage(p *planet.Planet) StatsMessage {
	st := planet.ComputeStats(p)
	plates := make([]PlateStatsJSON, len(st.Plates))
	for i, ps := range st.Plates {
		plates[i] = PlateStatsJSON{
			Index:          ps.Index,
			Classification: ps.Classification.String(),
			Regions:        ps.Regions,
			Fraction:       ps.Fraction,
			CentroidLat:    ps.Centroid.Lat.Degrees(),
			CentroidLng:    ps.Centroid.Lng.Degrees(),
			BoundaryEdges:  ps.BoundaryEdges,
			Neighbors:      ps.Neighbors,
		}
	}
	return StatsMessage{
		Type:                TypeStats,
		Params:              paramsJSON(p.Params),
		Plates:              plates,
		OceanicFraction:     st.OceanicFraction,
		ContinentalFraction: st.ContinentalFraction,
	}
}
