// Package planet generates the plate-colored planet mesh handed to renderers.
package planet

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/planetgen/pkg/icosphere"
	"github.com/Faultbox/planetgen/pkg/packed"
	"github.com/Faultbox/planetgen/pkg/region"
	"github.com/Faultbox/planetgen/pkg/tectonics"
)

// ErrInvalidRadius is returned for a non-positive or unpackable radius.
var ErrInvalidRadius = errors.New("invalid planet radius")

// Params selects the planet to generate.
type Params struct {
	Subdivisions int
	Plates       int
	Seed         uint64
	Radius       float64
}

// DefaultParams returns the reference planet: 5 subdivisions, 40 plates, seed 1, unit radius.
func DefaultParams() Params {
	return Params{
		Subdivisions: 5,
		Plates:       40,
		Seed:         1,
		Radius:       1.0,
	}
}

// Vertex is the GPU vertex layout: one 4×u32 attribute and one 4×f32 attribute.
type Vertex struct {
	Position [4]uint32  // packed.Vec3 lanes
	Color    [4]float32 // RGB, alpha lane is padding
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 32

// Plate colors.
var (
	OceanicColor     = [4]float32{0, 0, 1, 1}
	ContinentalColor = [4]float32{0, 1, 0, 1}
)

// Color returns the vertex color for a plate classification.
func Color(c tectonics.Classification) [4]float32 {
	if c == tectonics.Continental {
		return ContinentalColor
	}
	return OceanicColor
}

// Planet is a generated planet and its render buffers.
type Planet struct {
	Params   Params
	Mesh     *icosphere.Mesh
	Regions  []region.Region
	Plates   []*tectonics.Plate
	Vertices []Vertex
	Indices  []uint32 // always 0..len(Vertices)
}

// Generate runs the full pipeline: icosphere, regions, plates, vertex emission.
// A nil logger disables logging.
func Generate(p Params, log *zap.Logger) (*Planet, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if p.Radius <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRadius, p.Radius)
	}

	start := time.Now()
	mesh, err := icosphere.Build(p.Subdivisions)
	if err != nil {
		return nil, fmt.Errorf("building icosphere: %w", err)
	}
	log.Debug("icosphere built",
		zap.Int("subdivisions", p.Subdivisions),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("took", time.Since(start)),
	)

	regions, err := region.FromMesh(mesh.Vertices, mesh.Indices)
	if err != nil {
		return nil, fmt.Errorf("building regions: %w", err)
	}

	stage := time.Now()
	plates, err := tectonics.Cluster(tectonics.NewRand(p.Seed), regions, p.Plates)
	if err != nil {
		return nil, fmt.Errorf("clustering plates: %w", err)
	}
	counts := tectonics.CountByClassification(plates)
	log.Debug("plates clustered",
		zap.Int("plates", len(plates)),
		zap.Int("continental", counts[tectonics.Continental]),
		zap.Int("oceanic", counts[tectonics.Oceanic]),
		zap.Uint64("seed", p.Seed),
		zap.Duration("took", time.Since(stage)),
	)

	vertices, indices, err := Emit(regions, plates, p.Radius)
	if err != nil {
		return nil, err
	}

	log.Info("planet generated",
		zap.Int("regions", len(regions)),
		zap.Int("plates", len(plates)),
		zap.Int("vertices", len(vertices)),
		zap.Duration("took", time.Since(start)),
	)

	return &Planet{
		Params:   p,
		Mesh:     mesh,
		Regions:  regions,
		Plates:   plates,
		Vertices: vertices,
		Indices:  indices,
	}, nil
}

// Emit writes three fresh vertices per region, plate by plate, with corners
// scaled by radius and packed. Indices are simply 0..n.
func Emit(regions []region.Region, plates []*tectonics.Plate, radius float64) ([]Vertex, []uint32, error) {
	n := 0
	for _, plate := range plates {
		n += 3 * len(plate.Regions)
	}

	vertices := make([]Vertex, 0, n)
	for _, plate := range plates {
		color := Color(plate.Classification)
		for _, idx := range plate.Regions {
			for _, corner := range regions[idx].Corners {
				pos, err := packed.Pack(corner.Mul(radius))
				if err != nil {
					return nil, nil, fmt.Errorf("%w: region %d: %w", ErrInvalidRadius, idx, err)
				}
				vertices = append(vertices, Vertex{Position: pos.Lanes(), Color: color})
			}
		}
	}

	indices := make([]uint32, len(vertices))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return vertices, indices, nil
}

// RegionOwners returns, for each region index, the index of its plate.
func (p *Planet) RegionOwners() []int {
	owners := make([]int, len(p.Regions))
	for pi, plate := range p.Plates {
		for _, idx := range plate.Regions {
			owners[idx] = pi
		}
	}
	return owners
}
