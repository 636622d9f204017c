package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// PLNT format errors.
var (
	ErrInvalidPLNTMagic       = errors.New("invalid PLNT magic: expected 'PLNT'")
	ErrUnsupportedPLNTVersion = errors.New("unsupported PLNT version")
	ErrTruncatedPLNTData      = errors.New("truncated PLNT data")
	ErrInconsistentPLNT       = errors.New("inconsistent PLNT contents")
)

// PLNT sizes in bytes.
const (
	plntMagic           = "PLNT"
	plntHeaderSize      = 4 + 2 + 24 // magic, version, params
	plntVertexSize      = 32
	plntPlateHeaderSize = 1 + 24 + 4
)

// PLNTVersion represents the PLNT file version.
type PLNTVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v PLNTVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentPLNTVersion is written by WritePLNT.
var CurrentPLNTVersion = PLNTVersion{Major: 1, Minor: 0}

// PLNTParams records the generator inputs.
type PLNTParams struct {
	Subdivisions uint32
	Plates       uint32
	Seed         uint64
	Radius       float64
}

// PLNTVertex matches the GPU vertex: packed position lanes and RGBA color.
type PLNTVertex struct {
	Position [4]uint32
	Color    [4]float32
}

// PLNTPlate is one tectonic plate.
type PLNTPlate struct {
	Classification uint8 // 0 = oceanic, 1 = continental
	MotionAxis     [3]float64
	Regions        []uint32
}

type plntPlateHeader struct {
	Classification uint8
	MotionAxis     [3]float64
	RegionCount    uint32
}

// PLNT is a generated planet mesh. Indices are implicit: 0..len(Vertices).
type PLNT struct {
	Version  PLNTVersion
	Params   PLNTParams
	Vertices []PLNTVertex
	Plates   []PLNTPlate
}

// RegionCount returns the number of regions across all plates.
func (p *PLNT) RegionCount() int {
	n := 0
	for i := range p.Plates {
		n += len(p.Plates[i].Regions)
	}
	return n
}

// Indices returns the implicit index list.
func (p *PLNT) Indices() []uint32 {
	indices := make([]uint32, len(p.Vertices))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return indices
}

// Validate checks that vertices match regions and that plates partition the regions.
func (p *PLNT) Validate() error {
	regions := p.RegionCount()
	if len(p.Vertices) != 3*regions {
		return fmt.Errorf("%w: %d vertices for %d regions", ErrInconsistentPLNT, len(p.Vertices), regions)
	}

	seen := make([]bool, regions)
	for pi := range p.Plates {
		for _, idx := range p.Plates[pi].Regions {
			if int(idx) >= regions {
				return fmt.Errorf("%w: plate %d region %d out of range", ErrInconsistentPLNT, pi, idx)
			}
			if seen[idx] {
				return fmt.Errorf("%w: region %d assigned twice", ErrInconsistentPLNT, idx)
			}
			seen[idx] = true
		}
	}
	return nil
}

// ParsePLNT parses a PLNT file from raw bytes.
func ParsePLNT(data []byte) (*PLNT, error) {
	if len(data) < plntHeaderSize {
		return nil, ErrTruncatedPLNTData
	}

	if string(data[0:4]) != plntMagic {
		return nil, ErrInvalidPLNTMagic
	}

	// Version is stored as [minor, major]
	version := PLNTVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != CurrentPLNTVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPLNTVersion, version)
	}

	r := bytes.NewReader(data[6:])
	p := &PLNT{Version: version}

	if err := binary.Read(r, binary.LittleEndian, &p.Params); err != nil {
		return nil, fmt.Errorf("%w: reading params", ErrTruncatedPLNTData)
	}

	var vertexCount uint32
	if err := binary.Read(r, binary.LittleEndian, &vertexCount); err != nil {
		return nil, fmt.Errorf("%w: reading vertex count", ErrTruncatedPLNTData)
	}
	if int64(vertexCount)*plntVertexSize > int64(r.Len()) {
		return nil, fmt.Errorf("%w: %d vertices declared", ErrTruncatedPLNTData, vertexCount)
	}
	p.Vertices = make([]PLNTVertex, vertexCount)
	if err := binary.Read(r, binary.LittleEndian, p.Vertices); err != nil {
		return nil, fmt.Errorf("%w: reading vertices", ErrTruncatedPLNTData)
	}

	var plateCount uint32
	if err := binary.Read(r, binary.LittleEndian, &plateCount); err != nil {
		return nil, fmt.Errorf("%w: reading plate count", ErrTruncatedPLNTData)
	}
	if int64(plateCount)*plntPlateHeaderSize > int64(r.Len()) {
		return nil, fmt.Errorf("%w: %d plates declared", ErrTruncatedPLNTData, plateCount)
	}

	p.Plates = make([]PLNTPlate, plateCount)
	for i := range p.Plates {
		plate, err := parsePLNTPlate(r)
		if err != nil {
			return nil, fmt.Errorf("parsing plate %d: %w", i, err)
		}
		p.Plates[i] = plate
	}

	return p, nil
}

// parsePLNTPlate parses one plate record.
func parsePLNTPlate(r *bytes.Reader) (PLNTPlate, error) {
	var hdr plntPlateHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return PLNTPlate{}, fmt.Errorf("%w: reading plate header", ErrTruncatedPLNTData)
	}
	if int64(hdr.RegionCount)*4 > int64(r.Len()) {
		return PLNTPlate{}, fmt.Errorf("%w: %d regions declared", ErrTruncatedPLNTData, hdr.RegionCount)
	}

	plate := PLNTPlate{
		Classification: hdr.Classification,
		MotionAxis:     hdr.MotionAxis,
		Regions:        make([]uint32, hdr.RegionCount),
	}
	if err := binary.Read(r, binary.LittleEndian, plate.Regions); err != nil {
		return PLNTPlate{}, fmt.Errorf("%w: reading regions", ErrTruncatedPLNTData)
	}
	return plate, nil
}

// ParsePLNTFile parses a PLNT file from disk.
func ParsePLNTFile(path string) (*PLNT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PLNT file: %w", err)
	}
	return ParsePLNT(data)
}

// WritePLNT encodes p in the current version, ignoring p.Version.
func WritePLNT(w io.Writer, p *PLNT) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(plntMagic)
	bw.WriteByte(CurrentPLNTVersion.Minor)
	bw.WriteByte(CurrentPLNTVersion.Major)

	if err := binary.Write(bw, binary.LittleEndian, p.Params); err != nil {
		return fmt.Errorf("writing params: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(p.Vertices))); err != nil {
		return fmt.Errorf("writing vertex count: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, p.Vertices); err != nil {
		return fmt.Errorf("writing vertices: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(p.Plates))); err != nil {
		return fmt.Errorf("writing plate count: %w", err)
	}
	for i := range p.Plates {
		plate := &p.Plates[i]
		hdr := plntPlateHeader{
			Classification: plate.Classification,
			MotionAxis:     plate.MotionAxis,
			RegionCount:    uint32(len(plate.Regions)),
		}
		if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
			return fmt.Errorf("writing plate %d: %w", i, err)
		}
		if err := binary.Write(bw, binary.LittleEndian, plate.Regions); err != nil {
			return fmt.Errorf("writing plate %d regions: %w", i, err)
		}
	}

	return bw.Flush()
}

// WritePLNTFile writes p to path.
func WritePLNTFile(path string, p *PLNT) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating PLNT file: %w", err)
	}
	if err := WritePLNT(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
