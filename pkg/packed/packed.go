// Package packed encodes 3D positions as 128-bit fixed-point words for GPU upload.
//
// Layout, most significant bit first:
//
//	[127..85] x  43 bits, signed
//	[ 84..42] y  43 bits, signed
//	[ 41.. 0] z  42 bits, signed
//
// Every field holds the coordinate times Scale, so the resolution is 1/16384 units.
package packed

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Fixed-point parameters.
const (
	FracBits = 14
	Scale    = 1 << FracBits // 16384

	XBits = 43
	YBits = 43
	ZBits = 42

	zShift = 0
	yShift = ZBits
	xShift = ZBits + YBits
)

// Resolution is the largest round-trip error per axis.
const Resolution = 1.0 / Scale

// ErrOutOfRange is returned when a coordinate does not fit its field.
var ErrOutOfRange = errors.New("coordinate out of packed range")

var axes = [3]struct {
	name  string
	bits  uint
	shift uint
}{
	{"x", XBits, xShift},
	{"y", YBits, yShift},
	{"z", ZBits, zShift},
}

// Vec3 is a packed position. Hi holds bits 127..64, Lo bits 63..0.
type Vec3 struct {
	Hi, Lo uint64
}

// Pack encodes v, failing if any coordinate is outside Limits.
func Pack(v mgl64.Vec3) (Vec3, error) {
	var p Vec3
	for i, ax := range axes {
		f, err := fixed(v[i])
		if err == nil {
			err = checkFits(f, ax.bits)
		}
		if err != nil {
			return Vec3{}, fmt.Errorf("%w: %s=%g", err, ax.name, v[i])
		}
		p.or(uint64(f)&mask(ax.bits), ax.shift)
	}
	return p, nil
}

// MustPack is like Pack but panics on error.
func MustPack(v mgl64.Vec3) Vec3 {
	p, err := Pack(v)
	if err != nil {
		panic(err)
	}
	return p
}

// Truncate encodes v without range checks. Out-of-range coordinates wrap
// modulo the field width.
func Truncate(v mgl64.Vec3) Vec3 {
	var p Vec3
	for i, ax := range axes {
		f := fixedUnchecked(v[i])
		p.or(uint64(f)&mask(ax.bits), ax.shift)
	}
	return p
}

// Unpack decodes the word back to a position.
func (p Vec3) Unpack() mgl64.Vec3 {
	var v mgl64.Vec3
	for i, ax := range axes {
		raw := p.field(ax.shift, ax.bits)
		v[i] = float64(signExtend(raw, ax.bits)) / Scale
	}
	return v
}

// Lanes splits the word into four uint32 lanes, least significant first,
// matching a little-endian 128-bit vertex attribute.
func (p Vec3) Lanes() [4]uint32 {
	return [4]uint32{
		uint32(p.Lo),
		uint32(p.Lo >> 32),
		uint32(p.Hi),
		uint32(p.Hi >> 32),
	}
}

// FromLanes is the inverse of Lanes.
func FromLanes(l [4]uint32) Vec3 {
	return Vec3{
		Lo: uint64(l[0]) | uint64(l[1])<<32,
		Hi: uint64(l[2]) | uint64(l[3])<<32,
	}
}

// String returns the word as 32 hex digits.
func (p Vec3) String() string {
	return fmt.Sprintf("%016x%016x", p.Hi, p.Lo)
}

// Limits returns the smallest and largest world coordinate each axis can hold.
func Limits() (lo, hi mgl64.Vec3) {
	for i, ax := range axes {
		lo[i] = -math.Ldexp(1, int(ax.bits)-1) / Scale
		hi[i] = (math.Ldexp(1, int(ax.bits)-1) - 1) / Scale
	}
	return lo, hi
}

// fixed converts c to its fixed-point value: floor(c)*Scale + trunc(frac(c)*Scale).
func fixed(c float64) (int64, error) {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, ErrOutOfRange
	}
	// Well outside every field; keeps the int64 conversion defined.
	if math.Abs(c) >= math.Ldexp(1, 62-FracBits) {
		return 0, ErrOutOfRange
	}
	return fixedUnchecked(c), nil
}

func fixedUnchecked(c float64) int64 {
	ints := math.Floor(c)
	frac := (c - ints) * Scale
	return int64(ints)*Scale + int64(frac)
}

func checkFits(f int64, bits uint) error {
	limit := int64(1) << (bits - 1)
	if f < -limit || f >= limit {
		return ErrOutOfRange
	}
	return nil
}

func mask(bits uint) uint64 {
	return 1<<bits - 1
}

func signExtend(raw uint64, bits uint) int64 {
	shift := 64 - bits
	return int64(raw<<shift) >> shift
}

// or sets bits of v shifted left by s into the 128-bit word.
func (p *Vec3) or(v uint64, s uint) {
	switch {
	case s == 0:
		p.Lo |= v
	case s < 64:
		p.Lo |= v << s
		p.Hi |= v >> (64 - s)
	default:
		p.Hi |= v << (s - 64)
	}
}

// field extracts bits [s, s+bits) of the word.
func (p Vec3) field(s, bits uint) uint64 {
	var v uint64
	switch {
	case s == 0:
		v = p.Lo
	case s < 64:
		v = p.Lo>>s | p.Hi<<(64-s)
	default:
		v = p.Hi >> (s - 64)
	}
	return v & mask(bits)
}
