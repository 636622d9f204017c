package packed

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertWithinResolution(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if d := math.Abs(want[i] - got[i]); d > Resolution {
			t.Errorf("axis %d: %v -> %v, error %g > %g", i, want[i], got[i], d, Resolution)
		}
	}
}

func TestPack_RoundTripGrid(t *testing.T) {
	lo, hi := Limits()
	var samples []mgl64.Vec3

	steps := []float64{-1, -0.75, -0.5, -1e-6, 0, 1e-6, 0.333333, 0.5, 1}
	for _, x := range steps {
		for _, y := range steps {
			for _, z := range steps {
				samples = append(samples, mgl64.Vec3{x, y, z})
			}
		}
	}
	samples = append(samples,
		mgl64.Vec3{-1234.5678, 98765.4321, -0.000061},
		lo,
		hi,
		mgl64.Vec3{lo[0], hi[1], lo[2]},
		mgl64.Vec3{hi[0] - 0.5, lo[1] + 0.5, hi[2] - 0.5},
	)

	for _, v := range samples {
		p, err := Pack(v)
		require.NoError(t, err, "Pack(%v)", v)
		assertWithinResolution(t, v, p.Unpack())
	}
}

func TestPack_Exact(t *testing.T) {
	tests := []struct {
		name string
		v    mgl64.Vec3
		want Vec3
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, Vec3{}},
		{"unit x", mgl64.Vec3{1, 0, 0}, Vec3{Hi: 0x0000000800000000}},
		{"minus unit z", mgl64.Vec3{0, 0, -1}, Vec3{Lo: 0x000003ffffffc000}},
		{"mixed", mgl64.Vec3{1, -1, 0.5}, Vec3{Hi: 0x00000008001fffff, Lo: 0xff00000000002000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pack(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "got %s", got)
			assert.Equal(t, tt.v, got.Unpack())
		})
	}
}

func TestPack_OutOfRange(t *testing.T) {
	lo, hi := Limits()
	tests := []struct {
		name string
		v    mgl64.Vec3
	}{
		{"x above", mgl64.Vec3{hi[0] + 1, 0, 0}},
		{"y below", mgl64.Vec3{0, lo[1] - 1, 0}},
		{"z above", mgl64.Vec3{0, 0, hi[2] + Resolution}},
		{"z at 2^27", mgl64.Vec3{0, 0, math.Ldexp(1, 27)}},
		{"huge", mgl64.Vec3{1e300, 0, 0}},
		{"nan", mgl64.Vec3{0, math.NaN(), 0}},
		{"inf", mgl64.Vec3{0, 0, math.Inf(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(tt.v)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestTruncate_Wraps(t *testing.T) {
	// z = 2^27 wraps to -2^27 in a 42-bit field.
	v := mgl64.Vec3{0.5, -0.5, math.Ldexp(1, 27)}
	got := Truncate(v).Unpack()

	assert.Equal(t, 0.5, got[0])
	assert.Equal(t, -0.5, got[1])
	assert.Equal(t, -math.Ldexp(1, 27), got[2])

	inRange := mgl64.Vec3{0.25, -7, 3}
	assert.Equal(t, MustPack(inRange), Truncate(inRange))
}

func TestMustPack_Panics(t *testing.T) {
	assert.Panics(t, func() { MustPack(mgl64.Vec3{math.Inf(1), 0, 0}) })
}

func TestLanes(t *testing.T) {
	p := Vec3{Hi: 0x0123456789abcdef, Lo: 0xfedcba9876543210}

	l := p.Lanes()
	assert.Equal(t, [4]uint32{0x76543210, 0xfedcba98, 0x89abcdef, 0x01234567}, l)
	assert.Equal(t, p, FromLanes(l))

	assert.Equal(t, [4]uint32{0, 0, 0, 8}, MustPack(mgl64.Vec3{1, 0, 0}).Lanes())
	assert.Equal(t, [4]uint32{0xffffc000, 0x3ff, 0, 0}, MustPack(mgl64.Vec3{0, 0, -1}).Lanes())
}

func TestLimits(t *testing.T) {
	lo, hi := Limits()

	assert.Equal(t, -math.Ldexp(1, 28), lo[0])
	assert.Equal(t, -math.Ldexp(1, 28), lo[1])
	assert.Equal(t, -math.Ldexp(1, 27), lo[2])
	assert.Equal(t, math.Ldexp(1, 27)-Resolution, hi[2])
}

func TestString(t *testing.T) {
	assert.Equal(t, "0000000800000000"+"0000000000000000", MustPack(mgl64.Vec3{1, 0, 0}).String())
}
