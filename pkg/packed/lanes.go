package packed

import "github.com/go-gl/mathgl/mgl32"

// LanesToFloat32 decodes lanes with single-precision arithmetic only, the
// same steps the viewer's vertex shader takes. Coordinates below 1024 units
// decode exactly; larger ones lose precision like any float32.
func LanesToFloat32(l [4]uint32) mgl32.Vec3 {
	x := float32(int32(l[3]))*2048 + float32(l[2]>>21)

	yTop := int32(l[2]<<11) >> 11
	y := float32(yTop)*4194304 + float32(l[1]>>10)

	// Fold the sign of the low lane into the top bits so small values stay
	// in the exact float32 range.
	zTop := int32(l[1]<<22) >> 22
	zLow := int32(l[0])
	if zLow < 0 {
		zTop++
	}
	z := float32(zTop)*4294967296 + float32(zLow)

	return mgl32.Vec3{x, y, z}.Mul(1.0 / Scale)
}
