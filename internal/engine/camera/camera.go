// Package camera provides the orbit camera used by the planet viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSpinRate is the idle yaw speed in radians per second.
const DefaultSpinRate = 0.1

// OrbitCamera orbits the origin on a sphere of radius Distance and slowly
// spins around the vertical axis while the user is not dragging.
type OrbitCamera struct {
	// Spherical coordinates
	Distance float32
	Pitch    float32 // Elevation above the equator (radians)
	Yaw      float32 // Azimuth (radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
	SpinRate        float32

	// Projection
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32

	dragging bool
}

// NewOrbitCamera creates a camera four planet radii from the center.
func NewOrbitCamera(radius float32) *OrbitCamera {
	return &OrbitCamera{
		Distance:        4 * radius,
		MinDistance:     1.1 * radius,
		MaxDistance:     40 * radius,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		SpinRate:        DefaultSpinRate,
		FovY:            mgl32.DegToRad(45),
		Aspect:          16.0 / 9.0,
		Near:            0.01 * radius,
		Far:             100 * radius,
	}
}

// Update advances the idle spin by dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	if c.dragging {
		return
	}
	c.Yaw = wrapAngle(c.Yaw + c.SpinRate*dt)
}

// SetDragging pauses the idle spin while the user rotates the planet.
func (c *OrbitCamera) SetDragging(d bool) {
	c.dragging = d
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch, yaw := float64(c.Pitch), float64(c.Yaw)
	return mgl32.Vec3{
		c.Distance * float32(math.Cos(pitch)*math.Sin(yaw)),
		c.Distance * float32(math.Sin(pitch)),
		c.Distance * float32(math.Cos(pitch)*math.Cos(yaw)),
	}
}

// HandleDrag rotates the camera by a mouse delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw = wrapAngle(c.Yaw - deltaX*c.DragSensitivity)
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, -c.MaxPitch, c.MaxPitch)
}

// HandleZoom moves toward the planet for positive wheel deltas.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// SetViewport updates the aspect ratio from a framebuffer size.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// ViewMatrix looks from Position at the origin.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *OrbitCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func wrapAngle(a float32) float32 {
	const twoPi = 2 * math.Pi
	a = float32(math.Mod(float64(a), twoPi))
	if a < 0 {
		a += twoPi
	}
	return a
}
