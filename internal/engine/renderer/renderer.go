// Package renderer uploads a generated planet to the GPU and draws it.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/planetgen/internal/engine/shader"
	"github.com/Faultbox/planetgen/internal/planet"
	"github.com/Faultbox/planetgen/pkg/packed"
)

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	Wireframe bool
}

// Renderer draws a single planet mesh.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	vao, vbo, ebo uint32
	indexCount    int32
}

// New initializes OpenGL and compiles the planet program.
// Must be called after the OpenGL context is current.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config: cfg,
		log:    log,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Base icosahedron winding is counter-clockwise seen from outside
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.02, 0.02, 0.05, 1.0)

	var err error
	r.program, err = shader.Compile(planetVertexShader, planetFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create planet program: %w", err)
	}
	log.Debug("planet program created", zap.Uint32("program", r.program.ID))

	r.Resize(cfg.Width, cfg.Height)
	r.SetWireframe(cfg.Wireframe)
	return r, nil
}

// Upload replaces the GPU mesh with the given vertices and indices.
func (r *Renderer) Upload(vertices []planet.Vertex, indices []uint32) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return fmt.Errorf("empty mesh: %d vertices, %d indices", len(vertices), len(indices))
	}
	if int(unsafe.Sizeof(planet.Vertex{})) != planet.VertexStride {
		return fmt.Errorf("vertex size %d does not match stride %d", unsafe.Sizeof(planet.Vertex{}), planet.VertexStride)
	}

	r.release()

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*planet.VertexStride, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	// location 0: packed position, integer attribute
	gl.VertexAttribIPointer(0, 4, gl.UNSIGNED_INT, planet.VertexStride, nil)
	gl.EnableVertexAttribArray(0)

	// location 1: color
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, planet.VertexStride, unsafe.Offsetof(planet.Vertex{}.Color))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.indexCount = int32(len(indices))
	r.log.Debug("mesh uploaded",
		zap.Int("vertices", len(vertices)),
		zap.Int("indices", len(indices)),
		zap.Uint32("vao", r.vao),
	)
	return nil
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetWireframe toggles line rasterization.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
	mode := uint32(gl.FILL)
	if on {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
}

// Wireframe reports whether line rasterization is on.
func (r *Renderer) Wireframe() bool {
	return r.config.Wireframe
}

// Draw clears the frame and draws the uploaded mesh lit from the camera.
func (r *Renderer) Draw(viewProj mgl32.Mat4, eye mgl32.Vec3) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.indexCount == 0 {
		return
	}

	r.program.Use()
	r.program.SetMat4("uViewProj", viewProj)
	r.program.SetFloat("uInvScale", float32(packed.Resolution))
	r.program.SetVec3("uLightDir", eye.Normalize())
	r.program.SetFloat("uAmbient", 0.35)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReadPixels returns the back buffer as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) release() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	r.indexCount = 0
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	r.log.Debug("closing renderer")
	r.release()
	if r.program != nil {
		r.program.Delete()
	}
}
