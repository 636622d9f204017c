// Package viewer implements the interactive planet viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/planetgen/internal/config"
	"github.com/Faultbox/planetgen/internal/engine/camera"
	"github.com/Faultbox/planetgen/internal/engine/debug"
	"github.com/Faultbox/planetgen/internal/engine/input"
	"github.com/Faultbox/planetgen/internal/engine/renderer"
	"github.com/Faultbox/planetgen/internal/engine/window"
	"github.com/Faultbox/planetgen/internal/planet"
	"github.com/Faultbox/planetgen/pkg/tectonics"
)

// Viewer owns the window, GPU state and camera for one planet.
type Viewer struct {
	planet   *planet.Planet
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *debug.Screenshots
	capture  bool
}

// New opens a window and uploads p.
func New(cfg config.GraphicsConfig, p *planet.Planet, log *zap.Logger) (*Viewer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		planet: p,
		log:    log,
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      v.title(0),
		Width:      cfg.Width,
		Height:     cfg.Height,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the OpenGL context the window created
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		Wireframe: cfg.Wireframe,
	}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.renderer.Upload(p.Vertices, p.Indices); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to upload planet: %w", err)
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera(float32(p.Params.Radius))
	v.camera.SetViewport(width, height)
	v.shots = debug.NewScreenshots("screenshots", "planet")

	return v, nil
}

// Run drives the frame loop until the window closes or Esc is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.camera.Update(float32(dt))
		v.renderer.Draw(v.camera.ViewProjection(), v.camera.Position())
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			v.window.SetTitle(v.title(fps))
			v.log.Debug("fps", zap.Float64("fps", fps), zap.Duration("frame", time.Duration(dt*float64(time.Second))))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventResize:
			width, height := v.window.DrawableSize()
			v.renderer.Resize(width, height)
			v.camera.SetViewport(width, height)
		case input.EventDragStart:
			v.camera.SetDragging(true)
		case input.EventDrag:
			v.camera.HandleDrag(event.DX, event.DY)
		case input.EventDragEnd:
			v.camera.SetDragging(false)
		case input.EventZoom:
			v.camera.HandleZoom(event.DY)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_W:
				v.renderer.SetWireframe(!v.renderer.Wireframe())
			case sdl.SCANCODE_F12:
				v.capture = true
			}
		}
	}
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	name, err := v.shots.Save(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

func (v *Viewer) title(fps float64) string {
	counts := tectonics.CountByClassification(v.planet.Plates)
	return fmt.Sprintf("planetgen | seed %d | %d plates (%d continental, %d oceanic) | %.0f fps",
		v.planet.Params.Seed,
		len(v.planet.Plates),
		counts[tectonics.Continental],
		counts[tectonics.Oceanic],
		fps,
	)
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Debug("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
