// Package viewer runs the interactive mesh viewer loop.
package viewer

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/gpu"
	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/transform"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	mesh     *mesh.Renderer
	lights   *lighting.Controller
	pose     *camera.PoseController
	shots    *debug.ScreenshotCapture
	controls controls

	screenshotPending bool
	dialogOpen        bool
	picked            chan pickedFile
}

// New creates the window, GL state and mesh renderer, and loads the scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:    cfg,
		log:    logger.Named("viewer"),
		picked: make(chan pickedFile, 1),
	}
	v.log.Info("initializing viewer",
		zap.String("mesh", cfg.Scene.Mesh),
		zap.String("texture", cfg.Scene.Texture),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer after the window, since the GL context must exist.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		FOV:        cfg.Camera.FOV * gomath.Pi / 180,
		Near:       cfg.Camera.Near,
		Far:        cfg.Camera.Far,
		ClearColor: [4]float32{0.1, 0.1, 0.15, 1.0},
	})
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.lights = lighting.NewController()
	v.lights.Step = cfg.Lighting.Step

	v.mesh, err = mesh.New(gpu.NewGLDevice(), v.renderer.Program(), v.lights)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create mesh renderer: %w", err)
	}

	v.input = input.New()
	v.mesh.SetKeySource(v.input)

	if err := v.loadScene(); err != nil {
		v.Close()
		return nil, err
	}

	v.pose = camera.NewPoseController(transform.Pose{
		TZ:   cfg.Camera.Distance,
		RotX: cfg.Camera.RotX,
		RotY: cfg.Camera.RotY,
	}, cfg.Window.FPS, cfg.Camera.SpringFrequency, cfg.Camera.SpringDamping)
	v.pose.DragSensitivity = cfg.Camera.DragSensitivity
	v.pose.ZoomStep = cfg.Camera.ZoomStep

	v.shots = debug.NewScreenshotCapture(cfg.Scene.ScreenshotDir, "meshview")

	v.log.Info("viewer initialized")
	return v, nil
}

func (v *Viewer) loadScene() error {
	if err := v.uploadMesh(v.cfg.Scene); err != nil {
		return err
	}
	if err := v.uploadTexture(v.cfg.Scene); err != nil {
		return err
	}

	lc := v.cfg.Lighting
	v.mesh.SetLightPosition(math.Vec3{X: lc.Position[0], Y: lc.Position[1], Z: lc.Position[2]})
	v.mesh.SetAmbientLight(lc.Ambient)
	v.mesh.EnableLighting(lc.Enabled)
	v.controls.lighting = lc.Enabled
	v.controls.ambientStep = lc.AmbientStep
	return nil
}

func (v *Viewer) uploadMesh(scene config.SceneConfig) error {
	m, err := loadMesh(scene)
	if err != nil {
		return fmt.Errorf("failed to load mesh: %w", err)
	}
	if err := v.mesh.SetMesh(m.Positions, m.TexCoords, m.Normals); err != nil {
		return fmt.Errorf("failed to upload mesh: %w", err)
	}
	v.log.Info("mesh loaded",
		zap.String("path", scene.Mesh),
		zap.Int("vertices", m.VertexCount()),
		zap.Bool("normals", m.HasNormals()),
	)
	return nil
}

func (v *Viewer) uploadTexture(scene config.SceneConfig) error {
	img, err := loadTexture(scene)
	if err != nil || img == nil {
		return err
	}
	if err := v.mesh.SetTexture(img); err != nil {
		return fmt.Errorf("failed to upload texture: %w", err)
	}
	v.controls.hasTexture = true
	v.controls.texture = true
	v.mesh.ShowTexture(true)
	v.log.Info("texture loaded",
		zap.String("path", scene.Texture),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
		zap.Bool("mipmapped", v.mesh.Mipmapped()),
	)
	return nil
}

// Run starts the main loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		if err := v.pollPickedFile(); err != nil {
			return err
		}

		// 2. Update pose
		v.pose.Update()

		// 3. Render
		if err := v.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 4. Present
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventMouseMove:
			if v.input.Dragging() {
				v.pose.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseWheel:
			v.pose.HandleZoom(float32(event.WheelY))
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	cmd := commandFor(key)
	switch cmd {
	case cmdNone:
		return
	case cmdQuit:
		v.running = false
	case cmdReset:
		v.pose.Reset()
		v.lights.Reset()
		v.log.Debug("pose and light reset")
	case cmdScreenshot:
		v.screenshotPending = true
	case cmdOpenMesh:
		v.openFileDialog(fileMesh)
	case cmdOpenTexture:
		v.openFileDialog(fileTexture)
	case cmdSaveView:
		v.saveView()
	default:
		v.controls.apply(cmd, v.mesh)
		v.log.Debug("controls changed",
			zap.Bool("lighting", v.controls.lighting),
			zap.Bool("texture", v.controls.texture),
			zap.Float32("ambient", v.mesh.Light().Ambient),
		)
	}
}

// saveView writes the current view to the user config file.
func (v *Viewer) saveView() {
	v.controls.captureView(v.cfg, v.pose.Target(), v.mesh.Light())
	if err := v.cfg.Save(); err != nil {
		v.log.Warn("failed to save config", zap.Error(err))
		return
	}
	v.log.Info("config saved", zap.String("dir", config.ConfigDir()))
}

func (v *Viewer) render() error {
	v.renderer.Begin()

	mvp := v.pose.Pose().MVP(v.renderer.Projection())
	if err := v.mesh.Draw(mvp); err != nil {
		return err
	}

	if v.screenshotPending {
		v.screenshotPending = false
		pixels, w, h := v.renderer.ReadPixels()
		path, err := v.shots.CaptureFromPixels(pixels, w, h)
		if err != nil {
			v.log.Warn("screenshot failed", zap.Error(err))
		} else {
			v.log.Info("screenshot saved", zap.String("path", path))
		}
	}
	return nil
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.mesh != nil {
		v.mesh.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
