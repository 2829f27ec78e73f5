// Package config handles viewer configuration loading and management.
package config

import "fmt"

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Scene    SceneConfig    `yaml:"scene"`
	Lighting LightingConfig `yaml:"lighting"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPS        int    `yaml:"fps"` // expected frame rate, drives camera smoothing
}

// SceneConfig holds what gets loaded into the viewer.
type SceneConfig struct {
	Mesh           string `yaml:"mesh"`    // .obj, .gltf or .glb; empty shows a cube
	Texture        string `yaml:"texture"` // .png, .jpg, .bmp or .tga
	FitUnitBox     bool   `yaml:"fit_unit_box"`
	ComputeNormals bool   `yaml:"compute_normals"` // flat normals when the file has none
	ScreenshotDir  string `yaml:"screenshot_dir"`
}

// LightingConfig holds the initial light state.
type LightingConfig struct {
	Enabled     bool       `yaml:"enabled"`
	Position    [3]float32 `yaml:"position"`
	Ambient     float32    `yaml:"ambient"`
	Step        float32    `yaml:"step"`         // light offset per frame per held arrow key
	AmbientStep float32    `yaml:"ambient_step"` // change per +/- press
}

// CameraConfig holds projection and initial pose settings.
type CameraConfig struct {
	FOV             float32 `yaml:"fov"` // degrees
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	Distance        float32 `yaml:"distance"` // initial translation Z
	RotX            float32 `yaml:"rot_x"`    // radians
	RotY            float32 `yaml:"rot_y"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomStep        float32 `yaml:"zoom_step"`
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "meshview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPS:        60,
		},
		Scene: SceneConfig{
			FitUnitBox:     true,
			ComputeNormals: true,
			ScreenshotDir:  "screenshots",
		},
		Lighting: LightingConfig{
			Enabled:     true,
			Position:    [3]float32{1, 1, 1},
			Ambient:     0.5,
			Step:        1,
			AmbientStep: 0.05,
		},
		Camera: CameraConfig{
			FOV:             60,
			Near:            0.1,
			Far:             100,
			Distance:        -2,
			DragSensitivity: 0.01,
			ZoomStep:        0.25,
			SpringFrequency: 6,
			SpringDamping:   1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("fps %d must be positive", c.Window.FPS)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov %.1f must be in (0, 180)", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip planes near=%g far=%g are invalid", c.Camera.Near, c.Camera.Far)
	}
	if c.Lighting.Ambient < 0 {
		return fmt.Errorf("ambient %g must not be negative", c.Lighting.Ambient)
	}
	return nil
}
