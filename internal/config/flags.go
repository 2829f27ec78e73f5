package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagMesh       = flag.String("mesh", "", "Mesh file (.obj, .gltf, .glb)")
	flagTexture    = flag.String("texture", "", "Texture image (.png, .jpg, .bmp, .tga)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagAmbient    = flag.Float64("ambient", -1, "Ambient light intensity")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagMesh != "" {
		cfg.Scene.Mesh = *flagMesh
	}
	if *flagTexture != "" {
		cfg.Scene.Texture = *flagTexture
	}
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagAmbient >= 0 {
		cfg.Lighting.Ambient = float32(*flagAmbient)
	}
}
