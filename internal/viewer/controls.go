package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/transform"
)

// command is a discrete key action. Held-key light movement is not a
// command; the light controller polls the keyboard on every draw.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdToggleLighting
	cmdToggleTexture
	cmdAmbientUp
	cmdAmbientDown
	cmdReset
	cmdScreenshot
	cmdOpenMesh
	cmdOpenTexture
	cmdSaveView
)

var keyBindings = map[sdl.Scancode]command{
	sdl.SCANCODE_ESCAPE:   cmdQuit,
	sdl.SCANCODE_L:        cmdToggleLighting,
	sdl.SCANCODE_T:        cmdToggleTexture,
	sdl.SCANCODE_EQUALS:   cmdAmbientUp,
	sdl.SCANCODE_KP_PLUS:  cmdAmbientUp,
	sdl.SCANCODE_MINUS:    cmdAmbientDown,
	sdl.SCANCODE_KP_MINUS: cmdAmbientDown,
	sdl.SCANCODE_R:        cmdReset,
	sdl.SCANCODE_F12:      cmdScreenshot,
	sdl.SCANCODE_O:        cmdOpenMesh,
	sdl.SCANCODE_I:        cmdOpenTexture,
	sdl.SCANCODE_F5:       cmdSaveView,
}

func commandFor(sc sdl.Scancode) command {
	return keyBindings[sc]
}

// sceneTarget is the part of mesh.Renderer the key controls drive.
type sceneTarget interface {
	EnableLighting(enable bool)
	ShowTexture(show bool)
	SetAmbientLight(ambient float32)
	Light() lighting.State
}

// controls tracks the toggles the user flips from the keyboard.
type controls struct {
	lighting    bool
	texture     bool
	hasTexture  bool
	ambientStep float32
}

// apply runs a scene command against target. Commands that need the
// viewer itself are ignored here.
func (c *controls) apply(cmd command, target sceneTarget) {
	switch cmd {
	case cmdToggleLighting:
		c.lighting = !c.lighting
		target.EnableLighting(c.lighting)
	case cmdToggleTexture:
		if !c.hasTexture {
			return
		}
		c.texture = !c.texture
		target.ShowTexture(c.texture)
	case cmdAmbientUp:
		target.SetAmbientLight(target.Light().Ambient + c.ambientStep)
	case cmdAmbientDown:
		ambient := target.Light().Ambient - c.ambientStep
		if ambient < 0 {
			ambient = 0
		}
		target.SetAmbientLight(ambient)
	}
}

// captureView copies the live camera target and light settings into cfg
// so a saved config reopens on the same view.
func (c *controls) captureView(cfg *config.Config, target transform.Pose, light lighting.State) {
	cfg.Camera.Distance = target.TZ
	cfg.Camera.RotX = target.RotX
	cfg.Camera.RotY = target.RotY
	cfg.Lighting.Ambient = light.Ambient
	cfg.Lighting.Enabled = c.lighting
}
