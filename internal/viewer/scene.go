package viewer

import (
	"fmt"
	"image"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/geometry"
	"github.com/Faultbox/meshview/internal/engine/texture"
)

// loadMesh reads the configured mesh, or the built-in cube when none is set,
// and prepares it for upload.
func loadMesh(cfg config.SceneConfig) (*geometry.Mesh, error) {
	var m *geometry.Mesh
	if cfg.Mesh == "" {
		m = geometry.Cube()
	} else {
		var err error
		if m, err = geometry.Load(cfg.Mesh); err != nil {
			return nil, err
		}
	}

	if cfg.FitUnitBox {
		m.FitUnitBox()
	}
	if cfg.ComputeNormals && !m.HasNormals() {
		m.ComputeFlatNormals()
	}
	return m, nil
}

// loadTexture reads the configured texture. A nil image with a nil error
// means no texture is configured.
func loadTexture(cfg config.SceneConfig) (*image.RGBA, error) {
	if cfg.Texture == "" {
		return nil, nil
	}
	img, err := texture.Load(cfg.Texture)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	return img, nil
}
