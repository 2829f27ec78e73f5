package viewer

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/mesh"
)

type fileKind int

const (
	fileMesh fileKind = iota
	fileTexture
)

func (k fileKind) String() string {
	if k == fileTexture {
		return "texture"
	}
	return "mesh"
}

// pickedFile is the result of a file dialog. An empty path means cancelled.
type pickedFile struct {
	kind fileKind
	path string
}

// openFileDialog shows a native file dialog off the main thread. The choice
// is delivered on v.picked and applied by the render loop, since GL uploads
// must happen on the main thread.
func (v *Viewer) openFileDialog(kind fileKind) {
	if v.dialogOpen {
		return
	}
	v.dialogOpen = true

	go func() {
		b := dialog.File().Title(fmt.Sprintf("Open %s", kind))
		if kind == fileMesh {
			b = b.Filter("Meshes", "obj", "gltf", "glb")
		} else {
			b = b.Filter("Images", "png", "jpg", "jpeg", "bmp", "tga")
		}

		path, err := b.Filter("All Files", "*").Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				v.log.Warn("file dialog failed", zap.Error(err))
			}
			path = ""
		}
		v.picked <- pickedFile{kind: kind, path: path}
	}()
}

// pollPickedFile applies a finished dialog, if any. Unreadable files are
// logged and skipped; a GPU resource failure is returned and ends the loop.
func (v *Viewer) pollPickedFile() error {
	select {
	case f := <-v.picked:
		v.dialogOpen = false
		if f.path == "" {
			return nil
		}
		err := v.openFile(f)
		if err == nil {
			return nil
		}
		if isFatal(err) {
			return fmt.Errorf("open %s %s: %w", f.kind, f.path, err)
		}
		v.log.Warn("failed to open file",
			zap.Stringer("kind", f.kind),
			zap.String("path", f.path),
			zap.Error(err),
		)
	default:
	}
	return nil
}

// isFatal reports whether err left the GPU unable to draw the scene.
func isFatal(err error) bool {
	return errors.Is(err, mesh.ErrResourceAcquisition)
}

func (v *Viewer) openFile(f pickedFile) error {
	scene := v.cfg.Scene
	switch f.kind {
	case fileMesh:
		scene.Mesh = f.path
		if err := v.uploadMesh(scene); err != nil {
			return err
		}
		v.pose.Reset()
	case fileTexture:
		scene.Texture = f.path
		if err := v.uploadTexture(scene); err != nil {
			return err
		}
	}
	v.cfg.Scene = scene
	return nil
}
