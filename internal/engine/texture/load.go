package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
)

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Load reads and decodes an image file. Rows are flipped so that the first
// row in memory is the bottom of the image, matching texture coordinates
// with a bottom-left origin.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture %q: %w", path, err)
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}
	return ToRGBA(img, true), nil
}

// Decode decodes image bytes. ext selects the TGA decoder; other formats
// are detected from their header.
func Decode(data []byte, ext string) (image.Image, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// ToRGBA converts img to a tightly packed *image.RGBA with origin (0,0),
// optionally flipping it vertically.
func ToRGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	if flipY {
		rowSize := b.Dx() * 4
		tmp := make([]byte, rowSize)
		for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
			t := rgba.Pix[top*rgba.Stride : top*rgba.Stride+rowSize]
			u := rgba.Pix[bottom*rgba.Stride : bottom*rgba.Stride+rowSize]
			copy(tmp, t)
			copy(t, u)
			copy(u, tmp)
		}
	}
	return rgba
}
