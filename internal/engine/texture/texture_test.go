package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestIsPowerOf2(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 1024} {
		if !IsPowerOf2(n) {
			t.Errorf("IsPowerOf2(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, 3, 5, 6, 1023, -4} {
		if IsPowerOf2(n) {
			t.Errorf("IsPowerOf2(%d) = true, want false", n)
		}
	}
}

// tgaHeader builds an 18-byte header for a true-color image.
func tgaHeader(imageType byte, width, height int, bpp byte, topToBottom bool) []byte {
	h := make([]byte, tgaHeaderSize)
	h[2] = imageType
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = bpp
	if topToBottom {
		h[17] = 0x20
	}
	return h
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2, bottom-up, BGR: bottom row red, green; top row blue, white.
	data := tgaHeader(TGATypeUncompressed, 2, 2, 24, false)
	data = append(data,
		0, 0, 255, 0, 255, 0,
		255, 0, 0, 255, 255, 255,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 1, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{0, 255, 0, 255}},
		{0, 0, color.RGBA{0, 0, 255, 255}},
		{1, 0, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.At(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d): got %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, top-down, 32bpp: one repeat packet of 2 red pixels, one raw packet.
	data := tgaHeader(TGATypeRLE, 3, 1, 32, true)
	data = append(data,
		0x81, 0, 0, 255, 128,
		0x00, 255, 0, 0, 255,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}

	want := []color.RGBA{
		{255, 0, 0, 128},
		{255, 0, 0, 128},
		{0, 0, 255, 255},
	}
	for x, w := range want {
		if got := img.At(x, 0); got != w {
			t.Errorf("pixel %d: got %v, want %v", x, got, w)
		}
	}
}

func colorMappedHeader() []byte {
	h := tgaHeader(TGATypeUncompressed, 1, 1, 24, false)
	h[1] = 1
	return h
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"color mapped", colorMappedHeader()},
		{"grayscale", tgaHeader(3, 1, 1, 8, false)},
		{"16bpp", tgaHeader(TGATypeUncompressed, 1, 1, 16, false)},
		{"truncated pixels", append(tgaHeader(TGATypeUncompressed, 2, 2, 24, false), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(TGATypeRLE, 4, 1, 24, false), 0x80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestToRGBAFlip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 8)) // 2x3 with non-zero origin
	src.Set(5, 5, color.NRGBA{255, 0, 0, 255})
	src.Set(6, 7, color.NRGBA{0, 0, 255, 255})

	plain := ToRGBA(src, false)
	if plain.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("bounds: got %v", plain.Bounds())
	}
	if got := plain.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("unflipped top-left: got %v", got)
	}

	flipped := ToRGBA(src, true)
	if got := flipped.RGBAAt(0, 2); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("flipped bottom-left: got %v", got)
	}
	if got := flipped.RGBAAt(1, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("flipped top-right: got %v", got)
	}
	if len(flipped.Pix) != 2*3*4 {
		t.Errorf("expected tightly packed pixels, got %d bytes", len(flipped.Pix))
	}
}

func TestLoadPNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})

	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("size: got %v", img.Bounds())
	}
	// Top-left of the file ends up in the last row.
	if got := img.RGBAAt(0, 1); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("flipped pixel: got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
