// Package texture decodes images into tightly packed RGBA buffers for upload.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("TGA pixel data truncated")

// DecodeTGA decodes an uncompressed (type 2) or RLE (type 10) true-color
// TGA image with 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	r := &tgaReader{
		data: data[offset:],
		bpp:  bpp / 8,
		rle:  imageType == TGATypeRLE,
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// Bit 5 of the descriptor set means rows are stored top to bottom.
	topToBottom := descriptor&0x20 != 0

	for i := 0; i < width*height; i++ {
		c, err := r.next()
		if err != nil {
			return nil, err
		}
		x, y := i%width, i/width
		if !topToBottom {
			y = height - 1 - y
		}
		img.SetRGBA(x, y, c)
	}

	return img, nil
}

// tgaReader yields pixels in file order, expanding RLE packets.
type tgaReader struct {
	data []byte
	pos  int
	bpp  int
	rle  bool

	remaining int  // pixels left in the current packet
	repeat    bool // current packet repeats one pixel
	last      color.RGBA
}

func (r *tgaReader) next() (color.RGBA, error) {
	if !r.rle {
		return r.readPixel()
	}

	if r.remaining == 0 {
		if r.pos >= len(r.data) {
			return color.RGBA{}, errTGATruncated
		}
		header := r.data[r.pos]
		r.pos++
		r.remaining = int(header&0x7F) + 1
		r.repeat = header&0x80 != 0
		if r.repeat {
			c, err := r.readPixel()
			if err != nil {
				return color.RGBA{}, err
			}
			r.last = c
		}
	}

	r.remaining--
	if r.repeat {
		return r.last, nil
	}
	return r.readPixel()
}

func (r *tgaReader) readPixel() (color.RGBA, error) {
	if r.pos+r.bpp > len(r.data) {
		return color.RGBA{}, errTGATruncated
	}
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp

	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}
