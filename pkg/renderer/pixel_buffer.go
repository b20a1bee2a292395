package renderer

import (
	"image"
	"image/color"
)

// PixelBuffer is a dense row-major RGBA8 image, row 0 being the top scanline.
// It is the hand-off format for whatever presents the image.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width*Height*4
}

// NewPixelBuffer allocates a buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// offset returns the index of pixel (i, j)'s red channel
func (b *PixelBuffer) offset(i, j int) int {
	return (j*b.Width + i) * 4
}

// Set writes pixel (i, j). Distinct pixels may be written concurrently.
func (b *PixelBuffer) Set(i, j int, c color.RGBA) {
	o := b.offset(i, j)
	b.Pix[o] = c.R
	b.Pix[o+1] = c.G
	b.Pix[o+2] = c.B
	b.Pix[o+3] = c.A
}

// At returns pixel (i, j)
func (b *PixelBuffer) At(i, j int) color.RGBA {
	o := b.offset(i, j)
	return color.RGBA{R: b.Pix[o], G: b.Pix[o+1], B: b.Pix[o+2], A: b.Pix[o+3]}
}

// Image returns an image.RGBA view sharing the buffer's memory
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
