package ir

import "fmt"

// Channel indexes within a pixel. Embedding and extraction visit them in
// this order.
const (
	Red = iota
	Green
	Blue

	// ChannelsPerPixel is the number of color channels carried by a pixel.
	ChannelsPerPixel = 3
)

// RGBImage is the pixel grid handed between the image decoders, the
// steganography engine and the PNG exporter. Pixels are stored as
// interleaved R,G,B bytes (3 bytes per pixel, row-major order).
//
// An RGBImage is owned by one operation at a time; nothing in this
// package synchronizes access.
type RGBImage struct {
	Width  int
	Height int
	Pixels []byte // len = Width * Height * 3
}

// NewRGBImage allocates an all-black grid.
func NewRGBImage(width, height int) (*RGBImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	return &RGBImage{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*ChannelsPerPixel),
	}, nil
}

// FromPixels wraps an existing interleaved RGB buffer without copying.
func FromPixels(pixels []byte, width, height int) (*RGBImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if expected := width * height * ChannelsPerPixel; len(pixels) != expected {
		return nil, fmt.Errorf("expected %d bytes for %dx%d RGB, got %d", expected, width, height, len(pixels))
	}
	return &RGBImage{Width: width, Height: height, Pixels: pixels}, nil
}

func (m *RGBImage) offset(x, y int) int {
	return (y*m.Width + x) * ChannelsPerPixel
}

// At returns the three channel values of the pixel at (x, y).
func (m *RGBImage) At(x, y int) (r, g, b uint8) {
	o := m.offset(x, y)
	return m.Pixels[o], m.Pixels[o+1], m.Pixels[o+2]
}

// Set overwrites the pixel at (x, y).
func (m *RGBImage) Set(x, y int, r, g, b uint8) {
	o := m.offset(x, y)
	m.Pixels[o] = r
	m.Pixels[o+1] = g
	m.Pixels[o+2] = b
}

// Channel returns a single channel (Red, Green or Blue) of the pixel at (x, y).
func (m *RGBImage) Channel(x, y, c int) uint8 {
	return m.Pixels[m.offset(x, y)+c]
}

// SetChannel overwrites a single channel of the pixel at (x, y).
func (m *RGBImage) SetChannel(x, y, c int, v uint8) {
	m.Pixels[m.offset(x, y)+c] = v
}

// Capacity is the number of payload bits the grid can carry: one per
// channel.
func (m *RGBImage) Capacity() int {
	return m.Width * m.Height * ChannelsPerPixel
}

// Clone returns a deep copy.
func (m *RGBImage) Clone() *RGBImage {
	pixels := make([]byte, len(m.Pixels))
	copy(pixels, m.Pixels)
	return &RGBImage{Width: m.Width, Height: m.Height, Pixels: pixels}
}
