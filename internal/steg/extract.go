package steg

import "github.com/davesmith10/lsbsteg/internal/ir"

// Extract reads the low bit of every channel of every pixel in Plan
// order. The result is always img.Capacity() bits long: the payload
// length is not stored, so whatever follows the payload comes back too.
func Extract(img *ir.RGBImage, o Orientation) Bits {
	bits := NewBits(img.Capacity())
	for p := range Plan(img.Width, img.Height, o) {
		for c := 0; c < ir.ChannelsPerPixel; c++ {
			bits.Append(img.Channel(p.X, p.Y, c) & 1)
		}
	}
	return bits
}
