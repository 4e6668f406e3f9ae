package steg

import "github.com/davesmith10/lsbsteg/internal/ir"

// Embed writes bits into img, one bit per channel, R then G then B for
// each pixel in Plan order. The image is expected to be normalized: in
// normal mode each bit is added to the channel value.
//
// With visualize set, a carrying channel is instead set to 255 for a 1
// and 0 for a 0. The result shows where the payload sits but can no
// longer be decoded.
//
// Embed does not check capacity. Bits past the end of the grid are
// dropped. It returns the number of bits written.
func Embed(img *ir.RGBImage, bits Bits, o Orientation, visualize bool) int {
	total := bits.Len()
	cursor := 0
	for p := range Plan(img.Width, img.Height, o) {
		if cursor >= total {
			break
		}
		for c := 0; c < ir.ChannelsPerPixel; c++ {
			if cursor < total {
				bit := bits.At(cursor)
				switch {
				case !visualize:
					img.SetChannel(p.X, p.Y, c, img.Channel(p.X, p.Y, c)+bit)
				case bit == 1:
					img.SetChannel(p.X, p.Y, c, 255)
				default:
					img.SetChannel(p.X, p.Y, c, 0)
				}
			}
			cursor++
		}
	}
	return min(cursor, total)
}
