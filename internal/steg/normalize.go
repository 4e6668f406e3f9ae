package steg

import "github.com/davesmith10/lsbsteg/internal/ir"

// Normalize lowers every odd channel value by one, leaving the LSB plane
// all zero. After normalization adding a single bit to any channel can
// not overflow. Applying it twice is the same as applying it once.
func Normalize(img *ir.RGBImage) {
	for i := range img.Pixels {
		img.Pixels[i] &^= 1
	}
}
