package imageio

import (
	"github.com/davesmith10/lsbsteg/internal/ir"
	"github.com/davesmith10/lsbsteg/internal/jpeg"
)

// Decoded is an image decoded to RGB, with the ICC profile it was
// tagged with, if any.
type Decoded struct {
	Image  *ir.RGBImage
	Format Format
	ICC    []byte
}

// Decode sniffs data and decodes it. Alpha is discarded.
func Decode(data []byte) (*Decoded, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJPEG:
		dec, err := jpeg.Decode(data)
		if err != nil {
			return nil, &ImageLoadError{Format: format, Err: err}
		}
		return &Decoded{Image: dec.Image, Format: format, ICC: dec.ICC}, nil

	default:
		img, err := decodePNG(data)
		if err != nil {
			return nil, &ImageLoadError{Format: format, Err: err}
		}
		icc, err := pngICC(data)
		if err != nil {
			return nil, &ImageLoadError{Format: format, Err: err}
		}
		return &Decoded{Image: img, Format: format, ICC: icc}, nil
	}
}
