package jpeg

import (
	"fmt"

	"github.com/davesmith10/lsbsteg/internal/ir"
)

// Decoded holds a JPEG decoded to an RGB pixel grid.
type Decoded struct {
	Image *ir.RGBImage
	ICC   []byte // extracted ICC profile, nil if absent
}

// Decode decodes a JPEG file from memory. libjpeg converts grayscale and
// YCbCr sources to RGB, so the result always has three channels.
func Decode(data []byte) (*Decoded, error) {
	raw, err := readJPEG(data, true)
	if err != nil {
		return nil, err
	}
	if raw.components != ir.ChannelsPerPixel {
		return nil, fmt.Errorf("libjpeg: expected %d output components, got %d",
			ir.ChannelsPerPixel, raw.components)
	}

	img, err := ir.FromPixels(raw.pixels, raw.width, raw.height)
	if err != nil {
		return nil, fmt.Errorf("libjpeg: %w", err)
	}

	icc, err := ExtractICC(raw.app2)
	if err != nil {
		return nil, fmt.Errorf("extracting ICC: %w", err)
	}
	return &Decoded{Image: img, ICC: icc}, nil
}
