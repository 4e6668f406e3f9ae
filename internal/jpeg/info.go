package jpeg

import "fmt"

// colorSpaceName returns a string for libjpeg's J_COLOR_SPACE.
func colorSpaceName(cs int) string {
	switch cs {
	case 0:
		return "Unknown"
	case 1:
		return "Grayscale"
	case 2:
		return "RGB"
	case 3:
		return "YCbCr"
	case 4:
		return "CMYK"
	case 5:
		return "YCCK"
	default:
		return fmt.Sprintf("J_COLOR_SPACE(%d)", cs)
	}
}

// Header is the JPEG metadata reported by the identify command.
type Header struct {
	Width         int
	Height        int
	NumComponents int
	ColorSpace    string
	ICC           []byte // extracted ICC profile, nil if absent
}

// ReadHeader parses the JPEG header and any ICC profile without decoding
// the scan data.
func ReadHeader(data []byte) (*Header, error) {
	raw, err := readJPEG(data, false)
	if err != nil {
		return nil, err
	}
	icc, err := ExtractICC(raw.app2)
	if err != nil {
		return nil, fmt.Errorf("extracting ICC: %w", err)
	}
	return &Header{
		Width:         raw.width,
		Height:        raw.height,
		NumComponents: raw.components,
		ColorSpace:    colorSpaceName(raw.colorSpace),
		ICC:           icc,
	}, nil
}
