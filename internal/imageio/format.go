// Package imageio turns encoded JPEG and PNG files into the RGB pixel
// grid the steganography engine works on, and writes grids back out as
// PNG. PNG is the only output format: any lossy re-encoding would
// destroy the LSB plane.
package imageio

import (
	"fmt"
	"net/http"
)

// Format is the MIME type of an encoded image.
type Format string

const (
	FormatJPEG Format = "image/jpeg"
	FormatPNG  Format = "image/png"
)

// UnsupportedFormatError reports input that is neither JPEG nor PNG.
type UnsupportedFormatError struct {
	MIME string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported image format %q (expected %s or %s)", e.MIME, FormatJPEG, FormatPNG)
}

// ImageLoadError reports an image that could not be read or decoded.
type ImageLoadError struct {
	Format Format
	Err    error
}

func (e *ImageLoadError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("loading image: %v", e.Err)
	}
	return fmt.Sprintf("loading %s image: %v", e.Format, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// Sniff identifies the format of data from its leading bytes.
func Sniff(data []byte) (Format, error) {
	if len(data) == 0 {
		return "", &ImageLoadError{Err: fmt.Errorf("empty input")}
	}
	mime := http.DetectContentType(data)
	switch Format(mime) {
	case FormatJPEG, FormatPNG:
		return Format(mime), nil
	default:
		return "", &UnsupportedFormatError{MIME: mime}
	}
}
