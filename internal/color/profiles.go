package color

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// ICC header layout (ICC.1:2010 section 7.2). Only the fields reported by
// identify and checked before a transform are read.
const (
	headerSize     = 128
	maxProfileSize = 4 << 20
	acspMagic      = 0x61637370 // "acsp"

	offSize       = 0
	offVersion    = 8
	offClass      = 12
	offColorSpace = 16
	offPCS        = 20
	offMagic      = 36
)

// ProfileInfo contains metadata parsed from an ICC profile header.
// Signatures are kept verbatim, including trailing spaces ("RGB ").
type ProfileInfo struct {
	Size       uint32
	Version    string
	ColorSpace string
	PCS        string
	Class      string
}

// ParseProfileInfo reads ICC header metadata from raw profile bytes.
func ParseProfileInfo(data []byte) (*ProfileInfo, error) {
	switch {
	case len(data) < headerSize:
		return nil, errors.New("ICC profile too short (< 128 bytes)")
	case len(data) > maxProfileSize:
		return nil, fmt.Errorf("ICC profile too large (%d bytes, max %d)", len(data), maxProfileSize)
	}
	if sig := binary.BigEndian.Uint32(data[offMagic:]); sig != acspMagic {
		return nil, fmt.Errorf("invalid ICC signature: 0x%08x (expected 0x%08x)", sig, acspMagic)
	}

	sig := func(off int) string { return string(data[off : off+4]) }
	v := data[offVersion : offVersion+2]
	return &ProfileInfo{
		Size:       binary.BigEndian.Uint32(data[offSize:]),
		Version:    fmt.Sprintf("%d.%d.%d", v[0], v[1]>>4, v[1]&0x0f),
		ColorSpace: sig(offColorSpace),
		PCS:        sig(offPCS),
		Class:      sig(offClass),
	}, nil
}

// IsRGB reports whether the profile describes RGB device data.
func (p *ProfileInfo) IsRGB() bool {
	return p.ColorSpace == "RGB "
}

// LoadProfile reads an ICC profile from disk and validates it.
func LoadProfile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ICC profile: %w", err)
	}
	pi, err := ParseProfileInfo(data)
	if err != nil {
		return nil, fmt.Errorf("validating ICC profile %s: %w", path, err)
	}
	if !pi.IsRGB() {
		return nil, fmt.Errorf("ICC profile %s describes %s data, not RGB", path, ColorSpaceName(pi.ColorSpace))
	}
	return data, nil
}

// IsRGBProfile reports whether icc is a well-formed profile for RGB
// data. Grayscale and CMYK profiles embedded in a JPEG describe the file's
// original color space, not the RGB pixels libjpeg hands back, so they
// can not be used as a transform source.
func IsRGBProfile(icc []byte) bool {
	pi, err := ParseProfileInfo(icc)
	return err == nil && pi.IsRGB()
}

var colorSpaceNames = map[string]string{
	"RGB ": "RGB",
	"CMYK": "CMYK",
	"GRAY": "Grayscale",
	"Lab ": "CIELAB",
	"XYZ ": "CIEXYZ",
	"YCbr": "YCbCr",
}

var profileClassNames = map[string]string{
	"mntr": "Display",
	"prtr": "Output",
	"scnr": "Input",
	"link": "DeviceLink",
	"spac": "ColorSpace",
	"abst": "Abstract",
	"nmcl": "NamedColor",
}

// ColorSpaceName returns a human-readable name for an ICC color space
// signature, or the signature itself when it is not a known one.
func ColorSpaceName(sig string) string {
	if name, ok := colorSpaceNames[sig]; ok {
		return name
	}
	return sig
}

// ProfileClassName returns a human-readable name for an ICC profile class.
func ProfileClassName(sig string) string {
	if name, ok := profileClassNames[sig]; ok {
		return name
	}
	return sig
}
