package color

/*
#cgo pkg-config: lcms2
#include <lcms2.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/davesmith10/lsbsteg/internal/ir"
)

// Lcms2Version returns the encoded CMM version from lcms2.
func Lcms2Version() int {
	return int(C.cmsGetEncodedCMMversion())
}

// Intent constants matching lcms2.
const (
	IntentPerceptual           = 0
	IntentRelativeColorimetric = 1
	IntentSaturation           = 2
	IntentAbsoluteColorimetric = 3
)

// ParseIntent converts a string intent name to an lcms2 intent constant.
func ParseIntent(s string) (int, error) {
	switch s {
	case "perceptual":
		return IntentPerceptual, nil
	case "relative":
		return IntentRelativeColorimetric, nil
	case "saturation":
		return IntentSaturation, nil
	case "absolute":
		return IntentAbsoluteColorimetric, nil
	default:
		return 0, fmt.Errorf("unknown rendering intent: %q", s)
	}
}

// Transform converts 8-bit RGB pixels described by a source ICC profile
// into sRGB. The PNG writer does not embed profiles, so pixels from a
// tagged JPEG are converted before they are written out untagged.
type Transform struct {
	h C.cmsHTRANSFORM
}

// NewSRGBTransform creates an RGB→sRGB transform from raw source ICC
// profile data. The destination is lcms2's built-in sRGB profile.
func NewSRGBTransform(srcICC []byte, intent int) (*Transform, error) {
	if len(srcICC) == 0 {
		return nil, fmt.Errorf("lcms2: empty source profile")
	}
	src := C.cmsOpenProfileFromMem(unsafe.Pointer(&srcICC[0]), C.cmsUInt32Number(len(srcICC)))
	if src == nil {
		return nil, fmt.Errorf("lcms2: failed to open source profile")
	}
	defer C.cmsCloseProfile(src)

	dst := C.cmsCreate_sRGBProfile()
	if dst == nil {
		return nil, fmt.Errorf("lcms2: failed to create sRGB profile")
	}
	defer C.cmsCloseProfile(dst)

	// The transform keeps what it needs; both profiles can go once it exists.
	h := C.cmsCreateTransform(src, C.TYPE_RGB_8, dst, C.TYPE_RGB_8,
		C.cmsUInt32Number(intent), C.cmsFLAGS_NOCACHE)
	if h == nil {
		return nil, fmt.Errorf("lcms2: failed to create transform")
	}

	t := &Transform{h: h}
	runtime.SetFinalizer(t, (*Transform).Close)
	return t, nil
}

// Apply converts img to sRGB in place, row by row.
func (t *Transform) Apply(img *ir.RGBImage) error {
	if t.h == nil {
		return fmt.Errorf("lcms2: transform is closed")
	}
	stride := img.Width * ir.ChannelsPerPixel
	if len(img.Pixels) != stride*img.Height {
		return fmt.Errorf("expected %d RGB bytes, got %d", stride*img.Height, len(img.Pixels))
	}

	for y := 0; y < img.Height; y++ {
		row := unsafe.Pointer(&img.Pixels[y*stride])
		C.cmsDoTransform(t.h, row, row, C.cmsUInt32Number(img.Width))
	}
	return nil
}

// Close releases the lcms2 transform. It is safe to call more than once.
func (t *Transform) Close() {
	if t.h != nil {
		C.cmsDeleteTransform(t.h)
		t.h = nil
	}
}

// srgbProfile returns lcms2's built-in sRGB profile serialized to ICC
// bytes. Tests use it as a known-good source profile.
func srgbProfile() ([]byte, error) {
	h := C.cmsCreate_sRGBProfile()
	if h == nil {
		return nil, fmt.Errorf("lcms2: failed to create sRGB profile")
	}
	defer C.cmsCloseProfile(h)

	var size C.cmsUInt32Number
	if C.cmsSaveProfileToMem(h, nil, &size) == 0 {
		return nil, fmt.Errorf("lcms2: failed to size sRGB profile")
	}
	buf := make([]byte, int(size))
	if C.cmsSaveProfileToMem(h, unsafe.Pointer(&buf[0]), &size) == 0 {
		return nil, fmt.Errorf("lcms2: failed to serialize sRGB profile")
	}
	return buf[:int(size)], nil
}
