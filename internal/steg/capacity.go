package steg

import (
	"fmt"

	"github.com/davesmith10/lsbsteg/internal/ir"
)

// CapacityError reports a payload that does not fit in the target image.
type CapacityError struct {
	Need int // payload bits
	Have int // image capacity in bits
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("payload needs %d bits but image holds %d (%d bytes)", e.Need, e.Have, e.Have/8)
}

// CheckCapacity returns a *CapacityError if bits does not fit in img.
func CheckCapacity(img *ir.RGBImage, bits Bits) error {
	if bits.Len() > img.Capacity() {
		return &CapacityError{Need: bits.Len(), Have: img.Capacity()}
	}
	return nil
}
