package color

import "testing"

func TestLcms2Version(t *testing.T) {
	// Encoded as major*1000 + minor*10, e.g. 2160 for 2.16.
	if v := Lcms2Version(); v < 2000 {
		t.Fatalf("unexpected lcms2 version %d", v)
	}
}
