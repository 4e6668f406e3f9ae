package jpeg

import (
	"bytes"
	"image"
	"image/color"
	stdjpeg "image/jpeg"
	"strings"
	"testing"
)

func encodeTestJPEG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := stdjpeg.Encode(&buf, img, &stdjpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	data := encodeTestJPEG(t, 24, 16, color.RGBA{R: 200, G: 40, B: 90, A: 255})

	dec, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if dec.Image.Width != 24 || dec.Image.Height != 16 {
		t.Errorf("unexpected dimensions: %dx%d", dec.Image.Width, dec.Image.Height)
	}
	if len(dec.Image.Pixels) != 24*16*3 {
		t.Errorf("expected %d pixel bytes, got %d", 24*16*3, len(dec.Image.Pixels))
	}
	if dec.ICC != nil {
		t.Errorf("expected no ICC profile, got %d bytes", len(dec.ICC))
	}

	// Lossy, but a flat field should come back close to the source color.
	r, g, b := dec.Image.At(12, 8)
	for _, ch := range []struct {
		name      string
		got, want int
	}{{"R", int(r), 200}, {"G", int(g), 40}, {"B", int(b), 90}} {
		if d := ch.got - ch.want; d < -8 || d > 8 {
			t.Errorf("%s = %d, expected near %d", ch.name, ch.got, ch.want)
		}
	}
}

func TestDecodeGrayscaleAsRGB(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range gray.Pix {
		gray.Pix[i] = 128
	}
	var buf bytes.Buffer
	if err := stdjpeg.Encode(&buf, gray, nil); err != nil {
		t.Fatalf("encoding gray JPEG: %v", err)
	}

	dec, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(dec.Image.Pixels) != 8*8*3 {
		t.Errorf("expected 3 channels per pixel, got %d bytes", len(dec.Image.Pixels))
	}
}

func TestDecodeCorrupt(t *testing.T) {
	if _, err := Decode([]byte{0xFF}); err == nil {
		t.Error("expected error for 1-byte input")
	}
	if _, err := Decode([]byte("definitely not a jpeg file")); err == nil {
		t.Error("expected error for non-JPEG input")
	}
}

func TestReadHeader(t *testing.T) {
	data := encodeTestJPEG(t, 10, 7, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	hdr, err := ReadHeader(data)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if hdr.Width != 10 || hdr.Height != 7 {
		t.Errorf("unexpected dimensions: %dx%d", hdr.Width, hdr.Height)
	}
	if hdr.NumComponents != 3 {
		t.Errorf("expected 3 components, got %d", hdr.NumComponents)
	}
	if hdr.ColorSpace != "YCbCr" {
		t.Errorf("expected YCbCr color space, got %s", hdr.ColorSpace)
	}
}

// withAPP2 inserts APP2 segments right after the SOI marker.
func withAPP2(data []byte, payloads ...[]byte) []byte {
	out := append([]byte{}, data[:2]...)
	for _, p := range payloads {
		n := len(p) + 2
		out = append(out, 0xFF, 0xE2, byte(n>>8), byte(n))
		out = append(out, p...)
	}
	return append(out, data[2:]...)
}

func TestDecodeICCFromAPP2(t *testing.T) {
	data := withAPP2(encodeTestJPEG(t, 8, 8, color.RGBA{R: 10, G: 20, B: 30, A: 255}),
		iccChunk(2, 2, "-second"),
		[]byte("unrelated APP2 payload"),
		iccChunk(1, 2, "first"),
	)

	dec, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(dec.ICC) != "first-second" {
		t.Errorf("Decode ICC = %q", dec.ICC)
	}

	hdr, err := ReadHeader(data)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if string(hdr.ICC) != "first-second" {
		t.Errorf("ReadHeader ICC = %q", hdr.ICC)
	}
}

// withFrameSize rewrites the dimensions in the baseline SOF0 segment.
func withFrameSize(t *testing.T, data []byte, w, h int) []byte {
	t.Helper()
	out := append([]byte{}, data...)
	i := bytes.Index(out, []byte{0xFF, 0xC0})
	if i < 0 || i+9 > len(out) {
		t.Fatal("no SOF0 segment in test JPEG")
	}
	// FF C0, length (2), precision (1), height (2), width (2)
	out[i+5], out[i+6] = byte(h>>8), byte(h)
	out[i+7], out[i+8] = byte(w>>8), byte(w)
	return out
}

func TestDecodeRejectsOversizedFrame(t *testing.T) {
	data := withFrameSize(t, encodeTestJPEG(t, 8, 8, color.RGBA{A: 255}), 60000, 60000)

	hdr, err := ReadHeader(data)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if hdr.Width != 60000 || hdr.Height != 60000 {
		t.Errorf("unexpected dimensions: %dx%d", hdr.Width, hdr.Height)
	}

	if _, err := Decode(data); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("Decode error = %v, expected an image too large error", err)
	}
}
