package imageio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/davesmith10/lsbsteg/internal/ir"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// decodePNG decodes a PNG of any color type to 8-bit RGB.
func decodePNG(data []byte) (*ir.RGBImage, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	dst, err := ir.NewRGBImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	// Fast paths read the backing Pix slice directly. Straight (non
	// premultiplied) color is kept so translucent pixels keep their
	// stored channel values.
	switch s := src.(type) {
	case *image.NRGBA:
		for y := 0; y < dst.Height; y++ {
			row := s.Pix[(y+b.Min.Y-s.Rect.Min.Y)*s.Stride+(b.Min.X-s.Rect.Min.X)*4:]
			for x := 0; x < dst.Width; x++ {
				dst.Set(x, y, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
	case *image.RGBA:
		for y := 0; y < dst.Height; y++ {
			row := s.Pix[(y+b.Min.Y-s.Rect.Min.Y)*s.Stride+(b.Min.X-s.Rect.Min.X)*4:]
			for x := 0; x < dst.Width; x++ {
				dst.Set(x, y, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
	default:
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				dst.Set(x, y, c.R, c.G, c.B)
			}
		}
	}
	return dst, nil
}

// EncodePNG writes img as an opaque 8-bit truecolor PNG.
func EncodePNG(img *ir.RGBImage) ([]byte, error) {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := img.At(x, y)
			o := y*out.Stride + x*4
			out.Pix[o] = r
			out.Pix[o+1] = g
			out.Pix[o+2] = b
			out.Pix[o+3] = 0xff
		}
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}

// pngICC returns the profile stored in a PNG's iCCP chunk, nil if there
// is none. Only the chunks before the first IDAT are examined.
func pngICC(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, errors.New("missing PNG signature")
	}
	rest := data[len(pngSignature):]
	for len(rest) >= 12 {
		length := binary.BigEndian.Uint32(rest[:4])
		kind := string(rest[4:8])
		if uint64(length)+12 > uint64(len(rest)) {
			return nil, fmt.Errorf("truncated %s chunk", kind)
		}
		body := rest[8 : 8+length]

		switch kind {
		case "iCCP":
			return inflateICCP(body)
		case "IDAT", "IEND":
			return nil, nil
		}
		rest = rest[12+length:]
	}
	return nil, nil
}

// iCCP layout: profile name (1-79 bytes), NUL, compression method (0 =
// zlib), compressed profile.
func inflateICCP(body []byte) ([]byte, error) {
	nul := bytes.IndexByte(body, 0)
	if nul < 1 || nul+2 > len(body) {
		return nil, errors.New("malformed iCCP chunk")
	}
	if method := body[nul+1]; method != 0 {
		return nil, fmt.Errorf("iCCP: unknown compression method %d", method)
	}
	r, err := zlib.NewReader(bytes.NewReader(body[nul+2:]))
	if err != nil {
		return nil, fmt.Errorf("iCCP: %w", err)
	}
	defer r.Close()
	profile, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("iCCP: %w", err)
	}
	return profile, nil
}
