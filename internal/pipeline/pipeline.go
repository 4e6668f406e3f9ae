package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/davesmith10/lsbsteg/internal/color"
	"github.com/davesmith10/lsbsteg/internal/imageio"
	"github.com/davesmith10/lsbsteg/internal/ir"
	"github.com/davesmith10/lsbsteg/internal/payload"
	"github.com/davesmith10/lsbsteg/internal/steg"
)

// EncodeOptions controls hiding a payload in an image. The zero value
// embeds the raw payload row by row.
type EncodeOptions struct {
	Visualize   bool             // diagnostic rendering; the result can not be decoded
	Compress    bool             // compress after encryption
	Codec       payload.Codec    // compression codec
	Encrypt     bool             // encrypt before compression
	Passphrase  string           // encryption passphrase
	KDF         payload.KDF      // passphrase → key derivation
	Orientation steg.Orientation // pixel visiting order

	// Image-level options, used by EncodeImage only.
	ConvertToSRGB      bool   // convert ICC-tagged input to sRGB before embedding
	SrcProfileOverride []byte // optional: override the input's embedded ICC profile
	Intent             int    // lcms2 rendering intent for the sRGB conversion

	Logger *slog.Logger // nil discards
}

// DecodeOptions controls recovering a payload. Every field must match the
// EncodeOptions the image was produced with; a mismatch yields garbage,
// not an error.
type DecodeOptions struct {
	Compress    bool
	Codec       payload.Codec
	Decrypt     bool
	Passphrase  string
	KDF         payload.KDF
	Orientation steg.Orientation

	Logger *slog.Logger // nil discards
}

// Validate rejects option values outside their enumerations.
func (o EncodeOptions) Validate() error {
	if !o.Orientation.Valid() {
		return fmt.Errorf("invalid orientation %d", int(o.Orientation))
	}
	if o.Intent < color.IntentPerceptual || o.Intent > color.IntentAbsoluteColorimetric {
		return fmt.Errorf("invalid rendering intent %d", o.Intent)
	}
	return o.payloadOptions().Validate()
}

// Validate rejects option values outside their enumerations.
func (o DecodeOptions) Validate() error {
	if !o.Orientation.Valid() {
		return fmt.Errorf("invalid orientation %d", int(o.Orientation))
	}
	return o.payloadOptions().Validate()
}

func (o EncodeOptions) payloadOptions() payload.Options {
	return payload.Options{
		Compress:   o.Compress,
		Codec:      o.Codec,
		Encrypt:    o.Encrypt,
		Passphrase: o.Passphrase,
		KDF:        o.KDF,
		Logger:     o.Logger,
	}
}

func (o DecodeOptions) payloadOptions() payload.Options {
	return payload.Options{
		Compress:   o.Compress,
		Codec:      o.Codec,
		Encrypt:    o.Decrypt,
		Passphrase: o.Passphrase,
		KDF:        o.KDF,
		Logger:     o.Logger,
	}
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// Encode hides raw in img: transform (encrypt, compress) → capacity
// check → normalize → embed. img is modified in place and returned. On a
// *steg.CapacityError img has not been touched.
func Encode(raw []byte, img *ir.RGBImage, opts EncodeOptions) (*ir.RGBImage, error) {
	if _, err := encode(raw, img, opts); err != nil {
		return nil, err
	}
	return img, nil
}

// encode returns the number of payload bits embedded.
func encode(raw []byte, img *ir.RGBImage, opts EncodeOptions) (int, error) {
	logger := loggerOrDiscard(opts.Logger)
	if err := opts.Validate(); err != nil {
		return 0, err
	}

	wrapped, err := payload.Wrap(raw, opts.payloadOptions())
	if err != nil {
		return 0, err
	}
	logger.Debug("payload transformed",
		"raw_bytes", len(raw),
		"embedded_bytes", len(wrapped),
		"compress", opts.Compress,
		"encrypt", opts.Encrypt,
	)

	bits := steg.ToBits(wrapped)
	if err := steg.CheckCapacity(img, bits); err != nil {
		return 0, err
	}

	steg.Normalize(img)
	written := steg.Embed(img, bits, opts.Orientation, opts.Visualize)
	logger.Debug("payload embedded",
		"bits", written,
		"capacity_bits", img.Capacity(),
		"orientation", opts.Orientation.String(),
		"visualize", opts.Visualize,
	)
	return written, nil
}

// Decode recovers a payload from img: extract → reframe → decompress →
// decrypt. img is only read.
func Decode(img *ir.RGBImage, opts DecodeOptions) ([]byte, error) {
	logger := loggerOrDiscard(opts.Logger)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	bits := steg.Extract(img, opts.Orientation)
	extracted := steg.FromBits(bits)
	logger.Debug("bits extracted",
		"bits", bits.Len(),
		"bytes", len(extracted),
		"orientation", opts.Orientation.String(),
	)

	out, err := payload.Unwrap(extracted, opts.payloadOptions())
	if err != nil {
		return nil, err
	}
	logger.Debug("payload recovered", "bytes", len(out))
	return out, nil
}

// Result holds the output of EncodeImage.
type Result struct {
	Data         []byte // encoded PNG
	Width        int
	Height       int
	Format       imageio.Format // input format
	PayloadBits  int
	CapacityBits int
}

// EncodeImage runs the full encode path over encoded image bytes:
// decode JPEG/PNG → optional sRGB conversion → Encode → PNG.
func EncodeImage(imageData, raw []byte, opts EncodeOptions) (*Result, error) {
	logger := loggerOrDiscard(opts.Logger)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// 1. Decode input image
	decoded, err := imageio.Decode(imageData)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	img := decoded.Image
	logger.Debug("image loaded",
		"format", string(decoded.Format),
		"width", img.Width,
		"height", img.Height,
		"icc_bytes", len(decoded.ICC),
	)

	// 2. Bring tagged input into sRGB, since the PNG output is untagged
	if opts.ConvertToSRGB {
		if err := convertToSRGB(img, decoded.ICC, opts, logger); err != nil {
			return nil, fmt.Errorf("color transform: %w", err)
		}
	}

	// 3. Hide the payload
	payloadBits, err := encode(raw, img, opts)
	if err != nil {
		return nil, err
	}

	// 4. Export PNG
	encoded, err := imageio.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return &Result{
		Data:         encoded,
		Width:        img.Width,
		Height:       img.Height,
		Format:       decoded.Format,
		PayloadBits:  payloadBits,
		CapacityBits: img.Capacity(),
	}, nil
}

func convertToSRGB(img *ir.RGBImage, embedded []byte, opts EncodeOptions, logger *slog.Logger) error {
	srcICC := opts.SrcProfileOverride
	if srcICC == nil {
		srcICC = embedded
	}
	if srcICC == nil {
		logger.Debug("no ICC profile, assuming sRGB")
		return nil
	}
	if !color.IsRGBProfile(srcICC) {
		logger.Warn("ignoring non-RGB ICC profile")
		return nil
	}

	xform, err := color.NewSRGBTransform(srcICC, opts.Intent)
	if err != nil {
		return err
	}
	defer xform.Close()
	return xform.Apply(img)
}

// DecodeImage runs the full decode path over encoded image bytes. Both
// JPEG and PNG are accepted, although only a losslessly stored image
// still carries the payload.
func DecodeImage(imageData []byte, opts DecodeOptions) ([]byte, error) {
	decoded, err := imageio.Decode(imageData)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Decode(decoded.Image, opts)
}
