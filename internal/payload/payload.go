// Package payload applies the optional encryption and compression
// stages around the raw bytes that get embedded in an image.
//
// Encode order is encrypt, then compress. Decode is the mirror image:
// decompress, then decrypt. Each stage only sees an opaque byte string.
package payload

import (
	"bytes"
	"fmt"
	"log/slog"
)

// Options selects the stages. The zero value passes bytes through.
type Options struct {
	Compress bool
	Codec    Codec

	// Encrypt enables the cipher stage on encode and on decode.
	Encrypt    bool
	Passphrase string
	KDF        KDF

	// Logger receives stage failures that Unwrap swallows. nil discards.
	Logger *slog.Logger
}

// Validate checks that the selected codec and KDF exist.
func (o Options) Validate() error {
	switch o.Codec {
	case CodecDeflate, CodecZstd:
	default:
		return fmt.Errorf("unsupported compression codec: %d", o.Codec)
	}
	switch o.KDF {
	case KDFSHA256, KDFBLAKE3, KDFArgon2id:
	default:
		return fmt.Errorf("unsupported key derivation: %d", o.KDF)
	}
	return nil
}

// Wrap runs the encode-side stages over raw.
func Wrap(raw []byte, opts Options) ([]byte, error) {
	data := raw
	if opts.Encrypt {
		key, err := DeriveKey(opts.Passphrase, opts.KDF)
		if err != nil {
			return nil, err
		}
		data, err = Encrypt(data, key)
		if err != nil {
			return nil, fmt.Errorf("encrypt: %w", err)
		}
	}
	if opts.Compress {
		var err error
		data, err = Compress(data, opts.Codec)
		if err != nil {
			return nil, fmt.Errorf("compress: %w", err)
		}
	}
	return data, nil
}

// Unwrap runs the decode-side stages over the bytes reframed from an
// image's LSB plane. With neither stage enabled, trailing NUL bytes are
// stripped: they are the unused, zeroed remainder of the plane. A plain
// payload that itself ends in NUL bytes loses them.
//
// Nothing in the plane says which stages were applied, so options that
// do not match the encode side are not an error. A stream the
// decompressor rejects yields what was decoded before the failure, or
// the input itself; a ciphertext too short to decrypt passes through.
// Only key derivation errors are returned.
func Unwrap(extracted []byte, opts Options) ([]byte, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	data := extracted
	if opts.Compress {
		out, err := Decompress(data, opts.Codec)
		if err != nil {
			logger.Debug("decompression failed, passing bytes through",
				"codec", opts.Codec.String(),
				"decoded_bytes", len(out),
				"error", err,
			)
			if len(out) == 0 {
				out = data
			}
		}
		data = out
	}
	if opts.Encrypt {
		key, err := DeriveKey(opts.Passphrase, opts.KDF)
		if err != nil {
			return nil, err
		}
		out, err := Decrypt(data, key)
		if err != nil {
			logger.Debug("decryption failed, passing bytes through", "error", err)
			out = data
		}
		data = out
	}
	if !opts.Compress && !opts.Encrypt {
		data = bytes.TrimRight(data, "\x00")
	}
	return data, nil
}
