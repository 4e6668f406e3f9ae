package payload

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

// Codec identifies the compression algorithm applied to the payload.
// Nothing in the embedded stream records the codec, so decode must be
// told the same one.
type Codec uint8

const (
	// CodecDeflate is raw DEFLATE (no zlib or gzip wrapper) at the
	// highest compression level.
	CodecDeflate Codec = iota

	// CodecZstd is a single zstd frame at the best-compression level.
	CodecZstd
)

// String returns the human-readable name of a codec.
func (c Codec) String() string {
	switch c {
	case CodecDeflate:
		return "deflate"
	case CodecZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCodec parses a codec from its string representation.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "deflate", "":
		return CodecDeflate, nil
	case "zstd":
		return CodecZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression codec: %q", name)
	}
}

// Compress compresses data with the given codec.
func Compress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case CodecDeflate:
		return compressDeflate(data)
	case CodecZstd:
		return zstdEncoder.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("unsupported compression codec: %d", codec)
	}
}

// Decompress reverses Compress. Input past the end of the first
// compressed stream is ignored: extraction returns the whole LSB plane
// and the payload is followed by whatever the rest of the image holds.
// On error the output decoded before the failure is returned with it.
func Decompress(data []byte, codec Codec) ([]byte, error) {
	switch codec {
	case CodecDeflate:
		return decompressDeflate(data)
	case CodecZstd:
		return decompressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported compression codec: %d", codec)
	}
}

func compressDeflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return buf.Bytes(), nil
}

// The flate reader stops at the final block and never looks at the
// bytes after it.
func decompressDeflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return out, fmt.Errorf("inflate: %w", err)
	}
	return out, nil
}

// zstdEncoder and zstdDecoder are shared; both are safe for concurrent
// use through EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
		// An empty payload still needs a frame, or decode would find
		// only the zero-filled LSB plane.
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		panic("payload: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic("payload: zstd decoder initialization failed: " + err.Error())
	}
}

// DecodeAll keeps what it decoded from earlier frames when it fails to
// start the next one. A frame followed by trailing bytes fails exactly
// that way, with a magic mismatch or a short read.
func decompressZstd(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err == nil {
		return out, nil
	}
	if bytes.HasPrefix(data, zstdMagic) &&
		(errors.Is(err, zstd.ErrMagicMismatch) || errors.Is(err, io.ErrUnexpectedEOF)) {
		if out == nil {
			out = []byte{}
		}
		return out, nil
	}
	return out, fmt.Errorf("zstd decompress: %w", err)
}
