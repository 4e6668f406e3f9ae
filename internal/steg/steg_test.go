package steg

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davesmith10/lsbsteg/internal/ir"
)

func noisyImage(t *testing.T, width, height int, seed uint64) *ir.RGBImage {
	t.Helper()
	img, err := ir.NewRGBImage(width, height)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range img.Pixels {
		img.Pixels[i] = uint8(rng.IntN(256))
	}
	return img
}

func TestNormalize(t *testing.T) {
	img := noisyImage(t, 16, 9, 1)
	Normalize(img)
	for i, v := range img.Pixels {
		require.Zero(t, v%2, "channel %d is odd after normalization", i)
	}

	img2, _ := ir.FromPixels([]byte{255, 1, 0, 254, 7, 128}, 2, 1)
	Normalize(img2)
	require.Equal(t, []byte{254, 0, 0, 254, 6, 128}, img2.Pixels)
}

func TestNormalizeIdempotent(t *testing.T) {
	once := noisyImage(t, 13, 11, 2)
	Normalize(once)
	twice := once.Clone()
	Normalize(twice)
	require.Equal(t, once.Pixels, twice.Pixels)
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox")
	for _, o := range []Orientation{Horizontal, Vertical} {
		img := noisyImage(t, 9, 7, 3)
		Normalize(img)

		written := Embed(img, ToBits(payload), o, false)
		require.Equal(t, len(payload)*8, written)

		bits := Extract(img, o)
		require.Equal(t, img.Capacity(), bits.Len())

		out := FromBits(bits)
		require.Equal(t, payload, out[:len(payload)])
		for _, b := range out[len(payload):] {
			require.Zero(t, b, "normalized remainder should read back as zero bytes")
		}
	}
}

func TestEmbedIsOrientationSensitive(t *testing.T) {
	payload := []byte("orientation")
	img := noisyImage(t, 8, 6, 4)
	Normalize(img)
	Embed(img, ToBits(payload), Horizontal, false)

	out := FromBits(Extract(img, Vertical))
	require.NotEqual(t, payload, out[:len(payload)])
}

func TestEmbedLeavesRemainderUntouched(t *testing.T) {
	img := noisyImage(t, 4, 4, 5)
	Normalize(img)
	before := img.Clone()

	// 10 bits: pixel 0 (3), pixel 1 (3), pixel 2 (3), pixel 3 red only.
	bits := NewBits(10)
	for i := 0; i < 10; i++ {
		bits.Append(1)
	}
	Embed(img, bits, Horizontal, false)

	for i := range img.Pixels {
		if i < 10 {
			require.Equal(t, before.Pixels[i]+1, img.Pixels[i], "channel %d", i)
		} else {
			require.Equal(t, before.Pixels[i], img.Pixels[i], "channel %d", i)
		}
	}
}

func TestEmbedDropsOverflow(t *testing.T) {
	img, _ := ir.NewRGBImage(2, 1)
	written := Embed(img, ToBits([]byte{0xff}), Horizontal, false)
	require.Equal(t, 6, written)
	require.Equal(t, []byte{1, 1, 1, 1, 1, 1}, img.Pixels)
}

func TestEmbedVisualize(t *testing.T) {
	img := noisyImage(t, 6, 6, 6)
	original := img.Clone()
	Normalize(img)

	payload := []byte{0xa5, 0x0f, 0x3c}
	bits := ToBits(payload)
	Embed(img, bits, Horizontal, true)

	for i := 0; i < bits.Len(); i++ {
		v := img.Pixels[i]
		require.True(t, v == 0 || v == 255, "channel %d = %d", i, v)
		if bits.At(i) == 1 {
			require.Equal(t, uint8(255), v)
		} else {
			require.Equal(t, uint8(0), v)
		}
	}
	require.NotEqual(t, original.Pixels[:bits.Len()], img.Pixels[:bits.Len()])
}

func TestExtractLength(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 5}, {10, 2}} {
		img := noisyImage(t, size[0], size[1], 7)
		for _, o := range []Orientation{Horizontal, Vertical} {
			require.Equal(t, size[0]*size[1]*3, Extract(img, o).Len())
		}
	}
}

func TestHiInBlackImage(t *testing.T) {
	img, err := ir.NewRGBImage(4, 4)
	require.NoError(t, err)
	require.Equal(t, 48, img.Capacity())

	bits := ToBits([]byte("Hi!"))
	require.NoError(t, CheckCapacity(img, bits))
	Normalize(img)
	Embed(img, bits, Horizontal, false)

	// 'H' = 01001000: pixel (0,0) = 0,1,0; pixel (1,0) = 0,1,0; pixel (2,0) = 0,0,...
	r, g, b := img.At(0, 0)
	require.Equal(t, [3]uint8{0, 1, 0}, [3]uint8{r, g, b})
	r, g, b = img.At(1, 0)
	require.Equal(t, [3]uint8{0, 1, 0}, [3]uint8{r, g, b})

	out := FromBits(Extract(img, Horizontal))
	require.Len(t, out, 6)
	require.Equal(t, []byte("Hi!"), out[:3])
	require.Equal(t, []byte{0, 0, 0}, out[3:])
}

func TestCheckCapacity(t *testing.T) {
	// 8 pixels = 24 bits = exactly 3 bytes.
	exact, _ := ir.NewRGBImage(8, 1)
	require.NoError(t, CheckCapacity(exact, ToBits([]byte("abc"))))

	// 21 pixels = 63 bits, one short of an 8-byte payload.
	short, _ := ir.NewRGBImage(7, 3)
	err := CheckCapacity(short, ToBits([]byte("12345678")))
	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	require.Equal(t, 64, capErr.Need)
	require.Equal(t, 63, capErr.Have)
}
