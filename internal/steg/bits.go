// Package steg hides a bit sequence in the least-significant bits of an
// RGB pixel grid and reads it back.
//
// One bit is carried per channel, visited R, G, B for each pixel in the
// order produced by Plan. There is no length field, checksum or
// authentication tag in the embedded stream: Extract always returns every
// channel's low bit and it is up to the payload layer to find where the
// payload ends.
package steg

import (
	"bytes"
	"strings"
)

// Bits is an ordered sequence of binary digits. It is stored packed,
// most significant bit of each byte first, so a sequence framed from a
// payload shares the payload's byte layout.
type Bits struct {
	data []byte
	n    int
}

// NewBits returns an empty sequence with room for capacity bits.
func NewBits(capacity int) Bits {
	return Bits{data: make([]byte, 0, (capacity+7)/8)}
}

// ToBits frames payload as 8 bits per byte, MSB first, in payload order.
func ToBits(payload []byte) Bits {
	return Bits{data: bytes.Clone(payload), n: len(payload) * 8}
}

// FromBits regroups bits into bytes. A trailing group shorter than 8
// bits is discarded.
func FromBits(b Bits) []byte {
	out := bytes.Clone(b.data[:b.n/8])
	if out == nil {
		out = []byte{}
	}
	return out
}

// Len returns the number of bits in the sequence.
func (b Bits) Len() int { return b.n }

// At returns bit i (0 or 1).
func (b Bits) At(i int) uint8 {
	return (b.data[i>>3] >> (7 - uint(i&7))) & 1
}

// Append adds one bit (the low bit of bit) to the end of the sequence.
func (b *Bits) Append(bit uint8) {
	if b.n&7 == 0 {
		b.data = append(b.data, 0)
	}
	if bit&1 == 1 {
		b.data[b.n>>3] |= 1 << (7 - uint(b.n&7))
	}
	b.n++
}

// String renders the sequence as '0' and '1' characters.
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + b.At(i))
	}
	return sb.String()
}
