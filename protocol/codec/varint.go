// Package codec implements the byte-level primitives of the Minecraft
// 1.12.2 (protocol 340) wire format: VarInt/VarLong, length-prefixed
// strings, UUIDs, bit-packed block positions and the palette bit
// extraction used by chunk section decoding.
package codec

import (
	"errors"
	"io"
)

// ErrVarIntTooLong is returned when a VarInt or VarLong does not terminate
// within its maximum byte width.
var ErrVarIntTooLong = errors.New("codec: varint too long")

// MaxVarIntLen and MaxVarLongLen are the maximum number of bytes a VarInt or
// VarLong can occupy on the wire.
const (
	MaxVarIntLen  = 5
	MaxVarLongLen = 10
)

// WriteVarInt encodes v into buf using the 7-bit-group/continuation-bit
// scheme and returns the number of bytes written. buf must have at least
// MaxVarIntLen bytes of capacity.
func WriteVarInt(buf []byte, v int32) int {
	uv := uint32(v)
	n := 0
	for {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if uv == 0 {
			return n
		}
	}
}

// VarIntLen returns the number of bytes WriteVarInt would emit for v.
func VarIntLen(v int32) int {
	uv := uint32(v)
	n := 1
	for uv >= 0x80 {
		uv >>= 7
		n++
	}
	return n
}

// AppendVarInt appends the VarInt encoding of v to buf and returns the result.
func AppendVarInt(buf []byte, v int32) []byte {
	var tmp [MaxVarIntLen]byte
	n := WriteVarInt(tmp[:], v)
	return append(buf, tmp[:n]...)
}

// ReadVarInt reads a VarInt from r, returning the decoded value and the
// number of bytes consumed. It fails with ErrVarIntTooLong if more than
// MaxVarIntLen bytes arrive without a terminating byte.
func ReadVarInt(r io.ByteReader) (int32, int, error) {
	var result uint32
	var n int
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, n, err
		}
		result |= uint32(b&0x7F) << (7 * n)
		n++
		if b&0x80 == 0 {
			return int32(result), n, nil
		}
		if n >= MaxVarIntLen {
			return 0, n, ErrVarIntTooLong
		}
	}
}

// WriteVarLong encodes v into buf and returns the number of bytes written.
// buf must have at least MaxVarLongLen bytes of capacity.
func WriteVarLong(buf []byte, v int64) int {
	uv := uint64(v)
	n := 0
	for {
		b := byte(uv & 0x7F)
		uv >>= 7
		if uv != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if uv == 0 {
			return n
		}
	}
}

// ReadVarLong reads a VarLong from r, mirroring ReadVarInt.
func ReadVarLong(r io.ByteReader) (int64, int, error) {
	var result uint64
	var n int
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, n, err
		}
		result |= uint64(b&0x7F) << (7 * n)
		n++
		if b&0x80 == 0 {
			return int64(result), n, nil
		}
		if n >= MaxVarLongLen {
			return 0, n, ErrVarIntTooLong
		}
	}
}
