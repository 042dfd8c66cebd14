package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
)

// MaxStringLen is the maximum UTF-8 byte length a Minecraft 1.12.2 string
// field may declare (32767 UTF-16 code units, worst case 4 bytes each).
const MaxStringLen = 32767 * 4

// ErrStringTooLong is returned when a decoded string length exceeds MaxStringLen.
var ErrStringTooLong = errors.New("codec: string too long")

// WriteString appends a VarInt-length-prefixed UTF-8 string to buf.
func WriteString(buf []byte, s string) []byte {
	buf = AppendVarInt(buf, int32(len(s)))
	return append(buf, s...)
}

// ReadString reads a length-prefixed string from r.
func ReadString(r *bufio.Reader) (string, error) {
	n, _, err := ReadVarInt(r)
	if err != nil {
		return "", fmt.Errorf("codec: read string length: %w", err)
	}
	if n < 0 || int(n) > MaxStringLen {
		return "", ErrStringTooLong
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("codec: read string body: %w", err)
	}
	return string(buf), nil
}

// WriteUUID appends the 16 raw bytes of id to buf.
func WriteUUID(buf []byte, id uuid.UUID) []byte {
	return append(buf, id[:]...)
}

// ReadUUID reads 16 raw bytes from r and parses them as a uuid.UUID.
func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var id uuid.UUID
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return uuid.Nil, fmt.Errorf("codec: read uuid: %w", err)
	}
	return id, nil
}

// EncodeBlockPosition packs (x, y, z) into the wire's 64-bit position
// layout: x:26 | y:12 | z:26.
func EncodeBlockPosition(x int32, y int16, z int32) int64 {
	return (int64(x)&0x3FFFFFF)<<38 | (int64(y)&0xFFF)<<26 | (int64(z) & 0x3FFFFFF)
}

// DecodeBlockPosition unpacks a wire position into (x, y, z), sign-extending
// each field from its packed width.
func DecodeBlockPosition(v int64) (x int32, y int16, z int32) {
	x = int32(v >> 38)
	y = int16((v >> 26) & 0xFFF)
	z = int32(v & 0x3FFFFFF)
	if x >= 1<<25 {
		x -= 1 << 26
	}
	if y >= 1<<11 {
		y -= 1 << 12
	}
	if z >= 1<<25 {
		z -= 1 << 26
	}
	return
}

// PutInt32BE and PutInt64BE are thin wrappers kept local so callers don't
// need to import encoding/binary throughout the packet layer.
func PutInt32BE(buf []byte, v int32) { binary.BigEndian.PutUint32(buf, uint32(v)) }
func PutInt64BE(buf []byte, v int64) { binary.BigEndian.PutUint64(buf, uint64(v)) }

func ReadInt16BE(r io.Reader) (int16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b[:])), nil
}

func ReadInt32BE(r io.Reader) (int32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

func ReadInt64BE(r io.Reader) (int64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b[:])), nil
}

func ReadFloat32BE(r io.Reader) (float32, error) {
	v, err := ReadInt32BE(r)
	return math.Float32frombits(uint32(v)), err
}

func ReadFloat64BE(r io.Reader) (float64, error) {
	v, err := ReadInt64BE(r)
	return math.Float64frombits(uint64(v)), err
}
