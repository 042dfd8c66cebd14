package codec

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/google/uuid"
)

func TestStringRoundTrip(t *testing.T) {
	cases := []string{"", "hello", "a bot named §aFred", string(make([]byte, 300))}
	for _, s := range cases {
		buf := WriteString(nil, s)
		got, err := ReadString(bufio.NewReader(bytes.NewReader(buf)))
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		if got != s {
			t.Errorf("round trip mismatch: got %q len %d, want len %d", got, len(got), len(s))
		}
	}
}

func TestReadStringTooLong(t *testing.T) {
	buf := AppendVarInt(nil, MaxStringLen+1)
	_, err := ReadString(bufio.NewReader(bytes.NewReader(buf)))
	if err != ErrStringTooLong {
		t.Fatalf("got %v, want ErrStringTooLong", err)
	}
}

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	buf := WriteUUID(nil, id)
	got, err := ReadUUID(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("ReadUUID: %v", err)
	}
	if got != id {
		t.Errorf("got %v, want %v", got, id)
	}
}

func TestBlockPositionRoundTrip(t *testing.T) {
	cases := []struct {
		x, z int32
		y    int16
	}{
		{0, 0, 0},
		{1, 2, 3},
		{-1, -1, -1},
		{33554431, 33554431, 2047},
		{-33554432, -33554432, -2048},
	}
	for _, c := range cases {
		v := EncodeBlockPosition(c.x, c.y, c.z)
		x, y, z := DecodeBlockPosition(v)
		if x != c.x || y != c.y || z != c.z {
			t.Errorf("round trip (%d,%d,%d): got (%d,%d,%d)", c.x, c.y, c.z, x, y, z)
		}
	}
}

func TestExtractPaletteIndexStraddling(t *testing.T) {
	// bitsPerBlock=5 means index 12 straddles a 64-bit word boundary
	// (bits 60..64); index 13 (bits 65..69) sits wholly in the second word.
	const bits = 5
	n := 20
	words := make([]uint64, WordsForPalette(n, bits))
	for i := 0; i < n; i++ {
		WritePaletteIndex(words, i, bits, uint32(i))
	}
	for i := 0; i < n; i++ {
		got := ExtractPaletteIndex(words, i, bits)
		if got != uint32(i) {
			t.Errorf("index %d: got %d, want %d", i, got, i)
		}
	}
}
