package codec

import (
	"bufio"
	"bytes"
	"math"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	vals := []int32{0, 1, -1, 127, 128, 255, 25565, math.MaxInt32, math.MinInt32, -2147483648, 2147483647}
	for _, v := range vals {
		var buf [MaxVarIntLen]byte
		n := WriteVarInt(buf[:], v)
		if got := VarIntLen(v); got != n {
			t.Errorf("VarIntLen(%d) = %d, want %d", v, got, n)
		}
		got, read, err := ReadVarInt(bufio.NewReader(bytes.NewReader(buf[:n])))
		if err != nil {
			t.Fatalf("ReadVarInt(%d): %v", v, err)
		}
		if got != v || read != n {
			t.Errorf("round trip %d: got (%d, %d), want (%d, %d)", v, got, read, v, n)
		}
	}
}

func TestVarIntEncodedLengthGroups(t *testing.T) {
	cases := []struct {
		v    int32
		want int
	}{
		{0, 1}, {127, 1}, {128, 2}, {16383, 2}, {16384, 3},
		{2097151, 3}, {2097152, 4}, {268435455, 4}, {268435456, 5}, {-1, 5},
	}
	for _, c := range cases {
		if got := VarIntLen(c.v); got != c.want {
			t.Errorf("VarIntLen(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestReadVarIntTooLong(t *testing.T) {
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	_, _, err := ReadVarInt(bufio.NewReader(bytes.NewReader(buf)))
	if err != ErrVarIntTooLong {
		t.Fatalf("got %v, want ErrVarIntTooLong", err)
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	vals := []int64{0, 1, -1, math.MaxInt64, math.MinInt64, 123456789012345}
	for _, v := range vals {
		var buf [MaxVarLongLen]byte
		n := WriteVarLong(buf[:], v)
		got, read, err := ReadVarLong(bufio.NewReader(bytes.NewReader(buf[:n])))
		if err != nil {
			t.Fatalf("ReadVarLong(%d): %v", v, err)
		}
		if got != v || read != n {
			t.Errorf("round trip %d: got (%d, %d), want (%d, %d)", v, got, read, v, n)
		}
	}
}
