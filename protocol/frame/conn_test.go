package frame

import (
	"bytes"
	"crypto/aes"
	"io"
	"net"
	"testing"
)

// pipeConn is an in-memory io.ReadWriteCloser backed by two buffers, enough
// to drive ReadFrame/writeFrameNow without a real socket.
type pipeConn struct {
	r *bytes.Buffer
	w *bytes.Buffer
}

func (p *pipeConn) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *pipeConn) Write(b []byte) (int, error) { return p.w.Write(b) }
func (p *pipeConn) Close() error                { return nil }

func newLoopback() (*Conn, *Conn) {
	ab := &bytes.Buffer{}
	ba := &bytes.Buffer{}
	a := NewConn(&pipeConn{r: ba, w: ab})
	b := NewConn(&pipeConn{r: ab, w: ba})
	return a, b
}

func TestFrameRoundTripPlain(t *testing.T) {
	a, b := newLoopback()
	if err := a.writeFrameNow(0x05, []byte("hello world")); err != nil {
		t.Fatalf("write: %v", err)
	}
	id, body, err := b.ReadFrame()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if id != 0x05 || string(body) != "hello world" {
		t.Fatalf("got (%d, %q)", id, body)
	}
}

func TestFrameRoundTripCompressed(t *testing.T) {
	a, b := newLoopback()
	a.EnableCompression(8)
	b.EnableCompression(8)

	big := bytes.Repeat([]byte("x"), 256)
	if err := a.writeFrameNow(0x20, big); err != nil {
		t.Fatalf("write big: %v", err)
	}
	id, body, err := b.ReadFrame()
	if err != nil {
		t.Fatalf("read big: %v", err)
	}
	if id != 0x20 || !bytes.Equal(body, big) {
		t.Fatalf("compressed round trip mismatch, len=%d", len(body))
	}

	small := []byte("hi")
	if err := a.writeFrameNow(0x01, small); err != nil {
		t.Fatalf("write small: %v", err)
	}
	id, body, err = b.ReadFrame()
	if err != nil {
		t.Fatalf("read small: %v", err)
	}
	if id != 0x01 || !bytes.Equal(body, small) {
		t.Fatalf("stored (below-threshold) round trip mismatch: %q", body)
	}
}

func TestFrameRoundTripEncrypted(t *testing.T) {
	a, b := newLoopback()
	secret := bytes.Repeat([]byte{0x2A}, 16)
	if err := a.EnableEncryption(secret); err != nil {
		t.Fatalf("enable a: %v", err)
	}
	if err := b.EnableEncryption(secret); err != nil {
		t.Fatalf("enable b: %v", err)
	}

	payload := []byte("encrypted payload data")
	if err := a.writeFrameNow(0x10, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	id, body, err := b.ReadFrame()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if id != 0x10 || !bytes.Equal(body, payload) {
		t.Fatalf("encrypted round trip mismatch: %q", body)
	}
}

func TestCFB8RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 16)
	blockEnc, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	blockDec, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	enc := newCFB8(blockEnc, key, true)
	dec := newCFB8(blockDec, key, false)

	plain := []byte("the quick brown fox jumps over the lazy dog 0123456789")
	cipherText := make([]byte, len(plain))
	enc.XORKeyStream(cipherText, plain)

	recovered := make([]byte, len(plain))
	dec.XORKeyStream(recovered, cipherText)

	if !bytes.Equal(recovered, plain) {
		t.Fatalf("cfb8 round trip mismatch: got %q, want %q", recovered, plain)
	}
}

func TestEnableTwiceIsProgrammingError(t *testing.T) {
	a, _ := newLoopback()
	a.EnableCompression(64)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on second EnableCompression call")
		}
	}()
	a.EnableCompression(64)
}

// TestWriteFrameUnboundedQueue enqueues more frames than the old fixed
// channel capacity before the writer goroutine ever runs, confirming
// WriteFrame never blocks the caller.
func TestWriteFrameUnboundedQueue(t *testing.T) {
	// A synchronous pipe, so each read waits for the writer goroutine
	// instead of seeing an empty buffer as end of stream.
	ca, cb := net.Pipe()
	a, b := NewConn(ca), NewConn(cb)

	const n = 1000
	for i := 0; i < n; i++ {
		a.WriteFrame(int32(i%128), []byte("payload"))
	}

	done := make(chan error, 1)
	go func() { done <- a.RunWriter() }()

	for i := 0; i < n; i++ {
		id, _, err := b.ReadFrame()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if id != int32(i%128) {
			t.Fatalf("frame %d: id = %d, want %d", i, id, i%128)
		}
	}

	a.Close()
	if err := <-done; err != nil {
		t.Fatalf("RunWriter: %v", err)
	}
}

var _ io.ReadWriteCloser = (*pipeConn)(nil)
