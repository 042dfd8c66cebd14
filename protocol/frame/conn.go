// Package frame implements the per-connection stream framer: length prefix
// -> optional zlib decompress -> packet id + body, and the inverse on
// write, plus the one-way compression/encryption toggles and the stateful
// AES/CFB8 ciphers that back them.
package frame

import (
	"bufio"
	"crypto/aes"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zlib"

	"github.com/SwarmBotMC/adamant/protocol/codec"
)

// maxFrameLen bounds a single frame to 2 MiB, matching the informal limit
// vanilla clients enforce to avoid unbounded allocation from a hostile or
// corrupted stream.
const maxFrameLen = 2 * 1024 * 1024

// Conn wraps a raw connection with Minecraft's frame format. It is safe for
// one concurrent reader and one concurrent writer (the reader and writer I/O
// tasks); Conn itself performs no additional synchronization
// beyond guarding the one-way enable toggles and the outbound queue.
type Conn struct {
	rw  io.ReadWriteCloser
	in  *bufio.Reader
	out io.Writer

	compressionThreshold int32 // -1 disabled
	compressionSet       atomic.Bool
	encryptionSet        atomic.Bool

	decIn  *cfb8
	encOut *cfb8

	writeMu sync.Mutex

	outboxMu   sync.Mutex
	outboxCond *sync.Cond
	outbox     []outboundFrame
	closed     chan struct{}
	closeMu    sync.Once
}

type outboundFrame struct {
	packetID int32
	body     []byte
}

// NewConn wraps rw. The returned Conn has no compression or encryption until
// EnableCompression / EnableEncryption are called.
func NewConn(rw io.ReadWriteCloser) *Conn {
	c := &Conn{
		rw:                   rw,
		in:                   bufio.NewReaderSize(rw, 4096),
		out:                  rw,
		compressionThreshold: -1,
		closed:               make(chan struct{}),
	}
	c.outboxCond = sync.NewCond(&c.outboxMu)
	return c
}

// EnableCompression turns on zlib compression for frames whose uncompressed
// size is at least threshold. It is a one-way toggle; calling it twice is a
// programming error and panics.
func (c *Conn) EnableCompression(threshold int32) {
	if !c.compressionSet.CompareAndSwap(false, true) {
		panic(ErrAlreadyEnabled)
	}
	c.compressionThreshold = threshold
}

// EnableEncryption wraps both directions of the connection in AES-128/CFB8
// using sharedSecret as both key and IV. One-way toggle; calling it twice
// panics.
func (c *Conn) EnableEncryption(sharedSecret []byte) error {
	if !c.encryptionSet.CompareAndSwap(false, true) {
		panic(ErrAlreadyEnabled)
	}
	block, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return fmt.Errorf("frame: new aes cipher: %w", err)
	}
	c.decIn = newCFB8(block, sharedSecret, false)
	encBlock, err := aes.NewCipher(sharedSecret)
	if err != nil {
		return fmt.Errorf("frame: new aes cipher: %w", err)
	}
	c.encOut = newCFB8(encBlock, sharedSecret, true)
	c.in = bufio.NewReaderSize(&decryptReader{r: c.rw, c: c.decIn}, 4096)
	c.out = &encryptWriter{w: c.rw, c: c.encOut}
	return nil
}

// decryptReader transforms ciphertext into plaintext as it is read.
type decryptReader struct {
	r io.Reader
	c *cfb8
}

func (d *decryptReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if n > 0 {
		d.c.XORKeyStream(p[:n], p[:n])
	}
	return n, err
}

// encryptWriter transforms plaintext into ciphertext as it is written.
type encryptWriter struct {
	w io.Writer
	c *cfb8
}

func (e *encryptWriter) Write(p []byte) (int, error) {
	buf := make([]byte, len(p))
	e.c.XORKeyStream(buf, p)
	n, err := e.w.Write(buf)
	if n == len(buf) {
		return len(p), err
	}
	return n, err
}

// ReadFrame reads and decodes a single frame, returning the packet id and
// the packet body (the decompressed, decrypted bytes following the id).
func (c *Conn) ReadFrame() (packetID int32, body []byte, err error) {
	length, _, err := codec.ReadVarInt(c.in)
	if err != nil {
		if err == codec.ErrVarIntTooLong {
			return 0, nil, ErrMalformedVarInt
		}
		if err == io.EOF {
			return 0, nil, ErrConnectionClosed
		}
		return 0, nil, fmt.Errorf("frame: read length: %w", err)
	}
	if length <= 0 {
		return 0, nil, fmt.Errorf("frame: non-positive frame length %d", length)
	}
	if length > maxFrameLen {
		return 0, nil, ErrFrameTooLarge
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(c.in, raw); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, nil, ErrConnectionClosed
		}
		return 0, nil, fmt.Errorf("frame: read body: %w", err)
	}

	if c.compressionSet.Load() {
		raw, err = c.decompress(raw)
		if err != nil {
			return 0, nil, err
		}
	}

	br := newByteSliceReader(raw)
	id, n, err := codec.ReadVarInt(br)
	if err != nil {
		return 0, nil, ErrMalformedVarInt
	}
	return id, raw[n:], nil
}

// decompress strips the VarInt(uncompressed_len) prefix and inflates the
// remainder if uncompressed_len != 0 (0 means "stored").
func (c *Conn) decompress(raw []byte) ([]byte, error) {
	br := newByteSliceReader(raw)
	uncompressedLen, n, err := codec.ReadVarInt(br)
	if err != nil {
		return nil, ErrMalformedVarInt
	}
	rest := raw[n:]
	if uncompressedLen == 0 {
		return rest, nil
	}
	zr, err := zlib.NewReader(byteSliceReaderCloser(rest))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	defer zr.Close()
	out := make([]byte, uncompressedLen)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
	}
	return out, nil
}

// WriteFrame enqueues a frame for the dedicated writer to send. The queue is
// an unbounded, mutex-guarded slice rather than a fixed-capacity channel, so
// a congested peer whose writer goroutine falls behind never blocks the
// caller (the main game loop, flushing every agent's queued packets once per
// tick) — it only grows memory, which is the documented tradeoff for a
// non-blocking write_frame.
func (c *Conn) WriteFrame(packetID int32, body []byte) {
	c.outboxMu.Lock()
	select {
	case <-c.closed:
		c.outboxMu.Unlock()
		return
	default:
	}
	c.outbox = append(c.outbox, outboundFrame{packetID: packetID, body: body})
	c.outboxMu.Unlock()
	c.outboxCond.Signal()
}

// RunWriter drains the outbound queue and writes frames to the connection
// until Close unblocks it.
func (c *Conn) RunWriter() error {
	for {
		c.outboxMu.Lock()
		for len(c.outbox) == 0 {
			select {
			case <-c.closed:
				c.outboxMu.Unlock()
				return nil
			default:
			}
			c.outboxCond.Wait()
		}
		f := c.outbox[0]
		c.outbox[0] = outboundFrame{}
		c.outbox = c.outbox[1:]
		c.outboxMu.Unlock()

		if err := c.writeFrameNow(f.packetID, f.body); err != nil {
			return err
		}
	}
}

func (c *Conn) writeFrameNow(packetID int32, body []byte) error {
	var idBuf [codec.MaxVarIntLen]byte
	idLen := codec.WriteVarInt(idBuf[:], packetID)

	var payload []byte
	if c.compressionSet.Load() && len(body)+idLen >= int(c.compressionThreshold) && c.compressionThreshold >= 0 {
		payload = c.compressPacket(idBuf[:idLen], body)
	} else if c.compressionSet.Load() {
		// Below threshold: stored, uncompressedLen=0 prefix.
		payload = codec.AppendVarInt(nil, 0)
		payload = append(payload, idBuf[:idLen]...)
		payload = append(payload, body...)
	} else {
		payload = append(append([]byte{}, idBuf[:idLen]...), body...)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var lenBuf [codec.MaxVarIntLen]byte
	n := codec.WriteVarInt(lenBuf[:], int32(len(payload)))
	if _, err := c.out.Write(lenBuf[:n]); err != nil {
		return fmt.Errorf("frame: write length: %w", err)
	}
	if _, err := c.out.Write(payload); err != nil {
		return fmt.Errorf("frame: write body: %w", err)
	}
	return nil
}

func (c *Conn) compressPacket(id, body []byte) []byte {
	uncompressedLen := len(id) + len(body)
	var buf []byte
	var zbuf sizeWriter
	zw := zlib.NewWriter(&zbuf)
	_, _ = zw.Write(id)
	_, _ = zw.Write(body)
	_ = zw.Close()

	buf = codec.AppendVarInt(buf, int32(uncompressedLen))
	buf = append(buf, zbuf.buf...)
	return buf
}

type sizeWriter struct{ buf []byte }

func (s *sizeWriter) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// Close closes the underlying connection and unblocks RunWriter/WriteFrame.
func (c *Conn) Close() error {
	c.closeMu.Do(func() {
		close(c.closed)
		c.outboxCond.Broadcast()
	})
	return c.rw.Close()
}
