package frame

import "crypto/cipher"

// cfb8 implements AES-128 in CFB8 (8-bit feedback) mode, the stream cipher
// Minecraft's login handshake installs once a shared secret has been
// negotiated. The stdlib's cipher package has no CFB8
// implementation (its cipher.NewCFB is CFB128), so this is hand-rolled per
// block, grounded on go-theft-craft-server/internal/server/conn/cfb8.go.
//
// Each direction of a connection owns its own cfb8 instance; it is never
// shared across goroutines.
type cfb8 struct {
	block     cipher.Block
	iv        [16]byte
	encrypt   bool
	keyStream [16]byte
}

func newCFB8(block cipher.Block, iv []byte, encrypt bool) *cfb8 {
	c := &cfb8{block: block, encrypt: encrypt}
	copy(c.iv[:], iv)
	return c
}

// XORKeyStream transforms src into dst in place (dst and src may alias).
func (c *cfb8) XORKeyStream(dst, src []byte) {
	for i, in := range src {
		c.block.Encrypt(c.keyStream[:], c.iv[:])
		out := in ^ c.keyStream[0]
		if c.encrypt {
			dst[i] = out
			c.shift(out)
		} else {
			c.shift(in)
			dst[i] = out
		}
	}
}

// shift slides b into the low byte of the feedback register.
func (c *cfb8) shift(b byte) {
	copy(c.iv[:], c.iv[1:])
	c.iv[15] = b
}
