// Package session drives the Login-state handshake: Handshaking ->
// AwaitingServerHello -> Authenticating -> Play. It is grounded on
// go-theft-craft-server's internal/server/conn/crypto.go, inverted from
// the server's verification role to the client's authentication role.
package session

import (
	"crypto/sha1"
	"math/big"
)

// ServerIDHash computes the Minecraft "server hash" used by the session
// server's join call: the signed hex digest of
// SHA-1(serverID || sharedSecret || publicKeyDER). A negative digest is
// rendered as a leading '-' on the absolute value's hex text, matching
// the Notchian client bit-for-bit.
func ServerIDHash(serverID string, sharedSecret, publicKeyDER []byte) string {
	h := sha1.New()
	h.Write([]byte(serverID))
	h.Write(sharedSecret)
	h.Write(publicKeyDER)
	sum := h.Sum(nil)

	n := new(big.Int).SetBytes(sum)
	if sum[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), 160))
	}
	return n.Text(16)
}
