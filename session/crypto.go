package session

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// DecodePublicKey parses the DER-encoded RSA public key sent in an
// EncryptionRequest packet.
func DecodePublicKey(der []byte) (*rsa.PublicKey, error) {
	pub, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("session: parse server public key: %w", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("session: server public key is not RSA")
	}
	return rsaPub, nil
}

// NewSharedSecret generates the 16-byte AES-128 key/IV used for the
// remainder of the connection once encryption is enabled.
func NewSharedSecret() ([]byte, error) {
	secret := make([]byte, 16)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("session: generate shared secret: %w", err)
	}
	return secret, nil
}

// EncryptPKCS1v15 encrypts data (the shared secret or verify token) under
// the server's public key, as required by EncryptionResponse.
func EncryptPKCS1v15(pub *rsa.PublicKey, data []byte) ([]byte, error) {
	out, err := rsa.EncryptPKCS1v15(rand.Reader, pub, data)
	if err != nil {
		return nil, fmt.Errorf("session: rsa encrypt: %w", err)
	}
	return out, nil
}
