package frame

import "errors"

// Sentinel errors surfaced by Conn.ReadFrame / Conn.WriteFrame, split
// between recoverable and fatal conditions.
var (
	ErrConnectionClosed = errors.New("frame: connection closed")
	ErrFrameTooLarge    = errors.New("frame: frame exceeds maximum size")
	ErrDecompress       = errors.New("frame: decompression failed")
	ErrDecrypt          = errors.New("frame: decryption failed")
	ErrMalformedVarInt  = errors.New("frame: malformed varint")
	ErrAlreadyEnabled   = errors.New("frame: compression or encryption already enabled")
)
