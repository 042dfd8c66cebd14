package session

import (
	"context"
	"crypto/aes"
	"fmt"
	"log/slog"

	"github.com/SwarmBotMC/adamant/protocol/frame"
	"github.com/SwarmBotMC/adamant/protocol/packet"
)

// State names the handshake's position in the Login state machine.
type State int

const (
	Handshaking State = iota
	AwaitingServerHello
	Authenticating
	Play
	Terminal
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "handshaking"
	case AwaitingServerHello:
		return "awaiting-server-hello"
	case Authenticating:
		return "authenticating"
	case Play:
		return "play"
	default:
		return "terminal"
	}
}

// Credentials carries what a single agent needs to authenticate with the
// session server. Offline agents leave AccessToken/ProfileUUID empty.
type Credentials struct {
	Username    string
	AccessToken string
	ProfileUUID string
	Offline     bool
}

// Session is the outcome of a successful handshake: a Conn with
// compression/encryption already installed, ready for the Play state.
type Session struct {
	Conn     *frame.Conn
	Username string
	UUID     string
	EntityID int32
}

// ErrLoginDisconnected and ErrOfflineEncryptionRequest are terminal login
// errors ("Recoverable per-agent, agent terminated").
type ErrLoginDisconnected struct{ Reason string }

func (e *ErrLoginDisconnected) Error() string { return "session: login disconnected: " + e.Reason }

var ErrOfflineEncryptionRequest = fmt.Errorf("session: received EncryptionRequest while offline")

// Handshake drives one connection from Handshaking through Play.
// protocolVersion is always 340 in normal operation but is accepted as a
// parameter so --version can override it.
func Handshake(ctx context.Context, conn *frame.Conn, host string, port uint16, protocolVersion int32, creds Credentials, log *slog.Logger) (*Session, error) {
	state := Handshaking
	log = log.With("username", creds.Username)

	hs := &packet.Handshake{ProtocolVersion: protocolVersion, ServerAddress: host, ServerPort: port, NextState: 2}
	if err := sendPacket(conn, hs); err != nil {
		return nil, fmt.Errorf("session: send handshake: %w", err)
	}
	if err := sendPacket(conn, &packet.LoginStart{Username: creds.Username}); err != nil {
		return nil, fmt.Errorf("session: send login start: %w", err)
	}
	state = AwaitingServerHello

	for {
		id, body, err := conn.ReadFrame()
		if err != nil {
			return nil, fmt.Errorf("session: read frame in state %s: %w", state, err)
		}

		switch state {
		case AwaitingServerHello, Authenticating:
			switch id {
			case packet.IDSetCompression:
				var p packet.SetCompression
				if err := packet.Unmarshal(body, &p); err != nil {
					return nil, fmt.Errorf("session: decode set compression: %w", err)
				}
				conn.EnableCompression(p.Threshold)
				log.Debug("compression enabled", "threshold", p.Threshold)

			case packet.IDEncryptionRequest:
				if creds.Offline {
					return nil, ErrOfflineEncryptionRequest
				}
				var p packet.EncryptionRequest
				if err := packet.Unmarshal(body, &p); err != nil {
					return nil, fmt.Errorf("session: decode encryption request: %w", err)
				}
				sess, err := authenticate(ctx, conn, p, creds, log)
				if err != nil {
					return nil, err
				}
				if sess != nil {
					return sess, nil
				}
				state = Authenticating

			case packet.IDLoginSuccess:
				var p packet.LoginSuccess
				if err := packet.Unmarshal(body, &p); err != nil {
					return nil, fmt.Errorf("session: decode login success: %w", err)
				}
				log.Info("login succeeded", "uuid", p.UUID)
				return &Session{Conn: conn, Username: p.Username, UUID: p.UUID}, nil

			case packet.IDLoginDisconnect:
				var p packet.LoginDisconnect
				if err := packet.Unmarshal(body, &p); err != nil {
					return nil, fmt.Errorf("session: decode login disconnect: %w", err)
				}
				return nil, &ErrLoginDisconnected{Reason: p.Reason}

			default:
				log.Warn("unexpected packet id during login", "state", state.String(), "id", id)
			}
		default:
			return nil, fmt.Errorf("session: unexpected state %s", state)
		}
	}
}

// authenticate performs the Authenticating branch of the table: compute
// the server hash, join the session server, answer with the encrypted
// shared secret, and enable encryption. It returns a non-nil *Session only
// if LoginSuccess arrives from inside this call, which does not happen in
// the documented flow but is tolerated defensively.
func authenticate(ctx context.Context, conn *frame.Conn, req packet.EncryptionRequest, creds Credentials, log *slog.Logger) (*Session, error) {
	pub, err := DecodePublicKey(req.PublicKey)
	if err != nil {
		return nil, err
	}
	secret, err := NewSharedSecret()
	if err != nil {
		return nil, err
	}

	hash := ServerIDHash(req.ServerID, secret, req.PublicKey)
	if err := Join(ctx, creds.AccessToken, creds.ProfileUUID, hash); err != nil {
		return nil, fmt.Errorf("session: session-auth join: %w", err)
	}
	log.Debug("session-auth join ok", "hash_prefix", safePrefix(hash))

	encSecret, err := EncryptPKCS1v15(pub, secret)
	if err != nil {
		return nil, err
	}
	encToken, err := EncryptPKCS1v15(pub, req.VerifyToken)
	if err != nil {
		return nil, err
	}
	if err := sendPacket(conn, &packet.EncryptionResponse{SharedSecret: encSecret, VerifyToken: encToken}); err != nil {
		return nil, fmt.Errorf("session: send encryption response: %w", err)
	}

	if _, err := aes.NewCipher(secret); err != nil {
		return nil, fmt.Errorf("session: aes setup: %w", err)
	}
	if err := conn.EnableEncryption(secret); err != nil {
		return nil, fmt.Errorf("session: enable encryption: %w", err)
	}
	return nil, nil
}

func safePrefix(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func sendPacket(conn *frame.Conn, p packet.Packet) error {
	body, err := packet.Marshal(p)
	if err != nil {
		return err
	}
	conn.WriteFrame(p.ID(), body)
	return nil
}
