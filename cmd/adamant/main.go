// Command adamant drives a swarm of protocol-340 (Minecraft 1.12.2)
// bot connections against a single server, exposing them to an operator
// over a local websocket control channel.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/proxy"

	"github.com/SwarmBotMC/adamant/control"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/protocol/frame"
	"github.com/SwarmBotMC/adamant/runtime"
	"github.com/SwarmBotMC/adamant/session"
)

// defaultProtocolVersion is protocol 340 (1.12.2), overridable via --version for
// testing against servers that accept a different declared version.
const defaultProtocolVersion = 340

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("adamant", flag.ContinueOnError)
	var (
		count      = fs.Int("count", 1, "number of bot connections to open")
		proxyFlag  = fs.Bool("proxy", false, "dial each connection through a SOCKS5 proxy from --proxies-file")
		port       = fs.Uint("port", 25565, "server port")
		wsPort     = fs.Uint("ws-port", 8080, "operator control channel port, bound to 127.0.0.1")
		delayMs    = fs.Int("delay-ms", 500, "stagger between successive agent logins, in milliseconds")
		usersFile  = fs.String("users-file", "users.csv", "colon-delimited CSV of email:password, one per line")
		proxyFile  = fs.String("proxies-file", "proxies.csv", "colon-delimited CSV of host:port:user:pass")
		version    = fs.Int("version", defaultProtocolVersion, "declared protocol version")
		offline    = fs.Bool("offline", false, "log in without Mojang authentication or session-server verification")
	)
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: adamant [flags] <host>")
		return 2
	}
	host := fs.Arg(0)

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	logins, err := loadLogins(*usersFile, *count)
	if err != nil {
		log.Error("load users", "err", err)
		return 1
	}

	var dialers []proxy.Dialer
	if *proxyFlag {
		dialers, err = loadProxyDialers(*proxyFile)
		if err != nil {
			log.Error("load proxies", "err", err)
			return 1
		}
		if len(dialers) == 0 {
			log.Error("--proxy set but proxies file has no entries")
			return 1
		}
	}

	ctx0, cancelAuth := context.WithTimeout(context.Background(), 30*time.Second)
	creds, err := resolveCredentials(ctx0, logins, *offline, log)
	cancelAuth()
	if err != nil {
		log.Error("resolve credentials", "err", err)
		return 1
	}

	glob, err := global.NewState("")
	if err != nil {
		log.Error("init global state", "err", err)
		return 1
	}
	rt := runtime.New(glob, log)

	ctrl := control.NewServer(rt, log)
	go func() {
		addr := fmt.Sprintf("127.0.0.1:%d", *wsPort)
		if err := ctrl.ListenAndServe(addr); err != nil {
			log.Error("control channel stopped", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go loginAgents(ctx, rt, host, uint16(*port), int32(*version), creds, dialers, time.Duration(*delayMs)*time.Millisecond, log)

	if err := rt.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("runtime stopped", "err", err)
		return 1
	}
	return 0
}

// loginAgents staggers the handshake for each configured credential by
// delay, submitting every successful session to the runtime's Logins
// queue; a credential that fails to log in is logged and skipped rather
// than aborting the whole swarm.
func loginAgents(ctx context.Context, rt *runtime.Runtime, host string, port uint16, protocolVersion int32, creds []session.Credentials, dialers []proxy.Dialer, delay time.Duration, log *slog.Logger) {
	for i, c := range creds {
		select {
		case <-ctx.Done():
			return
		default:
		}

		go func(i int, c session.Credentials) {
			conn, err := dialAgent(host, port, i, dialers)
			if err != nil {
				log.Error("dial failed", "username", c.Username, "err", err)
				return
			}
			frameConn := frame.NewConn(conn)
			sess, err := session.Handshake(ctx, frameConn, host, port, protocolVersion, c, log)
			if err != nil {
				log.Error("handshake failed", "username", c.Username, "err", err)
				_ = conn.Close()
				return
			}
			select {
			case rt.Logins <- runtime.PendingLogin{Session: sess}:
			case <-ctx.Done():
			}
		}(i, c)

		if i < len(creds)-1 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			}
		}
	}
}

func dialAgent(host string, port uint16, index int, dialers []proxy.Dialer) (net.Conn, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	if len(dialers) == 0 {
		return net.DialTimeout("tcp", addr, 10*time.Second)
	}
	d := dialers[index%len(dialers)]
	return d.Dial("tcp", addr)
}

// login is one email:password row from the users file, not yet
// exchanged for a session. The CSV uses ':' as its field delimiter, not
// ',' — matching the original bootstrap's users.csv format
// (email@example.com:password, one per line).
type login struct {
	Email    string
	Password string
}

// loadLogins reads up to count email:password rows from path.
func loadLogins(path string, count int) ([]login, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ':'
	r.FieldsPerRecord = -1

	var logins []login
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(rec) < 2 || rec[0] == "" {
			continue
		}
		logins = append(logins, login{Email: rec[0], Password: rec[1]})
		if len(logins) >= count {
			break
		}
	}
	if len(logins) == 0 {
		return nil, fmt.Errorf("%s: no usable credential rows", path)
	}
	return logins, nil
}

// resolveCredentials turns each email:password row into session
// Credentials. In --offline mode no Mojang call is made and the email
// is used directly as the in-game username. Otherwise each row is
// exchanged for an access token and profile via authenticateMojang; a
// row that fails authentication is logged and dropped rather than
// aborting the whole swarm.
func resolveCredentials(ctx context.Context, logins []login, offline bool, log *slog.Logger) ([]session.Credentials, error) {
	var creds []session.Credentials
	for _, l := range logins {
		if offline {
			creds = append(creds, session.Credentials{Username: l.Email, Offline: true})
			continue
		}
		auth, err := authenticateMojang(ctx, l.Email, l.Password)
		if err != nil {
			log.Error("mojang authentication failed", "email", l.Email, "err", err)
			continue
		}
		creds = append(creds, session.Credentials{
			Username:    auth.Username,
			AccessToken: auth.AccessToken,
			ProfileUUID: auth.ProfileUUID,
		})
	}
	if len(creds) == 0 {
		return nil, fmt.Errorf("no credential rows authenticated successfully")
	}
	return creds, nil
}

// loadProxyDialers reads host:port[:username:password] rows from path
// and builds one SOCKS5 dialer per row, each agent assigned a proxy by
// index modulo the proxy count.
func loadProxyDialers(path string) ([]proxy.Dialer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ':'
	r.FieldsPerRecord = -1

	var dialers []proxy.Dialer
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if len(rec) < 2 {
			continue
		}
		addr := fmt.Sprintf("%s:%s", rec[0], rec[1])
		var auth *proxy.Auth
		if len(rec) >= 4 {
			auth = &proxy.Auth{User: rec[2], Password: rec[3]}
		}
		d, err := proxy.SOCKS5("tcp", addr, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("build socks5 dialer for %s: %w", addr, err)
		}
		dialers = append(dialers, d)
	}
	return dialers, nil
}
