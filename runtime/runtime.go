// Package runtime drives the fixed-tick game loop every connected agent
// runs under: it owns the authoritative global.State, admits newly
// logged-in sessions, drains operator commands, dispatches each agent's
// inbound packets, steps physics, runs the cheap task phase, fans the
// expensive phase out across a worker pool, and flushes outbound
// packets, sleeping to hold a steady cadence.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/entity"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/protocol/codec"
	"github.com/SwarmBotMC/adamant/protocol/frame"
	"github.com/SwarmBotMC/adamant/protocol/packet"
	"github.com/SwarmBotMC/adamant/session"
	"github.com/SwarmBotMC/adamant/task"
	"github.com/SwarmBotMC/adamant/world"
)

// TickPeriod is the runtime's fixed tick period: one physics step and one
// task phase per period, matching the server's own tick rate.
const TickPeriod = 50 * time.Millisecond

// missedTickWarn is how far past TickPeriod a tick must overrun before
// it is logged; small jitter under load is expected and not worth the
// log line.
const missedTickWarn = 100 * time.Millisecond

// inboundFrame is one decoded frame waiting on an agent's inbound queue,
// read off the socket by that agent's dedicated reader goroutine.
type inboundFrame struct {
	id   int32
	body []byte
}

// agentConn is one connected agent's runtime-owned state: its session
// wiring plus the agent package's LocalState the task/physics layers
// mutate.
type agentConn struct {
	botID entity.BotID
	conn  *frame.Conn
	local *agent.LocalState
	out   agent.OutQueue
	in    chan inboundFrame

	current task.Task

	readerDone chan struct{}
	readerErr  error
}

// PendingLogin is a freshly authenticated connection waiting to be
// admitted into the runtime as a new agent, handed off from the process
// that drives Handshake for each configured credential.
type PendingLogin struct {
	Session *session.Session
	Dialect string // reserved for future multi-version support; unused
}

// Command is an operator instruction, decoded by the control package and
// handed to the runtime to apply against a specific agent.
type Command struct {
	BotID entity.BotID // zero value (entity.NoOwner) means "broadcast to all"
	Build func(local *agent.LocalState, glob *global.State) task.Task
}

// Runtime is the process-wide game loop. It is not safe for concurrent
// use beyond the channels it exposes; all mutation happens on the single
// Run goroutine.
type Runtime struct {
	Glob *global.State
	Log  *slog.Logger

	Logins   chan PendingLogin
	Commands chan Command

	mu      sync.RWMutex
	agents  map[entity.BotID]*agentConn
	byName  map[string]entity.BotID
	nextBot entity.BotID
}

// New builds a Runtime ready to admit logins and commands once Run
// starts.
func New(glob *global.State, log *slog.Logger) *Runtime {
	return &Runtime{
		Glob:     glob,
		Log:      log,
		Logins:   make(chan PendingLogin, 64),
		Commands: make(chan Command, 256),
		agents:   make(map[entity.BotID]*agentConn),
		byName:   make(map[string]entity.BotID),
	}
}

// Run drives the tick loop until ctx is cancelled.
func (r *Runtime) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			tickStart := now
			r.admitLogins()
			r.applyCommands()
			r.tick(ctx)
			if over := time.Since(tickStart) - TickPeriod; over > missedTickWarn {
				r.Log.Warn("tick overran", "over", over)
			}
		}
	}
}

// admitLogins drains any sessions that finished handshaking since the
// last tick, spinning up a reader goroutine and a fresh LocalState for
// each.
func (r *Runtime) admitLogins() {
	for {
		select {
		case pending := <-r.Logins:
			r.addAgent(pending.Session)
		default:
			return
		}
	}
}

func (r *Runtime) addAgent(sess *session.Session) {
	r.mu.Lock()
	r.nextBot++
	id := r.nextBot
	r.mu.Unlock()

	client := agent.ClientInfo{Username: sess.Username, UUID: sess.UUID}
	ac := &agentConn{
		botID:      id,
		conn:       sess.Conn,
		local:      agent.NewLocalState(id, client, world.NewLocation(0, 64, 0)),
		in:         make(chan inboundFrame, 256),
		readerDone: make(chan struct{}),
	}

	r.mu.Lock()
	r.agents[id] = ac
	r.byName[sess.Username] = id
	r.mu.Unlock()

	go ac.readLoop(r.Log)
	go func() {
		if err := sess.Conn.RunWriter(); err != nil {
			r.Log.Debug("writer stopped", "bot_id", id, "err", err)
		}
	}()

	r.Log.Info("agent admitted", "bot_id", id, "username", sess.Username)
}

func (ac *agentConn) readLoop(log *slog.Logger) {
	defer close(ac.readerDone)
	for {
		id, body, err := ac.conn.ReadFrame()
		if err != nil {
			ac.readerErr = err
			return
		}
		select {
		case ac.in <- inboundFrame{id: id, body: body}:
		default:
			log.Warn("inbound queue full, dropping frame", "bot_id", ac.botID, "packet_id", id)
		}
	}
}

// applyCommands drains operator commands queued since the last tick and
// installs the resulting task on the addressed agent(s).
func (r *Runtime) applyCommands() {
	for {
		select {
		case cmd := <-r.Commands:
			r.mu.RLock()
			targets := make([]*agentConn, 0, len(r.agents))
			if cmd.BotID == entity.NoOwner {
				for _, ac := range r.agents {
					targets = append(targets, ac)
				}
			} else if ac, ok := r.agents[cmd.BotID]; ok {
				targets = append(targets, ac)
			}
			r.mu.RUnlock()

			for _, ac := range targets {
				next := cmd.Build(ac.local, r.Glob)
				if next == nil {
					r.Log.Info("control: command rejected, leaving current task untouched", "bot_id", ac.botID)
					continue
				}
				ac.current = next
			}
		default:
			return
		}
	}
}

// ByUsername resolves a connected agent's BotID by login name, used by
// the control package to translate an operator-facing name into the
// internal id.
func (r *Runtime) ByUsername(name string) (entity.BotID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	return id, ok
}

// tick runs one full game step: dispatch inbound, step physics, run the
// cheap task phase, fan the expensive phase out to a worker pool bounded
// by the tick deadline, then flush outbound packets.
func (r *Runtime) tick(ctx context.Context) {
	deadline := time.Now().Add(TickPeriod)

	r.mu.RLock()
	agents := make([]*agentConn, 0, len(r.agents))
	for _, ac := range r.agents {
		agents = append(agents, ac)
	}
	r.mu.RUnlock()

	live := agents[:0]
	for _, ac := range agents {
		if ac.disconnected() {
			r.removeAgent(ac)
			continue
		}
		r.drainInbound(ac)
		r.stepPhysics(ac)
		if ac.current != nil && ac.current.Tick(&ac.out, ac.local, r.Glob) {
			ac.current = nil
		}
		live = append(live, ac)
	}

	r.runExpensivePhase(ctx, live, deadline)

	for _, ac := range live {
		flush(ac)
	}
}

func (ac *agentConn) disconnected() bool {
	select {
	case <-ac.readerDone:
		return true
	default:
		return ac.local.Disconnected
	}
}

func (r *Runtime) removeAgent(ac *agentConn) {
	r.Glob.Entities.ReleaseOwner(ac.botID)
	r.mu.Lock()
	delete(r.agents, ac.botID)
	delete(r.byName, ac.local.Client.Username)
	r.mu.Unlock()
	_ = ac.conn.Close()
	r.Log.Info("agent removed", "bot_id", ac.botID, "reason", ac.readerErr)
}

// drainInbound dispatches every frame an agent's reader goroutine has
// queued since the last tick, without blocking.
func (r *Runtime) drainInbound(ac *agentConn) {
	for {
		select {
		case f := <-ac.in:
			dispatchInbound(f.id, f.body, ac.botID, ac.local, r.Glob, &ac.out, r.Log)
		default:
			return
		}
	}
}

// stepPhysics advances one agent's simulator by one tick and translates
// whatever it committed into outbound packets.
func (r *Runtime) stepPhysics(ac *agentConn) {
	actions := ac.local.Sim.Tick(ac.local.Intent, r.Glob.World)
	ac.local.Intent.Clear()

	loc := ac.local.Sim.Location
	switch {
	case actions.Teleported:
		ac.out.Send(&packet.PlayerPosition{X: loc.X(), Y: loc.Y(), Z: loc.Z(), OnGround: ac.local.Sim.OnGround})
	case actions.Moved && actions.Looked:
		ac.out.Send(&packet.PlayerPositionAndRotation{
			X: loc.X(), Y: loc.Y(), Z: loc.Z(),
			Yaw: float32(ac.local.Sim.Yaw), Pitch: float32(ac.local.Sim.Pitch),
			OnGround: ac.local.Sim.OnGround,
		})
	case actions.Moved:
		ac.out.Send(&packet.PlayerPosition{X: loc.X(), Y: loc.Y(), Z: loc.Z(), OnGround: ac.local.Sim.OnGround})
	case actions.Looked:
		ac.out.Send(&packet.PlayerLook{Yaw: float32(ac.local.Sim.Yaw), Pitch: float32(ac.local.Sim.Pitch), OnGround: ac.local.Sim.OnGround})
	}

	if actions.Placed != nil {
		t := actions.Placed.Target
		pos := codec.EncodeBlockPosition(t.X, int16(t.Y), t.Z)
		ac.out.Send(&packet.PlaceBlock{Location: pos, Face: actions.Placed.Face, Hand: 0})
	}
}

// runExpensivePhase fans each agent's task Expensive phase out across a
// worker pool, every worker reading the shared glob read-only and
// handed the tick's deadline; it returns once every worker has
// returned, so a worker that overruns the deadline delays it.
func (r *Runtime) runExpensivePhase(ctx context.Context, agents []*agentConn, deadline time.Time) {
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	g, _ := errgroup.WithContext(ctx)
	for _, ac := range agents {
		ac := ac
		if ac.current == nil {
			continue
		}
		g.Go(func() error {
			ac.current.Expensive(deadline, ac.local, r.Glob)
			return nil
		})
	}
	_ = g.Wait()
}

func flush(ac *agentConn) {
	for _, p := range ac.out.Drain() {
		body, err := packet.Marshal(p)
		if err != nil {
			continue
		}
		ac.conn.WriteFrame(p.ID(), body)
	}
}

