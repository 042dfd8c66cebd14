// Package control is the operator-facing command channel: a
// gorilla/websocket server bound to 127.0.0.1, one JSON object per
// message, decoded into a runtime.Command and handed off for the next
// tick to apply. Wired the way niceyeti-tabular's tabular/server/fastview/
// client.go runs its own operator-facing websocket server: an
// Upgrader{}, a dedicated read loop per connection, and a bounded write
// path guarding the one underlying socket.
package control

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/entity"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/pathfinder"
	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/runtime"
	"github.com/SwarmBotMC/adamant/task"
	"github.com/SwarmBotMC/adamant/world"
)

const (
	readDeadline  = 10 * time.Second
	writeDeadline = time.Second
)

var upgrader = websocket.Upgrader{}

// envelope is the wire shape of every operator command: a path naming
// the command and a bag of command-specific fields, only some of which
// apply to any given path. Field shapes match spec.md §6 literally:
// {"path":"mine","sel":{"from":{"x":.,"z":.},"to":{"x":.,"z":.}}},
// {"path":"goto","location":{"x":.,"y":.,"z":.}},
// {"path":"attack","name":"..."}.
type envelope struct {
	Path     string        `json:"path"`
	Bot      string        `json:"bot"` // empty means broadcast to every connected agent
	Sel      *selection    `json:"sel"`
	Location *locationJSON `json:"location"`
	Name     string        `json:"name"` // attack: player name
}

type xz struct {
	X int32 `json:"x"`
	Z int32 `json:"z"`
}

type selection struct {
	From xz `json:"from"`
	To   xz `json:"to"`
}

type locationJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Server upgrades operator connections and feeds decoded commands into
// the runtime.
type Server struct {
	rt  *runtime.Runtime
	log *slog.Logger
}

// NewServer builds a control Server bound to rt.
func NewServer(rt *runtime.Runtime, log *slog.Logger) *Server {
	return &Server{rt: rt, log: log}
}

// ListenAndServe blocks serving the operator websocket on addr (normally
// "127.0.0.1:<ws_port>"), until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleUpgrade)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("control: upgrade failed", "err", err)
		return
	}
	go s.serve(conn)
}

// serve reads one JSON command per message until the connection closes
// or sends malformed JSON, at which point it disconnects.
func (s *Server) serve(conn *websocket.Conn) {
	defer conn.Close()
	for {
		_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.Warn("control: malformed command, disconnecting", "err", err)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "malformed json"),
				time.Now().Add(writeDeadline))
			return
		}

		if err := s.dispatch(env); err != nil {
			s.log.Warn("control: command rejected", "path", env.Path, "err", err)
		}
	}
}

func (s *Server) dispatch(env envelope) error {
	var botID entity.BotID
	if env.Bot != "" {
		id, ok := s.rt.ByUsername(env.Bot)
		if !ok {
			return fmt.Errorf("control: unknown bot %q", env.Bot)
		}
		botID = id
	}

	switch env.Path {
	case "mine":
		return s.mine(botID, env)
	case "goto":
		return s.goTo(botID, env)
	case "attack":
		return s.attack(botID, env)
	default:
		s.log.Info("control: unknown command path, ignoring", "path", env.Path)
		return nil
	}
}

// mine enqueues the rectangle [from, to] as pending MineAlloc regions
// ordered nearest-first to the agent whose command build runs (for a
// broadcast command, the first agent the runtime builds it for), then
// assigns every target agent the task that drains that queue.
func (s *Server) mine(bot entity.BotID, env envelope) error {
	if env.Sel == nil {
		return fmt.Errorf("control: mine requires sel")
	}
	sel := *env.Sel
	s.rt.Commands <- runtime.Command{
		BotID: bot,
		Build: func(local *agent.LocalState, glob *global.State) task.Task {
			ref := [2]int32{int32(local.Sim.Location.X()), int32(local.Sim.Location.Z())}
			from := [2]int32{sel.From.X, sel.From.Z}
			to := [2]int32{sel.To.X, sel.To.Z}
			regions := global.EnumerateRegions(from, to, ref, global.FromDist)
			glob.MineAlloc.TryEnqueue(regions)
			return task.NewMineRegionQueue()
		},
	}
	return nil
}

func (s *Server) goTo(bot entity.BotID, env envelope) error {
	if env.Location == nil {
		return fmt.Errorf("control: goto requires location")
	}
	target := world.NewLocation(env.Location.X, env.Location.Y, env.Location.Z)
	s.rt.Commands <- runtime.Command{
		BotID: bot,
		Build: func(local *agent.LocalState, glob *global.State) task.Task {
			goal := pathfinder.BlockGoal{Target: target.Block()}
			heur := pathfinder.BlockHeuristic(target.Block(), glob.PathConfig.BlockWalk)
			return task.NewNavigate(goal, heur, physics.SpeedWalk)
		},
	}
	return nil
}

// attack resolves Name's player name to its current entity id via the
// shared roster and entity registry, then assigns an AttackEntity task.
// The lookup happens inside Build, on the runtime's own goroutine, so it
// sees a consistent snapshot of glob rather than racing this handler's
// goroutine against it.
func (s *Server) attack(bot entity.BotID, env envelope) error {
	if env.Name == "" {
		return fmt.Errorf("control: attack requires a name")
	}
	s.rt.Commands <- runtime.Command{
		BotID: bot,
		Build: func(local *agent.LocalState, glob *global.State) task.Task {
			roster, ok := glob.Roster.ByName(env.Name)
			if !ok {
				return nil
			}
			id, ok := glob.Entities.FindByUUID(roster.UUID)
			if !ok {
				return nil
			}
			return task.NewAttackEntity(id)
		},
	}
	return nil
}
