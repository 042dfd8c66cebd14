package control

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/pathfinder"
	"github.com/SwarmBotMC/adamant/runtime"
	"github.com/SwarmBotMC/adamant/task"
	"github.com/SwarmBotMC/adamant/world"
)

func newTestServer(t *testing.T) (*Server, *runtime.Runtime) {
	t.Helper()
	glob, err := global.NewState("")
	if err != nil {
		t.Fatalf("global.NewState: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	rt := runtime.New(glob, log)
	return NewServer(rt, log), rt
}

// TestGotoDispatchesBlockTravel covers spec scenario 5: the JSON
// {"path":"goto","location":{"x":10,"y":64,"z":-5}} dispatched by an
// operator results in every targeted agent scheduling travel to
// (10,64,-5).
func TestGotoDispatchesBlockTravel(t *testing.T) {
	srv, rt := newTestServer(t)

	var env envelope
	msg := []byte(`{"path":"goto","location":{"x":10,"y":64,"z":-5}}`)
	if err := json.Unmarshal(msg, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := srv.dispatch(env); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	select {
	case cmd := <-rt.Commands:
		local := agent.NewLocalState(1, agent.ClientInfo{}, world.NewLocation(0, 64, 0))
		tsk := cmd.Build(local, rt.Glob)
		nav, ok := tsk.(*task.Navigate)
		if !ok {
			t.Fatalf("expected *task.Navigate, got %T", tsk)
		}
		goal, ok := nav.Goal().(pathfinder.BlockGoal)
		if !ok {
			t.Fatalf("expected pathfinder.BlockGoal, got %T", nav.Goal())
		}
		want := world.BlockLocation{X: 10, Y: 64, Z: -5}
		if goal.Target != want {
			t.Fatalf("goal.Target = %v, want %v", goal.Target, want)
		}
	default:
		t.Fatalf("no command queued")
	}
}

func TestMineDispatchEnumeratesRegions(t *testing.T) {
	srv, rt := newTestServer(t)

	var env envelope
	msg := []byte(`{"path":"mine","sel":{"from":{"x":0,"z":0},"to":{"x":13,"z":13}}}`)
	if err := json.Unmarshal(msg, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := srv.dispatch(env); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	select {
	case cmd := <-rt.Commands:
		local := agent.NewLocalState(1, agent.ClientInfo{}, world.NewLocation(0, 64, 0))
		tsk := cmd.Build(local, rt.Glob)
		if tsk == nil {
			t.Fatalf("expected a mine task")
		}
		if _, ok := tsk.(*task.LazyStream); !ok {
			t.Fatalf("expected *task.LazyStream, got %T", tsk)
		}
		if rt.Glob.MineAlloc.Len() != 4 {
			t.Fatalf("MineAlloc.Len() = %d, want 4", rt.Glob.MineAlloc.Len())
		}
	default:
		t.Fatalf("no command queued")
	}
}

func TestAttackRequiresName(t *testing.T) {
	srv, _ := newTestServer(t)
	var env envelope
	if err := json.Unmarshal([]byte(`{"path":"attack"}`), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := srv.dispatch(env); err == nil {
		t.Fatalf("expected error for missing name")
	}
}

func TestUnknownPathIsIgnored(t *testing.T) {
	srv, rt := newTestServer(t)
	var env envelope
	if err := json.Unmarshal([]byte(`{"path":"wave"}`), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := srv.dispatch(env); err != nil {
		t.Fatalf("unknown path should be ignored, not errored: %v", err)
	}
	select {
	case cmd := <-rt.Commands:
		t.Fatalf("unexpected command queued: %+v", cmd)
	default:
	}
}
