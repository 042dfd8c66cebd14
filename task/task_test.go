package task

import (
	"testing"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/entity"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/world"
)

func newTestState(t *testing.T) *global.State {
	t.Helper()
	st, err := global.NewState("")
	if err != nil {
		t.Fatalf("global.NewState: %v", err)
	}
	return st
}

func newTestLocal() *agent.LocalState {
	return agent.NewLocalState(entity.BotID(1), agent.ClientInfo{Username: "bot"}, world.NewLocation(0, 64, 0))
}

func TestDelayCompletesAfterNTicks(t *testing.T) {
	d := NewDelay(3)
	glob := newTestState(t)
	local := newTestLocal()
	var out agent.OutQueue

	for i := 0; i < 2; i++ {
		if d.Tick(&out, local, glob) {
			t.Fatalf("delay completed early on tick %d", i)
		}
	}
	if !d.Tick(&out, local, glob) {
		t.Fatal("expected delay to complete on its 3rd tick")
	}
}

func TestDelayZeroCompletesImmediately(t *testing.T) {
	d := NewDelay(0)
	glob := newTestState(t)
	local := newTestLocal()
	var out agent.OutQueue
	if !d.Tick(&out, local, glob) {
		t.Fatal("expected a zero-tick delay to complete immediately")
	}
}

func TestCompoundChainsSubtasksWithoutExtraTicks(t *testing.T) {
	glob := newTestState(t)
	local := newTestLocal()
	var out agent.OutQueue

	c := NewCompound(NewDelay(0), NewDelay(0), NewDelay(2))
	// The two 0-tick delays should both resolve within the same Tick call
	// that starts draining the compound; only the final 2-tick delay
	// should cause Tick to report incomplete.
	if c.Tick(&out, local, glob) {
		t.Fatal("expected compound to still be running (1-tick delay pending)")
	}
	if !c.Tick(&out, local, glob) {
		t.Fatal("expected compound to finish on the following tick")
	}
}

func TestLazyTaskDefersConstruction(t *testing.T) {
	glob := newTestState(t)
	local := newTestLocal()
	var out agent.OutQueue

	built := false
	lt := NewLazyTask(func(local *agent.LocalState, glob *global.State) Task {
		built = true
		return NewDelay(0)
	})
	if built {
		t.Fatal("expected the builder not to run before the first Tick")
	}
	if !lt.Tick(&out, local, glob) {
		t.Fatal("expected the wrapped 0-tick delay to complete immediately")
	}
	if !built {
		t.Fatal("expected the builder to have run")
	}
}

func TestLazyStreamDrainsUntilExhausted(t *testing.T) {
	glob := newTestState(t)
	local := newTestLocal()
	var out agent.OutQueue

	produced := 0
	stream := StreamFunc(func(local *agent.LocalState, glob *global.State) (Task, bool) {
		if produced >= 2 {
			return nil, false
		}
		produced++
		return NewDelay(1), true
	})
	ls := NewLazyStream(stream)

	ticks := 0
	for !ls.Tick(&out, local, glob) {
		ticks++
		if ticks > 10 {
			t.Fatal("lazy stream did not converge")
		}
	}
	if produced != 2 {
		t.Fatalf("expected exactly 2 sub-tasks produced, got %d", produced)
	}
}

func TestCenterTaskReachesBlockCenter(t *testing.T) {
	glob := newTestState(t)
	local := newTestLocal()
	local.Sim.Location = world.NewLocation(0.1, 64, 0.1)
	var out agent.OutQueue

	c := NewCenter()
	for i := 0; i < 200; i++ {
		if c.Tick(&out, local, glob) {
			return
		}
		// Drive the simulator forward so the intent actually moves the
		// agent, mirroring what the runtime would do each tick.
		local.Sim.Tick(local.Intent, glob.World)
	}
	t.Fatal("expected Center to converge within 200 ticks")
}

func TestMineWaitsBreakTicksThenClearsBlock(t *testing.T) {
	glob := newTestState(t)
	local := newTestLocal()
	var out agent.OutQueue

	target := world.BlockLocation{X: 5, Y: 63, Z: 5}
	cd := flatColumnForTask(0, 0, 63)
	glob.World.ApplyChunkData(cd)
	glob.World.SetBlock(target, world.NewBlockState(1, 0)) // stone

	m := NewMine(target)
	ticks := 0
	for !m.Tick(&out, local, glob) {
		ticks++
		if ticks > 1000 {
			t.Fatal("mine never completed")
		}
	}
	if glob.World.GetBlockSimple(target) == world.Solid {
		t.Fatal("expected target block to be cleared after mining")
	}
}
