package follower

import (
	"testing"

	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/world"
)

func TestFollowerAdvancesThroughWaypoints(t *testing.T) {
	w := world.NewWorldBlocks()
	path := []world.BlockLocation{
		{X: 0, Y: 5, Z: 0},
		{X: 1, Y: 5, Z: 0},
		{X: 2, Y: 5, Z: 0},
	}
	f := New(path, physics.SpeedWalk)

	if f.Remaining() != 3 {
		t.Fatalf("expected 3 remaining waypoints, got %d", f.Remaining())
	}

	cur := world.NewLocation(0.5, 5, 0.5)
	intent, status := f.Tick(cur, w)
	if status != InProgress {
		t.Fatalf("expected InProgress, got %v", status)
	}
	if intent.LookAt == nil || intent.Line != physics.LineForward {
		t.Fatal("expected a forward-look intent")
	}

	// Simulate arriving exactly at the second waypoint.
	cur = world.NewLocation(1.5, 5, 0.5)
	_, status = f.Tick(cur, w)
	if status != InProgress {
		t.Fatalf("expected InProgress after reaching waypoint 2, got %v", status)
	}
	if f.Remaining() != 1 {
		t.Fatalf("expected 1 remaining waypoint after advancing twice, got %d", f.Remaining())
	}

	cur = world.NewLocation(2.5, 5, 0.5)
	_, status = f.Tick(cur, w)
	if status != Finished {
		t.Fatalf("expected Finished once all waypoints consumed, got %v", status)
	}
}

func TestFollowerFailsWhenStuck(t *testing.T) {
	w := world.NewWorldBlocks()
	path := []world.BlockLocation{{X: 10, Y: 5, Z: 10}}
	f := New(path, physics.SpeedWalk)

	// Never move toward the waypoint; eventually the follower should
	// give up.
	cur := world.NewLocation(0.5, 5, 0.5)
	var status Status
	for i := 0; i < maxStuckTicks+5; i++ {
		_, status = f.Tick(cur, w)
		if status == Failed {
			break
		}
	}
	if status != Failed {
		t.Fatal("expected Failed after repeated lack of progress")
	}
}

func TestFollowerEmptyPathFinishesImmediately(t *testing.T) {
	w := world.NewWorldBlocks()
	f := New(nil, physics.SpeedWalk)
	_, status := f.Tick(world.NewLocation(0, 0, 0), w)
	if status != Finished {
		t.Fatal("expected an empty path to finish immediately")
	}
}
