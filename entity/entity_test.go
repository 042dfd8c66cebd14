package entity

import (
	"testing"

	"github.com/SwarmBotMC/adamant/world"
	"github.com/google/uuid"
)

func TestApplyMoveFirstReporterOwns(t *testing.T) {
	r := NewRegistry()
	r.Spawn(1, world.NewLocation(0, 0, 0), Normal, uuid.Nil, NoOwner)

	if !r.ApplyMove(1, BotID(5), world.NewLocation(1, 0, 0)) {
		t.Fatalf("first reporter should claim ownerless entity")
	}
	if r.ApplyMove(1, BotID(6), world.NewLocation(2, 0, 0)) {
		t.Fatalf("second agent should not be able to override ownership")
	}
	e, _ := r.Get(1)
	if e.Location.X() != 1 {
		t.Fatalf("entity location = %v, want updated by owner only", e.Location)
	}
}

func TestReleaseOwnerReclaimable(t *testing.T) {
	r := NewRegistry()
	r.Spawn(1, world.NewLocation(0, 0, 0), Normal, uuid.Nil, BotID(5))
	r.ApplyMove(1, BotID(5), world.NewLocation(1, 0, 0))

	r.ReleaseOwner(BotID(5))

	if !r.ApplyMove(1, BotID(9), world.NewLocation(2, 0, 0)) {
		t.Fatalf("entity should be reclaimable after owner disconnects")
	}
}

func TestDestroyRemovesEntity(t *testing.T) {
	r := NewRegistry()
	r.Spawn(1, world.NewLocation(0, 0, 0), Normal, uuid.Nil, NoOwner)
	r.Destroy([]int32{1})
	if _, ok := r.Get(1); ok {
		t.Fatalf("entity should be removed after Destroy")
	}
}
