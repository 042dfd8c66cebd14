package agent

import (
	"testing"

	"github.com/SwarmBotMC/adamant/entity"
	"github.com/SwarmBotMC/adamant/protocol/packet"
	"github.com/SwarmBotMC/adamant/world"
)

func TestOutQueueDrainPreservesOrder(t *testing.T) {
	var q OutQueue
	q.Send(&packet.KeepAlive{ID_: 1})
	q.Send(&packet.ChatMessageOut{Message: "hi"})

	drained := q.Drain()
	if len(drained) != 2 {
		t.Fatalf("expected 2 packets, got %d", len(drained))
	}
	if drained[0].ID() != packet.IDKeepAliveOut {
		t.Fatalf("unexpected first packet id %d", drained[0].ID())
	}
	if more := q.Drain(); len(more) != 0 {
		t.Fatal("expected queue to be empty after drain")
	}
}

func TestNewLocalStateStartsAlive(t *testing.T) {
	ls := NewLocalState(entity.BotID(1), ClientInfo{Username: "bot"}, world.NewLocation(0, 64, 0))
	if !ls.Alive {
		t.Fatal("expected a freshly constructed agent to be alive")
	}
	if ls.Disconnected {
		t.Fatal("expected a freshly constructed agent to not be disconnected")
	}
	if ls.Sim == nil {
		t.Fatal("expected a simulator to be constructed")
	}
}

func TestHeldItemSelectsHotbarSlot(t *testing.T) {
	var inv Inventory
	inv.Selected = 2
	inv.Slots[36+2] = Slot{Present: true, ItemID: 5, Count: 1}
	held := inv.HeldItem()
	if !held.Present || held.ItemID != 5 {
		t.Fatalf("expected selected hotbar slot, got %+v", held)
	}
}
