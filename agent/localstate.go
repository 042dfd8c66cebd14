// Package agent owns one bot connection's mutable per-agent state: its
// physics simulator, inventory, client identity, and the follower/pathfinder
// machinery driving its current travel. It depends on follower,
// pathfinder, and physics, but never on task, so the task package can
// depend on agent without a cycle.
package agent

import (
	"github.com/SwarmBotMC/adamant/entity"
	"github.com/SwarmBotMC/adamant/follower"
	"github.com/SwarmBotMC/adamant/pathfinder"
	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/protocol/packet"
	"github.com/SwarmBotMC/adamant/world"
)

// InventorySize matches the vanilla 1.12.2 player inventory window: 1
// crafting output + 4 crafting grid + 4 armor + 27 main + 9 hotbar + 1
// offhand = 46 slots.
const InventorySize = 46

// Slot is one inventory slot; Present distinguishes an empty slot from
// item id 0 (which is a real block, air notwithstanding).
type Slot struct {
	Present bool
	ItemID  int32
	Count   int8
	Damage  int16
}

// Inventory is the 46-slot window plus the selected hotbar index.
type Inventory struct {
	Slots    [InventorySize]Slot
	Selected int // 0..8, hotbar index
}

// HeldItem returns the slot currently selected in the hotbar (slots 36-44
// in the vanilla window layout).
func (inv *Inventory) HeldItem() Slot {
	return inv.Slots[36+inv.Selected]
}

// ClientInfo is this agent's identity as negotiated at login.
type ClientInfo struct {
	Username string
	UUID     string
	EntityID int32
}

// OutQueue buffers one tick's outbound packets for later draining by the
// connection's writer task; packets from one tick are enqueued in the
// order the tick produced them.
type OutQueue struct {
	packets []packet.Packet
}

// Send appends p to the queue; it never blocks, unlike the writer's
// socket send.
func (q *OutQueue) Send(p packet.Packet) { q.packets = append(q.packets, p) }

// Drain returns and clears the queued packets.
func (q *OutQueue) Drain() []packet.Packet {
	out := q.packets
	q.packets = nil
	return out
}

// LocalState is one agent's exclusively-owned state.
type LocalState struct {
	BotID  entity.BotID
	Client ClientInfo

	Sim       *physics.Simulator
	Intent    physics.Intent
	Inventory Inventory
	Dimension int32

	// Follower and Problem are nil when the agent has no active travel.
	// LastProblem is the most recently finished search, kept so a
	// Navigate task can restart it (via Recalc) from the agent's current
	// position after the follower detects drift.
	Follower    *follower.Follower
	Problem     *pathfinder.AStar
	LastProblem *pathfinder.AStar

	Alive        bool
	Disconnected bool
}

// NewLocalState constructs a LocalState for a freshly logged-in agent at
// spawn.
func NewLocalState(bot entity.BotID, client ClientInfo, spawn world.Location) *LocalState {
	return &LocalState{
		BotID:  bot,
		Client: client,
		Sim:    physics.NewSimulator(spawn),
		Alive:  true,
	}
}
