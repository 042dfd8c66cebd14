package task

import (
	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/protocol/codec"
	"github.com/SwarmBotMC/adamant/protocol/packet"
	"github.com/SwarmBotMC/adamant/world"
)

// Vanilla PlayerDig status values this system uses; the protocol also
// defines drop-item and shoot-arrow statuses this system never sends.
const (
	digStatusStart  int32 = 0
	digStatusFinish int32 = 2
)

// Mine breaks a single target block: it computes the wait time from the
// held tool and the block's hardness, sends the start/finish PlayerDig
// pair bracketing that wait, and applies Air to the local world model so
// the pathfinder and later mine tasks see the change immediately.
type Mine struct {
	BaseTask
	Target world.BlockLocation

	started        bool
	ticksRemaining int
	abandon        bool
}

// NewMine builds a Mine task targeting the given block.
func NewMine(target world.BlockLocation) *Mine {
	return &Mine{Target: target}
}

func (m *Mine) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if m.abandon {
		return true
	}

	approx := glob.World.GetBlock(m.Target)
	if approx.SimpleType() != world.Solid {
		// Already gone (someone else broke it, or it was never solid).
		return true
	}

	if !m.started {
		state, _ := approx.State()
		info, ok := glob.BlockData.Blocks[state.ID()]
		if !ok {
			// No metadata for this id: treat as unbreakable and abandon,
			// "failed mine-tool selection" recovery.
			m.abandon = true
			return true
		}
		material, category := classifyHeld(local.Inventory.HeldItem().ItemID, local.Inventory.HeldItem().Present)
		ticks := info.BreakTicks(material, category)
		if ticks < 0 {
			m.abandon = true
			return true
		}
		if ticks < 1 {
			ticks = 1
		}
		m.ticksRemaining = ticks
		m.started = true

		center := world.NewLocation(float64(m.Target.X)+0.5, float64(m.Target.Y)+0.5, float64(m.Target.Z)+0.5)
		local.Intent.LookAt = &center
		face := physics.BestFace(m.Target, local.Sim.Eye())
		out.Send(&packet.PlayerDig{
			Status:   digStatusStart,
			Location: codec.EncodeBlockPosition(m.Target.X, int16(m.Target.Y), m.Target.Z),
			Face:     int8(face),
		})
		return false
	}

	m.ticksRemaining--
	if m.ticksRemaining > 0 {
		return false
	}

	face := physics.BestFace(m.Target, local.Sim.Eye())
	out.Send(&packet.PlayerDig{
		Status:   digStatusFinish,
		Location: codec.EncodeBlockPosition(m.Target.X, int16(m.Target.Y), m.Target.Z),
		Face:     int8(face),
	})
	out.Send(&packet.ArmAnimation{Hand: 0})
	glob.World.SetBlock(m.Target, world.Air)
	return true
}
