package task

import (
	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/world"
)

// Bridge walks the agent backward while sneaking (to avoid falling off
// the edge it is building) and places a block underneath whenever the
// space there is empty It completes after placing
// Length blocks.
type Bridge struct {
	BaseTask
	Length int

	placed int
}

// NewBridge builds a Bridge task that places length blocks behind the
// agent as it backs away.
func NewBridge(length int) *Bridge {
	return &Bridge{Length: length}
}

func (b *Bridge) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if b.placed >= b.Length {
		local.Intent.Clear()
		return true
	}

	local.Intent.Strafe = physics.StrafeNone
	local.Intent.Line = physics.LineBack
	local.Intent.Speed = physics.SpeedSneak
	local.Intent.Place = nil

	below := local.Sim.Location.Block().Add(0, -1, 0)
	if glob.World.GetBlockSimple(below) != world.Solid {
		local.Intent.Place = &physics.PlaceIntent{Target: below, Face: physics.FaceUp}
		b.placed++
	}
	return false
}
