package task

import (
	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/protocol/packet"
	"github.com/SwarmBotMC/adamant/world"
)

// fallTriggerDistance is the "about to fall" threshold.
const fallTriggerDistance = 3.0

// FallBucket is a standing guard, not a completing task: it watches for
// the agent about to fall at least 3 blocks and places water to break
// the fall, then scoops it back up once the agent lands. It assumes a
// water bucket is already the held item; selecting it into the hotbar
// is the caller's responsibility (this task only drives the
// UseItem/world-model half of the placement). It never reports
// completion; a runtime cancels it by replacing the agent's
// current task.
type FallBucket struct {
	BaseTask
	placedAt *world.BlockLocation
}

// NewFallBucket builds a FallBucket guard.
func NewFallBucket() *FallBucket { return &FallBucket{} }

func (f *FallBucket) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if f.placedAt != nil {
		if local.Sim.OnGround {
			out.Send(&packet.UseItem{Hand: 0})
			glob.World.SetBlock(*f.placedAt, world.Air)
			f.placedAt = nil
		}
		return false
	}

	if local.Sim.OnGround {
		return false
	}
	below, _, found := glob.World.FirstBelow(local.Sim.Location.Block())
	if !found {
		return false
	}
	fallDist := local.Sim.Location.Y() - float64(below.Y) - 1
	if fallDist < fallTriggerDistance {
		return false
	}

	target := below.Add(0, 1, 0)
	out.Send(&packet.UseItem{Hand: 0})
	glob.World.SetBlock(target, world.NewBlockState(9, 0)) // still water
	f.placedAt = &target
	return false
}
