package task

import (
	"math"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/world"
)

// centerArriveRadius is how close (2D) the agent must get to the current
// block's center to count as arrived.
const centerArriveRadius = 0.05

// Center walks the agent to the true center of whatever block it is
// currently standing in. It is typically used before a Mine or
// PillarAndMine so breaking/placing geometry lines up.
type Center struct {
	BaseTask
	target *world.Location
}

// NewCenter builds a Center task targeting the agent's block as of first
// Tick.
func NewCenter() *Center { return &Center{} }

func (c *Center) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if c.target == nil {
		block := local.Sim.Location.Block()
		t := world.NewLocation(float64(block.X)+0.5, local.Sim.Location.Y(), float64(block.Z)+0.5)
		c.target = &t
	}

	cur := local.Sim.Location
	dx := c.target.X() - cur.X()
	dz := c.target.Z() - cur.Z()
	if math.Hypot(dx, dz) <= centerArriveRadius {
		local.Intent.Clear()
		return true
	}

	lookAt := *c.target
	local.Intent.Line = physics.LineForward
	local.Intent.Speed = physics.SpeedWalk
	local.Intent.LookAt = &lookAt
	return false
}
