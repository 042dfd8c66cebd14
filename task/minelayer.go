package task

import (
	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/world"
)

// mineLayerRadius is the ±3 horizontal search radius.
const mineLayerRadius = 3

// MineLayer finds the nearest mineable block within a ±3 horizontal
// radius of the agent at a chosen y, and mines it. It completes once a
// block has been mined, or immediately if nothing in range is mineable.
type MineLayer struct {
	BaseTask
	y      *int32 // nil: use the agent's current block y at first Tick
	active *Mine
}

// NewMineLayer mines at the agent's current y.
func NewMineLayer() *MineLayer { return &MineLayer{} }

// NewMineLayerAt mines at a fixed y, used by MineColumn to work through
// layers below the agent's present position.
func NewMineLayerAt(y int32) *MineLayer {
	return &MineLayer{y: &y}
}

func (m *MineLayer) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if m.active != nil {
		if !m.active.Tick(out, local, glob) {
			return false
		}
		return true
	}

	y := local.Sim.Location.Block().Y
	if m.y != nil {
		y = *m.y
	}
	center := local.Sim.Location.Block().To2D()

	loc, found := nearestMineable(glob, center, y)
	if !found {
		return true
	}
	m.active = NewMine(loc)
	return false
}

// nearestMineable scans the (2*mineLayerRadius+1)^2 square around center
// at height y for the closest Solid block that has block metadata and is
// breakable (non-negative hardness); harvestability is not checked.
func nearestMineable(glob *global.State, center world.BlockLocation2D, y int32) (world.BlockLocation, bool) {
	var (
		best    world.BlockLocation
		bestD   int64
		found   bool
	)
	for dx := int32(-mineLayerRadius); dx <= mineLayerRadius; dx++ {
		for dz := int32(-mineLayerRadius); dz <= mineLayerRadius; dz++ {
			loc := world.BlockLocation{X: center.X + dx, Y: y, Z: center.Z + dz}
			approx := glob.World.GetBlock(loc)
			if !approx.IsRealized() || approx.SimpleType() != world.Solid {
				continue
			}
			state, _ := approx.State()
			info, ok := glob.BlockData.Blocks[state.ID()]
			if !ok || info.Hardness < 0 {
				continue
			}
			d := int64(dx)*int64(dx) + int64(dz)*int64(dz)
			if !found || d < bestD {
				found = true
				bestD = d
				best = loc
			}
		}
	}
	return best, found
}
