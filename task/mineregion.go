package task

import (
	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/pathfinder"
	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/world"
)

// regionMoveCostUnit scales ChunkHeuristic for a region's travel leg; an
// exact match to the live PathConfig is not required for heuristic
// admissibility here, only a reasonable per-block scale.
const regionMoveCostUnit = 1.0

// NewMineRegion builds the sub-tasks for mining one MineAlloc region:
// navigate to its center, then work down its column.
func NewMineRegion(region global.Region) *Compound {
	centerX := region.X + global.RegionWidth/2
	centerZ := region.Z + global.RegionWidth/2
	target2D := world.BlockLocation2D{X: centerX, Z: centerZ}
	target := world.BlockLocation{X: centerX, Z: centerZ}

	goal := pathfinder.BlockNearGoal{Target: target2D, Radius: 2}
	heur := pathfinder.BlockHeuristic(target, regionMoveCostUnit)
	nav := NewNavigate(goal, heur, physics.SpeedSprint)
	col := NewMineColumn()
	return NewCompound(nav, col)
}

// mineRegionStream dequeues MineAlloc regions one at a time for a
// LazyStream, completing once the queue is empty.
type mineRegionStream struct{}

func (mineRegionStream) Next(local *agent.LocalState, glob *global.State) (Task, bool) {
	region, ok := glob.MineAlloc.Dequeue()
	if !ok {
		return nil, false
	}
	return NewMineRegion(region), true
}

// NewMineRegionQueue builds the task an agent runs for a whole "mine"
// command: repeatedly pull the next pending region and work it, until
// the queue empties.
func NewMineRegionQueue() *LazyStream {
	return NewLazyStream(mineRegionStream{})
}
