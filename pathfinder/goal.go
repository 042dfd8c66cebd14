// Package pathfinder implements a time-sliced A* search over the
// reachable block graph: a move generator that enumerates
// walk/descend/ascend transitions from a position given the world,
// parameterized heuristics and goal checks, and an A* core whose open
// set, g-score table, and parent table are kept as plain values owned by
// the caller (the task package's Navigate task).
package pathfinder

import (
	"math"

	"github.com/SwarmBotMC/adamant/world"
)

// Goal decides whether a candidate block location satisfies a search.
type Goal interface {
	Check(loc world.BlockLocation) bool
}

// BlockGoal requires an exact (x,z) and a y within one block of Target.
type BlockGoal struct {
	Target world.BlockLocation
}

func (g BlockGoal) Check(loc world.BlockLocation) bool {
	if loc.X != g.Target.X || loc.Z != g.Target.Z {
		return false
	}
	dy := loc.Y - g.Target.Y
	return dy >= -1 && dy <= 1
}

// BlockNearGoal is satisfied within a 2D radius of Target; ExcludeExact
// additionally forbids standing exactly on Target, for tasks like
// AttackEntity that need to approach without occupying the target's
// block.
type BlockNearGoal struct {
	Target       world.BlockLocation2D
	Radius       float64
	ExcludeExact bool
}

func (g BlockNearGoal) Check(loc world.BlockLocation) bool {
	dx := float64(loc.X - g.Target.X)
	dz := float64(loc.Z - g.Target.Z)
	d := math.Hypot(dx, dz)
	if g.ExcludeExact && dx == 0 && dz == 0 {
		return false
	}
	return d <= g.Radius
}

// ChunkGoal is satisfied anywhere within Target's chunk column.
type ChunkGoal struct {
	Target world.ChunkLocation
}

func (g ChunkGoal) Check(loc world.BlockLocation) bool {
	return loc.Chunk() == g.Target
}

// CenterChunkGoal is satisfied within the 2x2 block square at the center
// of Target's chunk column (local x,z in {7,8}).
type CenterChunkGoal struct {
	Target world.ChunkLocation
}

func (g CenterChunkGoal) Check(loc world.BlockLocation) bool {
	if loc.Chunk() != g.Target {
		return false
	}
	lx := loc.X - g.Target.CX*16
	lz := loc.Z - g.Target.CZ*16
	return lx >= 7 && lx <= 8 && lz >= 7 && lz <= 8
}

// Heuristic estimates the remaining cost from loc to a goal.
type Heuristic func(loc world.BlockLocation) float64

// BlockHeuristic is 3D Euclidean distance to target, scaled by
// moveCost*0.2
func BlockHeuristic(target world.BlockLocation, moveCost float64) Heuristic {
	return func(loc world.BlockLocation) float64 {
		dx := float64(loc.X - target.X)
		dy := float64(loc.Y - target.Y)
		dz := float64(loc.Z - target.Z)
		return math.Sqrt(dx*dx+dy*dy+dz*dz) * moveCost * 0.2
	}
}

// ChunkHeuristic is 2D Euclidean distance to the target chunk's center,
// scaled by moveCost*0.2.
func ChunkHeuristic(target world.ChunkLocation, moveCost float64) Heuristic {
	cx := float64(target.CX*16 + 8)
	cz := float64(target.CZ*16 + 8)
	return func(loc world.BlockLocation) float64 {
		dx := float64(loc.X) - cx
		dz := float64(loc.Z) - cz
		return math.Hypot(dx, dz) * moveCost * 0.2
	}
}
