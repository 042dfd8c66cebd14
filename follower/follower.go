// Package follower drives one agent's physics intents tick-by-tick along
// a precomputed path. It depends only on world and physics so that the
// agent package can own both a Follower and the Task machinery that
// constructs one, without a cycle.
package follower

import (
	"math"

	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/world"
)

// Status is what one Tick call reports back to the owning task.
type Status int

const (
	InProgress Status = iota
	Finished
	Failed
)

// maxStuckTicks bounds how long a waypoint may fail to make progress
// before the follower reports Failed.
const maxStuckTicks = 40

// waypointRadius and waypointVertical are the arrival thresholds: 2D
// distance below waypointRadius and |dy| within waypointVertical counts
// as having reached a waypoint.
const (
	waypointRadius   = 0.3
	waypointVertical = 0.5
)

// stuckProgressEpsilon is the minimum 2D distance improvement per tick
// that counts as "making progress" toward the current waypoint.
const stuckProgressEpsilon = 0.01

// Follower walks a FIFO queue of block-center waypoints, emitting a
// physics.Intent each tick.
type Follower struct {
	waypoints []world.Location
	idx       int
	speed     physics.Speed

	stuckTicks  int
	lastBestDist float64
	haveLast    bool
}

// New builds a Follower over path, converting each block location to its
// horizontal center (matching the Center task's "true center" notion) at
// the block's floor y, and walking at speed.
func New(path []world.BlockLocation, speed physics.Speed) *Follower {
	f := &Follower{speed: speed}
	f.waypoints = make([]world.Location, len(path))
	for i, loc := range path {
		f.waypoints[i] = world.NewLocation(float64(loc.X)+0.5, float64(loc.Y), float64(loc.Z)+0.5)
	}
	return f
}

// Tick advances the follower by one physics step: it reports the intent
// to drive toward the current waypoint and the resulting Status.
func (f *Follower) Tick(current world.Location, w *world.WorldBlocks) (physics.Intent, Status) {
	if f.idx >= len(f.waypoints) {
		return physics.Intent{}, Finished
	}

	target := f.waypoints[f.idx]
	dx := target.X() - current.X()
	dz := target.Z() - current.Z()
	dist2D := hypot(dx, dz)
	dy := target.Y() - current.Y()

	if dist2D < waypointRadius && absf(dy) <= waypointVertical {
		f.idx++
		f.stuckTicks = 0
		f.haveLast = false
		if f.idx >= len(f.waypoints) {
			return physics.Intent{}, Finished
		}
		target = f.waypoints[f.idx]
		dx = target.X() - current.X()
		dz = target.Z() - current.Z()
		dist2D = hypot(dx, dz)
	}

	if f.haveLast && f.lastBestDist-dist2D < stuckProgressEpsilon {
		f.stuckTicks++
	} else {
		f.stuckTicks = 0
	}
	f.lastBestDist = dist2D
	f.haveLast = true
	if f.stuckTicks > maxStuckTicks {
		return physics.Intent{}, Failed
	}

	if f.pathBlocked(w) {
		return physics.Intent{}, Failed
	}

	intent := physics.Intent{
		Line:   physics.LineForward,
		Speed:  f.speed,
		LookAt: &target,
	}
	return intent, InProgress
}

// pathBlocked reports whether the current waypoint's block is now solid.
func (f *Follower) pathBlocked(w *world.WorldBlocks) bool {
	if f.idx >= len(f.waypoints) {
		return false
	}
	wp := f.waypoints[f.idx].Block()
	return w.GetBlockSimple(wp) == world.Solid
}

// ShouldRecalc reports whether the world along the remaining path has
// changed enough to warrant a fresh search: any upcoming waypoint's
// block is now Avoid or Solid where it previously had to be passable.
func (f *Follower) ShouldRecalc(w *world.WorldBlocks) bool {
	for i := f.idx; i < len(f.waypoints); i++ {
		loc := f.waypoints[i].Block()
		switch w.GetBlockSimple(loc) {
		case world.Solid, world.Avoid:
			return true
		}
	}
	return false
}

// Remaining reports how many waypoints are left, used by tasks deciding
// whether a Navigate is effectively done.
func (f *Follower) Remaining() int { return len(f.waypoints) - f.idx }

func hypot(a, b float64) float64 { return math.Hypot(a, b) }

func absf(v float64) float64 { return math.Abs(v) }
