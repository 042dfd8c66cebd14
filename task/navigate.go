package task

import (
	"time"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/follower"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/pathfinder"
	"github.com/SwarmBotMC/adamant/physics"
)

// Navigate drives an agent to a Goal by alternating a time-sliced A*
// search (run in Expensive, on a worker thread) with a Follower that
// consumes whatever path the search has produced so far. It recalculates
// the search from the agent's current position whenever the Follower
// reports drift.
type Navigate struct {
	BaseTask
	goal  pathfinder.Goal
	heur  pathfinder.Heuristic
	speed physics.Speed

	started bool
}

// NewNavigate builds a Navigate task toward goal, scoring candidate nodes
// with heur, moving at speed.
func NewNavigate(goal pathfinder.Goal, heur pathfinder.Heuristic, speed physics.Speed) *Navigate {
	return &Navigate{goal: goal, heur: heur, speed: speed}
}

// Goal returns the goal this Navigate task was built with, for callers
// that need to inspect a dispatched command's target (e.g. the control
// package's tests).
func (n *Navigate) Goal() pathfinder.Goal { return n.goal }

func (n *Navigate) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	if !n.started {
		n.seed(local, glob)
		n.started = true
	}

	if local.Follower == nil {
		// Still waiting on the first A* slice to produce a path.
		return false
	}

	if local.Follower.ShouldRecalc(glob.World) {
		n.reseed(local, glob)
		return false
	}

	intent, status := local.Follower.Tick(local.Sim.Location, glob.World)
	switch status {
	case follower.Finished:
		local.Intent.Clear()
		local.Follower = nil
		local.Problem = nil
		return true
	case follower.Failed:
		// Try once more from where the agent actually is; a path that
		// went stale is not necessarily unsolvable.
		n.reseed(local, glob)
		return false
	default:
		local.Intent = intent
		return false
	}
}

func (n *Navigate) Expensive(deadline time.Time, local *agent.LocalState, glob *global.State) {
	if local.Problem == nil {
		return
	}
	status, path := local.Problem.IterateUntil(deadline)
	if status != pathfinder.Finished {
		return
	}
	local.Follower = follower.New(path, n.speed)
	local.LastProblem = local.Problem
	local.Problem = nil
}

func (n *Navigate) seed(local *agent.LocalState, glob *global.State) {
	start := local.Sim.Location.Block()
	gen := pathfinder.MoveGen{World: glob.World, Costs: glob.PathConfig}
	local.Problem = pathfinder.NewAStar(pathfinder.Node{Loc: start}, gen, n.heur, n.goal)
}

func (n *Navigate) reseed(local *agent.LocalState, glob *global.State) {
	local.Follower = nil
	start := local.Sim.Location.Block()
	if local.Problem == nil && local.LastProblem != nil {
		local.Problem = local.LastProblem
	}
	if local.Problem != nil {
		local.Problem.Recalc(pathfinder.Node{Loc: start})
		return
	}
	n.seed(local, glob)
}
