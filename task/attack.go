package task

import (
	"time"

	"github.com/SwarmBotMC/adamant/agent"
	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/pathfinder"
	"github.com/SwarmBotMC/adamant/physics"
	"github.com/SwarmBotMC/adamant/protocol/packet"
)

// attackRange is how close the agent must get before swinging, and
// attackCooldownTicks is the delay between swings: navigate to within
// range, then HitEntity and wait before the next swing.
const (
	attackRange         = 3
	attackCooldownTicks = 10
)

// AttackEntity repeatedly closes to melee range of a tracked entity and
// swings at it, re-navigating whenever the entity has moved out of
// range. It completes when the entity is no longer tracked (destroyed
// or out of view).
type AttackEntity struct {
	BaseTask
	EntityID int32

	nav   *Navigate
	delay *Delay
}

// NewAttackEntity builds an AttackEntity task against the given tracked
// entity id.
func NewAttackEntity(entityID int32) *AttackEntity {
	return &AttackEntity{EntityID: entityID}
}

func (a *AttackEntity) Tick(out *agent.OutQueue, local *agent.LocalState, glob *global.State) bool {
	ent, ok := glob.Entities.Get(a.EntityID)
	if !ok {
		return true
	}

	if a.nav != nil {
		if !a.nav.Tick(out, local, glob) {
			return false
		}
		a.nav = nil
	}

	if a.delay != nil {
		if !a.delay.Tick(out, local, glob) {
			return false
		}
		a.delay = nil
	}

	target := ent.Location.Block()
	dx := float64(target.X) - local.Sim.Location.X()
	dz := float64(target.Z) - local.Sim.Location.Z()
	if dx*dx+dz*dz > attackRange*attackRange {
		goal := pathfinder.BlockNearGoal{Target: target.To2D(), Radius: attackRange - 0.5, ExcludeExact: true}
		heur := pathfinder.BlockHeuristic(target, glob.PathConfig.BlockWalk)
		a.nav = NewNavigate(goal, heur, physics.SpeedSprint)
		return false
	}

	out.Send(&packet.InteractEntity{EntityID: a.EntityID, Type: 1})
	a.delay = NewDelay(attackCooldownTicks)
	return false
}

// Expensive forwards to the in-flight Navigate, so its A* slices actually
// run; AttackEntity drives nav directly rather than through a Compound.
func (a *AttackEntity) Expensive(deadline time.Time, local *agent.LocalState, glob *global.State) {
	if a.nav != nil {
		a.nav.Expensive(deadline, local, glob)
	}
}
