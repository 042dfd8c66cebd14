package physics

import "github.com/SwarmBotMC/adamant/world"

// Strafe is a per-tick left/right intent.
type Strafe int

const (
	StrafeNone Strafe = iota
	StrafeLeft
	StrafeRight
)

// Line is a per-tick forward/back intent.
type Line int

const (
	LineNone Line = iota
	LineForward
	LineBack
)

// Speed selects the agent's target movement speed for the tick.
type Speed int

const (
	SpeedStop Speed = iota
	SpeedSneak
	SpeedWalk
	SpeedSprint
)

// PlaceIntent asks the physics step to place a block against Target's
// Face this tick.
type PlaceIntent struct {
	Target world.BlockLocation
	Face   int32
}

// Intent collects one tick's physics inputs; consumed and cleared every
// tick.
type Intent struct {
	Strafe      Strafe
	Line        Line
	Jump        bool
	Speed       Speed
	LookDir     *world.Displacement
	LookAt      *world.Location
	Place       *PlaceIntent
	Teleport    *world.Location
	SpeedLevel  float64
	SlownessLevel float64
}

// Clear resets the intent to its zero value, ready for the next tick.
func (i *Intent) Clear() { *i = Intent{} }
