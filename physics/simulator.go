package physics

import (
	"math"

	"github.com/SwarmBotMC/adamant/world"
)

// Face indices match the wire encoding used by PlaceBlock/PlayerDig.
const (
	FaceDown int32 = iota
	FaceUp
	FaceNorth
	FaceSouth
	FaceWest
	FaceEast
)

// Actions is what a physics tick committed, so the protocol layer can
// emit matching packets.
type Actions struct {
	Moved     bool
	Looked    bool
	Teleported bool
	Placed    *PlaceResult
}

// PlaceResult is a committed block placement: the target block and the
// face it was placed against.
type PlaceResult struct {
	Target world.BlockLocation
	Face   int32
}

// Simulator holds one agent's kinematic state between ticks.
type Simulator struct {
	Location world.Location
	Velocity world.Displacement
	Yaw, Pitch float64
	OnGround bool
	inWater  bool
	prevFriction float64
}

// NewSimulator starts a simulator at rest at loc.
func NewSimulator(loc world.Location) *Simulator {
	return &Simulator{Location: loc}
}

// Tick advances the simulation by one 50ms step given this tick's intent
// and the shared world, returning what was committed.
func (s *Simulator) Tick(in Intent, w *world.WorldBlocks) Actions {
	var out Actions

	if in.Teleport != nil {
		s.Location = *in.Teleport
		s.Location = world.NewLocation(s.Location.X(), s.Location.Y()+0.001, s.Location.Z())
		s.Velocity = world.Displacement{}
		out.Teleported = true
		return out
	}

	if in.LookAt != nil {
		s.lookAtPoint(*in.LookAt)
		out.Looked = true
	} else if in.LookDir != nil {
		s.lookAtDirection(*in.LookDir)
		out.Looked = true
	}

	moveDirX, moveDirZ := s.moveDirection(in)
	speedMult := speedMultiplier(in.Speed)
	effectMult := EffectsMultiplier(in.SpeedLevel, in.SlownessLevel)

	floorBlock := s.Location.Block().Add(0, -1, 0)
	headType := w.GetBlockSimple(s.Location.Block().Add(0, 1, 0))
	feetType := w.GetBlockSimple(s.Location.Block())
	s.inWater = feetType == world.Water || headType == world.Water

	switch {
	case s.inWater:
		s.tickWater(in, moveDirX, moveDirZ, speedMult)
	default:
		s.tickLand(in, moveDirX, moveDirZ, speedMult, effectMult, floorBlock, w)
	}

	// Movement uses this tick's velocity as it stands right now (including
	// a just-set jump velocity); gravity's decay of that same velocity is
	// deferred until after the move, so the position update integrates
	// against the undecayed value. This is the one place the simulation
	// departs from a pure "decay then move" order, and matches vanilla's
	// measured jump height where the two orders disagree.
	dPos, vCollided := s.resolveCollision(w)
	s.Location = s.Location.Add(dPos)
	out.Moved = dPos.Len() > collisionEpsilon

	if !vCollided && !s.inWater {
		s.Velocity[1] = (s.Velocity[1] - Gravity) * VerticalDrag
	}

	if in.Place != nil {
		w.SetBlock(in.Place.Target, world.NewBlockState(0, 0)) // placeholder state; caller resolves real id
		face := bestFace(in.Place.Target, s.eye())
		out.Placed = &PlaceResult{Target: in.Place.Target, Face: face}
	}

	return out
}

func (s *Simulator) eye() world.Location {
	return world.NewLocation(s.Location.X(), s.Location.Y()+EyeHeight, s.Location.Z())
}

// Eye returns the agent's current eye position, used by tasks that need
// to aim a look-at or face selection outside a physics tick.
func (s *Simulator) Eye() world.Location { return s.eye() }

func speedMultiplier(sp Speed) float64 {
	switch sp {
	case SpeedSneak:
		return 0.3 * 0.98
	case SpeedWalk:
		return 1.0 * 0.98
	case SpeedSprint:
		return 1.3 * 0.98
	default:
		return 0
	}
}

// moveDirection resolves Strafe+Line intents, relative to yaw, into a
// normalized horizontal direction.
func (s *Simulator) moveDirection(in Intent) (float64, float64) {
	var fx, fz float64
	switch in.Line {
	case LineForward:
		fz = 1
	case LineBack:
		fz = -1
	}
	var sx float64
	switch in.Strafe {
	case StrafeLeft:
		sx = 1
	case StrafeRight:
		sx = -1
	}
	if fx == 0 && fz == 0 && sx == 0 {
		return 0, 0
	}
	yawRad := s.Yaw * math.Pi / 180
	sin, cos := math.Sin(yawRad), math.Cos(yawRad)
	// Rotate the (strafe, line) input by yaw, matching the client's
	// movement-relative-to-facing convention.
	dx := sx*cos - fz*sin
	dz := fz*cos + sx*sin
	length := math.Hypot(dx, dz)
	if length < 1e-9 {
		return 0, 0
	}
	return dx / length, dz / length
}

func (s *Simulator) tickLand(in Intent, moveDirX, moveDirZ, speedMult, effectMult float64, floorBlock world.BlockLocation, w *world.WorldBlocks) {
	slip := DefaultSlip
	if s.OnGround {
		if approx := w.GetBlock(floorBlock); approx.IsRealized() {
			if state, ok := approx.State(); ok {
				slip = SlipFor(state.ID())
			}
		}
	}
	// Friction is the previous tick's slip*0.91, applied before this tick's
	// sprint-jump boost and acceleration.
	s.Velocity[0] *= s.prevFriction
	s.Velocity[2] *= s.prevFriction
	wasOnGround := s.OnGround
	if in.Jump && s.OnGround {
		s.Velocity[1] = JumpBaseVelocity + JumpBoostPerLevel*0 // jump boost level wired at 0 absent an effects model
		if in.Speed == SpeedSprint {
			s.Velocity[0] += moveDirX * SprintJumpBoost
			s.Velocity[2] += moveDirZ * SprintJumpBoost
		}
		s.OnGround = false
	}

	if wasOnGround {
		s.prevFriction = slip * GroundDamping
		accel := GroundAccelBase * effectMult * math.Pow(0.6/slip, 3) * speedMult
		s.Velocity[0] += accel * moveDirX
		s.Velocity[2] += accel * moveDirZ
	} else {
		s.prevFriction = AirSlip * GroundDamping
		accel := AirAccel * speedMult
		s.Velocity[0] += accel * moveDirX
		s.Velocity[2] += accel * moveDirZ
	}
}

func (s *Simulator) tickWater(in Intent, moveDirX, moveDirZ, speedMult float64) {
	s.Velocity[0] = WaterHorizontalDamping*s.Velocity[0] + WaterHorizontalAccel*moveDirX*speedMult
	s.Velocity[2] = WaterHorizontalDamping*s.Velocity[2] + WaterHorizontalAccel*moveDirZ*speedMult

	vy := WaterVerticalDamping*s.Velocity[1] - WaterVerticalDrag
	if in.Jump {
		vy += WaterJumpBoost
	}
	// Flowing-water drag is not modeled without per-block flow vectors;
	// treat all water as flowing, matching the conservative (slower) case.
	vy -= WaterFlowingDrag
	if vy < 0 && s.OnGround {
		vy = 0
	}
	s.Velocity[1] = vy
}

func (s *Simulator) lookAtDirection(d world.Displacement) {
	s.Yaw = math.Atan2(-d[0], d[2]) * 180 / math.Pi
	horiz := math.Hypot(d[0], d[2])
	s.Pitch = -math.Atan2(d[1], horiz) * 180 / math.Pi
}

func (s *Simulator) lookAtPoint(target world.Location) {
	eye := s.eye()
	d := target.Sub(eye)
	s.lookAtDirection(d)
}

// BestFace picks the face of loc whose center minimizes squared distance
// to eye. Exported so tasks outside this package (Mine, Bridge) can pick
// a dig/place face without duplicating the rule.
func BestFace(loc world.BlockLocation, eye world.Location) int32 {
	return bestFace(loc, eye)
}

// bestFace picks the face whose center minimizes squared distance to eye.
func bestFace(loc world.BlockLocation, eye world.Location) int32 {
	best := FaceDown
	bestDist := math.MaxFloat64
	for face := FaceDown; face <= FaceEast; face++ {
		c := faceCenter(loc, face)
		dx, dy, dz := c.X()-eye.X(), c.Y()-eye.Y(), c.Z()-eye.Z()
		d := dx*dx + dy*dy + dz*dz
		if d < bestDist {
			bestDist = d
			best = face
		}
	}
	return best
}

func faceCenter(loc world.BlockLocation, face int32) world.Location {
	x, y, z := float64(loc.X)+0.5, float64(loc.Y)+0.5, float64(loc.Z)+0.5
	switch face {
	case FaceDown:
		return world.NewLocation(x, float64(loc.Y), z)
	case FaceUp:
		return world.NewLocation(x, float64(loc.Y)+1, z)
	case FaceNorth:
		return world.NewLocation(x, y, float64(loc.Z))
	case FaceSouth:
		return world.NewLocation(x, y, float64(loc.Z)+1)
	case FaceWest:
		return world.NewLocation(float64(loc.X), y, z)
	default: // FaceEast
		return world.NewLocation(float64(loc.X)+1, y, z)
	}
}
