package physics

import (
	"math"

	"github.com/SwarmBotMC/adamant/world"
)

// resolveCollision applies s.Velocity against solid blocks in w, axis by
// axis in Y, X, Z order.
// It mutates s.Velocity (zeroing components that hit a block) and
// s.OnGround, and returns the displacement actually applied to Location
// along with whether the vertical axis collided this tick.
func (s *Simulator) resolveCollision(w *world.WorldBlocks) (world.Displacement, bool) {
	dy, vCollided := s.resolveVertical(w, s.Velocity[1])
	dx := s.resolveAxis(w, 0, s.Velocity[0])
	dz := s.resolveAxis(w, 2, s.Velocity[2])

	return world.NewDisplacement(dx, dy, dz), vCollided
}

func (s *Simulator) resolveVertical(w *world.WorldBlocks, delta float64) (float64, bool) {
	if delta == 0 {
		s.OnGround = s.groundBeneath(w)
		return 0, s.OnGround
	}

	x, y, z := s.Location.X(), s.Location.Y(), s.Location.Z()
	minX, maxX := x-PlayerHalf, x+PlayerHalf
	minZ, maxZ := z-PlayerHalf, z+PlayerHalf
	minY, maxY := y, y+PlayerHeight

	if delta < 0 {
		targetY := minY + delta
		if s.blocksSolidAtY(w, minX, maxX, minZ, maxZ, targetY) {
			s.Velocity[1] = 0
			s.OnGround = true
			// Rest on top of the solid block the feet would have
			// penetrated, not the block the feet started in.
			return math.Floor(targetY) + 1 - minY, true
		}
		s.OnGround = false
		return delta, false
	}

	targetY := maxY + delta
	if s.blocksSolidAtY(w, minX, maxX, minZ, maxZ, targetY) {
		s.Velocity[1] = 0
		// Stop just below the solid block the head would have
		// penetrated.
		return math.Floor(targetY) - maxY, true
	}
	return delta, false
}

// resolveAxis clamps a single horizontal-axis delta against solid blocks
// intersecting the player's AABB, zeroing velocity on collision.
func (s *Simulator) resolveAxis(w *world.WorldBlocks, axis int, delta float64) float64 {
	if delta == 0 {
		return 0
	}

	x, y, z := s.Location.X(), s.Location.Y(), s.Location.Z()
	minX, maxX := x-PlayerHalf, x+PlayerHalf
	minZ, maxZ := z-PlayerHalf, z+PlayerHalf
	minY, maxY := y, y+PlayerHeight

	switch axis {
	case 0:
		targetX := minX + delta
		if delta > 0 {
			targetX = maxX + delta
		}
		if s.blocksSolidAtX(w, targetX, minY, maxY, minZ, maxZ) {
			s.Velocity[0] = 0
			return 0
		}
		return delta
	default: // 2, Z
		targetZ := minZ + delta
		if delta > 0 {
			targetZ = maxZ + delta
		}
		if s.blocksSolidAtZ(w, targetZ, minY, maxY, minX, maxX) {
			s.Velocity[2] = 0
			return 0
		}
		return delta
	}
}

func (s *Simulator) groundBeneath(w *world.WorldBlocks) bool {
	return s.blocksSolidAtY(w, s.Location.X()-PlayerHalf, s.Location.X()+PlayerHalf,
		s.Location.Z()-PlayerHalf, s.Location.Z()+PlayerHalf, s.Location.Y()-collisionEpsilon)
}

func (s *Simulator) blocksSolidAtY(w *world.WorldBlocks, minX, maxX, minZ, maxZ, y float64) bool {
	blockY := int32(math.Floor(y))
	for bx := int32(math.Floor(minX)); bx <= int32(math.Floor(maxX)); bx++ {
		for bz := int32(math.Floor(minZ)); bz <= int32(math.Floor(maxZ)); bz++ {
			loc := world.BlockLocation{X: bx, Y: blockY, Z: bz}
			if w.GetBlockSimple(loc) == world.Solid {
				return true
			}
		}
	}
	return false
}

func (s *Simulator) blocksSolidAtX(w *world.WorldBlocks, x, minY, maxY, minZ, maxZ float64) bool {
	blockX := int32(math.Floor(x))
	for by := int32(math.Floor(minY)); by <= int32(math.Floor(maxY-collisionEpsilon)); by++ {
		for bz := int32(math.Floor(minZ)); bz <= int32(math.Floor(maxZ)); bz++ {
			loc := world.BlockLocation{X: blockX, Y: by, Z: bz}
			if w.GetBlockSimple(loc) == world.Solid {
				return true
			}
		}
	}
	return false
}

func (s *Simulator) blocksSolidAtZ(w *world.WorldBlocks, z, minY, maxY, minX, maxX float64) bool {
	blockZ := int32(math.Floor(z))
	for by := int32(math.Floor(minY)); by <= int32(math.Floor(maxY-collisionEpsilon)); by++ {
		for bx := int32(math.Floor(minX)); bx <= int32(math.Floor(maxX)); bx++ {
			loc := world.BlockLocation{X: bx, Y: by, Z: blockZ}
			if w.GetBlockSimple(loc) == world.Solid {
				return true
			}
		}
	}
	return false
}
