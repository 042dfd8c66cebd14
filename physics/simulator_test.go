package physics

import (
	"math"
	"testing"

	"github.com/SwarmBotMC/adamant/protocol/packet"
	"github.com/SwarmBotMC/adamant/world"
)

// flatFloor builds a world whose only solid blocks are a single y-layer
// spanning [minX,maxX]x[minZ,maxZ], loading every chunk column the range
// touches; everything else (including above the floor) stays air.
func flatFloor(minX, maxX, minZ, maxZ, y int32) *world.WorldBlocks {
	w := world.NewWorldBlocks()
	for cx := minX >> 4; cx <= maxX>>4; cx++ {
		for cz := minZ >> 4; cz <= maxZ>>4; cz++ {
			w.ApplyChunkData(&packet.ChunkData{ChunkX: cx, ChunkZ: cz, GroundUpContinuous: true})
		}
	}
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			w.SetBlock(world.BlockLocation{X: x, Y: y, Z: z}, world.NewBlockState(1, 0)) // stone
		}
	}
	return w
}

// settle runs four no-op ticks so a player placed on the floor is
// standing on the ground, and a timed scenario starts from a stable resting state rather
// than the first-tick "falling" transient.
func settle(s *Simulator, w *world.WorldBlocks) {
	for i := 0; i < 4; i++ {
		s.Tick(Intent{}, w)
	}
}

// TestFlatWorldSprint covers spec scenario 1: from (0,1,0) looking along
// +x, sprinting forward every tick until x >= 100 takes 358±1 ticks.
func TestFlatWorldSprint(t *testing.T) {
	w := flatFloor(-2, 115, -2, 2, 0)
	s := NewSimulator(world.NewLocation(0, 1, 0))
	s.Yaw = -90 // look along +x, per moveDirection's yaw convention
	settle(s, w)

	ticks := 0
	for s.Location.X() < 100 && ticks < 1000 {
		s.Tick(Intent{Line: LineForward, Speed: SpeedSprint}, w)
		ticks++
	}

	if ticks < 357 || ticks > 359 {
		t.Fatalf("sprint to x>=100 took %d ticks, want 358+-1", ticks)
	}
}

// TestFlatWorldSprintJump covers spec scenario 2: sprint+forward+jump
// every tick from the same start takes 286±1 ticks to reach x >= 100.
func TestFlatWorldSprintJump(t *testing.T) {
	w := flatFloor(-2, 115, -2, 2, 0)
	s := NewSimulator(world.NewLocation(0, 1, 0))
	s.Yaw = -90
	settle(s, w)

	ticks := 0
	for s.Location.X() < 100 && ticks < 1000 {
		s.Tick(Intent{Line: LineForward, Speed: SpeedSprint, Jump: true}, w)
		ticks++
	}

	if ticks < 285 || ticks > 287 {
		t.Fatalf("sprint-jump to x>=100 took %d ticks, want 286+-1", ticks)
	}
}

// TestJumpApex covers spec scenario 3: a single jump from flat ground
// peaks at y=2.25221+-0.001 and returns to the ground in exactly 12
// ticks.
func TestJumpApex(t *testing.T) {
	w := flatFloor(-2, 2, -2, 2, 0)
	s := NewSimulator(world.NewLocation(0, 1, 0))
	settle(s, w)

	maxY := s.Location.Y()
	landedAt := -1
	for tick := 1; tick <= 20; tick++ {
		intent := Intent{}
		if tick == 1 {
			intent.Jump = true
		}
		s.Tick(intent, w)
		if s.Location.Y() > maxY {
			maxY = s.Location.Y()
		}
		if tick > 1 && s.OnGround && landedAt == -1 {
			landedAt = tick
			break
		}
	}

	if landedAt != 12 {
		t.Fatalf("landed at tick %d, want 12", landedAt)
	}
	if math.Abs(maxY-2.25221) > 0.001 {
		t.Fatalf("jump apex y = %v, want 2.25221+-0.001", maxY)
	}
}
