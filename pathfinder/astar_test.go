package pathfinder

import (
	"testing"
	"time"

	"github.com/SwarmBotMC/adamant/global"
	"github.com/SwarmBotMC/adamant/protocol/codec"
	"github.com/SwarmBotMC/adamant/protocol/packet"
	"github.com/SwarmBotMC/adamant/world"
)

// flatColumn builds one GroundUpContinuous ChunkData for (cx,cz) that is
// solid stone at every y<=floorY and air above, so the resulting column
// reports Realized for every GetBlock query within it.
func flatColumn(cx, cz int32, floorY int32) *packet.ChunkData {
	const stoneGlobalID = int32(1) << 4 // id=1, metadata=0
	cd := &packet.ChunkData{ChunkX: cx, ChunkZ: cz, GroundUpContinuous: true, Biomes: make([]uint8, 256)}
	for i := 0; i < 16; i++ {
		sec := packet.ChunkSectionRaw{BitsPerBlock: 4, Palette: []int32{0, stoneGlobalID}}
		sec.DataArray = make([]uint64, codec.WordsForPalette(4096, 4))
		for ly := 0; ly < 16; ly++ {
			y := int32(i*16 + ly)
			if y > floorY {
				continue
			}
			for lx := 0; lx < 16; lx++ {
				for lz := 0; lz < 16; lz++ {
					idx := (ly*16+lz)*16 + lx
					codec.WritePaletteIndex(sec.DataArray, idx, 4, 1)
				}
			}
		}
		cd.Sections = append(cd.Sections, sec)
		cd.PrimaryBitMask |= 1 << uint(i)
	}
	return cd
}

// loadedFlatWorld builds a superflat world with a solid floor at
// y in [0, floorY] across a 5x5 chunk area centered on the origin.
func loadedFlatWorld(t *testing.T, floorY int32) *world.WorldBlocks {
	t.Helper()
	w := world.NewWorldBlocks()
	for cx := int32(-2); cx <= 2; cx++ {
		for cz := int32(-2); cz <= 2; cz++ {
			w.ApplyChunkData(flatColumn(cx, cz, floorY))
		}
	}
	return w
}

func TestAStarStraightLinePath(t *testing.T) {
	w := loadedFlatWorld(t, 4)
	gen := MoveGen{World: w, Costs: global.DefaultPathConfig()}
	start := Node{Loc: world.BlockLocation{X: 0, Y: 5, Z: 0}}
	target := world.BlockLocation{X: 5, Y: 5, Z: 0}
	heur := BlockHeuristic(target, gen.Costs.BlockWalk)
	goal := BlockGoal{Target: target}

	a := NewAStar(start, gen, heur, goal)
	status, path := a.IterateUntil(time.Now().Add(time.Second))
	if status != Finished {
		t.Fatalf("expected Finished, got InProgress")
	}
	if len(path) == 0 {
		t.Fatal("expected non-empty path")
	}
	last := path[len(path)-1]
	if !goal.Check(last) {
		t.Fatalf("path does not reach goal: last=%v", last)
	}
	g, ok := a.GScore(last)
	if !ok {
		t.Fatal("missing gscore for final node")
	}
	wantSteps := 5.0
	wantCost := wantSteps * gen.Costs.BlockWalk
	if g < wantCost-1e-9 || g > wantCost+1e-9*10 {
		// Allow the search to find an equal-or-cheaper diagonal-free route;
		// cost should never be cheaper than the Manhattan lower bound.
		if g < wantCost-1e-6 {
			t.Fatalf("gscore %v cheaper than lower bound %v", g, wantCost)
		}
	}
}

func TestAStarRecalcResetsState(t *testing.T) {
	w := loadedFlatWorld(t, 4)
	gen := MoveGen{World: w, Costs: global.DefaultPathConfig()}
	target := world.BlockLocation{X: 3, Y: 5, Z: 0}
	heur := BlockHeuristic(target, gen.Costs.BlockWalk)
	goal := BlockGoal{Target: target}

	a := NewAStar(Node{Loc: world.BlockLocation{X: 0, Y: 5, Z: 0}}, gen, heur, goal)
	status, _ := a.IterateUntil(time.Now().Add(time.Second))
	if status != Finished {
		t.Fatal("expected first search to finish")
	}

	a.Recalc(Node{Loc: world.BlockLocation{X: 1, Y: 5, Z: 0}})
	status, path := a.IterateUntil(time.Now().Add(time.Second))
	if status != Finished {
		t.Fatal("expected recalculated search to finish")
	}
	if path[0] != (world.BlockLocation{X: 1, Y: 5, Z: 0}) {
		t.Fatalf("expected path to start from new seed, got %v", path[0])
	}
}

func TestAStarEdgeYieldsBestPartial(t *testing.T) {
	// A world with no loaded chunks at all: every GetBlock call reports
	// Estimate (not Realized), so the very first Generate call returns the
	// Edge sentinel and the search must finish immediately with just the
	// start node.
	w := world.NewWorldBlocks()
	gen := MoveGen{World: w, Costs: global.DefaultPathConfig()}
	target := world.BlockLocation{X: 50, Y: 5, Z: 50}
	heur := BlockHeuristic(target, gen.Costs.BlockWalk)
	goal := BlockGoal{Target: target}

	a := NewAStar(Node{Loc: world.BlockLocation{X: 0, Y: 5, Z: 0}}, gen, heur, goal)
	status, path := a.IterateUntil(time.Now().Add(time.Second))
	if status != Finished {
		t.Fatal("expected Finished on immediate edge")
	}
	if len(path) != 1 || path[0] != (world.BlockLocation{X: 0, Y: 5, Z: 0}) {
		t.Fatalf("expected single-node best-effort path, got %v", path)
	}
}

func TestAStarDeadlineReturnsInProgress(t *testing.T) {
	w := loadedFlatWorld(t, 4)
	gen := MoveGen{World: w, Costs: global.DefaultPathConfig()}
	target := world.BlockLocation{X: 40, Y: 5, Z: 40}
	heur := BlockHeuristic(target, gen.Costs.BlockWalk)
	goal := BlockGoal{Target: target}

	a := NewAStar(Node{Loc: world.BlockLocation{X: 0, Y: 5, Z: 0}}, gen, heur, goal)
	status, path := a.IterateUntil(time.Now().Add(-time.Second))
	if status != InProgress {
		t.Fatalf("expected InProgress with an already-past deadline, got %v", status)
	}
	if path != nil {
		t.Fatal("expected nil path while InProgress")
	}
}
