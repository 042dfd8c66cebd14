package world

import (
	"testing"

	"github.com/SwarmBotMC/adamant/protocol/packet"
)

func loadEmptyColumn(w *WorldBlocks, cx, cz int32) {
	w.ApplyChunkData(&packet.ChunkData{ChunkX: cx, ChunkZ: cz, GroundUpContinuous: true})
}

func TestSetGetBlockRoundTrip(t *testing.T) {
	w := NewWorldBlocks()
	loadEmptyColumn(w, 0, 0)

	loc := BlockLocation{X: 5, Y: 70, Z: 9}
	state := NewBlockState(1, 0) // stone
	w.SetBlock(loc, state)

	got := w.GetBlock(loc)
	gotState, ok := got.State()
	if !ok || gotState != state {
		t.Fatalf("GetBlock(%v) = %v, want realized %v", loc, got, state)
	}

	other := BlockLocation{X: 6, Y: 70, Z: 9}
	otherGot := w.GetBlock(other)
	if s, ok := otherGot.State(); ok && s != Air {
		t.Fatalf("unrelated coordinate %v perturbed: got %v", other, s)
	}
}

func TestSetBlockNoopOnUnloadedChunk(t *testing.T) {
	w := NewWorldBlocks()
	loc := BlockLocation{X: 1000, Y: 64, Z: 1000}
	w.SetBlock(loc, NewBlockState(1, 0))
	got := w.GetBlock(loc)
	if got.IsRealized() {
		t.Fatalf("expected unloaded chunk to stay unrealized, got %v", got)
	}
}

func TestPaletteGrowthPreservesMappings(t *testing.T) {
	w := NewWorldBlocks()
	loadEmptyColumn(w, 0, 0)

	type entry struct {
		loc   BlockLocation
		state BlockState
	}
	var entries []entry
	for i := int32(0); i < 40; i++ {
		loc := BlockLocation{X: i % 16, Y: 0, Z: i / 16}
		state := NewBlockState(i+1, 0)
		w.SetBlock(loc, state)
		entries = append(entries, entry{loc, state})
	}

	for _, e := range entries {
		got := w.GetBlock(e.loc)
		s, ok := got.State()
		if !ok || s != e.state {
			t.Fatalf("after growth, GetBlock(%v) = %v, want %v", e.loc, got, e.state)
		}
	}
}

func TestGetBlockSimpleAirOnUnloaded(t *testing.T) {
	w := NewWorldBlocks()
	if got := w.GetBlockSimple(BlockLocation{X: 500, Y: 64, Z: 500}); got != WalkThrough {
		t.Fatalf("GetBlockSimple on unloaded chunk = %v, want WalkThrough", got)
	}
}

func TestYSliceFindsPlacedBlock(t *testing.T) {
	w := NewWorldBlocks()
	loadEmptyColumn(w, 0, 0)
	target := BlockLocation{X: 3, Y: 10, Z: 3}
	w.SetBlock(target, NewBlockState(1, 0))

	found := w.YSlice(BlockLocation2D{X: 0, Z: 0}, 5, func(loc BlockLocation, s BlockState) bool {
		return s.ID() == 1
	})
	var ok bool
	for _, loc := range found {
		if loc == target {
			ok = true
		}
	}
	if !ok {
		t.Fatalf("YSlice did not find %v among %v", target, found)
	}
}
