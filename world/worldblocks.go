package world

import (
	"container/heap"
	"sync"

	"github.com/SwarmBotMC/adamant/protocol/packet"
)

// WorldBlocks owns the chunk column map. Columns are created when a
// ChunkData packet arrives for an unseen location (whatever its
// GroundUpContinuous flag); once created a column is never deleted.
type WorldBlocks struct {
	mu      sync.RWMutex
	columns map[ChunkLocation]*ChunkColumn
}

func NewWorldBlocks() *WorldBlocks {
	return &WorldBlocks{columns: make(map[ChunkLocation]*ChunkColumn)}
}

// ApplyChunkData installs or merges a decoded ChunkData packet: created,
// replaced, or partially merged, but never deleted.
func (w *WorldBlocks) ApplyChunkData(cd *packet.ChunkData) {
	loc := ChunkLocation{CX: cd.ChunkX, CZ: cd.ChunkZ}
	w.mu.Lock()
	defer w.mu.Unlock()
	col, ok := w.columns[loc]
	if !ok {
		col = newChunkColumn(loc)
		w.columns[loc] = col
	}
	col.applyRaw(cd)
}

// GetBlock returns a Realized BlockApprox for any loaded chunk, or an
// Estimate(WalkThrough) for an unloaded one (air is assumed until data
// arrives).
func (w *WorldBlocks) GetBlock(loc BlockLocation) BlockApprox {
	w.mu.RLock()
	defer w.mu.RUnlock()
	col, ok := w.columns[loc.Chunk()]
	if !ok {
		return Estimate(WalkThrough)
	}
	return Realized(col.get(int(loc.X&15), int(loc.Y), int(loc.Z&15)))
}

// GetBlockSimple is the hot-path SimpleType projection used by physics
// and pathfinding.
func (w *WorldBlocks) GetBlockSimple(loc BlockLocation) SimpleType {
	return w.GetBlock(loc).SimpleType()
}

// SetBlock mutates a single block; a no-op when the containing chunk is
// not loaded, since the server will resend it on reload.
func (w *WorldBlocks) SetBlock(loc BlockLocation, state BlockState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	col, ok := w.columns[loc.Chunk()]
	if !ok {
		return
	}
	col.set(int(loc.X&15), int(loc.Y), int(loc.Z&15), state)
}

// ApplyBlockChange is a convenience wrapper for the inbound BlockChange
// and MultiBlockChange packets.
func (w *WorldBlocks) ApplyBlockChange(loc BlockLocation, globalID int32) {
	w.SetBlock(loc, FromGlobalID(globalID))
}

// YSlice returns every block within a ±radius horizontal square of
// center, at every loaded y, matching predicate. Used by mining to pick
// the next block in the current layer.
func (w *WorldBlocks) YSlice(center BlockLocation2D, radius int32, predicate func(BlockLocation, BlockState) bool) []BlockLocation {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []BlockLocation
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			col, ok := w.columns[ChunkLocationOf(x, z)]
			if !ok {
				continue
			}
			for y := 0; y < 256; y++ {
				state := col.get(int(x&15), y, int(z&15))
				loc := BlockLocation{X: x, Y: int32(y), Z: z}
				if predicate(loc, state) {
					out = append(out, loc)
				}
			}
		}
	}
	return out
}

// FirstBelow walks downward from loc until a solid or water block,
// returning it; used for bucket-fall placement.
func (w *WorldBlocks) FirstBelow(loc BlockLocation) (BlockLocation, BlockState, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	col, ok := w.columns[loc.Chunk()]
	if !ok {
		return BlockLocation{}, Air, false
	}
	for y := loc.Y - 1; y >= 0; y-- {
		state := col.get(int(loc.X&15), int(y), int(loc.Z&15))
		switch ClassifySimpleType(state) {
		case Solid, Water:
			return BlockLocation{X: loc.X, Y: y, Z: loc.Z}, state, true
		}
	}
	return BlockLocation{}, Air, false
}

// chunkDistItem is one entry in Select's distance-ordered min-heap.
type chunkDistItem struct {
	loc    ChunkLocation
	distSq float64
}

type chunkHeap []chunkDistItem

func (h chunkHeap) Len() int            { return len(h) }
func (h chunkHeap) Less(i, j int) bool  { return h[i].distSq < h[j].distSq }
func (h chunkHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *chunkHeap) Push(x any)         { *h = append(*h, x.(chunkDistItem)) }
func (h *chunkHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Select iterates the maxChunks loaded chunk columns with smallest
// squared distance (to the nearest chunk corner) from around, yielding
// every block within them matching predicate.
func (w *WorldBlocks) Select(around BlockLocation2D, maxChunks int, predicate func(BlockLocation, BlockState) bool) []BlockLocation {
	w.mu.RLock()
	defer w.mu.RUnlock()

	h := make(chunkHeap, 0, len(w.columns))
	for loc := range w.columns {
		heap.Push(&h, chunkDistItem{loc: loc, distSq: loc.DistSqToCorner(around)})
	}

	var out []BlockLocation
	for i := 0; i < maxChunks && h.Len() > 0; i++ {
		item := heap.Pop(&h).(chunkDistItem)
		col := w.columns[item.loc]
		for y := 0; y < 256; y++ {
			for z := 0; z < 16; z++ {
				for x := 0; x < 16; x++ {
					state := col.get(x, y, z)
					loc := BlockLocation{X: item.loc.CX*16 + int32(x), Y: int32(y), Z: item.loc.CZ*16 + int32(z)}
					if predicate(loc, state) {
						out = append(out, loc)
					}
				}
			}
		}
	}
	return out
}
