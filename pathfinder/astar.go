package pathfinder

import (
	"container/heap"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/SwarmBotMC/adamant/world"
)

// Status is the outcome of one IterateUntil slice.
type Status int

const (
	InProgress Status = iota
	Finished
)

// sliceCheckInterval bounds how often IterateUntil reads the wall clock;
// "a single slice may burn through many nodes; it
// checks the clock only between iterations", checking every node would
// dominate the cost of a cheap A* relaxation.
const sliceCheckInterval = 128

type openItem struct {
	node Node
	f    float64
}

type openHeap []openItem

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x any)         { *h = append(*h, x.(openItem)) }
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// memoKey hashes a block location into the search's "already expanded"
// memo table using cespare/xxhash/v2 as the pathfinder's hash function.
// The memo itself is the closed-set membership test below, kept across
// slices until Recalc; the hash
// lets AStar key it on a fixed-size uint64 instead of a struct key
// comparison for the hot path of very long searches.
func memoKey(loc world.BlockLocation) uint64 {
	var b [12]byte
	putI32(b[0:4], loc.X)
	putI32(b[4:8], loc.Y)
	putI32(b[8:12], loc.Z)
	return xxhash.Sum64(b[:])
}

func putI32(b []byte, v int32) {
	u := uint32(v)
	b[0] = byte(u >> 24)
	b[1] = byte(u >> 16)
	b[2] = byte(u >> 8)
	b[3] = byte(u)
}

// AStar owns one search's open set, g-score table, and parent table as
// plain values; Recalc discards all of
// it and reseeds from a new start.
type AStar struct {
	gen  MoveGen
	heur Heuristic
	goal Goal

	open    openHeap
	gScore  map[world.BlockLocation]float64
	parent  map[world.BlockLocation]world.BlockLocation
	closed  map[uint64]bool
	start   world.BlockLocation
	bestLoc world.BlockLocation
	bestH   float64
	done    bool
	result  []world.BlockLocation
}

// NewAStar creates a search seeded at start.
func NewAStar(start Node, gen MoveGen, heur Heuristic, goal Goal) *AStar {
	a := &AStar{gen: gen, heur: heur, goal: goal}
	a.Recalc(start)
	return a
}

// Recalc discards any in-progress search state and reseeds from
// newStart
func (a *AStar) Recalc(newStart Node) {
	a.open = nil
	a.gScore = map[world.BlockLocation]float64{newStart.Loc: 0}
	a.parent = map[world.BlockLocation]world.BlockLocation{}
	a.closed = map[uint64]bool{}
	a.start = newStart.Loc
	a.bestLoc = newStart.Loc
	a.bestH = a.heur(newStart.Loc)
	a.done = false
	a.result = nil
	heap.Push(&a.open, openItem{node: newStart, f: a.bestH})
}

// IterateUntil burns through open-set nodes until either the goal is
// reached, the move generator hits an unloaded chunk, the open set is
// exhausted, or deadline passes — whichever comes first. A call after
// Finished has already been returned replays the cached result.
func (a *AStar) IterateUntil(deadline time.Time) (Status, []world.BlockLocation) {
	if a.done {
		return Finished, a.result
	}

	iterations := 0
	for a.open.Len() > 0 {
		iterations++
		if iterations%sliceCheckInterval == 0 && time.Now().After(deadline) {
			return InProgress, nil
		}

		item := heap.Pop(&a.open).(openItem)
		loc := item.node.Loc
		key := memoKey(loc)
		if a.closed[key] {
			continue
		}
		a.closed[key] = true

		if a.goal.Check(loc) {
			return a.finish(loc)
		}

		moves, edge := a.gen.Generate(item.node)
		if edge {
			return a.finish(a.bestLoc)
		}

		g := a.gScore[loc]
		for _, mv := range moves {
			ng := g + mv.Cost
			to := mv.To.Loc
			if existing, ok := a.gScore[to]; ok && existing <= ng {
				continue
			}
			a.gScore[to] = ng
			a.parent[to] = loc
			h := a.heur(to)
			if h < a.bestH {
				a.bestH = h
				a.bestLoc = to
			}
			heap.Push(&a.open, openItem{node: Node{Loc: to, Budget: mv.To.Budget}, f: ng + h})
		}
	}

	// Open set exhausted without reaching the goal: yield the best
	// partial path found Edge behavior.
	return a.finish(a.bestLoc)
}

func (a *AStar) finish(loc world.BlockLocation) (Status, []world.BlockLocation) {
	a.done = true
	a.result = a.reconstruct(loc)
	return Finished, a.result
}

func (a *AStar) reconstruct(loc world.BlockLocation) []world.BlockLocation {
	path := []world.BlockLocation{loc}
	cur := loc
	for cur != a.start {
		p, ok := a.parent[cur]
		if !ok {
			break
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// GScore exposes the accumulated cost to loc, used by tests verifying
// "total g-score equals sum of per-edge costs" property.
func (a *AStar) GScore(loc world.BlockLocation) (float64, bool) {
	g, ok := a.gScore[loc]
	return g, ok
}
