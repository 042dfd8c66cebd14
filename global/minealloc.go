package global

import (
	"sort"
	"sync"
)

// RegionWidth is the width of one queued mine region: each queued mine
// region is a RegionWidth x RegionWidth column extending full height.
const RegionWidth = 7

// Region is the bottom-left (x,z) corner of one queued mine region.
type Region struct {
	X, Z int32
}

// DistancePreference selects which reference point region ordering uses.
type DistancePreference int

const (
	// FromDist orders regions nearest-first to the reference point
	// (typically the issuing agent's location).
	FromDist DistancePreference = iota
	// ToDist orders regions farthest-first.
	ToDist
)

// EnumerateRegions tiles the rectangle [from, to] (inclusive, coordinates
// in either order) into RegionWidth x RegionWidth columns covering the
// requested rectangle, then orders them by squared distance from ref
// according to pref.
func EnumerateRegions(from, to [2]int32, ref [2]int32, pref DistancePreference) []Region {
	minX, maxX := from[0], to[0]
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minZ, maxZ := from[1], to[1]
	if minZ > maxZ {
		minZ, maxZ = maxZ, minZ
	}

	var regions []Region
	for z := minZ; z <= maxZ; z += RegionWidth {
		for x := minX; x <= maxX; x += RegionWidth {
			regions = append(regions, Region{X: x, Z: z})
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		di := distSq(regions[i], ref)
		dj := distSq(regions[j], ref)
		if pref == ToDist {
			return di > dj
		}
		return di < dj
	})
	return regions
}

func distSq(r Region, ref [2]int32) int64 {
	dx := int64(r.X - ref[0])
	dz := int64(r.Z - ref[1])
	return dx*dx + dz*dz
}

// MineAlloc is the shared queue of pending mine regions. A new batch only
// replaces the queue when it is currently empty, so concurrent commands
// from multiple agents don't compound.
type MineAlloc struct {
	mu     sync.Mutex
	queue  []Region
}

func NewMineAlloc() *MineAlloc { return &MineAlloc{} }

// TryEnqueue installs regions as the pending queue iff it is currently
// empty, returning whether it did so.
func (m *MineAlloc) TryEnqueue(regions []Region) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) != 0 {
		return false
	}
	m.queue = regions
	return true
}

// Dequeue pops the next region, if any.
func (m *MineAlloc) Dequeue() (Region, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return Region{}, false
	}
	r := m.queue[0]
	m.queue = m.queue[1:]
	return r, true
}

// Len reports how many regions remain pending.
func (m *MineAlloc) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}
