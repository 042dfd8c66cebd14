package world

import (
	"math/bits"

	"github.com/SwarmBotMC/adamant/protocol/codec"
)

const sectionBlockCount = 16 * 16 * 16

// minIndirectBits and maxIndirectBits bound the indirect palette's
// bits-per-block growth range. directBits is wide enough to hold any
// BlockState's global id (block_id:12 | metadata:4, stored in a uint16)
// without truncation once a section switches to direct.
const (
	minIndirectBits = 4
	maxIndirectBits = 8
	directBits      = 16
)

// Palette maps a section's packed block indices to BlockStates. It is
// either indirect (a small lookup table plus narrow indices) or direct
// (indices are themselves global block state ids), switching
// automatically as distinct states accumulate.
type Palette struct {
	bits   int
	lookup []BlockState          // nil when direct
	index  map[BlockState]uint32 // nil when direct
	words  []uint64
}

// NewIndirectPalette creates an all-air section palette (Air at index 0)
// starting at the minimum bits-per-block.
func NewIndirectPalette() *Palette {
	return &Palette{
		bits:   minIndirectBits,
		lookup: append(make([]BlockState, 0, 1<<minIndirectBits), Air),
		index:  map[BlockState]uint32{Air: 0},
		words:  make([]uint64, codec.WordsForPalette(sectionBlockCount, minIndirectBits)),
	}
}

func blockIndex(x, y, z int) int { return (y*16+z)*16 + x }

// Get returns the BlockState at the given section-local (x,y,z).
func (p *Palette) Get(x, y, z int) BlockState {
	raw := codec.ExtractPaletteIndex(p.words, blockIndex(x, y, z), p.bits)
	if p.lookup == nil {
		return FromGlobalID(int32(raw))
	}
	if int(raw) >= len(p.lookup) {
		return Air
	}
	return p.lookup[raw]
}

// Set writes state at the given section-local (x,y,z), growing the
// palette (more bits, or switching to direct) when the new state does
// not already fit.
func (p *Palette) Set(x, y, z int, state BlockState) {
	idx := blockIndex(x, y, z)
	if p.lookup == nil {
		p.writeRaw(idx, uint32(state.GlobalID()))
		return
	}
	i, ok := p.index[state]
	if !ok {
		i = uint32(len(p.lookup))
		p.lookup = append(p.lookup, state)
		p.index[state] = i
		p.maybeGrow()
	}
	p.writeRaw(idx, i)
}

// maybeGrow expands bits-per-block (or switches to a direct palette) once
// the lookup table saturates the current index width, preserving all
// existing mappings invariant.
func (p *Palette) maybeGrow() {
	needed := bitsForCount(len(p.lookup))
	if needed <= p.bits {
		return
	}
	if needed > maxIndirectBits {
		p.switchToDirect()
		return
	}
	p.resize(needed)
}

func bitsForCount(n int) int {
	if n <= 1 {
		return minIndirectBits
	}
	b := bits.Len(uint(n - 1))
	if b < minIndirectBits {
		b = minIndirectBits
	}
	return b
}

func (p *Palette) resize(newBits int) {
	old := p.snapshotGlobalIDs()
	p.bits = newBits
	p.words = make([]uint64, codec.WordsForPalette(sectionBlockCount, newBits))
	for i, gid := range old {
		raw, ok := p.index[FromGlobalID(gid)]
		if !ok {
			continue
		}
		codec.WritePaletteIndex(p.words, i, p.bits, raw)
	}
}

func (p *Palette) switchToDirect() {
	old := p.snapshotGlobalIDs()
	p.bits = directBits
	p.lookup = nil
	p.index = nil
	p.words = make([]uint64, codec.WordsForPalette(sectionBlockCount, p.bits))
	for i, gid := range old {
		codec.WritePaletteIndex(p.words, i, p.bits, uint32(gid))
	}
}

// snapshotGlobalIDs resolves every block index to its current global
// state id under the palette's current configuration, used while
// growing/switching representations.
func (p *Palette) snapshotGlobalIDs() []int32 {
	out := make([]int32, sectionBlockCount)
	for i := 0; i < sectionBlockCount; i++ {
		raw := codec.ExtractPaletteIndex(p.words, i, p.bits)
		if p.lookup == nil {
			out[i] = int32(raw)
			continue
		}
		if int(raw) >= len(p.lookup) {
			out[i] = 0
			continue
		}
		out[i] = p.lookup[raw].GlobalID()
	}
	return out
}

func (p *Palette) writeRaw(idx int, value uint32) {
	codec.WritePaletteIndex(p.words, idx, p.bits, value)
}

// BitsPerBlock reports the palette's current index width.
func (p *Palette) BitsPerBlock() int { return p.bits }
