package world

import "github.com/SwarmBotMC/adamant/protocol/packet"

// ChunkSection is one 16x16x16 slice of a column, indexed y/z/x per
// A nil *ChunkSection within a ChunkColumn means "all air".
type ChunkSection struct {
	palette *Palette
}

func newChunkSection() *ChunkSection {
	return &ChunkSection{palette: NewIndirectPalette()}
}

func (s *ChunkSection) get(x, y, z int) BlockState {
	if s == nil {
		return Air
	}
	return s.palette.Get(x, y, z)
}

func (s *ChunkSection) set(x, y, z int, state BlockState) {
	s.palette.Set(x, y, z, state)
}

// ChunkColumn is 16 optional ChunkSections spanning the world's vertical
// extent.
type ChunkColumn struct {
	Loc      ChunkLocation
	Sections [16]*ChunkSection
}

func newChunkColumn(loc ChunkLocation) *ChunkColumn {
	return &ChunkColumn{Loc: loc}
}

func (c *ChunkColumn) get(x, y, z int) BlockState {
	secY := y >> 4
	if secY < 0 || secY >= 16 {
		return Air
	}
	return c.Sections[secY].get(x, y&15, z)
}

// set allocates the section on first non-air write, preserving the
// invariant that a section is absent iff it contains only air.
func (c *ChunkColumn) set(x, y, z int, state BlockState) {
	secY := y >> 4
	if secY < 0 || secY >= 16 {
		return
	}
	if c.Sections[secY] == nil {
		if state == Air {
			return
		}
		c.Sections[secY] = newChunkSection()
	}
	c.Sections[secY].set(x, y&15, z, state)
}

// applyRaw merges a decoded ChunkData packet's sections into the column.
// When groundUpContinuous is true, every section index is first cleared
// so this acts as a full replace rather than a merge ("replaced or
// partially merged when new_chunk=false").
func (c *ChunkColumn) applyRaw(cd *packet.ChunkData) {
	if cd.GroundUpContinuous {
		for i := range c.Sections {
			c.Sections[i] = nil
		}
	}
	secIdx := 0
	for i := 0; i < 16; i++ {
		if cd.PrimaryBitMask&(1<<uint(i)) == 0 {
			continue
		}
		raw := cd.Sections[secIdx]
		secIdx++
		c.Sections[i] = sectionFromRaw(raw)
	}
}

// sectionFromRaw rebuilds a queryable ChunkSection from the packet's raw
// palette-indexed words by re-inserting every block through Palette.Set,
// which keeps this system's own growth policy (rather than the server's)
// authoritative for later mutation.
func sectionFromRaw(raw packet.ChunkSectionRaw) *ChunkSection {
	sec := newChunkSection()
	for y := 0; y < 16; y++ {
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				idx := (y*16+z)*16 + x
				sec.set(x, y, z, FromGlobalID(raw.BlockID(idx)))
			}
		}
	}
	return sec
}
