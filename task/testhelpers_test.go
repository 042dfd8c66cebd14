package task

import (
	"github.com/SwarmBotMC/adamant/protocol/codec"
	"github.com/SwarmBotMC/adamant/protocol/packet"
)

// flatColumnForTask builds one GroundUpContinuous ChunkData for (cx,cz)
// solid stone at every y<=floorY and air above, mirroring the helper the
// pathfinder package tests use, so task tests can stand up a loaded
// column without depending on the pathfinder package.
func flatColumnForTask(cx, cz int32, floorY int32) *packet.ChunkData {
	const stoneGlobalID = int32(1) << 4
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
