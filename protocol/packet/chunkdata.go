package packet

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/SwarmBotMC/adamant/protocol/codec"
	"github.com/SwarmBotMC/adamant/protocol/nbt"
)

const blocksPerSection = 16 * 16 * 16

// ChunkSectionRaw is one 16x16x16 section's wire-format payload, still
// palette-indexed rather than resolved to block state ids; the world
// package turns this into a queryable ChunkSection.
type ChunkSectionRaw struct {
	BitsPerBlock int
	Palette      []int32 // nil when BitsPerBlock > 8 (direct palette)
	DataArray    []uint64
	BlockLight   [2048]byte
	SkyLight     [2048]byte
	HasSkyLight  bool
}

// ChunkData carries one chunk column update. GroundUpContinuous marks a
// full column (including biome data) versus a partial section update.
type ChunkData struct {
	ChunkX, ChunkZ     int32
	GroundUpContinuous bool
	PrimaryBitMask     int32
	Sections           []ChunkSectionRaw
	Biomes             []uint8 // len 256, only set when GroundUpContinuous
}

func (ChunkData) ID() int32 { return IDChunkData }

// DecodeChunkData parses a ChunkData packet body. hasSkyLight must be true
// when the client is in the overworld dimension (the only dimension that
// carries a sky light array per section).
func DecodeChunkData(data []byte, hasSkyLight bool) (*ChunkData, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	cx, err := codec.ReadInt32BE(r)
	if err != nil {
		return nil, fmt.Errorf("chunk data: chunk x: %w", err)
	}
	cz, err := codec.ReadInt32BE(r)
	if err != nil {
		return nil, fmt.Errorf("chunk data: chunk z: %w", err)
	}
	groundUp, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("chunk data: ground-up flag: %w", err)
	}
	mask, _, err := codec.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("chunk data: primary bit mask: %w", err)
	}
	if _, _, err := codec.ReadVarInt(r); err != nil { // declared byte size of Data, unused
		return nil, fmt.Errorf("chunk data: size: %w", err)
	}

	cd := &ChunkData{ChunkX: cx, ChunkZ: cz, GroundUpContinuous: groundUp != 0, PrimaryBitMask: mask}
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		sec, err := decodeSection(r, hasSkyLight)
		if err != nil {
			return nil, fmt.Errorf("chunk data: section %d: %w", i, err)
		}
		cd.Sections = append(cd.Sections, sec)
	}

	if cd.GroundUpContinuous {
		biomes := make([]byte, 256)
		if _, err := readFullCD(r, biomes); err != nil {
			return nil, fmt.Errorf("chunk data: biomes: %w", err)
		}
		cd.Biomes = biomes
	}

	count, _, err := codec.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("chunk data: block entity count: %w", err)
	}
	for i := int32(0); i < count; i++ {
		if err := nbt.SkipNamedTag(r); err != nil {
			return nil, fmt.Errorf("chunk data: block entity %d: %w", i, err)
		}
	}
	return cd, nil
}

func decodeSection(r *bufio.Reader, hasSkyLight bool) (ChunkSectionRaw, error) {
	var sec ChunkSectionRaw
	bits, err := r.ReadByte()
	if err != nil {
		return sec, fmt.Errorf("bits per block: %w", err)
	}
	sec.BitsPerBlock = int(bits)
	sec.HasSkyLight = hasSkyLight

	if sec.BitsPerBlock <= 8 {
		palLen, _, err := codec.ReadVarInt(r)
		if err != nil {
			return sec, fmt.Errorf("palette length: %w", err)
		}
		sec.Palette = make([]int32, palLen)
		for i := int32(0); i < palLen; i++ {
			v, _, err := codec.ReadVarInt(r)
			if err != nil {
				return sec, fmt.Errorf("palette entry %d: %w", i, err)
			}
			sec.Palette[i] = v
		}
	}

	longCount, _, err := codec.ReadVarInt(r)
	if err != nil {
		return sec, fmt.Errorf("data array length: %w", err)
	}
	sec.DataArray = make([]uint64, longCount)
	for i := int32(0); i < longCount; i++ {
		v, err := codec.ReadInt64BE(r)
		if err != nil {
			return sec, fmt.Errorf("data array word %d: %w", i, err)
		}
		sec.DataArray[i] = uint64(v)
	}

	if _, err := readFullCD(r, sec.BlockLight[:]); err != nil {
		return sec, fmt.Errorf("block light: %w", err)
	}
	if hasSkyLight {
		if _, err := readFullCD(r, sec.SkyLight[:]); err != nil {
			return sec, fmt.Errorf("sky light: %w", err)
		}
	}
	return sec, nil
}

func readFullCD(r *bufio.Reader, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := r.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// BlockID extracts the global block state id for one of the section's
// blocksPerSection block indices, resolving through the palette when one
// is present (bits <= 8) or treating DataArray entries as direct global
// ids otherwise, per the packed-long layout.
func (s ChunkSectionRaw) BlockID(blockIdx int) int32 {
	raw := codec.ExtractPaletteIndex(s.DataArray, blockIdx, s.BitsPerBlock)
	if s.Palette == nil {
		return int32(raw)
	}
	if int(raw) >= len(s.Palette) {
		return 0
	}
	return s.Palette[raw]
}
