package packet

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/SwarmBotMC/adamant/protocol/codec"
	"github.com/google/uuid"
)

// The packets in this file have variable internal shape (arrays whose
// length is itself part of the wire data, or tagged unions) and are
// decoded by hand instead of through the `mc`-tag Marshal/Unmarshal in
// marshal.go. None of them are ever sent by this system, so only Decode
// is implemented.

// MultiBlockChangeRecord is one block change within a MultiBlockChange
// packet: relative (x,z) within the chunk packed into a single byte
// (x<<4|z), an absolute y, and the new block state id.
type MultiBlockChangeRecord struct {
	X, Z    uint8
	Y       uint8
	BlockID int32
}

// MultiBlockChange updates many blocks within one chunk column at once.
type MultiBlockChange struct {
	ChunkX, ChunkZ int32
	Records        []MultiBlockChangeRecord
}

func (MultiBlockChange) ID() int32 { return IDMultiBlockChange }

func DecodeMultiBlockChange(data []byte) (*MultiBlockChange, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	cx, err := codec.ReadInt32BE(r)
	if err != nil {
		return nil, fmt.Errorf("multi block change: chunk x: %w", err)
	}
	cz, err := codec.ReadInt32BE(r)
	if err != nil {
		return nil, fmt.Errorf("multi block change: chunk z: %w", err)
	}
	count, _, err := codec.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("multi block change: count: %w", err)
	}
	records := make([]MultiBlockChangeRecord, 0, count)
	for i := int32(0); i < count; i++ {
		xz, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("multi block change: record %d xz: %w", i, err)
		}
		y, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("multi block change: record %d y: %w", i, err)
		}
		id, _, err := codec.ReadVarInt(r)
		if err != nil {
			return nil, fmt.Errorf("multi block change: record %d block id: %w", i, err)
		}
		records = append(records, MultiBlockChangeRecord{X: xz >> 4, Z: xz & 0x0F, Y: y, BlockID: id})
	}
	return &MultiBlockChange{ChunkX: cx, ChunkZ: cz, Records: records}, nil
}

// DestroyEntities removes one or more entities from the world.
type DestroyEntities struct {
	EntityIDs []int32
}

func (DestroyEntities) ID() int32 { return IDDestroyEntities }

func DecodeDestroyEntities(data []byte) (*DestroyEntities, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	count, _, err := codec.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("destroy entities: count: %w", err)
	}
	ids := make([]int32, 0, count)
	for i := int32(0); i < count; i++ {
		id, _, err := codec.ReadVarInt(r)
		if err != nil {
			return nil, fmt.Errorf("destroy entities: id %d: %w", i, err)
		}
		ids = append(ids, id)
	}
	return &DestroyEntities{EntityIDs: ids}, nil
}

// PlayerListItem action kinds
const (
	PlayerListAddPlayer = iota
	PlayerListUpdateGameMode
	PlayerListUpdateLatency
	PlayerListUpdateDisplayName
	PlayerListRemovePlayer
)

// PlayerListEntry is one per-player record within a PlayerListItem packet;
// which fields are populated depends on Action.
type PlayerListEntry struct {
	UUID        uuid.UUID
	Name        string // AddPlayer only
	GameMode    int32  // AddPlayer, UpdateGameMode
	Ping        int32  // AddPlayer, UpdateLatency
	DisplayName string // AddPlayer (if HasDisplayName), UpdateDisplayName
	HasDisplay  bool
}

type PlayerListItem struct {
	Action  int32
	Entries []PlayerListEntry
}

func (PlayerListItem) ID() int32 { return IDPlayerListItem }

func DecodePlayerListItem(data []byte) (*PlayerListItem, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	action, _, err := codec.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("player list item: action: %w", err)
	}
	count, _, err := codec.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("player list item: count: %w", err)
	}
	entries := make([]PlayerListEntry, 0, count)
	for i := int32(0); i < count; i++ {
		id, err := codec.ReadUUID(r)
		if err != nil {
			return nil, fmt.Errorf("player list item: entry %d uuid: %w", i, err)
		}
		e := PlayerListEntry{UUID: id}
		switch action {
		case PlayerListAddPlayer:
			if e.Name, err = codec.ReadString(r); err != nil {
				return nil, fmt.Errorf("entry %d name: %w", i, err)
			}
			propCount, _, err := codec.ReadVarInt(r)
			if err != nil {
				return nil, fmt.Errorf("entry %d prop count: %w", i, err)
			}
			for p := int32(0); p < propCount; p++ {
				if _, err = codec.ReadString(r); err != nil { // property name
					return nil, err
				}
				if _, err = codec.ReadString(r); err != nil { // property value
					return nil, err
				}
				signed, err := r.ReadByte()
				if err != nil {
					return nil, err
				}
				if signed != 0 {
					if _, err = codec.ReadString(r); err != nil { // signature
						return nil, err
					}
				}
			}
			if e.GameMode, _, err = codec.ReadVarInt(r); err != nil {
				return nil, err
			}
			if e.Ping, _, err = codec.ReadVarInt(r); err != nil {
				return nil, err
			}
			hasDisplay, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			if hasDisplay != 0 {
				e.HasDisplay = true
				if e.DisplayName, err = codec.ReadString(r); err != nil {
					return nil, err
				}
			}
		case PlayerListUpdateGameMode:
			if e.GameMode, _, err = codec.ReadVarInt(r); err != nil {
				return nil, err
			}
		case PlayerListUpdateLatency:
			if e.Ping, _, err = codec.ReadVarInt(r); err != nil {
				return nil, err
			}
		case PlayerListUpdateDisplayName:
			hasDisplay, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			if hasDisplay != 0 {
				e.HasDisplay = true
				if e.DisplayName, err = codec.ReadString(r); err != nil {
					return nil, err
				}
			}
		case PlayerListRemovePlayer:
			// no extra fields
		default:
			return nil, fmt.Errorf("player list item: unknown action %d", action)
		}
		entries = append(entries, e)
	}
	return &PlayerListItem{Action: action, Entries: entries}, nil
}

// ExplosionRecord is one destroyed-block offset, relative i8 coordinates
// from the explosion's float origin.
type ExplosionRecord struct{ DX, DY, DZ int8 }

type Explosion struct {
	X, Y, Z        float32
	Radius         float32
	Records        []ExplosionRecord
	PlayerMotionX  float32
	PlayerMotionY  float32
	PlayerMotionZ  float32
}

func (Explosion) ID() int32 { return IDExplosion }

func DecodeExplosion(data []byte) (*Explosion, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	ex := &Explosion{}
	var err error
	if ex.X, err = codec.ReadFloat32BE(r); err != nil {
		return nil, err
	}
	if ex.Y, err = codec.ReadFloat32BE(r); err != nil {
		return nil, err
	}
	if ex.Z, err = codec.ReadFloat32BE(r); err != nil {
		return nil, err
	}
	if ex.Radius, err = codec.ReadFloat32BE(r); err != nil {
		return nil, err
	}
	count, err := codec.ReadInt32BE(r)
	if err != nil {
		return nil, err
	}
	ex.Records = make([]ExplosionRecord, 0, count)
	for i := int32(0); i < count; i++ {
		dx, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		dy, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		dz, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		ex.Records = append(ex.Records, ExplosionRecord{DX: int8(dx), DY: int8(dy), DZ: int8(dz)})
	}
	if ex.PlayerMotionX, err = codec.ReadFloat32BE(r); err != nil {
		return nil, err
	}
	if ex.PlayerMotionY, err = codec.ReadFloat32BE(r); err != nil {
		return nil, err
	}
	if ex.PlayerMotionZ, err = codec.ReadFloat32BE(r); err != nil {
		return nil, err
	}
	return ex, nil
}

// Slot is a single inventory/window slot on the wire: present flag, then
// item id / count / damage / NBT when present.
type Slot struct {
	Present bool
	ItemID  int16
	Count   int8
	Damage  int16
}

func decodeSlot(r *bufio.Reader) (Slot, error) {
	present, err := r.ReadByte()
	if err != nil {
		return Slot{}, err
	}
	if present == 0 {
		return Slot{Present: false}, nil
	}
	id, err := codec.ReadInt16BE(r)
	if err != nil {
		return Slot{}, err
	}
	count, err := r.ReadByte()
	if err != nil {
		return Slot{}, err
	}
	damage, err := codec.ReadInt16BE(r)
	if err != nil {
		return Slot{}, err
	}
	// Trailing NBT: 0x00 means "no tag"; anything else is a compound tag.
	// Only the empty tag is accepted: a slot carrying NBT data makes
	// decoding fail, since WindowItems reads slots back-to-back and the
	// tag is not skipped.
	tag, err := r.ReadByte()
	if err != nil {
		return Slot{}, err
	}
	if tag != 0 {
		return Slot{}, fmt.Errorf("decodeSlot: NBT-bearing slot not supported")
	}
	return Slot{Present: true, ItemID: id, Count: int8(count), Damage: damage}, nil
}

// SetSlot updates a single slot in an open window (or the player's own
// inventory when WindowID == 0).
type SetSlot struct {
	WindowID int8
	Slot     int16
	Item     Slot
}

func (SetSlot) ID() int32 { return IDSetSlot }

func DecodeSetSlot(data []byte) (*SetSlot, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	wid, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	slotIdx, err := codec.ReadInt16BE(r)
	if err != nil {
		return nil, err
	}
	item, err := decodeSlot(r)
	if err != nil {
		return nil, fmt.Errorf("set slot: %w", err)
	}
	return &SetSlot{WindowID: int8(wid), Slot: slotIdx, Item: item}, nil
}

// WindowItems replaces the entire contents of a window in one packet.
type WindowItems struct {
	WindowID uint8
	Slots    []Slot
}

func (WindowItems) ID() int32 { return IDWindowItems }

func DecodeWindowItems(data []byte) (*WindowItems, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	wid, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	count, err := codec.ReadInt16BE(r)
	if err != nil {
		return nil, err
	}
	slots := make([]Slot, 0, count)
	for i := int16(0); i < count; i++ {
		s, err := decodeSlot(r)
		if err != nil {
			return nil, fmt.Errorf("window items: slot %d: %w", i, err)
		}
		slots = append(slots, s)
	}
	return &WindowItems{WindowID: wid, Slots: slots}, nil
}
