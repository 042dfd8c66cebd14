// Package nbt implements just enough of Minecraft's NBT binary format to
// skip over block-entity payloads embedded in ChunkData packets. This
// system has no use for block-entity contents (chest inventories, sign
// text, and so on all fall outside the agents' world model), so there is
// no decoder here, only a reader that consumes exactly as many bytes as
// a tag occupies so the surrounding packet parse can continue.
//
// No example repo in this project's dependency pack carries an NBT
// library (none of them talk to a real Minecraft Java-edition server),
// so this is hand-rolled against the public NBT tag layout rather than
// grounded on a third-party implementation.
package nbt

import (
	"bufio"
	"fmt"

	"github.com/SwarmBotMC/adamant/protocol/codec"
)

const (
	tagEnd = iota
	tagByte
	tagShort
	tagInt
	tagLong
	tagFloat
	tagDouble
	tagByteArray
	tagString
	tagList
	tagCompound
	tagIntArray
	tagLongArray
)

// SkipNamedTag consumes one full named tag (type byte, name, and payload)
// as found at the top level of a block-entity list entry.
func SkipNamedTag(r *bufio.Reader) error {
	t, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("nbt: read tag type: %w", err)
	}
	if t == tagEnd {
		return nil
	}
	if _, err := skipModifiedUTF8(r); err != nil {
		return fmt.Errorf("nbt: read tag name: %w", err)
	}
	return skipPayload(r, t)
}

func skipModifiedUTF8(r *bufio.Reader) (int, error) {
	n, err := codec.ReadInt16BE(r)
	if err != nil {
		return 0, err
	}
	buf := make([]byte, int(uint16(n)))
	if _, err := readFull(r, buf); err != nil {
		return 0, err
	}
	return len(buf), nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
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

func skipPayload(r *bufio.Reader, tagType byte) error {
	switch tagType {
	case tagByte:
		_, err := r.ReadByte()
		return err
	case tagShort:
		_, err := codec.ReadInt16BE(r)
		return err
	case tagInt, tagFloat:
		_, err := codec.ReadInt32BE(r)
		return err
	case tagLong, tagDouble:
		_, err := codec.ReadInt64BE(r)
		return err
	case tagByteArray:
		n, err := codec.ReadInt32BE(r)
		if err != nil {
			return err
		}
		_, err = readFull(r, make([]byte, n))
		return err
	case tagString:
		_, err := skipModifiedUTF8(r)
		return err
	case tagList:
		elemType, err := r.ReadByte()
		if err != nil {
			return err
		}
		count, err := codec.ReadInt32BE(r)
		if err != nil {
			return err
		}
		for i := int32(0); i < count; i++ {
			if err := skipPayload(r, elemType); err != nil {
				return err
			}
		}
		return nil
	case tagCompound:
		for {
			childType, err := r.ReadByte()
			if err != nil {
				return err
			}
			if childType == tagEnd {
				return nil
			}
			if _, err := skipModifiedUTF8(r); err != nil {
				return err
			}
			if err := skipPayload(r, childType); err != nil {
				return err
			}
		}
	case tagIntArray:
		n, err := codec.ReadInt32BE(r)
		if err != nil {
			return err
		}
		for i := int32(0); i < n; i++ {
			if _, err := codec.ReadInt32BE(r); err != nil {
				return err
			}
		}
		return nil
	case tagLongArray:
		n, err := codec.ReadInt32BE(r)
		if err != nil {
			return err
		}
		for i := int32(0); i < n; i++ {
			if _, err := codec.ReadInt64BE(r); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("nbt: unknown tag type %d", tagType)
	}
}
