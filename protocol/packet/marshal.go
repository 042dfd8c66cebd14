package packet

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/SwarmBotMC/adamant/protocol/codec"
	"github.com/google/uuid"
)

const tagName = "mc"

// Marshal encodes a Packet struct into bytes using its `mc` struct tags.
// Ported from go-theft-craft-server's reflection-tag marshaller and reused
// for every fixed-shape packet in this package; packets with
// variable-shape bodies (ChunkData, PlayerListItem, Explosion, window
// slots) implement their own Encode/Decode instead of relying on tags.
func Marshal(p Packet) ([]byte, error) {
	v := reflect.ValueOf(p)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("packet: marshal expected struct, got %s", v.Kind())
	}

	var buf bytes.Buffer
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		if err := writeField(&buf, tag, v.Field(i).Interface()); err != nil {
			return nil, fmt.Errorf("packet: marshal field %s: %w", field.Name, err)
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into p using its `mc` struct tags.
func Unmarshal(data []byte, p Packet) error {
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("packet: unmarshal expected non-nil pointer, got %T", p)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("packet: unmarshal expected pointer to struct, got pointer to %s", v.Kind())
	}

	r := bufio.NewReader(bytes.NewReader(data))
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		val, err := readField(r, tag, field.Type)
		if err != nil {
			return fmt.Errorf("packet: unmarshal field %s: %w", field.Name, err)
		}
		fv := v.Field(i)
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(fv.Type()) {
			return fmt.Errorf("packet: unmarshal field %s: cannot assign %s to %s", field.Name, rv.Type(), fv.Type())
		}
		fv.Set(rv)
	}
	return nil
}

func writeField(buf *bytes.Buffer, tag string, val any) error {
	switch tag {
	case "varint":
		buf.Write(codec.AppendVarInt(nil, val.(int32)))
	case "varlong":
		var tmp [codec.MaxVarLongLen]byte
		n := codec.WriteVarLong(tmp[:], val.(int64))
		buf.Write(tmp[:n])
	case "bool":
		if val.(bool) {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case "i8":
		buf.WriteByte(byte(val.(int8)))
	case "u8":
		buf.WriteByte(val.(uint8))
	case "i16":
		var b [2]byte
		v := uint16(val.(int16))
		b[0], b[1] = byte(v>>8), byte(v)
		buf.Write(b[:])
	case "u16":
		var b [2]byte
		v := val.(uint16)
		b[0], b[1] = byte(v>>8), byte(v)
		buf.Write(b[:])
	case "i32":
		var b [4]byte
		codec.PutInt32BE(b[:], val.(int32))
		buf.Write(b[:])
	case "i64":
		var b [8]byte
		codec.PutInt64BE(b[:], val.(int64))
		buf.Write(b[:])
	case "position":
		var b [8]byte
		codec.PutInt64BE(b[:], val.(int64))
		buf.Write(b[:])
	case "f32":
		var b [4]byte
		codec.PutInt32BE(b[:], int32(math.Float32bits(val.(float32))))
		buf.Write(b[:])
	case "f64":
		var b [8]byte
		codec.PutInt64BE(b[:], int64(math.Float64bits(val.(float64))))
		buf.Write(b[:])
	case "string":
		buf.Write(codec.WriteString(nil, val.(string)))
	case "uuid":
		buf.Write(codec.WriteUUID(nil, val.(uuid.UUID)))
	case "bytearray":
		data := val.([]byte)
		buf.Write(codec.AppendVarInt(nil, int32(len(data))))
		buf.Write(data)
	case "rest":
		buf.Write(val.([]byte))
	default:
		return fmt.Errorf("unknown field tag %q", tag)
	}
	return nil
}

func readField(r *bufio.Reader, tag string, ft reflect.Type) (any, error) {
	switch tag {
	case "varint":
		v, _, err := codec.ReadVarInt(r)
		return v, err
	case "varlong":
		v, _, err := codec.ReadVarLong(r)
		return v, err
	case "bool":
		b, err := r.ReadByte()
		return b != 0, err
	case "i8":
		b, err := r.ReadByte()
		return int8(b), err
	case "u8":
		b, err := r.ReadByte()
		return b, err
	case "i16":
		v, err := codec.ReadInt16BE(r)
		return v, err
	case "u16":
		v, err := codec.ReadInt16BE(r)
		return uint16(v), err
	case "i32":
		v, err := codec.ReadInt32BE(r)
		return v, err
	case "i64":
		v, err := codec.ReadInt64BE(r)
		return v, err
	case "position":
		v, err := codec.ReadInt64BE(r)
		return v, err
	case "f32":
		v, err := codec.ReadFloat32BE(r)
		return v, err
	case "f64":
		v, err := codec.ReadFloat64BE(r)
		return v, err
	case "string":
		return codec.ReadString(r)
	case "uuid":
		return codec.ReadUUID(r)
	case "bytearray":
		n, _, err := codec.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, n)
		_, err = io.ReadFull(r, buf)
		return buf, err
	case "rest":
		buf, err := io.ReadAll(r)
		return buf, err
	default:
		return nil, fmt.Errorf("unknown field tag %q", tag)
	}
}
