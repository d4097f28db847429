package gameevent

import (
	"encoding/binary"

	"github.com/icza/csdem"
)

// Wire field tags for the hand-rolled CSVCMsg_GameEvent shape, own
// numbering per the same rationale as descriptor.go.
const (
	eventFieldEventID = 1
	eventFieldKeys    = 2
)

// keyValueFieldFor reuses the owning Kind's own wire number as the
// field tag inside a key submessage: one value slot per Kind, matching
// the 1..8 numbering the Kind constants already carry.
func keyValueFieldFor(k Kind) int { return int(k) }

// DecodeGameEvent decodes a CSVCMsg_GameEvent-shaped message, looking
// up its schema by event id in types (spec.md §4.6: "An event instance
// is an Object over that schema").
func DecodeGameEvent(cs *csdem.CodedStream, types map[int]*GameEventType) (*GameEvent, error) {
	var id int
	var keyMessages [][]byte
	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return nil, err
		}
		switch field {
		case eventFieldEventID:
			v, err := cs.ReadVarint32()
			if err != nil {
				return nil, err
			}
			id = int(v)
		case eventFieldKeys:
			payload, err := cs.ReadLengthDelimited()
			if err != nil {
				return nil, err
			}
			keyMessages = append(keyMessages, payload)
		default:
			if err := cs.SkipField(wire); err != nil {
				return nil, err
			}
		}
	}

	gt, ok := types[id]
	if !ok {
		return nil, csdem.NewGameError("gameevent: unknown event id %d", id)
	}
	if len(keyMessages) != len(gt.Members) {
		return nil, csdem.NewGameError("gameevent: event %q has %d keys on the wire, schema declares %d", gt.Name, len(keyMessages), len(gt.Members))
	}

	inst := csdem.NewInstance(gt.Object)
	for i, member := range gt.Members {
		view, err := gt.Object.At(member.Name)
		if err != nil {
			return nil, err
		}
		keyCS := csdem.NewCodedStream(keyMessages[i])
		if err := decodeKeyInto(keyCS, member.Kind, inst.Data[view.Offset:view.Offset+view.Type.Size()]); err != nil {
			return nil, err
		}
	}
	return &GameEvent{Type: gt, Instance: inst}, nil
}

// decodeKeyInto reads the single value field a key submessage carries
// (tagged with its own Kind's wire number) and writes it into dst.
func decodeKeyInto(cs *csdem.CodedStream, kind Kind, dst []byte) error {
	field, _, err := cs.ReadTag()
	if err != nil {
		return err
	}
	if field != keyValueFieldFor(kind) {
		return csdem.NewGameError("gameevent: key value field %d does not match declared kind %s", field, kind)
	}

	switch kind {
	case KindString, KindWString:
		s, err := cs.ReadLengthDelimited()
		if err != nil {
			return err
		}
		csdem.PutString(dst, string(s))
	case KindFloat:
		v, err := cs.ReadLittleEndian32()
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(dst, v)
	case KindInt32:
		v, err := cs.ReadSignedVarint32()
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(dst, uint32(v))
	case KindInt16:
		v, err := cs.ReadSignedVarint32()
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint16(dst, uint16(int16(v)))
	case KindUint8:
		v, err := cs.ReadVarint32()
		if err != nil {
			return err
		}
		dst[0] = byte(v)
	case KindBool:
		v, err := cs.ReadVarint32()
		if err != nil {
			return err
		}
		if v != 0 {
			dst[0] = 1
		} else {
			dst[0] = 0
		}
	case KindUint64:
		v, err := cs.ReadVarint64()
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(dst, v)
	default:
		return csdem.NewGameError("gameevent: unhandled kind %s", kind)
	}
	return nil
}
