package gameevent

import (
	"encoding/binary"
	"testing"

	"github.com/icza/csdem"
)

func encodeVarint(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			return out
		}
	}
}

func encodeTag(field, wire int) []byte { return encodeVarint(uint64(field<<3 | wire)) }

func encodeVarintField(field int, v uint64) []byte {
	return append(encodeTag(field, 0), encodeVarint(v)...)
}

func encodeBytesField(field int, payload []byte) []byte {
	out := encodeTag(field, 2)
	out = append(out, encodeVarint(uint64(len(payload)))...)
	return append(out, payload...)
}

func encodeStringField(field int, s string) []byte { return encodeBytesField(field, []byte(s)) }

func buildKeyDescriptor(name string, kind Kind) []byte {
	var b []byte
	b = append(b, encodeStringField(keyFieldName, name)...)
	b = append(b, encodeVarintField(keyFieldType, uint64(kind))...)
	return b
}

func buildDescriptor(id int, name string, keys ...[]byte) []byte {
	var b []byte
	b = append(b, encodeVarintField(descriptorFieldEventID, uint64(id))...)
	b = append(b, encodeStringField(descriptorFieldName, name)...)
	for _, k := range keys {
		b = append(b, encodeBytesField(descriptorFieldKeys, k)...)
	}
	return b
}

func TestParseGameEventListBuildsSchema(t *testing.T) {
	desc := buildDescriptor(1, "round_start",
		buildKeyDescriptor("timelimit", KindInt32),
		buildKeyDescriptor("objective", KindString),
	)
	var body []byte
	body = append(body, encodeBytesField(listFieldDescriptors, desc)...)

	types, err := ParseGameEventList(csdem.NewCodedStream(body))
	if err != nil {
		t.Fatal(err)
	}
	if len(types) != 1 {
		t.Fatalf("got %d types, want 1", len(types))
	}
	gt := types[0]
	if gt.ID != 1 || gt.Name != "round_start" || len(gt.Members) != 2 {
		t.Fatalf("got %+v, unexpected schema", gt)
	}
	if gt.Members[0].Name != "timelimit" || gt.Members[0].Kind != KindInt32 {
		t.Errorf("got member 0 %+v, unexpected", gt.Members[0])
	}
	if _, err := gt.Object.At("objective"); err != nil {
		t.Errorf("objective member missing from Object: %v", err)
	}
}

func TestDecodeGameEventKeyedTuple(t *testing.T) {
	desc := buildDescriptor(7, "player_death",
		buildKeyDescriptor("attacker", KindInt32),
		buildKeyDescriptor("weapon", KindString),
	)
	types, err := ParseGameEventList(csdem.NewCodedStream(encodeBytesField(listFieldDescriptors, desc)))
	if err != nil {
		t.Fatal(err)
	}
	byID := map[int]*GameEventType{types[0].ID: types[0]}

	attackerKey := append(encodeTag(keyValueFieldFor(KindInt32), 0), encodeVarint(zigzag32(42))...)
	weaponKey := encodeStringField(keyValueFieldFor(KindString), "ak47")

	var body []byte
	body = append(body, encodeVarintField(eventFieldEventID, 7)...)
	body = append(body, encodeBytesField(eventFieldKeys, attackerKey)...)
	body = append(body, encodeBytesField(eventFieldKeys, weaponKey)...)

	ev, err := DecodeGameEvent(csdem.NewCodedStream(body), byID)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Type.Name != "player_death" {
		t.Errorf("got type %q, want player_death", ev.Type.Name)
	}

	view, err := ev.Type.Object.At("attacker")
	if err != nil {
		t.Fatal(err)
	}
	got := int32(binary.LittleEndian.Uint32(ev.Instance.Data[view.Offset : view.Offset+4]))
	if got != 42 {
		t.Errorf("got attacker=%d, want 42", got)
	}

	view, err = ev.Type.Object.At("weapon")
	if err != nil {
		t.Fatal(err)
	}
	if got := csdem.GetString(ev.Instance.Data[view.Offset : view.Offset+view.Type.Size()]); got != "ak47" {
		t.Errorf("got weapon=%q, want ak47", got)
	}
}

// zigzag32 encodes v the way a signed-varint32 field expects, matching
// CodedStream.ReadSignedVarint32's decode.
func zigzag32(v int32) uint64 {
	return uint64(uint32((v << 1) ^ (v >> 31)))
}
