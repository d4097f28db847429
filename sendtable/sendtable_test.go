package sendtable

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

func encodeStringField(field int, s string) []byte {
	out := encodeTag(field, 2)
	out = append(out, encodeVarint(uint64(len(s)))...)
	return append(out, []byte(s)...)
}

func encodeVarintField(field int, v uint64) []byte {
	return append(encodeTag(field, 0), encodeVarint(v)...)
}

func encodeLengthDelimitedField(field int, payload []byte) []byte {
	out := encodeTag(field, 2)
	out = append(out, encodeVarint(uint64(len(payload)))...)
	return append(out, payload...)
}

func TestParseDataTablesBlockRoundTrip(t *testing.T) {
	prop := encodeVarintField(propFieldType, uint64(KindInt32))
	prop = append(prop, encodeStringField(propFieldVarName, "health")...)
	prop = append(prop, encodeVarintField(propFieldFlags, uint64(csdem.FlagUnsigned))...)
	prop = append(prop, encodeVarintField(propFieldNumBits, 8)...)

	table := encodeStringField(tableFieldName, "DT_Test")
	table = append(table, encodeLengthDelimitedField(tableFieldProps, prop)...)

	terminator := encodeVarintField(tableFieldIsEnd, 1)

	var block []byte
	block = append(block, encodeVarint(uint64(len(table)))...)
	block = append(block, table...)
	block = append(block, encodeVarint(uint64(len(terminator)))...)
	block = append(block, terminator...)

	tables, err := ParseDataTablesBlock(csdem.NewCodedStream(block))
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(tables))
	}
	got := tables[0]
	if got.Name != "DT_Test" {
		t.Errorf("got name %q, want DT_Test", got.Name)
	}
	if len(got.Properties) != 1 {
		t.Fatalf("got %d properties, want 1", len(got.Properties))
	}
	p := got.Properties[0]
	if p.Name != "health" || p.Kind != KindInt32 || p.NumBits != 8 || !p.Unsigned() {
		t.Errorf("got property %+v, want health/Int32/8bits/unsigned", p)
	}
}

func TestParseServerClassesBinding(t *testing.T) {
	table := &SendTable{Name: "DT_Player"}
	tables := map[string]*SendTable{"DT_Player": table}

	var body []byte
	countBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(countBuf, 1)
	body = append(body, countBuf...)
	idBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(idBuf, 7)
	body = append(body, idBuf...)
	body = append(body, []byte("CPlayer\x00")...)
	body = append(body, []byte("DT_Player\x00")...)

	cs := csdem.NewCodedStream(body)
	classes, err := ParseServerClasses(cs, tables)
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(classes))
	}
	if classes[0].Name != "CPlayer" || classes[0].Index != 7 || classes[0].Table != table {
		t.Errorf("got %+v, unexpected binding", classes[0])
	}
	if table.ServerClass != classes[0] {
		t.Error("table's weak backpointer not set to the bound server class")
	}
}
