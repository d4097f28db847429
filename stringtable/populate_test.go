package stringtable

import (
	"testing"

	"github.com/icza/csdem"
)

// bitWriter packs bits LSB-first, matching csdem.BitDecoder's read
// order (mirroring the helper of the same name in sibling packages).
type bitWriter struct {
	bits []bool
}

func (w *bitWriter) writeBits(v uint64, n int) {
	for i := 0; i < n; i++ {
		w.bits = append(w.bits, (v>>uint(i))&1 == 1)
	}
}

func (w *bitWriter) writeCString(s string) {
	for _, c := range []byte(s) {
		w.writeBits(uint64(c), 8)
	}
	w.writeBits(0, 8)
}

func (w *bitWriter) bytes() []byte {
	out := make([]byte, (len(w.bits)+7)/8)
	for i, b := range w.bits {
		if b {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// TestPopulateHistoryScenario implements spec.md §8 scenario 6.
func TestPopulateHistoryScenario(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0, 1) // verification bit

	// Entry 0: "player", auto_index defaulted (use_auto_increment=1).
	w.writeBits(1, 1) // use_auto_increment
	w.writeBits(1, 1) // has_string
	w.writeBits(0, 1) // append_to_existing = false
	w.writeCString("player")
	w.writeBits(0, 1) // has_data

	// Entry 1: history index 0, prefix length 4, suffix "ground".
	w.writeBits(1, 1) // use_auto_increment
	w.writeBits(1, 1) // has_string
	w.writeBits(1, 1) // append_to_existing = true
	w.writeBits(0, historyIndexBits)
	w.writeBits(4, prefixLengthBits)
	w.writeCString("ground")
	w.writeBits(0, 1) // has_data

	// Entry 2: history index 1, prefix length 10, empty suffix.
	w.writeBits(1, 1) // use_auto_increment
	w.writeBits(1, 1) // has_string
	w.writeBits(1, 1) // append_to_existing = true
	w.writeBits(1, historyIndexBits)
	w.writeBits(10, prefixLengthBits)
	w.writeCString("")
	w.writeBits(0, 1) // has_data

	b := csdem.NewBitDecoder(w.bytes())
	table := New("mapnames", 64, false, 0)
	if err := table.Populate(b, 3, nil); err != nil {
		t.Fatal(err)
	}

	want := []string{"player", "playground", "playground"}
	if len(table.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(table.Entries), len(want))
	}
	for i, w := range want {
		if table.Entries[i].Name != w {
			t.Errorf("entry %d: got %q, want %q", i, table.Entries[i].Name, w)
		}
	}
}

func TestPopulateZeroCountIsIdempotent(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0, 1) // verification bit only

	table := New("t", 16, false, 0)
	table.Entries = []*Entry{{Name: "untouched"}}

	b := csdem.NewBitDecoder(w.bytes())
	if err := table.Populate(b, 0, nil); err != nil {
		t.Fatal(err)
	}
	if len(table.Entries) != 1 || table.Entries[0].Name != "untouched" {
		t.Errorf("zero-count populate mutated the table: %+v", table.Entries)
	}
}

func TestPopulateUserInfoSink(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0, 1) // verification bit
	w.writeBits(1, 1) // use_auto_increment
	w.writeBits(1, 1) // has_string
	w.writeBits(0, 1) // append_to_existing
	w.writeCString("3")
	w.writeBits(1, 1)  // has_data
	w.writeBits(7, 8)  // data_size_bits = 8, data_fixed = true

	table := New("userinfo", 16, true, 8)
	b := csdem.NewBitDecoder(w.bytes())

	var gotIndex = -1
	var gotData []byte
	err := table.Populate(b, 1, func(index int, data []byte) error {
		gotIndex, gotData = index, data
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if gotIndex != 3 {
		t.Errorf("got user index %d, want 3", gotIndex)
	}
	if len(gotData) != 1 || gotData[0] != 7 {
		t.Errorf("got data %v, want [7]", gotData)
	}
}
