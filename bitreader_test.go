package csdem

import "testing"

func TestLSBFirstBitOrder(t *testing.T) {
	// 0b1010'1010 read bit-by-bit should yield 0,1,0,1,0,1,0,1 (spec.md §8 scenario 3).
	b := NewBitDecoder([]byte{0xaa})
	want := []bool{false, true, false, true, false, true, false, true}
	for i, w := range want {
		got, err := b.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if got != w {
			t.Errorf("bit %d: got %v, want %v", i, got, w)
		}
	}
	if !b.AtEnd() {
		t.Error("expected end of stream")
	}
}

func TestReadOverrunDoesNotAdvance(t *testing.T) {
	b := NewBitDecoder([]byte{0xff})
	before := b.BitsRemaining()
	if _, err := b.Read(9); err == nil {
		t.Fatal("expected error reading past end of stream")
	}
	if b.BitsRemaining() != before {
		t.Errorf("cursor advanced on failed read: before=%d after=%d", before, b.BitsRemaining())
	}
}

func TestReadMultiByteLSB(t *testing.T) {
	// Low byte first: 0x01 then 0x00 => reading 16 bits gives 1.
	b := NewBitDecoder([]byte{0x01, 0x00})
	v, err := b.Read(16)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1 {
		t.Errorf("got %d, want 1", v)
	}
}

func TestByteAlign(t *testing.T) {
	b := NewBitDecoder([]byte{0xff, 0x2a})
	if _, err := b.Read(3); err != nil {
		t.Fatal(err)
	}
	b.ByteAlign()
	v, err := b.Read(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x2a {
		t.Errorf("got %#x, want 0x2a", v)
	}
}

func TestReadVariableUnsigned32(t *testing.T) {
	cases := []struct {
		bytes []byte
		want  uint32
	}{
		{[]byte{0x2a}, 42},
		{[]byte{0xac, 0x02}, 300},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xffffffff},
	}
	for _, c := range cases {
		b := NewBitDecoder(c.bytes)
		got, err := b.ReadVariableUnsigned32()
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("got %d, want %d", got, c.want)
		}
	}
}

func TestReadUnalignedBytes(t *testing.T) {
	data := []byte{0xff, 'h', 'i'}

	unaligned := NewBitDecoder(data)
	if _, err := unaligned.Read(3); err != nil {
		t.Fatal(err)
	}
	got, err := unaligned.ReadUnalignedBytes(2)
	if err != nil {
		t.Fatal(err)
	}

	reference := NewBitDecoder(data)
	if _, err := reference.Read(3); err != nil {
		t.Fatal(err)
	}
	want := make([]byte, 2)
	for i := range want {
		v, err := reference.Read(8)
		if err != nil {
			t.Fatal(err)
		}
		want[i] = byte(v)
	}

	if string(got) != string(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSkipPastEndFails(t *testing.T) {
	b := NewBitDecoder([]byte{0x01})
	if err := b.Skip(8); err != nil {
		t.Fatal(err)
	}
	if !b.AtEnd() {
		t.Error("expected exact end of stream after skipping all bits")
	}
	if err := b.Skip(1); err == nil {
		t.Fatal("expected error skipping past end of stream")
	}
}
