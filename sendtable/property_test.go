package sendtable

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/icza/csdem"
)

// bitWriter packs bits LSB-first within each byte, matching
// csdem.BitDecoder's read order exactly.
type bitWriter struct {
	bits []bool
}

func (w *bitWriter) writeBits(v uint64, n int) {
	for i := 0; i < n; i++ {
		w.bits = append(w.bits, (v>>uint(i))&1 == 1)
	}
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

func TestDecodeIntFixedUnsigned(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(200, 8)
	b := csdem.NewBitDecoder(w.bytes())
	p := &Property{Kind: KindInt32, NumBits: 8, Flags: csdem.FlagUnsigned}
	v, err := p.decodeInt(b, 32)
	if err != nil {
		t.Fatal(err)
	}
	if v != 200 {
		t.Errorf("got %d, want 200", v)
	}
}

func TestDecodeIntFixedSigned(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(0xfb, 8) // -5 in 8-bit two's complement
	b := csdem.NewBitDecoder(w.bytes())
	p := &Property{Kind: KindInt32, NumBits: 8}
	v, err := p.decodeInt(b, 32)
	if err != nil {
		t.Fatal(err)
	}
	if v != -5 {
		t.Errorf("got %d, want -5", v)
	}
}

func TestDecodeIntVarIntUnsigned(t *testing.T) {
	b := csdem.NewBitDecoder([]byte{0xac, 0x02}) // 300, per spec.md §8 scenario 2
	p := &Property{Kind: KindInt32, Flags: csdem.FlagVarInt | csdem.FlagUnsigned}
	v, err := p.decodeInt(b, 32)
	if err != nil {
		t.Fatal(err)
	}
	if v != 300 {
		t.Errorf("got %d, want 300", v)
	}
}

func TestDecodeIntVarIntZigzag(t *testing.T) {
	b := csdem.NewBitDecoder([]byte{0x03})
	p := &Property{Kind: KindInt32, Flags: csdem.FlagVarInt}
	v, err := p.decodeInt(b, 32)
	if err != nil {
		t.Fatal(err)
	}
	if v != -2 {
		t.Errorf("got %d, want -2", v)
	}
}

func TestDecodeFloatNoScale(t *testing.T) {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, math.Float32bits(3.5))
	b := csdem.NewBitDecoder(data)
	v, err := decodeFloat(b, 0, 0, 0, csdem.FlagNoScale)
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.5 {
		t.Errorf("got %v, want 3.5", v)
	}
}

func TestDecodeFloatScaledDefault(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(128, 8)
	b := csdem.NewBitDecoder(w.bytes())
	v, err := decodeFloat(b, 0, 100, 8, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := float32(100) * float32(128) / float32(255)
	if diff := v - want; diff < -0.001 || diff > 0.001 {
		t.Errorf("got %v, want %v", v, want)
	}
}

func TestDecodeVec3XYZReconstructsZ(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(32768, 16) // x: scaled(-1,1,16) raw 32768 -> ~0
	w.writeBits(32768, 16) // y: ~0

	w.writeBits(0, 1) // z sign: positive
	b := csdem.NewBitDecoder(w.bytes())
	p := &Property{Kind: KindVec3, Low: -1, High: 1, NumBits: 16, Flags: csdem.FlagXYZ}
	dst := make([]byte, csdem.NewValueType(csdem.KindVec3).Size())
	if err := p.decodeVec3(b, dst); err != nil {
		t.Fatal(err)
	}
	x := math.Float32frombits(binary.LittleEndian.Uint32(dst[0:4]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(dst[4:8]))
	z := math.Float32frombits(binary.LittleEndian.Uint32(dst[8:12]))
	if x < -0.01 || x > 0.01 || y < -0.01 || y > 0.01 {
		t.Fatalf("expected x,y near 0, got x=%v y=%v", x, y)
	}
	if z < 0.99 || z > 1.01 {
		t.Errorf("expected z near 1 (unit-length reconstruction), got %v", z)
	}
}

func TestDecodeString(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(5, stringLengthBits)
	for _, c := range []byte("hello") {
		w.writeBits(uint64(c), 8)
	}
	b := csdem.NewBitDecoder(w.bytes())
	p := &Property{Kind: KindString}
	dst := make([]byte, csdem.NewValueType(csdem.KindString).Size())
	if err := p.DecodeInto(b, dst); err != nil {
		t.Fatal(err)
	}
	if got := csdem.GetString(dst); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestDecodeArrayPartialCount(t *testing.T) {
	elem := &Property{Kind: KindInt32, NumBits: 8, Flags: csdem.FlagUnsigned}
	p := &Property{Kind: KindArray, Element: elem, Count: 3}

	w := &bitWriter{}
	w.writeBits(2, bitsForCount(3)) // only 2 of 3 elements present in this update
	w.writeBits(10, 8)
	w.writeBits(20, 8)
	b := csdem.NewBitDecoder(w.bytes())

	dst := make([]byte, p.ValueType().Size())
	if err := p.DecodeInto(b, dst); err != nil {
		t.Fatal(err)
	}
	if v := binary.LittleEndian.Uint32(dst[0:4]); v != 10 {
		t.Errorf("element 0: got %d, want 10", v)
	}
	if v := binary.LittleEndian.Uint32(dst[4:8]); v != 20 {
		t.Errorf("element 1: got %d, want 20", v)
	}
}
