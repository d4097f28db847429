package csdem

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildHeaderBytes(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	buf.WriteString(headerMagic)
	binary.Write(buf, binary.LittleEndian, int32(4))
	binary.Write(buf, binary.LittleEndian, int32(13769))
	for i := 0; i < 4; i++ {
		buf.Write(make([]byte, identifierFieldSz))
	}
	binary.Write(buf, binary.LittleEndian, float32(0.0))
	binary.Write(buf, binary.LittleEndian, int32(0))
	binary.Write(buf, binary.LittleEndian, int32(0))
	binary.Write(buf, binary.LittleEndian, int32(0))
	if buf.Len() != HeaderSize {
		t.Fatalf("built %d bytes, want %d", buf.Len(), HeaderSize)
	}
	return buf.Bytes()
}

func TestParseHeader(t *testing.T) {
	data := buildHeaderBytes(t)
	h, err := ParseHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	if h.Magic != "HL2DEMO" {
		t.Errorf("got magic %q, want HL2DEMO", h.Magic)
	}
	if h.DemoProtocol != 4 {
		t.Errorf("got demo protocol %d, want 4", h.DemoProtocol)
	}
	if h.NetworkProtocol != 13769 {
		t.Errorf("got network protocol %d, want 13769", h.NetworkProtocol)
	}
	if h.PlaybackTicks != 0 || h.PlaybackFrames != 0 || h.SignOnLength != 0 {
		t.Errorf("got counts %d/%d/%d, want all zero", h.PlaybackTicks, h.PlaybackFrames, h.SignOnLength)
	}
}

func TestParseHeaderBadMagic(t *testing.T) {
	data := buildHeaderBytes(t)
	data[0] = 'X'
	if _, err := ParseHeader(data); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestParseHeaderTooShort(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short input")
	}
}
