package csdem

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/blang/semver/v4"
)

const (
	// HeaderSize is the fixed byte length of the demo header prefix.
	HeaderSize = 1072

	headerMagic       = "HL2DEMO\x00"
	identifierFieldSz = 260
)

// Header is the fixed 1072-byte prefix of a demo file. It is read
// once, at the very start of a parse, and is immutable thereafter.
type Header struct {
	Magic            string
	DemoProtocol     int32
	NetworkProtocol  int32
	ServerName       string
	ClientName       string
	MapName          string
	GameDirectory    string
	PlaybackSeconds  float32
	PlaybackTicks    int32
	PlaybackFrames   int32
	SignOnLength     int32
}

// SupportedNetworkProtocols is the range of network protocol versions
// (expressed as a semver range over the protocol number, mirroring the
// kr teammate's blang/semver compatibility gating) this package's
// wire-format decode is grounded against. A version outside this
// range may still parse — most of the wire format has been stable for
// years — but is not validated against.
var SupportedNetworkProtocols = semver.MustParseRange(">=7.0.0 <20.0.0")

// ParseHeader reads the fixed 1072-byte header prefix from data.
// data must be at least HeaderSize bytes long.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, NewGameError("header: need %d bytes, got %d", HeaderSize, len(data))
	}

	h := &Header{}
	pos := 0

	magic := data[pos : pos+8]
	pos += 8
	h.Magic = strings.TrimRight(string(magic), "\x00")
	if string(magic) != headerMagic {
		return nil, NewGameError("header: bad magic %q, want %q", magic, headerMagic)
	}

	h.DemoProtocol = int32(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4
	h.NetworkProtocol = int32(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4

	readIdent := func() string {
		field := data[pos : pos+identifierFieldSz]
		pos += identifierFieldSz
		if i := indexByte(field, 0); i >= 0 {
			field = field[:i]
		}
		return string(field)
	}
	h.ServerName = readIdent()
	h.ClientName = readIdent()
	h.MapName = readIdent()
	h.GameDirectory = readIdent()

	bits := binary.LittleEndian.Uint32(data[pos:])
	pos += 4
	h.PlaybackSeconds = math.Float32frombits(bits)

	h.PlaybackTicks = int32(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4
	h.PlaybackFrames = int32(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4
	h.SignOnLength = int32(binary.LittleEndian.Uint32(data[pos:]))
	pos += 4

	return h, nil
}

// CompatibleProtocol reports whether the header's network protocol
// version falls within SupportedNetworkProtocols.
func (h *Header) CompatibleProtocol() bool {
	v := semver.Version{Major: uint64(h.NetworkProtocol)}
	return SupportedNetworkProtocols(v)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
