// Package user implements the fixed-layout userinfo record and the
// registry that keeps one per client index (spec.md §3 User).
package user

import (
	"encoding/binary"

	"github.com/icza/csdem"
)

// Field widths of the userinfo blob (spec.md §3 User). name/friendsName
// are NUL-terminated within a fixed-size window; guid likewise.
const (
	nameSize        = 128
	guidSize        = 33
	friendsNameSize = 128

	recordSize = 8 + 8 + nameSize + 4 + guidSize + 4 + friendsNameSize + 1 + 1 + 4*4
)

// User is one client's identity record, deserialized from a userinfo
// string-table entry's data blob. Every multi-byte field except
// CustomFiles is big-endian; CustomFiles is little-endian (spec.md §9
// "Endianness and bit order": "User-info blobs are the sole exception").
type User struct {
	Index       int
	Version     uint64
	XUID        uint64
	Name        string
	ID          int32
	GUID        string
	FriendsID   uint32
	FriendsName string
	IsFake      bool
	IsHLTV      bool
	CustomFiles [4]uint32
}

// Deserialize decodes data (the raw userinfo string-table entry blob)
// into a new User at the given client index (spec.md §3 User).
func Deserialize(index int, data []byte) (*User, error) {
	if len(data) < recordSize {
		return nil, csdem.NewGameError("user: userinfo blob is %d bytes, want at least %d", len(data), recordSize)
	}
	r := &reader{data: data}

	u := &User{Index: index}
	u.Version = r.beUint64()
	u.XUID = r.beUint64()
	u.Name = r.terminated(nameSize)
	u.ID = int32(r.beUint32())
	u.GUID = r.terminated(guidSize)
	u.FriendsID = r.beUint32()
	u.FriendsName = r.terminated(friendsNameSize)
	u.IsFake = r.byte() != 0
	u.IsHLTV = r.byte() != 0
	for i := range u.CustomFiles {
		u.CustomFiles[i] = r.leUint32()
	}
	return u, r.err
}

// reader sequentially consumes data, recording the first error and
// becoming a no-op afterward so callers don't need a check per field —
// mirroring the teacher's decode-then-check-once idiom.
type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.pos+n > len(r.data) {
		r.err = csdem.NewGameError("user: unexpected end of userinfo blob at byte %d", r.pos)
		return make([]byte, n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) beUint64() uint64 { return binary.BigEndian.Uint64(r.take(8)) }
func (r *reader) beUint32() uint32 { return binary.BigEndian.Uint32(r.take(4)) }
func (r *reader) leUint32() uint32 { return binary.LittleEndian.Uint32(r.take(4)) }
func (r *reader) byte() byte       { return r.take(1)[0] }

// terminated reads n bytes and returns the string up to the first NUL
// (or all n bytes if none is found), discarding any trailing padding.
func (r *reader) terminated(n int) string {
	b := r.take(n)
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
