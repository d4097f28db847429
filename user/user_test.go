package user

import (
	"encoding/binary"
	"testing"
)

func buildBlob(version, xuid uint64, name string, id int32, guid string, friendsID uint32, friendsName string, isFake, isHLTV bool, files [4]uint32) []byte {
	buf := make([]byte, recordSize)
	pos := 0
	binary.BigEndian.PutUint64(buf[pos:], version)
	pos += 8
	binary.BigEndian.PutUint64(buf[pos:], xuid)
	pos += 8
	copy(buf[pos:pos+nameSize], name)
	pos += nameSize
	binary.BigEndian.PutUint32(buf[pos:], uint32(id))
	pos += 4
	copy(buf[pos:pos+guidSize], guid)
	pos += guidSize
	binary.BigEndian.PutUint32(buf[pos:], friendsID)
	pos += 4
	copy(buf[pos:pos+friendsNameSize], friendsName)
	pos += friendsNameSize
	if isFake {
		buf[pos] = 1
	}
	pos++
	if isHLTV {
		buf[pos] = 1
	}
	pos++
	for _, f := range files {
		binary.LittleEndian.PutUint32(buf[pos:], f)
		pos += 4
	}
	return buf
}

func TestDeserializeFixedLayout(t *testing.T) {
	blob := buildBlob(4, 0x1122334455667788, "Player One", 7, "STEAM_1:0:12345", 99, "buddy", true, false, [4]uint32{1, 2, 3, 4})

	u, err := Deserialize(3, blob)
	if err != nil {
		t.Fatal(err)
	}
	if u.Index != 3 {
		t.Errorf("got index %d, want 3", u.Index)
	}
	if u.Version != 4 || u.XUID != 0x1122334455667788 {
		t.Errorf("got version=%d xuid=%x, unexpected", u.Version, u.XUID)
	}
	if u.Name != "Player One" {
		t.Errorf("got name %q, want %q", u.Name, "Player One")
	}
	if u.ID != 7 {
		t.Errorf("got id %d, want 7", u.ID)
	}
	if u.GUID != "STEAM_1:0:12345" {
		t.Errorf("got guid %q, unexpected", u.GUID)
	}
	if u.FriendsID != 99 || u.FriendsName != "buddy" {
		t.Errorf("got friends (%d, %q), unexpected", u.FriendsID, u.FriendsName)
	}
	if !u.IsFake || u.IsHLTV {
		t.Errorf("got isFake=%v isHLTV=%v, unexpected", u.IsFake, u.IsHLTV)
	}
	if u.CustomFiles != [4]uint32{1, 2, 3, 4} {
		t.Errorf("got custom files %v, unexpected", u.CustomFiles)
	}
}

func TestDeserializeTooShortErrors(t *testing.T) {
	if _, err := Deserialize(0, make([]byte, 4)); err == nil {
		t.Fatal("expected error for truncated userinfo blob, got nil")
	}
}

func TestRegistryUpdate(t *testing.T) {
	blob := buildBlob(1, 2, "Alice", 1, "g", 0, "", false, false, [4]uint32{})
	reg := NewRegistry()
	if err := reg.Update(5, blob); err != nil {
		t.Fatal(err)
	}
	u, ok := reg.Get(5)
	if !ok || u.Name != "Alice" {
		t.Errorf("got %+v, want Alice at index 5", u)
	}
	if reg.Len() != 1 {
		t.Errorf("got %d users, want 1", reg.Len())
	}
}

func TestBestEffortTextPassesThroughValidUTF8(t *testing.T) {
	if got := BestEffortText("hello"); got != "hello" {
		t.Errorf("got %q, want hello", got)
	}
}

func TestBestEffortTextDecodesWindows1252(t *testing.T) {
	// 0xE9 in Windows-1252 is 'é'; as a standalone byte it is not valid UTF-8.
	raw := string([]byte{0xE9})
	got := BestEffortText(raw)
	if got != "é" {
		t.Errorf("got %q, want é", got)
	}
}
