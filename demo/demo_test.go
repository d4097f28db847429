package demo

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/icza/csdem"
)

func buildHeaderBytes(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	buf.WriteString("HL2DEMO\x00")
	binary.Write(buf, binary.LittleEndian, int32(4))
	binary.Write(buf, binary.LittleEndian, int32(13769))
	for i := 0; i < 4; i++ {
		buf.Write(make([]byte, 260))
	}
	binary.Write(buf, binary.LittleEndian, float32(1.5))
	binary.Write(buf, binary.LittleEndian, int32(100))
	binary.Write(buf, binary.LittleEndian, int32(10))
	binary.Write(buf, binary.LittleEndian, int32(0))
	if buf.Len() != csdem.HeaderSize {
		t.Fatalf("built %d bytes, want %d", buf.Len(), csdem.HeaderSize)
	}
	return buf.Bytes()
}

func appendFrame(buf *bytes.Buffer, cmd Command, tick uint32, body []byte) {
	buf.WriteByte(byte(cmd))
	binary.Write(buf, binary.LittleEndian, tick)
	buf.WriteByte(0) // player slot
	buf.Write(body)
}

func newTestDemo(t *testing.T, frames []byte) *Demo {
	t.Helper()
	data := append(buildHeaderBytes(t), frames...)
	d, err := New(data, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestAdvanceSyncTickThenStop(t *testing.T) {
	var buf bytes.Buffer
	appendFrame(&buf, CommandSyncTick, 1, nil)
	appendFrame(&buf, CommandStop, 2, nil)
	d := newTestDemo(t, buf.Bytes())

	ok, err := d.Advance()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected ok=true after SYNC_TICK")
	}
	if d.Tick() != 1 {
		t.Errorf("got tick %d, want 1", d.Tick())
	}
	if d.State() != StateAwaitingFrame {
		t.Errorf("got state %s, want AwaitingFrame", d.State())
	}

	ok, err = d.Advance()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false after STOP")
	}
	if d.State() != StateStopped {
		t.Errorf("got state %s, want Stopped", d.State())
	}
}

func TestAdvanceAfterStopErrors(t *testing.T) {
	var buf bytes.Buffer
	appendFrame(&buf, CommandStop, 1, nil)
	d := newTestDemo(t, buf.Bytes())

	if _, err := d.Advance(); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Advance(); err == nil {
		t.Fatal("expected error calling Advance after Stopped")
	}
}

func TestAdvanceCustomDataAlwaysFatal(t *testing.T) {
	var buf bytes.Buffer
	appendFrame(&buf, CommandCustomData, 1, nil)
	d := newTestDemo(t, buf.Bytes())

	ok, err := d.Advance()
	if err == nil {
		t.Fatal("expected error for CUSTOM_DATA")
	}
	if ok {
		t.Fatal("expected ok=false for CUSTOM_DATA")
	}
	if d.State() != StateStopped {
		t.Errorf("got state %s, want Stopped", d.State())
	}
}

func TestAdvanceUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	appendFrame(&buf, Command(99), 1, nil)
	d := newTestDemo(t, buf.Bytes())

	if _, err := d.Advance(); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestAdvanceConsoleCommandSkipsBody(t *testing.T) {
	var buf bytes.Buffer
	body := []byte("status\x00")
	var sizeBuf bytes.Buffer
	binary.Write(&sizeBuf, binary.LittleEndian, uint32(len(body)))
	appendFrame(&buf, CommandConsoleCommand, 1, append(sizeBuf.Bytes(), body...))
	appendFrame(&buf, CommandStop, 2, nil)
	d := newTestDemo(t, buf.Bytes())

	ok, err := d.Advance()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected ok=true after CONSOLE_COMMAND")
	}

	ok, err = d.Advance()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected ok=false after STOP")
	}
}

func TestTransitionPacketExhaustedFromWrongStatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid state transition")
		}
	}()
	d := newTestDemo(t, nil)
	d.transitionPacketExhausted()
}
