package demo

import (
	"github.com/icza/csdem"
	"github.com/icza/csdem/stringtable"
)

// signOnOpaqueBytes is the width of the player-data prefix SIGN_ON and
// PACKET frame bodies share ahead of their net-message run (spec.md
// §6: "160 bytes opaque"); `original_source/csgopp`'s
// `Client::advance_packets` skips it as `152 + 4 + 4`.
const signOnOpaqueBytes = 152 + 4 + 4

// Advance reads and dispatches exactly one top-level frame (spec.md
// §4.8), firing BeforeFrame/OnFrame around it. It returns false once a
// STOP frame has been processed; Advance must not be called again
// after that (spec.md §4.8: any state -> Stopped is terminal).
func (d *Demo) Advance() (bool, error) {
	if d.state == StateStopped {
		return false, csdem.NewGameError("demo: Advance called after Stopped")
	}

	d.observer.BeforeFrame()

	cmdByte, err := d.cs.ReadByte()
	if err != nil {
		return false, err
	}
	tick, err := d.cs.ReadLittleEndian32()
	if err != nil {
		return false, err
	}
	d.tick = int32(tick)
	if _, err := d.cs.ReadByte(); err != nil { // player slot, unused
		return false, err
	}

	command := Command(cmdByte)
	ok := true

	switch command {
	case CommandSignOn, CommandPacket:
		if err := d.advancePackets(); err != nil {
			return false, err
		}
	case CommandSyncTick:
		// no body
	case CommandConsoleCommand:
		if err := d.advanceConsoleCommand(); err != nil {
			return false, err
		}
	case CommandUserCommand:
		if err := d.advanceUserCommand(); err != nil {
			return false, err
		}
	case CommandDataTables:
		if err := d.advanceDataTables(); err != nil {
			return false, err
		}
	case CommandStop:
		ok = false
		d.stop()
	case CommandCustomData:
		d.stop()
		return false, csdem.NewGameError("demo: encountered unexpected CUSTOM_DATA frame")
	case CommandStringTables:
		if err := d.advanceLegacyStringTables(); err != nil {
			return false, err
		}
	default:
		d.stop()
		if _, err := describeCommand(command); err != nil {
			return false, err
		}
		return false, csdem.NewGameError("demo: unhandled command %s", command)
	}

	d.frame++
	d.observer.OnFrame(int(command))
	return ok, nil
}

// advancePackets reads a SIGN_ON/PACKET body's opaque prefix and
// net-message run, dispatching each net-message in turn (spec.md §4.8
// AwaitingFrame -> InPacket -> AwaitingFrame).
func (d *Demo) advancePackets() error {
	if _, err := d.cs.ReadRaw(signOnOpaqueBytes); err != nil {
		return err
	}
	size, err := d.cs.ReadLittleEndian32()
	if err != nil {
		return err
	}
	raw, err := d.cs.ReadRaw(int(size))
	if err != nil {
		return err
	}

	d.transitionToPacket()
	sub := csdem.NewCodedStream(raw)
	for !sub.AtEnd() {
		if err := d.advancePacket(sub); err != nil {
			return err
		}
	}
	d.transitionPacketExhausted()
	return nil
}

// advancePacket dispatches exactly one net-message off sub: a varint
// NET_*/SVC_* tag followed by a varint-length-delimited payload
// (spec.md §6). Payload kinds the design skips by design (voice data,
// sounds, temp entities, HLTV-only messages) are read and discarded
// without interpretation.
func (d *Demo) advancePacket(sub *csdem.CodedStream) error {
	tagVal, err := sub.ReadVarint32()
	if err != nil {
		return err
	}
	msg := NetMessage(tagVal)
	if !msg.known() {
		return csdem.NewGameError("demo: unknown net message %d", tagVal)
	}

	d.observer.BeforePacket()

	payload, err := sub.ReadLengthDelimited()
	if err != nil {
		return err
	}

	switch msg {
	case SvcSendTable:
		err = d.createDataTablesAndServerClasses(payload)
	case SvcCreateStringTable:
		err = d.applyCreateStringTable(payload)
	case SvcUpdateStringTable:
		err = d.applyUpdateStringTable(payload)
	case SvcGameEventList:
		err = d.applyGameEventList(payload)
	case SvcGameEvent:
		err = d.applyGameEvent(payload)
	case SvcPacketEntities:
		err = d.applyPacketEntities(payload)
	default:
		// known tag, uninterpreted body (spec.md §1 Non-goals)
	}
	if err != nil {
		return err
	}

	d.observer.OnPacket(int(msg))
	return nil
}

func (d *Demo) advanceConsoleCommand() error {
	size, err := d.cs.ReadLittleEndian32()
	if err != nil {
		return err
	}
	_, err = d.cs.ReadRaw(int(size))
	return err
}

func (d *Demo) advanceUserCommand() error {
	if _, err := d.cs.ReadRaw(4); err != nil {
		return err
	}
	size, err := d.cs.ReadLittleEndian32()
	if err != nil {
		return err
	}
	_, err = d.cs.ReadRaw(int(size))
	return err
}

func (d *Demo) advanceDataTables() error {
	size, err := d.cs.ReadLittleEndian32()
	if err != nil {
		return err
	}
	raw, err := d.cs.ReadRaw(int(size))
	if err != nil {
		return err
	}
	return d.createDataTablesAndServerClasses(raw)
}

// advanceLegacyStringTables handles the top-level STRING_TABLES
// command: a one-shot, byte-aligned full dump of every string table's
// contents, distinct from the incremental svc_CreateStringTable /
// svc_UpdateStringTable net-messages (grounded in the commented-out
// `Client::advance_string_tables` reference implementation that reads
// a table count then, per table, a name/entry_count/[string,data]*
// run — byte-aligned throughout, so no bit decoder is needed).
func (d *Demo) advanceLegacyStringTables() error {
	size, err := d.cs.ReadLittleEndian32()
	if err != nil {
		return err
	}
	raw, err := d.cs.ReadRaw(int(size))
	if err != nil {
		return err
	}
	cs := csdem.NewCodedStream(raw)

	count, err := cs.ReadByte()
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		d.observer.BeforeStringTableCreation()

		name, err := cs.ReadCString()
		if err != nil {
			return err
		}
		entryCount, err := cs.ReadLittleEndian16()
		if err != nil {
			return err
		}
		table := stringtable.New(name, int(entryCount), false, 0)

		for j := 0; j < int(entryCount); j++ {
			entryName, err := cs.ReadCString()
			if err != nil {
				return err
			}
			hasData, err := cs.ReadByte()
			if err != nil {
				return err
			}
			var data []byte
			if hasData != 0 {
				dataSize, err := cs.ReadLittleEndian16()
				if err != nil {
					return err
				}
				data, err = cs.ReadRaw(int(dataSize))
				if err != nil {
					return err
				}
			}
			table.AppendEntry(entryName, data)
		}

		d.strings.add(table)
		d.observer.OnStringTableCreation(table)
	}
	return nil
}
