// Package stringtable implements named tables of (string, blob) entries
// with incremental, history-compressed updates (spec.md §3 StringTable,
// §4.5).
package stringtable

import "github.com/icza/csdem"

// Entry is one (string, data) pair of a StringTable.
type Entry struct {
	Name string
	Data []byte
}

// StringTable is a named, capacity-bounded table of Entries. Capacity
// sets the bit width of the auto-increment index carried by every
// update (spec.md §3).
type StringTable struct {
	Name         string
	Capacity     int
	DataFixed    bool
	DataSizeBits int
	Entries      []*Entry
}

// New creates an empty StringTable ready for Populate.
func New(name string, capacity int, dataFixed bool, dataSizeBits int) *StringTable {
	return &StringTable{Name: name, Capacity: capacity, DataFixed: dataFixed, DataSizeBits: dataSizeBits}
}

// entryAt returns the entry at index, extending the table if index is
// exactly at its current end, or allocating a fresh entry into an
// empty slot (spec.md §4.5.1 step 2).
func (t *StringTable) entryAt(index int) *Entry {
	switch {
	case index == len(t.Entries):
		e := &Entry{}
		t.Entries = append(t.Entries, e)
		return e
	case index < len(t.Entries):
		if t.Entries[index] == nil {
			t.Entries[index] = &Entry{}
		}
		return t.Entries[index]
	default:
		for len(t.Entries) < index {
			t.Entries = append(t.Entries, nil)
		}
		e := &Entry{}
		t.Entries = append(t.Entries, e)
		return e
	}
}

// AppendEntry adds a fully-formed entry to the end of the table. Used
// by the legacy full-dump STRING_TABLES command, which lists every
// entry outright rather than delta-encoding them against a baseline
// the way Populate's callers do.
func (t *StringTable) AppendEntry(name string, data []byte) {
	t.Entries = append(t.Entries, &Entry{Name: name, Data: data})
}

// Wire field tags for the hand-rolled CSVCMsg_CreateStringTable /
// CSVCMsg_UpdateStringTable shapes. These are this package's own
// numbering grounded in the field list spec.md §4.5 enumerates, not a
// transcription of Valve's real .proto field numbers (no generated
// descriptor exists in the example pack to transcribe from).
const (
	createFieldName          = 1
	createFieldMaxEntries    = 2
	createFieldNumEntries    = 3
	createFieldUserDataFixed = 4
	createFieldUserDataBits  = 5
	createFieldStringData    = 6

	updateFieldTableID           = 1
	updateFieldNumChangedEntries = 2
	updateFieldStringData        = 3
)

// ParseCreateMessage decodes a CSVCMsg_CreateStringTable-shaped message
// from cs, returning the freshly constructed (but not yet populated)
// table, its entry count, and the raw bitstream blob to hand to
// Populate (spec.md §4.5).
func ParseCreateMessage(cs *csdem.CodedStream) (table *StringTable, entryCount int, blob []byte, err error) {
	table = &StringTable{}
	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return nil, 0, nil, err
		}
		switch field {
		case createFieldName:
			name, err := cs.ReadLengthDelimited()
			if err != nil {
				return nil, 0, nil, err
			}
			table.Name = string(name)
		case createFieldMaxEntries:
			v, err := cs.ReadVarint32()
			if err != nil {
				return nil, 0, nil, err
			}
			table.Capacity = int(v)
		case createFieldNumEntries:
			v, err := cs.ReadVarint32()
			if err != nil {
				return nil, 0, nil, err
			}
			entryCount = int(v)
		case createFieldUserDataFixed:
			v, err := cs.ReadVarint32()
			if err != nil {
				return nil, 0, nil, err
			}
			table.DataFixed = v != 0
		case createFieldUserDataBits:
			v, err := cs.ReadVarint32()
			if err != nil {
				return nil, 0, nil, err
			}
			table.DataSizeBits = int(v)
		case createFieldStringData:
			blob, err = cs.ReadLengthDelimited()
			if err != nil {
				return nil, 0, nil, err
			}
		default:
			if err := cs.SkipField(wire); err != nil {
				return nil, 0, nil, err
			}
		}
	}
	if table.Name == "" {
		return nil, 0, nil, csdem.NewGameError("stringtable: create message missing a name")
	}
	return table, entryCount, blob, nil
}

// ParseUpdateMessage decodes a CSVCMsg_UpdateStringTable-shaped
// message, returning the table index it targets, the changed-entry
// count, and the raw bitstream blob.
func ParseUpdateMessage(cs *csdem.CodedStream) (tableID, changedCount int, blob []byte, err error) {
	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return 0, 0, nil, err
		}
		switch field {
		case updateFieldTableID:
			v, err := cs.ReadVarint32()
			if err != nil {
				return 0, 0, nil, err
			}
			tableID = int(v)
		case updateFieldNumChangedEntries:
			v, err := cs.ReadVarint32()
			if err != nil {
				return 0, 0, nil, err
			}
			changedCount = int(v)
		case updateFieldStringData:
			blob, err = cs.ReadLengthDelimited()
			if err != nil {
				return 0, 0, nil, err
			}
		default:
			if err := cs.SkipField(wire); err != nil {
				return 0, 0, nil, err
			}
		}
	}
	return tableID, changedCount, blob, nil
}
