package demo

import (
	"github.com/icza/csdem"
	"github.com/icza/csdem/entity"
	"github.com/icza/csdem/gameevent"
	"github.com/icza/csdem/sendtable"
	"github.com/icza/csdem/stringtable"
)

// createDataTablesAndServerClasses parses one DATA_TABLES block — the
// same content whether it arrives as the DATA_TABLES top-level command
// or as an svc_SendTable net message (spec.md §4.3) — and binds it
// into the demo, consulting the EntityType cache first
// (SPEC_FULL.md §6.3).
func (d *Demo) createDataTablesAndServerClasses(raw []byte) error {
	key := sendtable.HashBlock(raw)
	if d.cache != nil {
		if schema, ok := d.cache.Get(key); ok {
			d.bindSchema(schema)
			return nil
		}
	}

	cs := csdem.NewCodedStream(raw)
	tables, err := sendtable.ParseDataTablesBlock(cs)
	if err != nil {
		return err
	}
	if err := sendtable.ResolveDataTableReferences(tables); err != nil {
		return err
	}

	classes, err := sendtable.ParseServerClasses(cs, sendtable.TablesByName(tables))
	if err != nil {
		return err
	}
	if err := sendtable.ResolveBaseClasses(classes); err != nil {
		return err
	}
	for _, sc := range classes {
		if err := sendtable.MaterializeEntityType(sc); err != nil {
			return err
		}
	}

	schema := &sendtable.Schema{Tables: tables, Classes: classes}
	if d.cache != nil {
		d.cache.Put(key, schema)
	}
	d.bindSchema(schema)
	return nil
}

// bindSchema emplaces a Schema's tables and classes into the demo,
// firing creation hooks for each — done identically whether the
// schema was just parsed or served from cache, since every demo that
// reaches a given DATA_TABLES block observes its own creation events
// (spec.md §4.7).
func (d *Demo) bindSchema(schema *sendtable.Schema) {
	for _, t := range schema.Tables {
		d.observer.BeforeDataTableCreation()
		d.tables = append(d.tables, t)
		d.tablesByName[t.Name] = t
		d.observer.OnDataTableCreation(t)
	}
	for _, sc := range schema.Classes {
		d.observer.BeforeServerClassCreation()
		d.classes[sc.Index] = sc
		d.observer.OnServerClassCreation(sc)
	}
}

func (d *Demo) applyCreateStringTable(payload []byte) error {
	cs := csdem.NewCodedStream(payload)
	table, entryCount, blob, err := stringtable.ParseCreateMessage(cs)
	if err != nil {
		return err
	}
	d.observer.BeforeStringTableCreation()
	if err := table.Populate(csdem.NewBitDecoder(blob), entryCount, d.onUserInfo); err != nil {
		return err
	}
	d.strings.add(table)
	d.observer.OnStringTableCreation(table)
	return nil
}

func (d *Demo) applyUpdateStringTable(payload []byte) error {
	cs := csdem.NewCodedStream(payload)
	tableID, changedCount, blob, err := stringtable.ParseUpdateMessage(cs)
	if err != nil {
		return err
	}
	table, err := d.strings.byID(tableID)
	if err != nil {
		return err
	}
	d.observer.BeforeStringTableUpdate(table)
	if err := table.Populate(csdem.NewBitDecoder(blob), changedCount, d.onUserInfo); err != nil {
		return err
	}
	d.observer.OnStringTableUpdate(table)
	return nil
}

// onUserInfo binds stringtable.Populate's "userinfo" special case to
// the user registry, distinguishing a first sighting of a client index
// (creation) from a refresh of one already known (update), matching
// `original_source/csgopp`'s `Client::update_user` branch.
func (d *Demo) onUserInfo(index int, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, ok := d.users.Get(index); !ok {
		d.observer.BeforeUserCreation(index)
		if err := d.users.Update(index, data); err != nil {
			return err
		}
		u, _ := d.users.Get(index)
		d.observer.OnUserCreation(u)
		return nil
	}

	u, _ := d.users.Get(index)
	d.observer.BeforeUserUpdate(u)
	if err := d.users.Update(index, data); err != nil {
		return err
	}
	d.observer.OnUserUpdate(u)
	return nil
}

func (d *Demo) applyGameEventList(payload []byte) error {
	cs := csdem.NewCodedStream(payload)
	types, err := gameevent.ParseGameEventList(cs)
	if err != nil {
		return err
	}
	for _, t := range types {
		d.observer.BeforeGameEventTypeCreation()
		d.events[t.ID] = t
		d.observer.OnGameEventTypeCreation(t)
	}
	return nil
}

func (d *Demo) applyGameEvent(payload []byte) error {
	d.observer.BeforeGameEvent()
	cs := csdem.NewCodedStream(payload)
	ev, err := gameevent.DecodeGameEvent(cs, d.events)
	if err != nil {
		return err
	}
	d.observer.OnGameEvent(ev)
	return nil
}

// Wire field tags for the hand-rolled CSVCMsg_PacketEntities shape.
// Own numbering grounded in spec.md §4.4's field list, not a
// transcription of Valve's real .proto numbers.
const (
	packetEntitiesFieldUpdatedEntries = 1
	packetEntitiesFieldEntityData     = 2
	packetEntitiesFieldRemovedEntry   = 3
)

func parsePacketEntitiesMessage(cs *csdem.CodedStream) (entryCount int, blob []byte, removed []int, err error) {
	for !cs.AtEnd() {
		field, wire, err := cs.ReadTag()
		if err != nil {
			return 0, nil, nil, err
		}
		switch field {
		case packetEntitiesFieldUpdatedEntries:
			v, err := cs.ReadVarint32()
			if err != nil {
				return 0, nil, nil, err
			}
			entryCount = int(v)
		case packetEntitiesFieldEntityData:
			blob, err = cs.ReadLengthDelimited()
			if err != nil {
				return 0, nil, nil, err
			}
		case packetEntitiesFieldRemovedEntry:
			v, err := cs.ReadVarint32()
			if err != nil {
				return 0, nil, nil, err
			}
			removed = append(removed, int(v))
		default:
			if err := cs.SkipField(wire); err != nil {
				return 0, nil, nil, err
			}
		}
	}
	return entryCount, blob, removed, nil
}

func (d *Demo) applyPacketEntities(payload []byte) error {
	cs := csdem.NewCodedStream(payload)
	entryCount, blob, removed, err := parsePacketEntitiesMessage(cs)
	if err != nil {
		return err
	}
	bd := csdem.NewBitDecoder(blob)
	return d.entities.ApplyPacketEntities(bd, entryCount, len(d.classes), removed, d.classes, d.strings, d.hooks)
}

var _ entity.BaselineSource = (*stringTables)(nil)
