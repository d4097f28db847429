package entity

import (
	"github.com/icza/csdem"
	"github.com/icza/csdem/sendtable"
)

// serialNumberBits is the fixed width of the serial number a freshly
// created entity carries (spec.md §4.4 step 3).
const serialNumberBits = 10

// classIDBits returns the width of the server_class_id field a create
// entry's header carries: one more bit than the minimum needed to
// represent any valid class index (spec.md §4.4 step 3:
// "ceil(log2(server_class_count)) + 1").
func classIDBits(classCount int) int {
	bits := 0
	for (1 << uint(bits)) < classCount {
		bits++
	}
	return bits + 1
}

// ApplyPacketEntities decodes one PacketEntities delta (spec.md §4.4):
// entryCount create/update entries driven by a compressed-u32 index
// skip and a pair of enter/leave command bits, followed by any
// explicitDeletes the enclosing net-message carried out of band.
//
// classes indexes every known server class by its wire index. baseline
// supplies the instance baseline a freshly created entity's fields are
// decoded against before the packet's own update run lands on top
// (spec.md §4.4 step 3). hooks fire inline, in wire order.
func (d *Database) ApplyPacketEntities(
	b *csdem.BitDecoder,
	entryCount, classCount int,
	explicitDeletes []int,
	classes map[int]*sendtable.ServerClass,
	baseline BaselineSource,
	hooks Hooks,
) error {
	cursor := -1
	for i := 0; i < entryCount; i++ {
		skip, err := b.ReadCompressedUnsigned32()
		if err != nil {
			return err
		}
		cursor += int(skip) + 1

		enter, err := b.ReadBit()
		if err != nil {
			return err
		}
		leave, err := b.ReadBit()
		if err != nil {
			return err
		}

		switch {
		case leave:
			if err := d.applyDelete(cursor, hooks); err != nil {
				return err
			}
		case enter:
			if err := d.applyCreate(b, cursor, classCount, classes, baseline, hooks); err != nil {
				return err
			}
		default:
			if err := d.applyUpdate(b, cursor, hooks); err != nil {
				return err
			}
		}
	}

	for _, id := range explicitDeletes {
		if err := d.applyDelete(id, hooks); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) applyCreate(
	b *csdem.BitDecoder,
	id, classCount int,
	classes map[int]*sendtable.ServerClass,
	baseline BaselineSource,
	hooks Hooks,
) error {
	classID, err := b.Read32(classIDBits(classCount))
	if err != nil {
		return err
	}
	serial, err := b.Read32(serialNumberBits)
	if err != nil {
		return err
	}
	sc, ok := classes[int(classID)]
	if !ok {
		return csdem.NewGameError("entity: create references unknown server class %d", classID)
	}
	if err := sendtable.MaterializeEntityType(sc); err != nil {
		return err
	}

	hooks.beforeCreate(id, sc)
	e := d.create(id, sc, int(serial))

	if base, ok := baseline.InstanceBaseline(sc.Index); ok {
		bb := csdem.NewBitDecoder(base)
		indices, err := decodeIndexRun(bb)
		if err != nil {
			return err
		}
		if err := applyFields(bb, e, indices); err != nil {
			return err
		}
	}

	indices, err := decodeIndexRun(b)
	if err != nil {
		return err
	}
	if err := applyFields(b, e, indices); err != nil {
		return err
	}

	hooks.afterCreate(e)
	return nil
}

func (d *Database) applyUpdate(b *csdem.BitDecoder, id int, hooks Hooks) error {
	e, ok := d.Get(id)
	if !ok {
		return csdem.NewGameError("entity: update of unknown entity %d", id)
	}
	indices, err := decodeIndexRun(b)
	if err != nil {
		return err
	}
	hooks.beforeUpdate(e, indices)
	if err := applyFields(b, e, indices); err != nil {
		return err
	}
	hooks.afterUpdate(e, indices)
	return nil
}

func (d *Database) applyDelete(id int, hooks Hooks) error {
	e, ok := d.Get(id)
	if !ok {
		return csdem.NewGameError("entity: delete of unknown entity %d", id)
	}
	hooks.beforeDelete(e)
	if _, err := d.delete(id); err != nil {
		return err
	}
	hooks.afterDelete(id)
	return nil
}

// applyFields decodes the field at each prioritized index, in order,
// directly into e's backing buffer at that entry's absolute offset
// (spec.md §4.4.2).
func applyFields(b *csdem.BitDecoder, e *Entity, indices []int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= len(e.ServerClass.Prioritized) {
			return csdem.NewGameError("entity: prioritized index %d out of range for class %q", idx, e.ServerClass.Name)
		}
		entry := e.ServerClass.Prioritized[idx]
		off := entry.AbsoluteOffset()
		size := entry.Property.ValueType().Size()
		if off < 0 || off+size > len(e.Instance.Data) {
			return csdem.NewGameError("entity: field %q offset out of bounds", entry.Property.Name)
		}
		if err := entry.Property.DecodeInto(b, e.Instance.Data[off:off+size]); err != nil {
			return err
		}
	}
	return nil
}
