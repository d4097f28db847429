// Package entity implements the sparse entity database and the
// PacketEntities delta decoder that keeps it in sync with the wire
// (spec.md §3 "EntityType"/§4.4).
package entity

import (
	"github.com/icza/csdem"
	"github.com/icza/csdem/sendtable"
)

// Entity is a live replicated object: a value of an EntityType
// carrying its own byte buffer (spec.md glossary).
type Entity struct {
	ID          int
	ServerClass *sendtable.ServerClass
	Serial      int
	Instance    *csdem.Instance
}

// Database is the sparse id -> Entity map PacketEntities deltas apply
// against.
type Database struct {
	entities map[int]*Entity
}

// NewDatabase creates an empty entity database.
func NewDatabase() *Database {
	return &Database{entities: make(map[int]*Entity)}
}

// Get returns the entity at id, if any.
func (d *Database) Get(id int) (*Entity, bool) {
	e, ok := d.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (d *Database) Len() int { return len(d.entities) }

func (d *Database) create(id int, sc *sendtable.ServerClass, serial int) *Entity {
	e := &Entity{ID: id, ServerClass: sc, Serial: serial, Instance: csdem.NewInstance(sc.EntityType)}
	d.entities[id] = e
	return e
}

// delete removes the entity at id. Deleting an already-vacant slot is
// a fatal error (spec.md §8 boundary behavior).
func (d *Database) delete(id int) (*Entity, error) {
	e, ok := d.entities[id]
	if !ok {
		return nil, csdem.NewGameError("entity: delete of vacant slot %d", id)
	}
	e.Instance.Destroy()
	delete(d.entities, id)
	return e, nil
}

// Hooks are the observer call sites ApplyPacketEntities invokes
// inline, in wire order, as it decodes each entity event (spec.md
// §4.7: before-hooks precede mutation, after-hooks follow it). Any nil
// field is treated as a no-op.
type Hooks struct {
	BeforeCreate func(id int, sc *sendtable.ServerClass)
	AfterCreate  func(e *Entity)
	BeforeUpdate func(e *Entity, indices []int)
	AfterUpdate  func(e *Entity, indices []int)
	BeforeDelete func(e *Entity)
	AfterDelete  func(id int)
}

func (h Hooks) beforeCreate(id int, sc *sendtable.ServerClass) {
	if h.BeforeCreate != nil {
		h.BeforeCreate(id, sc)
	}
}
func (h Hooks) afterCreate(e *Entity) {
	if h.AfterCreate != nil {
		h.AfterCreate(e)
	}
}
func (h Hooks) beforeUpdate(e *Entity, idx []int) {
	if h.BeforeUpdate != nil {
		h.BeforeUpdate(e, idx)
	}
}
func (h Hooks) afterUpdate(e *Entity, idx []int) {
	if h.AfterUpdate != nil {
		h.AfterUpdate(e, idx)
	}
}
func (h Hooks) beforeDelete(e *Entity) {
	if h.BeforeDelete != nil {
		h.BeforeDelete(e)
	}
}
func (h Hooks) afterDelete(id int) {
	if h.AfterDelete != nil {
		h.AfterDelete(id)
	}
}

// BaselineSource supplies a server class's instance baseline bitstream
// (spec.md §4.4 step 3): the string-table entry a freshly created
// entity's fields are first decoded against, before the packet's own
// update run is applied on top.
type BaselineSource interface {
	InstanceBaseline(classIndex int) ([]byte, bool)
}
