package main

import (
	"encoding/json"
	"io"

	"github.com/icza/csdem/entity"
	"github.com/icza/csdem/gameevent"
	"github.com/icza/csdem/observer"
	"github.com/icza/csdem/sendtable"
	"github.com/icza/csdem/stringtable"
	"github.com/icza/csdem/user"
)

// traceEvent is one line of a generate/watch NDJSON trace: a single
// observer "On" callback, flattened to whatever fields apply.
type traceEvent struct {
	Kind string `json:"kind"`

	Command     int    `json:"command,omitempty"`
	MessageType int    `json:"messageType,omitempty"`
	Table       string `json:"table,omitempty"`
	Class       string `json:"class,omitempty"`
	EntityID    int    `json:"entityId,omitempty"`
	UserIndex   int    `json:"userIndex,omitempty"`
	UserName    string `json:"userName,omitempty"`
	EventName   string `json:"eventName,omitempty"`
}

// traceObserver writes one JSON object per "On" callback to w, in wire
// order (spec.md §4.7), for every "On" callback except
// OnGameEventTypeCreation, which is not traced. Before-hooks carry no
// new information the corresponding After-hook doesn't already have,
// so only the latter is traced.
type traceObserver struct {
	observer.Default
	enc *json.Encoder
}

func newTraceObserver(w io.Writer) *traceObserver {
	return &traceObserver{enc: json.NewEncoder(w)}
}

func (t *traceObserver) emit(ev traceEvent) {
	t.enc.Encode(ev)
}

func (t *traceObserver) OnFrame(command int) {
	t.emit(traceEvent{Kind: "frame", Command: command})
}

func (t *traceObserver) OnPacket(messageType int) {
	t.emit(traceEvent{Kind: "packet", MessageType: messageType})
}

func (t *traceObserver) OnDataTableCreation(table *sendtable.SendTable) {
	t.emit(traceEvent{Kind: "dataTableCreated", Table: table.Name})
}

func (t *traceObserver) OnServerClassCreation(class *sendtable.ServerClass) {
	t.emit(traceEvent{Kind: "serverClassCreated", Class: class.Name})
}

func (t *traceObserver) OnStringTableCreation(table *stringtable.StringTable) {
	t.emit(traceEvent{Kind: "stringTableCreated", Table: table.Name})
}

func (t *traceObserver) OnStringTableUpdate(table *stringtable.StringTable) {
	t.emit(traceEvent{Kind: "stringTableUpdated", Table: table.Name})
}

func (t *traceObserver) OnEntityCreation(e *entity.Entity) {
	ev := traceEvent{Kind: "entityCreated", EntityID: e.ID}
	if e.ServerClass != nil {
		ev.Class = e.ServerClass.Name
	}
	t.emit(ev)
}

func (t *traceObserver) OnEntityUpdate(e *entity.Entity, indices []int) {
	t.emit(traceEvent{Kind: "entityUpdated", EntityID: e.ID})
}

func (t *traceObserver) OnEntityDeletion(id int) {
	t.emit(traceEvent{Kind: "entityDeleted", EntityID: id})
}

func (t *traceObserver) OnUserCreation(u *user.User) {
	t.emit(traceEvent{Kind: "userCreated", UserIndex: u.Index, UserName: u.Name})
}

func (t *traceObserver) OnUserUpdate(u *user.User) {
	t.emit(traceEvent{Kind: "userUpdated", UserIndex: u.Index, UserName: u.Name})
}

func (t *traceObserver) OnGameEvent(ev *gameevent.GameEvent) {
	name := ""
	if ev.Type != nil {
		name = ev.Type.Name
	}
	t.emit(traceEvent{Kind: "gameEvent", EventName: name})
}
