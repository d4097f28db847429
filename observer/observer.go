// Package observer defines the before/after callback interface demo
// playback drives at every interesting boundary (spec.md §4.7), and a
// no-op Default implementation consumers can embed and override
// selectively.
package observer

import (
	"github.com/icza/csdem/entity"
	"github.com/icza/csdem/gameevent"
	"github.com/icza/csdem/sendtable"
	"github.com/icza/csdem/stringtable"
	"github.com/icza/csdem/user"
)

// Observer receives one call per boundary demo playback crosses, in
// wire order. Before-hooks precede the corresponding mutation,
// after-hooks follow it (spec.md §9 "Observer dispatch": the source
// uses CRTP templates for zero-cost dispatch; a plain interface plays
// the same role here).
type Observer interface {
	BeforeFrame()
	OnFrame(command int)

	BeforePacket()
	OnPacket(messageType int)

	BeforeDataTableCreation()
	OnDataTableCreation(table *sendtable.SendTable)

	BeforeServerClassCreation()
	OnServerClassCreation(class *sendtable.ServerClass)

	BeforeStringTableCreation()
	OnStringTableCreation(table *stringtable.StringTable)

	BeforeStringTableUpdate(table *stringtable.StringTable)
	OnStringTableUpdate(table *stringtable.StringTable)

	BeforeEntityCreation(id int, class *sendtable.ServerClass)
	OnEntityCreation(e *entity.Entity)

	BeforeEntityUpdate(e *entity.Entity, indices []int)
	OnEntityUpdate(e *entity.Entity, indices []int)

	BeforeEntityDeletion(e *entity.Entity)
	OnEntityDeletion(id int)

	BeforeUserCreation(index int)
	OnUserCreation(u *user.User)

	BeforeUserUpdate(u *user.User)
	OnUserUpdate(u *user.User)

	BeforeGameEventTypeCreation()
	OnGameEventTypeCreation(t *gameevent.GameEventType)

	BeforeGameEvent()
	OnGameEvent(ev *gameevent.GameEvent)
}

// Default is a no-op Observer. Embed it in a concrete observer type and
// override only the hooks of interest.
type Default struct{}

func (Default) BeforeFrame()      {}
func (Default) OnFrame(int)       {}
func (Default) BeforePacket()     {}
func (Default) OnPacket(int)      {}

func (Default) BeforeDataTableCreation()                      {}
func (Default) OnDataTableCreation(*sendtable.SendTable)       {}
func (Default) BeforeServerClassCreation()                    {}
func (Default) OnServerClassCreation(*sendtable.ServerClass)   {}

func (Default) BeforeStringTableCreation()                   {}
func (Default) OnStringTableCreation(*stringtable.StringTable) {}
func (Default) BeforeStringTableUpdate(*stringtable.StringTable) {}
func (Default) OnStringTableUpdate(*stringtable.StringTable)     {}

func (Default) BeforeEntityCreation(int, *sendtable.ServerClass) {}
func (Default) OnEntityCreation(*entity.Entity)                  {}
func (Default) BeforeEntityUpdate(*entity.Entity, []int)         {}
func (Default) OnEntityUpdate(*entity.Entity, []int)             {}
func (Default) BeforeEntityDeletion(*entity.Entity)              {}
func (Default) OnEntityDeletion(int)                             {}

func (Default) BeforeUserCreation(int)   {}
func (Default) OnUserCreation(*user.User) {}
func (Default) BeforeUserUpdate(*user.User) {}
func (Default) OnUserUpdate(*user.User)     {}

func (Default) BeforeGameEventTypeCreation()              {}
func (Default) OnGameEventTypeCreation(*gameevent.GameEventType) {}
func (Default) BeforeGameEvent()                          {}
func (Default) OnGameEvent(*gameevent.GameEvent)          {}
