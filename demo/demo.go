// Package demo ties the low-level wire machinery (csdem, sendtable,
// entity, stringtable, gameevent, user) together into a single
// playback façade: the frame dispatcher and state machine spec.md §4
// and §4.8 describe, playing the role the teacher's rep.Rep plays
// over s2prot's decoding machinery.
package demo

import (
	"github.com/google/uuid"
	"github.com/op/go-logging"

	"github.com/icza/csdem"
	"github.com/icza/csdem/entity"
	"github.com/icza/csdem/gameevent"
	"github.com/icza/csdem/observer"
	"github.com/icza/csdem/sendtable"
	"github.com/icza/csdem/stringtable"
	"github.com/icza/csdem/user"
)

var defaultLogger = logging.MustGetLogger("csdem/demo")

// Demo is a single parse of one DEM file: the header, every piece of
// replicated state accumulated so far, and the cursor driving
// Advance (spec.md §2 "data flow").
type Demo struct {
	ID uuid.UUID

	Header *csdem.Header

	cs    *csdem.CodedStream
	state State
	tick  int32
	frame int

	tables       []*sendtable.SendTable
	tablesByName map[string]*sendtable.SendTable
	classes      map[int]*sendtable.ServerClass

	entities *entity.Database
	strings  *stringTables
	events   map[int]*gameevent.GameEventType
	users    *user.Registry

	observer observer.Observer
	hooks    entity.Hooks
	cache    *sendtable.Cache
	log      *logging.Logger
}

// New constructs a Demo from the raw bytes of a DEM file. obs receives
// every before/after callback (spec.md §4.7); a nil obs is replaced
// with observer.Default{} (every hook a no-op). A nil cache disables
// the EntityType memoization described in SPEC_FULL.md §6.3. A nil log
// uses the package default, which writes to stderr.
func New(data []byte, obs observer.Observer, cache *sendtable.Cache, log *logging.Logger) (*Demo, error) {
	if obs == nil {
		obs = observer.Default{}
	}
	if log == nil {
		log = defaultLogger
	}

	header, err := csdem.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if int(header.SignOnLength) < 0 || csdem.HeaderSize+int(header.SignOnLength) > len(data) {
		return nil, csdem.NewGameError("demo: sign-on length %d exceeds file size", header.SignOnLength)
	}

	d := &Demo{
		ID:           uuid.New(),
		Header:       header,
		cs:           csdem.NewCodedStream(data[csdem.HeaderSize:]),
		state:        StateAwaitingFrame,
		tablesByName: make(map[string]*sendtable.SendTable),
		classes:      make(map[int]*sendtable.ServerClass),
		entities:     entity.NewDatabase(),
		strings:      newStringTables(),
		events:       make(map[int]*gameevent.GameEventType),
		users:        user.NewRegistry(),
		observer:     obs,
		cache:        cache,
		log:          log,
	}
	d.hooks = observer.EntityHooks(obs)
	return d, nil
}

// Tick returns the tick number of the most recently advanced frame.
func (d *Demo) Tick() int32 { return d.tick }

// Frame returns the number of frames advanced so far.
func (d *Demo) Frame() int { return d.frame }

// State returns the dispatcher's current state (spec.md §4.8).
func (d *Demo) State() State { return d.state }

// Entities returns the live entity database.
func (d *Demo) Entities() *entity.Database { return d.entities }

// Users returns the registry of known player identities.
func (d *Demo) Users() *user.Registry { return d.users }

// ServerClass looks up a server class by its wire index.
func (d *Demo) ServerClass(index int) (*sendtable.ServerClass, bool) {
	sc, ok := d.classes[index]
	return sc, ok
}

// GameEventType looks up a game event schema by its wire id.
func (d *Demo) GameEventType(id int) (*gameevent.GameEventType, bool) {
	gt, ok := d.events[id]
	return gt, ok
}
