// Package gameevent implements the named, descriptor-driven schema and
// keyed-tuple instance decode for game events (spec.md §3
// GameEventType/GameEvent, §4.6).
package gameevent

import "github.com/icza/csdem"

// Kind identifies one of the eight value types a game event key can
// hold, numbered to match `original_source/csgopp`'s
// `game_event::lookup_type` switch exactly (string=1 .. wstring=8).
type Kind int

const (
	KindString Kind = iota + 1
	KindFloat
	KindInt32
	KindInt16
	KindUint8
	KindBool
	KindUint64
	KindWString
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindInt32:
		return "int32"
	case KindInt16:
		return "int16"
	case KindUint8:
		return "uint8"
	case KindBool:
		return "bool"
	case KindUint64:
		return "uint64"
	case KindWString:
		return "wstring"
	default:
		return "Kind(?)"
	}
}

// valueType maps a Kind to the csdem runtime type backing it.
func (k Kind) valueType() (csdem.Type, error) {
	switch k {
	case KindString:
		return csdem.NewValueType(csdem.KindString), nil
	case KindFloat:
		return csdem.NewValueType(csdem.KindFloat32), nil
	case KindInt32:
		return csdem.NewValueType(csdem.KindInt32), nil
	case KindInt16:
		return csdem.NewValueType(csdem.KindInt16), nil
	case KindUint8:
		return csdem.NewValueType(csdem.KindUint8), nil
	case KindBool:
		return csdem.NewValueType(csdem.KindBool), nil
	case KindUint64:
		return csdem.NewValueType(csdem.KindUint64), nil
	case KindWString:
		return csdem.NewValueType(csdem.KindWString), nil
	default:
		return nil, csdem.NewGameError("gameevent: invalid value type %d", int(k))
	}
}

// Member is one key of a GameEventType's schema, in descriptor order —
// the same order a GameEvent's wire keys are positionally matched
// against.
type Member struct {
	Name string
	Kind Kind
}

// GameEventType is the named schema a CSVCMsg_GameEventList descriptor
// builds: an ObjectType plus the per-member Kind needed to dispatch a
// GameEvent instance's keyed-tuple decode (spec.md §4.6).
type GameEventType struct {
	ID      int
	Name    string
	Object  *csdem.ObjectType
	Members []Member
}

// GameEvent is one decoded instance of a GameEventType.
type GameEvent struct {
	Type     *GameEventType
	Instance *csdem.Instance
}
