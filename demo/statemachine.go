package demo

import "github.com/icza/csdem"

// State is the frame dispatcher's own state (spec.md §4.8): demo
// playback never suspends mid-frame, but a caller inspecting State
// between Advance calls can tell a PACKET's net-message loop apart
// from the idle-between-frames state, or notice playback has stopped.
type State int

const (
	StateAwaitingHeader State = iota
	StateAwaitingFrame
	StateInPacket
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateAwaitingHeader:
		return "AwaitingHeader"
	case StateAwaitingFrame:
		return "AwaitingFrame"
	case StateInPacket:
		return "InPacket"
	case StateStopped:
		return "Stopped"
	default:
		return "State(?)"
	}
}

// transitionToPacket moves AwaitingFrame -> InPacket on a SIGN_ON or
// PACKET command (spec.md §4.8). Any other current state is a defect
// in the dispatcher itself, not a malformed-input condition.
func (d *Demo) transitionToPacket() {
	if d.state != StateAwaitingFrame {
		panic(csdem.NewGameError("demo: transitionToPacket from state %s", d.state))
	}
	d.state = StateInPacket
}

// transitionPacketExhausted moves InPacket -> AwaitingFrame once the
// packet's byte limit is fully consumed.
func (d *Demo) transitionPacketExhausted() {
	if d.state != StateInPacket {
		panic(csdem.NewGameError("demo: transitionPacketExhausted from state %s", d.state))
	}
	d.state = StateAwaitingFrame
}

// stop moves any state to Stopped, on a STOP command or a
// CustomDataUnexpected error (spec.md §4.8).
func (d *Demo) stop() {
	d.state = StateStopped
}
