package demo

import "github.com/icza/csdem"

// Command identifies a top-level frame's kind (spec.md §6), matching
// `original_source/csgopp`'s `demo::Command` enum exactly.
type Command int

const (
	CommandSignOn         Command = 1
	CommandPacket         Command = 2
	CommandSyncTick       Command = 3
	CommandConsoleCommand Command = 4
	CommandUserCommand    Command = 5
	CommandDataTables     Command = 6
	CommandStop           Command = 7
	CommandCustomData     Command = 8
	CommandStringTables   Command = 9
)

var commandNames = map[Command]string{
	CommandSignOn:         "SIGN_ON",
	CommandPacket:         "PACKET",
	CommandSyncTick:       "SYNC_TICK",
	CommandConsoleCommand: "CONSOLE_COMMAND",
	CommandUserCommand:    "USER_COMMAND",
	CommandDataTables:     "DATA_TABLES",
	CommandStop:           "STOP",
	CommandCustomData:     "CUSTOM_DATA",
	CommandStringTables:   "STRING_TABLES",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return "Command(?)"
}

// describeCommand reports c's name, failing for any value outside the
// nine known commands (spec.md §7: an unknown command is a wire-format
// violation, not a silently tolerated unknown).
func describeCommand(c Command) (string, error) {
	s, ok := commandNames[c]
	if !ok {
		return "", csdem.NewGameError("demo: unknown command %d", int(c))
	}
	return s, nil
}
