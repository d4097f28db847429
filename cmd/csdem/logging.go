package main

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("csdem")

var stderrFormat = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s}%{color:reset} %{message}`,
)

// setupLogging wires a single stderr backend at the given level,
// matching the module-level logging package's own backend/formatter
// split.
func setupLogging(level logging.Level) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	return log
}

func parseLevel(s string) logging.Level {
	switch s {
	case "critical":
		return logging.CRITICAL
	case "error":
		return logging.ERROR
	case "warning":
		return logging.WARNING
	case "notice":
		return logging.NOTICE
	case "debug":
		return logging.DEBUG
	default:
		return logging.INFO
	}
}
