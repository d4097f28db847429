// Command csdem is the external collaborator around the csdem/demo
// playback engine: it drives a Demo purely through the
// csdem/observer.Observer interface, never reaching into
// sendtable/entity/stringtable internals directly.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	appName    = "csdem"
	appVersion = "v0.1.0"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "csdem: loading ~/.csdemrc:", err)
		os.Exit(1)
	}

	color.NoColor = !cfg.Color

	var logLevel string

	root := &cobra.Command{
		Use:     appName,
		Short:   "Parse and observe CS:GO demo files",
		Version: appVersion,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(parseLevel(logLevel))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel,
		"log level: critical, error, warning, notice, info, debug")

	root.AddCommand(newAdvanceCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newWatchCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
