package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icza/csdem/demo"
	"github.com/icza/csdem/observer"
)

func newAdvanceCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "advance <file>",
		Short: "Walk a demo frame by frame, printing a trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdvance(args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the NDJSON observer-callback trace instead of plain text")
	return cmd
}

func runAdvance(path string, asJSON bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var obs observer.Observer
	if asJSON {
		obs = newTraceObserver(os.Stdout)
	}

	d, err := demo.New(data, obs, nil, log)
	if err != nil {
		return err
	}

	for {
		ok, err := d.Advance()
		if err != nil {
			return err
		}
		if !asJSON {
			fmt.Printf("frame %-6d tick %-8d state %s\n", d.Frame(), d.Tick(), d.State())
		}
		if !ok {
			break
		}
	}
	return nil
}
