package main

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/icza/csdem/demo"
)

func newGenerateCmd() *cobra.Command {
	var useZstd bool
	var out string

	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Emit every observer callback as an NDJSON trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0], out, useZstd)
		},
	}
	cmd.Flags().BoolVar(&useZstd, "zstd", false, "zstd-compress the trace")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}

func runGenerate(path, out string, useZstd bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	var sink io.Writer = bw
	if useZstd {
		enc, err := zstd.NewWriter(bw)
		if err != nil {
			return err
		}
		defer enc.Close()
		sink = enc
	}

	obs := newTraceObserver(sink)
	d, err := demo.New(data, obs, nil, log)
	if err != nil {
		return err
	}
	for {
		ok, err := d.Advance()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}
