package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/icza/csdem"
	"github.com/icza/csdem/demo"
	"github.com/icza/csdem/gameevent"
	"github.com/icza/csdem/observer"
	"github.com/icza/csdem/user"
)

// summaryObserver accumulates the handful of facts `summary` renders:
// round outcomes and the set of users seen, matching
// `original_source/csgopp/cli/summary.h`'s SummaryClient, which hangs
// off the same two observer hooks.
type summaryObserver struct {
	observer.Default
	rounds []string
	users  map[int]*user.User
}

func newSummaryObserver() *summaryObserver {
	return &summaryObserver{users: make(map[int]*user.User)}
}

func (s *summaryObserver) OnUserCreation(u *user.User) { s.users[u.Index] = u }
func (s *summaryObserver) OnUserUpdate(u *user.User)   { s.users[u.Index] = u }

func (s *summaryObserver) OnGameEvent(ev *gameevent.GameEvent) {
	if ev.Type == nil || ev.Type.Name != "round_end" {
		return
	}
	lens, err := csdem.NewLens(ev.Type.Object).Member("winner")
	if err != nil {
		return
	}
	s.rounds = append(s.rounds, demo.DescribeTeam(int(ev.Instance.Int32(lens))))
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file>",
		Short: "Print a human-readable summary of a demo",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummary,
	}
}

func runSummary(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	obs := newSummaryObserver()
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

	color.Output = colorable.NewColorableStdout()
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Println("Demo summary")
	fmt.Printf("  Map:      %s\n", cyan.Sprint(d.Header.MapName))
	fmt.Printf("  Server:   %s\n", d.Header.ServerName)
	fmt.Printf("  Ticks:    %s\n", humanize.Comma(int64(d.Header.PlaybackTicks)))
	fmt.Printf("  Frames:   %s\n", humanize.Comma(int64(d.Frame())))
	fmt.Printf("  Rounds:   %s\n", humanize.Comma(int64(len(obs.rounds))))
	for i, winner := range obs.rounds {
		fmt.Printf("    round %d: %s\n", i+1, winner)
	}

	ids := make([]int, 0, len(obs.users))
	for id := range obs.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	bold.Println("\nPlayers")
	for _, id := range ids {
		u := obs.users[id]
		fmt.Printf("  [%3d] %s\n", id, u.Name)
	}

	return nil
}
