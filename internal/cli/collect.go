package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/host"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
	tcgxnet "github.com/peterkuimelis/tcgx-triggers/internal/net"
)

// CollectOptions holds flags for the collect command.
type CollectOptions struct {
	Decline bool
	Picks   []string
	ShowLog bool
}

// CollectReport is the JSON output of collect.
type CollectReport struct {
	Move        string                    `json:"move"`
	Error       string                    `json:"error,omitempty"`
	Collections []*tcgxnet.CollectionView `json:"collections"`
	LP          [2]int                    `json:"lp"`
	Log         []string                  `json:"log,omitempty"`
}

// NewCollectCommand creates the collect command.
func NewCollectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CollectOptions{}

	cmd := &cobra.Command{
		Use:   "collect <move>...",
		Short: "Perform one move and report the triggers it collects",
		Long: `Load the scenario, perform a single move and print every trigger
collection it causes, in activation order, with each entry's outcome.

Both players accept optional effects unless --decline is given. Target
prompts take the --pick names in order, then the first candidates.

Moves: summon ID [method], set ID, attack ID [TARGET], battle ATTACKER DESTROYED,
mutual A B, destroy ID [SOURCE], send ID, target ID SOURCE, standby, next_turn,
fire EVENT [ID] [ID] (announce an event without moving cards).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(contextOf(cmd), rootOpts, opts, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.Decline, "decline", false, "answer no to every optional effect")
	cmd.Flags().StringArrayVar(&opts.Picks, "pick", nil, "card name to choose at the next target prompt (repeatable)")
	cmd.Flags().BoolVar(&opts.ShowLog, "log", false, "include the event log")

	return cmd
}

func runCollect(ctx context.Context, rootOpts *RootOptions, opts *CollectOptions, line string, w io.Writer) error {
	move, err := host.ParseMove(line)
	if err != nil {
		return err
	}
	gs, err := tcgxnet.NewBoard(rootOpts.Config.Cards, rootOpts.Config.Scenario)
	if err != nil {
		return err
	}
	diag, err := rootOpts.Config.Diagnostics()
	if err != nil {
		return err
	}
	defer diag.Sync() //nolint:errcheck

	var ctrls [2]*host.ScriptedController
	for i := range ctrls {
		ctrls[i] = host.NewScriptedController()
		ctrls[i].DefaultYes = !opts.Decline
		for _, name := range opts.Picks {
			ctrls[i].AddCardChoice(name)
		}
	}
	text := rootOpts.Format != "json"
	memory := log.NewMemoryLogger()
	var logger log.EventLogger = memory
	if opts.ShowLog && text {
		// the log streams ahead of the report as the move plays out
		logger = log.NewTextLogger(w)
	}
	d := host.NewDuel(host.DuelConfig{
		State:       gs,
		Logger:      logger,
		Diagnostics: diag,
		DevMode:     rootOpts.Config.DevMode,
	}, ctrls[0], ctrls[1])

	report := CollectReport{Move: move.String(), Collections: []*tcgxnet.CollectionView{}}
	if err := d.Apply(ctx, move); err != nil {
		report.Error = err.Error()
	}
	for _, b := range d.Batches {
		report.Collections = append(report.Collections, tcgxnet.CollectionViewOf(b))
	}
	report.LP = [2]int{gs.Players[0].LP, gs.Players[1].LP}
	if !text {
		if opts.ShowLog {
			for _, ev := range memory.Events() {
				report.Log = append(report.Log, log.FormatEvent(ev))
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	writeReport(w, report, gs)
	return nil
}

func writeReport(w io.Writer, r CollectReport, gs *game.GameState) {
	fmt.Fprintf(w, "move: %s\n", r.Move)
	if r.Error != "" {
		fmt.Fprintf(w, "error: %s\n", r.Error)
	}
	if len(r.Collections) == 0 {
		fmt.Fprintln(w, "no triggers")
	}
	for _, c := range r.Collections {
		fmt.Fprintf(w, "%s (%s)\n", c.Event, c.OrderRule)
		for i, e := range c.Entries {
			outcome := ""
			if i < len(c.Outcomes) {
				outcome = c.Outcomes[i]
			}
			fmt.Fprintf(w, "  %d. %s -> %s\n", i+1, e, outcome)
		}
	}
	fmt.Fprintf(w, "LP: P1 %d / P2 %d", r.LP[0], r.LP[1])
	if gs.Over {
		fmt.Fprintf(w, " (%s)", gs.Result)
	}
	fmt.Fprintln(w)
}
