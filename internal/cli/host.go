package cli

import (
	"context"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	tcgxnet "github.com/peterkuimelis/tcgx-triggers/internal/net"
)

// NewHostCommand creates the host command.
func NewHostCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Serve the scenario to TCP clients",
		Long:  "Start a sandbox server. Every client that joins gets a fresh copy of the scenario's board.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			diag, err := rootOpts.Config.Diagnostics()
			if err != nil {
				return err
			}
			defer diag.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt)
			defer stop()

			srv := &tcgxnet.Server{
				Cards:       rootOpts.Config.Cards,
				Scenario:    rootOpts.Config.Scenario,
				Port:        strconv.Itoa(rootOpts.Config.Port),
				HumanPlayer: rootOpts.Config.HumanPlayer,
				Diagnostics: diag,
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&rootOpts.Config.Port, "port", rootOpts.Config.Port, "TCP port to listen on")
	cmd.Flags().IntVar(&rootOpts.Config.HumanPlayer, "player", rootOpts.Config.HumanPlayer, "seat clients play (0 or 1)")

	return cmd
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
