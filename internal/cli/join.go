package cli

import (
	"github.com/spf13/cobra"

	tcgxnet "github.com/peterkuimelis/tcgx-triggers/internal/net"
)

// NewJoinCommand creates the join command.
func NewJoinCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Connect to a sandbox server and play interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tcgxnet.Connect(contextOf(cmd), addr, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "server address to connect to")

	return cmd
}
