// Package cli wires the tcgx command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/peterkuimelis/tcgx-triggers/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config config.Config
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. cfg supplies flag defaults.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "tcgx",
		Short: "tcgx - triggered effect sandbox",
		Long:  "Load a board, perform moves and watch which triggered effects are collected and how they resolve.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.Config.Validate()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config.Cards, "cards", cfg.Cards, "path to the card library")
	cmd.PersistentFlags().StringVar(&opts.Config.Scenario, "scenario", cfg.Scenario, "path to the scenario")
	cmd.PersistentFlags().BoolVar(&opts.Config.DevMode, "dev", cfg.DevMode, "development logging")

	cmd.AddCommand(NewCollectCommand(opts))
	cmd.AddCommand(NewHostCommand(opts))
	cmd.AddCommand(NewJoinCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
