package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/tcgx-triggers/internal/config"
	tcgxmcp "github.com/peterkuimelis/tcgx-triggers/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cards := flag.String("cards", cfg.Cards, "path to the card library")
	scenario := flag.String("scenario", cfg.Scenario, "default scenario for load_scenario")
	player := flag.Int("player", cfg.HumanPlayer, "default seat for the agent (0 or 1)")
	flag.Parse()

	// stdout carries the protocol, so diagnostics go to stderr only.
	diag, err := cfg.Diagnostics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer diag.Sync() //nolint:errcheck

	s := server.NewMCPServer("tcgx-triggers", "1.0.0")
	tcgxmcp.RegisterTools(s, &tcgxmcp.Tools{
		Cards:       *cards,
		Scenario:    *scenario,
		Player:      *player,
		Diagnostics: diag,
	})

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
