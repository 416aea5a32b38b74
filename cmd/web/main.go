package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterkuimelis/tcgx-triggers/internal/config"
	"github.com/peterkuimelis/tcgx-triggers/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	port := flag.Int("port", cfg.Port, "HTTP port to listen on")
	cards := flag.String("cards", cfg.Cards, "path to the card library")
	scenarios := flag.String("scenarios", filepath.Dir(cfg.Scenario), "directory of scenario files")
	player := flag.Int("player", cfg.HumanPlayer, "seat browser clients play (0 or 1)")
	flag.Parse()

	diag, err := cfg.Diagnostics()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer diag.Sync() //nolint:errcheck

	srv := web.NewServer(*cards, *scenarios, *player, diag)
	if err := srv.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
