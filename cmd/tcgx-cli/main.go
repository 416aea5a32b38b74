package main

import (
	"fmt"
	"os"

	"github.com/peterkuimelis/tcgx-triggers/internal/cli"
	"github.com/peterkuimelis/tcgx-triggers/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cli.NewRootCommand(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
