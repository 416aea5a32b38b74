package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// Server hosts sandbox sessions for TCP clients. Each connection gets its
// own board built from the scenario.
type Server struct {
	Cards       string
	Scenario    string
	Port        string
	HumanPlayer int
	Diagnostics *zap.Logger
}

// NewBoard loads the library and scenario and builds a fresh board.
func NewBoard(cardsFile, scenarioFile string) (*game.GameState, error) {
	lib, err := game.LoadLibrary(cardsFile)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	sf, err := game.LoadScenario(scenarioFile)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	return sf.Build(lib)
}

// Run listens until ctx is cancelled, serving each client in its own goroutine.
func (s *Server) Run(ctx context.Context) error {
	diag := s.Diagnostics
	if diag == nil {
		diag = zap.NewNop()
	}
	// fail fast on bad files
	if _, err := NewBoard(s.Cards, s.Scenario); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	diag.Info("waiting for clients", zap.String("port", s.Port))

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			s.serve(ctx, conn, diag.With(zap.Stringer("remote", conn.RemoteAddr())))
		}()
	}
}

func (s *Server) serve(ctx context.Context, conn net.Conn, diag *zap.Logger) {
	diag.Info("client connected")
	gs, err := NewBoard(s.Cards, s.Scenario)
	if err != nil {
		diag.Error("build board", zap.Error(err))
		return
	}
	if err := NewSession(conn, gs, s.HumanPlayer, diag).Run(ctx); err != nil {
		diag.Warn("session ended", zap.Error(err))
		return
	}
	diag.Info("client disconnected")
}
