package net

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/host"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
)

// Session drives one sandbox duel from a connected client. The client
// plays one seat; the other seat answers like an AI opponent.
type Session struct {
	Duel   *host.Duel
	ctrl   *NetworkController
	player int
	diag   *zap.Logger
}

// NewSession wires a duel over gs to conn. player is the client's seat.
func NewSession(conn io.ReadWriter, gs *game.GameState, player int, diag *zap.Logger) *Session {
	if diag == nil {
		diag = zap.NewNop()
	}
	ctrl := NewNetworkController(conn, player)
	bot := host.NewScriptedController()
	bot.DefaultYes = true

	var ctrls [2]host.PlayerController
	ctrls[player] = ctrl
	ctrls[gs.Opponent(player)] = bot

	d := host.NewDuel(host.DuelConfig{
		State:       gs,
		Logger:      log.NewMemoryLogger(),
		Diagnostics: diag,
	}, ctrls[0], ctrls[1])

	return &Session{Duel: d, ctrl: ctrl, player: player, diag: diag}
}

// Run serves client commands until the connection closes or ctx ends.
func (s *Session) Run(ctx context.Context) error {
	s.Duel.WithContext(ctx)
	if err := s.ctrl.Send(s.result(nil)); err != nil {
		return fmt.Errorf("send board: %w", err)
	}

	for ctx.Err() == nil {
		msg, err := s.ctrl.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("recv command: %w", err)
		}

		switch msg.Type {
		case MsgEmit:
			err = s.emit(ctx, msg.Move)
		case MsgBoard:
			err = s.ctrl.Send(s.result(nil))
		default:
			err = s.ctrl.Send(s.result(fmt.Errorf("unknown message %q", msg.Type)))
		}
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

// emit performs a move, reports every batch it resolved, then the board.
func (s *Session) emit(ctx context.Context, move *host.Move) error {
	if move == nil {
		return s.ctrl.Send(s.result(errors.New("emit needs a move")))
	}
	before := len(s.Duel.Batches)
	moveErr := s.Duel.Apply(ctx, *move)
	if moveErr != nil {
		s.diag.Info("move failed", zap.Stringer("move", move), zap.Error(moveErr))
	}
	for _, b := range s.Duel.Batches[before:] {
		if err := s.ctrl.Send(ServerMessage{Type: MsgCollection, Collection: CollectionViewOf(b)}); err != nil {
			return fmt.Errorf("send collection: %w", err)
		}
	}
	if err := s.ctrl.Send(s.result(moveErr)); err != nil {
		return fmt.Errorf("send result: %w", err)
	}
	return nil
}

func (s *Session) result(err error) ServerMessage {
	gs := s.Duel.Game
	msg := ServerMessage{
		Type:   MsgResult,
		State:  BuildStateView(gs, s.player),
		Over:   gs.Over,
		Winner: gs.Winner,
		Result: gs.Result,
	}
	if err != nil {
		msg.Error = err.Error()
	}
	return msg
}
