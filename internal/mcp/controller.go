package mcp

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/host"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
	"github.com/peterkuimelis/tcgx-triggers/internal/net"
)

// MCPController implements host.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan any
}

var _ host.PlayerController = (*MCPController)(nil)

// NewMCPController creates a controller for the given player.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan any),
	}
}

// await publishes a decision and blocks until a tool answers it.
func (c *MCPController) await(ctx context.Context, pd *PendingDecision) (any, error) {
	select {
	case c.session.pendingCh <- pd:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-c.responseCh:
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ChooseCards implements host.PlayerController.
func (c *MCPController) ChooseCards(ctx context.Context, state *game.GameState, prompt string, candidates []*game.CardInstance, min, max int) ([]*game.CardInstance, error) {
	resp, err := c.await(ctx, &PendingDecision{
		Type:       DecisionChooseCards,
		Player:     c.player,
		State:      net.BuildStateView(state, c.player),
		Prompt:     prompt,
		Candidates: net.CardViews(candidates),
		Min:        min,
		Max:        max,
	})
	if err != nil {
		return nil, err
	}
	cr, ok := resp.(CardsResponse)
	if !ok {
		return nil, fmt.Errorf("card choice answered with %T", resp)
	}

	var result []*game.CardInstance
	for _, idx := range cr.Indices {
		if idx >= 0 && idx < len(candidates) {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// ChooseYesNo implements host.PlayerController.
func (c *MCPController) ChooseYesNo(ctx context.Context, state *game.GameState, prompt string) (bool, error) {
	resp, err := c.await(ctx, &PendingDecision{
		Type:   DecisionChooseYesNo,
		Player: c.player,
		State:  net.BuildStateView(state, c.player),
		Prompt: prompt,
	})
	if err != nil {
		return false, err
	}
	yn, ok := resp.(YesNoResponse)
	if !ok {
		return false, fmt.Errorf("yes/no prompt answered with %T", resp)
	}
	return yn.Answer, nil
}

// Notify implements host.PlayerController.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(net.EventViewOf(event))
	return nil
}
