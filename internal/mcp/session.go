package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/host"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
	tcgxnet "github.com/peterkuimelis/tcgx-triggers/internal/net"
)

// DecisionType identifies what the session is waiting on.
type DecisionType string

const (
	DecisionChooseCards DecisionType = "choose_cards"
	DecisionChooseYesNo DecisionType = "choose_yes_no"
	DecisionMoveDone    DecisionType = "move_done"
)

// ErrMoveInProgress is returned when a move is emitted while the previous
// one still waits on a decision.
var ErrMoveInProgress = errors.New("a move is still waiting on a decision")

// PendingDecision is what the move goroutine hands back to the tools: a
// prompt to answer, or the end of the move.
type PendingDecision struct {
	Type       DecisionType
	Player     int
	State      *tcgxnet.StateView
	Prompt     string
	Candidates []tcgxnet.CardView
	Min        int
	Max        int

	// set on move_done
	Collections []*tcgxnet.CollectionView
	Err         error
}

// Response types sent back from MCP tools to controllers.

type CardsResponse struct {
	Indices []int
}

type YesNoResponse struct {
	Answer bool
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events      []tcgxnet.EventView       `json:"events"`
	Collections []*tcgxnet.CollectionView `json:"collections,omitempty"`
	State       *tcgxnet.StateView        `json:"state,omitempty"`
	Pending     *PendingView              `json:"pending,omitempty"`
	Error       string                    `json:"error,omitempty"`
	GameOver    bool                      `json:"game_over"`
	Winner      int                       `json:"winner,omitempty"`
	Result      string                    `json:"result,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type       DecisionType       `json:"type"`
	Prompt     string             `json:"prompt,omitempty"`
	Candidates []tcgxnet.CardView `json:"candidates,omitempty"`
	Min        int                `json:"min,omitempty"`
	Max        int                `json:"max,omitempty"`
}

// GameSession holds one sandbox board driven through MCP tools. The agent
// plays one seat; the other seat accepts every optional effect.
type GameSession struct {
	duel      *host.Duel
	agentCtrl *MCPController
	agent     int
	diag      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu     sync.Mutex
	events []tcgxnet.EventView
	busy   bool
}

// NewGameSession builds a board from the card library and scenario files.
func NewGameSession(cardsFile, scenarioFile string, agent int, diag *zap.Logger) (*GameSession, error) {
	if agent != 0 && agent != 1 {
		return nil, fmt.Errorf("player must be 0 or 1, got %d", agent)
	}
	gs, err := tcgxnet.NewBoard(cardsFile, scenarioFile)
	if err != nil {
		return nil, err
	}
	if diag == nil {
		diag = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &GameSession{
		agent:     agent,
		diag:      diag,
		ctx:       ctx,
		cancel:    cancel,
		pendingCh: make(chan *PendingDecision, 1),
	}
	sess.agentCtrl = NewMCPController(agent, sess)
	bot := host.NewScriptedController()
	bot.DefaultYes = true

	var ctrls [2]host.PlayerController
	ctrls[agent] = sess.agentCtrl
	ctrls[gs.Opponent(agent)] = bot

	// Confirmations reach the agent as outcomes rather than engine prompts.
	sess.duel = host.NewDuel(host.DuelConfig{
		State:       gs,
		Logger:      log.NewMemoryLogger(),
		Diagnostics: diag,
		NoPrompts:   true,
	}, ctrls[0], ctrls[1])
	sess.duel.WithContext(ctx)
	return sess, nil
}

// Close abandons any move still in flight.
func (s *GameSession) Close() {
	s.cancel()
}

// Emit starts a move in the background and returns at its first decision,
// or when it completes.
func (s *GameSession) Emit(ctx context.Context, move host.Move) (*ToolResponse, error) {
	s.takeUndelivered()
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrMoveInProgress
	}
	s.busy = true
	s.mu.Unlock()

	go s.run(move)
	return s.waitForPending(ctx)
}

func (s *GameSession) run(move host.Move) {
	before := len(s.duel.Batches)
	err := s.duel.Apply(s.ctx, move)
	if err != nil {
		s.diag.Info("move failed", zap.Stringer("move", move), zap.Error(err))
	}
	var cols []*tcgxnet.CollectionView
	for _, b := range s.duel.Batches[before:] {
		cols = append(cols, tcgxnet.CollectionViewOf(b))
	}
	select {
	case s.pendingCh <- &PendingDecision{
		Type:        DecisionMoveDone,
		Player:      s.agent,
		State:       tcgxnet.BuildStateView(s.duel.Game, s.agent),
		Collections: cols,
		Err:         err,
	}:
	case <-s.ctx.Done():
	}
}

// Answer replies to a pending yes/no prompt.
func (s *GameSession) Answer(ctx context.Context, answer bool) (*ToolResponse, error) {
	s.takeUndelivered()
	if _, err := s.expect(DecisionChooseYesNo); err != nil {
		return nil, err
	}
	if err := s.reply(ctx, YesNoResponse{Answer: answer}); err != nil {
		return nil, err
	}
	return s.waitForPending(ctx)
}

// Select replies to a pending card selection with candidate indices.
func (s *GameSession) Select(ctx context.Context, indices []int) (*ToolResponse, error) {
	s.takeUndelivered()
	p, err := s.expect(DecisionChooseCards)
	if err != nil {
		return nil, err
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(p.Candidates) {
			return nil, fmt.Errorf("index %d out of range, must be 0-%d", idx, len(p.Candidates)-1)
		}
	}
	if len(indices) < p.Min || len(indices) > p.Max {
		return nil, fmt.Errorf("must select %d-%d card(s), got %d", p.Min, p.Max, len(indices))
	}
	if err := s.reply(ctx, CardsResponse{Indices: indices}); err != nil {
		return nil, err
	}
	return s.waitForPending(ctx)
}

func (s *GameSession) expect(t DecisionType) (*PendingDecision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.currentPending
	if p == nil && s.busy {
		return nil, errors.New("the move is still running, use get_board to pick up its next decision")
	}
	if p == nil || p.Type == DecisionMoveDone {
		return nil, errors.New("no pending decision, emit a move first")
	}
	if p.Type != t {
		return nil, fmt.Errorf("wrong tool: pending decision is %q, not %q", p.Type, t)
	}
	return p, nil
}

// reply hands an answer to the waiting controller. The answered decision is
// cleared so a later call cannot answer it twice.
func (s *GameSession) reply(ctx context.Context, resp any) error {
	select {
	case s.agentCtrl.responseCh <- resp:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return errors.New("session closed")
	}
	s.mu.Lock()
	s.currentPending = nil
	s.mu.Unlock()
	return nil
}

// adopt makes p the open decision. A finished move frees the session.
func (s *GameSession) adopt(p *PendingDecision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPending = p
	if p.Type == DecisionMoveDone {
		s.busy = false
	}
}

// takeUndelivered adopts a decision that arrived after the tool call waiting
// for it gave up.
func (s *GameSession) takeUndelivered() *PendingDecision {
	select {
	case p := <-s.pendingCh:
		s.adopt(p)
		return p
	default:
		return nil
	}
}

// Board reports the current board and the open decision without answering it.
// A move that finished while no tool was waiting reports its collections here.
func (s *GameSession) Board() *ToolResponse {
	late := s.takeUndelivered()
	resp := s.base()
	resp.Events = s.drainEvents()
	if late != nil && late.Type == DecisionMoveDone {
		resp.Collections = late.Collections
		if late.Err != nil {
			resp.Error = late.Err.Error()
		}
	}
	s.mu.Lock()
	if p := s.currentPending; p != nil && p.Type != DecisionMoveDone {
		resp.Pending = pendingView(p)
	}
	s.mu.Unlock()
	return resp
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev tcgxnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []tcgxnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []tcgxnet.EventView{}
	}
	return events
}

// waitForPending blocks until the move asks for a decision or finishes,
// then builds a ToolResponse with accumulated events. A cancelled call
// leaves the decision in the channel for the next tool call.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.adopt(pending)

	resp := s.base()
	resp.Events = s.drainEvents()
	resp.State = pending.State
	if pending.Type != DecisionMoveDone {
		resp.Pending = pendingView(pending)
		return resp, nil
	}
	resp.Collections = pending.Collections
	if pending.Err != nil {
		resp.Error = pending.Err.Error()
	}
	return resp, nil
}

func (s *GameSession) base() *ToolResponse {
	gs := s.duel.Game
	resp := &ToolResponse{
		State:    tcgxnet.BuildStateView(gs, s.agent),
		GameOver: gs.Over,
	}
	if gs.Over {
		resp.Winner = gs.Winner
		resp.Result = gs.Result
	}
	return resp
}

func pendingView(p *PendingDecision) *PendingView {
	return &PendingView{
		Type:       p.Type,
		Prompt:     p.Prompt,
		Candidates: p.Candidates,
		Min:        p.Min,
		Max:        p.Max,
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
