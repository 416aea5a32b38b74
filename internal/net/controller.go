package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/host"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

// NetworkController implements host.PlayerController over a JSON line stream.
type NetworkController struct {
	enc    *json.Encoder
	dec    *json.Decoder
	player int // which player this controller is (0 or 1)
	mu     sync.Mutex
}

var _ host.PlayerController = (*NetworkController)(nil)

// NewNetworkController creates a new controller for the given connection.
func NewNetworkController(conn io.ReadWriter, player int) *NetworkController {
	return &NetworkController{
		enc:    json.NewEncoder(conn),
		dec:    json.NewDecoder(conn),
		player: player,
	}
}

// BuildStateView creates a StateView from the perspective of the given player.
func BuildStateView(state *game.GameState, player int) *StateView {
	me := player
	opp := state.Opponent(me)

	sv := &StateView{
		Turn:       state.Turn,
		Phase:      state.Phase.String(),
		IsYourTurn: state.TurnPlayer == me,
		You:        buildPlayerView(state.Players[me], true),
		Opponent:   buildPlayerView(state.Players[opp], false),
	}
	return sv
}

func buildPlayerView(p *game.Player, isOwner bool) PlayerView {
	pv := PlayerView{
		LP:        p.LP,
		HandCount: len(p.Hand),
		DeckCount: len(p.Deck),
	}
	if isOwner {
		for _, c := range p.Hand {
			pv.Hand = append(pv.Hand, CardZoneView(c, true))
		}
	}
	for i := 0; i < game.MonsterZones; i++ {
		pv.Monsters[i] = CardZoneView(p.Field[i], isOwner)
	}
	for i := 0; i < game.SpellTrapZones; i++ {
		pv.SpellTrap[i] = CardZoneView(p.SpellTrap[i], isOwner)
	}
	if p.FieldSpell != nil {
		fv := CardZoneView(p.FieldSpell, isOwner)
		pv.FieldSpell = &fv
	}
	for _, c := range p.Graveyard {
		pv.Graveyard = append(pv.Graveyard, c.Card.Name)
	}
	return pv
}

// CardZoneView creates a ZoneView for a card slot. Face-down cards are
// hidden from everyone but their controller.
func CardZoneView(ci *game.CardInstance, isOwner bool) ZoneView {
	if ci == nil {
		return ZoneView{Empty: true}
	}
	zv := ZoneView{ID: ci.ID, Name: ci.Card.Name}
	if ci.Card.Kind == game.CardKindMonster {
		zv.ATK = ci.CurrentATK()
		zv.DEF = ci.CurrentDEF()
		if ci.Zone == game.ZoneField {
			zv.Position = ci.Position.String()
		}
	}
	if ci.Face == game.FaceDown && ci.Zone.IsField() {
		zv.FaceDown = true
		if !isOwner {
			return ZoneView{FaceDown: true, Position: zv.Position}
		}
	}
	return zv
}

// EventViewOf converts a logged event for the wire.
func EventViewOf(event log.GameEvent) EventView {
	return EventView{
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Effect:  event.Effect,
		Details: event.Details,
	}
}

// CollectionViewOf converts a resolved batch for the wire.
func CollectionViewOf(b host.Batch) *CollectionView {
	cv := &CollectionView{
		Event:     string(b.Event),
		OrderRule: b.OrderRule,
		Entries:   append([]string{}, b.Summaries...),
		Outcomes:  []string{},
	}
	for _, o := range b.Outcomes {
		cv.Outcomes = append(cv.Outcomes, OutcomeText(o))
	}
	return cv
}

// OutcomeText renders an activation outcome on one line.
func OutcomeText(o trigger.Outcome) string {
	if o.Reason != "" {
		return fmt.Sprintf("%s: %s", o.Kind, o.Reason)
	}
	return o.Kind.String()
}

// CardViews numbers candidates for a choose_cards prompt.
func CardViews(candidates []*game.CardInstance) []CardView {
	views := make([]CardView, 0, len(candidates))
	for i, c := range candidates {
		cv := CardView{Index: i, ID: c.ID, Name: c.Card.Name}
		if c.Card.Kind == game.CardKindMonster {
			cv.ATK = c.CurrentATK()
			cv.DEF = c.CurrentDEF()
		}
		views = append(views, cv)
	}
	return views
}

// send sends a server message to the client. Must be called with mu held.
func (nc *NetworkController) send(msg ServerMessage) error {
	return nc.enc.Encode(msg)
}

// recv reads a client message. Must be called with mu held.
func (nc *NetworkController) recv() (ClientMessage, error) {
	var msg ClientMessage
	err := nc.dec.Decode(&msg)
	return msg, err
}

// recvType reads messages until one of the wanted type arrives. A client
// that sends anything else mid-prompt is told so.
func (nc *NetworkController) recvType(want string) (ClientMessage, error) {
	for {
		msg, err := nc.recv()
		if err != nil {
			return msg, err
		}
		if msg.Type == want {
			return msg, nil
		}
		if err := nc.send(ServerMessage{Type: MsgResult, Error: fmt.Sprintf("expected %q, got %q", want, msg.Type)}); err != nil {
			return msg, err
		}
	}
}

// Send writes a message outside of a prompt.
func (nc *NetworkController) Send(msg ServerMessage) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.send(msg)
}

// Recv reads the next client command.
func (nc *NetworkController) Recv() (ClientMessage, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	return nc.recv()
}

// ChooseCards implements host.PlayerController.
func (nc *NetworkController) ChooseCards(ctx context.Context, state *game.GameState, prompt string, candidates []*game.CardInstance, min, max int) ([]*game.CardInstance, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	msg := ServerMessage{
		Type:       MsgChooseCards,
		Prompt:     prompt,
		Candidates: CardViews(candidates),
		Min:        min,
		Max:        max,
	}
	if err := nc.send(msg); err != nil {
		return nil, fmt.Errorf("send choose_cards: %w", err)
	}

	resp, err := nc.recvType(MsgCards)
	if err != nil {
		return nil, fmt.Errorf("recv cards: %w", err)
	}

	var result []*game.CardInstance
	for _, idx := range resp.Indices {
		if idx >= 0 && idx < len(candidates) {
			result = append(result, candidates[idx])
		}
	}
	return result, nil
}

// ChooseYesNo implements host.PlayerController.
func (nc *NetworkController) ChooseYesNo(ctx context.Context, state *game.GameState, prompt string) (bool, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	if err := nc.send(ServerMessage{Type: MsgPromptYesNo, Prompt: prompt}); err != nil {
		return false, fmt.Errorf("send prompt_yes_no: %w", err)
	}

	resp, err := nc.recvType(MsgYesNo)
	if err != nil {
		return false, fmt.Errorf("recv yes_no: %w", err)
	}
	return resp.Answer, nil
}

// Notify implements host.PlayerController.
func (nc *NetworkController) Notify(ctx context.Context, event log.GameEvent) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	ev := EventViewOf(event)
	return nc.send(ServerMessage{Type: MsgNotify, Event: &ev})
}
