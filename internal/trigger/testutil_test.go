package trigger_test

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/host"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
)

// --- card builders ---

func monster(id int, name, typ string, atk int, effects ...*game.EffectDefinition) *game.Card {
	return &game.Card{ID: id, Name: name, Kind: game.CardKindMonster, Type: typ, Level: 4, ATK: atk, DEF: atk, Effects: effects}
}

func trap(name string, effects ...*game.EffectDefinition) *game.Card {
	return &game.Card{Name: name, Kind: game.CardKindTrap, Effects: effects}
}

func fieldSpell(name string, effects ...*game.EffectDefinition) *game.Card {
	return &game.Card{Name: name, Kind: game.CardKindSpell, Sub: game.SubField, Effects: effects}
}

func onEvent(id string, ev game.EventKind, opts ...func(*game.EffectDefinition)) *game.EffectDefinition {
	eff := &game.EffectDefinition{ID: id, Timing: game.TimingOnEvent, Event: ev}
	for _, opt := range opts {
		opt(eff)
	}
	return eff
}

func passive(id string, spec game.PassiveSpec) *game.EffectDefinition {
	return &game.EffectDefinition{ID: id, Timing: game.TimingPassive, Passive: &spec}
}

func gainLP(n int) func(*game.EffectDefinition) {
	return func(e *game.EffectDefinition) {
		e.Actions = append(e.Actions, game.ActionSpec{Kind: game.ActionGainLP, Amount: n})
	}
}

func noPrompt(e *game.EffectDefinition) {
	f := false
	e.PromptUser = &f
}

// --- board builders ---

type board struct {
	gs *game.GameState
}

func newBoard(turn int) *board {
	gs := game.NewGameState()
	gs.Turn = turn
	gs.Players[0].Control = game.ControlHuman
	gs.Players[1].Control = game.ControlAI
	return &board{gs: gs}
}

func (b *board) field(player int, card *game.Card) *game.CardInstance {
	ci := b.gs.CreateCardInstance(card, player)
	ci.Face = game.FaceUp
	p := b.gs.Players[player]
	p.PlaceMonster(ci, p.FreeMonsterZone())
	return ci
}

func (b *board) set(player int, card *game.Card, turnPlaced int) *game.CardInstance {
	ci := b.gs.CreateCardInstance(card, player)
	ci.Face = game.FaceDown
	ci.TurnPlaced = turnPlaced
	p := b.gs.Players[player]
	p.PlaceSpellTrap(ci, p.FreeSpellTrapZone())
	return ci
}

func (b *board) fieldSpell(player int, card *game.Card) *game.CardInstance {
	ci := b.gs.CreateCardInstance(card, player)
	ci.Face = game.FaceUp
	b.gs.Players[player].PlaceFieldSpell(ci)
	return ci
}

func (b *board) hand(player int, card *game.Card) *game.CardInstance {
	ci := b.gs.CreateCardInstance(card, player)
	b.gs.Players[player].AddToHand(ci)
	return ci
}

func (b *board) deck(player int, card *game.Card) *game.CardInstance {
	ci := b.gs.CreateCardInstance(card, player)
	b.gs.Players[player].Deck = append(b.gs.Players[player].Deck, ci)
	return ci
}

type fixedIDs struct{ n int }

func (f *fixedIDs) New() string {
	f.n++
	return fmt.Sprintf("%08x-0000-4000-8000-000000000000", f.n)
}

func fixedNow() time.Time {
	return time.UnixMilli(1700000000000)
}

// newDuel wraps the board in a sandbox duel with scripted controllers.
func newDuel(t *testing.T, b *board, p0, p1 *host.ScriptedController) (*host.Duel, *log.MemoryLogger) {
	t.Helper()
	if p0 == nil {
		p0 = yes()
	}
	if p1 == nil {
		p1 = yes()
	}
	logger := log.NewMemoryLogger()
	d := host.NewDuel(host.DuelConfig{
		State:       b.gs,
		Logger:      logger,
		Diagnostics: zaptest.NewLogger(t),
		IDs:         &fixedIDs{},
		Now:         fixedNow,
	}, p0, p1)
	return d, logger
}

// yes returns a controller that accepts every confirmation.
func yes() *host.ScriptedController {
	sc := host.NewScriptedController()
	sc.DefaultYes = true
	return sc
}

func newSandbox(t *testing.T, b *board, noPrompts bool) *host.Duel {
	t.Helper()
	return host.NewDuel(host.DuelConfig{
		State:       b.gs,
		Diagnostics: zaptest.NewLogger(t),
		IDs:         &fixedIDs{},
		Now:         fixedNow,
		NoPrompts:   noPrompts,
	}, yes(), yes())
}
