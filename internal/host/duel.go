// Package host is a small in-memory duel that drives the trigger engine:
// it owns the board, applies effects and resolves collected triggers in order.
package host

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

// ErrNoController is returned when a decision is needed from a player
// without a controller.
var ErrNoController = errors.New("no controller for player")

// PlayerController answers the decisions the trigger pipeline asks for.
type PlayerController interface {
	// ChooseCards asks the player to select cards from a list (e.g., effect targets).
	ChooseCards(ctx context.Context, state *game.GameState, prompt string, candidates []*game.CardInstance, min, max int) ([]*game.CardInstance, error)

	// ChooseYesNo asks the player a yes/no question (e.g., "activate optional effect?").
	ChooseYesNo(ctx context.Context, state *game.GameState, prompt string) (bool, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// DuelConfig holds configuration for creating a new duel.
type DuelConfig struct {
	State       *game.GameState // board to play on; a fresh state if nil
	Logger      log.EventLogger
	Diagnostics *zap.Logger
	DevMode     bool
	IDs         trigger.IDGenerator
	Now         func() time.Time
	// NoPrompts leaves the engine without a prompt host so activation
	// surfaces confirmations as outcomes.
	NoPrompts bool
}

// MaterialActivation records an effect activated by a monster.
type MaterialActivation struct {
	Owner int
	Card  *game.CardInstance
	Meta  trigger.MaterialMeta
}

// Batch is one collected set of triggers and how each entry ended.
type Batch struct {
	Event     game.EventKind
	OrderRule string
	Summaries []string
	Outcomes  []trigger.Outcome
}

type pendingEvent struct {
	kind    game.EventKind
	payload trigger.Payload
}

// Duel is the sandbox game the trigger engine plugs into.
type Duel struct {
	Game        *game.GameState
	Controllers [2]PlayerController
	Logger      log.EventLogger
	Engine      *trigger.Engine
	Effects     *Effects
	Prompts     *ControllerPrompts

	Materials []MaterialActivation
	Batches   []Batch

	diag          *zap.Logger
	devMode       bool
	ctx           context.Context
	pending       []pendingEvent
	winAnnounced  bool
	cascadeBudget int
}

const maxCascade = 64

// NewDuel creates a duel over cfg.State. Cards already on the field get a
// field presence.
func NewDuel(cfg DuelConfig, p0, p1 PlayerController) *Duel {
	gs := cfg.State
	if gs == nil {
		gs = game.NewGameState()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	diag := cfg.Diagnostics
	if diag == nil {
		diag = zap.NewNop()
	}

	d := &Duel{
		Game:        gs,
		Controllers: [2]PlayerController{p0, p1},
		Logger:      logger,
		diag:        diag,
		devMode:     cfg.DevMode,
		ctx:         context.Background(),
	}
	d.Effects = &Effects{d: d}
	d.Prompts = NewControllerPrompts(d)

	engineCfg := trigger.Config{
		Game:    d,
		Effects: d.Effects,
		Logger:  diag,
		IDs:     cfg.IDs,
		Now:     cfg.Now,
	}
	if !cfg.NoPrompts {
		engineCfg.Prompts = d.Prompts
	}
	d.Engine = trigger.NewEngine(engineCfg)

	for _, p := range gs.Players {
		for _, c := range p.Monsters() {
			d.Engine.AssignFieldPresenceID(c)
		}
		for _, c := range p.SpellTrapCards() {
			d.Engine.AssignFieldPresenceID(c)
		}
		if p.FieldSpell != nil {
			d.Engine.AssignFieldPresenceID(p.FieldSpell)
		}
	}
	d.Effects.UpdatePassiveBuffs()
	return d
}

// --- trigger.GameContext ---

// State returns the board.
func (d *Duel) State() *game.GameState {
	return d.Game
}

func (d *Duel) Opponent(player int) int {
	return d.Game.Opponent(player)
}

// Emit logs an event and notifies both players.
func (d *Duel) Emit(event log.GameEvent) {
	d.Logger.Log(event)
	// Notify controllers (ignore errors for notifications)
	for i := 0; i < 2; i++ {
		if d.Controllers[i] != nil {
			_ = d.Controllers[i].Notify(d.ctx, event)
		}
	}
}

// CheckWinCondition reports whether the duel is over, announcing the winner once.
func (d *Duel) CheckWinCondition() bool {
	over := d.Game.CheckWinCondition()
	if over && !d.winAnnounced {
		d.winAnnounced = true
		gs := d.Game
		d.Emit(log.NewWinEvent(gs.Turn, gs.Phase.String(), gs.Winner, gs.Result))
	}
	return over
}

func (d *Duel) DevModeEnabled() bool {
	return d.devMode
}

// --- optional capabilities ---

// OncePerTurnKey is the turn ledger key of an effect.
func OncePerTurnKey(card *game.CardInstance, effect *game.EffectDefinition) string {
	if effect.OncePerTurnName != "" {
		return effect.OncePerTurnName
	}
	if effect.ID != "" {
		return effect.ID
	}
	return card.Card.Name
}

// MarkOncePerTurnUsed records a use for effects capped once per turn.
func (d *Duel) MarkOncePerTurnUsed(card *game.CardInstance, player int, effect *game.EffectDefinition) {
	if !effect.OncePerTurn {
		return
	}
	p := d.Game.Players[player]
	if p.OncePerTurnUsage == nil {
		p.OncePerTurnUsage = make(map[string]int)
	}
	p.OncePerTurnUsage[OncePerTurnKey(card, effect)] = d.Game.Turn
}

func (d *Duel) RecordMaterialEffectActivation(owner int, card *game.CardInstance, meta trigger.MaterialMeta) {
	d.Materials = append(d.Materials, MaterialActivation{Owner: owner, Card: card, Meta: meta})
}

// WithContext sets the context used for notifications.
func (d *Duel) WithContext(ctx context.Context) *Duel {
	d.ctx = ctx
	return d
}
