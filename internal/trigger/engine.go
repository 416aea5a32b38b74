// Package trigger collects the triggered effects eligible to react to a game
// event and turns them into activatable entries for a chain resolver.
//
// An Engine is driven by a single caller. It is not safe for concurrent use.
package trigger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
)

//go:generate mockgen -source=engine.go -destination=mock/mock_engine.go -package=mock

// GameContext is the host game as seen by the engine.
type GameContext interface {
	State() *game.GameState
	Opponent(player int) int
	Emit(event log.GameEvent)
	CheckWinCondition() bool
	DevModeEnabled() bool
}

// TurnUsageMarker is implemented by hosts that keep a once-per-turn ledger.
type TurnUsageMarker interface {
	MarkOncePerTurnUsed(card *game.CardInstance, player int, effect *game.EffectDefinition)
}

// MaterialMeta describes an effect activation by a monster that may later be
// used as a material.
type MaterialMeta struct {
	EffectID string
	Event    game.EventKind
	Turn     int
}

// MaterialRecorder is implemented by hosts that track material activations.
type MaterialRecorder interface {
	RecordMaterialEffectActivation(owner int, card *game.CardInstance, meta MaterialMeta)
}

// EffectEngine resolves targets, applies actions and answers rules queries.
type EffectEngine interface {
	ResolveTargets(targets []game.TargetSpec, ec *EffectContext, selections Selections) TargetResult
	ApplyActions(actions []game.ActionSpec, ec *EffectContext, targets ResolvedTargets) ActionResult
	IsEffectNegated(card *game.CardInstance) bool
	CheckOncePerTurn(card *game.CardInstance, player int, effect *game.EffectDefinition) UsageCheck
	CheckEffectCondition(cond *game.Condition, card *game.CardInstance, player int, summoned *game.CardInstance, sourceZone, summonFromZone game.ZoneType) bool
	FindCardZone(player int, card *game.CardInstance) game.ZoneType
	UpdatePassiveBuffs()
}

// PromptMeta travels with every confirmation prompt.
type PromptMeta struct {
	Card   *game.CardInstance
	Effect *game.EffectDefinition
	Player int
	Event  game.EventKind
}

// PromptFunc asks a yes/no question.
type PromptFunc func(ctx context.Context, message string, meta PromptMeta) (bool, error)

// PromptHost is the user-facing side of activation.
type PromptHost interface {
	Confirm(ctx context.Context, message string, meta PromptMeta) (bool, error)
	// CustomPrompt looks up a prompt registered under method.
	CustomPrompt(method string) (PromptFunc, bool)
}

// IDGenerator produces the random segment of field presence ids.
type IDGenerator interface {
	New() string
}

type uuidGenerator struct{}

func (uuidGenerator) New() string {
	return uuid.New().String()
}

// Config holds the collaborators of an Engine.
type Config struct {
	Game    GameContext
	Effects EffectEngine
	Prompts PromptHost // optional; without it activation returns OutcomeNeedsConfirmation
	Logger  *zap.Logger
	IDs     IDGenerator
	Now     func() time.Time
}

type collectorFunc func(ctx context.Context, p *Payload) Collection

// Engine collects triggered effects for game events.
type Engine struct {
	game    GameContext
	effects EffectEngine
	prompts PromptHost
	logger  *zap.Logger
	ids     IDGenerator
	now     func() time.Time

	collectors map[game.EventKind]collectorFunc
}

// NewEngine creates an engine. Game and Effects are required.
func NewEngine(cfg Config) *Engine {
	if cfg.Game == nil {
		panic("trigger: game context is required")
	}
	if cfg.Effects == nil {
		panic("trigger: effect engine is required")
	}

	e := &Engine{
		game:    cfg.Game,
		effects: cfg.Effects,
		prompts: cfg.Prompts,
		logger:  cfg.Logger,
		ids:     cfg.IDs,
		now:     cfg.Now,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.ids == nil {
		e.ids = uuidGenerator{}
	}
	if e.now == nil {
		e.now = time.Now
	}

	e.collectors = map[game.EventKind]collectorFunc{
		game.EventAfterSummon:    e.collectAfterSummon,
		game.EventBattleDestroy:  e.collectBattleDestroy,
		game.EventAttackDeclared: e.collectAttackDeclared,
		game.EventEffectTargeted: e.collectEffectTargeted,
		game.EventCardToGrave:    e.collectCardToGrave,
		game.EventStandbyPhase:   e.collectStandbyPhase,
	}
	return e
}

func (e *Engine) state() *game.GameState {
	return e.game.State()
}

func (e *Engine) player(i int) *game.Player {
	return e.state().Players[i]
}

func (e *Engine) emit(event log.GameEvent) {
	e.game.Emit(event)
}
