package trigger

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// Order rules handed to the chain resolver with each collection.
const (
	OrderAfterSummon    = "summoner -> opponent; sources: summoned card -> field -> fieldSpell -> hand"
	OrderBattleDestroy  = "attacker owner -> destroyed owner; sources: field/fieldSpell/equips -> hand -> destroyed card"
	OrderAttackDeclared = "attacker owner -> defender owner; sources: field -> fieldSpell -> spellTrap"
	OrderEffectTargeted = "target owner; sources: field -> spellTrap -> fieldSpell"
	OrderCardToGrave    = "card owner; sources: moved card"
	OrderStandbyPhase   = "active player; sources: field -> spellTrap -> fieldSpell"
	OrderNoTriggers     = "no_triggers"
)

// NoPlayer marks an unset player index in a Payload.
const NoPlayer = -1

// ActionContext identifies the effect whose resolution caused an event.
type ActionContext struct {
	Source   *game.CardInstance
	Player   int
	EffectID string
}

// Payload carries the facts of one game event. Collectors read only the
// fields relevant to their event.
type Payload struct {
	Player   int
	Opponent int
	Card     *game.CardInstance

	Method   game.SummonMethod
	FromZone game.ZoneType
	ToZone   game.ZoneType

	Attacker      *game.CardInstance
	AttackerOwner int
	Defender      *game.CardInstance
	DefenderOwner int

	Destroyed      *game.CardInstance
	DestroyedOwner int

	Target      *game.CardInstance
	TargetOwner int

	DestroyCause game.DestroyCause
	WasDestroyed bool

	ActionContext *ActionContext
}

func validPlayer(p int) bool {
	return p == 0 || p == 1
}

// Collection is the result of one collector call.
type Collection struct {
	Entries   []*Entry
	OrderRule string
	// OnComplete must be called once after the whole batch has resolved.
	// Nil for events without a post-batch step.
	OnComplete func()
}

// Summaries returns the entry summaries in order.
func (c Collection) Summaries() []string {
	out := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		out = append(out, e.Summary)
	}
	return out
}

// CollectEventTriggers dispatches an event to its collector. Unknown events
// yield an empty collection with the no_triggers order rule.
func (e *Engine) CollectEventTriggers(ctx context.Context, kind game.EventKind, p Payload) (Collection, error) {
	collect, ok := e.collectors[kind]
	if !ok {
		return Collection{OrderRule: OrderNoTriggers}, nil
	}
	if err := ctx.Err(); err != nil {
		return Collection{}, fmt.Errorf("collect %s: %w", kind, err)
	}
	c := collect(ctx, &p)
	if err := ctx.Err(); err != nil {
		return Collection{}, fmt.Errorf("collect %s: %w", kind, err)
	}
	return c, nil
}
