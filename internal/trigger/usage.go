package trigger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// OncePerDuelKey returns the ledger key of an effect: its once-per-duel name,
// else its id, else the card name.
func OncePerDuelKey(card *game.CardInstance, effect *game.EffectDefinition) string {
	if effect.OncePerDuelName != "" {
		return effect.OncePerDuelName
	}
	if effect.ID != "" {
		return effect.ID
	}
	return card.Card.Name
}

// CheckOncePerDuel consults the duel ledger owned by the engine.
func (e *Engine) CheckOncePerDuel(card *game.CardInstance, player int, effect *game.EffectDefinition) UsageCheck {
	if !effect.OncePerDuel {
		return UsageCheck{OK: true}
	}
	key := OncePerDuelKey(card, effect)
	if e.player(player).OncePerDuelUsageByName[key] {
		return UsageCheck{Reason: fmt.Sprintf("%q already used this duel", key)}
	}
	return UsageCheck{OK: true}
}

// RegisterOncePerDuelUsage records a once-per-duel use. It does nothing for
// effects without the cap.
func (e *Engine) RegisterOncePerDuelUsage(card *game.CardInstance, player int, effect *game.EffectDefinition) {
	if effect == nil || !effect.OncePerDuel {
		return
	}
	p := e.player(player)
	if p.OncePerDuelUsageByName == nil {
		p.OncePerDuelUsageByName = make(map[string]bool)
	}
	p.OncePerDuelUsageByName[OncePerDuelKey(card, effect)] = true
}

// RegisterOncePerTurnUsage forwards to the host's turn ledger. A host
// without one gets an error log and the use goes unrecorded.
func (e *Engine) RegisterOncePerTurnUsage(card *game.CardInstance, player int, effect *game.EffectDefinition) {
	marker, ok := e.game.(TurnUsageMarker)
	if !ok {
		e.logger.Error("game context cannot mark once-per-turn usage",
			zap.String("card", card.Card.Name),
			zap.String("effect", effect.ID),
			zap.Int("player", player))
		return
	}
	marker.MarkOncePerTurnUsed(card, player, effect)
}
