package host

import (
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

// Effects is the sandbox effect engine.
type Effects struct {
	d *Duel
}

var _ trigger.EffectEngine = (*Effects)(nil)

func (fx *Effects) IsEffectNegated(card *game.CardInstance) bool {
	return card.Negated
}

// CheckOncePerTurn consults the per-turn ledger.
func (fx *Effects) CheckOncePerTurn(card *game.CardInstance, player int, effect *game.EffectDefinition) trigger.UsageCheck {
	if !effect.OncePerTurn {
		return trigger.UsageCheck{OK: true}
	}
	gs := fx.d.Game
	key := OncePerTurnKey(card, effect)
	if turn, ok := gs.Players[player].OncePerTurnUsage[key]; ok && turn == gs.Turn {
		return trigger.UsageCheck{Reason: fmt.Sprintf("%q already used this turn", key)}
	}
	return trigger.UsageCheck{OK: true}
}

// CheckEffectCondition evaluates a declarative condition. Destroy-cause
// kinds are matched against the event by the collectors and pass here.
func (fx *Effects) CheckEffectCondition(cond *game.Condition, card *game.CardInstance, player int, summoned *game.CardInstance, sourceZone, summonFromZone game.ZoneType) bool {
	if cond == nil {
		return true
	}
	if cond.Requires == game.RequiresSelfInHand && sourceZone != game.ZoneHand {
		return false
	}
	gs := fx.d.Game
	self := gs.Players[player]
	opp := gs.Players[gs.Opponent(player)]

	switch cond.Kind {
	case "":
		return true
	case game.CondDestroyedByBattle, game.CondDestroyedByEffect, game.CondDestroyedByBattleOrEffect:
		return true
	case game.CondSelfInHand:
		return sourceZone == game.ZoneHand
	case game.CondLPAtMost:
		return self.LP <= cond.Value
	case game.CondLPAtLeast:
		return self.LP >= cond.Value
	case game.CondControlsCard:
		return controls(self, cond.Name, cond.Zone)
	case game.CondGraveyardCountAtLeast:
		return len(self.Graveyard) >= cond.Value
	case game.CondOpponentControlsMore:
		return len(opp.Monsters()) > len(self.Monsters())
	case game.CondSummonedCardType:
		return summoned != nil && summoned.Card.Type == cond.Name
	default:
		panic(fmt.Sprintf("host: unhandled condition type %q", cond.Kind))
	}
}

func controls(p *game.Player, name string, zone game.ZoneType) bool {
	var cards []*game.CardInstance
	switch zone {
	case game.ZoneSpellTrap:
		cards = p.SpellTrapCards()
	case game.ZoneFieldSpell:
		if p.FieldSpell != nil {
			cards = append(cards, p.FieldSpell)
		}
	case game.ZoneField:
		cards = p.Monsters()
	default:
		cards = append(p.Monsters(), p.SpellTrapCards()...)
		if p.FieldSpell != nil {
			cards = append(cards, p.FieldSpell)
		}
	}
	for _, c := range cards {
		if c.Face == game.FaceUp && c.Card.Name == name {
			return true
		}
	}
	return false
}

// FindCardZone finds card on player's side, then on the opponent's.
func (fx *Effects) FindCardZone(player int, card *game.CardInstance) game.ZoneType {
	gs := fx.d.Game
	if z := gs.Players[player].ZoneOf(card); z != game.ZoneNone {
		return z
	}
	return gs.Players[gs.Opponent(player)].ZoneOf(card)
}
