package trigger

import (
	"context"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// collectBattleDestroy scans the attacker's owner, then the destroyed
// card's owner. The destroyed card is a source exactly once, in its
// owner's pass.
func (e *Engine) collectBattleDestroy(_ context.Context, p *Payload) Collection {
	out := Collection{OrderRule: OrderBattleDestroy}
	if p.Destroyed == nil || !validPlayer(p.AttackerOwner) || !validPlayer(p.DestroyedOwner) {
		return out
	}

	participants := []int{p.AttackerOwner}
	if p.DestroyedOwner != p.AttackerOwner {
		participants = append(participants, p.DestroyedOwner)
	}

	base := candidate{event: game.EventBattleDestroy, payload: p}
	filter := battleDestroyFilter(p)

	var entries []*Entry
	for _, owner := range participants {
		pl := e.player(owner)
		sources := newSourceList()
		for _, m := range pl.Monsters() {
			if m.ID != p.Destroyed.ID {
				sources.add(m)
			}
		}
		sources.add(pl.FieldSpell)
		sources.add(pl.EquipSpells()...)
		sources.add(pl.Hand...)
		if owner == p.DestroyedOwner {
			sources.add(p.Destroyed)
		}

		base.owner = owner
		entries = e.scanAll(entries, sources.cards, base, filter, nil)
	}

	out.Entries = entries
	out.OnComplete = e.effects.UpdatePassiveBuffs
	return out
}

func battleDestroyFilter(p *Payload) eventFilter {
	return func(c *candidate) string {
		eff := c.effect
		src := c.source
		if eff.RequireSelfAsAttacker && (p.Attacker == nil || src.ID != p.Attacker.ID) {
			return "source is not the attacker"
		}
		if eff.RequireSelfAsDestroyed && src.ID != p.Destroyed.ID {
			return "source is not the destroyed card"
		}
		if eff.RequireDestroyedIsOpponent && p.DestroyedOwner == c.owner {
			return "destroyed card is not the opponent's"
		}
		if arch := eff.RequireOwnMonsterArchetype; arch != "" {
			own := p.Destroyed
			if c.owner == p.AttackerOwner && p.DestroyedOwner != p.AttackerOwner {
				own = p.Attacker
			}
			if own == nil || own.Card.Archetype != arch {
				return "own battling monster is not " + arch
			}
		}
		if eff.RequireEquippedAsAttacker {
			if p.Attacker == nil || src.EquippedTo == nil || src.EquippedTo.ID != p.Attacker.ID {
				return "not equipped to the attacker"
			}
		}
		if cond := eff.Condition; cond != nil && !cond.Kind.MatchesCause(game.DestroyBattle) {
			return "destroyed by battle, condition wants " + string(cond.Kind)
		}
		return ""
	}
}
