package trigger

import (
	"context"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// collectAttackDeclared scans the attacker's owner, then the defending
// player. Human-controlled traps and speed 2 effects are confirmed before
// their entry is built.
func (e *Engine) collectAttackDeclared(ctx context.Context, p *Payload) Collection {
	out := Collection{OrderRule: OrderAttackDeclared}
	if p.Attacker == nil || !validPlayer(p.AttackerOwner) {
		return out
	}
	defenderOwner := p.DefenderOwner
	if !validPlayer(defenderOwner) || defenderOwner == p.AttackerOwner {
		defenderOwner = e.game.Opponent(p.AttackerOwner)
	}
	p.DefenderOwner = defenderOwner

	base := candidate{event: game.EventAttackDeclared, payload: p}
	filter := attackDeclaredFilter(p)
	confirm := e.respondConfirm(ctx)

	var entries []*Entry
	for _, owner := range []int{p.AttackerOwner, defenderOwner} {
		pl := e.player(owner)
		sources := newSourceList()
		sources.add(pl.Monsters()...)
		sources.add(pl.FieldSpell)
		sources.add(pl.Traps()...)

		base.owner = owner
		entries = e.scanAll(entries, sources.cards, base, filter, confirm)
	}
	out.Entries = entries
	return out
}

func attackDeclaredFilter(p *Payload) eventFilter {
	return func(c *candidate) string {
		eff := c.effect
		src := c.source
		if eff.RequireOpponentAttack && c.owner == p.AttackerOwner {
			return "attack is not by the opponent"
		}
		if eff.RequireDefenderIsSelf && p.DefenderOwner != c.owner {
			return "defending player is not the owner"
		}
		if eff.RequireSelfAsDefender && (p.Defender == nil || src.ID != p.Defender.ID) {
			return "source is not the attack target"
		}
		if eff.RequireSelfAsAttacker && src.ID != p.Attacker.ID {
			return "source is not the attacker"
		}
		if pos := eff.RequireDefenderPosition; pos != nil {
			if p.Defender == nil || p.Defender.Position != *pos {
				return "defender is not in " + pos.String() + " position"
			}
		}
		if t := eff.RequireDefenderType; t != "" {
			if p.Defender == nil || p.Defender.Card.Type != t {
				return "defender is not " + t
			}
		}
		return ""
	}
}
