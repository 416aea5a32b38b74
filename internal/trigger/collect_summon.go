package trigger

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// collectAfterSummon scans the summoner, then the opponent. The summoned
// card itself is only a source for the summoner.
func (e *Engine) collectAfterSummon(_ context.Context, p *Payload) Collection {
	out := Collection{OrderRule: OrderAfterSummon}
	if p.Card == nil || !validPlayer(p.Player) {
		return out
	}
	summoner := p.Player
	opponent := p.Opponent
	if !validPlayer(opponent) || opponent == summoner {
		opponent = e.game.Opponent(summoner)
	}

	base := candidate{event: game.EventAfterSummon, payload: p}
	filter := e.afterSummonFilter(p)

	var entries []*Entry
	for _, owner := range []int{summoner, opponent} {
		pl := e.player(owner)
		sources := newSourceList()
		if owner == summoner {
			sources.add(p.Card)
		}
		for _, m := range pl.Monsters() {
			if m.ID != p.Card.ID {
				sources.add(m)
			}
		}
		sources.add(pl.FieldSpell)
		for _, h := range pl.Hand {
			if h.ID != p.Card.ID {
				sources.add(h)
			}
		}

		base.owner = owner
		entries = e.scanAll(entries, sources.cards, base, filter, nil)
	}

	out.Entries = entries
	out.OnComplete = e.effects.UpdatePassiveBuffs
	return out
}

func (e *Engine) afterSummonFilter(p *Payload) eventFilter {
	return func(c *candidate) string {
		eff := c.effect
		if eff.RequireSelfAsSummoned && c.source.ID != p.Card.ID {
			return "source is not the summoned card"
		}
		if methods := eff.AcceptedSummonMethods(); len(methods) > 0 && !summonMethodAccepted(methods, p.Method) {
			return fmt.Sprintf("summon method %q not accepted", p.Method)
		}
		if zone := eff.RequiredSummonZone(); zone != game.ZoneNone && zone != p.FromZone {
			return fmt.Sprintf("summoned from %s, needs %s", p.FromZone, zone)
		}
		if len(eff.RequirePhase) > 0 && !phaseAllowed(eff.RequirePhase, e.state().Phase) {
			return fmt.Sprintf("not allowed during %s", e.state().Phase)
		}
		return ""
	}
}

// summonMethodAccepted treats "special" as covering ascension and fusion.
func summonMethodAccepted(accepted []game.SummonMethod, method game.SummonMethod) bool {
	for _, m := range accepted {
		if m == method {
			return true
		}
		if m == game.SummonSpecial && method.IsSpecial() {
			return true
		}
	}
	return false
}

func phaseAllowed(phases []game.Phase, current game.Phase) bool {
	for _, ph := range phases {
		if ph == current {
			return true
		}
	}
	return false
}
