package trigger

import (
	"context"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// collectEffectTargeted scans only the targeted card's owner.
func (e *Engine) collectEffectTargeted(ctx context.Context, p *Payload) Collection {
	out := Collection{OrderRule: OrderEffectTargeted}
	if p.Target == nil {
		return out
	}
	owner := p.TargetOwner
	if !validPlayer(owner) {
		owner = p.Target.Controller
	}
	p.TargetOwner = owner

	pl := e.player(owner)
	sources := newSourceList()
	sources.add(pl.Monsters()...)
	sources.add(pl.FaceDownTraps()...)
	sources.add(pl.FieldSpell)

	base := candidate{event: game.EventEffectTargeted, payload: p, owner: owner}
	out.Entries = e.scanAll(nil, sources.cards, base, effectTargetedFilter(p), e.respondConfirm(ctx))
	return out
}

func effectTargetedFilter(p *Payload) eventFilter {
	return func(c *candidate) string {
		if t := c.effect.RequireTargetType; t != "" && p.Target.Card.Type != t {
			return "target is not " + t
		}
		return ""
	}
}
