package trigger

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// collectCardToGrave scans only the moved card, for its owner.
func (e *Engine) collectCardToGrave(_ context.Context, p *Payload) Collection {
	out := Collection{OrderRule: OrderCardToGrave}
	if p.Card == nil || !validPlayer(p.Card.Owner) {
		return out
	}
	base := candidate{
		event:   game.EventCardToGrave,
		payload: p,
		owner:   p.Card.Owner,
	}
	out.Entries = e.scanAll(nil, []*game.CardInstance{p.Card}, base, cardToGraveFilter(p), nil)
	return out
}

func cardToGraveFilter(p *Payload) eventFilter {
	return func(c *candidate) string {
		eff := c.effect
		if eff.RequireSelfAsDestroyed && !p.WasDestroyed {
			return "card was not destroyed"
		}
		if cond := eff.Condition; cond != nil && cond.Kind.IsDestroyCause() && !cond.Kind.MatchesCause(p.DestroyCause) {
			return fmt.Sprintf("destroy cause %q does not satisfy %s", p.DestroyCause, cond.Kind)
		}
		if eff.FromZone != game.ZoneNone && eff.FromZone != p.FromZone {
			return fmt.Sprintf("moved from %s, needs %s", p.FromZone, eff.FromZone)
		}
		return ""
	}
}
