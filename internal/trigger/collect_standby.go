package trigger

import (
	"context"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// collectStandbyPhase scans the turn player's field.
func (e *Engine) collectStandbyPhase(_ context.Context, p *Payload) Collection {
	out := Collection{OrderRule: OrderStandbyPhase}
	if !validPlayer(p.Player) {
		return out
	}
	pl := e.player(p.Player)
	sources := newSourceList()
	sources.add(pl.Monsters()...)
	sources.add(pl.SpellTrapCards()...)
	sources.add(pl.FieldSpell)

	base := candidate{event: game.EventStandbyPhase, payload: p, owner: p.Player}
	out.Entries = e.scanAll(nil, sources.cards, base, nil, nil)
	return out
}
