package host

import (
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

func actingPlayer(f game.OwnerFilter, ec *trigger.EffectContext, def int) int {
	switch f {
	case game.OwnerSelf:
		return ec.Player
	case game.OwnerOpponent:
		return ec.Opponent
	default:
		return def
	}
}

func amountOr(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

// ApplyActions checks every action first and only then mutates the board,
// so a failed or paused call leaves no partial effect behind.
func (fx *Effects) ApplyActions(actions []game.ActionSpec, ec *trigger.EffectContext, targets trigger.ResolvedTargets) trigger.ActionResult {
	for _, a := range actions {
		if reason := fx.precheck(a, ec, targets); reason != "" {
			return trigger.ActionResult{Reason: reason}
		}
	}
	for _, a := range actions {
		fx.apply(a, ec, targets)
	}
	return trigger.ActionResult{OK: true}
}

func (fx *Effects) precheck(a game.ActionSpec, ec *trigger.EffectContext, targets trigger.ResolvedTargets) string {
	gs := fx.d.Game
	switch a.Kind {
	case game.ActionDraw:
		p := gs.Players[actingPlayer(a.Player, ec, ec.Player)]
		if n := amountOr(a.Amount, 1); len(p.Deck) < n {
			return fmt.Sprintf("%s cannot draw %d", p.Name, n)
		}
	case game.ActionDestroy, game.ActionSendToGraveyard:
		if a.Target != "" && len(targets[a.Target]) == 0 {
			return fmt.Sprintf("nothing to %s", a.Kind)
		}
	case game.ActionModifyATK, game.ActionGainLP, game.ActionInflictDamage:
	case game.ActionSpecialSummonSelf:
		zone := fx.FindCardZone(ec.Player, ec.Source)
		if zone != game.ZoneHand && zone != game.ZoneGraveyard {
			return fmt.Sprintf("%s is not in hand or graveyard", ec.Source.Card.Name)
		}
		if gs.Players[ec.Player].FreeMonsterZone() < 0 {
			return "no free monster zone"
		}
	case game.ActionConditionalSummonFromHand:
		if fx.FindCardZone(ec.Player, ec.Source) != game.ZoneHand {
			return fmt.Sprintf("%s is not in hand", ec.Source.Card.Name)
		}
		if gs.Players[ec.Player].FreeMonsterZone() < 0 {
			return "no free monster zone"
		}
	default:
		return fmt.Sprintf("unsupported action %q", a.Kind)
	}
	return ""
}

func (fx *Effects) apply(a game.ActionSpec, ec *trigger.EffectContext, targets trigger.ResolvedTargets) {
	d := fx.d
	gs := d.Game
	phase := gs.Phase.String()
	cause := &trigger.ActionContext{Source: ec.Source, Player: ec.Player, EffectID: ec.Effect.ID}

	switch a.Kind {
	case game.ActionDraw:
		pi := actingPlayer(a.Player, ec, ec.Player)
		for i := 0; i < amountOr(a.Amount, 1); i++ {
			if c := gs.Players[pi].DrawCard(); c != nil {
				d.Emit(log.NewDrawEvent(gs.Turn, phase, pi, c.Card.Name))
			}
		}
	case game.ActionDestroy:
		for _, c := range fx.actionTargets(a, ec, targets) {
			d.destroy(c, game.DestroyEffect, cause)
		}
	case game.ActionSendToGraveyard:
		for _, c := range fx.actionTargets(a, ec, targets) {
			d.sendToGraveyard(c, cause)
		}
	case game.ActionModifyATK:
		for _, c := range fx.actionTargets(a, ec, targets) {
			c.AddModifier(game.StatModifier{Source: ec.Source.ID, ATKMod: a.Amount})
			d.Emit(log.NewModifyATKEvent(gs.Turn, phase, c.Controller, c.Card.Name, a.Amount, c.CurrentATK()))
		}
	case game.ActionGainLP:
		pi := actingPlayer(a.Player, ec, ec.Player)
		p := gs.Players[pi]
		p.LP += a.Amount
		d.Emit(log.NewLPChangeEvent(gs.Turn, phase, pi, a.Amount, p.LP, ec.Source.Card.Name))
	case game.ActionInflictDamage:
		pi := actingPlayer(a.Player, ec, ec.Opponent)
		p := gs.Players[pi]
		p.LP -= a.Amount
		if p.LP < 0 {
			p.LP = 0
		}
		d.Emit(log.NewLPChangeEvent(gs.Turn, phase, pi, -a.Amount, p.LP, ec.Source.Card.Name))
	case game.ActionSpecialSummonSelf, game.ActionConditionalSummonFromHand:
		d.summon(ec.Source, ec.Player, game.SummonSpecial, game.PositionATK)
	}
}

// actionTargets returns the cards an action applies to; untargeted actions
// apply to the source.
func (fx *Effects) actionTargets(a game.ActionSpec, ec *trigger.EffectContext, targets trigger.ResolvedTargets) []*game.CardInstance {
	if a.Target == "" {
		return []*game.CardInstance{ec.Source}
	}
	return targets[a.Target]
}
