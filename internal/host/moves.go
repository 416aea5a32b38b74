package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

var (
	ErrNoZone     = errors.New("no free zone")
	ErrNotOnField = errors.New("card is not on the field")
	ErrGameOver   = errors.New("duel is over")
)

func (d *Duel) queue(kind game.EventKind, p trigger.Payload) {
	d.pending = append(d.pending, pendingEvent{kind: kind, payload: p})
}

// removeFromZone takes card out of whatever zone currently holds it.
func (d *Duel) removeFromZone(card *game.CardInstance) game.ZoneType {
	gs := d.Game
	ctrl := gs.Players[card.Controller]
	if z := ctrl.RemoveFromField(card); z != game.ZoneNone {
		d.leftField(card)
		return z
	}
	owner := gs.Players[card.Owner]
	switch owner.ZoneOf(card) {
	case game.ZoneHand:
		owner.RemoveFromHand(card)
		return game.ZoneHand
	case game.ZoneGraveyard:
		owner.RemoveFromGraveyard(card)
		return game.ZoneGraveyard
	case game.ZoneDeck:
		for i, c := range owner.Deck {
			if c.ID == card.ID {
				owner.Deck = append(owner.Deck[:i], owner.Deck[i+1:]...)
				break
			}
		}
		return game.ZoneDeck
	}
	return game.ZoneNone
}

// leftField ends the card's presence and detaches equipment.
func (d *Duel) leftField(card *game.CardInstance) {
	d.Engine.ClearFieldPresenceID(card)
	if target := card.EquippedTo; target != nil {
		kept := target.Equips[:0]
		for _, eq := range target.Equips {
			if eq.ID != card.ID {
				kept = append(kept, eq)
			}
		}
		target.Equips = kept
		card.EquippedTo = nil
	}
	equips := card.Equips
	card.Equips = nil
	for _, eq := range equips {
		eq.EquippedTo = nil
		d.sendToGraveyard(eq, nil)
	}
}

// summon puts card on player's field face-up and queues after_summon.
func (d *Duel) summon(card *game.CardInstance, player int, method game.SummonMethod, pos game.Position) error {
	gs := d.Game
	p := gs.Players[player]
	zone := p.FreeMonsterZone()
	if zone < 0 {
		return fmt.Errorf("summon %s: %w", card.Card.Name, ErrNoZone)
	}
	from := d.removeFromZone(card)

	card.Face = game.FaceUp
	card.Position = pos
	card.TurnPlaced = gs.Turn
	p.PlaceMonster(card, zone)
	d.Engine.AssignFieldPresenceID(card)
	d.Emit(log.NewSummonEvent(gs.Turn, gs.Phase.String(), player, card.Card.Name, string(method), from.String(), zone))

	payload := trigger.Payload{
		Player:   player,
		Opponent: gs.Opponent(player),
		Card:     card,
		Method:   method,
		FromZone: from,
		ToZone:   game.ZoneField,
	}
	d.Engine.HandleSpecialSummonTypeCounters(payload)
	d.Engine.HandleFieldPresenceTypeSummonCounters(payload)
	d.queue(game.EventAfterSummon, payload)
	return nil
}

func (d *Duel) toGraveyard(card *game.CardInstance) game.ZoneType {
	from := d.removeFromZone(card)
	d.Game.Players[card.Owner].SendToGraveyard(card)
	card.Controller = card.Owner
	return from
}

// destroy sends card to the graveyard as destroyed and queues card_to_grave.
func (d *Duel) destroy(card *game.CardInstance, cause game.DestroyCause, ac *trigger.ActionContext) {
	gs := d.Game
	from := d.toGraveyard(card)
	d.Emit(log.NewDestroyEvent(gs.Turn, gs.Phase.String(), card.Owner, card.Card.Name, string(cause)))
	d.queue(game.EventCardToGrave, trigger.Payload{
		Player:        card.Owner,
		Opponent:      gs.Opponent(card.Owner),
		Card:          card,
		FromZone:      from,
		ToZone:        game.ZoneGraveyard,
		DestroyCause:  cause,
		WasDestroyed:  true,
		ActionContext: ac,
	})
}

// sendToGraveyard moves card without destroying it and queues card_to_grave.
func (d *Duel) sendToGraveyard(card *game.CardInstance, ac *trigger.ActionContext) {
	gs := d.Game
	from := d.toGraveyard(card)
	d.Emit(log.NewSendToGraveyardEvent(gs.Turn, gs.Phase.String(), card.Owner, card.Card.Name, from.String()))
	d.queue(game.EventCardToGrave, trigger.Payload{
		Player:        card.Owner,
		Opponent:      gs.Opponent(card.Owner),
		Card:          card,
		FromZone:      from,
		ToZone:        game.ZoneGraveyard,
		ActionContext: ac,
	})
}

// --- Public moves. Each one resolves every trigger it causes. ---

// Summon summons card for its owner.
func (d *Duel) Summon(ctx context.Context, card *game.CardInstance, method game.SummonMethod, pos game.Position) error {
	if d.Game.Over {
		return ErrGameOver
	}
	if err := d.summon(card, card.Owner, method, pos); err != nil {
		return err
	}
	return d.drain(ctx)
}

// DestroyByBattle destroys the given cards in one battle with attacker.
// Pass both monsters for mutual destruction.
func (d *Duel) DestroyByBattle(ctx context.Context, attacker *game.CardInstance, destroyed ...*game.CardInstance) error {
	if d.Game.Over {
		return ErrGameOver
	}
	gs := d.Game
	attackerOwner := attacker.Controller
	froms := make([]game.ZoneType, len(destroyed))
	for i, c := range destroyed {
		if !d.Effects.FindCardZone(c.Controller, c).IsField() {
			return fmt.Errorf("destroy %s: %w", c.Card.Name, ErrNotOnField)
		}
		by := attacker.Card.Name
		if c.ID == attacker.ID && len(destroyed) > 1 {
			by = destroyed[0].Card.Name
		}
		froms[i] = d.toGraveyard(c)
		d.Emit(log.NewBattleDestroyEvent(gs.Turn, gs.Phase.String(), c.Owner, c.Card.Name, by))
	}
	for _, c := range destroyed {
		d.queue(game.EventBattleDestroy, trigger.Payload{
			Player:         attackerOwner,
			Opponent:       gs.Opponent(attackerOwner),
			Attacker:       attacker,
			AttackerOwner:  attackerOwner,
			Destroyed:      c,
			DestroyedOwner: c.Owner,
			DestroyCause:   game.DestroyBattle,
			WasDestroyed:   true,
		})
	}
	for i, c := range destroyed {
		d.queue(game.EventCardToGrave, trigger.Payload{
			Player:       c.Owner,
			Opponent:     gs.Opponent(c.Owner),
			Card:         c,
			FromZone:     froms[i],
			ToZone:       game.ZoneGraveyard,
			DestroyCause: game.DestroyBattle,
			WasDestroyed: true,
		})
	}
	return d.drain(ctx)
}

// DestroyByEffect destroys card as the result of source's effect.
func (d *Duel) DestroyByEffect(ctx context.Context, card, source *game.CardInstance) error {
	if d.Game.Over {
		return ErrGameOver
	}
	var ac *trigger.ActionContext
	if source != nil {
		ac = &trigger.ActionContext{Source: source, Player: source.Controller}
	}
	d.destroy(card, game.DestroyEffect, ac)
	return d.drain(ctx)
}

// SendToGraveyard moves card to its owner's graveyard without destroying it.
func (d *Duel) SendToGraveyard(ctx context.Context, card *game.CardInstance) error {
	if d.Game.Over {
		return ErrGameOver
	}
	d.sendToGraveyard(card, nil)
	return d.drain(ctx)
}

// DeclareAttack announces an attack. A nil defender is a direct attack.
func (d *Duel) DeclareAttack(ctx context.Context, attacker, defender *game.CardInstance) error {
	if d.Game.Over {
		return ErrGameOver
	}
	gs := d.Game
	owner := attacker.Controller
	target := ""
	if defender != nil {
		target = defender.Card.Name
	}
	d.Emit(log.NewAttackDeclareEvent(gs.Turn, gs.Phase.String(), owner, attacker.Card.Name, target))
	d.queue(game.EventAttackDeclared, trigger.Payload{
		Player:        owner,
		Opponent:      gs.Opponent(owner),
		Attacker:      attacker,
		AttackerOwner: owner,
		Defender:      defender,
		DefenderOwner: gs.Opponent(owner),
	})
	return d.drain(ctx)
}

// TargetWithEffect announces that by's effect targets target.
func (d *Duel) TargetWithEffect(ctx context.Context, target, by *game.CardInstance) error {
	if d.Game.Over {
		return ErrGameOver
	}
	gs := d.Game
	byName := ""
	var ac *trigger.ActionContext
	if by != nil {
		byName = by.Card.Name
		ac = &trigger.ActionContext{Source: by, Player: by.Controller}
	}
	d.Emit(log.NewTargetedEvent(gs.Turn, gs.Phase.String(), target.Controller, target.Card.Name, byName))
	d.queue(game.EventEffectTargeted, trigger.Payload{
		Player:        target.Controller,
		Opponent:      gs.Opponent(target.Controller),
		Target:        target,
		TargetOwner:   target.Controller,
		ActionContext: ac,
	})
	return d.drain(ctx)
}

// BeginStandby enters the Standby Phase of the turn player.
func (d *Duel) BeginStandby(ctx context.Context) error {
	if d.Game.Over {
		return ErrGameOver
	}
	gs := d.Game
	gs.Phase = game.PhaseStandby
	d.Emit(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String()))
	d.queue(game.EventStandbyPhase, trigger.Payload{
		Player:   gs.TurnPlayer,
		Opponent: gs.Opponent(gs.TurnPlayer),
	})
	return d.drain(ctx)
}

// Fire routes an arbitrary event and resolves its triggers.
func (d *Duel) Fire(ctx context.Context, kind game.EventKind, p trigger.Payload) error {
	if d.Game.Over {
		return ErrGameOver
	}
	d.queue(kind, p)
	return d.drain(ctx)
}

// announcement builds the payload of kind for cards where they currently lie.
// card is the subject of the event: the summoned, sent, attacking or targeted
// card. other is the destroyed card or the attack target.
func (d *Duel) announcement(kind game.EventKind, card, other *game.CardInstance) (trigger.Payload, error) {
	gs := d.Game
	p := trigger.Payload{Player: gs.TurnPlayer}
	if kind != game.EventStandbyPhase {
		if card == nil {
			return p, fmt.Errorf("%s needs a card", kind)
		}
		p.Player = card.Controller
	}

	switch kind {
	case game.EventAfterSummon:
		p.Card = card
		p.Method = game.SummonNormal
		p.FromZone = game.ZoneHand
		p.ToZone = card.Zone
	case game.EventCardToGrave:
		p.Player = card.Owner
		p.Card = card
		p.FromZone = game.ZoneField
		p.ToZone = game.ZoneGraveyard
	case game.EventBattleDestroy:
		if other == nil {
			return p, errors.New("battle_destroy needs the destroyed card")
		}
		p.Attacker = card
		p.AttackerOwner = card.Controller
		p.Destroyed = other
		p.DestroyedOwner = other.Owner
		p.DestroyCause = game.DestroyBattle
		p.WasDestroyed = true
	case game.EventAttackDeclared:
		p.Attacker = card
		p.AttackerOwner = card.Controller
		p.Defender = other
		p.DefenderOwner = gs.Opponent(card.Controller)
	case game.EventEffectTargeted:
		p.Target = card
		p.TargetOwner = card.Controller
	}
	p.Opponent = gs.Opponent(p.Player)
	return p, nil
}

// AdvanceTurn passes the turn to the other player and enters Main Phase 1.
func (d *Duel) AdvanceTurn() {
	gs := d.Game
	gs.Turn++
	gs.TurnPlayer = gs.Opponent(gs.TurnPlayer)
	gs.Phase = game.PhaseMain1
	d.Emit(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String()))
}
