package trigger

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// Gate numbers, in evaluation order.
const (
	GateTiming = iota + 1
	GateNegation
	GateFaceup
	GateZone
	GateOpponentSummon
	GateOncePerTurn
	GateOncePerDuel
	GateEvent
	GateCondition
	GateTargets
)

var gateNames = map[int]string{
	GateTiming:         "timing",
	GateNegation:       "negation",
	GateFaceup:         "faceup",
	GateZone:           "zone",
	GateOpponentSummon: "opponent_summon",
	GateOncePerTurn:    "once_per_turn",
	GateOncePerDuel:    "once_per_duel",
	GateEvent:          "event",
	GateCondition:      "condition",
	GateTargets:        "targets",
}

// Rejection explains why a candidate was dropped.
type Rejection struct {
	Gate   int
	Reason string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("gate %s: %s", gateNames[r.Gate], r.Reason)
}

func reject(gate int, format string, args ...any) *Rejection {
	return &Rejection{Gate: gate, Reason: fmt.Sprintf(format, args...)}
}

// candidate is one (source, owner, effect) triple under evaluation.
type candidate struct {
	source  *game.CardInstance
	owner   int
	effect  *game.EffectDefinition
	event   game.EventKind
	payload *Payload
	zone    game.ZoneType
}

// eventFilter is the event-specific structural gate. It returns a
// non-empty reason to reject.
type eventFilter func(c *candidate) string

// checkGates runs the shared pipeline. The first failing gate wins.
func (e *Engine) checkGates(c *candidate, filter eventFilter) (ActivationContext, *Rejection) {
	eff := c.effect
	src := c.source

	if eff.Timing != game.TimingOnEvent || eff.Event != c.event {
		return ActivationContext{}, reject(GateTiming, "listens for %s/%s", eff.Timing, eff.Event)
	}

	exempt := src.Card.Kind == game.CardKindTrap && src.IsFacedown() &&
		(c.event == game.EventAttackDeclared || c.event == game.EventEffectTargeted)
	if !exempt && e.effects.IsEffectNegated(src) {
		return ActivationContext{}, reject(GateNegation, "effect is negated")
	}

	if eff.RequireFaceup && src.IsFacedown() {
		return ActivationContext{}, reject(GateFaceup, "card is face-down")
	}

	if c.zone == game.ZoneHand {
		fromHand := eff.Condition != nil && (eff.Condition.Requires == game.RequiresSelfInHand || eff.Condition.Kind == game.CondSelfInHand)
		if !fromHand && !eff.HasAction(game.ActionConditionalSummonFromHand) {
			return ActivationContext{}, reject(GateZone, "effect cannot activate from hand")
		}
	}

	if c.event == game.EventAfterSummon && eff.RequireOpponentSummon && c.payload.Player == c.owner {
		return ActivationContext{}, reject(GateOpponentSummon, "summon was not by the opponent")
	}

	if check := e.effects.CheckOncePerTurn(src, c.owner, eff); !check.OK {
		return ActivationContext{}, reject(GateOncePerTurn, "%s", check.Reason)
	}

	if check := e.CheckOncePerDuel(src, c.owner, eff); !check.OK {
		return ActivationContext{}, reject(GateOncePerDuel, "%s", check.Reason)
	}

	if src.Card.Kind == game.CardKindTrap && src.IsFacedown() && c.zone == game.ZoneSpellTrap &&
		src.TurnPlaced >= e.state().Turn {
		return ActivationContext{}, reject(GateEvent, "trap was set this turn")
	}
	if filter != nil {
		if reason := filter(c); reason != "" {
			return ActivationContext{}, reject(GateEvent, "%s", reason)
		}
	}

	if cond := eff.Condition; cond != nil && (cond.Requires != game.RequiresNone || (cond.Kind != "" && !cond.Kind.IsDestroyCause())) {
		var summoned *game.CardInstance
		if c.event == game.EventAfterSummon {
			summoned = c.payload.Card
		}
		if !e.effects.CheckEffectCondition(cond, src, c.owner, summoned, c.zone, c.payload.FromZone) {
			return ActivationContext{}, reject(GateCondition, "condition %s not met", cond.Kind)
		}
	}

	act := e.activationContext(src, c.owner)

	if len(eff.Targets) > 0 {
		ec := e.effectContext(c, act)
		ec.Preview = true
		ec.Silent = true
		res := e.effects.ResolveTargets(eff.Targets, ec, nil)
		if !res.OK && !res.NeedsSelection {
			return ActivationContext{}, reject(GateTargets, "no legal targets: %s", res.Reason)
		}
		if res.Selection != nil {
			for _, req := range res.Selection.Requirements {
				if req.Min > len(req.Candidates) {
					return ActivationContext{}, reject(GateTargets, "target %q needs %d, only %d available", req.ID, req.Min, len(req.Candidates))
				}
			}
		}
	}

	return act, nil
}

func (e *Engine) effectContext(c *candidate, act ActivationContext) *EffectContext {
	return &EffectContext{
		Source:     c.source,
		Effect:     c.effect,
		Player:     c.owner,
		Opponent:   e.game.Opponent(c.owner),
		Event:      c.event,
		Payload:    c.payload,
		Activation: act,
	}
}

func (e *Engine) logRejection(c *candidate, r *Rejection) {
	if r.Gate == GateTiming {
		return
	}
	fields := []zap.Field{
		zap.String("card", c.source.Card.Name),
		zap.Int("instance", c.source.ID),
		zap.String("effect", c.effect.ID),
		zap.String("event", string(c.event)),
		zap.Int("player", c.owner),
		zap.String("gate", gateNames[r.Gate]),
		zap.String("reason", r.Reason),
	}
	if e.game.DevModeEnabled() {
		e.logger.Info("trigger rejected", fields...)
		return
	}
	e.logger.Debug("trigger rejected", fields...)
}

// scanSource runs every effect of one source through the gates and appends
// the survivors to entries.
func (e *Engine) scanSource(entries []*Entry, c candidate, filter eventFilter, confirm inlineConfirm) []*Entry {
	for _, eff := range c.source.Effects {
		cand := c
		cand.effect = eff
		act, rej := e.checkGates(&cand, filter)
		if rej != nil {
			e.logRejection(&cand, rej)
			continue
		}
		params := BuildParams{
			Source:     cand.source,
			Owner:      cand.owner,
			Effect:     eff,
			Event:      cand.event,
			Payload:    cand.payload,
			Activation: &act,
		}
		if confirm != nil {
			accepted, asked := confirm(&cand)
			if asked && !accepted {
				e.emit(e.declinedEvent(cand.owner, cand.source, eff))
				continue
			}
			params.Preconfirmed = asked
		}
		entry := e.BuildTriggerEntry(params)
		if entry == nil {
			continue
		}
		e.emit(e.queuedEvent(entry))
		entries = append(entries, entry)
	}
	return entries
}

func (e *Engine) sourceZone(owner int, card *game.CardInstance) game.ZoneType {
	if z := e.effects.FindCardZone(owner, card); z != game.ZoneNone {
		return z
	}
	return card.Zone
}

// sourceList accumulates scan sources without repeating a card instance.
type sourceList struct {
	seen  map[int]bool
	cards []*game.CardInstance
}

func newSourceList() *sourceList {
	return &sourceList{seen: make(map[int]bool)}
}

func (s *sourceList) add(cards ...*game.CardInstance) {
	for _, c := range cards {
		if c == nil || s.seen[c.ID] {
			continue
		}
		s.seen[c.ID] = true
		s.cards = append(s.cards, c)
	}
}

func (e *Engine) scanAll(entries []*Entry, sources []*game.CardInstance, base candidate, filter eventFilter, confirm inlineConfirm) []*Entry {
	for _, src := range sources {
		c := base
		c.source = src
		c.zone = e.sourceZone(base.owner, src)
		entries = e.scanSource(entries, c, filter, confirm)
	}
	return entries
}
