package trigger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// ShouldPromptTriggeredEffect reports whether activating effect needs a
// yes/no confirmation from its owner.
func (e *Engine) ShouldPromptTriggeredEffect(owner int, effect *game.EffectDefinition, event game.EventKind, ec *EffectContext) bool {
	if effect == nil || !validPlayer(owner) {
		return false
	}
	if !e.player(owner).IsHuman() {
		return false
	}
	if effect.PromptUser != nil && !*effect.PromptUser {
		return false
	}
	if ec != nil && (ec.Preview || ec.Silent) {
		return false
	}
	switch event {
	case game.EventAttackDeclared:
		if effect.PromptOnAttackDeclared != nil && !*effect.PromptOnAttackDeclared {
			return false
		}
	case game.EventEffectTargeted:
		if effect.PromptOnTargeted != nil && !*effect.PromptOnTargeted {
			return false
		}
	}
	return true
}

// PromptMessage returns the confirmation text for an effect.
func PromptMessage(card *game.CardInstance, effect *game.EffectDefinition, event game.EventKind) string {
	if effect != nil && effect.PromptMessage != "" {
		return effect.PromptMessage
	}
	name := card.Card.Name
	switch event {
	case game.EventAfterSummon:
		return fmt.Sprintf("Activate %q in response to the summon?", name)
	case game.EventBattleDestroy:
		return fmt.Sprintf("Activate %q after the battle destruction?", name)
	case game.EventAttackDeclared:
		return fmt.Sprintf("Activate %q in response to the attack?", name)
	case game.EventEffectTargeted:
		return fmt.Sprintf("Activate %q in response to the targeting?", name)
	case game.EventCardToGrave:
		return fmt.Sprintf("Activate %q now that it was sent to the Graveyard?", name)
	case game.EventStandbyPhase:
		return fmt.Sprintf("Activate %q during the Standby Phase?", name)
	default:
		return fmt.Sprintf("Activate %q?", name)
	}
}

// ask shows a confirmation through the prompt host, using the effect's
// custom method when the host knows it.
func (e *Engine) ask(ctx context.Context, message string, meta PromptMeta) (bool, error) {
	if meta.Effect != nil && meta.Effect.CustomPromptMethod != "" {
		if fn, ok := e.prompts.CustomPrompt(meta.Effect.CustomPromptMethod); ok {
			return fn(ctx, message, meta)
		}
		e.logger.Warn("unknown custom prompt method, using confirm",
			zap.String("method", meta.Effect.CustomPromptMethod),
			zap.String("card", meta.Card.Card.Name))
	}
	return e.prompts.Confirm(ctx, message, meta)
}

// inlineConfirm asks before an entry is built. asked is false when no
// prompt was shown.
type inlineConfirm func(c *candidate) (accepted, asked bool)

// respondConfirm builds the in-collection prompt for attack and targeting
// responses. Traps always ask; on attack declaration speed 2 effects ask too.
func (e *Engine) respondConfirm(ctx context.Context) inlineConfirm {
	return func(c *candidate) (bool, bool) {
		if e.prompts == nil {
			return false, false
		}
		isTrap := c.source.Card.Kind == game.CardKindTrap
		if !isTrap && !(c.event == game.EventAttackDeclared && c.effect.Speed >= 2) {
			return false, false
		}
		if !e.ShouldPromptTriggeredEffect(c.owner, c.effect, c.event, nil) {
			return false, false
		}
		meta := PromptMeta{Card: c.source, Effect: c.effect, Player: c.owner, Event: c.event}
		ok, err := e.ask(ctx, PromptMessage(c.source, c.effect, c.event), meta)
		if err != nil {
			e.logger.Error("inline confirm failed",
				zap.String("card", c.source.Card.Name),
				zap.String("effect", c.effect.ID),
				zap.Error(err))
			return false, true
		}
		return ok, true
	}
}
