package host

import (
	"context"
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

// ControllerPrompts routes trigger confirmations to the owning player's
// controller.
type ControllerPrompts struct {
	d      *Duel
	custom map[string]trigger.PromptFunc
}

var _ trigger.PromptHost = (*ControllerPrompts)(nil)

// NewControllerPrompts creates the prompt host of a duel with the built-in
// custom prompts registered.
func NewControllerPrompts(d *Duel) *ControllerPrompts {
	p := &ControllerPrompts{d: d, custom: make(map[string]trigger.PromptFunc)}
	p.Register("trap_response", func(ctx context.Context, message string, meta trigger.PromptMeta) (bool, error) {
		return p.Confirm(ctx, fmt.Sprintf("[Trap] %s", message), meta)
	})
	p.Register("hand_effect", func(ctx context.Context, message string, meta trigger.PromptMeta) (bool, error) {
		return p.Confirm(ctx, fmt.Sprintf("[From hand] %s", message), meta)
	})
	return p
}

// Register adds a named custom prompt.
func (p *ControllerPrompts) Register(method string, fn trigger.PromptFunc) {
	p.custom[method] = fn
}

func (p *ControllerPrompts) Confirm(ctx context.Context, message string, meta trigger.PromptMeta) (bool, error) {
	ctrl := p.d.Controllers[meta.Player]
	if ctrl == nil {
		return false, fmt.Errorf("confirm for P%d: %w", meta.Player+1, ErrNoController)
	}
	return ctrl.ChooseYesNo(ctx, p.d.Game, message)
}

func (p *ControllerPrompts) CustomPrompt(method string) (trigger.PromptFunc, bool) {
	fn, ok := p.custom[method]
	return fn, ok
}
