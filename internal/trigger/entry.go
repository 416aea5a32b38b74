package trigger

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
)

var (
	// ErrEntryConsumed is returned when an applied, cancelled or failed
	// entry is used again.
	ErrEntryConsumed = errors.New("trigger entry already consumed")
	// ErrNotAwaiting is returned when a resume call does not match the
	// entry's pending step.
	ErrNotAwaiting = errors.New("trigger entry is not awaiting this input")
	// ErrCommitted is returned when cancelling an entry whose actions began
	// applying.
	ErrCommitted = errors.New("trigger entry already committed")
)

// Entry lifecycle states.
const (
	StateBuilt                = "built"
	StateAwaitingConfirmation = "awaiting_confirmation"
	StateAwaitingSelection    = "awaiting_selection"
	StateApplied              = "applied"
	StateCancelled            = "cancelled"
	StateFailed               = "failed"
)

const (
	evPrompt        = "prompt"
	evNeedSelection = "need_selection"
	evApply         = "apply"
	evFail          = "fail"
	evCancel        = "cancel"
)

func newEntryFSM() *fsm.FSM {
	open := []string{StateBuilt, StateAwaitingConfirmation, StateAwaitingSelection}
	return fsm.NewFSM(
		StateBuilt,
		fsm.Events{
			{Name: evPrompt, Src: []string{StateBuilt}, Dst: StateAwaitingConfirmation},
			{Name: evNeedSelection, Src: []string{StateBuilt, StateAwaitingConfirmation}, Dst: StateAwaitingSelection},
			{Name: evApply, Src: open, Dst: StateApplied},
			{Name: evFail, Src: open, Dst: StateFailed},
			{Name: evCancel, Src: open, Dst: StateCancelled},
		},
		fsm.Callbacks{},
	)
}

// ActivateFunc replaces the default resolution of an entry.
type ActivateFunc func(ctx context.Context, selections Selections, act *ActivationContext) Outcome

// EntryConfig carries the activation context, selection hints and the
// success callbacks of an entry.
type EntryConfig struct {
	Activation     ActivationContext
	SelectionTitle string
	AllowCancel    bool

	activate  ActivateFunc
	onSuccess []func()
}

// Entry is one activatable trigger. It is consumed once.
type Entry struct {
	Summary string
	Card    *game.CardInstance
	Effect  *game.EffectDefinition
	Owner   int
	Event   game.EventKind
	Config  EntryConfig

	engine       *Engine
	payload      *Payload
	preconfirmed bool
	prompt       string
	fsm          *fsm.FSM
}

// BuildParams are the inputs of BuildTriggerEntry.
type BuildParams struct {
	Source  *game.CardInstance
	Owner   int
	Effect  *game.EffectDefinition
	Event   game.EventKind
	Payload *Payload
	// Activation defaults to the context derived from the source's zone.
	Activation *ActivationContext
	Activate   ActivateFunc
	// OnSuccess runs after the usage ledgers are written.
	OnSuccess func()
	// Preconfirmed skips the confirmation step.
	Preconfirmed bool
}

// BuildTriggerEntry wraps an eligible effect into an entry. It returns nil
// when the source, owner or effect is missing.
func (e *Engine) BuildTriggerEntry(p BuildParams) *Entry {
	if p.Source == nil || p.Effect == nil || !validPlayer(p.Owner) {
		return nil
	}
	act := e.activationContext(p.Source, p.Owner)
	if p.Activation != nil {
		act = *p.Activation
	}
	payload := p.Payload
	if payload == nil {
		payload = &Payload{Player: p.Owner, Opponent: e.game.Opponent(p.Owner), Card: p.Source}
	}

	entry := &Entry{
		Summary:      fmt.Sprintf("P%d %s [%s]", p.Owner+1, p.Source.Card.Name, p.Effect.ID),
		Card:         p.Source,
		Effect:       p.Effect,
		Owner:        p.Owner,
		Event:        p.Event,
		engine:       e,
		payload:      payload,
		preconfirmed: p.Preconfirmed,
		fsm:          newEntryFSM(),
	}
	entry.Config = EntryConfig{
		Activation:     act,
		SelectionTitle: fmt.Sprintf("Choose targets for %s", p.Source.Card.Name),
		AllowCancel:    true,
		activate:       p.Activate,
	}
	entry.Config.onSuccess = append(entry.Config.onSuccess, func() {
		e.RegisterOncePerTurnUsage(entry.Card, entry.Owner, entry.Effect)
		e.RegisterOncePerDuelUsage(entry.Card, entry.Owner, entry.Effect)
	})
	if p.OnSuccess != nil {
		entry.Config.onSuccess = append(entry.Config.onSuccess, p.OnSuccess)
	}
	return entry
}

// State returns the lifecycle state.
func (en *Entry) State() string {
	return en.fsm.Current()
}

// Done reports whether the entry reached a terminal state.
func (en *Entry) Done() bool {
	return en.fsm.Is(StateApplied) || en.fsm.Is(StateCancelled) || en.fsm.Is(StateFailed)
}

// Activate starts resolution. With nil selections and a confirmation
// policy, the owner is asked first: through the prompt host if the engine
// has one, otherwise by returning OutcomeNeedsConfirmation.
// An entry awaiting selection may also be resumed here with selections.
func (en *Entry) Activate(ctx context.Context, selections Selections) (Outcome, error) {
	if en.Done() {
		return Outcome{}, ErrEntryConsumed
	}
	switch en.State() {
	case StateAwaitingConfirmation:
		return Outcome{}, fmt.Errorf("activate %s: %w", en.Summary, ErrNotAwaiting)
	case StateAwaitingSelection:
		if selections == nil {
			return Outcome{}, fmt.Errorf("activate %s: %w", en.Summary, ErrNotAwaiting)
		}
		return en.resolve(ctx, selections)
	}

	e := en.engine
	if selections == nil && !en.preconfirmed && e.ShouldPromptTriggeredEffect(en.Owner, en.Effect, en.Event, en.effectContext(nil)) {
		en.prompt = PromptMessage(en.Card, en.Effect, en.Event)
		if err := en.fsm.Event(ctx, evPrompt); err != nil {
			return Outcome{}, fmt.Errorf("activate %s: %w", en.Summary, err)
		}
		if e.prompts == nil {
			return Outcome{Kind: OutcomeNeedsConfirmation, Prompt: en.prompt}, nil
		}
		meta := PromptMeta{Card: en.Card, Effect: en.Effect, Player: en.Owner, Event: en.Event}
		ok, err := e.ask(ctx, en.prompt, meta)
		if err != nil {
			return Outcome{}, fmt.Errorf("confirm %s: %w", en.Summary, err)
		}
		return en.Confirm(ctx, ok)
	}
	return en.resolve(ctx, selections)
}

// Confirm answers a pending confirmation.
func (en *Entry) Confirm(ctx context.Context, accepted bool) (Outcome, error) {
	if en.Done() {
		return Outcome{}, ErrEntryConsumed
	}
	if !en.fsm.Is(StateAwaitingConfirmation) {
		return Outcome{}, fmt.Errorf("confirm %s: %w", en.Summary, ErrNotAwaiting)
	}
	if !accepted {
		return en.cancel(ctx)
	}
	return en.resolve(ctx, nil)
}

// Submit resumes an entry paused on target selection.
func (en *Entry) Submit(ctx context.Context, selections Selections) (Outcome, error) {
	if en.Done() {
		return Outcome{}, ErrEntryConsumed
	}
	if !en.fsm.Is(StateAwaitingSelection) {
		return Outcome{}, fmt.Errorf("submit %s: %w", en.Summary, ErrNotAwaiting)
	}
	if selections == nil {
		selections = Selections{}
	}
	return en.resolve(ctx, selections)
}

// Cancel abandons an entry that has not started applying.
func (en *Entry) Cancel(ctx context.Context) (Outcome, error) {
	if en.Done() {
		return Outcome{}, ErrEntryConsumed
	}
	if en.Config.Activation.Committed {
		return Outcome{}, ErrCommitted
	}
	return en.cancel(ctx)
}

// PendingPrompt returns the message of an outstanding confirmation.
func (en *Entry) PendingPrompt() string {
	if !en.fsm.Is(StateAwaitingConfirmation) {
		return ""
	}
	return en.prompt
}

func (en *Entry) cancel(ctx context.Context) (Outcome, error) {
	if err := en.fsm.Event(ctx, evCancel); err != nil {
		return Outcome{}, fmt.Errorf("cancel %s: %w", en.Summary, err)
	}
	e := en.engine
	e.emit(e.declinedEvent(en.Owner, en.Card, en.Effect))
	return Outcome{Kind: OutcomeCancelled, Reason: ReasonCancelled}, nil
}

func (en *Entry) resolve(ctx context.Context, selections Selections) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, fmt.Errorf("resolve %s: %w", en.Summary, err)
	}
	e := en.engine

	var out Outcome
	if en.Config.activate != nil {
		out = en.Config.activate(ctx, selections, &en.Config.Activation)
	} else {
		out = e.handleTriggeredEffect(en, selections)
	}

	switch out.Kind {
	case OutcomeApplied:
		if err := en.fsm.Event(ctx, evApply); err != nil {
			return Outcome{}, fmt.Errorf("apply %s: %w", en.Summary, err)
		}
		for _, fn := range en.Config.onSuccess {
			fn()
		}
		e.emit(e.activatedEvent(en))
	case OutcomeNeedsSelection:
		if !en.fsm.Is(StateAwaitingSelection) {
			if err := en.fsm.Event(ctx, evNeedSelection); err != nil {
				return Outcome{}, fmt.Errorf("select %s: %w", en.Summary, err)
			}
			e.emit(e.awaitingSelectionEvent(en))
		}
		en.Config.AllowCancel = !en.Config.Activation.Committed
	case OutcomeCancelled:
		if err := en.fsm.Event(ctx, evCancel); err != nil {
			return Outcome{}, fmt.Errorf("cancel %s: %w", en.Summary, err)
		}
		if out.Reason == "" {
			out.Reason = ReasonCancelled
		}
	default:
		out.Kind = OutcomeFailed
		if err := en.fsm.Event(ctx, evFail); err != nil {
			return Outcome{}, fmt.Errorf("fail %s: %w", en.Summary, err)
		}
		e.emit(e.failedEvent(en, out.Reason))
	}
	return out, nil
}

func (en *Entry) effectContext(selections Selections) *EffectContext {
	e := en.engine
	return &EffectContext{
		Source:     en.Card,
		Effect:     en.Effect,
		Player:     en.Owner,
		Opponent:   e.game.Opponent(en.Owner),
		Event:      en.Event,
		Payload:    en.payload,
		Activation: en.Config.Activation,
		Selections: selections,
	}
}

// handleTriggeredEffect resolves targets, then applies actions. Nothing is
// written before targets are settled. Usage caps are checked again here since
// an earlier entry of the same batch may have spent them.
func (e *Engine) handleTriggeredEffect(en *Entry, selections Selections) Outcome {
	eff := en.Effect
	if reason, spent := e.usageSpent(en); spent {
		return Outcome{Kind: OutcomeFailed, Reason: reason}
	}
	ec := en.effectContext(selections)

	var targets ResolvedTargets
	if len(eff.Targets) > 0 {
		res := e.effects.ResolveTargets(eff.Targets, ec, selections)
		if res.NeedsSelection {
			return Outcome{Kind: OutcomeNeedsSelection, Selection: res.Selection, Reason: res.Reason}
		}
		if !res.OK {
			reason := res.Reason
			if reason == "" {
				reason = "no valid targets"
			}
			return Outcome{Kind: OutcomeFailed, Reason: reason}
		}
		targets = res.Targets
	}

	en.Config.Activation.Committed = true
	ec.Activation.Committed = true

	res := e.effects.ApplyActions(eff.Actions, ec, targets)
	if res.NeedsSelection {
		return Outcome{Kind: OutcomeNeedsSelection, Selection: res.Selection, Reason: res.Reason}
	}
	if !res.OK {
		reason := res.Reason
		if reason == "" {
			reason = "effect could not be applied"
		}
		return Outcome{Kind: OutcomeFailed, Reason: reason}
	}

	if en.Card.Card.Kind == game.CardKindMonster && en.Card.Card.ID > 0 {
		if rec, ok := e.game.(MaterialRecorder); ok {
			rec.RecordMaterialEffectActivation(en.Owner, en.Card, MaterialMeta{
				EffectID: eff.ID,
				Event:    en.Event,
				Turn:     e.state().Turn,
			})
		}
	}
	e.game.CheckWinCondition()
	return Outcome{Kind: OutcomeApplied}
}

func (e *Engine) usageSpent(en *Entry) (string, bool) {
	eff := en.Effect
	if eff.OncePerTurn {
		if check := e.effects.CheckOncePerTurn(en.Card, en.Owner, eff); !check.OK {
			return check.Reason, true
		}
	}
	if check := e.CheckOncePerDuel(en.Card, en.Owner, eff); !check.OK {
		return check.Reason, true
	}
	return "", false
}

// --- event log helpers ---

func (e *Engine) queuedEvent(en *Entry) log.GameEvent {
	gs := e.state()
	return log.NewTriggerQueuedEvent(gs.Turn, gs.Phase.String(), en.Owner, en.Card.Card.Name, en.Effect.ID, string(en.Event))
}

func (e *Engine) activatedEvent(en *Entry) log.GameEvent {
	gs := e.state()
	return log.NewTriggerActivatedEvent(gs.Turn, gs.Phase.String(), en.Owner, en.Card.Card.Name, en.Effect.ID)
}

func (e *Engine) declinedEvent(owner int, card *game.CardInstance, eff *game.EffectDefinition) log.GameEvent {
	gs := e.state()
	return log.NewTriggerDeclinedEvent(gs.Turn, gs.Phase.String(), owner, card.Card.Name, eff.ID)
}

func (e *Engine) failedEvent(en *Entry, reason string) log.GameEvent {
	gs := e.state()
	return log.NewTriggerFailedEvent(gs.Turn, gs.Phase.String(), en.Owner, en.Card.Card.Name, en.Effect.ID, reason)
}

func (e *Engine) awaitingSelectionEvent(en *Entry) log.GameEvent {
	gs := e.state()
	return log.NewTriggerAwaitingSelectionEvent(gs.Turn, gs.Phase.String(), en.Owner, en.Card.Card.Name, en.Effect.ID)
}
