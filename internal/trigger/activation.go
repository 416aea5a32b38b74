package trigger

import (
	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// ActivationContext is derived once per entry from the source's zone.
type ActivationContext struct {
	FromHand       bool
	ActivationZone game.ZoneType
	SourceZone     game.ZoneType
	// Committed flips once actions start applying; the entry can no longer
	// be cancelled after that.
	Committed bool
}

// Selections maps a target requirement id to the chosen card instance ids.
type Selections map[string][]int

// ResolvedTargets maps a target requirement id to the chosen cards.
type ResolvedTargets map[string][]*game.CardInstance

// EffectContext is what the effect engine sees while resolving an effect.
type EffectContext struct {
	Source     *game.CardInstance
	Effect     *game.EffectDefinition
	Player     int
	Opponent   int
	Event      game.EventKind
	Payload    *Payload
	Activation ActivationContext
	Selections Selections

	// Preview is set for the feasibility check run during collection.
	Preview bool
	// Silent suppresses confirmation prompts.
	Silent bool
}

// SelectionRequirement is one outstanding choice.
type SelectionRequirement struct {
	ID         string
	Min        int
	Max        int
	Candidates []*game.CardInstance
}

// SelectionContract describes the choices needed before resolution can go on.
type SelectionContract struct {
	Requirements []SelectionRequirement
}

// TargetResult is returned by EffectEngine.ResolveTargets.
type TargetResult struct {
	OK             bool
	NeedsSelection bool
	Selection      *SelectionContract
	Targets        ResolvedTargets
	Reason         string
}

// ActionResult is returned by EffectEngine.ApplyActions.
type ActionResult struct {
	OK             bool
	NeedsSelection bool
	Selection      *SelectionContract
	Reason         string
}

// UsageCheck is the answer of a usage ledger.
type UsageCheck struct {
	OK     bool
	Reason string
}

// OutcomeKind tags the result of an activation step.
type OutcomeKind int

const (
	OutcomeApplied OutcomeKind = iota
	OutcomeNeedsConfirmation
	OutcomeNeedsSelection
	OutcomeCancelled
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeApplied:
		return "applied"
	case OutcomeNeedsConfirmation:
		return "needs_confirmation"
	case OutcomeNeedsSelection:
		return "needs_selection"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of Activate, Confirm and Submit.
// NeedsConfirmation resumes through Entry.Confirm, NeedsSelection through
// Entry.Submit.
type Outcome struct {
	Kind      OutcomeKind
	Reason    string
	Prompt    string
	Selection *SelectionContract
}

// Success reports whether the effect was applied.
func (o Outcome) Success() bool {
	return o.Kind == OutcomeApplied
}

// ReasonCancelled is the reason carried by a declined confirmation.
const ReasonCancelled = "Effect activation cancelled."

func (e *Engine) activationContext(source *game.CardInstance, owner int) ActivationContext {
	zone := e.effects.FindCardZone(owner, source)
	if zone == game.ZoneNone {
		zone = source.Zone
	}
	return ActivationContext{
		FromHand:       zone == game.ZoneHand,
		ActivationZone: zone,
		SourceZone:     zone,
	}
}
