package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

// ErrCascade is returned when triggered effects keep causing new events.
var ErrCascade = errors.New("trigger cascade limit reached")

const maxSelectionRounds = 8

// drain collects and resolves queued events until none are left. Events
// raised while resolving are appended and handled in order.
func (d *Duel) drain(ctx context.Context) error {
	defer func() { d.cascadeBudget = 0 }()
	for len(d.pending) > 0 {
		if d.Game.Over {
			d.pending = nil
			return nil
		}
		if d.cascadeBudget >= maxCascade {
			d.pending = nil
			return ErrCascade
		}
		d.cascadeBudget++

		ev := d.pending[0]
		d.pending = d.pending[1:]
		c, err := d.Engine.CollectEventTriggers(ctx, ev.kind, ev.payload)
		if err != nil {
			return err
		}
		if _, err := d.ResolveBatch(ctx, ev.kind, c); err != nil {
			return err
		}
	}
	return nil
}

// ResolveBatch activates every entry in collection order, asking the
// owning controllers for confirmations and selections, then runs the
// collection's completion step.
func (d *Duel) ResolveBatch(ctx context.Context, kind game.EventKind, c trigger.Collection) (Batch, error) {
	b := Batch{Event: kind, OrderRule: c.OrderRule, Summaries: c.Summaries()}
	for _, entry := range c.Entries {
		if d.Game.Over {
			break
		}
		out, err := d.resolveEntry(ctx, entry)
		if err != nil {
			return b, err
		}
		b.Outcomes = append(b.Outcomes, out)
	}
	if c.OnComplete != nil {
		c.OnComplete()
	}
	d.Batches = append(d.Batches, b)
	return b, nil
}

func (d *Duel) resolveEntry(ctx context.Context, entry *trigger.Entry) (trigger.Outcome, error) {
	out, err := entry.Activate(ctx, nil)
	for round := 0; err == nil && round < maxSelectionRounds; round++ {
		switch out.Kind {
		case trigger.OutcomeNeedsConfirmation:
			ctrl := d.Controllers[entry.Owner]
			if ctrl == nil {
				return out, fmt.Errorf("confirm %s: %w", entry.Summary, ErrNoController)
			}
			yes, cerr := ctrl.ChooseYesNo(ctx, d.Game, out.Prompt)
			if cerr != nil {
				return out, fmt.Errorf("confirm %s: %w", entry.Summary, cerr)
			}
			out, err = entry.Confirm(ctx, yes)
		case trigger.OutcomeNeedsSelection:
			sel, serr := d.chooseSelections(ctx, entry, out.Selection)
			if serr != nil {
				return out, serr
			}
			out, err = entry.Submit(ctx, sel)
		default:
			return out, nil
		}
	}
	if err != nil {
		return out, err
	}
	return out, fmt.Errorf("resolve %s: selection did not settle", entry.Summary)
}

func (d *Duel) chooseSelections(ctx context.Context, entry *trigger.Entry, contract *trigger.SelectionContract) (trigger.Selections, error) {
	ctrl := d.Controllers[entry.Owner]
	if ctrl == nil {
		return nil, fmt.Errorf("select for %s: %w", entry.Summary, ErrNoController)
	}
	sel := trigger.Selections{}
	if contract == nil {
		return sel, nil
	}
	for _, req := range contract.Requirements {
		prompt := fmt.Sprintf("%s (%s)", entry.Config.SelectionTitle, req.ID)
		chosen, err := ctrl.ChooseCards(ctx, d.Game, prompt, req.Candidates, req.Min, req.Max)
		if err != nil {
			return nil, fmt.Errorf("select for %s: %w", entry.Summary, err)
		}
		ids := make([]int, 0, len(chosen))
		for _, c := range chosen {
			ids = append(ids, c.ID)
		}
		sel[req.ID] = ids
	}
	return sel, nil
}
