package host

import (
	"fmt"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

// bounds returns the normalized min/max of a target spec. An unset pair
// means exactly one.
func bounds(spec game.TargetSpec) (int, int) {
	min, max := spec.Min, spec.Max
	if min == 0 && max == 0 {
		return 1, 1
	}
	if max < min {
		max = min
	}
	return min, max
}

// Candidates lists the cards a target spec can choose, in board order.
func (fx *Effects) Candidates(spec game.TargetSpec, ec *trigger.EffectContext) []*game.CardInstance {
	gs := fx.d.Game
	var out []*game.CardInstance
	for _, idx := range []int{ec.Player, gs.Opponent(ec.Player)} {
		owner := spec.Owner
		if owner == "" {
			owner = game.OwnerAny
		}
		if !owner.Matches(ec.Player, idx) {
			continue
		}
		for _, c := range zoneCards(gs.Players[idx], spec.Zone) {
			if spec.ExcludeSelf && ec.Source != nil && c.ID == ec.Source.ID {
				continue
			}
			if spec.Kind != "" && c.Card.Kind.String() != spec.Kind {
				continue
			}
			if spec.Type != "" && c.Card.Type != spec.Type {
				continue
			}
			if spec.Archetype != "" && c.Card.Archetype != spec.Archetype {
				continue
			}
			if spec.FaceUp && c.Face != game.FaceUp {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

func zoneCards(p *game.Player, zone game.ZoneType) []*game.CardInstance {
	switch zone {
	case game.ZoneSpellTrap:
		return p.SpellTrapCards()
	case game.ZoneFieldSpell:
		if p.FieldSpell == nil {
			return nil
		}
		return []*game.CardInstance{p.FieldSpell}
	case game.ZoneHand:
		return append([]*game.CardInstance(nil), p.Hand...)
	case game.ZoneGraveyard:
		return append([]*game.CardInstance(nil), p.Graveyard...)
	default:
		return p.Monsters()
	}
}

// ResolveTargets settles every target spec. Specs whose candidate count
// equals a fixed size are chosen automatically; the rest need selections.
func (fx *Effects) ResolveTargets(targets []game.TargetSpec, ec *trigger.EffectContext, selections trigger.Selections) trigger.TargetResult {
	resolved := trigger.ResolvedTargets{}
	contract := &trigger.SelectionContract{}

	for _, spec := range targets {
		min, max := bounds(spec)
		cands := fx.Candidates(spec, ec)
		if len(cands) < min {
			return trigger.TargetResult{Reason: fmt.Sprintf("%q needs %d target(s), %d available", spec.ID, min, len(cands))}
		}
		if max > len(cands) {
			max = len(cands)
		}

		if ids, ok := selections[spec.ID]; ok {
			chosen, err := pick(cands, ids, min, max)
			if err != nil {
				return trigger.TargetResult{Reason: fmt.Sprintf("%q: %v", spec.ID, err)}
			}
			resolved[spec.ID] = chosen
			continue
		}

		if min == max && max == len(cands) {
			resolved[spec.ID] = cands
			continue
		}
		contract.Requirements = append(contract.Requirements, trigger.SelectionRequirement{
			ID:         spec.ID,
			Min:        min,
			Max:        max,
			Candidates: cands,
		})
	}

	if len(contract.Requirements) > 0 {
		return trigger.TargetResult{NeedsSelection: true, Selection: contract, Targets: resolved}
	}
	return trigger.TargetResult{OK: true, Targets: resolved}
}

func pick(cands []*game.CardInstance, ids []int, min, max int) ([]*game.CardInstance, error) {
	if len(ids) < min || len(ids) > max {
		return nil, fmt.Errorf("chose %d, need %d-%d", len(ids), min, max)
	}
	byID := make(map[int]*game.CardInstance, len(cands))
	for _, c := range cands {
		byID[c.ID] = c
	}
	seen := make(map[int]bool, len(ids))
	out := make([]*game.CardInstance, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("card %d is not a legal target", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("card %d chosen twice", id)
		}
		seen[id] = true
		out = append(out, c)
	}
	return out, nil
}
