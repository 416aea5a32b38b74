package trigger

import (
	"fmt"
	"strings"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// SummonCountKey is the field presence counter for a monster type.
func SummonCountKey(monsterType string) string {
	return "summon_count_" + monsterType
}

// AssignFieldPresenceID stamps a fresh presence on a card entering the
// field and resets its presence-scoped counters.
func (e *Engine) AssignFieldPresenceID(card *game.CardInstance) string {
	if card == nil {
		return ""
	}
	random := strings.ReplaceAll(e.ids.New(), "-", "")
	if len(random) > 8 {
		random = random[:8]
	}
	card.FieldPresenceID = fmt.Sprintf("fp_%d_%d_%s", card.ID, e.now().UnixMilli(), random)
	card.FieldPresenceState = map[string]int{}
	return card.FieldPresenceID
}

// ClearFieldPresenceID ends the card's presence when it leaves the field.
func (e *Engine) ClearFieldPresenceID(card *game.CardInstance) {
	if card == nil {
		return
	}
	card.FieldPresenceState = nil
	card.FieldPresenceID = ""
}

// HandleSpecialSummonTypeCounters counts a special summon on every face-up
// monster whose passive tracks the summoned type, then recomputes passive
// buffs for every special summon. It reports whether any counter changed.
func (e *Engine) HandleSpecialSummonTypeCounters(p Payload) bool {
	summoned := p.Card
	if summoned == nil || !p.Method.IsSpecial() {
		return false
	}
	monsterType := summoned.Card.Type
	changed := false
	for _, pl := range e.state().Players {
		for _, m := range pl.FaceUpMonsters() {
			passive := m.PassiveOf(game.PassiveTypeSpecialSummonedCountBuff)
			if passive == nil || !passive.MatchesType(monsterType) {
				continue
			}
			if !passive.OwnerFilter.Matches(m.Controller, p.Player) {
				continue
			}
			if m.State.SpecialSummonTypeCount == nil {
				m.State.SpecialSummonTypeCount = make(map[string]int)
			}
			m.State.SpecialSummonTypeCount[monsterType]++
			changed = true
		}
	}
	e.effects.UpdatePassiveBuffs()
	return changed
}

// HandleFieldPresenceTypeSummonCounters counts a summon on every other
// face-up monster with a live presence whose passive tracks the summoned
// type, method and summoner. It reports whether any counter changed.
func (e *Engine) HandleFieldPresenceTypeSummonCounters(p Payload) bool {
	summoned := p.Card
	if summoned == nil || p.Method == "" {
		return false
	}
	method := p.Method.Normalized()
	monsterType := summoned.Card.Type
	changed := false
	for _, pl := range e.state().Players {
		for _, m := range pl.FaceUpMonsters() {
			if m.ID == summoned.ID || m.FieldPresenceID == "" {
				continue
			}
			passive := m.PassiveOf(game.PassiveFieldPresenceTypeSummonCountBuff)
			if passive == nil || !passive.MatchesType(monsterType) {
				continue
			}
			if !countsMethod(passive.CountedMethods(), method) {
				continue
			}
			if !passive.OwnerFilter.Matches(m.Controller, p.Player) {
				continue
			}
			if m.FieldPresenceState == nil {
				m.FieldPresenceState = map[string]int{}
			}
			m.FieldPresenceState[SummonCountKey(monsterType)]++
			changed = true
		}
	}
	if changed {
		e.effects.UpdatePassiveBuffs()
	}
	return changed
}

func countsMethod(methods []game.SummonMethod, method game.SummonMethod) bool {
	for _, m := range methods {
		if m.Normalized() == method {
			return true
		}
	}
	return false
}
