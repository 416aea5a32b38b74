package host

import (
	"strings"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

// UpdatePassiveBuffs strips and reapplies all continuous stat modifiers
// from the summon-counting passives.
func (fx *Effects) UpdatePassiveBuffs() {
	gs := fx.d.Game

	// Strip all continuous modifiers from all monsters
	for p := 0; p < 2; p++ {
		for _, m := range gs.Players[p].Monsters() {
			m.StripContinuousModifiers()
		}
	}

	// Re-apply from face-up monsters
	for p := 0; p < 2; p++ {
		for _, m := range gs.Players[p].FaceUpMonsters() {
			if m.Negated {
				continue
			}
			bonus := 0
			if ps := m.PassiveOf(game.PassiveTypeSpecialSummonedCountBuff); ps != nil {
				bonus += ps.AmountPerCount * trackedCount(m.State.SpecialSummonTypeCount, ps.TrackedType, "")
			}
			if ps := m.PassiveOf(game.PassiveFieldPresenceTypeSummonCountBuff); ps != nil {
				bonus += ps.AmountPerCount * trackedCount(m.FieldPresenceState, ps.TrackedType, trigger.SummonCountKey(""))
			}
			if bonus != 0 {
				m.AddModifier(game.StatModifier{Source: m.ID, ATKMod: bonus, Continuous: true})
			}
		}
	}
}

// trackedCount reads one tracked type, or sums every key with prefix when
// the passive tracks any type.
func trackedCount(counts map[string]int, tracked, prefix string) int {
	if tracked != "" && tracked != "any" {
		return counts[prefix+tracked]
	}
	total := 0
	for k, v := range counts {
		if strings.HasPrefix(k, prefix) {
			total += v
		}
	}
	return total
}
