package trigger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/host"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

func collect(t *testing.T, d *host.Duel, kind game.EventKind, p trigger.Payload) trigger.Collection {
	t.Helper()
	c, err := d.Engine.CollectEventTriggers(context.Background(), kind, p)
	require.NoError(t, err)
	return c
}

// --- after_summon ---

func TestAfterSummonSourceOrder(t *testing.T) {
	b := newBoard(2)
	plain := func(id string) *game.EffectDefinition { return onEvent(id, game.EventAfterSummon, gainLP(1)) }
	fromHand := func(id string) *game.EffectDefinition {
		return onEvent(id, game.EventAfterSummon, func(e *game.EffectDefinition) {
			e.Actions = []game.ActionSpec{{Kind: game.ActionConditionalSummonFromHand}}
		})
	}
	b.hand(0, monster(0, "Hand Ally", "Warrior", 100, fromHand("p1-hand")))
	b.fieldSpell(0, fieldSpell("Home Arena", plain("p1-fs")))
	b.field(0, monster(0, "Field Ally", "Warrior", 100, plain("p1-field")))
	summoned := b.field(0, monster(0, "Newcomer", "Warrior", 100, plain("p1-self")))
	b.field(1, monster(0, "Foe", "Warrior", 100, plain("p2-field")))
	b.fieldSpell(1, fieldSpell("Away Arena", plain("p2-fs")))
	b.hand(1, monster(0, "Foe Hand", "Warrior", 100, fromHand("p2-hand")))
	d := newSandbox(t, b, true)

	c := collect(t, d, game.EventAfterSummon, trigger.Payload{
		Player: 0, Opponent: 1, Card: summoned, Method: game.SummonNormal, FromZone: game.ZoneHand, ToZone: game.ZoneField,
	})
	assert.Equal(t, trigger.OrderAfterSummon, c.OrderRule)
	assert.Equal(t, []string{
		"P1 Newcomer [p1-self]",
		"P1 Field Ally [p1-field]",
		"P1 Home Arena [p1-fs]",
		"P1 Hand Ally [p1-hand]",
		"P2 Foe [p2-field]",
		"P2 Away Arena [p2-fs]",
		"P2 Foe Hand [p2-hand]",
	}, c.Summaries())
	assert.NotNil(t, c.OnComplete)
}

func TestAfterSummonFilters(t *testing.T) {
	mainOnly := []game.Phase{game.PhaseMain1, game.PhaseMain2}
	cases := []struct {
		name   string
		mod    func(*game.EffectDefinition)
		method game.SummonMethod
		from   game.ZoneType
		phase  game.Phase
		want   bool
	}{
		{"special accepts fusion", func(e *game.EffectDefinition) { e.SummonMethod = game.SummonSpecial }, game.SummonFusion, game.ZoneHand, game.PhaseMain1, true},
		{"special rejects normal", func(e *game.EffectDefinition) { e.SummonMethod = game.SummonSpecial }, game.SummonNormal, game.ZoneHand, game.PhaseMain1, false},
		{"method list", func(e *game.EffectDefinition) {
			e.SummonMethods = []game.SummonMethod{game.SummonTribute, game.SummonFlip}
		}, game.SummonFlip, game.ZoneField, game.PhaseMain1, true},
		{"ascension is not fusion", func(e *game.EffectDefinition) { e.SummonMethod = game.SummonFusion }, game.SummonAscension, game.ZoneHand, game.PhaseMain1, false},
		{"from graveyard", func(e *game.EffectDefinition) { e.SummonFrom = game.ZoneGraveyard }, game.SummonSpecial, game.ZoneGraveyard, game.PhaseMain1, true},
		{"not from graveyard", func(e *game.EffectDefinition) { e.RequireSummonedFrom = game.ZoneGraveyard }, game.SummonSpecial, game.ZoneHand, game.PhaseMain1, false},
		{"phase allowed", func(e *game.EffectDefinition) { e.RequirePhase = mainOnly }, game.SummonNormal, game.ZoneHand, game.PhaseMain2, true},
		{"phase refused", func(e *game.EffectDefinition) { e.RequirePhase = mainOnly }, game.SummonSpecial, game.ZoneHand, game.PhaseBattle, false},
		{"summoned type", func(e *game.EffectDefinition) {
			e.Condition = &game.Condition{Kind: game.CondSummonedCardType, Name: "Dragon"}
		}, game.SummonNormal, game.ZoneHand, game.PhaseMain1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBoard(2)
			b.gs.Phase = tc.phase
			b.field(0, monster(0, "Observer", "Warrior", 100, onEvent("obs", game.EventAfterSummon, gainLP(1), tc.mod)))
			summoned := b.field(0, monster(0, "Wyrm", "Dragon", 1500))
			d := newSandbox(t, b, true)

			c := collect(t, d, game.EventAfterSummon, trigger.Payload{
				Player: 0, Opponent: 1, Card: summoned, Method: tc.method, FromZone: tc.from, ToZone: game.ZoneField,
			})
			assert.Equal(t, tc.want, len(c.Entries) == 1, c.Summaries())
		})
	}
}

// TestSummonFromHandChain: a hand monster that answers a summon summons
// itself, and its own summon is routed in turn.
func TestSummonFromHandChain(t *testing.T) {
	b := newBoard(2)
	echo := monster(0, "Echo", "Fairy", 800, onEvent("echo", game.EventAfterSummon, noPrompt, func(e *game.EffectDefinition) {
		e.Condition = &game.Condition{Kind: game.CondSummonedCardType, Name: "Fairy", Requires: game.RequiresSelfInHand}
		e.Actions = []game.ActionSpec{{Kind: game.ActionConditionalSummonFromHand}}
	}))
	e1 := b.hand(0, echo)
	lead := b.hand(0, monster(0, "Lead Fairy", "Fairy", 1000))
	d := newSandbox(t, b, false)

	require.NoError(t, d.Summon(context.Background(), lead, game.SummonNormal, game.PositionATK))
	require.Len(t, d.Batches, 2)
	assert.Equal(t, []string{"P1 Echo [echo]"}, d.Batches[0].Summaries)
	assert.Empty(t, d.Batches[1].Summaries)
	assert.Equal(t, game.ZoneField, e1.Zone)
	assert.NotEmpty(t, e1.FieldPresenceID)
}

// --- battle_destroy ---

func battlePayload(attacker, destroyed *game.CardInstance) trigger.Payload {
	return trigger.Payload{
		Player: attacker.Controller, Opponent: 1 - attacker.Controller,
		Attacker: attacker, AttackerOwner: attacker.Controller,
		Destroyed: destroyed, DestroyedOwner: destroyed.Owner,
		DestroyCause: game.DestroyBattle, WasDestroyed: true,
	}
}

func TestBattleDestroyFilters(t *testing.T) {
	b := newBoard(2)
	attacker := b.field(0, monster(0, "Crusader", "Warrior", 2000, onEvent("victory", game.EventBattleDestroy, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireSelfAsAttacker = true
		e.RequireDestroyedIsOpponent = true
	})))
	b.field(0, monster(0, "Banner", "Warrior", 100, onEvent("banner", game.EventBattleDestroy, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireOwnMonsterArchetype = "Paladin"
	})))
	b.field(0, monster(0, "Bystander", "Warrior", 100, onEvent("bystand", game.EventBattleDestroy, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireSelfAsAttacker = true
	})))
	b.field(0, monster(0, "Effect Only", "Warrior", 100, onEvent("eff", game.EventBattleDestroy, gainLP(1), func(e *game.EffectDefinition) {
		e.Condition = &game.Condition{Kind: game.CondDestroyedByEffect}
	})))
	victim := b.field(1, monster(0, "Goblin", "Fiend", 900, onEvent("grudge", game.EventBattleDestroy, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireSelfAsDestroyed = true
		e.Condition = &game.Condition{Kind: game.CondDestroyedByBattle}
	})))
	b.field(1, monster(0, "Goblin Chief", "Fiend", 1200, onEvent("chief", game.EventBattleDestroy, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireOwnMonsterArchetype = "Goblin"
	})))
	victim.Card.Archetype = "Goblin"
	d := newSandbox(t, b, true)

	c := collect(t, d, game.EventBattleDestroy, battlePayload(attacker, victim))
	assert.Equal(t, []string{"P1 Crusader [victory]", "P2 Goblin Chief [chief]", "P2 Goblin [grudge]"}, c.Summaries())
	assert.NotNil(t, c.OnComplete)
}

func TestBattleDestroyEquip(t *testing.T) {
	b := newBoard(2)
	attacker := b.field(0, monster(0, "Lancer", "Warrior", 1800))
	idle := b.field(0, monster(0, "Idle", "Warrior", 1000))
	victim := b.field(1, monster(0, "Orc", "Fiend", 1000))

	equipCard := func(name string) *game.Card {
		return &game.Card{Name: name, Kind: game.CardKindSpell, Sub: game.SubEquip, Effects: []*game.EffectDefinition{
			onEvent("spoils", game.EventBattleDestroy, gainLP(1), func(e *game.EffectDefinition) { e.RequireEquippedAsAttacker = true }),
		}}
	}
	onLancer := b.set(0, equipCard("Lance of Spoils"), 1)
	onLancer.Face = game.FaceUp
	onLancer.EquippedTo = attacker
	attacker.Equips = append(attacker.Equips, onLancer)
	onIdle := b.set(0, equipCard("Idle Spoils"), 1)
	onIdle.Face = game.FaceUp
	onIdle.EquippedTo = idle
	idle.Equips = append(idle.Equips, onIdle)
	d := newSandbox(t, b, true)

	c := collect(t, d, game.EventBattleDestroy, battlePayload(attacker, victim))
	assert.Equal(t, []string{"P1 Lance of Spoils [spoils]"}, c.Summaries())
}

// --- attack_declared ---

func attackPayload(attacker, defender *game.CardInstance) trigger.Payload {
	return trigger.Payload{
		Player: attacker.Controller, Opponent: 1 - attacker.Controller,
		Attacker: attacker, AttackerOwner: attacker.Controller,
		Defender: defender, DefenderOwner: trigger.NoPlayer,
	}
}

func TestAttackDeclaredFilters(t *testing.T) {
	def := game.PositionDEF
	b := newBoard(3)
	attacker := b.field(1, monster(0, "Raider", "Warrior", 1500, onEvent("charge", game.EventAttackDeclared, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireSelfAsAttacker = true
	})))
	b.field(1, monster(0, "Raider Ally", "Warrior", 1500, onEvent("rally", game.EventAttackDeclared, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireSelfAsAttacker = true
	})))
	defender := b.field(0, monster(0, "Guard", "Rock", 1000, onEvent("brace", game.EventAttackDeclared, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireSelfAsDefender = true
		e.RequireDefenderPosition = &def
	})))
	defender.Position = game.PositionDEF
	b.field(0, monster(0, "Rock Warden", "Rock", 1000, onEvent("warden", game.EventAttackDeclared, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireDefenderIsSelf = true
		e.RequireDefenderType = "Rock"
	})))
	b.field(0, monster(0, "Bird Warden", "Rock", 1000, onEvent("bird", game.EventAttackDeclared, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireDefenderType = "Winged Beast"
	})))
	b.fieldSpell(0, fieldSpell("Fortress", onEvent("fort", game.EventAttackDeclared, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireOpponentAttack = true
	})))
	b.fieldSpell(1, fieldSpell("Siege Camp", onEvent("camp", game.EventAttackDeclared, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireOpponentAttack = true
	})))
	b.set(0, trap("Pitfall", onEvent("pit", game.EventAttackDeclared, gainLP(1))), 2)
	d := newSandbox(t, b, true)

	c := collect(t, d, game.EventAttackDeclared, attackPayload(attacker, defender))
	assert.Equal(t, trigger.OrderAttackDeclared, c.OrderRule)
	assert.Equal(t, []string{
		"P2 Raider [charge]",
		"P1 Guard [brace]",
		"P1 Rock Warden [warden]",
		"P1 Fortress [fort]",
		"P1 Pitfall [pit]",
	}, c.Summaries())
	assert.Nil(t, c.OnComplete)
}

// TestAttackInlineConfirm: human traps and speed 2 effects are confirmed
// during collection; a decline drops the candidate.
func TestAttackInlineConfirm(t *testing.T) {
	b := newBoard(3)
	attacker := b.field(1, monster(0, "Raider", "Warrior", 1500))
	b.field(0, monster(0, "Quick Guard", "Warrior", 1000, onEvent("quick", game.EventAttackDeclared, gainLP(10), func(e *game.EffectDefinition) {
		e.Speed = 2
	})))
	b.field(0, monster(0, "Slow Guard", "Warrior", 1000, onEvent("slow", game.EventAttackDeclared, gainLP(10))))
	b.set(0, trap("Pitfall", onEvent("pit", game.EventAttackDeclared, gainLP(10))), 2)
	b.set(0, trap("Mirror", onEvent("mirror", game.EventAttackDeclared, gainLP(10), func(e *game.EffectDefinition) {
		e.CustomPromptMethod = "trap_response"
	})), 2)
	p0 := host.NewScriptedController().AddYesNo(true, false, true, true)
	d, logger := newDuel(t, b, p0, nil)

	c := collect(t, d, game.EventAttackDeclared, attackPayload(attacker, nil))
	assert.Equal(t, []string{"P1 Quick Guard [quick]", "P1 Slow Guard [slow]", "P1 Mirror [mirror]"}, c.Summaries())
	assert.Equal(t, []string{
		`Activate "Quick Guard" in response to the attack?`,
		`Activate "Pitfall" in response to the attack?`,
		`[Trap] Activate "Mirror" in response to the attack?`,
	}, p0.Prompts)
	declined := logger.EventsOfType(log.EventTriggerDeclined)
	require.Len(t, declined, 1)
	assert.Equal(t, "Pitfall", declined[0].Card)

	// confirmed entries do not ask again
	for _, en := range c.Entries {
		out, err := en.Activate(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, out.Success())
	}
	assert.Len(t, p0.Prompts, 4)
	assert.Equal(t, `Activate "Slow Guard" in response to the attack?`, p0.Prompts[3])
}

// --- effect_targeted ---

func TestEffectTargetedSources(t *testing.T) {
	b := newBoard(3)
	target := b.field(0, monster(0, "Ward", "Spellcaster", 1000, onEvent("ward", game.EventEffectTargeted, gainLP(1))))
	b.field(0, monster(0, "Dragon Ward", "Dragon", 1000, onEvent("dward", game.EventEffectTargeted, gainLP(1), func(e *game.EffectDefinition) {
		e.RequireTargetType = "Dragon"
	})))
	b.set(0, trap("Spell Shield", onEvent("shield", game.EventEffectTargeted, gainLP(1))), 2)
	open := b.set(0, trap("Open Shield", onEvent("open", game.EventEffectTargeted, gainLP(1))), 2)
	open.Face = game.FaceUp
	b.fieldSpell(0, fieldSpell("Sanctum", onEvent("sanctum", game.EventEffectTargeted, gainLP(1))))
	b.field(1, monster(0, "Caster", "Spellcaster", 1000, onEvent("enemy", game.EventEffectTargeted, gainLP(1))))
	d := newSandbox(t, b, true)

	c := collect(t, d, game.EventEffectTargeted, trigger.Payload{Player: 0, Opponent: 1, Target: target, TargetOwner: trigger.NoPlayer})
	assert.Equal(t, trigger.OrderEffectTargeted, c.OrderRule)
	assert.Equal(t, []string{"P1 Ward [ward]", "P1 Spell Shield [shield]", "P1 Sanctum [sanctum]"}, c.Summaries())
}

func TestTargetedTrapConfirmedByHost(t *testing.T) {
	b := newBoard(3)
	target := b.field(0, monster(0, "Ward", "Spellcaster", 1000))
	b.set(0, trap("Spell Shield", onEvent("shield", game.EventEffectTargeted, gainLP(100), func(e *game.EffectDefinition) {
		e.CustomPromptMethod = "trap_response"
	})), 2)
	caster := b.field(1, monster(0, "Caster", "Spellcaster", 1000))
	p0 := host.NewScriptedController().AddYesNo(true)
	d, _ := newDuel(t, b, p0, nil)

	require.NoError(t, d.TargetWithEffect(context.Background(), target, caster))
	require.Len(t, d.Batches, 1)
	assert.Equal(t, []string{"P1 Spell Shield [shield]"}, d.Batches[0].Summaries)
	assert.True(t, d.Batches[0].Outcomes[0].Success())
	assert.Equal(t, []string{`[Trap] Activate "Spell Shield" in response to the targeting?`}, p0.Prompts)
	assert.Equal(t, game.StartingLP+100, b.gs.Players[0].LP)
}

// --- card_to_grave ---

func TestCardToGraveFilters(t *testing.T) {
	b := newBoard(2)
	destroyedOnly := onEvent("requiem", game.EventCardToGrave, gainLP(100), func(e *game.EffectDefinition) {
		e.RequireSelfAsDestroyed = true
	})
	fromField := onEvent("fall", game.EventCardToGrave, gainLP(100), func(e *game.EffectDefinition) {
		e.FromZone = game.ZoneField
	})
	fielded := b.field(1, monster(0, "Requiem", "Zombie", 1000, destroyedOnly))
	discarded := b.hand(1, monster(0, "Fallen", "Zombie", 1000, fromField))
	milled := b.field(1, monster(0, "Fallen Twin", "Zombie", 1000, fromField.Clone()))
	d := newSandbox(t, b, false)
	ctx := context.Background()

	require.NoError(t, d.SendToGraveyard(ctx, fielded))
	require.NoError(t, d.SendToGraveyard(ctx, discarded))
	require.NoError(t, d.SendToGraveyard(ctx, milled))
	require.Len(t, d.Batches, 3)
	assert.Empty(t, d.Batches[0].Summaries)
	assert.Empty(t, d.Batches[1].Summaries)
	assert.Equal(t, []string{"P2 Fallen Twin [fall]"}, d.Batches[2].Summaries)
	assert.Equal(t, trigger.OrderCardToGrave, d.Batches[2].OrderRule)
}

// TestDestroyCascade: an effect that destroys a card routes the resulting
// card_to_grave with the effect as cause.
func TestDestroyCascade(t *testing.T) {
	b := newBoard(3)
	b.field(0, monster(0, "Executioner", "Warrior", 1800, onEvent("axe", game.EventStandbyPhase, noPrompt, func(e *game.EffectDefinition) {
		e.Targets = []game.TargetSpec{{ID: "foe", Owner: game.OwnerOpponent, Zone: game.ZoneField}}
		e.Actions = []game.ActionSpec{{Kind: game.ActionDestroy, Target: "foe"}}
	})))
	b.field(1, monster(0, "Martyr", "Fairy", 500, onEvent("last", game.EventCardToGrave, func(e *game.EffectDefinition) {
		e.Condition = &game.Condition{Kind: game.CondDestroyedByEffect}
		e.Actions = []game.ActionSpec{{Kind: game.ActionInflictDamage, Amount: 500}}
	})))
	d := newSandbox(t, b, false)

	require.NoError(t, d.BeginStandby(context.Background()))
	require.Len(t, d.Batches, 2)
	assert.Equal(t, game.EventCardToGrave, d.Batches[1].Event)
	assert.Equal(t, []string{"P2 Martyr [last]"}, d.Batches[1].Summaries)
	assert.Equal(t, game.StartingLP-500, b.gs.Players[0].LP)
}
