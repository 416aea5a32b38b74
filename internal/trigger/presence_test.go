package trigger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger/mock"
)

func TestAssignFieldPresenceID(t *testing.T) {
	b := newBoard(2)
	card := b.field(0, monster(0, "Wyrm", "Dragon", 1500))
	d := newSandbox(t, b, true)

	ids := mock.NewMockIDGenerator(gomock.NewController(t))
	ids.EXPECT().New().Return("9f86d081-884c-4d63-9a8f-0f3f2c1b4e5a")
	engine := trigger.NewEngine(trigger.Config{
		Game:    d,
		Effects: d.Effects,
		Logger:  zaptest.NewLogger(t),
		IDs:     ids,
		Now:     fixedNow,
	})

	card.FieldPresenceState = map[string]int{"summon_count_Dragon": 3}
	id := engine.AssignFieldPresenceID(card)
	assert.Equal(t, "fp_1_1700000000000_9f86d081", id)
	assert.Equal(t, id, card.FieldPresenceID)
	assert.Empty(t, card.FieldPresenceState)
	assert.NotNil(t, card.FieldPresenceState)

	engine.ClearFieldPresenceID(card)
	assert.Empty(t, card.FieldPresenceID)
	assert.Nil(t, card.FieldPresenceState)

	assert.Empty(t, engine.AssignFieldPresenceID(nil))
	engine.ClearFieldPresenceID(nil)
}

func TestNewDuelAssignsPresence(t *testing.T) {
	b := newBoard(1)
	m := b.field(0, monster(0, "Wyrm", "Dragon", 1500))
	st := b.set(1, trap("Pit", onEvent("pit", game.EventAttackDeclared)), 0)
	fs := b.fieldSpell(1, fieldSpell("Arena"))
	h := b.hand(0, monster(0, "Held", "Dragon", 100))
	newSandbox(t, b, true)

	assert.NotEmpty(t, m.FieldPresenceID)
	assert.NotEmpty(t, st.FieldPresenceID)
	assert.NotEmpty(t, fs.FieldPresenceID)
	assert.Empty(t, h.FieldPresenceID)
	assert.NotEqual(t, m.FieldPresenceID, st.FieldPresenceID)
}

func TestSpecialSummonTypeCounters(t *testing.T) {
	b := newBoard(2)
	tracker := b.field(0, monster(0, "Dragon Caller", "Spellcaster", 1000, passive("call", game.PassiveSpec{
		Kind:           game.PassiveTypeSpecialSummonedCountBuff,
		TrackedType:    "Dragon",
		OwnerFilter:    game.OwnerSelf,
		AmountPerCount: 100,
	})))
	mine := b.hand(0, monster(0, "Wyrm", "Dragon", 1500))
	fused := b.hand(0, monster(0, "Twin Wyrm", "Dragon", 2500))
	normal := b.hand(0, monster(0, "Hatchling", "Dragon", 300))
	theirs := b.hand(1, monster(0, "Rival Wyrm", "Dragon", 1500))
	beast := b.hand(0, monster(0, "Wolf", "Beast", 1200))
	d := newSandbox(t, b, false)
	ctx := context.Background()

	require.NoError(t, d.Summon(ctx, mine, game.SummonSpecial, game.PositionATK))
	require.NoError(t, d.Summon(ctx, fused, game.SummonFusion, game.PositionATK))
	require.NoError(t, d.Summon(ctx, normal, game.SummonNormal, game.PositionATK))
	require.NoError(t, d.Summon(ctx, theirs, game.SummonSpecial, game.PositionATK))
	require.NoError(t, d.Summon(ctx, beast, game.SummonSpecial, game.PositionATK))

	assert.Equal(t, map[string]int{"Dragon": 2}, tracker.State.SpecialSummonTypeCount)
	assert.Equal(t, 1200, tracker.CurrentATK())

	// the generic counter survives leaving the field
	require.NoError(t, d.SendToGraveyard(ctx, tracker))
	assert.Equal(t, 2, tracker.State.SpecialSummonTypeCount["Dragon"])
}

func TestSpecialSummonCounterDirect(t *testing.T) {
	b := newBoard(2)
	tracker := b.field(1, monster(0, "Any Caller", "Spellcaster", 1000, passive("call", game.PassiveSpec{
		Kind:           game.PassiveTypeSpecialSummonedCountBuff,
		TrackedType:    "any",
		OwnerFilter:    game.OwnerOpponent,
		AmountPerCount: 50,
	})))
	hidden := b.field(1, monster(0, "Hidden Caller", "Spellcaster", 1000, passive("call", game.PassiveSpec{
		Kind:           game.PassiveTypeSpecialSummonedCountBuff,
		AmountPerCount: 50,
	})))
	hidden.Face = game.FaceDown
	summoned := b.field(0, monster(0, "Golem", "Rock", 1000))
	d := newSandbox(t, b, true)

	assert.False(t, d.Engine.HandleSpecialSummonTypeCounters(trigger.Payload{Player: 0, Card: summoned, Method: game.SummonNormal}))
	assert.False(t, d.Engine.HandleSpecialSummonTypeCounters(trigger.Payload{Player: 1, Card: summoned, Method: game.SummonSpecial}))
	assert.True(t, d.Engine.HandleSpecialSummonTypeCounters(trigger.Payload{Player: 0, Card: summoned, Method: game.SummonAscension}))
	assert.False(t, d.Engine.HandleSpecialSummonTypeCounters(trigger.Payload{Player: 0, Method: game.SummonSpecial}))

	assert.Equal(t, 1, tracker.State.SpecialSummonTypeCount["Rock"])
	assert.Nil(t, hidden.State.SpecialSummonTypeCount)
	assert.Equal(t, 1050, tracker.CurrentATK())
}

func TestFieldPresenceCounters(t *testing.T) {
	b := newBoard(2)
	tracker := b.field(0, monster(0, "Crowd Watcher", "Warrior", 1000, passive("watch", game.PassiveSpec{
		Kind:           game.PassiveFieldPresenceTypeSummonCountBuff,
		TrackedType:    "Warrior",
		SummonMethods:  []game.SummonMethod{game.SummonNormal, game.SummonTribute},
		OwnerFilter:    game.OwnerAny,
		AmountPerCount: 100,
	})))
	d := newSandbox(t, b, true)
	soldier := b.field(1, monster(0, "Soldier", "Warrior", 1000))
	dragon := b.field(1, monster(0, "Wyrm", "Dragon", 1000))

	assert.True(t, d.Engine.HandleFieldPresenceTypeSummonCounters(trigger.Payload{Player: 1, Card: soldier, Method: game.SummonNormal}))
	assert.True(t, d.Engine.HandleFieldPresenceTypeSummonCounters(trigger.Payload{Player: 0, Card: soldier, Method: game.SummonTribute}))
	assert.False(t, d.Engine.HandleFieldPresenceTypeSummonCounters(trigger.Payload{Player: 1, Card: soldier, Method: game.SummonSpecial}))
	assert.False(t, d.Engine.HandleFieldPresenceTypeSummonCounters(trigger.Payload{Player: 1, Card: dragon, Method: game.SummonNormal}))
	assert.False(t, d.Engine.HandleFieldPresenceTypeSummonCounters(trigger.Payload{Player: 1, Card: soldier}))
	// the tracker never counts its own summon
	assert.False(t, d.Engine.HandleFieldPresenceTypeSummonCounters(trigger.Payload{Player: 0, Card: tracker, Method: game.SummonNormal}))

	assert.Equal(t, map[string]int{"summon_count_Warrior": 2}, tracker.FieldPresenceState)
	assert.Equal(t, 1200, tracker.CurrentATK())

	// no presence, no counting
	d.Engine.ClearFieldPresenceID(tracker)
	assert.False(t, d.Engine.HandleFieldPresenceTypeSummonCounters(trigger.Payload{Player: 1, Card: soldier, Method: game.SummonNormal}))
}

func TestSummonCountKey(t *testing.T) {
	assert.Equal(t, "summon_count_Dragon", trigger.SummonCountKey("Dragon"))
}

// TestSpecialSummonRecomputesBuffs: every special summon recomputes passive
// buffs, whether or not a counter moved. Other summons do not.
func TestSpecialSummonRecomputesBuffs(t *testing.T) {
	m := newMockedEngine(t, 2)
	summoned := m.board.field(1, monster(0, "Wisp", "Fairy", 300))

	m.effects.EXPECT().UpdatePassiveBuffs().Times(2)
	assert.False(t, m.engine.HandleSpecialSummonTypeCounters(trigger.Payload{Player: 1, Card: summoned, Method: game.SummonSpecial}))
	assert.False(t, m.engine.HandleSpecialSummonTypeCounters(trigger.Payload{Player: 1, Card: summoned, Method: game.SummonFusion}))
	assert.False(t, m.engine.HandleSpecialSummonTypeCounters(trigger.Payload{Player: 1, Card: summoned, Method: game.SummonNormal}))
	assert.False(t, m.engine.HandleSpecialSummonTypeCounters(trigger.Payload{Player: 1, Method: game.SummonSpecial}))
}
