package trigger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger/mock"
)

type mockedEngine struct {
	engine  *trigger.Engine
	game    *mock.MockGameContext
	effects *mock.MockEffectEngine
	board   *board
}

// newMockedEngine wires an engine to mocks that answer board lookups from
// a real game state. Gate answers are left to each test.
func newMockedEngine(t *testing.T, turn int) *mockedEngine {
	return newMockedEngineLogged(t, turn, zaptest.NewLogger(t))
}

func newMockedEngineLogged(t *testing.T, turn int, logger *zap.Logger) *mockedEngine {
	ctrl := gomock.NewController(t)
	b := newBoard(turn)
	gc := mock.NewMockGameContext(ctrl)
	fx := mock.NewMockEffectEngine(ctrl)

	gc.EXPECT().State().Return(b.gs).AnyTimes()
	gc.EXPECT().Opponent(gomock.Any()).DoAndReturn(b.gs.Opponent).AnyTimes()
	gc.EXPECT().DevModeEnabled().Return(false).AnyTimes()
	fx.EXPECT().FindCardZone(gomock.Any(), gomock.Any()).DoAndReturn(func(_ int, c *game.CardInstance) game.ZoneType {
		return c.Zone
	}).AnyTimes()

	e := trigger.NewEngine(trigger.Config{Game: gc, Effects: fx, Logger: logger})
	return &mockedEngine{engine: e, game: gc, effects: fx, board: b}
}

func standby() trigger.Payload {
	return trigger.Payload{Player: 0, Opponent: 1}
}

// TestNegationStopsBeforeUsage: a negated source is dropped at the negation
// gate; no later gate is consulted.
func TestNegationStopsBeforeUsage(t *testing.T) {
	m := newMockedEngine(t, 2)
	src := m.board.field(0, monster(0, "Hushed", "Fiend", 1000, onEvent("hush", game.EventStandbyPhase, gainLP(100))))
	m.effects.EXPECT().IsEffectNegated(src).Return(true)

	c, err := m.engine.CollectEventTriggers(context.Background(), game.EventStandbyPhase, standby())
	require.NoError(t, err)
	assert.Empty(t, c.Entries)
}

// TestFaceDownTrapSkipsNegation: a set trap answering an attack is not
// asked about negation.
func TestFaceDownTrapSkipsNegation(t *testing.T) {
	m := newMockedEngine(t, 2)
	trp := m.board.set(0, trap("Wall of Thorns", onEvent("thorns", game.EventAttackDeclared, gainLP(100))), 1)
	trp.Negated = true
	attacker := m.board.field(1, monster(0, "Raider", "Warrior", 1500))

	m.effects.EXPECT().CheckOncePerTurn(trp, 0, gomock.Any()).Return(trigger.UsageCheck{OK: true})
	m.game.EXPECT().Emit(gomock.Any())

	c, err := m.engine.CollectEventTriggers(context.Background(), game.EventAttackDeclared, trigger.Payload{
		Player:        1,
		Opponent:      0,
		Attacker:      attacker,
		AttackerOwner: 1,
		DefenderOwner: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1 Wall of Thorns [thorns]"}, c.Summaries())
}

func TestOncePerTurnGate(t *testing.T) {
	m := newMockedEngine(t, 2)
	eff := onEvent("daily", game.EventStandbyPhase, gainLP(100))
	eff.OncePerTurn = true
	src := m.board.field(0, monster(0, "Daily", "Fairy", 500, eff))

	m.effects.EXPECT().IsEffectNegated(src).Return(false)
	m.effects.EXPECT().CheckOncePerTurn(src, 0, gomock.Any()).Return(trigger.UsageCheck{Reason: "used"})

	c, err := m.engine.CollectEventTriggers(context.Background(), game.EventStandbyPhase, standby())
	require.NoError(t, err)
	assert.Empty(t, c.Entries)
}

// TestConditionGateBeforeTargets: a failed condition drops the candidate
// without running the target preview.
func TestConditionGateBeforeTargets(t *testing.T) {
	m := newMockedEngine(t, 2)
	eff := onEvent("low", game.EventStandbyPhase, func(e *game.EffectDefinition) {
		e.Condition = &game.Condition{Kind: game.CondLPAtMost, Value: 1000}
		e.Targets = []game.TargetSpec{{ID: "t", Zone: game.ZoneField}}
		e.Actions = []game.ActionSpec{{Kind: game.ActionDestroy, Target: "t"}}
	})
	src := m.board.field(0, monster(0, "Desperado", "Warrior", 1200, eff))

	m.effects.EXPECT().IsEffectNegated(src).Return(false)
	m.effects.EXPECT().CheckOncePerTurn(src, 0, gomock.Any()).Return(trigger.UsageCheck{OK: true})
	m.effects.EXPECT().
		CheckEffectCondition(gomock.Any(), src, 0, nil, game.ZoneField, game.ZoneNone).
		Return(false)

	c, err := m.engine.CollectEventTriggers(context.Background(), game.EventStandbyPhase, standby())
	require.NoError(t, err)
	assert.Empty(t, c.Entries)
}

// TestTargetPreviewRejectsShortPool: a selection contract that cannot be
// met drops the candidate before any prompt.
func TestTargetPreviewRejectsShortPool(t *testing.T) {
	m := newMockedEngine(t, 2)
	eff := onEvent("pair", game.EventStandbyPhase, func(e *game.EffectDefinition) {
		e.Targets = []game.TargetSpec{{ID: "t", Zone: game.ZoneField, Min: 2, Max: 2}}
		e.Actions = []game.ActionSpec{{Kind: game.ActionDestroy, Target: "t"}}
	})
	src := m.board.field(0, monster(0, "Twin Shot", "Machine", 1000, eff))
	lone := m.board.field(1, monster(0, "Lone", "Warrior", 1000))

	m.effects.EXPECT().IsEffectNegated(src).Return(false)
	m.effects.EXPECT().CheckOncePerTurn(src, 0, gomock.Any()).Return(trigger.UsageCheck{OK: true})
	m.effects.EXPECT().ResolveTargets(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ []game.TargetSpec, ec *trigger.EffectContext, _ trigger.Selections) trigger.TargetResult {
			assert.True(t, ec.Preview)
			assert.True(t, ec.Silent)
			return trigger.TargetResult{
				NeedsSelection: true,
				Selection: &trigger.SelectionContract{Requirements: []trigger.SelectionRequirement{
					{ID: "t", Min: 2, Max: 2, Candidates: []*game.CardInstance{lone}},
				}},
			}
		})

	c, err := m.engine.CollectEventTriggers(context.Background(), game.EventStandbyPhase, standby())
	require.NoError(t, err)
	assert.Empty(t, c.Entries)
}

func TestAllGatesPass(t *testing.T) {
	m := newMockedEngine(t, 2)
	eff := onEvent("zap", game.EventStandbyPhase, func(e *game.EffectDefinition) {
		e.Condition = &game.Condition{Kind: game.CondLPAtLeast, Value: 100}
		e.Targets = []game.TargetSpec{{ID: "t", Zone: game.ZoneField, Owner: game.OwnerOpponent}}
		e.Actions = []game.ActionSpec{{Kind: game.ActionDestroy, Target: "t"}}
	})
	src := m.board.field(0, monster(0, "Zapper", "Thunder", 1000, eff))

	gomock.InOrder(
		m.effects.EXPECT().IsEffectNegated(src).Return(false),
		m.effects.EXPECT().CheckOncePerTurn(src, 0, gomock.Any()).Return(trigger.UsageCheck{OK: true}),
		m.effects.EXPECT().CheckEffectCondition(gomock.Any(), src, 0, nil, game.ZoneField, game.ZoneNone).Return(true),
		m.effects.EXPECT().ResolveTargets(gomock.Any(), gomock.Any(), nil).Return(trigger.TargetResult{OK: true}),
		m.game.EXPECT().Emit(gomock.Any()),
	)

	c, err := m.engine.CollectEventTriggers(context.Background(), game.EventStandbyPhase, standby())
	require.NoError(t, err)
	require.Len(t, c.Entries, 1)
	en := c.Entries[0]
	assert.Equal(t, trigger.StateBuilt, en.State())
	assert.Equal(t, game.ZoneField, en.Config.Activation.SourceZone)
	assert.False(t, en.Config.Activation.FromHand)
	assert.True(t, en.Config.AllowCancel)
}

// --- gates against the sandbox host ---

func TestFaceupGate(t *testing.T) {
	b := newBoard(2)
	eff := onEvent("flip", game.EventStandbyPhase, gainLP(100))
	eff.RequireFaceup = true
	src := b.field(0, monster(0, "Shy Golem", "Rock", 800, eff))
	src.Face = game.FaceDown
	d := newSandbox(t, b, false)

	c, err := d.Engine.CollectEventTriggers(context.Background(), game.EventStandbyPhase, standby())
	require.NoError(t, err)
	assert.Empty(t, c.Entries)

	src.Face = game.FaceUp
	c, err = d.Engine.CollectEventTriggers(context.Background(), game.EventStandbyPhase, standby())
	require.NoError(t, err)
	assert.Len(t, c.Entries, 1)
}

// TestHandGate: a hand card takes part only through a self_in_hand
// requirement or a summon-from-hand action.
func TestHandGate(t *testing.T) {
	b := newBoard(2)
	attacker := b.field(0, monster(0, "Raider", "Warrior", 1800))
	victim := b.field(1, monster(0, "Victim", "Warrior", 1000))
	b.hand(1, monster(0, "Plain Hand", "Warrior", 1000, onEvent("plain", game.EventBattleDestroy, gainLP(1))))
	b.hand(1, monster(0, "Avenger", "Warrior", 1000, onEvent("avenge", game.EventBattleDestroy, func(e *game.EffectDefinition) {
		e.Condition = &game.Condition{Requires: game.RequiresSelfInHand}
		e.Actions = []game.ActionSpec{{Kind: game.ActionSpecialSummonSelf}}
	})))
	b.hand(1, monster(0, "Rescuer", "Warrior", 1000, onEvent("rescue", game.EventBattleDestroy, func(e *game.EffectDefinition) {
		e.Actions = []game.ActionSpec{{Kind: game.ActionConditionalSummonFromHand}}
	})))
	d := newSandbox(t, b, false)

	c, err := d.Engine.CollectEventTriggers(context.Background(), game.EventBattleDestroy, trigger.Payload{
		Player:         0,
		Opponent:       1,
		Attacker:       attacker,
		AttackerOwner:  0,
		Destroyed:      victim,
		DestroyedOwner: 1,
		DestroyCause:   game.DestroyBattle,
		WasDestroyed:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"P2 Avenger [avenge]", "P2 Rescuer [rescue]"}, c.Summaries())
	for _, en := range c.Entries {
		assert.True(t, en.Config.Activation.FromHand)
		assert.Equal(t, game.ZoneHand, en.Config.Activation.ActivationZone)
	}
}

func TestTrapSetThisTurn(t *testing.T) {
	b := newBoard(4)
	b.set(0, trap("Fresh Trap", onEvent("fresh", game.EventAttackDeclared, gainLP(1))), 4)
	b.set(0, trap("Old Trap", onEvent("old", game.EventAttackDeclared, gainLP(1))), 3)
	attacker := b.field(1, monster(0, "Raider", "Warrior", 1500))
	d := newSandbox(t, b, true)

	c, err := d.Engine.CollectEventTriggers(context.Background(), game.EventAttackDeclared, trigger.Payload{
		Player: 1, Opponent: 0, Attacker: attacker, AttackerOwner: 1, DefenderOwner: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1 Old Trap [old]"}, c.Summaries())
}

func TestOpponentSummonGate(t *testing.T) {
	b := newBoard(2)
	eff := onEvent("watch", game.EventAfterSummon, gainLP(100))
	eff.RequireOpponentSummon = true
	b.field(0, monster(0, "Watchman", "Warrior", 1000, eff))
	mine := b.hand(0, monster(0, "Mine", "Warrior", 1000))
	theirs := b.hand(1, monster(0, "Theirs", "Warrior", 1000))
	d := newSandbox(t, b, true)
	ctx := context.Background()

	require.NoError(t, d.Summon(ctx, mine, game.SummonNormal, game.PositionATK))
	require.Len(t, d.Batches, 1)
	assert.Empty(t, d.Batches[0].Summaries)

	require.NoError(t, d.Summon(ctx, theirs, game.SummonNormal, game.PositionATK))
	require.Len(t, d.Batches, 2)
	assert.Equal(t, []string{"P1 Watchman [watch]"}, d.Batches[1].Summaries)
}
