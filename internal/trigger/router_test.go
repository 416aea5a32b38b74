package trigger_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/trigger"
)

// TestOrderRules: every routed event reports its order rule, unknown events
// report no_triggers.
func TestOrderRules(t *testing.T) {
	d := newSandbox(t, newBoard(2), false)
	ctx := context.Background()

	var sb strings.Builder
	kinds := append(append([]game.EventKind(nil), game.EventKinds...), "chain_resolved")
	for _, kind := range kinds {
		c, err := d.Engine.CollectEventTriggers(ctx, kind, trigger.Payload{Player: 0, Opponent: 1})
		require.NoError(t, err)
		assert.Empty(t, c.Entries, kind)
		fmt.Fprintf(&sb, "%s: %s\n", kind, c.OrderRule)
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "order_rules", []byte(sb.String()))
}

func TestCollectUnknownEvent(t *testing.T) {
	b := newBoard(2)
	b.field(0, monster(0, "Watcher", "Warrior", 1000, onEvent("w", game.EventStandbyPhase, gainLP(100))))
	d := newSandbox(t, b, false)

	c, err := d.Engine.CollectEventTriggers(context.Background(), "end_phase", trigger.Payload{Player: 0, Opponent: 1})
	require.NoError(t, err)
	assert.Equal(t, trigger.OrderNoTriggers, c.OrderRule)
	assert.Empty(t, c.Entries)
	assert.Nil(t, c.OnComplete)
}

func TestCollectCancelledContext(t *testing.T) {
	d := newSandbox(t, newBoard(2), false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Engine.CollectEventTriggers(ctx, game.EventStandbyPhase, trigger.Payload{Player: 0, Opponent: 1})
	require.ErrorIs(t, err, context.Canceled)
}

// TestCollectMissingPayload: collectors return an empty, well-formed
// collection when the payload lacks the event's subject.
func TestCollectMissingPayload(t *testing.T) {
	d := newSandbox(t, newBoard(2), false)
	ctx := context.Background()

	cases := []struct {
		kind game.EventKind
		p    trigger.Payload
		rule string
	}{
		{game.EventAfterSummon, trigger.Payload{Player: 0}, trigger.OrderAfterSummon},
		{game.EventBattleDestroy, trigger.Payload{AttackerOwner: 0, DestroyedOwner: 1}, trigger.OrderBattleDestroy},
		{game.EventAttackDeclared, trigger.Payload{AttackerOwner: trigger.NoPlayer}, trigger.OrderAttackDeclared},
		{game.EventEffectTargeted, trigger.Payload{}, trigger.OrderEffectTargeted},
		{game.EventCardToGrave, trigger.Payload{}, trigger.OrderCardToGrave},
		{game.EventStandbyPhase, trigger.Payload{Player: trigger.NoPlayer}, trigger.OrderStandbyPhase},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			c, err := d.Engine.CollectEventTriggers(ctx, tc.kind, tc.p)
			require.NoError(t, err)
			assert.Empty(t, c.Entries)
			assert.Equal(t, tc.rule, c.OrderRule)
		})
	}
}

// TestStandbyOrder: standby sources are field monsters, then the spell/trap
// zone, then the field spell.
func TestStandbyOrder(t *testing.T) {
	b := newBoard(3)
	b.fieldSpell(0, fieldSpell("Arena", onEvent("arena", game.EventStandbyPhase, gainLP(1))))
	b.set(0, trap("Old Trap", onEvent("old", game.EventStandbyPhase, gainLP(1))), 1)
	b.field(0, monster(0, "Sentry", "Warrior", 1000, onEvent("sentry", game.EventStandbyPhase, gainLP(1))))
	b.field(1, monster(0, "Foe", "Warrior", 1000, onEvent("foe", game.EventStandbyPhase, gainLP(1))))
	d := newSandbox(t, b, false)

	c, err := d.Engine.CollectEventTriggers(context.Background(), game.EventStandbyPhase, trigger.Payload{Player: 0, Opponent: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1 Sentry [sentry]", "P1 Old Trap [old]", "P1 Arena [arena]"}, c.Summaries())
}
