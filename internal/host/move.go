package host

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
)

// ErrUnknownInstance is returned when a move names a card ID not on the board.
var ErrUnknownInstance = errors.New("unknown card instance")

// MoveKind names a board move a front-end can request.
type MoveKind string

const (
	MoveSummon   MoveKind = "summon"
	MoveSet      MoveKind = "set"
	MoveAttack   MoveKind = "attack"
	MoveBattle   MoveKind = "battle"
	MoveMutual   MoveKind = "mutual"
	MoveDestroy  MoveKind = "destroy"
	MoveSend     MoveKind = "send"
	MoveTarget   MoveKind = "target"
	MoveStandby  MoveKind = "standby"
	MoveNextTurn MoveKind = "next_turn"
	MoveFire     MoveKind = "fire"
)

// Move is a board move with all necessary details. Card and Other are
// card instance IDs; zero means none. Event is only set for fire, which
// announces an event about cards where they lie without moving anything.
type Move struct {
	Kind   MoveKind          `json:"kind"`
	Card   int               `json:"card,omitempty"`
	Other  int               `json:"other,omitempty"`
	Method game.SummonMethod `json:"method,omitempty"`
	Event  game.EventKind    `json:"event,omitempty"`
}

func (m Move) String() string {
	switch m.Kind {
	case MoveSummon:
		method := m.Method
		if method == "" {
			method = game.SummonNormal
		}
		return fmt.Sprintf("summon #%d (%s)", m.Card, method)
	case MoveAttack:
		if m.Other == 0 {
			return fmt.Sprintf("#%d attacks directly", m.Card)
		}
		return fmt.Sprintf("#%d attacks #%d", m.Card, m.Other)
	case MoveBattle:
		return fmt.Sprintf("#%d destroys #%d by battle", m.Card, m.Other)
	case MoveMutual:
		return fmt.Sprintf("#%d and #%d destroy each other", m.Card, m.Other)
	case MoveStandby, MoveNextTurn:
		return string(m.Kind)
	case MoveFire:
		s := fmt.Sprintf("fire %s", m.Event)
		for _, id := range []int{m.Card, m.Other} {
			if id != 0 {
				s += fmt.Sprintf(" #%d", id)
			}
		}
		return s
	default:
		return fmt.Sprintf("%s #%d", m.Kind, m.Card)
	}
}

// ParseMove parses the text form used by the REPL and the CLI:
//
//	summon <id> [method] | set <id> | attack <id> [<id>] | battle <attacker> <destroyed>
//	mutual <a> <b> | destroy <id> [<by>] | send <id> | target <id> [<by>] | standby | next_turn
//	fire <event> [<id>] [<id>]
func ParseMove(s string) (Move, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Move{}, errors.New("empty move")
	}
	m := Move{Kind: MoveKind(strings.ToLower(fields[0]))}
	args := fields[1:]

	ids := func(min, max int) error {
		if len(args) < min || len(args) > max {
			return fmt.Errorf("%s takes %d-%d card ids", m.Kind, min, max)
		}
		for i, a := range args {
			n, err := strconv.Atoi(strings.TrimPrefix(a, "#"))
			if err != nil {
				return fmt.Errorf("card id %q: %w", a, err)
			}
			if i == 0 {
				m.Card = n
			} else {
				m.Other = n
			}
		}
		return nil
	}

	var err error
	switch m.Kind {
	case MoveSummon:
		if len(args) == 2 {
			m.Method = game.SummonMethod(strings.ToLower(args[1]))
			args = args[:1]
		}
		err = ids(1, 1)
	case MoveSet, MoveSend:
		err = ids(1, 1)
	case MoveAttack, MoveDestroy, MoveTarget:
		err = ids(1, 2)
	case MoveBattle, MoveMutual:
		err = ids(2, 2)
	case MoveStandby, MoveNextTurn:
		err = ids(0, 0)
	case MoveFire:
		if len(args) == 0 {
			return Move{}, errors.New("fire needs an event")
		}
		m.Event = game.EventKind(strings.ToLower(args[0]))
		if !slices.Contains(game.EventKinds, m.Event) {
			return Move{}, fmt.Errorf("unknown event %q", args[0])
		}
		args = args[1:]
		err = ids(0, 2)
	default:
		err = fmt.Errorf("unknown move %q", fields[0])
	}
	if err != nil {
		return Move{}, err
	}
	return m, nil
}

func (d *Duel) instance(id int) (*game.CardInstance, error) {
	if id == 0 {
		return nil, nil
	}
	c := d.Game.FindInstance(id)
	if c == nil {
		return nil, fmt.Errorf("#%d: %w", id, ErrUnknownInstance)
	}
	return c, nil
}

// Apply performs a move and resolves every trigger it causes.
func (d *Duel) Apply(ctx context.Context, m Move) error {
	card, err := d.instance(m.Card)
	if err != nil {
		return err
	}
	other, err := d.instance(m.Other)
	if err != nil {
		return err
	}
	needCard := func() error {
		if card == nil {
			return fmt.Errorf("%s needs a card", m.Kind)
		}
		return nil
	}

	switch m.Kind {
	case MoveStandby:
		return d.BeginStandby(ctx)
	case MoveNextTurn:
		d.AdvanceTurn()
		return nil
	case MoveFire:
		p, err := d.announcement(m.Event, card, other)
		if err != nil {
			return err
		}
		return d.Fire(ctx, m.Event, p)
	}
	if err := needCard(); err != nil {
		return err
	}

	switch m.Kind {
	case MoveSummon:
		method := m.Method
		if method == "" {
			method = game.SummonNormal
		}
		return d.Summon(ctx, card, method, game.PositionATK)
	case MoveSet:
		return d.Set(card)
	case MoveAttack:
		return d.DeclareAttack(ctx, card, other)
	case MoveBattle:
		if other == nil {
			return errors.New("battle needs the destroyed card")
		}
		return d.DestroyByBattle(ctx, card, other)
	case MoveMutual:
		if other == nil {
			return errors.New("mutual needs both cards")
		}
		return d.DestroyByBattle(ctx, card, card, other)
	case MoveDestroy:
		return d.DestroyByEffect(ctx, card, other)
	case MoveSend:
		return d.SendToGraveyard(ctx, card)
	case MoveTarget:
		return d.TargetWithEffect(ctx, card, other)
	}
	return fmt.Errorf("unknown move %q", m.Kind)
}

// Set places a spell or trap from its owner's hand face-down.
func (d *Duel) Set(card *game.CardInstance) error {
	if d.Game.Over {
		return ErrGameOver
	}
	if card.Card.Kind == game.CardKindMonster {
		return fmt.Errorf("set %s: only spells and traps can be set", card.Card.Name)
	}
	gs := d.Game
	p := gs.Players[card.Owner]
	zone := p.FreeSpellTrapZone()
	if zone < 0 {
		return fmt.Errorf("set %s: %w", card.Card.Name, ErrNoZone)
	}
	if !p.RemoveFromHand(card) {
		return fmt.Errorf("set %s: card is not in hand", card.Card.Name)
	}
	card.Face = game.FaceDown
	card.TurnPlaced = gs.Turn
	p.PlaceSpellTrap(card, zone)
	d.Engine.AssignFieldPresenceID(card)
	d.Emit(log.NewSetEvent(gs.Turn, gs.Phase.String(), card.Owner, card.Card.Name, zone))
	return nil
}
