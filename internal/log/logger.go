package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "P1" or "P2" for display.
func playerName(p int) string {
	return fmt.Sprintf("P%d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	for len(phase) < 16 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewDrawEvent(turn int, phase string, player int, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDraw,
		Card:    cardName,
		Details: fmt.Sprintf("%s draws %s", playerName(player), cardName),
	}
}

func NewSummonEvent(turn int, phase string, player int, cardName, method, from string, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSummon,
		Card:    cardName,
		Details: fmt.Sprintf("%s %s summons %s from %s to Monster Zone %d", playerName(player), method, cardName, from, zone+1),
	}
}

func NewSetEvent(turn int, phase string, player int, cardName string, zone int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSet,
		Card:    cardName,
		Details: fmt.Sprintf("%s sets a card in Spell/Trap Zone %d", playerName(player), zone+1),
	}
}

func NewAttackDeclareEvent(turn int, phase string, player int, attacker, target string) GameEvent {
	details := fmt.Sprintf("%s: %s attacks %s", playerName(player), attacker, target)
	if target == "" {
		details = fmt.Sprintf("%s: %s attacks directly", playerName(player), attacker)
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventAttackDeclare,
		Card:    attacker,
		Details: details,
	}
}

func NewBattleDestroyEvent(turn int, phase string, player int, destroyed, by string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventBattleDestroy,
		Card:    destroyed,
		Details: fmt.Sprintf("%s's %s is destroyed by battle with %s", playerName(player), destroyed, by),
	}
}

func NewDestroyEvent(turn int, phase string, player int, cardName, cause string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventDestroy,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s is destroyed (%s)", playerName(player), cardName, cause),
	}
}

func NewSendToGraveyardEvent(turn int, phase string, player int, cardName, from string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventSendToGraveyard,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s is sent to the Graveyard from %s", playerName(player), cardName, from),
	}
}

func NewTargetedEvent(turn int, phase string, player int, cardName, by string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTargeted,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s is targeted by %s", playerName(player), cardName, by),
	}
}

func NewLPChangeEvent(turn int, phase string, player int, delta, newLP int, reason string) GameEvent {
	sign := "+"
	if delta < 0 {
		sign = ""
	}
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventLPChange,
		Details: fmt.Sprintf("%s LP %s%d → %d (%s)", playerName(player), sign, delta, newLP, reason),
	}
}

func NewModifyATKEvent(turn int, phase string, player int, cardName string, delta, newATK int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventModifyATK,
		Card:    cardName,
		Details: fmt.Sprintf("%s's %s ATK %+d → %d", playerName(player), cardName, delta, newATK),
	}
}

func NewTriggerQueuedEvent(turn int, phase string, player int, cardName, effectID, event string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTriggerQueued,
		Card:    cardName,
		Effect:  effectID,
		Details: fmt.Sprintf("%s: %s can activate (%s)", playerName(player), cardName, event),
	}
}

func NewTriggerActivatedEvent(turn int, phase string, player int, cardName, effectID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTriggerActivated,
		Card:    cardName,
		Effect:  effectID,
		Details: fmt.Sprintf("%s activates %s", playerName(player), cardName),
	}
}

func NewTriggerDeclinedEvent(turn int, phase string, player int, cardName, effectID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTriggerDeclined,
		Card:    cardName,
		Effect:  effectID,
		Details: fmt.Sprintf("%s declines to activate %s", playerName(player), cardName),
	}
}

func NewTriggerFailedEvent(turn int, phase string, player int, cardName, effectID, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTriggerFailed,
		Card:    cardName,
		Effect:  effectID,
		Details: fmt.Sprintf("%s: %s fails to resolve (%s)", playerName(player), cardName, reason),
	}
}

func NewTriggerAwaitingSelectionEvent(turn int, phase string, player int, cardName, effectID string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventTriggerAwaitingSelection,
		Card:    cardName,
		Effect:  effectID,
		Details: fmt.Sprintf("%s: %s is waiting for target selection", playerName(player), cardName),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins (%s)", playerName(winner), reason),
	}
}
