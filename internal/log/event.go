package log

// EventType enumerates all observable events of a trigger session.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventDraw
	EventSummon
	EventSet
	EventAttackDeclare
	EventBattleDestroy
	EventDestroy
	EventSendToGraveyard
	EventTargeted
	EventLPChange
	EventModifyATK
	EventTriggerQueued
	EventTriggerActivated
	EventTriggerDeclined
	EventTriggerFailed
	EventTriggerAwaitingSelection
	EventWin
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventDraw:
		return "Draw"
	case EventSummon:
		return "Summon"
	case EventSet:
		return "Set"
	case EventAttackDeclare:
		return "AttackDeclare"
	case EventBattleDestroy:
		return "BattleDestroy"
	case EventDestroy:
		return "Destroy"
	case EventSendToGraveyard:
		return "SendToGraveyard"
	case EventTargeted:
		return "Targeted"
	case EventLPChange:
		return "LPChange"
	case EventModifyATK:
		return "ModifyATK"
	case EventTriggerQueued:
		return "TriggerQueued"
	case EventTriggerActivated:
		return "TriggerActivated"
	case EventTriggerDeclined:
		return "TriggerDeclined"
	case EventTriggerFailed:
		return "TriggerFailed"
	case EventTriggerAwaitingSelection:
		return "TriggerAwaitingSelection"
	case EventWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a duel.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Main Phase 1")
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Effect  string    // effect id (trigger events only)
	Details string    // human-readable detail string
}
