package game

import (
	"errors"
	"fmt"
)

// EventKind names a game event that triggered effects can react to.
type EventKind string

const (
	EventAfterSummon    EventKind = "after_summon"
	EventBattleDestroy  EventKind = "battle_destroy"
	EventCardToGrave    EventKind = "card_to_grave"
	EventAttackDeclared EventKind = "attack_declared"
	EventEffectTargeted EventKind = "effect_targeted"
	EventStandbyPhase   EventKind = "standby_phase"
)

// EventKinds lists every event the trigger engine routes.
var EventKinds = []EventKind{
	EventAfterSummon,
	EventBattleDestroy,
	EventCardToGrave,
	EventAttackDeclared,
	EventEffectTargeted,
	EventStandbyPhase,
}

// Timing categorizes when an effect applies.
type Timing string

const (
	TimingOnEvent    Timing = "on_event"
	TimingPassive    Timing = "passive"
	TimingIgnition   Timing = "ignition"
	TimingOnActivate Timing = "on_activate"
)

func (t Timing) valid() bool {
	switch t {
	case TimingOnEvent, TimingPassive, TimingIgnition, TimingOnActivate:
		return true
	}
	return false
}

// ConditionKind is the closed set of declarative conditions.
type ConditionKind string

const (
	CondDestroyedByBattle         ConditionKind = "destroyed_by_battle"
	CondDestroyedByEffect         ConditionKind = "destroyed_by_effect"
	CondDestroyedByBattleOrEffect ConditionKind = "destroyed_by_battle_or_effect"
	CondSelfInHand                ConditionKind = "self_in_hand"
	CondLPAtMost                  ConditionKind = "lp_at_most"
	CondLPAtLeast                 ConditionKind = "lp_at_least"
	CondControlsCard              ConditionKind = "controls_card"
	CondGraveyardCountAtLeast     ConditionKind = "graveyard_count_at_least"
	CondOpponentControlsMore      ConditionKind = "opponent_controls_more_monsters"
	CondSummonedCardType          ConditionKind = "summoned_card_type"
)

func (k ConditionKind) valid() bool {
	switch k {
	case CondDestroyedByBattle, CondDestroyedByEffect, CondDestroyedByBattleOrEffect,
		CondSelfInHand, CondLPAtMost, CondLPAtLeast, CondControlsCard,
		CondGraveyardCountAtLeast, CondOpponentControlsMore, CondSummonedCardType:
		return true
	}
	return false
}

// IsDestroyCause reports whether the kind gates on how a card was destroyed.
func (k ConditionKind) IsDestroyCause() bool {
	switch k {
	case CondDestroyedByBattle, CondDestroyedByEffect, CondDestroyedByBattleOrEffect:
		return true
	}
	return false
}

// MatchesCause reports whether a destroy-cause condition accepts cause.
// Kinds that are not destroy causes always match.
func (k ConditionKind) MatchesCause(cause DestroyCause) bool {
	switch k {
	case CondDestroyedByBattle:
		return cause == DestroyBattle
	case CondDestroyedByEffect:
		return cause == DestroyEffect
	case CondDestroyedByBattleOrEffect:
		return cause == DestroyBattle || cause == DestroyEffect
	}
	return true
}

// Requirement is an extra source requirement declared on a condition.
type Requirement string

const (
	RequiresNone       Requirement = ""
	RequiresSelfInHand Requirement = "self_in_hand"
)

// Condition is a declarative eligibility check evaluated by the effect engine.
type Condition struct {
	Kind     ConditionKind `yaml:"type"`
	Requires Requirement   `yaml:"requires"`
	Value    int           `yaml:"value"`
	Name     string        `yaml:"name"`
	Zone     ZoneType      `yaml:"zone"`
}

func (c *Condition) validate() error {
	if c.Kind != "" && !c.Kind.valid() {
		return fmt.Errorf("unknown condition type %q", c.Kind)
	}
	switch c.Requires {
	case RequiresNone, RequiresSelfInHand:
	default:
		return fmt.Errorf("unknown condition requirement %q", c.Requires)
	}
	if c.Kind == "" && c.Requires == RequiresNone {
		return errors.New("condition needs a type or a requirement")
	}
	return nil
}

// TargetSpec describes one group of targets an effect selects.
type TargetSpec struct {
	ID          string      `yaml:"id"`
	Owner       OwnerFilter `yaml:"owner"`
	Zone        ZoneType    `yaml:"zone"`
	Kind        string      `yaml:"kind"`
	Type        string      `yaml:"type"`
	Archetype   string      `yaml:"archetype"`
	FaceUp      bool        `yaml:"faceUp"`
	ExcludeSelf bool        `yaml:"excludeSelf"`
	Min         int         `yaml:"min"`
	Max         int         `yaml:"max"`
}

// ActionKind is the closed set of actions the sandbox effect engine applies.
type ActionKind string

const (
	ActionDraw                      ActionKind = "draw"
	ActionDestroy                   ActionKind = "destroy"
	ActionModifyATK                 ActionKind = "modify_atk"
	ActionGainLP                    ActionKind = "gain_lp"
	ActionInflictDamage             ActionKind = "inflict_damage"
	ActionSpecialSummonSelf         ActionKind = "special_summon_self"
	ActionConditionalSummonFromHand ActionKind = "conditional_summon_from_hand"
	ActionSendToGraveyard           ActionKind = "send_to_graveyard"
)

func (k ActionKind) valid() bool {
	switch k {
	case ActionDraw, ActionDestroy, ActionModifyATK, ActionGainLP, ActionInflictDamage,
		ActionSpecialSummonSelf, ActionConditionalSummonFromHand, ActionSendToGraveyard:
		return true
	}
	return false
}

// ActionSpec is one step of an effect's resolution.
type ActionSpec struct {
	Kind   ActionKind  `yaml:"type"`
	Target string      `yaml:"target"` // TargetSpec.ID, empty for untargeted actions
	Amount int         `yaml:"amount"`
	Player OwnerFilter `yaml:"player"`
}

// PassiveKind is the closed set of counter-driven passives.
type PassiveKind string

const (
	PassiveTypeSpecialSummonedCountBuff     PassiveKind = "type_special_summoned_count_buff"
	PassiveFieldPresenceTypeSummonCountBuff PassiveKind = "field_presence_type_summon_count_buff"
)

// PassiveSpec configures a passive buff that reads summon counters.
type PassiveSpec struct {
	Kind           PassiveKind    `yaml:"type"`
	TrackedType    string         `yaml:"trackedType"`
	SummonMethods  []SummonMethod `yaml:"summonMethods"`
	OwnerFilter    OwnerFilter    `yaml:"ownerFilter"`
	AmountPerCount int            `yaml:"amountPerCount"`
}

// CountedMethods returns the summon methods the passive counts,
// defaulting to special summons.
func (p *PassiveSpec) CountedMethods() []SummonMethod {
	if len(p.SummonMethods) == 0 {
		return []SummonMethod{SummonSpecial}
	}
	return p.SummonMethods
}

// MatchesType reports whether a summoned monster type is tracked.
func (p *PassiveSpec) MatchesType(t string) bool {
	return p.TrackedType == "" || p.TrackedType == "any" || p.TrackedType == t
}

// EffectDefinition is the static, declarative description of a card effect.
type EffectDefinition struct {
	ID     string    `yaml:"id"`
	Timing Timing    `yaml:"timing"`
	Event  EventKind `yaml:"event"`
	Speed  int       `yaml:"speed"`

	// Legality predicates
	RequireFaceup              bool           `yaml:"requireFaceup"`
	RequirePhase               []Phase        `yaml:"requirePhase"`
	SummonMethod               SummonMethod   `yaml:"summonMethod"`
	SummonMethods              []SummonMethod `yaml:"summonMethods"`
	SummonFrom                 ZoneType       `yaml:"summonFrom"`
	RequireSummonedFrom        ZoneType       `yaml:"requireSummonedFrom"`
	RequireSelfAsSummoned      bool           `yaml:"requireSelfAsSummoned"`
	RequireSelfAsAttacker      bool           `yaml:"requireSelfAsAttacker"`
	RequireSelfAsDefender      bool           `yaml:"requireSelfAsDefender"`
	RequireSelfAsDestroyed     bool           `yaml:"requireSelfAsDestroyed"`
	RequireOpponentSummon      bool           `yaml:"requireOpponentSummon"`
	RequireOpponentAttack      bool           `yaml:"requireOpponentAttack"`
	RequireDefenderIsSelf      bool           `yaml:"requireDefenderIsSelf"`
	RequireDefenderType        string         `yaml:"requireDefenderType"`
	RequireDefenderPosition    *Position      `yaml:"requireDefenderPosition"`
	RequireDestroyedIsOpponent bool           `yaml:"requireDestroyedIsOpponent"`
	RequireOwnMonsterArchetype string         `yaml:"requireOwnMonsterArchetype"`
	RequireEquippedAsAttacker  bool           `yaml:"requireEquippedAsAttacker"`
	RequireTargetType          string         `yaml:"requireTargetType"`
	FromZone                   ZoneType       `yaml:"fromZone"`
	Condition                  *Condition     `yaml:"condition"`

	// Usage caps
	OncePerTurn     bool   `yaml:"oncePerTurn"`
	OncePerTurnName string `yaml:"oncePerTurnName"`
	OncePerDuel     bool   `yaml:"oncePerDuel"`
	OncePerDuelName string `yaml:"oncePerDuelName"`

	// Prompting
	PromptUser             *bool  `yaml:"promptUser"`
	PromptMessage          string `yaml:"promptMessage"`
	CustomPromptMethod     string `yaml:"customPromptMethod"`
	PromptOnAttackDeclared *bool  `yaml:"promptOnAttackDeclared"`
	PromptOnTargeted       *bool  `yaml:"promptOnTargeted"`

	Targets []TargetSpec `yaml:"targets"`
	Actions []ActionSpec `yaml:"actions"`
	Passive *PassiveSpec `yaml:"passive"`
}

// AcceptedSummonMethods merges summonMethod and summonMethods.
func (e *EffectDefinition) AcceptedSummonMethods() []SummonMethod {
	if e.SummonMethod == "" {
		return e.SummonMethods
	}
	return append([]SummonMethod{e.SummonMethod}, e.SummonMethods...)
}

// RequiredSummonZone merges summonFrom and requireSummonedFrom.
func (e *EffectDefinition) RequiredSummonZone() ZoneType {
	if e.SummonFrom != ZoneNone {
		return e.SummonFrom
	}
	return e.RequireSummonedFrom
}

// HasAction reports whether any action has the given kind.
func (e *EffectDefinition) HasAction(kind ActionKind) bool {
	for _, a := range e.Actions {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// Clone returns a copy of the definition safe to attach to a card instance.
func (e *EffectDefinition) Clone() *EffectDefinition {
	c := *e
	c.RequirePhase = append([]Phase(nil), e.RequirePhase...)
	c.SummonMethods = append([]SummonMethod(nil), e.SummonMethods...)
	c.Targets = append([]TargetSpec(nil), e.Targets...)
	c.Actions = append([]ActionSpec(nil), e.Actions...)
	if e.Condition != nil {
		cond := *e.Condition
		c.Condition = &cond
	}
	if e.Passive != nil {
		p := *e.Passive
		p.SummonMethods = append([]SummonMethod(nil), e.Passive.SummonMethods...)
		c.Passive = &p
	}
	return &c
}

// Validate checks the closed enums of a definition.
func (e *EffectDefinition) Validate() error {
	if !e.Timing.valid() {
		return fmt.Errorf("effect %q: unknown timing %q", e.ID, e.Timing)
	}
	if e.Timing == TimingOnEvent {
		known := false
		for _, k := range EventKinds {
			if e.Event == k {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("effect %q: unknown event %q", e.ID, e.Event)
		}
	}
	if e.Condition != nil {
		if err := e.Condition.validate(); err != nil {
			return fmt.Errorf("effect %q: %w", e.ID, err)
		}
		// destroy causes are only known to battle_destroy and card_to_grave
		if e.Condition.Kind.IsDestroyCause() && (e.Timing != TimingOnEvent || (e.Event != EventBattleDestroy && e.Event != EventCardToGrave)) {
			return fmt.Errorf("effect %q: condition %s needs a battle_destroy or card_to_grave event", e.ID, e.Condition.Kind)
		}
	}
	seen := make(map[string]bool)
	for _, t := range e.Targets {
		if t.ID == "" {
			return fmt.Errorf("effect %q: target without id", e.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("effect %q: duplicate target id %q", e.ID, t.ID)
		}
		seen[t.ID] = true
		if t.Max != 0 && t.Max < t.Min {
			return fmt.Errorf("effect %q: target %q has max < min", e.ID, t.ID)
		}
	}
	for _, a := range e.Actions {
		if !a.Kind.valid() {
			return fmt.Errorf("effect %q: unknown action type %q", e.ID, a.Kind)
		}
		if a.Target != "" && !seen[a.Target] {
			return fmt.Errorf("effect %q: action %q references unknown target %q", e.ID, a.Kind, a.Target)
		}
	}
	if e.Passive != nil {
		switch e.Passive.Kind {
		case PassiveTypeSpecialSummonedCountBuff, PassiveFieldPresenceTypeSummonCountBuff:
		default:
			return fmt.Errorf("effect %q: unknown passive type %q", e.ID, e.Passive.Kind)
		}
	}
	return nil
}
