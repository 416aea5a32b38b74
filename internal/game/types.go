package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseDraw
	PhaseStandby
	PhaseMain1
	PhaseBattle
	PhaseMain2
	PhaseEnd
)

var phaseNames = map[string]Phase{
	"draw":    PhaseDraw,
	"standby": PhaseStandby,
	"main1":   PhaseMain1,
	"battle":  PhaseBattle,
	"main2":   PhaseMain2,
	"end":     PhaseEnd,
}

func (p Phase) String() string {
	switch p {
	case PhaseDraw:
		return "Draw Phase"
	case PhaseStandby:
		return "Standby Phase"
	case PhaseMain1:
		return "Main Phase 1"
	case PhaseBattle:
		return "Battle Phase"
	case PhaseMain2:
		return "Main Phase 2"
	case PhaseEnd:
		return "End Phase"
	default:
		return "None"
	}
}

// ParsePhase accepts the short names used in card and scenario files.
func ParsePhase(s string) (Phase, error) {
	if p, ok := phaseNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return PhaseNone, fmt.Errorf("unknown phase %q", s)
}

func (p *Phase) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParsePhase(value.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

type Position int

const (
	PositionATK Position = iota
	PositionDEF
)

func (p Position) String() string {
	if p == PositionATK {
		return "ATK"
	}
	return "DEF"
}

func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "atk", "attack":
		*p = PositionATK
	case "def", "defense":
		*p = PositionDEF
	default:
		return fmt.Errorf("unknown position %q", value.Value)
	}
	return nil
}

type FaceStatus int

const (
	FaceUp FaceStatus = iota
	FaceDown
)

func (f FaceStatus) String() string {
	if f == FaceUp {
		return "face-up"
	}
	return "face-down"
}

func (f *FaceStatus) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "up", "face-up", "faceup":
		*f = FaceUp
	case "down", "face-down", "facedown":
		*f = FaceDown
	default:
		return fmt.Errorf("unknown face status %q", value.Value)
	}
	return nil
}

type CardKind int

const (
	CardKindMonster CardKind = iota
	CardKindSpell
	CardKindTrap
)

func (ck CardKind) String() string {
	switch ck {
	case CardKindMonster:
		return "monster"
	case CardKindSpell:
		return "spell"
	case CardKindTrap:
		return "trap"
	default:
		return "unknown"
	}
}

// ParseCardKind parses "monster", "spell" or "trap".
func ParseCardKind(s string) (CardKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monster":
		return CardKindMonster, nil
	case "spell":
		return CardKindSpell, nil
	case "trap":
		return CardKindTrap, nil
	}
	return CardKindMonster, fmt.Errorf("unknown card kind %q", s)
}

func (ck *CardKind) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseCardKind(value.Value)
	if err != nil {
		return err
	}
	*ck = parsed
	return nil
}

// Subtype covers spell and trap subtypes.
type Subtype int

const (
	SubNormal Subtype = iota
	SubQuickPlay
	SubContinuous
	SubEquip
	SubField
	SubCounter
)

func (s Subtype) String() string {
	switch s {
	case SubQuickPlay:
		return "quick-play"
	case SubContinuous:
		return "continuous"
	case SubEquip:
		return "equip"
	case SubField:
		return "field"
	case SubCounter:
		return "counter"
	default:
		return "normal"
	}
}

func (s *Subtype) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "", "normal":
		*s = SubNormal
	case "quick-play", "quickplay":
		*s = SubQuickPlay
	case "continuous":
		*s = SubContinuous
	case "equip":
		*s = SubEquip
	case "field":
		*s = SubField
	case "counter":
		*s = SubCounter
	default:
		return fmt.Errorf("unknown subtype %q", value.Value)
	}
	return nil
}

// --- Zone types ---

type ZoneType int

const (
	ZoneNone ZoneType = iota
	ZoneDeck
	ZoneHand
	ZoneField
	ZoneSpellTrap
	ZoneFieldSpell
	ZoneGraveyard
	ZoneBanished
)

func (z ZoneType) String() string {
	switch z {
	case ZoneDeck:
		return "deck"
	case ZoneHand:
		return "hand"
	case ZoneField:
		return "field"
	case ZoneSpellTrap:
		return "spellTrap"
	case ZoneFieldSpell:
		return "fieldSpell"
	case ZoneGraveyard:
		return "graveyard"
	case ZoneBanished:
		return "banished"
	default:
		return "none"
	}
}

// IsField reports whether the zone is a field slot.
func (z ZoneType) IsField() bool {
	return z == ZoneField || z == ZoneSpellTrap || z == ZoneFieldSpell
}

// ParseZone parses the zone names used in card and scenario files.
func ParseZone(s string) (ZoneType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ZoneNone, nil
	case "deck":
		return ZoneDeck, nil
	case "hand":
		return ZoneHand, nil
	case "field", "monster":
		return ZoneField, nil
	case "spelltrap", "spell_trap":
		return ZoneSpellTrap, nil
	case "fieldspell", "field_spell":
		return ZoneFieldSpell, nil
	case "graveyard", "grave":
		return ZoneGraveyard, nil
	case "banished":
		return ZoneBanished, nil
	}
	return ZoneNone, fmt.Errorf("unknown zone %q", s)
}

func (z *ZoneType) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseZone(value.Value)
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}

// ControlKind says who answers prompts for a player.
type ControlKind int

const (
	ControlHuman ControlKind = iota
	ControlAI
)

func (c ControlKind) String() string {
	if c == ControlAI {
		return "ai"
	}
	return "human"
}

func (c *ControlKind) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "", "human":
		*c = ControlHuman
	case "ai", "bot":
		*c = ControlAI
	default:
		return fmt.Errorf("unknown control kind %q", value.Value)
	}
	return nil
}

// SummonMethod identifies how a monster was summoned.
type SummonMethod string

const (
	SummonNormal    SummonMethod = "normal"
	SummonTribute   SummonMethod = "tribute"
	SummonFlip      SummonMethod = "flip"
	SummonSpecial   SummonMethod = "special"
	SummonAscension SummonMethod = "ascension"
	SummonFusion    SummonMethod = "fusion"
)

// Normalized folds ascension and fusion into special.
func (m SummonMethod) Normalized() SummonMethod {
	switch m {
	case SummonAscension, SummonFusion:
		return SummonSpecial
	}
	return m
}

// IsSpecial reports whether the method counts as a special summon.
func (m SummonMethod) IsSpecial() bool {
	return m.Normalized() == SummonSpecial
}

// DestroyCause records why a card left the field.
type DestroyCause string

const (
	DestroyNone   DestroyCause = ""
	DestroyBattle DestroyCause = "battle"
	DestroyEffect DestroyCause = "effect"
)

// OwnerFilter selects cards relative to a reference player.
type OwnerFilter string

const (
	OwnerAny      OwnerFilter = "any"
	OwnerSelf     OwnerFilter = "self"
	OwnerOpponent OwnerFilter = "opponent"
)

// Matches reports whether owner passes the filter relative to ref.
func (f OwnerFilter) Matches(ref, owner int) bool {
	switch f {
	case OwnerSelf:
		return owner == ref
	case OwnerOpponent:
		return owner != ref
	default:
		return true
	}
}
