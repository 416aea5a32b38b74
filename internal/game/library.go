package game

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LibraryFile represents the top-level YAML structure of a card library.
type LibraryFile struct {
	Cards []*Card `yaml:"cards"`
}

// Library is a validated, name-indexed set of card definitions.
type Library struct {
	byName map[string]*Card
	order  []string
}

// UnmarshalYAML lets Card keep its Go field names while the file uses
// lower-case keys.
func (c *Card) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		ID          int                 `yaml:"id"`
		Name        string              `yaml:"name"`
		Description string              `yaml:"description"`
		Kind        CardKind            `yaml:"kind"`
		Sub         Subtype             `yaml:"sub"`
		Type        string              `yaml:"type"`
		Archetype   string              `yaml:"archetype"`
		Level       int                 `yaml:"level"`
		ATK         int                 `yaml:"atk"`
		DEF         int                 `yaml:"def"`
		Effects     []*EffectDefinition `yaml:"effects"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*c = Card(raw)
	return nil
}

// ParseLibrary parses and validates YAML card definitions.
func ParseLibrary(data []byte) (*Library, error) {
	var lf LibraryFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse library YAML: %w", err)
	}

	lib := &Library{byName: make(map[string]*Card)}
	for i, card := range lf.Cards {
		if card == nil || card.Name == "" {
			return nil, fmt.Errorf("card %d: missing name", i+1)
		}
		key := strings.ToLower(card.Name)
		if _, dup := lib.byName[key]; dup {
			return nil, fmt.Errorf("card %q defined twice", card.Name)
		}
		for j, eff := range card.Effects {
			if eff == nil {
				return nil, fmt.Errorf("card %q: effect %d is empty", card.Name, j+1)
			}
			if eff.ID == "" {
				eff.ID = fmt.Sprintf("%s#%d", card.Name, j+1)
			}
			if err := eff.Validate(); err != nil {
				return nil, fmt.Errorf("card %q: %w", card.Name, err)
			}
		}
		lib.byName[key] = card
		lib.order = append(lib.order, card.Name)
	}
	return lib, nil
}

// LoadLibrary reads a library file from disk.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLibrary(data)
}

// Lookup finds a card by name (case-insensitive).
func (l *Library) Lookup(name string) (*Card, bool) {
	c, ok := l.byName[strings.ToLower(name)]
	return c, ok
}

// Cards returns every card in file order.
func (l *Library) Cards() []*Card {
	out := make([]*Card, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.byName[strings.ToLower(name)])
	}
	return out
}

// Names returns the sorted card names.
func (l *Library) Names() []string {
	names := append([]string(nil), l.order...)
	sort.Strings(names)
	return names
}

// --- Scenarios ---

// ErrUnknownCard is returned when a scenario references a card the library lacks.
var ErrUnknownCard = errors.New("unknown card")

// ScenarioFile describes a board position used to drive the trigger engine.
type ScenarioFile struct {
	Turn       int              `yaml:"turn"`
	Phase      Phase            `yaml:"phase"`
	TurnPlayer int              `yaml:"turnPlayer"`
	Players    []ScenarioPlayer `yaml:"players"`
}

// ScenarioPlayer is one side of a scenario.
type ScenarioPlayer struct {
	Name       string         `yaml:"name"`
	Control    ControlKind    `yaml:"control"`
	LP         int            `yaml:"lp"`
	Deck       []string       `yaml:"deck"`
	Hand       []string       `yaml:"hand"`
	Graveyard  []string       `yaml:"graveyard"`
	Field      []ScenarioCard `yaml:"field"`
	SpellTrap  []ScenarioCard `yaml:"spellTrap"`
	FieldSpell *ScenarioCard  `yaml:"fieldSpell"`
}

// ScenarioCard places a card on the field.
type ScenarioCard struct {
	Card       string     `yaml:"card"`
	Face       FaceStatus `yaml:"face"`
	Position   Position   `yaml:"position"`
	TurnPlaced int        `yaml:"turnPlaced"`
	Negated    bool       `yaml:"negated"`
	// EquipTo is the monster zone (0-based) an equip spell is attached to.
	EquipTo    *int       `yaml:"equipTo"`
}

// ParseScenario parses a scenario YAML document.
func ParseScenario(data []byte) (*ScenarioFile, error) {
	var sf ScenarioFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}
	if len(sf.Players) != 2 {
		return nil, fmt.Errorf("scenario needs 2 players, got %d", len(sf.Players))
	}
	if sf.TurnPlayer < 0 || sf.TurnPlayer > 1 {
		return nil, fmt.Errorf("turnPlayer %d out of range", sf.TurnPlayer)
	}
	for i, p := range sf.Players {
		if len(p.Field) > MonsterZones {
			return nil, fmt.Errorf("player %d: %d monsters exceed %d zones", i+1, len(p.Field), MonsterZones)
		}
		if len(p.SpellTrap) > SpellTrapZones {
			return nil, fmt.Errorf("player %d: %d spell/traps exceed %d zones", i+1, len(p.SpellTrap), SpellTrapZones)
		}
	}
	if sf.Turn == 0 {
		sf.Turn = 1
	}
	if sf.Phase == PhaseNone {
		sf.Phase = PhaseMain1
	}
	return &sf, nil
}

// LoadScenario reads a scenario file from disk.
func LoadScenario(path string) (*ScenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// Build creates a GameState for the scenario. Field cards are placed but
// not given a field presence; that is left to the caller.
func (sf *ScenarioFile) Build(lib *Library) (*GameState, error) {
	gs := NewGameState()
	gs.Turn = sf.Turn
	gs.Phase = sf.Phase
	gs.TurnPlayer = sf.TurnPlayer

	for i, sp := range sf.Players {
		p := gs.Players[i]
		if sp.Name != "" {
			p.Name = sp.Name
		}
		p.Control = sp.Control
		if sp.LP != 0 {
			p.LP = sp.LP
		}

		mk := func(name string) (*CardInstance, error) {
			card, ok := lib.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("player %d: %w %q", i+1, ErrUnknownCard, name)
			}
			return gs.CreateCardInstance(card, i), nil
		}

		for _, name := range sp.Deck {
			ci, err := mk(name)
			if err != nil {
				return nil, err
			}
			p.Deck = append(p.Deck, ci)
		}
		for _, name := range sp.Hand {
			ci, err := mk(name)
			if err != nil {
				return nil, err
			}
			p.AddToHand(ci)
		}
		for _, name := range sp.Graveyard {
			ci, err := mk(name)
			if err != nil {
				return nil, err
			}
			p.SendToGraveyard(ci)
		}
		for zone, sc := range sp.Field {
			ci, err := mk(sc.Card)
			if err != nil {
				return nil, err
			}
			sc.apply(ci)
			p.PlaceMonster(ci, zone)
		}
		for zone, sc := range sp.SpellTrap {
			ci, err := mk(sc.Card)
			if err != nil {
				return nil, err
			}
			sc.apply(ci)
			p.PlaceSpellTrap(ci, zone)
			if sc.EquipTo != nil {
				idx := *sc.EquipTo
				if idx < 0 || idx >= MonsterZones || p.Field[idx] == nil {
					return nil, fmt.Errorf("player %d: %s equips empty monster zone %d", i+1, sc.Card, idx)
				}
				ci.EquippedTo = p.Field[idx]
				p.Field[idx].Equips = append(p.Field[idx].Equips, ci)
			}
		}
		if sp.FieldSpell != nil {
			ci, err := mk(sp.FieldSpell.Card)
			if err != nil {
				return nil, err
			}
			sp.FieldSpell.apply(ci)
			p.PlaceFieldSpell(ci)
		}
	}
	return gs, nil
}

func (sc ScenarioCard) apply(ci *CardInstance) {
	ci.Face = sc.Face
	ci.Position = sc.Position
	ci.TurnPlaced = sc.TurnPlaced
	ci.Negated = sc.Negated
}
