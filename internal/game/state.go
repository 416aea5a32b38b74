package game

import (
	"fmt"
)

const (
	StartingLP     = 8000
	MonsterZones   = 5
	SpellTrapZones = 5
)

// --- Card definition (static, from the card library) ---

type Card struct {
	ID          int    // numeric catalogue id, 0 for tokens and test cards
	Name        string
	Description string
	Kind        CardKind
	Sub         Subtype
	Type        string // monster type, e.g. "Dragon"
	Archetype   string
	Level       int
	ATK         int
	DEF         int
	Effects     []*EffectDefinition
}

func (c *Card) String() string {
	return c.Name
}

// --- Stat Modifiers ---

// StatModifier represents an ATK/DEF modification from an effect.
type StatModifier struct {
	Source     int // card ID of the source
	ATKMod     int
	DEFMod     int
	Continuous bool // recalculated by the passive buff pass
}

// CardState is the generic counter bag carried across zones.
type CardState struct {
	SpecialSummonTypeCount map[string]int
}

// --- CardInstance (runtime card in any zone) ---

type CardInstance struct {
	Card       *Card
	ID         int // unique instance ID within a duel
	Owner      int // player index (0 or 1) who owns this card
	Controller int // player index currently controlling this card

	Face       FaceStatus
	Position   Position
	Zone       ZoneType
	ZoneIndex  int
	TurnPlaced int

	// Effects is the instance's own copy of the card's definitions.
	Effects []*EffectDefinition
	Negated bool

	// FieldPresenceID is set iff the card occupies a field slot.
	FieldPresenceID    string
	FieldPresenceState map[string]int
	State              CardState

	Modifiers []StatModifier

	EquippedTo *CardInstance
	Equips     []*CardInstance
}

func (ci *CardInstance) String() string {
	if ci == nil {
		return "(empty)"
	}
	return ci.Card.Name
}

// DisplayString returns a human-readable description for the event log.
func (ci *CardInstance) DisplayString() string {
	if ci == nil {
		return "(empty)"
	}
	if ci.Card.Kind == CardKindMonster {
		if ci.Face == FaceDown {
			return fmt.Sprintf("%s (%s %s)", ci.Card.Name, ci.Face, ci.Position)
		}
		return fmt.Sprintf("%s (ATK %d/DEF %d)", ci.Card.Name, ci.CurrentATK(), ci.CurrentDEF())
	}
	return ci.Card.Name
}

// IsFacedown reports whether the card is face-down.
func (ci *CardInstance) IsFacedown() bool {
	return ci.Face == FaceDown
}

// CurrentATK returns the effective ATK (base + all modifiers).
func (ci *CardInstance) CurrentATK() int {
	base := ci.Card.ATK
	for _, mod := range ci.Modifiers {
		base += mod.ATKMod
	}
	if base < 0 {
		base = 0
	}
	return base
}

// CurrentDEF returns the effective DEF (base + all modifiers).
func (ci *CardInstance) CurrentDEF() int {
	base := ci.Card.DEF
	for _, mod := range ci.Modifiers {
		base += mod.DEFMod
	}
	if base < 0 {
		base = 0
	}
	return base
}

// AddModifier adds a stat modifier to this card.
func (ci *CardInstance) AddModifier(mod StatModifier) {
	ci.Modifiers = append(ci.Modifiers, mod)
}

// StripContinuousModifiers drops every modifier owned by the passive pass.
func (ci *CardInstance) StripContinuousModifiers() {
	filtered := ci.Modifiers[:0]
	for _, mod := range ci.Modifiers {
		if !mod.Continuous {
			filtered = append(filtered, mod)
		}
	}
	ci.Modifiers = filtered
}

// PassiveOf returns the first passive of the given kind, or nil.
func (ci *CardInstance) PassiveOf(kind PassiveKind) *PassiveSpec {
	for _, eff := range ci.Effects {
		if eff.Timing == TimingPassive && eff.Passive != nil && eff.Passive.Kind == kind {
			return eff.Passive
		}
	}
	return nil
}

// Player represents one player's entire state.
type Player struct {
	Index   int
	Name    string
	Control ControlKind
	LP      int

	Deck      []*CardInstance // top of deck is last element
	Hand      []*CardInstance
	Graveyard []*CardInstance
	Banished  []*CardInstance

	Field      [MonsterZones]*CardInstance
	SpellTrap  [SpellTrapZones]*CardInstance
	FieldSpell *CardInstance

	// OncePerTurnUsage maps a usage key to the turn it was last used.
	// Owned by the host game.
	OncePerTurnUsage map[string]int
	// OncePerDuelUsageByName is owned by the trigger engine.
	OncePerDuelUsageByName map[string]bool
}

func newPlayer(index int) *Player {
	return &Player{
		Index:                  index,
		Name:                   fmt.Sprintf("P%d", index+1),
		LP:                     StartingLP,
		OncePerTurnUsage:       make(map[string]int),
		OncePerDuelUsageByName: make(map[string]bool),
	}
}

// IsHuman reports whether prompts for this player go to a person.
func (p *Player) IsHuman() bool {
	return p.Control == ControlHuman
}

// DrawCard removes the top card from the deck and adds it to the hand.
func (p *Player) DrawCard() *CardInstance {
	if len(p.Deck) == 0 {
		return nil
	}
	card := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	card.Zone = ZoneHand
	card.ZoneIndex = len(p.Hand)
	p.Hand = append(p.Hand, card)
	return card
}

// RemoveFromHand removes a card from the hand by instance ID.
func (p *Player) RemoveFromHand(card *CardInstance) bool {
	for i, c := range p.Hand {
		if c.ID == card.ID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveFromGraveyard removes a card from the graveyard by instance ID.
func (p *Player) RemoveFromGraveyard(card *CardInstance) bool {
	for i, c := range p.Graveyard {
		if c.ID == card.ID {
			p.Graveyard = append(p.Graveyard[:i], p.Graveyard[i+1:]...)
			return true
		}
	}
	return false
}

// AddToHand puts a card in the hand.
func (p *Player) AddToHand(card *CardInstance) {
	card.Zone = ZoneHand
	card.ZoneIndex = len(p.Hand)
	card.Face = FaceDown
	p.Hand = append(p.Hand, card)
}

// SendToGraveyard moves a card to the graveyard.
func (p *Player) SendToGraveyard(card *CardInstance) {
	card.Zone = ZoneGraveyard
	card.ZoneIndex = len(p.Graveyard)
	card.Face = FaceUp
	card.EquippedTo = nil
	card.Equips = nil
	card.Modifiers = nil
	p.Graveyard = append(p.Graveyard, card)
}

// FreeMonsterZone returns the index of the first empty monster zone, or -1.
func (p *Player) FreeMonsterZone() int {
	for i, z := range p.Field {
		if z == nil {
			return i
		}
	}
	return -1
}

// FreeSpellTrapZone returns the index of the first empty spell/trap zone, or -1.
func (p *Player) FreeSpellTrapZone() int {
	for i, z := range p.SpellTrap {
		if z == nil {
			return i
		}
	}
	return -1
}

// PlaceMonster places a card in the specified monster zone.
func (p *Player) PlaceMonster(card *CardInstance, zone int) {
	p.Field[zone] = card
	card.Zone = ZoneField
	card.ZoneIndex = zone
	card.Controller = p.Index
}

// PlaceSpellTrap places a card in the specified spell/trap zone.
func (p *Player) PlaceSpellTrap(card *CardInstance, zone int) {
	p.SpellTrap[zone] = card
	card.Zone = ZoneSpellTrap
	card.ZoneIndex = zone
	card.Controller = p.Index
}

// PlaceFieldSpell puts a card in the field spell zone.
func (p *Player) PlaceFieldSpell(card *CardInstance) {
	p.FieldSpell = card
	card.Zone = ZoneFieldSpell
	card.ZoneIndex = 0
	card.Controller = p.Index
}

// RemoveFromField clears whichever field slot holds the card.
// Returns the zone it was removed from, or ZoneNone.
func (p *Player) RemoveFromField(card *CardInstance) ZoneType {
	for i, z := range p.Field {
		if z != nil && z.ID == card.ID {
			p.Field[i] = nil
			return ZoneField
		}
	}
	for i, z := range p.SpellTrap {
		if z != nil && z.ID == card.ID {
			p.SpellTrap[i] = nil
			return ZoneSpellTrap
		}
	}
	if p.FieldSpell != nil && p.FieldSpell.ID == card.ID {
		p.FieldSpell = nil
		return ZoneFieldSpell
	}
	return ZoneNone
}

// Monsters returns all non-nil monsters on the field.
func (p *Player) Monsters() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.Field {
		if z != nil {
			result = append(result, z)
		}
	}
	return result
}

// FaceUpMonsters returns all face-up monsters on the field.
func (p *Player) FaceUpMonsters() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.Field {
		if z != nil && z.Face == FaceUp {
			result = append(result, z)
		}
	}
	return result
}

// SpellTrapCards returns all non-nil cards in the spell/trap zone.
func (p *Player) SpellTrapCards() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.SpellTrap {
		if z != nil {
			result = append(result, z)
		}
	}
	return result
}

// Traps returns the trap cards (face-up or face-down) in the spell/trap zone.
func (p *Player) Traps() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.SpellTrap {
		if z != nil && z.Card.Kind == CardKindTrap {
			result = append(result, z)
		}
	}
	return result
}

// FaceDownTraps returns face-down set traps.
func (p *Player) FaceDownTraps() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.SpellTrap {
		if z != nil && z.Card.Kind == CardKindTrap && z.Face == FaceDown {
			result = append(result, z)
		}
	}
	return result
}

// EquipSpells returns face-up equip spells in the spell/trap zone.
func (p *Player) EquipSpells() []*CardInstance {
	var result []*CardInstance
	for _, z := range p.SpellTrap {
		if z != nil && z.Face == FaceUp && z.Card.Kind == CardKindSpell && z.Card.Sub == SubEquip {
			result = append(result, z)
		}
	}
	return result
}

// ZoneOf returns the zone currently holding card on this player's side.
func (p *Player) ZoneOf(card *CardInstance) ZoneType {
	for _, z := range p.Field {
		if z != nil && z.ID == card.ID {
			return ZoneField
		}
	}
	for _, z := range p.SpellTrap {
		if z != nil && z.ID == card.ID {
			return ZoneSpellTrap
		}
	}
	if p.FieldSpell != nil && p.FieldSpell.ID == card.ID {
		return ZoneFieldSpell
	}
	for _, c := range p.Hand {
		if c.ID == card.ID {
			return ZoneHand
		}
	}
	for _, c := range p.Graveyard {
		if c.ID == card.ID {
			return ZoneGraveyard
		}
	}
	for _, c := range p.Banished {
		if c.ID == card.ID {
			return ZoneBanished
		}
	}
	for _, c := range p.Deck {
		if c.ID == card.ID {
			return ZoneDeck
		}
	}
	return ZoneNone
}

// --- GameState ---

// GameState holds the board shared by the host and the trigger engine.
type GameState struct {
	Players    [2]*Player
	Turn       int // 1-based turn counter
	TurnPlayer int
	Phase      Phase

	nextID int

	Winner int // 0, 1, or -1 (no winner yet)
	Over   bool
	Result string
}

// NewGameState creates a fresh duel state.
func NewGameState() *GameState {
	return &GameState{
		Players: [2]*Player{newPlayer(0), newPlayer(1)},
		Turn:    1,
		Phase:   PhaseMain1,
		Winner:  -1,
	}
}

// NextID generates a unique card instance ID.
func (gs *GameState) NextID() int {
	gs.nextID++
	return gs.nextID
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// CurrentPlayer returns the Player struct for the turn player.
func (gs *GameState) CurrentPlayer() *Player {
	return gs.Players[gs.TurnPlayer]
}

// CheckWinCondition checks if either player's LP has hit 0.
// Returns true if the game is over.
func (gs *GameState) CheckWinCondition() bool {
	if gs.Over {
		return true
	}
	p0Dead := gs.Players[0].LP <= 0
	p1Dead := gs.Players[1].LP <= 0

	switch {
	case p0Dead && p1Dead:
		gs.Over = true
		gs.Winner = -1
		gs.Result = "Draw — both players' LP reached 0"
	case p0Dead:
		gs.Over = true
		gs.Winner = 1
		gs.Result = "P2 wins — P1's LP reached 0"
	case p1Dead:
		gs.Over = true
		gs.Winner = 0
		gs.Result = "P1 wins — P2's LP reached 0"
	}
	return gs.Over
}

// CreateCardInstance creates a CardInstance from a Card definition, assigned to a player.
// Effects are copied so per-instance edits never leak into the library.
func (gs *GameState) CreateCardInstance(card *Card, owner int) *CardInstance {
	effects := make([]*EffectDefinition, 0, len(card.Effects))
	for _, e := range card.Effects {
		effects = append(effects, e.Clone())
	}
	return &CardInstance{
		Card:       card,
		ID:         gs.NextID(),
		Owner:      owner,
		Controller: owner,
		Face:       FaceDown,
		Zone:       ZoneDeck,
		Effects:    effects,
	}
}

// FindInstance looks up a card instance anywhere on the board.
func (gs *GameState) FindInstance(id int) *CardInstance {
	for _, p := range gs.Players {
		for _, list := range [][]*CardInstance{p.Deck, p.Hand, p.Graveyard, p.Banished, p.Monsters(), p.SpellTrapCards()} {
			for _, c := range list {
				if c.ID == id {
					return c
				}
			}
		}
		if p.FieldSpell != nil && p.FieldSpell.ID == id {
			return p.FieldSpell
		}
	}
	return nil
}
