package net

import "github.com/peterkuimelis/tcgx-triggers/internal/host"

// Message types for the JSON line protocol.

const (
	MsgPromptYesNo = "prompt_yes_no"
	MsgChooseCards = "choose_cards"
	MsgCollection  = "collection"
	MsgNotify      = "notify"
	MsgResult      = "result"

	MsgEmit  = "emit"
	MsgBoard = "board"
	MsgYesNo = "yes_no"
	MsgCards = "cards"
)

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "prompt_yes_no" and "choose_cards"
	Prompt     string     `json:"prompt,omitempty"`
	Candidates []CardView `json:"candidates,omitempty"`
	Min        int        `json:"min,omitempty"`
	Max        int        `json:"max,omitempty"`

	// For "collection"
	Collection *CollectionView `json:"collection,omitempty"`

	// For "result"
	State  *StateView `json:"state,omitempty"`
	Error  string     `json:"error,omitempty"`
	Over   bool       `json:"over,omitempty"`
	Winner int        `json:"winner,omitempty"`
	Result string     `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Effect  string `json:"effect,omitempty"`
	Details string `json:"details"`
}

// CollectionView reports one resolved batch of triggers.
type CollectionView struct {
	Event     string   `json:"event"`
	OrderRule string   `json:"order_rule"`
	Entries   []string `json:"entries"`
	Outcomes  []string `json:"outcomes"`
}

// CardView describes a card candidate for selection.
type CardView struct {
	Index int    `json:"index"`
	ID    int    `json:"id"`
	Name  string `json:"name"`
	ATK   int    `json:"atk,omitempty"`
	DEF   int    `json:"def,omitempty"`
}

// StateView is the board from one player's perspective.
type StateView struct {
	You        PlayerView `json:"you"`
	Opponent   PlayerView `json:"opponent"`
	Turn       int        `json:"turn"`
	Phase      string     `json:"phase"`
	IsYourTurn bool       `json:"is_your_turn"`
}

// PlayerView shows one side of the board.
type PlayerView struct {
	LP         int         `json:"lp"`
	HandCount  int         `json:"hand_count"`
	Hand       []ZoneView  `json:"hand,omitempty"` // only for "you"
	Monsters   [5]ZoneView `json:"monsters"`
	SpellTrap  [5]ZoneView `json:"spell_trap"`
	FieldSpell *ZoneView   `json:"field_spell,omitempty"`
	Graveyard  []string    `json:"graveyard,omitempty"`
	DeckCount  int         `json:"deck_count"`
}

// ZoneView describes a single card slot.
type ZoneView struct {
	Empty    bool   `json:"empty,omitempty"`
	FaceDown bool   `json:"face_down,omitempty"`
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	ATK      int    `json:"atk,omitempty"`
	DEF      int    `json:"def,omitempty"`
	Position string `json:"position,omitempty"` // "ATK" or "DEF"
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "emit"
	Move *host.Move `json:"move,omitempty"`

	// For "cards"
	Indices []int `json:"indices,omitempty"`

	// For "yes_no"
	Answer bool `json:"answer,omitempty"`
}
