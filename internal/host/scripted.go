package host

import (
	"context"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
	"github.com/peterkuimelis/tcgx-triggers/internal/log"
)

// ScriptedController answers from a predefined script. Used by tests and
// by the CLI to drive a duel non-interactively.
type ScriptedController struct {
	// For ChooseYesNo prompts; DefaultYes answers once the script runs out.
	yesNoChoices []bool
	yesNoPos     int
	DefaultYes   bool

	// For ChooseCards prompts, chosen by card name
	cardChoices [][]string
	cardPos     int

	Prompts []string
	Events  []log.GameEvent
}

func NewScriptedController() *ScriptedController {
	return &ScriptedController{}
}

func (sc *ScriptedController) AddYesNo(answers ...bool) *ScriptedController {
	sc.yesNoChoices = append(sc.yesNoChoices, answers...)
	return sc
}

func (sc *ScriptedController) AddCardChoice(names ...string) *ScriptedController {
	sc.cardChoices = append(sc.cardChoices, names)
	return sc
}

func (sc *ScriptedController) ChooseYesNo(_ context.Context, _ *game.GameState, prompt string) (bool, error) {
	sc.Prompts = append(sc.Prompts, prompt)
	if sc.yesNoPos < len(sc.yesNoChoices) {
		answer := sc.yesNoChoices[sc.yesNoPos]
		sc.yesNoPos++
		return answer, nil
	}
	return sc.DefaultYes, nil
}

// ChooseCards picks the scripted names in order, falling back to the first
// min candidates.
func (sc *ScriptedController) ChooseCards(_ context.Context, _ *game.GameState, prompt string, candidates []*game.CardInstance, min, max int) ([]*game.CardInstance, error) {
	sc.Prompts = append(sc.Prompts, prompt)
	if sc.cardPos < len(sc.cardChoices) {
		names := sc.cardChoices[sc.cardPos]
		sc.cardPos++
		used := make(map[int]bool)
		var result []*game.CardInstance
		for _, name := range names {
			for _, c := range candidates {
				if c.Card.Name == name && !used[c.ID] {
					result = append(result, c)
					used[c.ID] = true
					break
				}
			}
		}
		return result, nil
	}
	if min > len(candidates) {
		min = len(candidates)
	}
	return candidates[:min], nil
}

func (sc *ScriptedController) Notify(_ context.Context, event log.GameEvent) error {
	sc.Events = append(sc.Events, event)
	return nil
}
