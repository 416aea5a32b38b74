package web

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterkuimelis/tcgx-triggers/internal/game"
)

// ScenarioInfo is the JSON representation of a scenario for the /api/scenarios endpoint.
type ScenarioInfo struct {
	Name       string   `json:"name"`
	Turn       int      `json:"turn"`
	Phase      string   `json:"phase"`
	TurnPlayer int      `json:"turnPlayer"`
	Players    []string `json:"players"`
	Cards      []string `json:"cards"`
}

// scenarioPath resolves a scenario name to a file in dir. Names never
// leave the directory.
func scenarioPath(dir, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid scenario name %q", name)
	}
	path := filepath.Join(dir, name+".yaml")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("scenario %q: %w", name, err)
	}
	return path, nil
}

// listScenarios parses every *.yaml file in dir, sorted by name.
func listScenarios(dir string) ([]ScenarioInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	out := []ScenarioInfo{}
	for _, path := range paths {
		sf, err := game.LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		si := ScenarioInfo{
			Name:       strings.TrimSuffix(filepath.Base(path), ".yaml"),
			Turn:       sf.Turn,
			Phase:      sf.Phase.String(),
			TurnPlayer: sf.TurnPlayer,
		}
		// Unique card names for display
		seen := make(map[string]bool)
		add := func(name string) {
			if name != "" && !seen[name] {
				si.Cards = append(si.Cards, name)
				seen[name] = true
			}
		}
		for _, p := range sf.Players {
			si.Players = append(si.Players, p.Name)
			for _, sc := range p.Field {
				add(sc.Card)
			}
			for _, sc := range p.SpellTrap {
				add(sc.Card)
			}
			if p.FieldSpell != nil {
				add(p.FieldSpell.Card)
			}
			for _, name := range p.Hand {
				add(name)
			}
		}
		out = append(out, si)
	}
	return out, nil
}
