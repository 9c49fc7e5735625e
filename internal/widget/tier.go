package widget

import (
	"fmt"
	"sort"
	"strings"
)

// Tier is one classification bucket. A count falls in the tier when it is
// strictly greater than Above.
type Tier struct {
	Name  string `json:"name"`
	Above int    `json:"above"`
	Color string `json:"color"` // RGB hex
}

// TierTable is an ordered threshold table evaluated top-down, first match wins
type TierTable struct {
	Name  string
	Tiers []Tier // Highest threshold first
	Base  Tier   // Used when no threshold matches
}

// TiersClassic is the original four-colour table
var TiersClassic = TierTable{
	Name: "classic",
	Tiers: []Tier{
		{Name: "near-black", Above: 3000, Color: "#222831"},
		{Name: "crimson", Above: 2000, Color: "#dc143c"},
		{Name: "coral-red", Above: 1000, Color: "#f05454"},
	},
	Base: Tier{Name: "blue", Color: "#0099ff"},
}

// TiersRescaled is the later table with raised thresholds
var TiersRescaled = TierTable{
	Name: "rescaled",
	Tiers: []Tier{
		{Name: "red", Above: 10000, Color: "#e53935"},
		{Name: "amber", Above: 4000, Color: "#ffb300"},
		{Name: "green", Above: 1000, Color: "#43a047"},
	},
	Base: Tier{Name: "deep-blue", Color: "#1565c0"},
}

var tierTables = map[string]TierTable{
	TiersClassic.Name:  TiersClassic,
	TiersRescaled.Name: TiersRescaled,
}

// Classify returns the tier count falls into
func (t TierTable) Classify(count int) Tier {
	for _, tier := range t.Tiers {
		if count > tier.Above {
			return tier
		}
	}
	return t.Base
}

// Severity ranks the tier count falls into: 0 for the base tier, rising by one
// per threshold crossed
func (t TierTable) Severity(count int) int {
	for i, tier := range t.Tiers {
		if count > tier.Above {
			return len(t.Tiers) - i
		}
	}
	return 0
}

// TierTableByName returns the tier table registered under name
func TierTableByName(name string) (TierTable, error) {
	table, ok := tierTables[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return TierTable{}, fmt.Errorf("unknown tier table: %s (must be one of %s)", name, strings.Join(keys(tierTables), ", "))
	}
	return table, nil
}

func keys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
