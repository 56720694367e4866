package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	// WaypointTypeJumpGate marks a waypoint with a jump gate.
	WaypointTypeJumpGate = "JUMP_GATE"
	// TraitMarketplace marks a waypoint that sells fuel.
	TraitMarketplace = "MARKETPLACE"
)

// Trait is a waypoint trait from the charted systems dump.
type Trait struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Waypoint is a point of interest inside a system. X/Y are local to the system.
type Waypoint struct {
	Symbol string  `json:"symbol"`
	X      int     `json:"x"`
	Y      int     `json:"y"`
	Type   string  `json:"type"`
	Traits []Trait `json:"traits,omitempty"` // nil when the waypoint is uncharted
}

// IsJumpGate reports whether the waypoint is a jump gate.
func (w *Waypoint) IsJumpGate() bool {
	return w.Type == WaypointTypeJumpGate
}

// IsMarketplace reports whether the waypoint carries the marketplace trait.
func (w *Waypoint) IsMarketplace() bool {
	return w.HasTrait(TraitMarketplace)
}

// HasTrait reports whether the waypoint carries the given trait symbol.
func (w *Waypoint) HasTrait(symbol string) bool {
	for _, t := range w.Traits {
		if t.Symbol == symbol {
			return true
		}
	}
	return false
}

// System is a star system in universe coordinates.
type System struct {
	Symbol    string     `json:"symbol"`
	Type      string     `json:"type"`
	X         int        `json:"x"`
	Y         int        `json:"y"`
	Waypoints []Waypoint `json:"waypoints"`
}

// Faction is the subset of faction data the planner uses.
type Faction struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Headquarters string `json:"headquarters"`
}

// LoadSystems reads a charted systems dump: a JSON array of systems.
func LoadSystems(path string) ([]System, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read systems: %w", err)
	}
	var systems []System
	if err := json.Unmarshal(raw, &systems); err != nil {
		return nil, fmt.Errorf("parse systems %s: %w", path, err)
	}
	return systems, nil
}

// LoadFactions reads a factions dump shaped like the API response ({"data": [...]}).
// Factions without a headquarters are skipped.
func LoadFactions(path string) ([]Faction, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read factions: %w", err)
	}
	var resp struct {
		Data []Faction `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("parse factions %s: %w", path, err)
	}
	out := make([]Faction, 0, len(resp.Data))
	for _, f := range resp.Data {
		if f.Headquarters == "" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
