// Package gazetteer validates city names against a static place-name file.
package gazetteer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

type cityRecord struct {
	Name string `json:"name"`
}

// Gazetteer holds a lowercase set of known city names.
type Gazetteer struct {
	names map[string]struct{}
}

// Load reads a JSON array of city records from path.
func Load(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cities file: %w", err)
	}

	var records []cityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse cities file: %w", err)
	}

	names := lo.SliceToMap(records, func(r cityRecord) (string, struct{}) {
		return strings.ToLower(strings.TrimSpace(r.Name)), struct{}{}
	})
	delete(names, "")

	return &Gazetteer{names: names}, nil
}

// New builds a gazetteer from an in-memory name list. Used in tests.
func New(cities []string) *Gazetteer {
	names := lo.SliceToMap(cities, func(name string) (string, struct{}) {
		return strings.ToLower(strings.TrimSpace(name)), struct{}{}
	})
	return &Gazetteer{names: names}
}

// IsKnownCity reports whether name appears in the gazetteer. Comparison is
// case-insensitive.
func (g *Gazetteer) IsKnownCity(name string) bool {
	_, ok := g.names[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ValidateRoute checks that both endpoints of a route are known cities. Both
// are always checked; a route with an unknown origin is as unplannable as one
// with an unknown destination.
func (g *Gazetteer) ValidateRoute(origin, destination string) error {
	if !g.IsKnownCity(origin) {
		return fmt.Errorf("unknown origin city %q", origin)
	}
	if !g.IsKnownCity(destination) {
		return fmt.Errorf("unknown destination city %q", destination)
	}
	return nil
}

// Size returns the number of known cities.
func (g *Gazetteer) Size() int {
	return len(g.names)
}
