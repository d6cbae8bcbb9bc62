// Package catalog holds the fixed choices offered by the scenario and simulator forms
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Option is a selectable value with its display label
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// RiskGroup groups risk options under a heading
type RiskGroup struct {
	Label   string   `yaml:"label"`
	Options []Option `yaml:"options"`
}

// Catalog lists room types, risks and simulator scenarios
type Catalog struct {
	RoomTypes          []Option    `yaml:"room_types"`
	RiskGroups         []RiskGroup `yaml:"risk_groups"`
	SimulatorScenarios []Option    `yaml:"simulator_scenarios"`
}

// Default returns the catalog shipped with the binary
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if len(c.RoomTypes) == 0 || len(c.RiskGroups) == 0 {
		return nil, fmt.Errorf("catalog: room types and risk groups are required")
	}
	return &c, nil
}

// HasRoomType reports whether v is a known room type
func (c *Catalog) HasRoomType(v string) bool {
	return hasOption(c.RoomTypes, v)
}

// HasRisk reports whether v is a known risk in any group
func (c *Catalog) HasRisk(v string) bool {
	for _, g := range c.RiskGroups {
		if hasOption(g.Options, v) {
			return true
		}
	}
	return false
}

// HasSimulatorScenario reports whether v is a known simulator scenario
func (c *Catalog) HasSimulatorScenario(v string) bool {
	return hasOption(c.SimulatorScenarios, v)
}

// RiskLabel returns the label for a risk value, or the value itself when unknown
func (c *Catalog) RiskLabel(v string) string {
	for _, g := range c.RiskGroups {
		for _, o := range g.Options {
			if o.Value == v {
				return o.Label
			}
		}
	}
	return v
}

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}
