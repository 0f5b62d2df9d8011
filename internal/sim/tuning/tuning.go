package tuning

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Tuning carries the numeric defaults the engine is constructed with:
// world constants, per-activity stamina costs and experience awards, and
// the default sub-entity values synthesized for never-persisted users.
type Tuning struct {
	Position PositionDefaults `yaml:"position"`
	Health   HealthDefaults   `yaml:"health"`
	Finance  FinanceDefaults  `yaml:"finance"`

	Ability map[string]AbilityDefault `yaml:"ability"`

	Activities map[string]ActivityTuning `yaml:"activities"`

	StarterItems []StarterItem `yaml:"starter_items"`
}

type PositionDefaults struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
	// Ground is the z level separating underground from sky.
	Ground int `yaml:"ground"`
}

type HealthDefaults struct {
	Health     RangedLevel        `yaml:"health"`
	Saturation RangedLevel        `yaml:"saturation"`
	Nutrient   map[string]float64 `yaml:"nutrient"`
}

type RangedLevel struct {
	Level float64    `yaml:"level"`
	Range [2]float64 `yaml:"range"`
}

// Min and Max return the range in sorted order regardless of how the
// yaml author wrote it down.
func (r RangedLevel) Min() float64 {
	if r.Range[0] < r.Range[1] {
		return r.Range[0]
	}
	return r.Range[1]
}

func (r RangedLevel) Max() float64 {
	if r.Range[0] > r.Range[1] {
		return r.Range[0]
	}
	return r.Range[1]
}

type FinanceDefaults struct {
	Deposit      int     `yaml:"deposit"`
	Debt         int     `yaml:"debt"`
	InterestRate float64 `yaml:"interest_rate"`
}

type AbilityDefault struct {
	Experience int `yaml:"experience"`
}

type ActivityTuning struct {
	// Cost is the saturation deducted per invocation.
	Cost float64 `yaml:"cost"`
	// Experience awarded on success.
	Experience int `yaml:"experience"`
}

type StarterItem struct {
	ID     string `yaml:"id"`
	Amount int    `yaml:"amount"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// AbilityNames returns the configured starting skills in stable order.
func (t Tuning) AbilityNames() []string {
	names := make([]string, 0, len(t.Ability))
	for name := range t.Ability {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
