package rpg

import (
	"math"
	"sort"
)

// Ability is a named skill with an experience counter. Level is derived,
// never stored.
type Ability struct {
	Name       string
	Experience int
}

// Level follows the fixed curve level = ceil(0.64 * ln(experience+1)).
func (a Ability) Level() int {
	return int(math.Ceil(0.64 * math.Log(float64(a.Experience)+1)))
}

// UpgradeRequired is the experience threshold for the next level boundary,
// the inverse of the level curve: ceil(exp(level/0.64) - 1).
func (a Ability) UpgradeRequired() int {
	return int(math.Ceil(math.Exp(float64(a.Level())/0.64) - 1))
}

// AbilityTree maps skill names to abilities. Looking up an absent skill
// creates and stores a zero-experience one.
type AbilityTree struct {
	abilities map[string]*Ability
}

func NewAbilityTree(abilities ...Ability) *AbilityTree {
	t := &AbilityTree{abilities: map[string]*Ability{}}
	for _, a := range abilities {
		a := a
		t.abilities[a.Name] = &a
	}
	return t
}

func (t *AbilityTree) Get(name string) *Ability {
	if a, ok := t.abilities[name]; ok {
		return a
	}
	a := &Ability{Name: name}
	t.abilities[name] = a
	return a
}

// AddExperience adds n to the named ability's counter. Negative awards
// are ignored; experience never decreases.
func (t *AbilityTree) AddExperience(name string, n int) {
	if n <= 0 {
		return
	}
	a := t.Get(name)
	a.Experience += n
}

// All returns the abilities sorted by name.
func (t *AbilityTree) All() []Ability {
	out := make([]Ability, 0, len(t.abilities))
	for _, a := range t.abilities {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
