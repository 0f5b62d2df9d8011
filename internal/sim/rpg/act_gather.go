package rpg

import (
	"math"
	"sort"

	"craftrpg.chat/internal/protocol"
)

// doGather rolls an independent Bernoulli trial for every gatherable the
// user's Gather level can reach. A successful trial always yields at
// least one unit (amounts round up).
func (e *Engine) doGather(u *User) (*ActivityResult, error) {
	if u.Position.IsGround() != AtGround {
		return nil, protocol.Precondition("not at ground level")
	}
	if err := e.checkStamina(u, ActivityGather); err != nil {
		return nil, err
	}

	e.spendStamina(u, ActivityGather)
	level := u.Abilities.Get(ActivityGather).Level()
	var yield []*Item
	for _, id := range sortedKeys(e.cats.Gather.ByID) {
		def := e.cats.Gather.ByID[id]
		if def.Rarity > level {
			continue
		}
		if e.rand() >= def.Chance {
			continue
		}
		n := int(math.Ceil(e.rand() * float64(def.Amount)))
		if n < 1 {
			n = 1
		}
		yield = append(yield, NewItem(e.cats, id, n))
	}
	u.Inventory.AddItems(yield...)
	u.Abilities.AddExperience(ActivityGather, e.activityExperience(ActivityGather))
	return &ActivityResult{Activity: ActivityGather, Yield: yield}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
