package rpg

import (
	"math"

	"craftrpg.chat/internal/protocol"
)

// doMine rolls every ore the tool can break at the current depth. Drop
// amounts are clamped to the tool's remaining durability, and mining
// stops once the tool is spent.
func (e *Engine) doMine(u *User, req ActivityRequest) (*ActivityResult, error) {
	tool := u.Inventory.FindByUID(req.ToolUID)
	if tool == nil {
		return nil, protocol.NotFound("no such tool in inventory")
	}
	toolDef, ok := e.cats.Mine.Tools[tool.ID]
	if !ok || tool.Tag.Durability == nil {
		return nil, protocol.Precondition("wrong tool")
	}
	if u.Position.IsGround() == Sky {
		return nil, protocol.Precondition("cannot mine above ground")
	}
	if err := e.checkStamina(u, ActivityMine); err != nil {
		return nil, err
	}

	e.spendStamina(u, ActivityMine)
	var yield []*Item
	z := u.Position.Z
	for _, id := range sortedKeys(e.cats.Mine.Targets) {
		ore := e.cats.Mine.Targets[id]
		if ore.Hardness > toolDef.Hardness {
			continue
		}
		if z < ore.ZMin() || z > ore.ZMax() {
			continue
		}
		if e.rand() >= ore.Chance {
			continue
		}
		for _, drop := range ore.Drops {
			if *tool.Tag.Durability == 0 {
				break
			}
			n := int(math.Ceil(e.rand() * float64(ore.ClusterSize) * float64(drop.Count)))
			if n < 1 {
				n = 1
			}
			if n > *tool.Tag.Durability {
				n = *tool.Tag.Durability
			}
			*tool.Tag.Durability -= n
			yield = append(yield, NewItem(e.cats, drop.Item, n))
		}
	}
	u.Inventory.AddItems(yield...)
	u.Abilities.AddExperience(ActivityMine, e.activityExperience(ActivityMine))
	return &ActivityResult{Activity: ActivityMine, Yield: yield}, nil
}
