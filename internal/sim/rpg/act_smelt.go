package rpg

import (
	"craftrpg.chat/internal/protocol"
)

// doSmelt consumes fuel and ingredients immediately but defers the yield:
// the furnace tag is stamped with the deadline and the result payload,
// resolved by the reconciliation sweep on a later load. Furnace wear is
// the output amount, not elapsed uses.
func (e *Engine) doSmelt(u *User, req ActivityRequest) (*ActivityResult, error) {
	def, ok := e.cats.Smelt.Targets[req.TargetID]
	if !ok {
		return nil, e.unknownRecipe(req.TargetID)
	}
	furnace := u.Inventory.FindByUID(req.FurnaceUID)
	if furnace == nil {
		return nil, protocol.NotFound("no such furnace in inventory")
	}
	fuel := u.Inventory.FindByUID(req.FuelUID)
	if fuel == nil {
		return nil, protocol.NotFound("no such fuel in inventory")
	}
	if err := e.checkStamina(u, ActivitySmelt); err != nil {
		return nil, err
	}
	furnaceDef, ok := e.cats.Smelt.Furnaces[furnace.ID]
	if !ok {
		return nil, protocol.Precondition("that is not a furnace")
	}
	if furnace.Tag.Pending != nil {
		return nil, protocol.Precondition("furnace is busy")
	}
	resultAmount := def.Amount * req.Times
	if furnace.Tag.Durability == nil || *furnace.Tag.Durability < resultAmount {
		return nil, protocol.Precondition("furnace durability too low")
	}
	fuelDef, ok := e.cats.Smelt.Fuels[fuel.ID]
	if !ok {
		return nil, protocol.Precondition("that cannot be used as fuel")
	}
	if furnaceDef.Temperature < fuelDef.Temperature {
		return nil, protocol.Precondition("furnace cannot withstand that fuel")
	}
	if furnaceDef.Temperature < def.Temperature {
		return nil, protocol.Precondition("furnace temperature too low")
	}
	if fuelDef.Temperature < def.Temperature {
		return nil, protocol.Precondition("fuel temperature too low")
	}
	if fuel.Amount*fuelDef.Duration < def.Duration {
		return nil, protocol.Precondition("not enough fuel")
	}
	consumed, err := e.ingredientDeltas(u, def.Recipe, req.Times)
	if err != nil {
		return nil, err
	}

	e.spendStamina(u, ActivitySmelt)
	// The whole fuel stack burns, whatever the recipe needed.
	consumed = append(consumed, newDelta(e.cats, fuel.ID, -fuel.Amount))
	u.Inventory.AddItems(consumed...)

	deadline := e.now().Unix() + int64(def.Duration)
	furnace.Tag.Pending = &deadline
	furnace.Tag.Result = []ItemCount{{ID: req.TargetID, Amount: resultAmount}}
	*furnace.Tag.Durability -= resultAmount

	u.Abilities.AddExperience(ActivitySmelt, e.activityExperience(ActivitySmelt))
	preview := NewItem(e.cats, req.TargetID, resultAmount)
	return &ActivityResult{
		Activity: ActivitySmelt,
		Yield:    []*Item{preview},
		Consumed: consumed,
		Furnace:  furnace,
	}, nil
}
