package rpg

import (
	"craftrpg.chat/internal/protocol"
	"craftrpg.chat/internal/sim/catalogs"
)

// doCraft consumes ingredient_amount*times of every ingredient and
// produces base_amount*times of the result. Non-stackable results become
// separate unit instances so each gets its own uid and default tag.
func (e *Engine) doCraft(u *User, req ActivityRequest) (*ActivityResult, error) {
	def, ok := e.cats.Craft.ByID[req.TargetID]
	if !ok {
		return nil, e.unknownRecipe(req.TargetID)
	}
	if err := e.checkStamina(u, ActivityCraft); err != nil {
		return nil, err
	}
	consumed, err := e.ingredientDeltas(u, def.Recipe, req.Times)
	if err != nil {
		return nil, err
	}

	e.spendStamina(u, ActivityCraft)
	u.Inventory.AddItems(consumed...)
	total := def.Amount * req.Times
	var yield []*Item
	if preview := NewItem(e.cats, req.TargetID, total); preview.IsStackable() {
		u.Inventory.AddItems(preview)
		yield = []*Item{preview}
	} else {
		for i := 0; i < total; i++ {
			unit := NewItem(e.cats, req.TargetID, 1)
			u.Inventory.AddItems(unit)
			yield = append(yield, unit)
		}
	}
	u.Abilities.AddExperience(ActivityCraft, e.activityExperience(ActivityCraft))
	return &ActivityResult{Activity: ActivityCraft, Yield: yield, Consumed: consumed}, nil
}

// ingredientDeltas verifies sufficiency of every recipe line and returns
// the negative-amount consumption records, without touching the
// inventory.
func (e *Engine) ingredientDeltas(u *User, recipe []catalogs.ItemCount, times int) ([]*Item, error) {
	var out []*Item
	for _, ing := range recipe {
		need := ing.Count * times
		st := u.Inventory.StackOf(ing.Item)
		if st == nil || st.Amount < need {
			return nil, protocol.Precondition("not enough ingredients")
		}
		out = append(out, newDelta(e.cats, ing.Item, -need))
	}
	return out, nil
}

func (e *Engine) unknownRecipe(id string) error {
	reason := "unknown recipe: " + id
	if s := e.cats.SuggestItem(id); s != "" {
		reason += " (did you mean " + s + "?)"
	}
	return protocol.Validation(reason)
}
