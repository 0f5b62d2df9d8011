package rpg

import (
	"craftrpg.chat/internal/protocol"
)

// doEat restores saturation and nutrients per the food table, consuming
// times units. Eating past the saturation cap is refused up front.
func (e *Engine) doEat(u *User, req ActivityRequest) (*ActivityResult, error) {
	def, ok := e.cats.Foods.ByID[req.TargetID]
	if !ok {
		reason := "that is not food: " + req.TargetID
		if s := e.cats.SuggestItem(req.TargetID); s != "" {
			reason += " (did you mean " + s + "?)"
		}
		return nil, protocol.Validation(reason)
	}
	st := u.Inventory.StackOf(req.TargetID)
	if st == nil || st.Amount < req.Times {
		return nil, protocol.Precondition("not enough food")
	}
	restore := def.Level * float64(req.Times)
	_, satMax := u.Health.SaturationRange()
	if u.Health.Saturation+restore > satMax {
		return nil, protocol.Precondition("too full to eat that")
	}

	u.Health.AddSaturation(restore)
	for nutrient, n := range def.Nutrient {
		u.Health.AddNutrient(nutrient, n*float64(req.Times))
	}
	eaten := newDelta(e.cats, req.TargetID, -req.Times)
	u.Inventory.AddItems(eaten)
	u.Abilities.AddExperience(ActivityEat, e.activityExperience(ActivityEat))
	return &ActivityResult{
		Activity: ActivityEat,
		Consumed: []*Item{eaten},
		Restored: restore,
	}, nil
}
