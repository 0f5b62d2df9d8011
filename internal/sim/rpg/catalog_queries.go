package rpg

import "craftrpg.chat/internal/sim/catalogs"

// Read-only catalog queries for UI listings. None of these mutate the
// aggregate; previews carry fresh uids and are never added to the
// inventory.

// Recipe is the full rule-table entry for one craftable or smeltable
// target. Temperature and Duration are zero for craft recipes.
type Recipe struct {
	Result      ItemCount
	Ingredients []ItemCount
	Temperature int
	Duration    int
}

// FuelStock pairs an owned fuel stack with its fuel ratings.
type FuelStock struct {
	Item        *Item
	Temperature int
	Duration    int
}

// PossibleGather lists the gatherable types the user's Gather level
// reaches.
func (e *Engine) PossibleGather(u *User) []*Item {
	level := u.Abilities.Get(ActivityGather).Level()
	var out []*Item
	for _, id := range sortedKeys(e.cats.Gather.ByID) {
		if e.cats.Gather.ByID[id].Rarity > level {
			continue
		}
		out = append(out, NewItem(e.cats, id, 0))
	}
	return out
}

// PossibleOre lists the ore types reachable at the current depth with the
// best-owned tool's hardness. No owned tool means no ore.
func (e *Engine) PossibleOre(u *User) []*Item {
	best := -1
	for _, it := range u.Inventory.Items() {
		if def, ok := e.cats.Mine.Tools[it.ID]; ok && def.Hardness > best {
			best = def.Hardness
		}
	}
	if best < 0 {
		return nil
	}
	z := u.Position.Z
	var out []*Item
	for _, id := range sortedKeys(e.cats.Mine.Targets) {
		ore := e.cats.Mine.Targets[id]
		if ore.Hardness > best {
			continue
		}
		if z < ore.ZMin() || z > ore.ZMax() {
			continue
		}
		out = append(out, NewItem(e.cats, id, 0))
	}
	return out
}

// PossibleCraft lists the craft targets whose recipe the inventory
// already satisfies.
func (e *Engine) PossibleCraft(u *User) []*Item {
	var out []*Item
	for _, id := range sortedKeys(e.cats.Craft.ByID) {
		def := e.cats.Craft.ByID[id]
		if !e.satisfies(u, def.Recipe) {
			continue
		}
		out = append(out, NewItem(e.cats, id, def.Amount))
	}
	return out
}

// PossibleSmelt lists the smelt targets whose recipe the inventory
// already satisfies.
func (e *Engine) PossibleSmelt(u *User) []*Item {
	var out []*Item
	for _, id := range sortedKeys(e.cats.Smelt.Targets) {
		def := e.cats.Smelt.Targets[id]
		if !e.satisfies(u, def.Recipe) {
			continue
		}
		out = append(out, NewItem(e.cats, id, def.Amount))
	}
	return out
}

// PossibleFuel lists the fuels the user currently owns.
func (e *Engine) PossibleFuel(u *User) []FuelStock {
	var out []FuelStock
	for _, id := range sortedKeys(e.cats.Smelt.Fuels) {
		st := u.Inventory.StackOf(id)
		if st == nil {
			continue
		}
		def := e.cats.Smelt.Fuels[id]
		out = append(out, FuelStock{
			Item:        NewItem(e.cats, id, st.Amount),
			Temperature: def.Temperature,
			Duration:    def.Duration,
		})
	}
	return out
}

// Recipes returns the recipe for one target, or all craft and smelt
// recipes when id is empty. The whole catalog is scanned before
// concluding not-found.
func (e *Engine) Recipes(id string) ([]Recipe, error) {
	if id != "" {
		if def, ok := e.cats.Craft.ByID[id]; ok {
			return []Recipe{e.craftRecipe(def.ID, def.Amount, def.Recipe, 0, 0)}, nil
		}
		if def, ok := e.cats.Smelt.Targets[id]; ok {
			return []Recipe{e.craftRecipe(def.ID, def.Amount, def.Recipe, def.Temperature, def.Duration)}, nil
		}
		return nil, e.unknownRecipe(id)
	}
	var out []Recipe
	for _, cid := range sortedKeys(e.cats.Craft.ByID) {
		def := e.cats.Craft.ByID[cid]
		out = append(out, e.craftRecipe(def.ID, def.Amount, def.Recipe, 0, 0))
	}
	for _, sid := range sortedKeys(e.cats.Smelt.Targets) {
		def := e.cats.Smelt.Targets[sid]
		out = append(out, e.craftRecipe(def.ID, def.Amount, def.Recipe, def.Temperature, def.Duration))
	}
	return out, nil
}

func (e *Engine) craftRecipe(id string, amount int, recipe []catalogs.ItemCount, temperature, duration int) Recipe {
	r := Recipe{
		Result:      ItemCount{ID: id, Amount: amount},
		Temperature: temperature,
		Duration:    duration,
	}
	for _, ing := range recipe {
		r.Ingredients = append(r.Ingredients, ItemCount{ID: ing.Item, Amount: ing.Count})
	}
	return r
}

func (e *Engine) satisfies(u *User, recipe []catalogs.ItemCount) bool {
	for _, ing := range recipe {
		st := u.Inventory.StackOf(ing.Item)
		if st == nil || st.Amount < ing.Count {
			return false
		}
	}
	return true
}
