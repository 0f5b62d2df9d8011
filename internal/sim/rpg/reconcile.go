package rpg

import (
	"time"

	"craftrpg.chat/internal/sim/catalogs"
)

// ReconcileInventory performs the lazy sweep that runs whenever an
// inventory is loaded: instances whose amount or durability reached 0 are
// pruned, and a furnace whose pending deadline has passed materializes
// its recorded result and returns to idle. A sweep before the deadline
// changes nothing; sweeping twice with no time elapsed changes nothing.
//
// There is no background timer. Observers see a finished smelt only by
// loading the aggregate again at or after the deadline.
func ReconcileInventory(inv *Inventory, cats *catalogs.Catalogs, now time.Time) (changed bool) {
	kept := inv.items[:0]
	var materialized []*Item
	for _, it := range inv.items {
		if it.Amount == 0 {
			changed = true
			continue
		}
		if it.Tag.Durability != nil && *it.Tag.Durability == 0 {
			changed = true
			continue
		}
		if it.Tag.Pending != nil && now.Unix() >= *it.Tag.Pending {
			for _, rc := range it.Tag.Result {
				materialized = append(materialized, NewItem(cats, rc.ID, rc.Amount))
			}
			it.Tag.Pending = nil
			it.Tag.Result = nil
			changed = true
		}
		kept = append(kept, it)
	}
	inv.items = kept
	if len(materialized) > 0 {
		inv.AddItems(materialized...)
	}
	return changed
}
