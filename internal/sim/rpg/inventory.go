package rpg

import (
	"craftrpg.chat/internal/protocol"
)

// Inventory is the collection of item instances a user owns. At most one
// stackable untagged instance per id exists at any time; AddItems
// maintains that invariant.
type Inventory struct {
	items []*Item
}

func NewInventory(items ...*Item) *Inventory {
	return &Inventory{items: append([]*Item(nil), items...)}
}

func (inv *Inventory) Items() []*Item {
	return inv.items
}

// FindByUID returns the single instance with that uid, or nil.
func (inv *Inventory) FindByUID(uid string) *Item {
	for _, it := range inv.items {
		if it.UID == uid {
			return it
		}
	}
	return nil
}

// FindAllByID returns every instance with that id, in insertion order.
func (inv *Inventory) FindAllByID(id string) []*Item {
	var out []*Item
	for _, it := range inv.items {
		if it.ID == id {
			out = append(out, it)
		}
	}
	return out
}

// StackOf returns the one stackable untagged instance of id, or nil.
func (inv *Inventory) StackOf(id string) *Item {
	for _, it := range inv.items {
		if it.ID == id && it.IsStackable() {
			return it
		}
	}
	return nil
}

// AddItems processes items in argument order. A tagged or non-stackable
// item is appended as its own instance; otherwise the amount merges into
// the existing stack of the same id, appending a new stack when none
// exists. An item appended earlier in the same call can become the stack
// target for a later one.
func (inv *Inventory) AddItems(items ...*Item) {
	for _, add := range items {
		if !add.IsStackable() {
			inv.items = append(inv.items, add)
			continue
		}
		if st := inv.StackOf(add.ID); st != nil {
			st.Amount += add.Amount
			continue
		}
		inv.items = append(inv.items, add)
	}
}

// RemoveItems removes exact instances by uid regardless of amount.
// Ordinary consumption goes through AddItems with negative amounts; this
// is used by reconciliation.
func (inv *Inventory) RemoveItems(items ...*Item) error {
	for _, rm := range items {
		idx := -1
		for i, it := range inv.items {
			if it.UID == rm.UID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return protocol.NotFound("no item instance " + rm.UID)
		}
		inv.items = append(inv.items[:idx], inv.items[idx+1:]...)
	}
	return nil
}

// GroupByCategory preserves insertion order within each category.
func (inv *Inventory) GroupByCategory() map[string][]*Item {
	out := map[string][]*Item{}
	for _, it := range inv.items {
		c := it.Category()
		out[c] = append(out[c], it)
	}
	return out
}
