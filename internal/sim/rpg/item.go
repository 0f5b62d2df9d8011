package rpg

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"craftrpg.chat/internal/sim/catalogs"
)

// Tag is the per-instance extension of an item. Any non-zero tag makes
// the instance non-stackable so that durability and pending-smelt state
// survive stacking.
type Tag struct {
	// Durability is a consumable budget; at 0 the item is pruned.
	Durability *int
	// Pending is the epoch-seconds deadline of a smelt in progress.
	Pending *int64
	// Result is the payload materialized when Pending elapses.
	Result []ItemCount
}

type ItemCount struct {
	ID     string
	Amount int
}

func (t Tag) IsEmpty() bool {
	return t.Durability == nil && t.Pending == nil && len(t.Result) == 0
}

func (t Tag) Clone() Tag {
	out := Tag{}
	if t.Durability != nil {
		d := *t.Durability
		out.Durability = &d
	}
	if t.Pending != nil {
		p := *t.Pending
		out.Pending = &p
	}
	if len(t.Result) > 0 {
		out.Result = append([]ItemCount(nil), t.Result...)
	}
	return out
}

// Item is one inventory instance. Amount may be a negative delta when the
// item expresses consumption inside a transaction result. UID is assigned
// once at creation and stable across persistence.
type Item struct {
	ID          string
	DisplayName string
	Amount      int
	Tag         Tag
	UID         string

	// Static stackable default from the item catalog. An instance only
	// actually stacks while its tag is empty; see IsStackable.
	Stackable bool
}

// NewUID returns a fresh 32-char hex instance identity.
func NewUID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// NewItem builds a fresh instance from its static default: display name,
// stackable flag and default tag (tools get full durability). Unknown ids
// fall back to a bare stackable item named after the id.
func NewItem(cats *catalogs.Catalogs, id string, amount int) *Item {
	it := &Item{
		ID:        id,
		Amount:    amount,
		UID:       NewUID(),
		Stackable: true,
	}
	if def, ok := cats.Items.Defs[id]; ok {
		it.DisplayName = def.Name
		it.Stackable = def.Stackable
		if def.Tag != nil {
			d := def.Tag.Durability
			it.Tag.Durability = &d
		}
	}
	if it.DisplayName == "" {
		it.DisplayName = itemName(id)
	}
	return it
}

// newDelta builds a bare consumption record: no default tag, always
// stackable, so a negative amount merges into the existing stack.
func newDelta(cats *catalogs.Catalogs, id string, amount int) *Item {
	it := &Item{
		ID:          id,
		Amount:      amount,
		UID:         NewUID(),
		Stackable:   true,
		DisplayName: itemName(id),
	}
	if def, ok := cats.Items.Defs[id]; ok && def.Name != "" {
		it.DisplayName = def.Name
	}
	return it
}

// Category is everything before the last ':' of the id.
func (i *Item) Category() string {
	if idx := strings.LastIndex(i.ID, ":"); idx >= 0 {
		return i.ID[:idx]
	}
	return i.ID
}

// Name is everything after the last ':' of the id.
func (i *Item) Name() string {
	return itemName(i.ID)
}

func itemName(id string) string {
	if idx := strings.LastIndex(id, ":"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// IsStackable reports whether this instance merges by amount: the static
// default must allow it and the tag must be empty.
func (i *Item) IsStackable() bool {
	return i.Stackable && i.Tag.IsEmpty()
}
