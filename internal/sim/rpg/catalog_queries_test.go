package rpg

import (
	"testing"
	"time"

	"craftrpg.chat/internal/protocol"
)

func TestPossibleGatherFollowsLevel(t *testing.T) {
	e := testEngine(seqRand(0), fixedNow(time.Unix(1700000000, 0)))
	u := e.NewUser("u1", "Alice")

	got := e.PossibleGather(u)
	if len(got) != 1 || got[0].ID != "block:wood" {
		t.Fatalf("level 0 gatherables = %+v, want only wood", got)
	}

	u.Abilities.AddExperience(ActivityGather, 2000) // level 5
	got = e.PossibleGather(u)
	if len(got) != 2 {
		t.Fatalf("level 5 gatherables = %+v, want wood and apples", got)
	}
}

func TestPossibleOreNeedsToolAndDepth(t *testing.T) {
	e := testEngine(seqRand(0), fixedNow(time.Unix(1700000000, 0)))
	u := e.NewUser("u1", "Alice")

	// Spawn z is above the ore range.
	if got := e.PossibleOre(u); len(got) != 0 {
		t.Fatalf("ore at spawn depth = %+v, want none", got)
	}

	z := 10
	u.Position.Goto(nil, nil, &z)
	got := e.PossibleOre(u)
	if len(got) != 1 || got[0].ID != "ore:iron" {
		t.Fatalf("ore at z=10 = %+v, want ore:iron", got)
	}

	// Without any tool there is no reachable ore at all.
	bare := e.NewUser("u2", "Bob")
	bare.Inventory = NewInventory()
	bare.Position.Goto(nil, nil, &z)
	if got := e.PossibleOre(bare); got != nil {
		t.Fatalf("ore without a tool = %+v, want none", got)
	}
}

func TestPossibleCraftAndSmeltFollowStock(t *testing.T) {
	e := testEngine(seqRand(0), fixedNow(time.Unix(1700000000, 0)))
	u := e.NewUser("u1", "Alice")

	if got := e.PossibleCraft(u); len(got) != 0 {
		t.Fatalf("craftables with empty stock = %+v", got)
	}
	u.Inventory.AddItems(NewItem(e.Catalogs(), "block:wood", 2))
	got := e.PossibleCraft(u)
	if len(got) != 1 || got[0].ID != "item:plank" {
		t.Fatalf("craftables = %+v, want item:plank", got)
	}

	u.Inventory.AddItems(NewItem(e.Catalogs(), "item:raw_iron", 1))
	smeltable := e.PossibleSmelt(u)
	if len(smeltable) != 1 || smeltable[0].ID != "ingot:iron" {
		t.Fatalf("smeltables = %+v, want ingot:iron", smeltable)
	}
}

func TestPossibleFuelListsOwnedStacks(t *testing.T) {
	e := testEngine(seqRand(0), fixedNow(time.Unix(1700000000, 0)))
	u := e.NewUser("u1", "Alice")

	if got := e.PossibleFuel(u); len(got) != 0 {
		t.Fatalf("fuels with empty stock = %+v", got)
	}
	u.Inventory.AddItems(NewItem(e.Catalogs(), "item:coal", 5))
	got := e.PossibleFuel(u)
	if len(got) != 1 {
		t.Fatalf("fuels = %+v, want coal only", got)
	}
	f := got[0]
	if f.Item.ID != "item:coal" || f.Item.Amount != 5 || f.Temperature != 1000 || f.Duration != 100 {
		t.Fatalf("fuel entry = %+v", f)
	}
}

func TestRecipesLookup(t *testing.T) {
	e := testEngine(seqRand(0), fixedNow(time.Unix(1700000000, 0)))

	rs, err := e.Recipes("tool:pick")
	if err != nil {
		t.Fatalf("craft recipe: %v", err)
	}
	if len(rs) != 1 || rs[0].Result != (ItemCount{ID: "tool:pick", Amount: 1}) {
		t.Fatalf("recipe = %+v", rs)
	}
	if len(rs[0].Ingredients) != 1 || rs[0].Ingredients[0] != (ItemCount{ID: "item:plank", Amount: 3}) {
		t.Fatalf("ingredients = %+v", rs[0].Ingredients)
	}

	rs, err = e.Recipes("ingot:iron")
	if err != nil {
		t.Fatalf("smelt recipe: %v", err)
	}
	if rs[0].Temperature != 900 || rs[0].Duration != 150 {
		t.Fatalf("smelt recipe carries %d/%d, want 900/150", rs[0].Temperature, rs[0].Duration)
	}

	rs, err = e.Recipes("")
	if err != nil {
		t.Fatalf("all recipes: %v", err)
	}
	if len(rs) != 3 {
		t.Fatalf("recipe count = %d, want 3", len(rs))
	}

	_, err = e.Recipes("item:nothing")
	if protocol.CodeOf(err) != protocol.ErrValidation {
		t.Fatalf("unknown recipe: %v, want %s", err, protocol.ErrValidation)
	}
}
