package userdb

import (
	"context"
	"testing"
	"time"

	"craftrpg.chat/internal/sim/catalogs"
	"craftrpg.chat/internal/sim/rpg"
	"craftrpg.chat/internal/sim/tuning"
)

func testEngine() *rpg.Engine {
	dur := func(n int) *catalogs.TagDef { return &catalogs.TagDef{Durability: n} }
	cats := &catalogs.Catalogs{
		Items: catalogs.ItemCatalog{
			Palette: []string{"block:wood", "food:apple", "furnace:stone", "ingot:iron", "tool:pick"},
			Defs: map[string]catalogs.ItemDef{
				"block:wood":    {ID: "block:wood", Name: "Wood", Stackable: true},
				"food:apple":    {ID: "food:apple", Name: "Apple", Stackable: true},
				"ingot:iron":    {ID: "ingot:iron", Name: "Iron Ingot", Stackable: true},
				"tool:pick":     {ID: "tool:pick", Name: "Pickaxe", Stackable: false, Tag: dur(10)},
				"furnace:stone": {ID: "furnace:stone", Name: "Stone Furnace", Stackable: false, Tag: dur(200)},
			},
		},
	}
	tune := tuning.Tuning{
		Position: tuning.PositionDefaults{X: 0, Y: 0, Z: 64, Ground: 64},
		Health: tuning.HealthDefaults{
			Health:     tuning.RangedLevel{Level: 20, Range: [2]float64{0, 20}},
			Saturation: tuning.RangedLevel{Level: 10, Range: [2]float64{0, 20}},
			Nutrient:   map[string]float64{"vitamin": 0},
		},
		Finance: tuning.FinanceDefaults{Deposit: 100, Debt: 0, InterestRate: 0.03},
		Ability: map[string]tuning.AbilityDefault{
			"Gather": {Experience: 0},
			"Mine":   {Experience: 0},
		},
		StarterItems: []tuning.StarterItem{
			{ID: "tool:pick", Amount: 1},
			{ID: "food:apple", Amount: 3},
		},
	}
	return rpg.New(rpg.Config{Catalogs: cats, Tuning: tune})
}

func openStore(t *testing.T, dir string, engine *rpg.Engine, now time.Time) *Store {
	t.Helper()
	s, err := Open(Config{Dir: dir, Engine: engine, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestLoadNeverPersistedUser(t *testing.T) {
	engine := testEngine()
	s := openStore(t, t.TempDir(), engine, time.Unix(1700000000, 0))

	u, err := s.LoadUser(context.Background(), "alice", "Alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if u.ID != "alice" || u.DisplayName != "Alice" {
		t.Fatalf("identity = %s/%s", u.ID, u.DisplayName)
	}
	if u.Finance.Total() != 100 || u.Health.Saturation != 10 {
		t.Fatalf("defaults not applied: %+v %+v", u.Finance, u.Health)
	}
	if st := u.Inventory.StackOf("food:apple"); st == nil || st.Amount != 3 {
		t.Fatalf("starter apples = %+v", st)
	}
	if len(u.Inventory.FindAllByID("tool:pick")) != 1 {
		t.Fatalf("starter tool missing")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	engine := testEngine()
	now := time.Unix(1700000000, 0)
	s := openStore(t, t.TempDir(), engine, now)
	ctx := context.Background()

	u, err := s.LoadUser(ctx, "bob", "Bob")
	if err != nil {
		t.Fatalf("load fresh: %v", err)
	}
	u.Position.Move(3, -2, -10)
	u.Health.Saturation = 7.5
	u.Health.AddNutrient("vitamin", 12.25)
	u.Finance.Deposit = 80
	u.Finance.Debt = 5
	wood := engine.NewItem("block:wood", 4)
	u.Inventory.AddItems(wood)
	tool := u.Inventory.FindAllByID("tool:pick")[0]
	*tool.Tag.Durability = 3
	u.Abilities.AddExperience("Mine", 42)

	if err := s.SaveUser(ctx, u); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadUser(ctx, "bob", "Bob")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Position.Coordinate() != [3]int{3, -2, 54} {
		t.Fatalf("position = %v", got.Position.Coordinate())
	}
	if got.Health.Saturation != 7.5 {
		t.Fatalf("saturation = %v", got.Health.Saturation)
	}
	if got.Health.Nutrient["vitamin"] != 12.25 {
		t.Fatalf("nutrient = %v", got.Health.Nutrient)
	}
	if got.Finance.Deposit != 80 || got.Finance.Debt != 5 {
		t.Fatalf("finance = %+v", got.Finance)
	}
	if st := got.Inventory.FindByUID(wood.UID); st == nil || st.Amount != 4 || !st.IsStackable() {
		t.Fatalf("wood instance = %+v", st)
	}
	gotTool := got.Inventory.FindByUID(tool.UID)
	if gotTool == nil || gotTool.Tag.Durability == nil || *gotTool.Tag.Durability != 3 {
		t.Fatalf("tool instance = %+v", gotTool)
	}
	if gotTool.IsStackable() {
		t.Fatalf("loaded tool must stay non-stackable")
	}
	if got.Abilities.Get("Mine").Experience != 42 {
		t.Fatalf("mine experience = %d", got.Abilities.Get("Mine").Experience)
	}
	if got.Abilities.Get("Gather").Experience != 0 {
		t.Fatalf("gather experience = %d", got.Abilities.Get("Gather").Experience)
	}
}

func TestLoadSweepsExpiredState(t *testing.T) {
	engine := testEngine()
	dir := t.TempDir()
	start := time.Unix(1700000000, 0)
	s := openStore(t, dir, engine, start)
	ctx := context.Background()

	u, err := s.LoadUser(ctx, "carol", "Carol")
	if err != nil {
		t.Fatalf("load fresh: %v", err)
	}
	// A furnace mid-smelt, a spent stack and a broken tool.
	furnace := engine.NewItem("furnace:stone", 1)
	deadline := start.Unix() + 150
	furnace.Tag.Pending = &deadline
	furnace.Tag.Result = []rpg.ItemCount{{ID: "ingot:iron", Amount: 2}}
	empty := engine.NewItem("block:wood", 1)
	empty.Amount = 0
	broken := u.Inventory.FindAllByID("tool:pick")[0]
	*broken.Tag.Durability = 0
	u.Inventory.AddItems(furnace, empty)
	if err := s.SaveUser(ctx, u); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Before the deadline nothing materializes, but spent instances go.
	early := openStore(t, dir, engine, start.Add(100*time.Second))
	got, err := early.LoadUser(ctx, "carol", "Carol")
	if err != nil {
		t.Fatalf("early load: %v", err)
	}
	if got.Inventory.StackOf("ingot:iron") != nil {
		t.Fatalf("ingots landed before the deadline")
	}
	if got.Inventory.FindByUID(broken.UID) != nil || got.Inventory.FindByUID(empty.UID) != nil {
		t.Fatalf("spent instances survived the sweep")
	}
	if f := got.Inventory.FindByUID(furnace.UID); f == nil || f.Tag.Pending == nil {
		t.Fatalf("furnace lost its pending state: %+v", f)
	}

	// At the deadline the payload lands; saving persists the resolution.
	late := openStore(t, dir, engine, start.Add(150*time.Second))
	got, err = late.LoadUser(ctx, "carol", "Carol")
	if err != nil {
		t.Fatalf("late load: %v", err)
	}
	st := got.Inventory.StackOf("ingot:iron")
	if st == nil || st.Amount != 2 {
		t.Fatalf("ingots after sweep = %+v", st)
	}
	f := got.Inventory.FindByUID(furnace.UID)
	if f == nil || f.Tag.Pending != nil || f.Tag.Result != nil {
		t.Fatalf("furnace not reset: %+v", f)
	}
	if err := late.SaveUser(ctx, got); err != nil {
		t.Fatalf("save resolved state: %v", err)
	}
	got, err = late.LoadUser(ctx, "carol", "Carol")
	if err != nil {
		t.Fatalf("reload resolved state: %v", err)
	}
	if st := got.Inventory.StackOf("ingot:iron"); st == nil || st.Amount != 2 {
		t.Fatalf("resolution did not persist: %+v", st)
	}
}
