package rpg

import (
	"time"

	"craftrpg.chat/internal/sim/catalogs"
	"craftrpg.chat/internal/sim/tuning"
)

// Fixture rule tables, small enough to reason about by hand.
func testCatalogs() *catalogs.Catalogs {
	dur := func(n int) *catalogs.TagDef { return &catalogs.TagDef{Durability: n} }
	return &catalogs.Catalogs{
		Items: catalogs.ItemCatalog{
			Palette: []string{
				"block:wood", "food:apple", "furnace:stone", "ingot:iron",
				"item:coal", "item:plank", "item:raw_iron", "tool:pick",
			},
			Defs: map[string]catalogs.ItemDef{
				"block:wood":    {ID: "block:wood", Name: "Wood", Stackable: true},
				"food:apple":    {ID: "food:apple", Name: "Apple", Stackable: true},
				"item:plank":    {ID: "item:plank", Name: "Plank", Stackable: true},
				"item:coal":     {ID: "item:coal", Name: "Coal", Stackable: true},
				"item:raw_iron": {ID: "item:raw_iron", Name: "Raw Iron", Stackable: true},
				"ingot:iron":    {ID: "ingot:iron", Name: "Iron Ingot", Stackable: true},
				"tool:pick":     {ID: "tool:pick", Name: "Pickaxe", Stackable: false, Tag: dur(10)},
				"furnace:stone": {ID: "furnace:stone", Name: "Stone Furnace", Stackable: false, Tag: dur(200)},
			},
		},
		Gather: catalogs.GatherCatalog{
			ByID: map[string]catalogs.GatherDef{
				"block:wood": {ID: "block:wood", Rarity: 0, Chance: 1, Amount: 1},
				"food:apple": {ID: "food:apple", Rarity: 5, Chance: 1, Amount: 2},
			},
		},
		Mine: catalogs.MineCatalog{
			Tools: map[string]catalogs.ToolDef{
				"tool:pick": {ID: "tool:pick", Hardness: 2},
			},
			Targets: map[string]catalogs.OreDef{
				"ore:iron": {
					ID: "ore:iron", Hardness: 2, Chance: 1, ClusterSize: 4,
					Range: [2]int{0, 40},
					Drops: []catalogs.ItemCount{{Item: "item:raw_iron", Count: 1}},
				},
			},
		},
		Craft: catalogs.CraftCatalog{
			ByID: map[string]catalogs.CraftDef{
				"item:plank": {
					ID: "item:plank", Amount: 1,
					Recipe: []catalogs.ItemCount{{Item: "block:wood", Count: 2}},
				},
				"tool:pick": {
					ID: "tool:pick", Amount: 1,
					Recipe: []catalogs.ItemCount{{Item: "item:plank", Count: 3}},
				},
			},
		},
		Smelt: catalogs.SmeltCatalog{
			Targets: map[string]catalogs.SmeltDef{
				"ingot:iron": {
					ID: "ingot:iron", Amount: 1,
					Recipe:      []catalogs.ItemCount{{Item: "item:raw_iron", Count: 1}},
					Temperature: 900, Duration: 150,
				},
			},
			Furnaces: map[string]catalogs.FurnaceDef{
				"furnace:stone": {ID: "furnace:stone", Temperature: 1000},
			},
			Fuels: map[string]catalogs.FuelDef{
				"item:coal":  {ID: "item:coal", Temperature: 1000, Duration: 100},
				"item:lava":  {ID: "item:lava", Temperature: 1200, Duration: 500},
				"block:wood": {ID: "block:wood", Temperature: 600, Duration: 100},
			},
		},
		Foods: catalogs.FoodCatalog{
			ByID: map[string]catalogs.FoodDef{
				"food:apple": {
					ID: "food:apple", Level: 2,
					Nutrient: map[string]float64{"vitamin": 3},
				},
			},
		},
	}
}

func testTuning() tuning.Tuning {
	return tuning.Tuning{
		Position: tuning.PositionDefaults{X: 0, Y: 0, Z: 64, Ground: 64},
		Health: tuning.HealthDefaults{
			Health:     tuning.RangedLevel{Level: 20, Range: [2]float64{0, 20}},
			Saturation: tuning.RangedLevel{Level: 10, Range: [2]float64{0, 20}},
			Nutrient:   map[string]float64{"vitamin": 0, "carbohydrate": 0},
		},
		Finance: tuning.FinanceDefaults{Deposit: 100, Debt: 0, InterestRate: 0.03},
		Ability: map[string]tuning.AbilityDefault{
			"Gather": {Experience: 0},
			"Mine":   {Experience: 0},
			"Craft":  {Experience: 0},
			"Smelt":  {Experience: 0},
		},
		Activities: map[string]tuning.ActivityTuning{
			"Gather": {Cost: 1, Experience: 10},
			"Mine":   {Cost: 2, Experience: 15},
			"Craft":  {Cost: 1, Experience: 8},
			"Smelt":  {Cost: 1, Experience: 12},
			"Eat":    {Cost: 0, Experience: 0},
		},
		StarterItems: []tuning.StarterItem{
			{ID: "tool:pick", Amount: 1},
			{ID: "food:apple", Amount: 3},
		},
	}
}

// seqRand returns queued values in order, then repeats the last one.
func seqRand(vals ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := vals[i]
		if i < len(vals)-1 {
			i++
		}
		return v
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testEngine(rand func() float64, now func() time.Time) *Engine {
	return New(Config{
		Catalogs: testCatalogs(),
		Tuning:   testTuning(),
		Rand:     rand,
		Now:      now,
	})
}
