package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Catalogs holds the static rule tables, loaded once at process start.
// The engine only reads them; hot reload means building a new Catalogs
// value and reconstructing the engine with it.
type Catalogs struct {
	Items  ItemCatalog
	Gather GatherCatalog
	Mine   MineCatalog
	Craft  CraftCatalog
	Smelt  SmeltCatalog
	Foods  FoodCatalog
}

type ItemCatalog struct {
	Palette []string
	Defs    map[string]ItemDef
	Digest  string
}

// ItemDef is the static default for one item id. Tag, when present, is
// stamped on every fresh instance (e.g. tools start with full durability),
// which also makes the item non-stackable.
type ItemDef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Stackable bool    `json:"stackable"`
	Tag       *TagDef `json:"tag,omitempty"`
}

type TagDef struct {
	Durability int `json:"durability"`
}

type GatherCatalog struct {
	ByID   map[string]GatherDef
	Digest string
}

type GatherDef struct {
	ID     string  `json:"id"`
	Rarity int     `json:"rarity"`
	Chance float64 `json:"chance"`
	Amount int     `json:"amount"`
}

type MineCatalog struct {
	Targets map[string]OreDef
	Tools   map[string]ToolDef
	Digest  string
}

type OreDef struct {
	ID          string      `json:"id"`
	Hardness    int         `json:"hardness"`
	Chance      float64     `json:"chance"`
	ClusterSize int         `json:"cluster_size"`
	Range       [2]int      `json:"range"`
	Drops       []ItemCount `json:"drops"`
}

// ZMin and ZMax return the configured depth range in sorted order.
func (o OreDef) ZMin() int {
	if o.Range[0] < o.Range[1] {
		return o.Range[0]
	}
	return o.Range[1]
}

func (o OreDef) ZMax() int {
	if o.Range[0] > o.Range[1] {
		return o.Range[0]
	}
	return o.Range[1]
}

type ToolDef struct {
	ID       string `json:"id"`
	Hardness int    `json:"hardness"`
}

type CraftCatalog struct {
	ByID   map[string]CraftDef
	Digest string
}

type CraftDef struct {
	ID     string      `json:"id"`
	Amount int         `json:"amount"`
	Recipe []ItemCount `json:"recipe"`
}

type SmeltCatalog struct {
	Targets  map[string]SmeltDef
	Furnaces map[string]FurnaceDef
	Fuels    map[string]FuelDef
	Digest   string
}

type SmeltDef struct {
	ID          string      `json:"id"`
	Amount      int         `json:"amount"`
	Recipe      []ItemCount `json:"recipe"`
	Temperature int         `json:"temperature"`
	Duration    int         `json:"duration"`
}

type FurnaceDef struct {
	ID          string `json:"id"`
	Temperature int    `json:"temperature"`
}

type FuelDef struct {
	ID          string `json:"id"`
	Temperature int    `json:"temperature"`
	Duration    int    `json:"duration"`
}

type FoodCatalog struct {
	ByID   map[string]FoodDef
	Digest string
}

type FoodDef struct {
	ID       string             `json:"id"`
	Level    float64            `json:"level"`
	Nutrient map[string]float64 `json:"nutrient"`
}

type ItemCount struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadItems(filepath.Join(configDir, "items.json"), &c.Items); err != nil {
		return nil, err
	}
	if err := loadGather(filepath.Join(configDir, "gather.json"), &c.Gather); err != nil {
		return nil, err
	}
	if err := loadMine(filepath.Join(configDir, "mine.json"), &c.Mine); err != nil {
		return nil, err
	}
	if err := loadCraft(filepath.Join(configDir, "craft.json"), &c.Craft); err != nil {
		return nil, err
	}
	if err := loadSmelt(filepath.Join(configDir, "smelt.json"), &c.Smelt); err != nil {
		return nil, err
	}
	if err := loadFoods(filepath.Join(configDir, "foods.json"), &c.Foods); err != nil {
		return nil, err
	}

	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadItems(path string, out *ItemCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids
	return nil
}

func loadGather(path string, out *GatherCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []GatherDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("gather.json: %w", err)
	}
	out.ByID = map[string]GatherDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("gather.json: empty id")
		}
		out.ByID[d.ID] = d
	}
	return nil
}

func loadMine(path string, out *MineCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var doc struct {
		Targets []OreDef  `json:"targets"`
		Tools   []ToolDef `json:"tools"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("mine.json: %w", err)
	}
	out.Targets = map[string]OreDef{}
	for _, d := range doc.Targets {
		if d.ID == "" {
			return fmt.Errorf("mine.json: target with empty id")
		}
		out.Targets[d.ID] = d
	}
	out.Tools = map[string]ToolDef{}
	for _, d := range doc.Tools {
		if d.ID == "" {
			return fmt.Errorf("mine.json: tool with empty id")
		}
		out.Tools[d.ID] = d
	}
	return nil
}

func loadCraft(path string, out *CraftCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []CraftDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("craft.json: %w", err)
	}
	out.ByID = map[string]CraftDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("craft.json: empty id")
		}
		if len(d.Recipe) == 0 {
			return fmt.Errorf("craft.json: %s: empty recipe", d.ID)
		}
		out.ByID[d.ID] = d
	}
	return nil
}

func loadSmelt(path string, out *SmeltCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var doc struct {
		Targets  []SmeltDef   `json:"targets"`
		Furnaces []FurnaceDef `json:"furnaces"`
		Fuels    []FuelDef    `json:"fuels"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("smelt.json: %w", err)
	}
	out.Targets = map[string]SmeltDef{}
	for _, d := range doc.Targets {
		if d.ID == "" {
			return fmt.Errorf("smelt.json: target with empty id")
		}
		if len(d.Recipe) == 0 {
			return fmt.Errorf("smelt.json: %s: empty recipe", d.ID)
		}
		out.Targets[d.ID] = d
	}
	out.Furnaces = map[string]FurnaceDef{}
	for _, d := range doc.Furnaces {
		if d.ID == "" {
			return fmt.Errorf("smelt.json: furnace with empty id")
		}
		out.Furnaces[d.ID] = d
	}
	out.Fuels = map[string]FuelDef{}
	for _, d := range doc.Fuels {
		if d.ID == "" {
			return fmt.Errorf("smelt.json: fuel with empty id")
		}
		out.Fuels[d.ID] = d
	}
	return nil
}

func loadFoods(path string, out *FoodCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []FoodDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("foods.json: %w", err)
	}
	out.ByID = map[string]FoodDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("foods.json: empty id")
		}
		out.ByID[d.ID] = d
	}
	return nil
}
