package protocol

// Wire messages exchanged with the command collaborator. The collaborator
// owns all user-facing presentation; the engine only reports state, item
// deltas and E_* errors.

const (
	TypeAct     = "ACT"
	TypeCatalog = "CATALOG"
	TypeUser    = "USER"

	TypeResult        = "RESULT"
	TypeCatalogResult = "CATALOG_RESULT"
	TypeUserState     = "USER_STATE"
	TypeError         = "ERROR"
)

// Catalog query kinds.
const (
	QueryGather = "GATHER"
	QueryOre    = "ORE"
	QueryCraft  = "CRAFT"
	QuerySmelt  = "SMELT"
	QueryFuel   = "FUEL"
	QueryRecipe = "RECIPE"
)

// ACT (client -> server): one activity invocation for one user.
type ActMsg struct {
	Type        string `json:"type"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	Activity    string `json:"activity"`

	ToolUID    string `json:"tool_uid,omitempty"`
	TargetID   string `json:"target_id,omitempty"`
	FoodUID    string `json:"food_uid,omitempty"`
	FuelUID    string `json:"fuel_uid,omitempty"`
	FurnaceUID string `json:"furnace_uid,omitempty"`
	Times      int    `json:"times,omitempty"`
}

// CATALOG (client -> server): read-only catalog query.
type CatalogMsg struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
	Query  string `json:"query"`
	ID     string `json:"id,omitempty"`
}

// USER (client -> server): load and report the aggregate.
type UserMsg struct {
	Type        string `json:"type"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
}

// ItemStack is the wire form of one inventory instance.
type ItemStack struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name,omitempty"`
	Amount      int      `json:"amount"`
	UID         string   `json:"uid,omitempty"`
	Tag         *ItemTag `json:"tag,omitempty"`
}

type ItemTag struct {
	Durability *int        `json:"durability,omitempty"`
	Pending    *int64      `json:"pending,omitempty"`
	Result     []ItemCount `json:"result,omitempty"`
}

type ItemCount struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// RESULT (server -> client): outcome of a successful activity.
type ResultMsg struct {
	Type     string      `json:"type"`
	Activity string      `json:"activity"`
	Yield    []ItemStack `json:"yield,omitempty"`
	Consumed []ItemStack `json:"consumed,omitempty"`
	Furnace  *ItemStack  `json:"furnace,omitempty"`
	// Saturation restored by Eat.
	Restored float64 `json:"restored,omitempty"`
}

// CATALOG_RESULT (server -> client).
type CatalogResultMsg struct {
	Type    string       `json:"type"`
	Query   string       `json:"query"`
	Items   []ItemStack  `json:"items,omitempty"`
	Recipes []RecipeView `json:"recipes,omitempty"`
	Fuels   []FuelView   `json:"fuels,omitempty"`
}

type RecipeView struct {
	Result      ItemCount   `json:"result"`
	Ingredients []ItemCount `json:"ingredients"`
	// Smelt recipes only.
	Temperature int `json:"temperature,omitempty"`
	Duration    int `json:"duration,omitempty"`
}

type FuelView struct {
	Item        ItemStack `json:"item"`
	Temperature int       `json:"temperature"`
	Duration    int       `json:"duration"`
}

// USER_STATE (server -> client): snapshot of one aggregate.
type UserStateMsg struct {
	Type        string             `json:"type"`
	UserID      string             `json:"user_id"`
	DisplayName string             `json:"display_name,omitempty"`
	Position    [3]int             `json:"position"`
	Saturation  float64            `json:"saturation"`
	Health      float64            `json:"health"`
	Deposit     int                `json:"deposit"`
	Debt        int                `json:"debt"`
	Inventory   []ItemStack        `json:"inventory"`
	Abilities   []AbilityView      `json:"abilities"`
	Nutrients   map[string]float64 `json:"nutrients,omitempty"`
}

type AbilityView struct {
	Name            string `json:"name"`
	Experience      int    `json:"experience"`
	Level           int    `json:"level"`
	UpgradeRequired int    `json:"upgrade_required"`
}

// ERROR (server -> client).
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

func ErrorReply(err error) ErrorMsg {
	code := CodeOf(err)
	if code == "" {
		code = ErrStorage
	}
	return ErrorMsg{Type: TypeError, Code: code, Message: err.Error()}
}
