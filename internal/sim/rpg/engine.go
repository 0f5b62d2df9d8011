package rpg

import (
	"time"

	"craftrpg.chat/internal/protocol"
	"craftrpg.chat/internal/sim/catalogs"
	"craftrpg.chat/internal/sim/tuning"
)

// Activity names accepted by DoActivity.
const (
	ActivityGather = "Gather"
	ActivityMine   = "Mine"
	ActivityCraft  = "Craft"
	ActivitySmelt  = "Smelt"
	ActivityEat    = "Eat"
)

var activityNames = []string{ActivityGather, ActivityMine, ActivityCraft, ActivitySmelt, ActivityEat}

// Engine evaluates activities against the rule tables. It holds no user
// state; all mutation happens on the aggregate passed in. Randomness and
// clock are injectable for tests.
type Engine struct {
	cats *catalogs.Catalogs
	tune tuning.Tuning

	rand func() float64
	now  func() time.Time
}

type Config struct {
	Catalogs *catalogs.Catalogs
	Tuning   tuning.Tuning

	// Seed feeds the default PRNG; ignored when Rand is set.
	Seed int64
	Rand func() float64
	Now  func() time.Time
}

func New(cfg Config) *Engine {
	e := &Engine{
		cats: cfg.Catalogs,
		tune: cfg.Tuning,
		rand: cfg.Rand,
		now:  cfg.Now,
	}
	if e.rand == nil {
		rng := seededRNG(cfg.Seed)
		e.rand = rng.Float64
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

func (e *Engine) Catalogs() *catalogs.Catalogs { return e.cats }
func (e *Engine) Tuning() tuning.Tuning        { return e.tune }

// NewUser builds a fresh aggregate from the tuning defaults: spawn
// position, full health, starting finance, starter items and the
// configured starting abilities.
func (e *Engine) NewUser(id, displayName string) *User {
	abilities := make([]Ability, 0, len(e.tune.Ability))
	for _, name := range e.tune.AbilityNames() {
		abilities = append(abilities, Ability{Name: name, Experience: e.tune.Ability[name].Experience})
	}
	inv := NewInventory()
	for _, si := range e.tune.StarterItems {
		inv.AddItems(NewItem(e.cats, si.ID, si.Amount))
	}
	p := e.tune.Position
	h := e.tune.Health
	f := e.tune.Finance
	return &User{
		ID:          id,
		DisplayName: displayName,
		Position:    NewPosition(p.X, p.Y, p.Z, p.Ground),
		Health:      NewHealth(h.Health.Level, h.Saturation.Level, h.Nutrient, h.Saturation.Min(), h.Saturation.Max()),
		Finance:     NewFinance(f.Deposit, f.Debt, f.InterestRate),
		Inventory:   inv,
		Abilities:   NewAbilityTree(abilities...),
	}
}

// NewItem exposes default-based item construction to collaborators
// (persistence rebuilds instances, transport builds previews).
func (e *Engine) NewItem(id string, amount int) *Item {
	return NewItem(e.cats, id, amount)
}

// ActivityRequest carries the per-activity parameters of one invocation.
// Tool, fuel and furnace are addressed by instance uid; craft/smelt
// targets and food by item id. Times defaults to 1.
type ActivityRequest struct {
	Activity string

	ToolUID    string
	TargetID   string
	FuelUID    string
	FurnaceUID string
	Times      int
}

// ActivityResult reports what a successful activity yielded and consumed.
// Consumed entries carry negative amounts. For Smelt, Yield previews the
// pending payload (not yet in the inventory) and Furnace is the stamped
// furnace instance.
type ActivityResult struct {
	Activity string
	Yield    []*Item
	Consumed []*Item
	Furnace  *Item
	// Saturation restored by Eat.
	Restored float64
}

// DoActivity validates, resolves and applies one activity. Either it
// fully succeeds or it returns an error with the aggregate unchanged.
func (e *Engine) DoActivity(u *User, req ActivityRequest) (*ActivityResult, error) {
	if req.Times < 1 {
		req.Times = 1
	}
	switch req.Activity {
	case ActivityGather:
		return e.doGather(u)
	case ActivityMine:
		return e.doMine(u, req)
	case ActivityCraft:
		return e.doCraft(u, req)
	case ActivitySmelt:
		return e.doSmelt(u, req)
	case ActivityEat:
		return e.doEat(u, req)
	default:
		reason := "unknown activity: " + req.Activity
		if s := catalogs.Suggest(req.Activity, activityNames); s != "" {
			reason += " (did you mean " + s + "?)"
		}
		return nil, protocol.Validation(reason)
	}
}

// cost and experience lookups fall back to zero when an activity is not
// tuned, so a sparse tuning.yaml stays usable.
func (e *Engine) activityCost(name string) float64 {
	return e.tune.Activities[name].Cost
}

func (e *Engine) activityExperience(name string) int {
	return e.tune.Activities[name].Experience
}

func (e *Engine) checkStamina(u *User, activity string) error {
	if u.Health.Saturation-e.activityCost(activity) < 0 {
		return protocol.Precondition("not enough stamina")
	}
	return nil
}

func (e *Engine) spendStamina(u *User, activity string) {
	u.Health.AddSaturation(-e.activityCost(activity))
}
