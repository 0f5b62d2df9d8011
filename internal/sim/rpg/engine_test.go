package rpg

import (
	"strings"
	"testing"
	"time"

	"craftrpg.chat/internal/protocol"
)

func TestNewUserDefaults(t *testing.T) {
	e := testEngine(seqRand(0), fixedNow(time.Unix(1700000000, 0)))
	u := e.NewUser("u1", "Alice")

	if u.Position.Coordinate() != [3]int{0, 0, 64} || u.Position.IsGround() != AtGround {
		t.Fatalf("spawn position = %v", u.Position.Coordinate())
	}
	if u.Health.Saturation != 10 || u.Health.Health != 20 {
		t.Fatalf("health defaults = %v/%v", u.Health.Health, u.Health.Saturation)
	}
	if u.Finance.Total() != 100 {
		t.Fatalf("finance total = %d, want 100", u.Finance.Total())
	}

	all := u.Abilities.All()
	if len(all) != 4 {
		t.Fatalf("starting abilities = %d, want 4", len(all))
	}
	for _, a := range all {
		if a.Experience != 0 {
			t.Fatalf("ability %s starts at %d", a.Name, a.Experience)
		}
	}

	pick := u.Inventory.FindAllByID("tool:pick")
	if len(pick) != 1 || pick[0].Tag.Durability == nil || *pick[0].Tag.Durability != 10 {
		t.Fatalf("starter tool = %+v", pick)
	}
	apples := u.Inventory.StackOf("food:apple")
	if apples == nil || apples.Amount != 3 {
		t.Fatalf("starter apples = %+v", apples)
	}
}

func TestUnknownActivitySuggests(t *testing.T) {
	e := testEngine(seqRand(0), fixedNow(time.Unix(1700000000, 0)))
	u := e.NewUser("u1", "Alice")

	_, err := e.DoActivity(u, ActivityRequest{Activity: "Gathr"})
	if protocol.CodeOf(err) != protocol.ErrValidation {
		t.Fatalf("unknown activity: %v, want %s", err, protocol.ErrValidation)
	}
	if !strings.Contains(err.Error(), "Gather") {
		t.Fatalf("expected a suggestion in %q", err.Error())
	}
}

func TestTimesDefaultsToOne(t *testing.T) {
	e := testEngine(seqRand(0), fixedNow(time.Unix(1700000000, 0)))
	u := e.NewUser("u1", "Alice")
	u.Health.Saturation = 5

	res, err := e.DoActivity(u, ActivityRequest{Activity: ActivityEat, TargetID: "food:apple"})
	if err != nil {
		t.Fatalf("eat: %v", err)
	}
	if res.Restored != 2 {
		t.Fatalf("restored = %v, want one unit's worth", res.Restored)
	}
	if st := u.Inventory.StackOf("food:apple"); st.Amount != 2 {
		t.Fatalf("apples left = %d, want 2", st.Amount)
	}
}
