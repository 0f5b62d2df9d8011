package rpg

// User is the aggregate root: the unit of load/save and of one activity
// transaction. Every construction allocates fresh sub-entities; two users
// never alias the same position, health, inventory or ability tree.
type User struct {
	ID          string
	DisplayName string

	Position  *Position
	Health    *Health
	Finance   *Finance
	Inventory *Inventory
	Abilities *AbilityTree
}
