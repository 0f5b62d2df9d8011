package userdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"craftrpg.chat/internal/protocol"
	"craftrpg.chat/internal/sim/rpg"
)

// Store keeps one sqlite database per user id under its data directory.
// Each Load/Save opens the user's database for the duration of the call;
// an activity invocation is one load, one engine call, one save.
type Store struct {
	dir    string
	engine *rpg.Engine
	now    func() time.Time
}

type Config struct {
	Dir    string
	Engine *rpg.Engine
	// Now drives the reconciliation sweep; defaults to time.Now.
	Now func() time.Time
}

func Open(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("empty data dir")
	}
	if cfg.Engine == nil {
		return nil, fmt.Errorf("nil engine")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{dir: cfg.Dir, engine: cfg.Engine, now: cfg.Now}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".db")
}

func (s *Store) openDB(id string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path(id))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	for _, p := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS position (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS health (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS finance (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS inventory (
			uid TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			display_name TEXT NOT NULL,
			amount INTEGER NOT NULL,
			tag TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ability (
			name TEXT PRIMARY KEY,
			experience INTEGER NOT NULL
		);`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// tagJSON is the persisted form of an item tag, keeping the original
// key layout of the tag column.
type tagJSON struct {
	Durability *int         `json:"durability,omitempty"`
	Pending    *int64       `json:"pending,omitempty"`
	Result     []resultJSON `json:"result,omitempty"`
}

type resultJSON struct {
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// LoadUser loads and reconciles the aggregate: expired or zeroed items
// are swept and due pending smelts resolved before the user is returned.
// A user that was never saved is synthesized from the tuning defaults.
func (s *Store) LoadUser(ctx context.Context, id, displayName string) (*rpg.User, error) {
	db, err := s.openDB(id)
	if err != nil {
		return nil, protocol.Storage(err)
	}
	defer db.Close()

	var savedAt string
	err = db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key='saved_at'`).Scan(&savedAt)
	if err == sql.ErrNoRows {
		// Never persisted: fresh defaults, nothing to sweep.
		return s.engine.NewUser(id, displayName), nil
	}
	if err != nil {
		return nil, protocol.Storage(err)
	}

	u := s.engine.NewUser(id, displayName)
	u.Inventory = rpg.NewInventory()

	if err := s.loadPosition(ctx, db, u); err != nil {
		return nil, protocol.Storage(err)
	}
	if err := s.loadHealth(ctx, db, u); err != nil {
		return nil, protocol.Storage(err)
	}
	if err := s.loadFinance(ctx, db, u); err != nil {
		return nil, protocol.Storage(err)
	}
	if err := s.loadInventory(ctx, db, u); err != nil {
		return nil, protocol.Storage(err)
	}
	if err := s.loadAbilities(ctx, db, u); err != nil {
		return nil, protocol.Storage(err)
	}

	rpg.ReconcileInventory(u.Inventory, s.engine.Catalogs(), s.now())
	return u, nil
}

func (s *Store) loadPosition(ctx context.Context, db *sql.DB, u *rpg.User) error {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM position`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case "x":
			u.Position.X = value
		case "y":
			u.Position.Y = value
		case "z":
			u.Position.Z = value
		}
	}
	return rows.Err()
}

func (s *Store) loadHealth(ctx context.Context, db *sql.DB, u *rpg.User) error {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM health`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case "health":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("health row: %w", err)
			}
			u.Health.Health = f
		case "saturation":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("saturation row: %w", err)
			}
			u.Health.Saturation = f
		case "nutrient":
			n := map[string]float64{}
			if err := json.Unmarshal([]byte(value), &n); err != nil {
				return fmt.Errorf("nutrient row: %w", err)
			}
			u.Health.Nutrient = n
		}
	}
	return rows.Err()
}

func (s *Store) loadFinance(ctx context.Context, db *sql.DB, u *rpg.User) error {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM finance`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case "deposit":
			u.Finance.Deposit = value
		case "debt":
			u.Finance.Debt = value
		}
	}
	return rows.Err()
}

func (s *Store) loadInventory(ctx context.Context, db *sql.DB, u *rpg.User) error {
	rows, err := db.QueryContext(ctx, `SELECT uid, id, display_name, amount, tag FROM inventory`)
	if err != nil {
		return err
	}
	defer rows.Close()
	cats := s.engine.Catalogs()
	var items []*rpg.Item
	for rows.Next() {
		var uid, itemID, displayName, rawTag string
		var amount int
		if err := rows.Scan(&uid, &itemID, &displayName, &amount, &rawTag); err != nil {
			return err
		}
		var tj tagJSON
		if rawTag != "" {
			if err := json.Unmarshal([]byte(rawTag), &tj); err != nil {
				return fmt.Errorf("tag of %s: %w", uid, err)
			}
		}
		it := &rpg.Item{
			ID:          itemID,
			DisplayName: displayName,
			Amount:      amount,
			UID:         uid,
			Stackable:   true,
		}
		if def, ok := cats.Items.Defs[itemID]; ok {
			it.Stackable = def.Stackable
		}
		it.Tag.Durability = tj.Durability
		it.Tag.Pending = tj.Pending
		for _, rc := range tj.Result {
			it.Tag.Result = append(it.Tag.Result, rpg.ItemCount{ID: rc.ID, Amount: rc.Amount})
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	u.Inventory = rpg.NewInventory(items...)
	return nil
}

func (s *Store) loadAbilities(ctx context.Context, db *sql.DB, u *rpg.User) error {
	rows, err := db.QueryContext(ctx, `SELECT name, experience FROM ability`)
	if err != nil {
		return err
	}
	defer rows.Close()
	var abilities []rpg.Ability
	for rows.Next() {
		var a rpg.Ability
		if err := rows.Scan(&a.Name, &a.Experience); err != nil {
			return err
		}
		abilities = append(abilities, a)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(abilities) > 0 {
		u.Abilities = rpg.NewAbilityTree(abilities...)
	}
	return nil
}

// SaveUser persists the whole aggregate in one transaction. Each table is
// rewritten; instances pruned by the sweep simply never come back.
func (s *Store) SaveUser(ctx context.Context, u *rpg.User) error {
	db, err := s.openDB(u.ID)
	if err != nil {
		return protocol.Storage(err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return protocol.Storage(err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveAll(tx, u); err != nil {
		return protocol.Storage(err)
	}
	if err := tx.Commit(); err != nil {
		return protocol.Storage(err)
	}
	return nil
}

func (s *Store) saveAll(tx *sql.Tx, u *rpg.User) error {
	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('saved_at',?)`, savedAt); err != nil {
		return err
	}

	for _, table := range []string{"position", "health", "finance", "inventory", "ability"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return err
		}
	}

	posStmt := `INSERT INTO position(key,value) VALUES(?,?)`
	for _, kv := range []struct {
		k string
		v int
	}{{"x", u.Position.X}, {"y", u.Position.Y}, {"z", u.Position.Z}} {
		if _, err := tx.Exec(posStmt, kv.k, kv.v); err != nil {
			return err
		}
	}

	nutrient, err := json.Marshal(u.Health.Nutrient)
	if err != nil {
		return err
	}
	healthStmt := `INSERT INTO health(key,value) VALUES(?,?)`
	for _, kv := range []struct{ k, v string }{
		{"health", strconv.FormatFloat(u.Health.Health, 'g', -1, 64)},
		{"saturation", strconv.FormatFloat(u.Health.Saturation, 'g', -1, 64)},
		{"nutrient", string(nutrient)},
	} {
		if _, err := tx.Exec(healthStmt, kv.k, kv.v); err != nil {
			return err
		}
	}

	finStmt := `INSERT INTO finance(key,value) VALUES(?,?)`
	for _, kv := range []struct {
		k string
		v int
	}{{"deposit", u.Finance.Deposit}, {"debt", u.Finance.Debt}} {
		if _, err := tx.Exec(finStmt, kv.k, kv.v); err != nil {
			return err
		}
	}

	invStmt := `INSERT INTO inventory(uid,id,display_name,amount,tag) VALUES(?,?,?,?,?)`
	for _, it := range u.Inventory.Items() {
		tj := tagJSON{
			Durability: it.Tag.Durability,
			Pending:    it.Tag.Pending,
		}
		for _, rc := range it.Tag.Result {
			tj.Result = append(tj.Result, resultJSON{ID: rc.ID, Amount: rc.Amount})
		}
		rawTag, err := json.Marshal(tj)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(invStmt, it.UID, it.ID, it.DisplayName, it.Amount, string(rawTag)); err != nil {
			return err
		}
	}

	abilityStmt := `INSERT INTO ability(name,experience) VALUES(?,?)`
	for _, a := range u.Abilities.All() {
		if _, err := tx.Exec(abilityStmt, a.Name, a.Experience); err != nil {
			return err
		}
	}
	return nil
}
