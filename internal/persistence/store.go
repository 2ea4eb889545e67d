// Package persistence provides SQLite-based world snapshot storage.
// Loading replays grid and overlay construction, so every adjacency
// and placement invariant is re-validated; a corrupted save fails
// loudly instead of producing an inconsistent world.
package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/gravitas-games/hexland/internal/worldmap"
	"github.com/gravitas-games/hexland/pkg/hexgeom"
	"github.com/gravitas-games/hexland/pkg/hexgrid"
)

// Store wraps a SQLite connection for world snapshots.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cells (
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		terrain INTEGER NOT NULL,
		PRIMARY KEY (q, r)
	);

	CREATE TABLE IF NOT EXISTS civilizations (
		id TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS cities (
		q1 INTEGER NOT NULL, r1 INTEGER NOT NULL,
		q2 INTEGER NOT NULL, r2 INTEGER NOT NULL,
		q3 INTEGER NOT NULL, r3 INTEGER NOT NULL,
		owner TEXT NOT NULL,
		level INTEGER NOT NULL,
		PRIMARY KEY (q1, r1, q2, r2, q3, r3)
	);

	CREATE TABLE IF NOT EXISTS roads (
		q1 INTEGER NOT NULL, r1 INTEGER NOT NULL,
		q2 INTEGER NOT NULL, r2 INTEGER NOT NULL,
		owner TEXT NOT NULL,
		PRIMARY KEY (q1, r1, q2, r2)
	);`
	_, err := s.conn.Exec(schema)
	return err
}

// Save writes a full snapshot of the overlay in one transaction,
// replacing any previous snapshot.
func (s *Store) Save(o *worldmap.Overlay) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"cells", "civilizations", "cities", "roads"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, c := range o.Grid().Hexes() {
		terr, err := o.TerrainAt(c)
		if err != nil {
			return fmt.Errorf("terrain of %v: %w", c, err)
		}
		if _, err := tx.Exec(
			"INSERT INTO cells (q, r, terrain) VALUES (?, ?, ?)",
			c.Q, c.R, terr,
		); err != nil {
			return fmt.Errorf("save cell %v: %w", c, err)
		}
	}

	for _, id := range o.Civilizations() {
		if _, err := tx.Exec("INSERT INTO civilizations (id) VALUES (?)", string(id)); err != nil {
			return fmt.Errorf("save civilization %q: %w", id, err)
		}
	}

	for _, city := range o.Cities() {
		h := city.Vertex.Hexes()
		if _, err := tx.Exec(
			"INSERT INTO cities (q1, r1, q2, r2, q3, r3, owner, level) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			h[0].Q, h[0].R, h[1].Q, h[1].R, h[2].Q, h[2].R, string(city.Owner), city.Level,
		); err != nil {
			return fmt.Errorf("save city at %v: %w", city.Vertex, err)
		}
	}

	for _, road := range o.Roads() {
		h := road.Edge.Hexes()
		if _, err := tx.Exec(
			"INSERT INTO roads (q1, r1, q2, r2, owner) VALUES (?, ?, ?, ?, ?)",
			h[0].Q, h[0].R, h[1].Q, h[1].R, string(road.Owner),
		); err != nil {
			return fmt.Errorf("save road at %v: %w", road.Edge, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load rebuilds the overlay from the stored snapshot by replaying
// construction and every placement. Returns (nil, nil) when the store
// holds no snapshot.
func (s *Store) Load() (*worldmap.Overlay, error) {
	type cellRow struct {
		Q       int   `db:"q"`
		R       int   `db:"r"`
		Terrain uint8 `db:"terrain"`
	}
	var cellRows []cellRow
	if err := s.conn.Select(&cellRows, "SELECT q, r, terrain FROM cells ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load cells: %w", err)
	}
	if len(cellRows) == 0 {
		return nil, nil
	}

	cells := make([]hexgeom.Axial, 0, len(cellRows))
	for _, row := range cellRows {
		cells = append(cells, hexgeom.Axial{Q: row.Q, R: row.R})
	}
	o := worldmap.New(hexgrid.New(cells))
	for _, row := range cellRows {
		if err := o.SetTerrain(hexgeom.Axial{Q: row.Q, R: row.R}, worldmap.Terrain(row.Terrain)); err != nil {
			return nil, fmt.Errorf("load terrain: %w", err)
		}
	}

	var civs []string
	if err := s.conn.Select(&civs, "SELECT id FROM civilizations ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load civilizations: %w", err)
	}
	for _, id := range civs {
		o.RegisterCivilization(worldmap.CivID(id))
	}

	type cityRow struct {
		Q1    int    `db:"q1"`
		R1    int    `db:"r1"`
		Q2    int    `db:"q2"`
		R2    int    `db:"r2"`
		Q3    int    `db:"q3"`
		R3    int    `db:"r3"`
		Owner string `db:"owner"`
		Level int    `db:"level"`
	}
	var cityRows []cityRow
	if err := s.conn.Select(&cityRows, "SELECT q1, r1, q2, r2, q3, r3, owner, level FROM cities ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	for _, row := range cityRows {
		v, err := hexgeom.NewVertex(
			hexgeom.Axial{Q: row.Q1, R: row.R1},
			hexgeom.Axial{Q: row.Q2, R: row.R2},
			hexgeom.Axial{Q: row.Q3, R: row.R3},
		)
		if err != nil {
			return nil, fmt.Errorf("load city: %w", err)
		}
		if err := o.AddCityLevel(v, worldmap.CivID(row.Owner), row.Level); err != nil {
			return nil, fmt.Errorf("load city at %v: %w", v, err)
		}
	}

	type roadRow struct {
		Q1    int    `db:"q1"`
		R1    int    `db:"r1"`
		Q2    int    `db:"q2"`
		R2    int    `db:"r2"`
		Owner string `db:"owner"`
	}
	var roadRows []roadRow
	if err := s.conn.Select(&roadRows, "SELECT q1, r1, q2, r2, owner FROM roads ORDER BY rowid"); err != nil {
		return nil, fmt.Errorf("load roads: %w", err)
	}
	for _, row := range roadRows {
		e, err := hexgeom.NewEdge(
			hexgeom.Axial{Q: row.Q1, R: row.R1},
			hexgeom.Axial{Q: row.Q2, R: row.R2},
		)
		if err != nil {
			return nil, fmt.Errorf("load road: %w", err)
		}
		if err := o.AddRoad(e, worldmap.CivID(row.Owner)); err != nil {
			return nil, fmt.Errorf("load road at %v: %w", e, err)
		}
	}

	return o, nil
}
