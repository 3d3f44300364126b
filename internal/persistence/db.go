// Package persistence provides SQLite-based board storage.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexboard/internal/hexmap"
	"github.com/talgya/hexboard/internal/scenario"
	"github.com/talgya/hexboard/internal/topo"
)

// Board kinds understood by RestoreBoard.
const (
	KindSpiral = "spiral"
	KindBattle = "battle"
)

// ErrBoardMismatch is returned by RestoreBoard when a regenerated board does
// not reproduce the saved cells or district colors.
var ErrBoardMismatch = errors.New("persistence: restored board does not match saved board")

// DB wraps a SQLite connection for board persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		topology TEXT NOT NULL,
		radius REAL NOT NULL,
		nh INTEGER NOT NULL,
		mh INTEGER NOT NULL,
		palette_json TEXT NOT NULL DEFAULT '[]',
		default_color TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cells (
		board_id TEXT NOT NULL,
		name TEXT NOT NULL,
		hex_row INTEGER NOT NULL,
		hex_col INTEGER NOT NULL,
		district INTEGER NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (board_id, hex_row, hex_col)
	);

	CREATE TABLE IF NOT EXISTS districts (
		board_id TEXT NOT NULL,
		district INTEGER NOT NULL,
		color TEXT NOT NULL,
		PRIMARY KEY (board_id, district)
	);

	CREATE TABLE IF NOT EXISTS scenarios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		board_id TEXT NOT NULL,
		name TEXT NOT NULL,
		turn INTEGER NOT NULL,
		state_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS board_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scenarios_board ON scenarios(board_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Board is one row of the boards table.
type Board struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Kind     string  `db:"kind"`
	Topology string  `db:"topology"`
	Radius   float64 `db:"radius"`
	NH       int     `db:"nh"`
	MH       int     `db:"mh"`
	// Palette is the JSON array of district colors the board was built with.
	Palette      string `db:"palette_json"`
	DefaultColor string `db:"default_color"`
	CreatedAt    string `db:"created_at"`
}

// MapConfig returns the construction parameters the board was saved with.
func (b Board) MapConfig() (hexmap.Config, error) {
	t, err := topo.ParseTopology(b.Topology)
	if err != nil {
		return hexmap.Config{}, err
	}
	cfg := hexmap.Config{Radius: b.Radius, Topology: t, DefaultColor: b.DefaultColor}
	if b.Palette != "" {
		if err := json.Unmarshal([]byte(b.Palette), &cfg.Palette); err != nil {
			return hexmap.Config{}, fmt.Errorf("decode palette: %w", err)
		}
	}
	return cfg, nil
}

// Cell is one saved cell.
type Cell struct {
	Name     string `db:"name"`
	Row      int    `db:"hex_row"`
	Col      int    `db:"hex_col"`
	District int    `db:"district"`
	Label    string `db:"label"`
}

// SaveBoard writes m under a new id and returns the id. label, when not nil,
// supplies a per-cell text such as a terrain name.
func (db *DB) SaveBoard(m *hexmap.Map, kind string, label func(*hexmap.Hex) string) (string, error) {
	id := uuid.NewString()
	nh, mh := m.Orders()
	cfg := m.Config()
	palette, err := json.Marshal(cfg.Palette)
	if err != nil {
		return "", fmt.Errorf("encode palette: %w", err)
	}
	slog.Info("saving board", "id", id, "cells", m.HexCount(), "kind", kind)

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO boards
		(id, name, kind, topology, radius, nh, mh, palette_json, default_color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, m.Name, kind, cfg.Topology.String(), cfg.Radius, nh, mh,
		string(palette), cfg.DefaultColor,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert board: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO cells
		(board_id, name, hex_row, hex_col, district, label)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	var insertErr error
	m.ForEachHex(func(h *hexmap.Hex) {
		if insertErr != nil {
			return
		}
		district, _ := h.District()
		text := ""
		if label != nil {
			text = label(h)
		}
		if _, err := stmt.Exec(id, h.Name(), h.Row(), h.Col(), district, text); err != nil {
			insertErr = fmt.Errorf("insert cell %s: %w", h, err)
		}
	})
	if insertErr != nil {
		return "", insertErr
	}

	for _, d := range m.Districts() {
		color, _ := m.DistrictColor(d)
		if _, err := tx.Exec(
			"INSERT INTO districts (board_id, district, color) VALUES (?, ?, ?)",
			id, d, color,
		); err != nil {
			return "", fmt.Errorf("insert district %d: %w", d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Info("board saved", "id", id)
	return id, nil
}

// Board returns the saved board header.
func (db *DB) Board(id string) (Board, error) {
	var b Board
	err := db.conn.Get(&b, "SELECT * FROM boards WHERE id = ?", id)
	return b, err
}

// LoadCells returns the saved cells of a board in row, column order.
func (db *DB) LoadCells(boardID string) ([]Cell, error) {
	var cells []Cell
	err := db.conn.Select(&cells,
		`SELECT name, hex_row, hex_col, district, label FROM cells
		 WHERE board_id = ? ORDER BY hex_row, hex_col`,
		boardID,
	)
	return cells, err
}

// DistrictColors returns the saved color of each district of a board.
func (db *DB) DistrictColors(boardID string) (map[int]string, error) {
	var rows []struct {
		District int    `db:"district"`
		Color    string `db:"color"`
	}
	if err := db.conn.Select(&rows,
		"SELECT district, color FROM districts WHERE board_id = ? ORDER BY district",
		boardID,
	); err != nil {
		return nil, err
	}
	colors := make(map[int]string, len(rows))
	for _, r := range rows {
		colors[r.District] = r.Color
	}
	return colors, nil
}

// RestoreBoard rebuilds a saved board with its saved palette. Spiral and
// battle boards are regenerated from their orders; other kinds are replayed
// cell by cell. Every saved cell must resolve through Lookup with the same
// district and every saved district must come back with the same color.
func (db *DB) RestoreBoard(id string, opts ...hexmap.Option) (*hexmap.Map, error) {
	b, err := db.Board(id)
	if err != nil {
		return nil, fmt.Errorf("load board %s: %w", id, err)
	}
	cells, err := db.LoadCells(id)
	if err != nil {
		return nil, fmt.Errorf("load cells: %w", err)
	}
	colors, err := db.DistrictColors(id)
	if err != nil {
		return nil, fmt.Errorf("load district colors: %w", err)
	}
	cfg, err := b.MapConfig()
	if err != nil {
		return nil, err
	}
	m := hexmap.New(cfg, opts...)
	m.Name = b.Name

	switch b.Kind {
	case KindSpiral:
		_, err = m.MakeAllDistricts(b.NH, b.MH)
	case KindBattle:
		_, err = m.MakeBattleDistrict(b.NH, 0)
	default:
		err = replay(m, cells, colors)
	}
	if err != nil {
		return nil, fmt.Errorf("rebuild board %s: %w", id, err)
	}

	if m.HexCount() != len(cells) {
		return nil, fmt.Errorf("board %s has %d cells, saved %d: %w", id, m.HexCount(), len(cells), ErrBoardMismatch)
	}
	for _, c := range cells {
		h, err := m.Lookup(hexmap.IHex{Name: c.Name, Row: c.Row, Col: c.Col})
		if err != nil {
			return nil, fmt.Errorf("restore board %s: %w", id, err)
		}
		if d, _ := h.District(); d != c.District {
			return nil, fmt.Errorf("cell %s district %d, saved %d: %w", h, d, c.District, ErrBoardMismatch)
		}
	}
	for d, want := range colors {
		if got, _ := m.DistrictColor(d); got != want {
			return nil, fmt.Errorf("district %d color %q, saved %q: %w", d, got, want, ErrBoardMismatch)
		}
	}
	slog.Info("board restored", "id", id, "cells", m.HexCount())
	return m, nil
}

func replay(m *hexmap.Map, cells []Cell, colors map[int]string) error {
	for _, c := range cells {
		if _, err := m.AddHex(c.Row, c.Col, c.District); err != nil {
			return err
		}
	}
	for d, c := range colors {
		m.SetDistrictColor(d, c)
	}
	return nil
}

// SaveScenario appends a scenario state for a board.
func (db *DB) SaveScenario(boardID string, elt scenario.SetupElt) error {
	data, err := json.Marshal(elt)
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT INTO scenarios (board_id, name, turn, state_json) VALUES (?, ?, ?, ?)",
		boardID, elt.Name, elt.Turn, string(data),
	)
	return err
}

// LoadScenarios returns the scenario states of a board in save order.
func (db *DB) LoadScenarios(boardID string) ([]scenario.SetupElt, error) {
	var states []string
	if err := db.conn.Select(&states,
		"SELECT state_json FROM scenarios WHERE board_id = ? ORDER BY id",
		boardID,
	); err != nil {
		return nil, err
	}
	elts := make([]scenario.SetupElt, 0, len(states))
	for i, s := range states {
		var elt scenario.SetupElt
		if err := json.Unmarshal([]byte(s), &elt); err != nil {
			return nil, fmt.Errorf("decode scenario %d: %w", i, err)
		}
		elts = append(elts, elt)
	}
	return elts, nil
}

// SaveMeta stores a key-value pair in board metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO board_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM board_meta WHERE key = ?", key)
	return value, err
}
