package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/renokit/reno/models"
	_ "modernc.org/sqlite"
)

// Client is a thin wrapper around a sql.DB holding a local snapshot of the
// material catalog, so browsing works without the backend (on site, usually
// without signal). Use NewClient to construct it.
//
// The underlying SQLite driver is modernc.org/sqlite to avoid CGO.
// Driver name: "sqlite"
// DSN: path to the database file (relative or absolute)
//
// Note: SQLite is not highly concurrent. We limit MaxOpenConns to 1 by
// default to avoid locking issues for this CLI tool.
//
// Close the client when finished to free resources.
type Client struct {
	DB   *sql.DB
	Path string
}

// NewClient opens a connection to the given SQLite database path, verifies
// it, and makes sure the catalog table exists. Returns an error if the path
// is empty or the connection cannot be established.
func NewClient(path string) (*Client, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cache database path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite + CLI: keep it simple, avoid many concurrent connections
	db.SetMaxOpenConns(1)
	// No idle connections needed for a short-lived CLI
	db.SetMaxIdleConns(1)

	// Verify connectivity
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	c := &Client{DB: db, Path: path}
	if err := c.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) ensureSchema() error {
	_, err := c.DB.Exec(`CREATE TABLE IF NOT EXISTS materials (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		unit TEXT NOT NULL DEFAULT '',
		unit_price REAL NOT NULL DEFAULT 0,
		color_hex TEXT NOT NULL DEFAULT '',
		vendor_id INTEGER NOT NULL DEFAULT 0,
		vendor_name TEXT NOT NULL DEFAULT '',
		vendor_rating REAL NOT NULL DEFAULT 0,
		archived INTEGER NOT NULL DEFAULT 0
	)`)
	if err != nil {
		return fmt.Errorf("create materials table: %w", err)
	}
	return nil
}

// ReplaceMaterials swaps the cached catalog for the given snapshot in one
// transaction, so a failed refresh never leaves a half-written cache.
func (c *Client) ReplaceMaterials(materials []models.Material) error {
	tx, err := c.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin cache refresh: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM materials`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear materials: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO materials
		(id, name, category, unit, unit_price, color_hex, vendor_id, vendor_name, vendor_rating, archived)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, m := range materials {
		archived := 0
		if m.Archived {
			archived = 1
		}
		if _, err := stmt.Exec(m.Id, m.Name, m.Category, m.Unit, m.UnitPrice, m.ColorHex,
			m.Vendor.Id, m.Vendor.Name, m.Vendor.Rating, archived); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert material %d: %w", m.Id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache refresh: %w", err)
	}
	return nil
}

// ListMaterials reads the cached catalog back, ordered the way the backend
// orders its listing.
func (c *Client) ListMaterials() ([]models.Material, error) {
	rows, err := c.DB.Query(`SELECT id, name, category, unit, unit_price, color_hex,
		vendor_id, vendor_name, vendor_rating, archived
		FROM materials ORDER BY category, unit_price, name, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []models.Material
	for rows.Next() {
		var m models.Material
		var archived int
		if err := rows.Scan(&m.Id, &m.Name, &m.Category, &m.Unit, &m.UnitPrice, &m.ColorHex,
			&m.Vendor.Id, &m.Vendor.Name, &m.Vendor.Rating, &archived); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		m.Archived = archived != 0
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read materials: %w", err)
	}
	return out, nil
}

// Close closes the underlying sql.DB. Safe to call multiple times or on a nil client.
func (c *Client) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
