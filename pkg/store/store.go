// Package store persists preset overrides and the history of generation
// runs in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hazyhaar/zemailer/pkg/preset"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a preset id is not in the store.
var ErrNotFound = preset.ErrNotFound

// Store wraps the zemailer SQLite database.
type Store struct {
	db    *sql.DB
	idGen func() string
	now   func() time.Time
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS presets (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			templates   TEXT NOT NULL,
			domain      TEXT NOT NULL DEFAULT '',
			country     TEXT NOT NULL DEFAULT '',
			source      TEXT NOT NULL DEFAULT '',
			updated_at  INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			preset_id   TEXT NOT NULL DEFAULT '',
			templates   TEXT NOT NULL,
			domain      TEXT NOT NULL DEFAULT '',
			input       TEXT NOT NULL DEFAULT '',
			output      TEXT NOT NULL DEFAULT '',
			generated   INTEGER NOT NULL,
			skipped     INTEGER NOT NULL,
			created_at  INTEGER NOT NULL
		)`,
	}
	for _, q := range ddl {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &Store{db: db, idGen: newID, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed inserts the given presets with INSERT OR IGNORE: rows already in the
// store are left untouched so manual overrides survive restarts.
func (s *Store) Seed(presets []preset.Preset) error {
	const q = `INSERT OR IGNORE INTO presets
		(id, name, templates, domain, country, source, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := s.now().Unix()
	for _, p := range presets {
		tmpl, err := encodeList(p.Templates)
		if err != nil {
			return fmt.Errorf("seed %s: %w", p.ID, err)
		}
		if _, err := s.db.Exec(q, p.ID, p.Name, tmpl, p.Domain, p.Country, p.Source, now); err != nil {
			return fmt.Errorf("seed %s: %w", p.ID, err)
		}
	}
	return nil
}

// GetPreset returns the stored preset, or ErrNotFound.
func (s *Store) GetPreset(id string) (preset.Preset, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	var (
		p    preset.Preset
		tmpl string
	)
	err := s.db.QueryRow(`SELECT id, name, templates, domain, country, source
		FROM presets WHERE id = ?`, id).Scan(&p.ID, &p.Name, &tmpl, &p.Domain, &p.Country, &p.Source)
	if errors.Is(err, sql.ErrNoRows) {
		return preset.Preset{}, fmt.Errorf("preset %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return preset.Preset{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	if p.Templates, err = decodeList(tmpl); err != nil {
		return preset.Preset{}, fmt.Errorf("get preset %s: %w", id, err)
	}
	return p, nil
}

// SetDomain overrides the domain of a stored preset.
func (s *Store) SetDomain(id, domain string) error {
	return s.update(id, `UPDATE presets SET domain = ?, updated_at = ? WHERE id = ?`, domain)
}

// SetTemplates overrides the templates of a stored preset.
func (s *Store) SetTemplates(id string, templates []string) error {
	tmpl, err := encodeList(templates)
	if err != nil {
		return fmt.Errorf("set templates for %s: %w", id, err)
	}
	return s.update(id, `UPDATE presets SET templates = ?, updated_at = ? WHERE id = ?`, tmpl)
}

func (s *Store) update(id, q, value string) error {
	res, err := s.db.Exec(q, value, s.now().Unix(), id)
	if err != nil {
		return fmt.Errorf("update preset %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("preset %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListPresets returns every stored preset ordered by id.
func (s *Store) ListPresets() ([]preset.Preset, error) {
	rows, err := s.db.Query(`SELECT id, name, templates, domain, country, source
		FROM presets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	var out []preset.Preset
	for rows.Next() {
		var (
			p    preset.Preset
			tmpl string
		)
		if err := rows.Scan(&p.ID, &p.Name, &tmpl, &p.Domain, &p.Country, &p.Source); err != nil {
			return nil, fmt.Errorf("scan preset: %w", err)
		}
		if p.Templates, err = decodeList(tmpl); err != nil {
			return nil, fmt.Errorf("preset %s: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	return string(data), err
}

func decodeList(s string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}
