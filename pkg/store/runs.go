package store

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Run is one recorded generation run.
type Run struct {
	ID        string    `json:"id"`
	PresetID  string    `json:"preset_id,omitempty"`
	Templates []string  `json:"templates"`
	Domain    string    `json:"domain,omitempty"`
	Input     string    `json:"input,omitempty"`
	Output    string    `json:"output,omitempty"`
	Generated int       `json:"generated"`
	Skipped   int       `json:"skipped"`
	CreatedAt time.Time `json:"created_at"`
}

func newID() string {
	return ulid.Make().String()
}

// RecordRun stores a run. ID and CreatedAt are filled in when empty.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = s.idGen()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.now().UTC()
	}
	tmpl, err := encodeList(run.Templates)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs
		(id, preset_id, templates, domain, input, output, generated, skipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.PresetID, tmpl, run.Domain, run.Input, run.Output,
		run.Generated, run.Skipped, run.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 means all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, preset_id, templates, domain, input, output,
		generated, skipped, created_at
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r       Run
			tmpl    string
			created int64
		)
		if err := rows.Scan(&r.ID, &r.PresetID, &tmpl, &r.Domain, &r.Input, &r.Output,
			&r.Generated, &r.Skipped, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.Templates, err = decodeList(tmpl); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		r.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
