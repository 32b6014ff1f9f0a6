// Package sqlite implements the report store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/afajohn/page-keyword-analyzer-sub000/internal/report"
	"github.com/afajohn/page-keyword-analyzer-sub000/internal/store"
)

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes the
// schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id          TEXT PRIMARY KEY,
		url         TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		topic       TEXT NOT NULL,
		confidence  REAL NOT NULL,
		record      TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at DESC);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) SaveReport(ctx context.Context, r report.Report) error {
	record, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, url, created_at, topic, confidence, record)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET record = excluded.record`,
		r.ID, r.URL, r.CreatedAt.Format(time.RFC3339Nano),
		r.Analysis.CoreTopic.Topic, r.Analysis.CoreTopic.ConfidenceScore,
		string(record))
	return err
}

func (s *sqliteStore) GetReport(ctx context.Context, id string) (report.Report, bool, error) {
	var record string
	err := s.db.QueryRowContext(ctx, `SELECT record FROM reports WHERE id = ?`, id).Scan(&record)
	if err == sql.ErrNoRows {
		return report.Report{}, false, nil
	}
	if err != nil {
		return report.Report{}, false, err
	}
	var r report.Report
	if err := json.Unmarshal([]byte(record), &r); err != nil {
		return report.Report{}, false, err
	}
	return r, true, nil
}

func (s *sqliteStore) ListReports(ctx context.Context, limit int) ([]store.Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, created_at, topic, confidence
		FROM reports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Summary
	for rows.Next() {
		var sum store.Summary
		var created string
		if err := rows.Scan(&sum.ID, &sum.URL, &created, &sum.Topic, &sum.Confidence); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			sum.CreatedAt = t
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
