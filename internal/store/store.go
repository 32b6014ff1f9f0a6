// Package store defines the persistence interface for analysis history.
// The engine itself is stateless; history exists only so the dashboard can
// list and re-open past reports.
package store

import (
	"context"
	"time"

	"github.com/afajohn/page-keyword-analyzer-sub000/internal/report"
)

// Store persists completed reports.
type Store interface {
	Close() error

	SaveReport(ctx context.Context, r report.Report) error
	GetReport(ctx context.Context, id string) (report.Report, bool, error)
	ListReports(ctx context.Context, limit int) ([]Summary, error)
}

// Summary is one row of the dashboard history list.
type Summary struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	Topic      string    `json:"topic"`
	Confidence float64   `json:"confidence"`
}
