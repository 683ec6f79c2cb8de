// Package loadlog persists corpus load reports so the load-time
// filtering stays auditable after the fact: which documents were
// excluded from matching, when, and why.
package loadlog

import (
	"context"
	"fmt"
	"time"

	"github.com/civicradar/issueradar/internal/corpus"
	"github.com/civicradar/issueradar/internal/db"
)

// Cycle summarizes one recorded load.
type Cycle struct {
	ID         string    `json:"cycleId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Model      string    `json:"model"`
	Accepted   int       `json:"accepted"`
	Rejected   int       `json:"rejected"`
}

// Store provides persistence for load cycles and their rejections.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record persists a load report inside one transaction.
func (s *Store) Record(ctx context.Context, report *corpus.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO load_cycles (id, started_at, finished_at, model, accepted, rejected)
		VALUES (?, ?, ?, ?, ?, ?)`,
		report.CycleID,
		report.StartedAt,
		report.FinishedAt,
		report.Model,
		report.Accepted,
		report.Rejected(),
	)
	if err != nil {
		return fmt.Errorf("inserting load cycle: %w", err)
	}

	for _, rej := range report.Rejections {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO load_rejections (cycle_id, issue_id, reason, detail)
			VALUES (?, ?, ?, ?)`,
			report.CycleID, rej.IssueID, string(rej.Reason), rej.Detail,
		)
		if err != nil {
			return fmt.Errorf("inserting rejection for %s: %w", rej.IssueID, err)
		}
	}

	return tx.Commit()
}

// ListCycles returns the most recent load cycles, newest first.
func (s *Store) ListCycles(ctx context.Context, limit int) ([]Cycle, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, model, accepted, rejected
		FROM load_cycles
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying load cycles: %w", err)
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var c Cycle
		if err := rows.Scan(&c.ID, &c.StartedAt, &c.FinishedAt, &c.Model, &c.Accepted, &c.Rejected); err != nil {
			return nil, fmt.Errorf("scanning load cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	return cycles, rows.Err()
}

// GetCycle retrieves a single load cycle.
func (s *Store) GetCycle(ctx context.Context, id string) (*Cycle, error) {
	var c Cycle
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, model, accepted, rejected
		FROM load_cycles WHERE id = ?`, id).
		Scan(&c.ID, &c.StartedAt, &c.FinishedAt, &c.Model, &c.Accepted, &c.Rejected)
	if err != nil {
		return nil, fmt.Errorf("load cycle %s: %w", id, err)
	}
	return &c, nil
}

// Rejections returns the rejection rows for a cycle, in insertion order.
func (s *Store) Rejections(ctx context.Context, cycleID string) ([]corpus.Rejection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT issue_id, reason, detail
		FROM load_rejections
		WHERE cycle_id = ?
		ORDER BY rowid`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("querying rejections: %w", err)
	}
	defer rows.Close()

	var rejections []corpus.Rejection
	for rows.Next() {
		var rej corpus.Rejection
		var reason string
		if err := rows.Scan(&rej.IssueID, &reason, &rej.Detail); err != nil {
			return nil, fmt.Errorf("scanning rejection: %w", err)
		}
		rej.Reason = corpus.RejectReason(reason)
		rejections = append(rejections, rej)
	}
	return rejections, rows.Err()
}
