// Package analytics records fit-assessment events in PostgreSQL.
package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// ErrNotConfigured is returned by read operations when no database is configured.
var ErrNotConfigured = errors.New("analytics store not configured")

// Store wraps a PostgreSQL connection pool. A nil *Store is valid: recording
// becomes a no-op and reads return ErrNotConfigured, so the API can run
// without a database.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Enabled reports whether a database is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.pool != nil
}

// RecordAssessment inserts one assessment event. Events sent to a nil store
// are dropped.
func (s *Store) RecordAssessment(ctx context.Context, ev Event) error {
	if !s.Enabled() {
		return nil
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO assessment_events
		   (input_type, extracted_url, outcome, error_message, verdict, fit_score, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ev.InputType, ev.ExtractedURL, ev.Outcome, ev.ErrorMessage, ev.Verdict, ev.FitScore, ev.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to record assessment event: %w", err)
	}
	return nil
}

// ListAssessments retrieves one page of events, newest first, along with the
// total number of recorded events. The page query and the count query run
// concurrently.
func (s *Store) ListAssessments(ctx context.Context, opts ListOptions) ([]Event, int, error) {
	if !s.Enabled() {
		return nil, 0, ErrNotConfigured
	}
	opts = opts.Normalized()

	var events []Event
	var total int

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.pool.Query(gCtx,
			`SELECT id, created_at, input_type, extracted_url, outcome, error_message,
			        verdict, fit_score, duration_ms
			 FROM assessment_events
			 ORDER BY created_at DESC, id DESC
			 LIMIT $1 OFFSET $2`,
			opts.Limit, opts.Offset,
		)
		if err != nil {
			return fmt.Errorf("failed to list assessment events: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var ev Event
			if err := rows.Scan(&ev.ID, &ev.CreatedAt, &ev.InputType, &ev.ExtractedURL,
				&ev.Outcome, &ev.ErrorMessage, &ev.Verdict, &ev.FitScore, &ev.DurationMs); err != nil {
				return fmt.Errorf("failed to scan assessment event: %w", err)
			}
			events = append(events, ev)
		}
		return rows.Err()
	})

	g.Go(func() error {
		if err := s.pool.QueryRow(gCtx,
			`SELECT COUNT(*) FROM assessment_events`,
		).Scan(&total); err != nil {
			return fmt.Errorf("failed to count assessment events: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
