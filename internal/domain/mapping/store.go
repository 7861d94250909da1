package mapping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// DBPool abstracts pgxpool.Pool so the store can be tested with pgxmock.
type DBPool interface {
	Ping(ctx context.Context) error
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	sqlCreateTable = `
        CREATE TABLE IF NOT EXISTS selector_mappings (
            id                   UUID PRIMARY KEY,
            version              TEXT NOT NULL DEFAULT '',
            original_selector    TEXT NOT NULL,
            replacement_selector TEXT NOT NULL,
            confidence           DOUBLE PRECISION NOT NULL,
            created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
            UNIQUE (version, original_selector)
        );
    `

	sqlSelectByVersion = `
        SELECT id, version, original_selector, replacement_selector, confidence, created_at
        FROM selector_mappings
        WHERE version = $1
        ORDER BY created_at, id;
    `

	sqlSelectAll = `
        SELECT id, version, original_selector, replacement_selector, confidence, created_at
        FROM selector_mappings
        ORDER BY created_at, id;
    `

	sqlUpsert = `
        INSERT INTO selector_mappings (id, version, original_selector, replacement_selector, confidence, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (version, original_selector) DO UPDATE SET
            replacement_selector = EXCLUDED.replacement_selector,
            confidence = EXCLUDED.confidence;
    `
)

// Store reads and writes the selector_mappings table.
type Store struct {
	pool DBPool
	log  *zap.Logger
	now  func() time.Time
}

// NewStore creates a store and verifies the connection.
func NewStore(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		pool: pool,
		log:  logger.Named("mapping_store"),
		now:  time.Now,
	}, nil
}

// EnsureSchema creates the mappings table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, sqlCreateTable); err != nil {
		return fmt.Errorf("failed to create selector_mappings table: %w", err)
	}
	return nil
}

// List returns the mappings recorded for version, or every mapping when
// version is empty, oldest first.
func (s *Store) List(ctx context.Context, version string) ([]Mapping, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if version != "" {
		rows, err = s.pool.Query(ctx, sqlSelectByVersion, version)
	} else {
		rows, err = s.pool.Query(ctx, sqlSelectAll)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query mappings: %w", err)
	}
	defer rows.Close()

	mappings := []Mapping{}
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(&m.ID, &m.Version, &m.OriginalSelector, &m.ReplacementSelector, &m.Confidence, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mapping row: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during row iteration: %w", err)
	}

	return mappings, nil
}

// Upsert writes mappings in one transaction. Rows are keyed on version and
// original selector; an existing row keeps its id and creation time.
func (s *Store) Upsert(ctx context.Context, mappings []Mapping) error {
	if len(mappings) == 0 {
		return nil
	}
	for _, m := range mappings {
		if err := m.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			s.log.Error("failed to rollback transaction", zap.Error(rollbackErr))
		}
	}()

	now := s.now().UTC()
	for _, m := range mappings {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		createdAt := m.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := tx.Exec(ctx, sqlUpsert,
			m.ID, m.Version, m.OriginalSelector, m.ReplacementSelector, m.Confidence, createdAt.UTC(),
		); err != nil {
			return fmt.Errorf("failed to upsert mapping %q: %w", m.OriginalSelector, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
