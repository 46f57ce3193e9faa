package mysqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"order-matching-engine/internal/store"
)

// TraderStore implements store.TraderStore against the traders table.
type TraderStore struct {
	db *sql.DB
}

// NewTraderStore constructs a TraderStore over an existing connection pool.
func NewTraderStore(db *sql.DB) *TraderStore {
	return &TraderStore{db: db}
}

// Exists reports definitive Yes/No, or Unknown if the lookup itself failed
// (spec §4.2). A query error must never be reported as a definitive No.
func (s *TraderStore) Exists(ctx context.Context, traderID int64) (store.Existence, error) {
	var dummy int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM traders WHERE id = ?", traderID).Scan(&dummy)
	switch {
	case err == nil:
		return store.ExistenceYes, nil
	case err == sql.ErrNoRows:
		return store.ExistenceNo, nil
	default:
		return store.ExistenceUnknown, fmt.Errorf("query trader existence: %w", err)
	}
}
