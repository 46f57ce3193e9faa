package mysqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"order-matching-engine/internal/store"
)

// TradeStore implements store.TradeStore over the trades table.
type TradeStore struct {
	db         *sql.DB
	insertStmt *sql.Stmt
	byCardStmt *sql.Stmt
}

// NewTradeStore prepares the statements used by TradeStore's operations.
func NewTradeStore(db *sql.DB) (*TradeStore, error) {
	s := &TradeStore{db: db}
	var err error

	s.insertStmt, err = db.Prepare(`
		INSERT INTO trades (card_id, price, buyorder_id, sellorder_id) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert trade: %w", err)
	}

	s.byCardStmt, err = db.Prepare(`
		SELECT id, card_id, price, buyorder_id, sellorder_id, created_at
		FROM trades WHERE card_id = ? ORDER BY created_at DESC LIMIT ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare query by card: %w", err)
	}

	return s, nil
}

// Close releases the prepared statements.
func (s *TradeStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertStmt, s.byCardStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}

// Insert appends a trade record; the store assigns id and created_at
// (spec §4.4).
func (s *TradeStore) Insert(ctx context.Context, cardID int32, price int32, buyOrderID, sellOrderID int64) error {
	if _, err := s.insertStmt.ExecContext(ctx, cardID, price, buyOrderID, sellOrderID); err != nil {
		return fmt.Errorf("insert trade (card %d, buy %d, sell %d): %w", cardID, buyOrderID, sellOrderID, err)
	}
	return nil
}

// QueryByCard returns a card's trades, newest first, defaulting limit to
// store.DefaultQueryLimit when non-positive (spec §4.4).
func (s *TradeStore) QueryByCard(ctx context.Context, cardID int32, limit int) ([]store.Trade, error) {
	if limit <= 0 {
		limit = store.DefaultQueryLimit
	}
	rows, err := s.byCardStmt.QueryContext(ctx, cardID, limit)
	if err != nil {
		return nil, fmt.Errorf("query trades for card %d: %w", cardID, err)
	}
	defer rows.Close()

	var out []store.Trade
	for rows.Next() {
		var t store.Trade
		if err := rows.Scan(&t.ID, &t.CardID, &t.Price, &t.BuyOrderID, &t.SellOrderID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trade row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade rows: %w", err)
	}
	return out, nil
}
