package mysqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"order-matching-engine/internal/engine"
	"order-matching-engine/internal/store"
)

// OrderStore implements store.OrderStore, preparing its statements once at
// construction the way the teacher's Engine.prepareStatements does.
type OrderStore struct {
	db *sql.DB

	insertStmt       *sql.Stmt
	updateStatusStmt *sql.Stmt
	byTraderStmt     *sql.Stmt
	pendingStmt      *sql.Stmt
	maxIDStmt        *sql.Stmt
}

// NewOrderStore prepares the statements used by OrderStore's operations.
func NewOrderStore(db *sql.DB) (*OrderStore, error) {
	s := &OrderStore{db: db}
	var err error

	s.insertStmt, err = db.Prepare(`
		INSERT INTO orders (card_id, price, side, status, trader_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert order: %w", err)
	}

	s.updateStatusStmt, err = db.Prepare(`UPDATE orders SET status = ? WHERE id = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare update order status: %w", err)
	}

	s.byTraderStmt, err = db.Prepare(`
		SELECT id, card_id, price, side, status, trader_id, created_at
		FROM orders WHERE trader_id = ? ORDER BY created_at DESC LIMIT ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare query by trader: %w", err)
	}

	s.pendingStmt, err = db.Prepare(`
		SELECT id, price, card_id FROM orders
		WHERE status = ? AND card_id = ? AND side = ? ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare query pending: %w", err)
	}

	s.maxIDStmt, err = db.Prepare(`SELECT COALESCE(MAX(id), 0) FROM orders`)
	if err != nil {
		return nil, fmt.Errorf("prepare max id: %w", err)
	}

	return s, nil
}

// Close releases the prepared statements.
func (s *OrderStore) Close() error {
	for _, stmt := range []*sql.Stmt{s.insertStmt, s.updateStatusStmt, s.byTraderStmt, s.pendingStmt, s.maxIDStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}

// Insert persists a new order and returns its server-assigned id (spec §4.3).
func (s *OrderStore) Insert(ctx context.Context, o store.NewOrder) (int64, error) {
	res, err := s.insertStmt.ExecContext(ctx, o.CardID, o.Price, o.Side, o.Status, o.TraderID, o.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted order id: %w", err)
	}
	return id, nil
}

// UpdateStatus sets an order's status; idempotent with respect to the same
// value (spec §4.3). Fails if the row does not exist.
func (s *OrderStore) UpdateStatus(ctx context.Context, id int64, status store.Status) error {
	res, err := s.updateStatusStmt.ExecContext(ctx, status, id)
	if err != nil {
		return fmt.Errorf("update order status for %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("order %d does not exist", id)
	}
	return nil
}

// QueryByTrader returns a trader's orders, newest first, defaulting limit to
// store.DefaultQueryLimit when non-positive (spec §4.3).
func (s *OrderStore) QueryByTrader(ctx context.Context, traderID int64, limit int) ([]store.Order, error) {
	if limit <= 0 {
		limit = store.DefaultQueryLimit
	}
	rows, err := s.byTraderStmt.QueryContext(ctx, traderID, limit)
	if err != nil {
		return nil, fmt.Errorf("query orders by trader %d: %w", traderID, err)
	}
	defer rows.Close()

	var out []store.Order
	for rows.Next() {
		var o store.Order
		if err := rows.Scan(&o.ID, &o.CardID, &o.Price, &o.Side, &o.Status, &o.TraderID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return out, nil
}

// QueryPending returns all Pending orders for (cardID, side), ordered by id
// ascending so rehydration preserves original arrival order (spec §4.3).
func (s *OrderStore) QueryPending(ctx context.Context, cardID int32, side engine.Side) ([]store.PendingOrder, error) {
	rows, err := s.pendingStmt.QueryContext(ctx, store.StatusPending, cardID, side)
	if err != nil {
		return nil, fmt.Errorf("query pending orders for card %d side %s: %w", cardID, side, err)
	}
	defer rows.Close()

	var out []store.PendingOrder
	for rows.Next() {
		var p store.PendingOrder
		if err := rows.Scan(&p.ID, &p.Price, &p.CardID); err != nil {
			return nil, fmt.Errorf("scan pending order row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending order rows: %w", err)
	}
	return out, nil
}

// MaxID returns the largest persisted order id, or 0 for a fresh store
// (spec §4.3), used to seed the in-memory id allocator.
func (s *OrderStore) MaxID(ctx context.Context) (int64, error) {
	var id int64
	if err := s.maxIDStmt.QueryRowContext(ctx).Scan(&id); err != nil {
		return 0, fmt.Errorf("query max order id: %w", err)
	}
	return id, nil
}
