// Package store defines the durable-persistence boundary consumed by the
// matching core (spec §4.2-§4.4): TraderStore, OrderStore, TradeStore. These
// are capability interfaces, not a class hierarchy — any implementation
// (the MySQL-backed one in internal/mysqlstore, or a hand-written fake used
// in tests) must satisfy the same contract (spec §9).
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"order-matching-engine/internal/card"
)

// Status is an order's lifecycle state. The integer encoding is part of the
// persisted schema (spec §3) and must not be renumbered.
type Status int16

const (
	StatusPending Status = 0
	StatusFilled  Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFilled:
		return "filled"
	default:
		return "unknown"
	}
}

// Order is the persisted order record (spec §3).
type Order struct {
	ID        int64
	CardID    int32
	Price     int32
	Side      card.Side
	Status    Status
	TraderID  int64
	CreatedAt time.Time
}

// PriceDisplay renders the integer-cents price as a dollar-formatted
// decimal string for presentation, the one place shopspring/decimal is
// exercised in this repo — the matching core itself compares raw int32
// cents (spec §3) and must never use decimal arithmetic for that.
func (o Order) PriceDisplay() string {
	return decimal.New(int64(o.Price), -2).StringFixed(2)
}

// NewOrder is the set of fields supplied when inserting a new order; the
// store assigns the id.
type NewOrder struct {
	CardID    int32
	Price     int32
	Side      card.Side
	Status    Status
	TraderID  int64
	CreatedAt time.Time
}

// PendingOrder is the minimal projection needed to rehydrate a book: id,
// price and card id are enough to restore FIFO order and price buckets
// (spec §4.3's query_pending).
type PendingOrder struct {
	ID     int64
	Price  int32
	CardID int32
}

// Trade is the persisted trade record (spec §3). Id and CreatedAt are
// store-assigned.
type Trade struct {
	ID          int64
	CardID      int32
	Price       int32
	BuyOrderID  int64
	SellOrderID int64
	CreatedAt   time.Time
}

// PriceDisplay mirrors Order.PriceDisplay for trade rows.
func (t Trade) PriceDisplay() string {
	return decimal.New(int64(t.Price), -2).StringFixed(2)
}

// Existence is the three-valued result of a trader lookup (spec §4.2).
// Unknown signals an infrastructure failure distinct from a definitive
// negative; callers must treat Unknown as retryable, never as No.
type Existence int

const (
	ExistenceUnknown Existence = iota
	ExistenceYes
	ExistenceNo
)

// TraderStore answers whether a trader id is known to the system (spec §4.2).
type TraderStore interface {
	Exists(ctx context.Context, traderID int64) (Existence, error)
}

// OrderStore is the durable CRUD surface over orders (spec §4.3).
type OrderStore interface {
	Insert(ctx context.Context, o NewOrder) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	QueryByTrader(ctx context.Context, traderID int64, limit int) ([]Order, error)
	// QueryPending returns, for a given card and side, every Pending order
	// ordered by id ascending so rehydration preserves arrival order.
	QueryPending(ctx context.Context, cardID int32, side card.Side) ([]PendingOrder, error)
	MaxID(ctx context.Context) (int64, error)
}

// TradeStore is the durable append/query surface over trades (spec §4.4).
type TradeStore interface {
	Insert(ctx context.Context, cardID int32, price int32, buyOrderID, sellOrderID int64) error
	QueryByCard(ctx context.Context, cardID int32, limit int) ([]Trade, error)
}

// DefaultQueryLimit is applied by store implementations when a caller asks
// for a non-positive limit (spec §4.3/§4.4: "limit=50").
const DefaultQueryLimit = 50
