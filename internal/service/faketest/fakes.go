// Package faketest provides hand-written in-memory fakes satisfying the
// store.TraderStore/OrderStore/TradeStore contracts, used by the tests that
// exercise OrderService and Queries (spec §9's "mocks must
// satisfy the same contract" design note) without a live database. Grounded
// on the original Rust implementation's MockTraderStore/MockOrderStore/
// MockTradeStore (ports.rs) — translated as plain hand-rolled fakes since no
// mocking-framework dependency appears anywhere in the retrieved corpus.
package faketest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"order-matching-engine/internal/engine"
	"order-matching-engine/internal/store"
)

// TraderStore is an in-memory set of known trader ids.
type TraderStore struct {
	mu    sync.Mutex
	known map[int64]bool
}

// NewTraderStore constructs a fake populated with the given trader ids.
func NewTraderStore(traderIDs ...int64) *TraderStore {
	known := make(map[int64]bool, len(traderIDs))
	for _, id := range traderIDs {
		known[id] = true
	}
	return &TraderStore{known: known}
}

func (s *TraderStore) Exists(ctx context.Context, traderID int64) (store.Existence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.known[traderID] {
		return store.ExistenceYes, nil
	}
	return store.ExistenceNo, nil
}

// OrderStore is an in-memory, append-only order table with an
// auto-incrementing id, mirroring the ordering/limit rules of spec §4.3.
type OrderStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*store.Order
}

// NewOrderStore constructs an empty fake order table.
func NewOrderStore() *OrderStore {
	return &OrderStore{rows: make(map[int64]*store.Order)}
}

func (s *OrderStore) Insert(ctx context.Context, o store.NewOrder) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.rows[id] = &store.Order{
		ID:        id,
		CardID:    o.CardID,
		Price:     o.Price,
		Side:      o.Side,
		Status:    o.Status,
		TraderID:  o.TraderID,
		CreatedAt: o.CreatedAt,
	}
	return id, nil
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id int64, status store.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return fmt.Errorf("order %d does not exist", id)
	}
	row.Status = status
	return nil
}

func (s *OrderStore) QueryByTrader(ctx context.Context, traderID int64, limit int) ([]store.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = store.DefaultQueryLimit
	}
	var matched []store.Order
	for _, row := range s.rows {
		if row.TraderID == traderID {
			matched = append(matched, *row)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *OrderStore) QueryPending(ctx context.Context, cardID int32, side engine.Side) ([]store.PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id, row := range s.rows {
		if row.Status == store.StatusPending && row.CardID == cardID && row.Side == side {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]store.PendingOrder, 0, len(ids))
	for _, id := range ids {
		row := s.rows[id]
		out = append(out, store.PendingOrder{ID: row.ID, Price: row.Price, CardID: row.CardID})
	}
	return out, nil
}

func (s *OrderStore) MaxID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var max int64
	for id := range s.rows {
		if id > max {
			max = id
		}
	}
	return max, nil
}

// Snapshot returns a defensive copy of every row, in no particular order.
func (s *OrderStore) Snapshot() []store.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]store.Order, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, *row)
	}
	return out
}

// Seed loads rows directly (bypassing id allocation), e.g. rows taken from
// another fake's Snapshot; later inserts get ids above the largest seeded id.
func (s *OrderStore) Seed(rows []store.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		r := row
		s.rows[row.ID] = &r
		if row.ID > s.nextID {
			s.nextID = row.ID
		}
	}
}

// TradeStore is an in-memory, append-only trade log.
type TradeStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []store.Trade
}

// NewTradeStore constructs an empty fake trade log.
func NewTradeStore() *TradeStore {
	return &TradeStore{}
}

func (s *TradeStore) Insert(ctx context.Context, cardID int32, price int32, buyOrderID, sellOrderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.rows = append(s.rows, store.Trade{
		ID:          s.nextID,
		CardID:      cardID,
		Price:       price,
		BuyOrderID:  buyOrderID,
		SellOrderID: sellOrderID,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (s *TradeStore) QueryByCard(ctx context.Context, cardID int32, limit int) ([]store.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = store.DefaultQueryLimit
	}
	var matched []store.Trade
	for i := len(s.rows) - 1; i >= 0 && len(matched) < limit; i-- {
		if s.rows[i].CardID == cardID {
			matched = append(matched, s.rows[i])
		}
	}
	return matched, nil
}
