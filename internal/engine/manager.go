package engine

import (
	"context"
	"fmt"

	"order-matching-engine/internal/card"
	"order-matching-engine/internal/store"
)

// OrderManager holds one order book per card plus the monotonic id
// allocator (spec §4.6). Every method here does pure in-memory work; it is
// the caller's job (internal/service.OrderService) to hold the exclusive
// lock across the calls that need it and to never perform store I/O while
// holding it.
type OrderManager struct {
	books  [card.NumCards]*orderBook
	lastID int64
}

// NewOrderManager returns an empty manager with id allocation starting at 0,
// used by tests that don't need rehydration.
func NewOrderManager() *OrderManager {
	m := &OrderManager{}
	for i := range m.books {
		m.books[i] = newOrderBook()
	}
	return m
}

// LoadFromStore rebuilds an OrderManager from the durable store: for every
// card it pulls Pending bids and asks (already ordered id-ascending by the
// store per spec §4.3) and replays them into the book in that order so FIFO
// priority matches original arrival order, then seeds lastID from the
// store's max persisted id. This is the only code path that may do so
// (spec §4.6).
func LoadFromStore(ctx context.Context, os store.OrderStore) (*OrderManager, error) {
	m := NewOrderManager()
	for cardID := int32(0); cardID < card.NumCards; cardID++ {
		bids, err := os.QueryPending(ctx, cardID, SideBuy)
		if err != nil {
			return nil, fmt.Errorf("rehydrate card %d bids: %w", cardID, err)
		}
		for _, p := range bids {
			m.books[cardID].addResting(PendingOrder{ID: p.ID, Side: SideBuy, Price: p.Price, CardID: cardID})
		}
		asks, err := os.QueryPending(ctx, cardID, SideSell)
		if err != nil {
			return nil, fmt.Errorf("rehydrate card %d asks: %w", cardID, err)
		}
		for _, p := range asks {
			m.books[cardID].addResting(PendingOrder{ID: p.ID, Side: SideSell, Price: p.Price, CardID: cardID})
		}
	}
	maxID, err := os.MaxID(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed id allocator: %w", err)
	}
	m.lastID = maxID
	return m, nil
}

// TakeID atomically increments and returns the id allocator. Callers must
// hold whatever external lock guards the manager; OrderManager itself adds
// no synchronization of its own (spec §5: the manager lock is held by the
// caller across steps 3-5 of the submission pipeline).
func (m *OrderManager) TakeID() int64 {
	m.lastID++
	return m.lastID
}

// AddOrder routes pending to the book for its card, attempts a match, and
// either returns the Filled outcome or rests the order (spec §4.6).
func (m *OrderManager) AddOrder(pending PendingOrder) (Filled, bool) {
	book := m.books[pending.CardID]
	if resting, ok := book.tryMatch(pending); ok {
		mustInvariant(!book.crossed(), "book must not cross after a match")
		return newFilled(resting, pending.ID), true
	}
	book.addResting(pending)
	mustInvariant(!book.crossed(), "book must not cross after resting an order")
	return Filled{}, false
}

// BidAskOrderCounts reports, for a given card, how many resting orders sit
// on each side of its book.
func (m *OrderManager) BidAskOrderCounts(cardID int32) (bids, asks int) {
	return m.books[cardID].orderCount()
}
