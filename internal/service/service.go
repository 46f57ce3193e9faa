// Package service implements the transactional coordinator (spec §4.7,
// C7) binding the stores to the in-memory matching engine, and the
// read-only query facade (spec §4.8, C8) built directly on top of them.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"order-matching-engine/internal/card"
	"order-matching-engine/internal/engine"
	"order-matching-engine/internal/store"
)

// OrderService is the atomic-enough submission pipeline of spec §4.7. A
// single OrderManager instance is shared across every request; mu guards it
// and is acquired strictly around the in-memory matching step, never across
// store I/O (spec §5's lock discipline).
type OrderService struct {
	traders store.TraderStore
	orders  store.OrderStore
	trades  store.TradeStore

	mu      sync.Mutex
	manager *engine.OrderManager
}

// NewOrderService constructs an OrderService around a manager already
// rehydrated via engine.LoadFromStore (or engine.NewOrderManager for a
// fresh process).
func NewOrderService(traders store.TraderStore, orders store.OrderStore, trades store.TradeStore, manager *engine.OrderManager) *OrderService {
	return &OrderService{
		traders: traders,
		orders:  orders,
		trades:  trades,
		manager: manager,
	}
}

// AddOrder runs the 7-step pipeline of spec §4.7, in the order specified
// there: validate trader, persist pending, match in memory under the
// manager lock, then persist the match outcome.
func (s *OrderService) AddOrder(ctx context.Context, traderID int64, side engine.Side, price int32, cardID int32) error {
	if !card.Valid(cardID) {
		return fmt.Errorf("card %d out of range: %w", cardID, ErrInvalidInput)
	}
	if price < 100 || price > 1000 {
		return fmt.Errorf("price %d out of range [100,1000]: %w", price, ErrInvalidInput)
	}

	// Step 1: validate the trader. No lock held, no match attempted yet.
	existence, err := s.traders.Exists(ctx, traderID)
	if err != nil || existence == store.ExistenceUnknown {
		return fmt.Errorf("check trader %d existence: %w: %v", traderID, ErrInfrastructure, err)
	}
	if existence == store.ExistenceNo {
		return fmt.Errorf("trader %d: %w", traderID, ErrTraderMissing)
	}

	// Step 2: persist pending, obtaining the server-assigned id.
	orderID, err := s.orders.Insert(ctx, store.NewOrder{
		CardID:    cardID,
		Price:     price,
		Side:      side,
		Status:    store.StatusPending,
		TraderID:  traderID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert order failed: %w: %v", ErrInfrastructure, err)
	}

	// Steps 3-5: acquire the manager lock, match, release. Pure in-memory
	// work only — no store call is made while mu is held.
	s.mu.Lock()
	filled, matched := s.manager.AddOrder(engine.PendingOrder{
		ID:     orderID,
		Side:   side,
		Price:  price,
		CardID: cardID,
	})
	s.mu.Unlock()

	if !matched {
		return nil
	}

	// Step 6: persist the match outcome. A crash here leaves both orders
	// Pending in the store while the resting order has already left the
	// in-memory book; spec §4.7 accepts this as the documented weakness
	// that rehydration plus re-presentation resolves.
	if err := s.orders.UpdateStatus(ctx, orderID, store.StatusFilled); err != nil {
		return fmt.Errorf("update status failed for %d: %w: %v", orderID, ErrInfrastructure, err)
	}
	if err := s.orders.UpdateStatus(ctx, filled.RestingOrderID, store.StatusFilled); err != nil {
		return fmt.Errorf("update status failed for %d: %w: %v", filled.RestingOrderID, ErrInfrastructure, err)
	}
	if err := s.trades.Insert(ctx, filled.CardID, filled.Price, filled.BuyOrder, filled.SellOrder); err != nil {
		return fmt.Errorf("insert trade failed: %w: %v", ErrInfrastructure, err)
	}
	return nil
}
