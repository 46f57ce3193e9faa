package service

import (
	"context"
	"fmt"

	"order-matching-engine/internal/card"
	"order-matching-engine/internal/store"
)

// Queries is the read-only projection facade of spec §4.8 (C8): thin
// pass-throughs over the stores, validating card id and trader existence
// before delegating. No caching.
type Queries struct {
	traders store.TraderStore
	orders  store.OrderStore
	trades  store.TradeStore
}

// NewQueries constructs a Queries facade over the durable stores.
func NewQueries(traders store.TraderStore, orders store.OrderStore, trades store.TradeStore) *Queries {
	return &Queries{traders: traders, orders: orders, trades: trades}
}

// OrdersByTrader returns a trader's orders (newest first, capped at
// store.DefaultQueryLimit), after confirming the trader exists.
func (q *Queries) OrdersByTrader(ctx context.Context, traderID int64) ([]store.Order, error) {
	existence, err := q.traders.Exists(ctx, traderID)
	if err != nil || existence == store.ExistenceUnknown {
		return nil, fmt.Errorf("check trader %d existence: %w: %v", traderID, ErrInfrastructure, err)
	}
	if existence == store.ExistenceNo {
		return nil, fmt.Errorf("trader %d: %w", traderID, ErrTraderMissing)
	}

	orders, err := q.orders.QueryByTrader(ctx, traderID, store.DefaultQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("query orders for trader %d: %w: %v", traderID, ErrInfrastructure, err)
	}
	return orders, nil
}

// TradesByCard returns a card's trades (newest first, capped at
// store.DefaultQueryLimit), after confirming the card id is valid.
func (q *Queries) TradesByCard(ctx context.Context, cardID int32) ([]store.Trade, error) {
	if !card.Valid(cardID) {
		return nil, fmt.Errorf("card %d: %w", cardID, ErrNotFound)
	}

	trades, err := q.trades.QueryByCard(ctx, cardID, store.DefaultQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("query trades for card %d: %w: %v", cardID, ErrInfrastructure, err)
	}
	return trades, nil
}
