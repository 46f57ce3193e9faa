package engine

import (
	"context"
	"testing"

	"order-matching-engine/internal/store"
)

// fakeOrderStore is a minimal store.OrderStore used only to exercise
// LoadFromStore; it does not implement Insert/UpdateStatus/QueryByTrader
// beyond what rehydration needs.
type fakeOrderStore struct {
	pendingBySide map[Side][]store.PendingOrder
	maxID         int64
}

func (f *fakeOrderStore) Insert(ctx context.Context, o store.NewOrder) (int64, error) {
	panic("not used by rehydration test")
}
func (f *fakeOrderStore) UpdateStatus(ctx context.Context, id int64, status store.Status) error {
	panic("not used by rehydration test")
}
func (f *fakeOrderStore) QueryByTrader(ctx context.Context, traderID int64, limit int) ([]store.Order, error) {
	panic("not used by rehydration test")
}
func (f *fakeOrderStore) QueryPending(ctx context.Context, cardID int32, side Side) ([]store.PendingOrder, error) {
	var out []store.PendingOrder
	for _, p := range f.pendingBySide[side] {
		if p.CardID == cardID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeOrderStore) MaxID(ctx context.Context) (int64, error) {
	return f.maxID, nil
}

// TestRehydrationLaw is the property described in spec §8: running a
// sequence through a fresh engine, then rebuilding a second engine via
// LoadFromStore from an equivalent persisted state, must produce identical
// match outcomes for any next order.
func TestRehydrationLaw(t *testing.T) {
	fresh := NewOrderManager()
	seq := []PendingOrder{
		{ID: 1, Side: SideBuy, Price: 100, CardID: 0},
		{ID: 2, Side: SideBuy, Price: 102, CardID: 0},
		{ID: 3, Side: SideSell, Price: 105, CardID: 0},
	}
	for _, o := range seq {
		o.ID = fresh.TakeID() // allocates 1, 2, 3, matching the ids listed above
		fresh.AddOrder(o)
	}
	// After this sequence, order 2 (buy@102) and order 1 (buy@100) are
	// still resting (order 3 never crosses 100/102), order 3 rests as an ask.
	fake := &fakeOrderStore{
		pendingBySide: map[Side][]store.PendingOrder{
			SideBuy:  {{ID: 1, Price: 100, CardID: 0}, {ID: 2, Price: 102, CardID: 0}},
			SideSell: {{ID: 3, Price: 105, CardID: 0}},
		},
		maxID: 3,
	}

	rebuilt, err := LoadFromStore(context.Background(), fake)
	if err != nil {
		t.Fatalf("LoadFromStore: %v", err)
	}

	next := PendingOrder{ID: 4, Side: SideSell, Price: 101, CardID: 0}
	freshFilled, freshMatched := fresh.AddOrder(next)
	rebuiltFilled, rebuiltMatched := rebuilt.AddOrder(next)

	if freshMatched != rebuiltMatched || freshFilled != rebuiltFilled {
		t.Fatalf("rehydration law violated: fresh=(%v,%v) rebuilt=(%v,%v)", freshFilled, freshMatched, rebuiltFilled, rebuiltMatched)
	}
	if rebuilt.TakeID() != fresh.TakeID() {
		t.Fatalf("rebuilt allocator did not agree with fresh allocator after seeding from max id")
	}
}
