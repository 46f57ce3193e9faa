package engine

import "testing"

// The six concrete scenarios of spec §8, translated from the original
// order_manager.rs test module's same cases.

func TestManager_SamePriceCross(t *testing.T) {
	m := NewOrderManager()
	assertNoMatch(t, m, PendingOrder{ID: 1, Side: SideBuy, Price: 100, CardID: 0})
	assertMatch(t, m, PendingOrder{ID: 2, Side: SideSell, Price: 100, CardID: 0}, Filled{BuyOrder: 1, SellOrder: 2, Price: 100, CardID: 0, RestingOrderID: 1})
}

func TestManager_FIFOAtSamePrice(t *testing.T) {
	m := NewOrderManager()
	assertNoMatch(t, m, PendingOrder{ID: 1, Side: SideBuy, Price: 100, CardID: 0})
	assertNoMatch(t, m, PendingOrder{ID: 2, Side: SideBuy, Price: 100, CardID: 0})
	assertMatch(t, m, PendingOrder{ID: 3, Side: SideSell, Price: 100, CardID: 0}, Filled{BuyOrder: 1, SellOrder: 3, Price: 100, CardID: 0, RestingOrderID: 1})
}

func TestManager_CardIsolation(t *testing.T) {
	m := NewOrderManager()
	assertNoMatch(t, m, PendingOrder{ID: 1, Side: SideBuy, Price: 100, CardID: 0})
	assertNoMatch(t, m, PendingOrder{ID: 2, Side: SideSell, Price: 100, CardID: 1})
}

func TestManager_NoCrossWhenSellAboveBid(t *testing.T) {
	m := NewOrderManager()
	assertNoMatch(t, m, PendingOrder{ID: 1, Side: SideBuy, Price: 100, CardID: 0})
	assertNoMatch(t, m, PendingOrder{ID: 2, Side: SideSell, Price: 101, CardID: 0})
}

func TestManager_BestPricePriorityOnBids(t *testing.T) {
	m := NewOrderManager()
	assertNoMatch(t, m, PendingOrder{ID: 1, Side: SideBuy, Price: 100, CardID: 0})
	assertNoMatch(t, m, PendingOrder{ID: 2, Side: SideBuy, Price: 102, CardID: 0})
	assertMatch(t, m, PendingOrder{ID: 3, Side: SideSell, Price: 99, CardID: 0}, Filled{BuyOrder: 2, SellOrder: 3, Price: 102, CardID: 0, RestingOrderID: 2})
}

func TestManager_BestPricePriorityOnAsks(t *testing.T) {
	m := NewOrderManager()
	assertNoMatch(t, m, PendingOrder{ID: 1, Side: SideSell, Price: 101, CardID: 0})
	assertNoMatch(t, m, PendingOrder{ID: 2, Side: SideSell, Price: 100, CardID: 0})
	assertMatch(t, m, PendingOrder{ID: 3, Side: SideBuy, Price: 101, CardID: 0}, Filled{BuyOrder: 3, SellOrder: 2, Price: 100, CardID: 0, RestingOrderID: 2})
}

func TestManager_TakeIDStrictlyIncreasing(t *testing.T) {
	m := NewOrderManager()
	prev := m.TakeID()
	for i := 0; i < 100; i++ {
		next := m.TakeID()
		if next <= prev {
			t.Fatalf("take_id not strictly increasing: %d then %d", prev, next)
		}
		prev = next
	}
}

func TestManager_NeverCrossesAcrossRandomSequence(t *testing.T) {
	m := NewOrderManager()
	orders := []PendingOrder{
		{Side: SideBuy, Price: 100, CardID: 0},
		{Side: SideSell, Price: 105, CardID: 0},
		{Side: SideBuy, Price: 103, CardID: 0},
		{Side: SideSell, Price: 102, CardID: 0},
		{Side: SideBuy, Price: 99, CardID: 0},
		{Side: SideSell, Price: 100, CardID: 0},
	}
	for _, o := range orders {
		o.ID = m.TakeID()
		m.AddOrder(o)
		if m.books[0].crossed() {
			t.Fatalf("book crossed after adding order %+v", o)
		}
	}
}

func assertNoMatch(t *testing.T, m *OrderManager, p PendingOrder) {
	t.Helper()
	if _, matched := m.AddOrder(p); matched {
		t.Fatalf("expected order %+v not to match", p)
	}
}

func assertMatch(t *testing.T, m *OrderManager, p PendingOrder, want Filled) {
	t.Helper()
	got, matched := m.AddOrder(p)
	if !matched {
		t.Fatalf("expected order %+v to match", p)
	}
	if got != want {
		t.Fatalf("match mismatch: got %+v, want %+v", got, want)
	}
}
