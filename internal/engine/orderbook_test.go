package engine

import "testing"

func TestOrderBook_TryMatchNeverInserts(t *testing.T) {
	ob := newOrderBook()
	ob.addResting(PendingOrder{ID: 1, Side: SideSell, Price: 100})

	if _, matched := ob.tryMatch(PendingOrder{ID: 2, Side: SideBuy, Price: 99}); matched {
		t.Fatalf("expected no match when buy price below best ask")
	}
	bids, asks := ob.orderCount()
	if bids != 0 || asks != 1 {
		t.Fatalf("tryMatch must never insert the incoming order; got bids=%d asks=%d", bids, asks)
	}
}

func TestOrderBook_BucketRemovedWhenEmptied(t *testing.T) {
	ob := newOrderBook()
	ob.addResting(PendingOrder{ID: 1, Side: SideSell, Price: 100})

	matched, ok := ob.tryMatch(PendingOrder{ID: 2, Side: SideBuy, Price: 100})
	if !ok || matched.ID != 1 {
		t.Fatalf("expected match against resting order 1, got %+v ok=%v", matched, ok)
	}
	if _, present := ob.asks[100]; present {
		t.Fatalf("price bucket should have been removed once emptied")
	}
	if len(ob.askPrices) != 0 {
		t.Fatalf("cached ask price slice should be empty after bucket removal")
	}
}

func TestOrderBook_NeverCrossesAfterCompletedAdd(t *testing.T) {
	ob := newOrderBook()
	prices := []struct {
		side  Side
		price int32
	}{
		{SideBuy, 100}, {SideSell, 105}, {SideBuy, 103}, {SideSell, 104}, {SideBuy, 99},
	}
	id := int64(1)
	for _, p := range prices {
		order := PendingOrder{ID: id, Side: p.side, Price: p.price}
		id++
		if _, matched := ob.tryMatch(order); !matched {
			ob.addResting(order)
		}
		if ob.crossed() {
			t.Fatalf("book crossed after adding %+v", order)
		}
	}
}

// Boundary tests from spec §8: price 99 rejected / 100 accepted / 1000
// accepted / 1001 rejected belong to the service boundary, exercised in
// internal/service; the book itself treats any int32 as comparable per
// spec §3, which this test documents by matching at the extremes.
func TestOrderBook_MatchesAtPriceExtremes(t *testing.T) {
	ob := newOrderBook()
	ob.addResting(PendingOrder{ID: 1, Side: SideSell, Price: 100})
	if _, matched := ob.tryMatch(PendingOrder{ID: 2, Side: SideBuy, Price: 100}); !matched {
		t.Fatalf("expected match at price 100")
	}

	ob2 := newOrderBook()
	ob2.addResting(PendingOrder{ID: 3, Side: SideBuy, Price: 1000})
	if _, matched := ob2.tryMatch(PendingOrder{ID: 4, Side: SideSell, Price: 1000}); !matched {
		t.Fatalf("expected match at price 1000")
	}
}
