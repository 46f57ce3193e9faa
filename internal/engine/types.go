package engine

// PendingOrder is the in-memory representation of an order on its way into,
// or already resting in, a book. It carries only what the book needs to
// match and order orders (spec §3's OrderBook entity).
type PendingOrder struct {
	ID     int64
	Side   Side
	Price  int32
	CardID int32
}

// Filled describes the outcome of a single-unit match (spec §4.6).
// BuyOrder/SellOrder are assigned from whichever side the incoming order and
// the resting order occupied; RestingOrderID always names the order that was
// already in the book before this match.
type Filled struct {
	BuyOrder       int64
	SellOrder      int64
	Price          int32
	CardID         int32
	RestingOrderID int64
}

func newFilled(resting PendingOrder, incomingID int64) Filled {
	f := Filled{
		Price:          resting.Price,
		CardID:         resting.CardID,
		RestingOrderID: resting.ID,
	}
	switch resting.Side {
	case SideBuy:
		f.BuyOrder = resting.ID
		f.SellOrder = incomingID
	case SideSell:
		f.BuyOrder = incomingID
		f.SellOrder = resting.ID
	}
	return f
}
