package engine

import "sort"

// priceLevel is a FIFO queue of resting orders at a single price on one
// side of a book (spec glossary: "price bucket"). Adapted from the
// teacher's decimal-keyed PriceLevel: price here is an int32 cents value,
// not a decimal.Decimal, per the card-matching data model (spec §3).
type priceLevel struct {
	price  int32
	orders []PendingOrder
}

// popFront removes and returns the oldest order in the bucket.
func (pl *priceLevel) popFront() PendingOrder {
	mustInvariant(len(pl.orders) > 0, "price bucket should not be empty")
	o := pl.orders[0]
	pl.orders = pl.orders[1:]
	return o
}

func (pl *priceLevel) pushBack(o PendingOrder) {
	pl.orders = append(pl.orders, o)
}

func (pl *priceLevel) isEmpty() bool {
	return len(pl.orders) == 0
}

// orderBook is the in-memory book for a single card: two price-ordered,
// FIFO-within-price sides (spec §3's OrderBook entity, §4.5's two
// primitives). It is not internally synchronized — the OrderManager's
// single exclusive lock protects every book (spec §4.7/§9).
type orderBook struct {
	bids map[int32]*priceLevel // indexed by price
	asks map[int32]*priceLevel

	// Cached sorted price slices, refreshed on mutation, mirroring the
	// teacher's bidPrices/askPrices cache in orderbook.go.
	bidPrices []int32 // descending: bidPrices[0] is the best (highest) bid
	askPrices []int32 // ascending: askPrices[0] is the best (lowest) ask
}

func newOrderBook() *orderBook {
	return &orderBook{
		bids: make(map[int32]*priceLevel),
		asks: make(map[int32]*priceLevel),
	}
}

// tryMatch is the single-unit, best-price, FIFO-within-price match of spec
// §4.5. It never inserts the incoming order into the book.
func (ob *orderBook) tryMatch(incoming PendingOrder) (PendingOrder, bool) {
	switch incoming.Side {
	case SideBuy:
		if len(ob.askPrices) == 0 {
			return PendingOrder{}, false
		}
		bestAsk := ob.askPrices[0]
		if incoming.Price < bestAsk {
			return PendingOrder{}, false
		}
		return ob.popBest(ob.asks, &ob.askPrices, bestAsk), true
	case SideSell:
		if len(ob.bidPrices) == 0 {
			return PendingOrder{}, false
		}
		bestBid := ob.bidPrices[0]
		if incoming.Price > bestBid {
			return PendingOrder{}, false
		}
		return ob.popBest(ob.bids, &ob.bidPrices, bestBid), true
	default:
		return PendingOrder{}, false
	}
}

// popBest pops the front order of the bucket at bestPrice, removing the
// bucket (and its cached price entry) if it becomes empty.
func (ob *orderBook) popBest(side map[int32]*priceLevel, prices *[]int32, bestPrice int32) PendingOrder {
	level := side[bestPrice]
	mustInvariant(level != nil && !level.isEmpty(), "best price bucket should exist but is empty")
	matched := level.popFront()
	if level.isEmpty() {
		delete(side, bestPrice)
		*prices = (*prices)[1:]
	}
	return matched
}

// addResting appends order to the FIFO tail of the price bucket on its own
// side, creating the bucket if absent (spec §4.5).
func (ob *orderBook) addResting(order PendingOrder) {
	switch order.Side {
	case SideBuy:
		ob.insert(order, ob.bids, &ob.bidPrices, true)
	case SideSell:
		ob.insert(order, ob.asks, &ob.askPrices, false)
	}
}

func (ob *orderBook) insert(order PendingOrder, side map[int32]*priceLevel, prices *[]int32, descending bool) {
	level, ok := side[order.Price]
	if !ok {
		level = &priceLevel{price: order.Price}
		side[order.Price] = level
		insertSortedPrice(prices, order.Price, descending)
	}
	level.pushBack(order)
}

// insertSortedPrice inserts price into the already-sorted prices slice,
// keeping it descending or ascending as requested.
func insertSortedPrice(prices *[]int32, price int32, descending bool) {
	n := len(*prices)
	idx := sort.Search(n, func(i int) bool {
		if descending {
			return (*prices)[i] <= price
		}
		return (*prices)[i] >= price
	})
	*prices = append(*prices, 0)
	copy((*prices)[idx+1:], (*prices)[idx:n])
	(*prices)[idx] = price
}

// crossed reports whether bids and asks cross: max(bid) >= min(ask). A book
// must never be observably crossed after a completed addOrder call (spec §3
// invariant 3).
func (ob *orderBook) crossed() bool {
	if len(ob.bidPrices) == 0 || len(ob.askPrices) == 0 {
		return false
	}
	return ob.bidPrices[0] >= ob.askPrices[0]
}

// orderCount reports the number of resting orders on each side, used by
// tests asserting invariant 2 (each order in at most one bucket).
func (ob *orderBook) orderCount() (bids, asks int) {
	for _, l := range ob.bids {
		bids += len(l.orders)
	}
	for _, l := range ob.asks {
		asks += len(l.orders)
	}
	return bids, asks
}

// mustInvariant panics when a structural invariant is violated. It must
// never trigger on a well-formed stream of inputs (spec §7) — a panic here
// marks a bug in the book's own bookkeeping, not bad caller input.
func mustInvariant(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
