package book

import "math"

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// OrderType is the lifetime policy of an order.
type OrderType int

const (
	GoodTillCancel OrderType = iota
	GoodForDay
	FillAndKill
	FillOrKill
	Market
)

func (t OrderType) String() string {
	switch t {
	case GoodTillCancel:
		return "GTC"
	case GoodForDay:
		return "GFD"
	case FillAndKill:
		return "FAK"
	case FillOrKill:
		return "FOK"
	case Market:
		return "MKT"
	default:
		return "?"
	}
}

// Prices are fixed-point int64 ticks. PriceMarket is the inbound
// sentinel carried by Market orders; it never reaches a price level.
const (
	PriceMarket     int64 = -1
	marketBuyPrice  int64 = math.MaxInt64
	marketSellPrice int64 = 0
)

// Order is a pure domain entity. Price is the working price and is
// rewritten once for Market orders; Qty is the original quantity.
//
// The next/prev links make the order its own list node: the handle
// stored in the id index doubles as a stable level iterator.
type Order struct {
	ID     uint64
	Side   Side
	Type   OrderType
	Price  int64
	Qty    int64
	Filled int64

	next *Order
	prev *Order
}

func (o *Order) Remaining() int64 {
	return o.Qty - o.Filled
}

func (o *Order) IsFilled() bool {
	return o.Filled == o.Qty
}

// normalize gives a Market order its working price: the largest
// representable tick for buys, zero for sells. The order keeps its
// Market type so the post-match cancel can identify it.
func (o *Order) normalize() {
	if o.Side == Buy {
		o.Price = marketBuyPrice
	} else {
		o.Price = marketSellPrice
	}
}

// Read-only traversal helper.
func (o *Order) Next() *Order {
	return o.next
}
