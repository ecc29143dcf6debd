package book

import (
	"time"

	"github.com/google/uuid"
)

// TradeSide records one leg of an execution: the order id and its
// working price at the time of the cross.
type TradeSide struct {
	OrderID uint64 `json:"order_id"`
	Price   int64  `json:"price"`
}

// Trade is a single execution. Price is the resting (passive) side's
// working price.
type Trade struct {
	ID    string    `json:"trade_id"`
	Buy   TradeSide `json:"buy"`
	Sell  TradeSide `json:"sell"`
	Price int64     `json:"price"`
	Qty   int64     `json:"quantity"`
	Time  int64     `json:"ts"`
}

func newTrade(bid, ask *Order, price, qty int64) Trade {
	return Trade{
		ID:    uuid.New().String(),
		Buy:   TradeSide{OrderID: bid.ID, Price: bid.Price},
		Sell:  TradeSide{OrderID: ask.ID, Price: ask.Price},
		Price: price,
		Qty:   qty,
		Time:  time.Now().UnixNano(),
	}
}
