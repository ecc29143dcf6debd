package book

import "github.com/google/btree"

// Allocator hands out stable order slots. All calls happen under the
// caller's serialisation, so implementations need no locking.
type Allocator interface {
	Get() *Order
	Put(*Order)
}

// Book owns every resting order. It is not safe for concurrent use;
// the service facade serialises all access on one mutex.
type Book struct {
	bids *btree.BTreeG[*PriceLevel]
	asks *btree.BTreeG[*PriceLevel]

	// O(1) level lookup by exact price, one map per side.
	bidLevels map[int64]*PriceLevel
	askLevels map[int64]*PriceLevel

	// id index: the *Order handle is also its level iterator.
	orders map[uint64]*Order

	depth *Depth
	alloc Allocator
}

func New(alloc Allocator) *Book {
	return &Book{
		bids:      btree.NewG(2, bidsBefore),
		asks:      btree.NewG(2, asksBefore),
		bidLevels: make(map[int64]*PriceLevel),
		askLevels: make(map[int64]*PriceLevel),
		orders:    make(map[uint64]*Order),
		depth:     newDepth(),
		alloc:     alloc,
	}
}

// Add admits an inbound order, matches to quiescence, and returns the
// executions in matching order. Rejections (duplicate id, conditional
// not admissible, non-positive quantity, bad limit price) return nil
// with no book mutation; the order slot is reclaimed either way.
func (b *Book) Add(o *Order) []Trade {
	if _, exists := b.orders[o.ID]; exists {
		b.alloc.Put(o)
		return nil
	}
	if o.Qty <= 0 || (o.Type != Market && o.Price < 0) {
		b.alloc.Put(o)
		return nil
	}

	switch o.Type {
	case FillAndKill:
		if !b.canCross(o.Side, o.Price) {
			b.alloc.Put(o)
			return nil
		}
	case FillOrKill:
		if !b.depth.canFill(o.Side, o.Price, o.Remaining()) {
			b.alloc.Put(o)
			return nil
		}
	case Market:
		o.normalize()
	}

	id, typ := o.ID, o.Type
	b.insert(o)
	trades := b.matchLoop(o)
	b.trimHeads()
	// A Market remainder must never rest. Its sentinel-priced level can
	// be shared with limit orders legally resting at the same tick, so
	// the head trim alone cannot see it; cancel it by id.
	if typ == Market {
		if rest, ok := b.orders[id]; ok {
			b.cancel(rest)
		}
	}
	return trades
}

// Cancel removes a resting order through the standard path. Unknown
// ids are a no-op.
func (b *Book) Cancel(id uint64) bool {
	o, ok := b.orders[id]
	if !ok {
		return false
	}
	b.cancel(o)
	return true
}

// Modify is cancel-then-add: the replacement keeps the id and the
// original lifetime policy but takes the new side, price, and
// quantity, and joins the tail of its level. Unknown ids return nil.
func (b *Book) Modify(id uint64, side Side, price, qty int64) []Trade {
	o, ok := b.orders[id]
	if !ok {
		return nil
	}
	typ := o.Type
	b.cancel(o)

	n := b.alloc.Get()
	*n = Order{ID: id, Side: side, Type: typ, Price: price, Qty: qty}
	return b.Add(n)
}

// Get returns a copy of a resting order, or false. The copy carries no
// book internals, so callers cannot reach live state through it.
func (b *Book) Get(id uint64) (Order, bool) {
	o, ok := b.orders[id]
	if !ok {
		return Order{}, false
	}
	c := *o
	c.next, c.prev = nil, nil
	return c, true
}

// Size is the number of resting orders.
func (b *Book) Size() int {
	return len(b.orders)
}

// Levels is a consistent by-value depth snapshot.
func (b *Book) Levels() LevelsInfo {
	return b.depth.Snapshot()
}

// DayOrderIDs collects every resting good-for-day order for the
// end-of-day sweep.
func (b *Book) DayOrderIDs() []uint64 {
	var ids []uint64
	for id, o := range b.orders {
		if o.Type == GoodForDay {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clear cancels every resting order, releasing all slots. Used at
// facade teardown.
func (b *Book) Clear() {
	for _, o := range b.orders {
		b.cancel(o)
	}
}

// ---- matching ----

// matchLoop crosses the book until quiescence. Every cross involves
// the inbound order (the pre-state never overlaps), and the trade
// prices at the opposite, resting side's working price.
func (b *Book) matchLoop(inbound *Order) []Trade {
	var trades []Trade
	for {
		bidLvl, ok := b.bids.Min()
		if !ok {
			break
		}
		askLvl, ok := b.asks.Min()
		if !ok {
			break
		}
		if bidLvl.Price < askLvl.Price {
			break
		}

		bid := bidLvl.Head()
		ask := askLvl.Head()

		qty := bid.Remaining()
		if ask.Remaining() < qty {
			qty = ask.Remaining()
		}
		price := ask.Price
		if bid != inbound {
			price = bid.Price
		}
		trades = append(trades, newTrade(bid, ask, price, qty))

		bid.Filled += qty
		b.depth.apply(bid.Price, qty, Buy, depthMatch)
		if bid.IsFilled() {
			b.unlinkFilled(bid)
		}

		ask.Filled += qty
		b.depth.apply(ask.Price, qty, Sell, depthMatch)
		if ask.IsFilled() {
			b.unlinkFilled(ask)
		}
	}
	return trades
}

// trimHeads kills fill-and-kill residue left at the top of the book
// after matching. Deeper fill-and-kill remainders are deliberately not
// revisited.
func (b *Book) trimHeads() {
	if lvl, ok := b.bids.Min(); ok {
		if h := lvl.Head(); h.Type == FillAndKill {
			b.cancel(h)
		}
	}
	if lvl, ok := b.asks.Min(); ok {
		if h := lvl.Head(); h.Type == FillAndKill {
			b.cancel(h)
		}
	}
}

// canCross reports whether a limit order at price could trade
// immediately against the opposite best.
func (b *Book) canCross(side Side, price int64) bool {
	if side == Buy {
		best, ok := b.asks.Min()
		return ok && best.Price <= price
	}
	best, ok := b.bids.Min()
	return ok && best.Price >= price
}

// ---- book surgery ----

func (b *Book) insert(o *Order) {
	var lvl *PriceLevel
	if o.Side == Buy {
		lvl = b.bidLevels[o.Price]
		if lvl == nil {
			lvl = &PriceLevel{Price: o.Price}
			b.bidLevels[o.Price] = lvl
			b.bids.ReplaceOrInsert(lvl)
		}
	} else {
		lvl = b.askLevels[o.Price]
		if lvl == nil {
			lvl = &PriceLevel{Price: o.Price}
			b.askLevels[o.Price] = lvl
			b.asks.ReplaceOrInsert(lvl)
		}
	}
	lvl.Enqueue(o)
	b.orders[o.ID] = o
	b.depth.apply(o.Price, o.Remaining(), o.Side, depthAdd)
}

// unlink detaches o from its level and the index, erasing the level if
// it empties. The order slot is NOT released here.
func (b *Book) unlink(o *Order) {
	var lvl *PriceLevel
	if o.Side == Buy {
		lvl = b.bidLevels[o.Price]
	} else {
		lvl = b.askLevels[o.Price]
	}
	if lvl == nil {
		panic("book: resting order has no price level")
	}
	lvl.Unlink(o)
	if lvl.Empty() {
		if o.Side == Buy {
			delete(b.bidLevels, o.Price)
			b.bids.Delete(lvl)
		} else {
			delete(b.askLevels, o.Price)
			b.asks.Delete(lvl)
		}
	}
	delete(b.orders, o.ID)
}

// cancel is the standard removal path: Remove delta for the
// remainder, then release.
func (b *Book) cancel(o *Order) {
	b.unlink(o)
	b.depth.apply(o.Price, o.Remaining(), o.Side, depthRemove)
	b.alloc.Put(o)
}

// unlinkFilled erases an order consumed by matching. The matched
// quantity already left the aggregate via Match deltas, so only the
// order count is retired.
func (b *Book) unlinkFilled(o *Order) {
	price, side := o.Price, o.Side
	b.unlink(o)
	b.depth.dropOne(price, side)
	b.alloc.Put(o)
}
