package book

import "github.com/google/btree"

// LevelInfo is the aggregate state of one price level on one side.
type LevelInfo struct {
	Price    int64 `json:"price"`
	Quantity int64 `json:"quantity"`
	Count    int   `json:"count"`
}

// LevelsInfo is a by-value depth snapshot: bids best-first
// (descending), asks best-first (ascending). Levels with zero count
// never appear.
type LevelsInfo struct {
	Bids []LevelInfo `json:"bids"`
	Asks []LevelInfo `json:"asks"`
}

type depthAction int

const (
	depthAdd depthAction = iota
	depthRemove
	depthMatch
)

// Depth maintains per-side level aggregates, mutated only through
// deltas emitted by the matcher and cancel paths. It is the read
// source for FOK admission, which must never walk individual orders.
type Depth struct {
	bids *btree.BTreeG[*LevelInfo]
	asks *btree.BTreeG[*LevelInfo]
}

func newDepth() *Depth {
	return &Depth{
		bids: btree.NewG(2, func(a, b *LevelInfo) bool { return a.Price > b.Price }),
		asks: btree.NewG(2, func(a, b *LevelInfo) bool { return a.Price < b.Price }),
	}
}

func (d *Depth) tree(side Side) *btree.BTreeG[*LevelInfo] {
	if side == Buy {
		return d.bids
	}
	return d.asks
}

// apply folds one delta into the side's aggregate.
//
// A non-Add delta for an absent price is a no-op: the matcher's
// fill-erase path may have already dropped the level.
func (d *Depth) apply(price, qty int64, side Side, action depthAction) {
	t := d.tree(side)
	lvl, ok := t.Get(&LevelInfo{Price: price})
	if !ok {
		if action != depthAdd {
			return
		}
		lvl = &LevelInfo{Price: price}
		t.ReplaceOrInsert(lvl)
	}

	switch action {
	case depthAdd:
		lvl.Count++
		lvl.Quantity += qty
	case depthRemove:
		lvl.Count--
		lvl.Quantity -= qty
	case depthMatch:
		// Count unchanged: the order is still resting with a
		// reduced remainder.
		lvl.Quantity -= qty
	}

	if lvl.Count == 0 {
		t.Delete(lvl)
	}
}

// dropOne retires one order's count after a match fully consumed it.
// The matched quantity was already subtracted by depthMatch, so only
// the count moves here.
func (d *Depth) dropOne(price int64, side Side) {
	t := d.tree(side)
	lvl, ok := t.Get(&LevelInfo{Price: price})
	if !ok {
		return
	}
	lvl.Count--
	if lvl.Count <= 0 {
		t.Delete(lvl)
	}
}

// canFill reports whether qty is fully fillable against the opposite
// side at prices crossing the given limit. It walks aggregate levels
// in priority order, so cost is bounded by levels touched.
func (d *Depth) canFill(side Side, price, qty int64) bool {
	var acc int64
	if side == Buy {
		d.asks.Ascend(func(l *LevelInfo) bool {
			if l.Price > price {
				return false
			}
			acc += l.Quantity
			return acc < qty
		})
	} else {
		d.bids.Ascend(func(l *LevelInfo) bool {
			if l.Price < price {
				return false
			}
			acc += l.Quantity
			return acc < qty
		})
	}
	return acc >= qty
}

// Snapshot copies the aggregate so callers can inspect it without
// holding the book lock.
func (d *Depth) Snapshot() LevelsInfo {
	out := LevelsInfo{
		Bids: make([]LevelInfo, 0, d.bids.Len()),
		Asks: make([]LevelInfo, 0, d.asks.Len()),
	}
	d.bids.Ascend(func(l *LevelInfo) bool {
		out.Bids = append(out.Bids, *l)
		return true
	})
	d.asks.Ascend(func(l *LevelInfo) bool {
		out.Asks = append(out.Asks, *l)
		return true
	})
	return out
}
