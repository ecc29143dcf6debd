package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"clob/domain/book"
	"clob/infra/slab"
)

/*
OrderService is the ONLY write entry point into the engine.

All coordination between:
- domain (book)
- infra (slab)
- background pruning
- the optional trade feed
happens here, behind one mutex.
*/
type OrderService struct {
	mu   sync.Mutex
	book *book.Book
	pool *slab.Slab[book.Order]
	log  *zap.SugaredLogger
	feed TradePublisher

	endOfDay time.Duration

	shutdown  chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// TradePublisher receives executions after the book mutex is
// released. Implementations must not block the caller.
//
// Within one batch the trades keep their matching order, but batches
// from concurrent admissions may arrive in a different order than the
// book serialised them.
type TradePublisher interface {
	Publish([]book.Trade)
}

// Config carries the facade's wiring. Zero values get defaults; Feed
// may stay nil.
type Config struct {
	PoolSize int
	EndOfDay time.Duration // wall-clock offset of the GFD cutoff
	Logger   *zap.SugaredLogger
	Feed     TradePublisher
}

const defaultEndOfDay = 16 * time.Hour

// New wires the facade and starts the day-order pruner.
func New(cfg Config) *OrderService {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1 << 16
	}
	if cfg.EndOfDay <= 0 {
		cfg.EndOfDay = defaultEndOfDay
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	pool := slab.New[book.Order](cfg.PoolSize)
	s := &OrderService{
		book:     book.New(pool),
		pool:     pool,
		log:      cfg.Logger,
		feed:     cfg.Feed,
		endOfDay: cfg.EndOfDay,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.runPruner()
	return s
}

// Close signals the pruner, waits for it, and releases every resting
// order. Idempotent.
func (s *OrderService) Close() {
	s.closeOnce.Do(func() {
		close(s.shutdown)
		<-s.done

		s.mu.Lock()
		s.book.Clear()
		s.mu.Unlock()
	})
}

// ---- commands ----

// AddOrder submits a new order and returns its executions. Rejections
// (duplicate id, FAK that cannot cross, FOK that cannot fully fill)
// return an empty slice and leave the book untouched.
func (s *OrderService) AddOrder(side book.Side, typ book.OrderType, price, qty int64, id uint64) []book.Trade {
	s.mu.Lock()
	o := s.pool.Get()
	*o = book.Order{ID: id, Side: side, Type: typ, Price: price, Qty: qty}
	trades := s.book.Add(o)
	s.mu.Unlock()

	if len(trades) > 0 {
		s.log.Infow("order matched", "id", id, "trades", len(trades))
		if s.feed != nil {
			s.feed.Publish(trades)
		}
	}
	return trades
}

// CancelOrder removes a resting order. Unknown ids are a no-op.
func (s *OrderService) CancelOrder(id uint64) bool {
	s.mu.Lock()
	ok := s.book.Cancel(id)
	s.mu.Unlock()
	return ok
}

// ModifyOrder replaces a resting order, keeping id and lifetime
// policy, and returns the executions of the re-admission.
func (s *OrderService) ModifyOrder(id uint64, side book.Side, price, qty int64) []book.Trade {
	s.mu.Lock()
	trades := s.book.Modify(id, side, price, qty)
	s.mu.Unlock()

	if len(trades) > 0 && s.feed != nil {
		s.feed.Publish(trades)
	}
	return trades
}

// ---- queries ----

// Size is the number of resting orders.
func (s *OrderService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Size()
}

// Snapshot returns a point-in-time depth copy; readers never hold the
// book lock while inspecting it.
func (s *OrderService) Snapshot() book.LevelsInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Levels()
}

// GetOrder returns a copy of a resting order by id.
func (s *OrderService) GetOrder(id uint64) (book.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Get(id)
}
