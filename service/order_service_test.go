package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"clob/domain/book"
)

func newTestService(t *testing.T, cfg Config) *OrderService {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = zaptest.NewLogger(t).Sugar()
	}
	s := New(cfg)
	t.Cleanup(s.Close)
	return s
}

type captureFeed struct {
	mu     sync.Mutex
	trades []book.Trade
}

func (c *captureFeed) Publish(trades []book.Trade) {
	c.mu.Lock()
	c.trades = append(c.trades, trades...)
	c.mu.Unlock()
}

func TestFacadeFlow(t *testing.T) {
	s := newTestService(t, Config{})
	assert := assert.New(t)

	// Resting sell, then a crossing buy.
	assert.Empty(s.AddOrder(book.Sell, book.GoodTillCancel, 100, 3000, 1))
	trades := s.AddOrder(book.Buy, book.GoodTillCancel, 105, 2500, 4)
	require.Len(t, trades, 1)
	assert.Equal(int64(100), trades[0].Price, "execution price must be the resting side's")
	assert.Equal(int64(2500), trades[0].Qty)

	snap := s.Snapshot()
	require.Len(t, snap.Asks, 1)
	assert.Equal(book.LevelInfo{Price: 100, Quantity: 500, Count: 1}, snap.Asks[0])
	assert.Empty(snap.Bids)
	assert.Equal(1, s.Size())

	// Remaining ask is visible and read-only.
	o, ok := s.GetOrder(1)
	require.True(t, ok)
	assert.Equal(int64(500), o.Remaining())

	// Cancels are idempotent.
	assert.True(s.CancelOrder(1))
	assert.False(s.CancelOrder(1))
	assert.Equal(0, s.Size())
}

func TestFacadeModify(t *testing.T) {
	s := newTestService(t, Config{})

	s.AddOrder(book.Buy, book.GoodTillCancel, 90, 10, 1)
	s.AddOrder(book.Sell, book.GoodTillCancel, 100, 10, 2)

	trades := s.ModifyOrder(1, book.Buy, 100, 10)
	require.Len(t, trades, 1)
	assert.Equal(t, int64(100), trades[0].Price)
	assert.Equal(t, 0, s.Size())

	assert.Empty(t, s.ModifyOrder(99, book.Buy, 100, 10), "unknown id modify must be empty")
}

func TestFacadePublishesTrades(t *testing.T) {
	feed := &captureFeed{}
	s := newTestService(t, Config{Feed: feed})

	s.AddOrder(book.Sell, book.GoodTillCancel, 100, 10, 1)
	s.AddOrder(book.Buy, book.GoodTillCancel, 100, 10, 2)

	feed.mu.Lock()
	defer feed.mu.Unlock()
	require.Len(t, feed.trades, 1)
	assert.Equal(t, uint64(2), feed.trades[0].Buy.OrderID)
}

func TestPruneSweepsOnlyDayOrders(t *testing.T) {
	s := newTestService(t, Config{})

	s.AddOrder(book.Buy, book.GoodForDay, 90, 10, 1)
	s.AddOrder(book.Buy, book.GoodTillCancel, 91, 10, 2)
	s.AddOrder(book.Sell, book.GoodForDay, 120, 10, 3)

	require.Equal(t, 2, s.pruneDayOrders())

	assert.Equal(t, 1, s.Size())
	_, ok := s.GetOrder(2)
	assert.True(t, ok, "non-GFD order must survive the sweep")
	_, gone := s.GetOrder(1)
	assert.False(t, gone)
}

func TestPrunerFiresAtBoundary(t *testing.T) {
	now := time.Now()
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	// Put the cutoff a moment from now so the timer fires in-test.
	s := newTestService(t, Config{EndOfDay: now.Sub(midnight) + 50*time.Millisecond})

	s.AddOrder(book.Buy, book.GoodForDay, 90, 10, 1)
	s.AddOrder(book.Buy, book.GoodTillCancel, 91, 10, 2)

	assert.Eventually(t, func() bool {
		_, ok := s.GetOrder(1)
		return !ok && s.Size() == 1
	}, 2*time.Second, 20*time.Millisecond, "GFD order should be pruned at the boundary")
}

func TestUntilEndOfDay(t *testing.T) {
	s := newTestService(t, Config{})

	loc := time.Local
	before := time.Date(2026, 8, 26, 15, 0, 0, 0, loc)
	assert.Equal(t, time.Hour, s.untilEndOfDay(before))

	after := time.Date(2026, 8, 26, 17, 0, 0, 0, loc)
	assert.Equal(t, 23*time.Hour, s.untilEndOfDay(after))
}

func TestCloseIsIdempotentAndDrainsBook(t *testing.T) {
	s := New(Config{Logger: zaptest.NewLogger(t).Sugar()})
	s.AddOrder(book.Buy, book.GoodTillCancel, 90, 10, 1)

	s.Close()
	s.Close()
	assert.Equal(t, 0, s.Size())
}

func TestSerialisedConcurrentCallers(t *testing.T) {
	s := newTestService(t, Config{})

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			base := uint64(w * 1000)
			for i := uint64(1); i <= 200; i++ {
				s.AddOrder(book.Buy, book.GoodTillCancel, int64(50+w), 10, base+i)
			}
			for i := uint64(1); i <= 200; i++ {
				s.CancelOrder(base + i)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 0, s.Size())
	snap := s.Snapshot()
	assert.Empty(t, snap.Bids)
	assert.Empty(t, snap.Asks)
}
