package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama/mocks"
	"go.uber.org/zap/zaptest"

	"clob/domain/book"
)

func TestFeedPublishesTradeJSON(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	delivered := make(chan struct{})
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var tr book.Trade
		if err := json.Unmarshal(val, &tr); err != nil {
			return err
		}
		if tr.ID != "t-1" || tr.Qty != 25 || tr.Price != 100 {
			return fmt.Errorf("unexpected trade payload: %+v", tr)
		}
		close(delivered)
		return nil
	})

	f := newWithProducer(mp, "trades", zaptest.NewLogger(t).Sugar())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.Start(ctx)

	f.Publish([]book.Trade{{
		ID:    "t-1",
		Buy:   book.TradeSide{OrderID: 4, Price: 105},
		Sell:  book.TradeSide{OrderID: 1, Price: 100},
		Price: 100,
		Qty:   25,
	}})

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("trade never reached the producer")
	}

	cancel()
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestFeedNeverBlocksPublisher(t *testing.T) {
	mp := mocks.NewSyncProducer(t, nil)
	f := newWithProducer(mp, "trades", zaptest.NewLogger(t).Sugar())
	// No Start: the channel fills up and overflow is dropped.

	trades := make([]book.Trade, cap(f.ch)+10)
	for i := range trades {
		trades[i] = book.Trade{ID: fmt.Sprintf("t-%d", i)}
	}

	done := make(chan struct{})
	go func() {
		f.Publish(trades)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a saturated feed")
	}
}
