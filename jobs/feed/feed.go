// Package feed publishes executed trades to Kafka as JSON. It is a
// collaborator outside the matching core: the facade hands trades to a
// bounded channel and a single goroutine drains it, so the matcher
// never waits on the broker.
package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"clob/domain/book"
)

type Feed struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.SugaredLogger
	ch       chan book.Trade
}

// ------------------------------------------------
// CONSTRUCTOR
// ------------------------------------------------

func New(brokers []string, topic string, log *zap.SugaredLogger) (*Feed, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return newWithProducer(producer, topic, log), nil
}

func newWithProducer(p sarama.SyncProducer, topic string, log *zap.SugaredLogger) *Feed {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Feed{
		producer: p,
		topic:    topic,
		log:      log,
		ch:       make(chan book.Trade, 4096),
	}
}

// ------------------------------------------------
// PUBLISH PATH
// ------------------------------------------------

// Publish enqueues trades without blocking; when the buffer is full
// the trade is dropped and counted in the log.
func (f *Feed) Publish(trades []book.Trade) {
	for _, t := range trades {
		select {
		case f.ch <- t:
		default:
			f.log.Warnw("trade feed saturated, dropping", "trade", t.ID)
		}
	}
}

// Start drains the channel until the context is cancelled.
func (f *Feed) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				f.flush()
				return
			case t := <-f.ch:
				f.send(t)
			}
		}
	}()
}

func (f *Feed) send(t book.Trade) {
	data, err := json.Marshal(t)
	if err != nil {
		f.log.Errorw("failed to marshal trade", "error", err)
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: f.topic,
		Key:   sarama.StringEncoder(t.ID),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := f.producer.SendMessage(msg); err != nil {
		f.log.Errorw("trade publish failed", "trade", t.ID, "error", err)
	}
}

// flush sends whatever is still buffered, bounded so shutdown stays
// prompt even against a dead broker.
func (f *Feed) flush() {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case t := <-f.ch:
			f.send(t)
		default:
			return
		}
	}
}

// ------------------------------------------------
// SHUTDOWN
// ------------------------------------------------

func (f *Feed) Close() error {
	return f.producer.Close()
}
