// Command loadgen drives the order service with synthetic flow and
// reports add-order latency percentiles and throughput.
//
// Three phases: populate both sides of the book with resting limit
// orders, replay a burst of random limit orders around the touch, then
// sweep with market orders.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"clob/domain/book"
	"clob/service"
)

func main() {
	levels := flag.Int("levels", 1000, "price levels per side to populate")
	perLevel := flag.Int("per-level", 100, "resting orders per level")
	limits := flag.Int("limits", 50000, "random limit orders in the burst phase")
	markets := flag.Int("markets", 5000, "market orders in the sweep phase")
	seed := flag.Int64("seed", 0, "rng seed (0 = time-based)")
	flag.Parse()

	if err := run(*levels, *perLevel, *limits, *markets, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(levels, perLevel, limits, markets int, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	fmt.Printf("seed %d, %d levels x %d orders/side, %d limits, %d markets\n",
		seed, levels, perLevel, limits, markets)

	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	logger, err := logCfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc := service.New(service.Config{
		Logger:   logger.Sugar(),
		PoolSize: levels * perLevel * 2,
	})
	defer svc.Close()

	var id uint64

	// Sells from 12500 upward, buys from 12300 downward. The 200-tick
	// gap keeps the populate phase match-free.
	const (
		askFloor = 12500
		bidCeil  = 12300
	)

	populate := func(side book.Side, base, step int64) latencyStats {
		lat := make([]time.Duration, 0, levels*perLevel)
		for lvl := 0; lvl < levels; lvl++ {
			price := base + step*int64(lvl)
			for i := 0; i < perLevel; i++ {
				id++
				qty := int64(rng.Intn(901) + 100)
				start := time.Now()
				svc.AddOrder(side, book.GoodTillCancel, price, qty, id)
				lat = append(lat, time.Since(start))
			}
		}
		return computeLatencyStats(lat)
	}

	start := time.Now()
	sellStats := populate(book.Sell, askFloor, 1)
	sellStats.report("populate sell side", time.Since(start))

	start = time.Now()
	buyStats := populate(book.Buy, bidCeil, -1)
	buyStats.report("populate buy side", time.Since(start))

	// Burst of limit orders around the touch, prices drawn from a
	// normal distribution clamped to [12200, 12700] so a fraction cross.
	const (
		mid     = 12400.0
		stddev  = 125.0
		pxFloor = 12200
		pxCeil  = 12700
	)
	lat := make([]time.Duration, 0, limits)
	var tradeCount int
	start = time.Now()
	for i := 0; i < limits; i++ {
		id++
		price := int64(rng.NormFloat64()*stddev + mid)
		if price < pxFloor {
			price = pxFloor
		}
		if price > pxCeil {
			price = pxCeil
		}
		side := book.Buy
		if rng.Intn(2) == 1 {
			side = book.Sell
		}
		qty := int64(rng.Intn(1901) + 100)
		t0 := time.Now()
		trades := svc.AddOrder(side, book.GoodTillCancel, price, qty, id)
		lat = append(lat, time.Since(t0))
		tradeCount += len(trades)
	}
	limitStats := computeLatencyStats(lat)
	limitStats.report("random limit orders", time.Since(start))
	fmt.Printf("  trades:     %d\n", tradeCount)

	// Market sweep.
	lat = lat[:0]
	tradeCount = 0
	start = time.Now()
	for i := 0; i < markets; i++ {
		id++
		side := book.Buy
		if rng.Intn(2) == 1 {
			side = book.Sell
		}
		qty := int64(rng.Intn(1901) + 100)
		t0 := time.Now()
		trades := svc.AddOrder(side, book.Market, book.PriceMarket, qty, id)
		lat = append(lat, time.Since(t0))
		tradeCount += len(trades)
	}
	marketStats := computeLatencyStats(lat)
	marketStats.report("market orders", time.Since(start))
	fmt.Printf("  trades:     %d\n", tradeCount)

	fmt.Printf("\n%d order(s) resting at exit\n", svc.Size())
	return nil
}
