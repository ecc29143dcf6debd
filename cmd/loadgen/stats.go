package main

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// latencyStats summarises a batch of per-call latencies using
// nearest-rank percentiles.
type latencyStats struct {
	Samples int
	Avg     time.Duration
	P50     time.Duration
	P90     time.Duration
	P99     time.Duration
	Max     time.Duration
}

func percentileNearestRank(sorted []time.Duration, pct float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	rank := math.Ceil(pct / 100.0 * float64(n))
	idx := int(rank) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

func computeLatencyStats(latencies []time.Duration) latencyStats {
	var st latencyStats
	if len(latencies) == 0 {
		return st
	}
	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	st.Samples = len(sorted)
	st.Avg = total / time.Duration(st.Samples)
	st.P50 = percentileNearestRank(sorted, 50)
	st.P90 = percentileNearestRank(sorted, 90)
	st.P99 = percentileNearestRank(sorted, 99)
	st.Max = sorted[len(sorted)-1]
	return st
}

func (st latencyStats) report(label string, elapsed time.Duration) {
	fmt.Printf("\n%s:\n", label)
	fmt.Printf("  samples:    %d\n", st.Samples)
	if elapsed > 0 {
		fmt.Printf("  throughput: %.0f ops/s\n", float64(st.Samples)/elapsed.Seconds())
	}
	fmt.Printf("  avg:        %v\n", st.Avg)
	fmt.Printf("  p50:        %v\n", st.P50)
	fmt.Printf("  p90:        %v\n", st.P90)
	fmt.Printf("  p99:        %v\n", st.P99)
	fmt.Printf("  max:        %v\n", st.Max)
}
