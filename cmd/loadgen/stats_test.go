package main

import (
	"testing"
	"time"
)

func TestComputeLatencyStatsEmpty(t *testing.T) {
	st := computeLatencyStats(nil)
	if st.Samples != 0 || st.Max != 0 {
		t.Fatalf("expected zero stats, got %+v", st)
	}
}

func TestComputeLatencyStats(t *testing.T) {
	lat := make([]time.Duration, 100)
	for i := range lat {
		lat[i] = time.Duration(100-i) * time.Microsecond // unsorted input
	}
	st := computeLatencyStats(lat)

	if st.Samples != 100 {
		t.Fatalf("samples = %d, want 100", st.Samples)
	}
	if st.P50 != 50*time.Microsecond {
		t.Errorf("p50 = %v, want 50µs", st.P50)
	}
	if st.P90 != 90*time.Microsecond {
		t.Errorf("p90 = %v, want 90µs", st.P90)
	}
	if st.P99 != 99*time.Microsecond {
		t.Errorf("p99 = %v, want 99µs", st.P99)
	}
	if st.Max != 100*time.Microsecond {
		t.Errorf("max = %v, want 100µs", st.Max)
	}
	if st.Avg != 50500*time.Nanosecond {
		t.Errorf("avg = %v, want 50.5µs", st.Avg)
	}
}

func TestPercentileNearestRankSingleSample(t *testing.T) {
	sorted := []time.Duration{time.Millisecond}
	for _, pct := range []float64{0.01, 50, 99.99} {
		if got := percentileNearestRank(sorted, pct); got != time.Millisecond {
			t.Errorf("pct %v = %v, want 1ms", pct, got)
		}
	}
}
