// Package book implements the in-memory matching core for a single
// instrument. It maintains two ordered side maps of intrusive FIFO
// price levels, an order-id index, and an incrementally maintained
// depth aggregate, and matches inbound orders under strict price-time
// priority.
//
// The package is single-writer and deterministic: callers serialise
// all mutations externally (see the service package). Rejections are
// reported by the empty-trades sentinel, never by errors.
package book
