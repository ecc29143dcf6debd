// Package slab provides a typed slot allocator with stable addresses
// and release-in-any-order semantics. It backs the book's order
// storage; all calls happen under the book mutex, so the slab carries
// no locking of its own.
package slab

// Slab allocates fixed-size slots out of grow-only blocks. Blocks are
// never reallocated, so a handle stays valid until it is put back.
type Slab[T any] struct {
	free      []*T
	blocks    [][]T
	blockSize int
	capacity  int
}

func New[T any](blockSize int) *Slab[T] {
	if blockSize <= 0 {
		blockSize = 1024
	}
	return &Slab[T]{blockSize: blockSize}
}

// Get pops a free slot, growing by one block when exhausted.
func (s *Slab[T]) Get() *T {
	if len(s.free) == 0 {
		s.grow()
	}
	n := len(s.free) - 1
	p := s.free[n]
	s.free[n] = nil
	s.free = s.free[:n]
	return p
}

// Put zeroes the slot and returns it to the free list. Slots may come
// back in any order.
func (s *Slab[T]) Put(p *T) {
	var zero T
	*p = zero
	s.free = append(s.free, p)
}

// Cap is the total number of slots ever carved out.
func (s *Slab[T]) Cap() int {
	return s.capacity
}

func (s *Slab[T]) grow() {
	block := make([]T, s.blockSize)
	s.blocks = append(s.blocks, block)
	s.capacity += s.blockSize
	for i := range block {
		s.free = append(s.free, &block[i])
	}
}
