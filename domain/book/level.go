package book

// PriceLevel is an arrival-ordered FIFO of resting orders at a single
// price. Orders link themselves, so unlinking by handle is O(1) and
// handles held elsewhere stay valid across unrelated mutations.
type PriceLevel struct {
	Price int64

	head *Order
	tail *Order
	size int
}

func (l *PriceLevel) Enqueue(o *Order) {
	if l.head == nil {
		l.head = o
	} else {
		l.tail.next = o
		o.prev = l.tail
	}
	l.tail = o
	l.size++
}

// Unlink removes o from the level. o must be linked into this level.
func (l *PriceLevel) Unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	l.size--
}

func (l *PriceLevel) Head() *Order {
	return l.head
}

func (l *PriceLevel) Empty() bool {
	return l.head == nil
}

func (l *PriceLevel) Size() int {
	return l.size
}

// Side comparators for the level trees. Bids sort descending so that
// ascending iteration on either tree walks best price first.
func bidsBefore(a, b *PriceLevel) bool { return a.Price > b.Price }
func asksBefore(a, b *PriceLevel) bool { return a.Price < b.Price }
