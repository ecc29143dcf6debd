package service

import "time"

// pruneSlack delays the sweep slightly past the boundary so a timer
// that fires early never runs before the cutoff.
const pruneSlack = 100 * time.Millisecond

// runPruner sleeps until the next end-of-day boundary, sweeps every
// good-for-day order through the standard cancel path, and repeats
// until shutdown.
func (s *OrderService) runPruner() {
	defer close(s.done)
	for {
		timer := time.NewTimer(s.untilEndOfDay(time.Now()) + pruneSlack)
		select {
		case <-s.shutdown:
			timer.Stop()
			return
		case <-timer.C:
			n := s.pruneDayOrders()
			if n > 0 {
				s.log.Infow("good-for-day sweep", "cancelled", n)
			}
		}
	}
}

// untilEndOfDay computes the wait to the next cutoff in local time.
// If today's boundary has passed, tomorrow's applies.
func (s *OrderService) untilEndOfDay(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Add(s.endOfDay)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

// pruneDayOrders cancels all resting GFD orders under the book mutex.
func (s *OrderService) pruneDayOrders() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.book.DayOrderIDs()
	for _, id := range ids {
		s.book.Cancel(id)
	}
	return len(ids)
}
