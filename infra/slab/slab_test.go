package slab

import "testing"

type payload struct {
	id  uint64
	ptr *payload
}

func TestGetPutReuse(t *testing.T) {
	s := New[payload](4)

	a := s.Get()
	a.id = 7
	s.Put(a)

	b := s.Get()
	if b != a {
		t.Fatal("freed slot not reused")
	}
	if b.id != 0 || b.ptr != nil {
		t.Fatalf("slot not zeroed on release: %+v", *b)
	}
}

func TestGrowKeepsLiveSlotsStable(t *testing.T) {
	s := New[payload](2)

	live := make([]*payload, 0, 10)
	for i := 0; i < 10; i++ {
		p := s.Get()
		p.id = uint64(i)
		live = append(live, p)
	}
	if s.Cap() < 10 {
		t.Fatalf("cap %d after 10 gets", s.Cap())
	}
	for i, p := range live {
		if p.id != uint64(i) {
			t.Fatalf("slot %d moved or clobbered: id %d", i, p.id)
		}
	}
}

func TestReleaseInAnyOrder(t *testing.T) {
	s := New[payload](8)

	ps := make([]*payload, 6)
	for i := range ps {
		ps[i] = s.Get()
	}
	for _, i := range []int{3, 0, 5, 1, 4, 2} {
		s.Put(ps[i])
	}
	seen := make(map[*payload]bool)
	for range ps {
		p := s.Get()
		if seen[p] {
			t.Fatal("slot handed out twice")
		}
		seen[p] = true
	}
}
