package paymentservice

import "sync"

// recentSet remembers recently applied session ids in memory. It only short-circuits
// obvious repeats; the durable marker in the store stays authoritative.
type recentSet struct {
	mu    sync.Mutex
	limit int
	order []string
	items map[string]struct{}
}

func newRecentSet(limit int) *recentSet {
	if limit < 2 {
		limit = 2
	}
	return &recentSet{
		limit: limit,
		items: make(map[string]struct{}, limit),
	}
}

func (r *recentSet) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok
}

// Add keeps the newest half once the set grows past its limit.
func (r *recentSet) Add(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; ok {
		return
	}
	r.items[id] = struct{}{}
	r.order = append(r.order, id)
	if len(r.order) <= r.limit {
		return
	}

	keep := r.limit / 2
	for _, old := range r.order[:len(r.order)-keep] {
		delete(r.items, old)
	}
	r.order = append([]string(nil), r.order[len(r.order)-keep:]...)
}

func (r *recentSet) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}
