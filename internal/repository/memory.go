package repository

import "sync"

// sequence hands out monotonically increasing integer ids.
// Ids are never reused, even if a record were removed.
type sequence struct {
	mu   sync.Mutex
	last int64
}

func (s *sequence) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}
