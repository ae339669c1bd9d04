package validator

import (
	"sync"
	"time"
)

// NonceStore records (timestamp, nonce) pairs and detects replays. The
// check-and-record must be a single atomic step: two concurrent calls
// with the same pair must never both report it as unseen.
type NonceStore interface {
	// Remember records the pair and reports whether it was unseen.
	// A false return means the launch is a replay.
	Remember(timestamp int64, nonce string) bool
}

// DefaultNonceRetention bounds how long recorded nonces are kept. It
// exceeds the timestamp window so that a nonce is always retained for
// at least as long as its timestamp can validate.
const DefaultNonceRetention = 90 * time.Second

// MemoryNonceStore is the in-process NonceStore. Nonces are bucketed by
// their timestamp second; buckets older than the retention period are
// evicted lazily on insert, keeping memory bounded without a background
// goroutine. Safe for concurrent use.
type MemoryNonceStore struct {
	mu        sync.Mutex
	seen      map[int64]map[string]struct{}
	retention time.Duration
	lastSweep int64
	now       func() time.Time
}

// NewMemoryNonceStore returns an empty store with the given retention.
// A non-positive retention falls back to DefaultNonceRetention.
func NewMemoryNonceStore(retention time.Duration) *MemoryNonceStore {
	if retention <= 0 {
		retention = DefaultNonceRetention
	}
	return &MemoryNonceStore{
		seen:      make(map[int64]map[string]struct{}),
		retention: retention,
		now:       time.Now,
	}
}

// Remember implements NonceStore.
func (s *MemoryNonceStore) Remember(timestamp int64, nonce string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()
	s.sweep(now)

	bucket, ok := s.seen[timestamp]
	if !ok {
		bucket = make(map[string]struct{})
		s.seen[timestamp] = bucket
	}
	if _, replayed := bucket[nonce]; replayed {
		return false
	}
	bucket[nonce] = struct{}{}
	return true
}

// Len returns the number of recorded nonces, mainly for tests and
// gauges.
func (s *MemoryNonceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, bucket := range s.seen {
		total += len(bucket)
	}
	return total
}

// sweep drops buckets whose timestamp fell out of the retention window.
// It runs at most once per retention period so the amortized cost per
// insert stays constant. Callers must hold the mutex.
func (s *MemoryNonceStore) sweep(now int64) {
	retention := int64(s.retention / time.Second)
	if now-s.lastSweep < retention {
		return
	}
	s.lastSweep = now
	cutoff := now - retention
	for timestamp := range s.seen {
		if timestamp < cutoff {
			delete(s.seen, timestamp)
		}
	}
}
