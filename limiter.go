package blogcrm

import (
	"sync"
	"time"
)

// LoginLimiter counts failed login attempts per key (the client IP) inside a
// sliding window. Successful logins clear the key.
type LoginLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	max      int
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewLoginLimiter creates a LoginLimiter that allows max failures per window.
// Close stops its background sweeper.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		failures: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stop:     make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *LoginLimiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for key := range l.failures {
				l.pruneLocked(key, now)
			}
			l.mu.Unlock()
		}
	}
}

// pruneLocked drops expired failures for key and returns how many remain.
func (l *LoginLimiter) pruneLocked(key string, now time.Time) int {
	cutoff := now.Add(-l.window)
	hits := l.failures[key]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, key)
		return 0
	}
	l.failures[key] = kept
	return len(kept)
}

// Check reports whether key may attempt a login. It does not count as an
// attempt.
func (l *LoginLimiter) Check(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pruneLocked(key, time.Now()) < l.max
}

// Record registers a failed login for key.
func (l *LoginLimiter) Record(key string) {
	l.mu.Lock()
	l.failures[key] = append(l.failures[key], time.Now())
	l.mu.Unlock()
}

// Reset forgets all failures for key.
func (l *LoginLimiter) Reset(key string) {
	l.mu.Lock()
	delete(l.failures, key)
	l.mu.Unlock()
}

// Close stops the background sweeper. It is safe to call more than once.
func (l *LoginLimiter) Close() {
	l.once.Do(func() { close(l.stop) })
}
