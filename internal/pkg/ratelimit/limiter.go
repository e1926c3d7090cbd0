package ratelimit

import (
	"sync"
	"time"
)

// entry records requests observed at a point in time.
type entry struct {
	ts    time.Time
	count int
}

type bucketKey struct {
	identity string
	path     string
}

// Limiter is an in-process sliding-window request governor. Each
// (identity, path) pair owns an ordered list of (timestamp, count) entries;
// a request is allowed while the sum of counts inside the window stays
// below the limit. State is process-wide and mutex-guarded — it is only
// correct for a single-instance deployment.
type Limiter struct {
	mu      sync.Mutex
	buckets map[bucketKey][]entry
	now     func() time.Time
}

// New creates an empty limiter.
func New() *Limiter {
	return &Limiter{
		buckets: make(map[bucketKey][]entry),
		now:     time.Now,
	}
}

// Result describes the outcome of a limiter check.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

// Check prunes entries older than the window, sums what survives, and
// either rejects the request or records it. RetryAfter is derived from the
// age of the oldest surviving entry, so a client backing off for that long
// is guaranteed at least one free slot.
func (l *Limiter) Check(identity, path string, limit int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// A non-positive limit admits nothing; reject without touching state.
	if limit <= 0 {
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: window,
			ResetAt:    now.Add(window),
		}
	}

	key := bucketKey{identity: identity, path: path}

	kept := l.buckets[key][:0]
	for _, e := range l.buckets[key] {
		if now.Sub(e.ts) < window {
			kept = append(kept, e)
		}
	}
	l.buckets[key] = kept

	total := 0
	for _, e := range kept {
		total += e.count
	}

	if total >= limit {
		oldest := kept[0].ts // total >= limit > 0 implies at least one entry
		retry := oldest.Add(window).Sub(now)
		if retry < 0 {
			retry = 0
		}
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retry,
			ResetAt:    oldest.Add(window),
		}
	}

	l.buckets[key] = append(kept, entry{ts: now, count: 1})

	resetAt := now.Add(window)
	if len(kept) > 0 {
		resetAt = kept[0].ts.Add(window)
	}
	return Result{
		Allowed:   true,
		Remaining: limit - total - 1,
		ResetAt:   resetAt,
	}
}

// Remaining reports how many requests the identity may still make against
// the path without recording a request.
func (l *Limiter) Remaining(identity, path string, limit int, window time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	total := 0
	for _, e := range l.buckets[bucketKey{identity: identity, path: path}] {
		if now.Sub(e.ts) < window {
			total += e.count
		}
	}
	if total >= limit {
		return 0
	}
	return limit - total
}
