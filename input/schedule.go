package input

import (
	"sync"
	"time"
)

// maxPendingReleases bounds the release queue. Sixteen covers every key a
// hand can hold at once; when full, new entries are dropped and the keys
// already tracked are unaffected.
const maxPendingReleases = 16

// pendingRelease is one scheduled key-up: the key and its absolute deadline.
type pendingRelease struct {
	key      int
	deadline time.Time
}

// releaseQueue converts terminal auto-repeat into discrete key-up events.
// A repeated "key is down" report does not produce a new entry; it pushes
// the existing entry's deadline out. When a deadline elapses without a new
// repeat, the key-up is delivered and the bitmap bit cleared.
//
// The queue is mutated from the input goroutine but guarded by a mutex so
// tests (and any future caller) can drive it directly.
type releaseQueue struct {
	mu      sync.Mutex
	pending []pendingRelease
	held    *KeyBitmap
}

func newReleaseQueue(held *KeyBitmap) *releaseQueue {
	return &releaseQueue{
		pending: make([]pendingRelease, 0, maxPendingReleases),
		held:    held,
	}
}

// schedule arranges for key to be released delay from now. If the key
// already has a pending release its deadline is replaced, never duplicated;
// otherwise a new entry is created and the key marked held.
func (q *releaseQueue) schedule(key int, delay time.Duration, now time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()

	deadline := now.Add(delay)

	for i := range q.pending {
		if q.pending[i].key == key {
			q.pending[i].deadline = deadline
			return
		}
	}

	if len(q.pending) < maxPendingReleases {
		q.pending = append(q.pending, pendingRelease{key: key, deadline: deadline})
		q.held.MarkHeld(key)
	}
}

// processDue delivers keyUp for every entry whose deadline has passed,
// clears the bitmap bit, and removes the entry. Each due entry is processed
// exactly once per call; order across simultaneously due keys is
// unspecified.
func (q *releaseQueue) processDue(now time.Time, keyUp func(int)) {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Iterate backwards so removal by swap-with-last is safe
	for i := len(q.pending) - 1; i >= 0; i-- {
		pr := q.pending[i]
		if now.Before(pr.deadline) {
			continue
		}

		keyUp(pr.key)
		q.held.MarkReleased(pr.key)

		q.pending[i] = q.pending[len(q.pending)-1]
		q.pending = q.pending[:len(q.pending)-1]
	}
}

// len reports the number of pending entries, for tests.
func (q *releaseQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
