package input

import (
	"testing"
	"time"
)

func TestScheduleMergesDeadline(t *testing.T) {
	var held KeyBitmap
	q := newReleaseQueue(&held)
	now := time.Now()

	q.schedule(42, 50*time.Millisecond, now)
	q.schedule(42, 150*time.Millisecond, now.Add(10*time.Millisecond))

	if q.len() != 1 {
		t.Fatalf("expected 1 pending entry after merge, got %d", q.len())
	}

	// The first deadline has passed but the merged one has not: no release
	var released []int
	q.processDue(now.Add(60*time.Millisecond), func(k int) { released = append(released, k) })
	if len(released) != 0 {
		t.Fatalf("release fired at the superseded deadline: %v", released)
	}

	// Past the merged deadline: exactly one release
	q.processDue(now.Add(200*time.Millisecond), func(k int) { released = append(released, k) })
	if len(released) != 1 || released[0] != 42 {
		t.Fatalf("expected one release of key 42, got %v", released)
	}
	if held.IsHeld(42) {
		t.Error("key still held after release delivery")
	}
	if q.len() != 0 {
		t.Errorf("entry not removed after delivery, %d left", q.len())
	}
}

func TestScheduleMarksHeldOnce(t *testing.T) {
	var held KeyBitmap
	q := newReleaseQueue(&held)
	now := time.Now()

	q.schedule(7, 50*time.Millisecond, now)
	if !held.IsHeld(7) {
		t.Error("key not marked held on first schedule")
	}
	q.schedule(7, 50*time.Millisecond, now)
	if q.len() != 1 {
		t.Errorf("duplicate entry created, %d pending", q.len())
	}
}

func TestCapacityDropSilently(t *testing.T) {
	var held KeyBitmap
	q := newReleaseQueue(&held)
	now := time.Now()

	for k := 0; k < maxPendingReleases; k++ {
		q.schedule(k, time.Second, now)
	}
	q.schedule(200, time.Second, now)

	if q.len() != maxPendingReleases {
		t.Fatalf("capacity exceeded: %d entries", q.len())
	}
	if held.IsHeld(200) {
		t.Error("dropped key was marked held")
	}
	// Existing keys unaffected
	for k := 0; k < maxPendingReleases; k++ {
		if !held.IsHeld(k) {
			t.Errorf("existing key %d lost its held state", k)
		}
	}
}

func TestProcessDueExactlyOnce(t *testing.T) {
	var held KeyBitmap
	q := newReleaseQueue(&held)
	now := time.Now()

	q.schedule(1, 10*time.Millisecond, now)
	q.schedule(2, 10*time.Millisecond, now)
	q.schedule(3, time.Hour, now)

	counts := map[int]int{}
	later := now.Add(20 * time.Millisecond)
	q.processDue(later, func(k int) { counts[k]++ })
	q.processDue(later, func(k int) { counts[k]++ })

	if counts[1] != 1 || counts[2] != 1 {
		t.Errorf("due keys not released exactly once: %v", counts)
	}
	if counts[3] != 0 {
		t.Error("undue key released")
	}
	if q.len() != 1 {
		t.Errorf("expected 1 entry (the undue key), got %d", q.len())
	}
}
