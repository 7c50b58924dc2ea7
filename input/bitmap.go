package input

import "sync/atomic"

// maxKeyCode bounds the engine key-code space tracked by the bitmap.
const maxKeyCode = 256

// KeyBitmap records which keys are currently considered held, one bit per
// engine key code. The input goroutine is the only writer; any goroutine may
// read concurrently without a lock.
//
// Each bit lives in an atomic 64-bit word and transitions independently, so
// reads are never torn. No ordering is established between bits: a reader
// may observe a state stale by one mutation. That staleness window (cache
// coherency latency, ~100ns) is orders of magnitude shorter than the release
// delays this bitmap serves (50-150ms), which is why the relaxed discipline
// is sound here and not a pattern to copy elsewhere.
type KeyBitmap struct {
	words [maxKeyCode / 64]atomic.Uint64
}

// MarkHeld sets the bit for key. Out-of-range codes are no-ops.
func (b *KeyBitmap) MarkHeld(key int) {
	if key < 0 || key >= maxKeyCode {
		return
	}
	b.words[key/64].Or(1 << (key % 64))
}

// MarkReleased clears the bit for key. Out-of-range codes are no-ops.
func (b *KeyBitmap) MarkReleased(key int) {
	if key < 0 || key >= maxKeyCode {
		return
	}
	b.words[key/64].And(^uint64(1 << (key % 64)))
}

// IsHeld reports whether key is currently held. Out-of-range codes report
// false.
func (b *KeyBitmap) IsHeld(key int) bool {
	if key < 0 || key >= maxKeyCode {
		return false
	}
	return b.words[key/64].Load()&(1<<(key%64)) != 0
}
