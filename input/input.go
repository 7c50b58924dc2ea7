// Package input parses the terminal's byte stream into discrete key events
// for the engine, reconciling terminal auto-repeat with press/release
// semantics, and answers terminal geometry queries.
//
// A single goroutine owns the parser, the release queue's write side, and
// the key bitmap's write side. It never blocks indefinitely: reads poll with
// a 1ms timeout so due key releases are processed with low latency even when
// no bytes arrive.
package input

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/kitty-doom/terminal"
)

// pollTimeout keeps the read loop responsive to pending releases.
const pollTimeout = 1 * time.Millisecond

// Size is a rows/cols or height/width pair reported by the terminal.
type Size struct {
	Rows int
	Cols int
}

// Options configures input timing. Zero values take the defaults that match
// typical terminal auto-repeat behavior.
type Options struct {
	// ArrowDelay is the release delay for directional keys. Must exceed
	// the terminal repeat interval or held arrows flicker. Default 150ms.
	ArrowDelay time.Duration

	// ActionDelay is the release delay for everything else. Shorter keeps
	// menus responsive. Default 50ms.
	ActionDelay time.Duration
}

// Input owns the input goroutine and all state fed by it.
type Input struct {
	backend terminal.Backend
	keyDown func(int)
	keyUp   func(int)

	arrowDelay  time.Duration
	actionDelay time.Duration

	exiting       atomic.Bool // input goroutine shutdown
	exitRequested atomic.Bool // engine-level exit (Ctrl+C)
	done          chan struct{}

	held  KeyBitmap
	sched *releaseQueue

	// Parser state, touched only by the input goroutine
	state      parserState
	parms      [maxParms]int
	parm       int
	parmCount  int
	parmPrefix byte
	escSince   time.Time
	escWaiting bool

	// Terminal query state, produced by parser-detected replies and
	// consumed by blocking getters
	qmu          sync.Mutex
	qcond        *sync.Cond
	deviceAttrs  []int
	cellSize     Size
	hasCellSize  bool
	cursorPos    Size
	hasCursorPos bool
}

// New creates the input subsystem and starts its goroutine. keyDown and
// keyUp deliver events to the engine; they are invoked from the input
// goroutine.
func New(backend terminal.Backend, keyDown, keyUp func(int), opts Options) *Input {
	if opts.ArrowDelay <= 0 {
		opts.ArrowDelay = 150 * time.Millisecond
	}
	if opts.ActionDelay <= 0 {
		opts.ActionDelay = 50 * time.Millisecond
	}

	in := &Input{
		backend:     backend,
		keyDown:     keyDown,
		keyUp:       keyUp,
		arrowDelay:  opts.ArrowDelay,
		actionDelay: opts.ActionDelay,
		done:        make(chan struct{}),
		state:       stateGround,
	}
	in.qcond = sync.NewCond(&in.qmu)
	in.sched = newReleaseQueue(&in.held)

	go in.loop()

	// Give the goroutine a moment to reach its first poll so terminal
	// queries sent right after New are not answered into a void.
	time.Sleep(50 * time.Millisecond)

	return in
}

// Running reports whether the engine should keep looping. It turns false
// once Ctrl+C arrives or RequestExit is called.
func (in *Input) Running() bool {
	return !in.exitRequested.Load()
}

// RequestExit signals both the main loop and the input goroutine to stop.
// Idempotent.
func (in *Input) RequestExit() {
	in.exitRequested.Store(true)
	in.exiting.Store(true)
}

// Held reports whether key is currently considered held. Safe from any
// goroutine.
func (in *Input) Held(key int) bool {
	return in.held.IsHeld(key)
}

// Close stops the input goroutine and waits for it to finish. Terminal mode
// restoration belongs to the backend, not here.
func (in *Input) Close() {
	in.exiting.Store(true)

	// Short grace period, then join; the 1ms poll guarantees the loop
	// notices the flag quickly.
	select {
	case <-in.done:
	case <-time.After(500 * time.Millisecond):
	}
}

// loop is the input goroutine: poll, process due releases, parse.
func (in *Input) loop() {
	defer close(in.done)

	buf := make([]byte, 64)

	for !in.exiting.Load() {
		in.sched.processDue(time.Now(), in.keyUp)

		n, err := in.backend.Read(buf, pollTimeout)
		if err != nil {
			// The terminal is gone; end the session rather than leave
			// the render loop running with a dead keyboard.
			in.exitRequested.Store(true)
			return
		}

		now := time.Now()

		if n == 0 {
			// No input. A pending lone ESC that has waited out its
			// timeout was a standalone Escape key-press.
			if in.state == stateEscape {
				if !in.escWaiting {
					in.escSince = now
					in.escWaiting = true
				} else if now.Sub(in.escSince) >= escTimeout {
					in.asciiKey(0x1b, now)
					in.state = stateGround
					in.escWaiting = false
				}
			}
			continue
		}

		in.escWaiting = false
		for _, ch := range buf[:n] {
			in.parseByte(ch, now)
		}
	}
}
