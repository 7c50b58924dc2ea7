package terminal

import "time"

// Backend abstracts platform-specific terminal operations so the input layer
// can be driven by a fake in tests.
type Backend interface {
	// Lifecycle
	// Init enters raw mode (canonical mode, echo and signal generation
	// disabled). Fini restores the previous terminal state and is safe to
	// call more than once.
	Init() error
	Fini()

	// Read waits up to timeout for input and reads what is available into
	// p. Returns 0 with a nil error on timeout; the input loop polls with
	// short timeouts so pending key releases are processed promptly even
	// when no bytes arrive.
	Read(p []byte, timeout time.Duration) (int, error)

	// Write writes raw bytes to the terminal output.
	Write(p []byte) (int, error)

	// Size returns the terminal dimensions in cells, used as a last-resort
	// fallback when the terminal does not answer position queries.
	Size() (cols, rows int)
}
