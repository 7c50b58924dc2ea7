// Package engine defines the boundary to the game simulation. The terminal
// layer drives the simulation through two calls per loop iteration (Update,
// then Framebuffer) and receives diagnostics and exit requests through
// injected sinks. Key events are delivered in the engine's own key-code
// space, not in terminal terms.
package engine

// Frame dimensions of the simulation's video output, fixed by the engine.
const (
	FrameWidth  = 320
	FrameHeight = 200
	FrameBytes  = FrameWidth * FrameHeight * 3 // packed RGB, 3 bytes per pixel
)

// Key codes in the engine's code space. Printable ASCII maps through
// unchanged; special keys use the engine's extended codes.
const (
	KeyEnter  = 13
	KeyEscape = 27

	KeyLeftArrow  = 0xac
	KeyUpArrow    = 0xad
	KeyRightArrow = 0xae
	KeyDownArrow  = 0xaf

	KeyShift = 0xb6
	KeyAlt   = 0xb8
	KeyCtrl  = 0x9d // also the fire action

	KeyF1  = 0x80 + 0x3b
	KeyF2  = 0x80 + 0x3c
	KeyF3  = 0x80 + 0x3d
	KeyF4  = 0x80 + 0x3e
	KeyF5  = 0x80 + 0x3f
	KeyF6  = 0x80 + 0x40
	KeyF7  = 0x80 + 0x41
	KeyF8  = 0x80 + 0x42
	KeyF9  = 0x80 + 0x43
	KeyF10 = 0x80 + 0x44
	KeyF11 = 0x80 + 0x57
	KeyF12 = 0x80 + 0x58
)

// Engine is the simulation seen from the terminal layer.
type Engine interface {
	// Update advances the simulation one tick.
	Update()

	// Framebuffer returns the current frame as packed RGB bytes,
	// FrameBytes long. The buffer is owned by the engine and only valid
	// until the next Update.
	Framebuffer() []byte

	// KeyDown and KeyUp deliver discrete key transitions in the engine
	// key-code space.
	KeyDown(key int)
	KeyUp(key int)
}

// PrintFunc receives diagnostic text from the engine.
type PrintFunc func(msg string)

// ExitFunc receives an exit request carrying the engine's exit code.
// A non-zero code during initialization means the engine is in an undefined
// state and no further engine calls may be made.
type ExitFunc func(code int)
