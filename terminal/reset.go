package terminal

import "io"

// Restoration sequences: show cursor, reset window title, clear screen.
// RIS is deliberately avoided in the normal path because it also wipes
// scrollback on some terminals; EmergencyReset uses it as a last resort.
var (
	seqCursorShow = []byte("\x1b[?25h")
	seqCursorHide = []byte("\x1b[?25l")
	seqClearHome  = []byte("\x1b[2J\x1b[H")
	seqRIS        = []byte("\x1bc")
)

// EmergencyReset forces the terminal back to a usable state. Called from
// panic handlers where the normal teardown path cannot be trusted.
func EmergencyReset(w io.Writer) {
	w.Write(seqRIS)
	w.Write(seqCursorShow)
}

// HideCursor and ShowCursor toggle cursor visibility.
func HideCursor(w io.Writer) {
	w.Write(seqCursorHide)
}

func ShowCursor(w io.Writer) {
	w.Write(seqCursorShow)
}

// ClearScreen clears the display and homes the cursor.
func ClearScreen(w io.Writer) {
	w.Write(seqClearHome)
}
