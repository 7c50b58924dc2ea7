package terminal

import (
	"os"
	"strings"
)

// GraphicsSupport describes how graphics capability was established.
type GraphicsSupport uint8

const (
	GraphicsUnsupported GraphicsSupport = iota
	GraphicsKnownTerm                   // recognized via environment
	GraphicsProbed                      // confirmed by active probe
)

func (g GraphicsSupport) String() string {
	switch g {
	case GraphicsKnownTerm:
		return "known terminal"
	case GraphicsProbed:
		return "probed"
	default:
		return "unsupported"
	}
}

// IsKitty reports whether the environment identifies the terminal as kitty
// proper, which drives the renderer's frame-update policy selection.
func IsKitty() bool {
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// DetectGraphicsEnv checks environment variables for terminals known to
// implement the graphics protocol. This is the fast path; unknown terminals
// fall through to the active probe.
func DetectGraphicsEnv() bool {
	if IsKitty() {
		return true // kitty sets TERM=xterm-kitty
	}

	switch os.Getenv("TERM_PROGRAM") {
	case "ghostty", "WezTerm":
		return true
	}

	return false
}

// DetectGraphics establishes graphics-protocol support, first from the
// environment and then by actively probing the terminal. Continuing without
// support would corrupt the display, so callers must treat a negative
// result as fatal.
func DetectGraphics() GraphicsSupport {
	if DetectGraphicsEnv() {
		return GraphicsKnownTerm
	}
	if probeGraphics() {
		return GraphicsProbed
	}
	return GraphicsUnsupported
}
