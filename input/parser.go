package input

import (
	"time"

	"github.com/lixenwraith/kitty-doom/engine"
)

// parserState tracks progress through a VT escape sequence.
type parserState uint8

const (
	stateGround parserState = iota
	stateEscape
	stateSS3
	stateCSI
)

// maxParms bounds CSI parameter accumulation. Terminals in the wild send a
// handful; device-attribute replies are the longest at around ten.
const maxParms = 32

// escTimeout is how long a lone ESC may wait for a follow-up byte before it
// is treated as a standalone Escape key-press.
const escTimeout = 100 * time.Millisecond

// parseByte feeds one input byte through the state machine. Runs only on
// the input goroutine. Malformed or unrecognized sequences never error;
// they fall back to ground state with no key event, because terminals vary
// too much for strictness to be safe.
func (in *Input) parseByte(ch byte, now time.Time) {
	if ch == 0x03 {
		// Ctrl+C - immediate exit request, independent of parser state
		in.exitRequested.Store(true)
		return
	}

	if ch == 0x1b {
		// ESC starts a sequence, unless one is already pending: two
		// consecutive ESC bytes cannot both be prefixes, so the previous
		// one was a standalone Escape key.
		if in.state == stateEscape {
			in.asciiKey(0x1b, now)
		}
		in.state = stateEscape
		return
	}

	switch in.state {
	case stateGround:
		in.asciiKey(ch, now)

	case stateEscape:
		switch ch {
		case 'O':
			in.state = stateSS3
		case '[':
			in.state = stateCSI
			in.parm = 0
			in.parmCount = 0
			in.parmPrefix = 0
		default:
			// ESC followed by a non-sequence byte: the ESC was standalone
			in.asciiKey(0x1b, now)
			in.state = stateGround
			if ch >= 0x20 && ch < 0x7f {
				in.asciiKey(ch, now)
			}
		}

	case stateSS3:
		in.ss3Key(ch, now)
		in.state = stateGround

	case stateCSI:
		switch {
		case ch >= '0' && ch <= '9':
			in.parm = in.parm*10 + int(ch-'0')
		case ch == ';':
			in.pushParm()
			in.parm = 0
		case ch == '?' || ch == '>':
			in.parmPrefix = ch
		default:
			in.pushParm()
			in.dispatchCSI(ch, now)
			in.state = stateGround
		}
	}
}

func (in *Input) pushParm() {
	if in.parmCount < maxParms {
		in.parms[in.parmCount] = in.parm
		in.parmCount++
	}
}

// asciiKey handles a direct character key: map to the engine code space,
// emit a key-down on the not-held edge, and schedule its release.
func (in *Input) asciiKey(ch byte, now time.Time) {
	key := int(ch)
	switch ch {
	case '\r', '\n': // kitty sends LF for Enter
		key = engine.KeyEnter
	case ' ', 'f', 'F', 'i', 'I':
		// Fire aliases: Ctrl itself is hard to capture in terminals
		key = engine.KeyCtrl
	}

	in.pressKey(key, in.actionDelay, now)
}

// ss3Key maps SS3 terminators to F1-F4.
func (in *Input) ss3Key(ch byte, now time.Time) {
	var key int
	switch ch {
	case 'P':
		key = engine.KeyF1
	case 'Q':
		key = engine.KeyF2
	case 'R':
		key = engine.KeyF3
	case 'S':
		key = engine.KeyF4
	default:
		return
	}
	in.pressKey(key, in.actionDelay, now)
}

// dispatchCSI routes a completed CSI sequence: terminal query replies update
// the query state, everything else goes through the key pipeline.
func (in *Input) dispatchCSI(ch byte, now time.Time) {
	parm1, parm2 := 0, 0
	if in.parmCount > 0 {
		parm1 = in.parms[0]
	}
	if in.parmCount > 1 {
		parm2 = in.parms[1]
	}

	switch {
	case ch == 'c' && in.parmPrefix == '?':
		in.deviceAttributesReport(in.parms[:in.parmCount])
		return
	case ch == 't':
		// Text-area size report: CSI 4 ; height ; width t
		if in.parmCount >= 3 && in.parms[0] == 4 {
			in.cellSizeReport(in.parms[1], in.parms[2])
		}
		return
	case ch == 'R':
		if in.parmCount >= 2 {
			in.cursorPosReport(in.parms[0], in.parms[1])
		}
		return
	}

	in.csiKey(ch, parm1, parm2, now)
}

// csiKey maps CSI key terminators: arrows and the tilde function keys.
func (in *Input) csiKey(ch byte, parm1, parm2 int, now time.Time) {
	var key int
	switch ch {
	case 'A':
		key = engine.KeyUpArrow
	case 'B':
		key = engine.KeyDownArrow
	case 'C':
		key = engine.KeyRightArrow
	case 'D':
		key = engine.KeyLeftArrow
	case '~':
		switch parm1 {
		case 15:
			key = engine.KeyF5
		case 17:
			key = engine.KeyF6
		case 18:
			key = engine.KeyF7
		case 19:
			key = engine.KeyF8
		case 20:
			key = engine.KeyF9
		case 21:
			key = engine.KeyF10
		case 23:
			key = engine.KeyF11
		case 24:
			key = engine.KeyF12
		default:
			return
		}
	default:
		// Unknown terminator: lenient skip
		return
	}

	// Arrow keys need a release delay long enough to bridge the terminal's
	// auto-repeat interval (30-50ms between reports). Too short and a
	// physically held key cycles down/up/down; 150ms keeps it held across
	// several repeats while still feeling immediate on true release.
	delay := in.actionDelay
	if key == engine.KeyUpArrow || key == engine.KeyDownArrow ||
		key == engine.KeyLeftArrow || key == engine.KeyRightArrow {
		delay = in.arrowDelay
	}

	alreadyHeld := in.held.IsHeld(key)
	if !alreadyHeld {
		// Modifiers follow the same not-held-edge rule as the primary key
		in.eachModifier(parm2, func(mod int) {
			if !in.held.IsHeld(mod) {
				in.keyDown(mod)
			}
		})
		in.keyDown(key)
	}

	in.sched.schedule(key, delay, now)

	if !alreadyHeld {
		in.eachModifier(parm2, func(mod int) {
			in.sched.schedule(mod, delay, now)
		})
	}
}

// pressKey emits a key-down on the not-held edge and schedules the release.
// Repeats while held only push the release deadline out.
func (in *Input) pressKey(key int, delay time.Duration, now time.Time) {
	if !in.held.IsHeld(key) {
		in.keyDown(key)
	}
	in.sched.schedule(key, delay, now)
}

// eachModifier decomposes the xterm modifier parameter (value 1 + bitmask)
// into the engine's independent modifier keys.
func (in *Input) eachModifier(modifiers int, fn func(int)) {
	if modifiers < 2 {
		return
	}
	mask := modifiers - 1
	if mask&1 != 0 {
		fn(engine.KeyShift)
	}
	if mask&2 != 0 {
		fn(engine.KeyAlt)
	}
	if mask&4 != 0 {
		fn(engine.KeyCtrl)
	}
}
