//go:build unix

package terminal

import (
	"bytes"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// probeGraphics sends a graphics-protocol query (1x1 pixel, a=q) and waits
// briefly for the terminal to answer. Runs before the input goroutine
// exists, so it enters raw mode on its own and restores it afterwards.
func probeGraphics() bool {
	inFd := int(os.Stdin.Fd())

	old, err := term.MakeRaw(inFd)
	if err != nil {
		return false
	}
	defer term.Restore(inFd, old)

	// Query: transmit a 1x1 dummy pixel with a=q (query only, no display).
	// A capable terminal responds with ESC _ G i=31 ... ESC \ .
	os.Stdout.WriteString("\x1b_Gi=31,s=1,v=1,a=q,t=d,f=24;AAAA\x1b\\")

	deadline := time.Now().Add(200 * time.Millisecond)
	var resp []byte
	buf := make([]byte, 256)

	for time.Now().Before(deadline) {
		remaining := int(time.Until(deadline) / time.Millisecond)
		if remaining < 1 {
			remaining = 1
		}

		fds := []unix.PollFd{{Fd: int32(inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, remaining)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n == 0 {
			break
		}

		rn, err := unix.Read(inFd, buf)
		if rn > 0 {
			resp = append(resp, buf[:rn]...)
			if bytes.Contains(resp, []byte("\x1b_Gi=31")) {
				return true
			}
		}
		if err != nil && err != unix.EINTR && err != unix.EAGAIN {
			break
		}
	}

	return bytes.Contains(resp, []byte("\x1b_Gi=31"))
}
