package engine

import (
	"sync"
	"time"
)

// Demo is a self-contained frame source used when no game is linked in and
// by tests that need a deterministic Engine. It renders a scrolling color
// gradient with a player marker that reacts to directional keys, which is
// enough to exercise the whole transport path.
type Demo struct {
	frame []byte
	tick  int

	posX, posY int

	// Key events arrive from the input goroutine while Update runs on the
	// main thread, so held state needs its own lock.
	mu   sync.Mutex
	held map[int]bool

	lastTick time.Time
}

// NewDemo creates a demo engine with the marker centered. The signature
// mirrors the real engine's injected callbacks; the demo reports its startup
// through the print sink and never requests exit.
func NewDemo(print PrintFunc, _ ExitFunc) *Demo {
	d := &Demo{
		frame: make([]byte, FrameBytes),
		posX:  FrameWidth / 2,
		posY:  FrameHeight / 2,
		held:  map[int]bool{},
	}
	if print != nil {
		print("demo engine: no game linked, rendering test pattern")
	}
	return d
}

// tickInterval paces the demo at roughly the classic 35Hz tic rate. The
// real engine owns its own timing, so pacing belongs here and not in the
// caller's loop.
const tickInterval = time.Second / 35

func (d *Demo) Update() {
	if !d.lastTick.IsZero() {
		if wait := tickInterval - time.Since(d.lastTick); wait > 0 {
			time.Sleep(wait)
		}
	}
	d.lastTick = time.Now()

	d.tick++

	d.mu.Lock()
	left, right := d.held[KeyLeftArrow], d.held[KeyRightArrow]
	up, down := d.held[KeyUpArrow], d.held[KeyDownArrow]
	fire := d.held[KeyCtrl]
	d.mu.Unlock()

	if left && d.posX > 4 {
		d.posX -= 2
	}
	if right && d.posX < FrameWidth-4 {
		d.posX += 2
	}
	if up && d.posY > 4 {
		d.posY -= 2
	}
	if down && d.posY < FrameHeight-4 {
		d.posY += 2
	}

	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			i := (y*FrameWidth + x) * 3
			d.frame[i] = byte(x + d.tick)
			d.frame[i+1] = byte(y + d.tick/2)
			d.frame[i+2] = byte(x ^ y)
		}
	}

	// Player marker, brightened when fire is held
	marker := byte(200)
	if fire {
		marker = 255
	}
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			x, y := d.posX+dx, d.posY+dy
			if x < 0 || x >= FrameWidth || y < 0 || y >= FrameHeight {
				continue
			}
			i := (y*FrameWidth + x) * 3
			d.frame[i], d.frame[i+1], d.frame[i+2] = marker, marker, 0
		}
	}
}

func (d *Demo) Framebuffer() []byte {
	return d.frame
}

func (d *Demo) KeyDown(key int) {
	d.mu.Lock()
	d.held[key] = true
	d.mu.Unlock()
}

func (d *Demo) KeyUp(key int) {
	d.mu.Lock()
	delete(d.held, key)
	d.mu.Unlock()
}
