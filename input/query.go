package input

import "time"

// Query sequences sent to the terminal. Replies come back through the
// parser on the input goroutine, which fills the query state and wakes
// waiters; they never enter the key pipeline.
var (
	seqQueryDA        = []byte("\x1b[c")
	seqCursorToCorner = []byte("\x1b[9999;9999H")
	seqQueryCellSize  = []byte("\x1b[16t")
	seqQueryCursorPos = []byte("\x1b[6n")
)

// cellsTimeout bounds the ScreenCells wait. Terminals that answered the
// startup probe normally reply within a frame or two; 2 seconds is a
// generous ceiling before falling back to 80x24.
const cellsTimeout = 2 * time.Second

func (in *Input) deviceAttributesReport(parms []int) {
	in.qmu.Lock()
	in.deviceAttrs = append([]int(nil), parms...)
	in.qcond.Broadcast()
	in.qmu.Unlock()
}

func (in *Input) cellSizeReport(height, width int) {
	in.qmu.Lock()
	in.cellSize = Size{Rows: height, Cols: width}
	in.hasCellSize = true
	in.qmu.Unlock()
}

func (in *Input) cursorPosReport(row, col int) {
	in.qmu.Lock()
	in.cursorPos = Size{Rows: row, Cols: col}
	in.hasCursorPos = true
	in.qcond.Broadcast()
	in.qmu.Unlock()
}

// DeviceAttributes issues a primary device-attributes query and blocks until
// the terminal replies. Used once at startup, after the capability gate has
// established that the terminal answers queries at all.
func (in *Input) DeviceAttributes() []int {
	in.qmu.Lock()
	defer in.qmu.Unlock()

	in.backend.Write(seqQueryDA)

	for len(in.deviceAttrs) == 0 {
		in.qcond.Wait()
	}
	return in.deviceAttrs
}

// ScreenSize returns the terminal's text area size in pixels: it parks the
// cursor at the bottom-right corner, asks for the cell size and the cursor
// position, and multiplies. Terminals that do not report cell size get the
// VT340-compatible 20x10 assumption.
func (in *Input) ScreenSize() Size {
	in.qmu.Lock()
	defer in.qmu.Unlock()

	in.hasCellSize = false
	in.hasCursorPos = false

	in.backend.Write(seqCursorToCorner)
	in.backend.Write(seqQueryCellSize)
	in.backend.Write(seqQueryCursorPos)

	for !in.hasCursorPos {
		in.qcond.Wait()
	}

	cell := in.cellSize
	if !in.hasCellSize {
		cell = Size{Rows: 20, Cols: 10}
	}

	return Size{
		Rows: in.cursorPos.Rows * cell.Rows,
		Cols: in.cursorPos.Cols * cell.Cols,
	}
}

// ScreenCells returns the terminal size in character cells, with a bounded
// wait: if the terminal does not answer the cursor-position query within
// cellsTimeout the standard 80x24 is assumed.
func (in *Input) ScreenCells() Size {
	in.qmu.Lock()
	defer in.qmu.Unlock()

	in.hasCursorPos = false

	in.backend.Write(seqCursorToCorner)
	in.backend.Write(seqQueryCursorPos)

	// sync.Cond has no timed wait; a timer broadcast bounds the loop
	deadline := time.Now().Add(cellsTimeout)
	timer := time.AfterFunc(cellsTimeout, func() {
		in.qmu.Lock()
		in.qcond.Broadcast()
		in.qmu.Unlock()
	})
	defer timer.Stop()

	for !in.hasCursorPos && time.Now().Before(deadline) {
		in.qcond.Wait()
	}

	if in.hasCursorPos {
		return in.cursorPos
	}
	return Size{Rows: 24, Cols: 80}
}
