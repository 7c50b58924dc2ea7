package render

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// Differ counts changed pixels between two frames. Like codec.Encoding it is
// resolved once at startup and carried by value; acceleration changes cost,
// never the result.
type Differ struct {
	count func(prev, curr []byte, pixels int) int
	name  string
}

// Percent returns the integer percentage (floor) of pixels that differ
// between prev and curr. A pixel differs when any of its three channel
// bytes differ. Both buffers must hold at least pixels*3 bytes.
func (d Differ) Percent(prev, curr []byte, pixels int) int {
	if pixels <= 0 {
		return 0
	}
	return d.count(prev, curr, pixels) * 100 / pixels
}

// Name identifies the active variant, for diagnostics.
func (d Differ) Name() string {
	return d.name
}

// ResolveDiffer selects the fastest applicable difference counter.
func ResolveDiffer() Differ {
	if cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD {
		return Differ{count: diffCountWide, name: "wide"}
	}
	return Differ{count: diffCountScalar, name: "scalar"}
}

// ScalarDiffer returns the reference counter regardless of CPU capability.
func ScalarDiffer() Differ {
	return Differ{count: diffCountScalar, name: "scalar"}
}

// diffCountScalar is the reference implementation: one pixel at a time.
func diffCountScalar(prev, curr []byte, pixels int) int {
	count := 0
	for i := 0; i < pixels*3; i += 3 {
		if prev[i] != curr[i] || prev[i+1] != curr[i+1] || prev[i+2] != curr[i+2] {
			count++
		}
	}
	return count
}

// diffCountWide screens 48-byte blocks (16 whole RGB pixels) with six 64-bit
// word compares and only falls back to per-pixel inspection inside blocks
// that differ. The block size keeps word loads aligned to pixel boundaries.
// Must agree exactly with diffCountScalar.
func diffCountWide(prev, curr []byte, pixels int) int {
	total := pixels * 3
	count := 0
	i := 0

	for ; i+48 <= total; i += 48 {
		same := binary.LittleEndian.Uint64(prev[i:]) == binary.LittleEndian.Uint64(curr[i:]) &&
			binary.LittleEndian.Uint64(prev[i+8:]) == binary.LittleEndian.Uint64(curr[i+8:]) &&
			binary.LittleEndian.Uint64(prev[i+16:]) == binary.LittleEndian.Uint64(curr[i+16:]) &&
			binary.LittleEndian.Uint64(prev[i+24:]) == binary.LittleEndian.Uint64(curr[i+24:]) &&
			binary.LittleEndian.Uint64(prev[i+32:]) == binary.LittleEndian.Uint64(curr[i+32:]) &&
			binary.LittleEndian.Uint64(prev[i+40:]) == binary.LittleEndian.Uint64(curr[i+40:])
		if same {
			continue
		}
		for p := i; p < i+48; p += 3 {
			if prev[p] != curr[p] || prev[p+1] != curr[p+1] || prev[p+2] != curr[p+2] {
				count++
			}
		}
	}

	// Tail pixels that did not fill a 48-byte block
	for ; i < total; i += 3 {
		if prev[i] != curr[i] || prev[i+1] != curr[i+1] || prev[i+2] != curr[i+2] {
			count++
		}
	}

	return count
}
