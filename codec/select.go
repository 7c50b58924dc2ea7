package codec

import (
	"golang.org/x/sys/cpu"
)

// Encoding is a resolved encoder variant. It is constructed once by Resolve
// at startup and passed to call sites, so there is no lazily initialized
// global to race on and CPU features are never re-probed.
type Encoding struct {
	encode func(dst, src []byte) int
	name   string
}

// Encode writes the base64 encoding of src into dst and returns the number
// of bytes written. dst must be at least EncodedLen(len(src)) bytes. The
// function is total: any input length including zero is valid.
func (e Encoding) Encode(dst, src []byte) int {
	return e.encode(dst, src)
}

// Name identifies the active variant, for diagnostics.
func (e Encoding) Name() string {
	return e.name
}

// Resolve probes CPU capability and returns the fastest applicable encoder.
// The wide variant depends on fast unaligned word loads, which is gated on
// the SIMD feature flags the hardware reports rather than on GOARCH alone.
func Resolve() Encoding {
	if cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD {
		return Encoding{encode: encodeWide, name: "wide"}
	}
	return Encoding{encode: encodeScalar, name: "scalar"}
}

// Scalar returns the reference implementation regardless of CPU capability.
// Used by tests to cross-check the resolved variant.
func Scalar() Encoding {
	return Encoding{encode: encodeScalar, name: "scalar"}
}
