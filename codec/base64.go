// Package codec provides base64 encoding of frame payloads with
// runtime-selected implementation variants.
//
// The terminal graphics protocol carries pixel data as base64 text, so the
// encoder sits on the per-frame hot path (192,000 bytes per frame at 320x200).
// Two functionally identical variants exist: a reference scalar loop and a
// wide variant built on unaligned word loads. Selection happens once at
// startup; see Resolve.
package codec

import (
	"encoding/binary"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// EncodedLen returns the number of bytes Encode writes for n input bytes,
// padding included.
func EncodedLen(n int) int {
	return 4 * ((n + 2) / 3)
}

// encodeScalar is the portable reference implementation. It processes three
// input bytes into four output characters per iteration and is the arbiter
// of correctness for every other variant.
func encodeScalar(dst, src []byte) int {
	di := 0
	i := 0
	n := len(src)

	for ; i+2 < n; i += 3 {
		triple := uint32(src[i])<<16 | uint32(src[i+1])<<8 | uint32(src[i+2])
		dst[di+0] = alphabet[triple>>18&0x3f]
		dst[di+1] = alphabet[triple>>12&0x3f]
		dst[di+2] = alphabet[triple>>6&0x3f]
		dst[di+3] = alphabet[triple&0x3f]
		di += 4
	}

	switch n - i {
	case 2:
		triple := uint32(src[i])<<16 | uint32(src[i+1])<<8
		dst[di+0] = alphabet[triple>>18&0x3f]
		dst[di+1] = alphabet[triple>>12&0x3f]
		dst[di+2] = alphabet[triple>>6&0x3f]
		dst[di+3] = '='
		di += 4
	case 1:
		triple := uint32(src[i]) << 16
		dst[di+0] = alphabet[triple>>18&0x3f]
		dst[di+1] = alphabet[triple>>12&0x3f]
		dst[di+2] = '='
		dst[di+3] = '='
		di += 4
	}

	return di
}

// encodeWide processes twelve input bytes per iteration using 32-bit
// unaligned loads, four output quads at a time. Each load reads one byte
// past the triple it encodes, so the loop stops while at least four bytes
// remain and hands the tail to the scalar path. Output is byte-identical
// to encodeScalar for every input.
func encodeWide(dst, src []byte) int {
	di := 0
	i := 0
	n := len(src)

	for i+16 <= n {
		v0 := binary.BigEndian.Uint32(src[i:]) >> 8
		v1 := binary.BigEndian.Uint32(src[i+3:]) >> 8
		v2 := binary.BigEndian.Uint32(src[i+6:]) >> 8
		v3 := binary.BigEndian.Uint32(src[i+9:]) >> 8

		dst[di+0] = alphabet[v0>>18&0x3f]
		dst[di+1] = alphabet[v0>>12&0x3f]
		dst[di+2] = alphabet[v0>>6&0x3f]
		dst[di+3] = alphabet[v0&0x3f]
		dst[di+4] = alphabet[v1>>18&0x3f]
		dst[di+5] = alphabet[v1>>12&0x3f]
		dst[di+6] = alphabet[v1>>6&0x3f]
		dst[di+7] = alphabet[v1&0x3f]
		dst[di+8] = alphabet[v2>>18&0x3f]
		dst[di+9] = alphabet[v2>>12&0x3f]
		dst[di+10] = alphabet[v2>>6&0x3f]
		dst[di+11] = alphabet[v2&0x3f]
		dst[di+12] = alphabet[v3>>18&0x3f]
		dst[di+13] = alphabet[v3>>12&0x3f]
		dst[di+14] = alphabet[v3>>6&0x3f]
		dst[di+15] = alphabet[v3&0x3f]

		di += 16
		i += 12
	}

	return di + encodeScalar(dst[di:], src[i:])
}
