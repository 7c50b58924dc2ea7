package codec

import (
	"bytes"
	"encoding/base64"
	"math/rand"
	"testing"
)

// Test known vectors from RFC 4648, including both padding cases
func TestEncodeKnownVectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"f", "Zg=="},
		{"fo", "Zm8="},
		{"foo", "Zm9v"},
		{"foob", "Zm9vYg=="},
		{"fooba", "Zm9vYmE="},
		{"foobar", "Zm9vYmFy"},
	}

	for _, enc := range []Encoding{Scalar(), Resolve()} {
		for _, c := range cases {
			dst := make([]byte, EncodedLen(len(c.in)))
			n := enc.Encode(dst, []byte(c.in))
			if got := string(dst[:n]); got != c.want {
				t.Errorf("%s: Encode(%q) = %q, want %q", enc.Name(), c.in, got, c.want)
			}
		}
	}
}

// Every input length 0..256 must match the standard library encoder
func TestEncodeAllLengths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	enc := Resolve()

	for n := 0; n <= 256; n++ {
		src := make([]byte, n)
		rng.Read(src)

		dst := make([]byte, EncodedLen(n))
		wrote := enc.Encode(dst, src)
		if wrote != EncodedLen(n) {
			t.Fatalf("len %d: wrote %d bytes, want %d", n, wrote, EncodedLen(n))
		}

		want := base64.StdEncoding.EncodeToString(src)
		if string(dst[:wrote]) != want {
			t.Fatalf("len %d: output mismatch\n got %q\nwant %q", n, dst[:wrote], want)
		}
	}
}

// Scalar and wide variants must produce byte-identical output on large
// pseudo-random buffers
func TestVariantsAgreeLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, size := range []int{64 * 1024, 320*200*3 - 1, 320 * 200 * 3} {
		src := make([]byte, size)
		rng.Read(src)

		a := make([]byte, EncodedLen(size))
		b := make([]byte, EncodedLen(size))
		na := encodeScalar(a, src)
		nb := encodeWide(b, src)

		if na != nb {
			t.Fatalf("size %d: scalar wrote %d, wide wrote %d", size, na, nb)
		}
		if !bytes.Equal(a[:na], b[:nb]) {
			t.Fatalf("size %d: variant outputs differ", size)
		}
	}
}

func TestResolveStable(t *testing.T) {
	first := Resolve()
	for i := 0; i < 8; i++ {
		if Resolve().Name() != first.Name() {
			t.Fatal("Resolve is not stable across calls")
		}
	}
	if first.Name() != "scalar" && first.Name() != "wide" {
		t.Errorf("unexpected variant name %q", first.Name())
	}
}

func BenchmarkEncodeFrame(b *testing.B) {
	src := make([]byte, 320*200*3)
	rand.New(rand.NewSource(7)).Read(src)
	dst := make([]byte, EncodedLen(len(src)))

	for _, enc := range []Encoding{Scalar(), Resolve()} {
		b.Run(enc.Name(), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			for i := 0; i < b.N; i++ {
				enc.Encode(dst, src)
			}
		})
	}
}
