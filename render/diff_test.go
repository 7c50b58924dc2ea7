package render

import (
	"math/rand"
	"testing"
)

func TestDiffIdenticalFrames(t *testing.T) {
	frame := make([]byte, 320*200*3)
	rand.New(rand.NewSource(3)).Read(frame)

	for _, d := range []Differ{ScalarDiffer(), ResolveDiffer()} {
		if got := d.Percent(frame, frame, 320*200); got != 0 {
			t.Errorf("%s: identical frames reported %d%% difference", d.Name(), got)
		}
	}
}

// Exactly k differing pixels out of P must report floor(100*k/P)
func TestDiffExactCounts(t *testing.T) {
	const pixels = 320 * 200
	cases := []int{0, 1, 63, 64, 640, pixels / 2, pixels - 1, pixels}

	for _, k := range cases {
		prev := make([]byte, pixels*3)
		curr := make([]byte, pixels*3)
		rand.New(rand.NewSource(int64(k))).Read(prev)
		copy(curr, prev)

		// Spread the changed pixels so they cross block boundaries
		step := 1
		if k > 0 {
			step = pixels / k
		}
		changed := 0
		for p := 0; p < pixels && changed < k; p += step {
			curr[p*3+changed%3] ^= 0xff
			changed++
		}
		if changed != k {
			t.Fatalf("test bug: placed %d of %d changes", changed, k)
		}

		want := 100 * k / pixels
		for _, d := range []Differ{ScalarDiffer(), ResolveDiffer()} {
			if got := d.Percent(prev, curr, pixels); got != want {
				t.Errorf("%s: k=%d got %d%%, want %d%%", d.Name(), k, got, want)
			}
		}
	}
}

// Scalar and wide paths must agree on arbitrary generated frames, including
// pixel counts that leave a partial tail block
func TestDiffVariantsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for _, pixels := range []int{0, 1, 15, 16, 17, 1000, 320 * 200} {
		prev := make([]byte, pixels*3)
		curr := make([]byte, pixels*3)
		rng.Read(prev)
		copy(curr, prev)
		for i := range curr {
			if rng.Intn(10) == 0 {
				curr[i] ^= byte(rng.Intn(256))
			}
		}

		a := diffCountScalar(prev, curr, pixels)
		b := diffCountWide(prev, curr, pixels)
		if a != b {
			t.Errorf("pixels=%d: scalar counted %d, wide counted %d", pixels, a, b)
		}
	}
}

func BenchmarkDiffFrame(b *testing.B) {
	prev := make([]byte, 320*200*3)
	curr := make([]byte, 320*200*3)
	rand.New(rand.NewSource(5)).Read(prev)
	copy(curr, prev)
	for i := 0; i < len(curr); i += 97 {
		curr[i] ^= 1
	}

	for _, d := range []Differ{ScalarDiffer(), ResolveDiffer()} {
		b.Run(d.Name(), func(b *testing.B) {
			b.SetBytes(int64(len(prev)))
			for i := 0; i < b.N; i++ {
				d.Percent(prev, curr, 320*200)
			}
		})
	}
}
