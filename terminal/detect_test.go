package terminal

import "testing"

func TestDetectGraphicsEnv(t *testing.T) {
	cases := []struct {
		name        string
		term        string
		termProgram string
		want        bool
	}{
		{"kitty", "xterm-kitty", "", true},
		{"ghostty", "xterm-ghostty", "ghostty", true},
		{"wezterm", "wezterm", "WezTerm", true},
		{"plain xterm", "xterm-256color", "", false},
		{"empty", "", "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("TERM", c.term)
			t.Setenv("TERM_PROGRAM", c.termProgram)
			if got := DetectGraphicsEnv(); got != c.want {
				t.Errorf("DetectGraphicsEnv() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestIsKitty(t *testing.T) {
	t.Setenv("TERM", "xterm-kitty")
	if !IsKitty() {
		t.Error("xterm-kitty not recognized as kitty")
	}

	t.Setenv("TERM", "xterm-256color")
	if IsKitty() {
		t.Error("xterm-256color misidentified as kitty")
	}
}
