// Package terminal provides direct raw-mode terminal access for the image
// transport and input layers.
//
// Features:
//   - Raw mode entry/restoration (canonical mode and echo disabled)
//   - Polled reads with short timeouts for low-latency input handling
//   - Graphics-capability detection (environment fast path + active probe)
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct escape
// sequences. Target environments: Linux, macOS, BSDs with terminals that
// implement the kitty graphics protocol.
package terminal
