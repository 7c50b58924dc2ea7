package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "kitty-doom.log"

	// maxLogSize caps the append-forever growth of the debug log; an
	// oversized file is rotated aside at startup.
	maxLogSize = 10 * 1024 * 1024
)

// setupLogging routes the standard logger. Stdout carries the image
// protocol and stderr must stay readable for fatal diagnostics, so debug
// logs go to a file; without debug enabled they are discarded entirely.
// Returns the open log file, or nil when logging is disabled.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(logDir, logFileName)
	rotateIfLarge(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

// rotateIfLarge renames an oversized log with a timestamp suffix so the new
// session starts on a fresh file. Rotation failures are ignored; appending
// to a large file beats losing the session's logs.
func rotateIfLarge(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}

	rotated := filepath.Join(logDir,
		fmt.Sprintf("kitty-doom-%s.log", time.Now().Format("20060102-150405")))
	os.Rename(path, rotated)
}
