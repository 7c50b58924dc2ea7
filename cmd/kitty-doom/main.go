// kitty-doom renders a DOOM-style 320x200 RGB stream inside a terminal via
// the kitty graphics protocol and feeds it low-latency keyboard input.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/kitty-doom/codec"
	"github.com/lixenwraith/kitty-doom/config"
	"github.com/lixenwraith/kitty-doom/engine"
	"github.com/lixenwraith/kitty-doom/input"
	"github.com/lixenwraith/kitty-doom/render"
	"github.com/lixenwraith/kitty-doom/terminal"
)

var (
	configFlag = flag.String("config", "kitty-doom.toml", "Path to TOML config file")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/kitty-doom.log")
)

func main() {
	os.Exit(run())
}

func run() int {
	// Panic recovery: restore the terminal even if we crash mid-frame
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mKITTY-DOOM CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kitty-doom: %v\n", err)
		return 1
	}

	if f := setupLogging(*debugFlag || cfg.Debug); f != nil {
		defer f.Close()
	}

	// Signal handling: nothing but a flag is touched on the signal path;
	// all teardown happens cooperatively below.
	var signalReceived atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		signalReceived.Store(true)
	}()

	// Capability gate, before any terminal-mode changes that would need
	// rollback: without the graphics protocol we would only corrupt the
	// display.
	support := terminal.DetectGraphics()
	if support == terminal.GraphicsUnsupported {
		printUnsupportedTerminal()
		return 1
	}
	log.Printf("graphics support: %v (TERM=%s)", support, os.Getenv("TERM"))

	enc := codec.Resolve()
	differ := render.ResolveDiffer()
	log.Printf("base64 variant: %s, framediff variant: %s", enc.Name(), differ.Name())

	backend := terminal.NewBackend()
	if err := backend.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "kitty-doom: terminal init: %v\n", err)
		return 1
	}
	defer backend.Fini()

	terminal.HideCursor(os.Stdout)
	defer terminal.ShowCursor(os.Stdout)

	// Engine diagnostics and exit requests arrive through sinks. A fatal
	// condition during engine init leaves the engine undefined; in that
	// case we must not make further engine calls.
	var lastDiag atomic.Value
	var engineExited atomic.Bool
	var engineExitCode atomic.Int32
	printSink := func(msg string) {
		if msg != "" && msg != "\n" {
			lastDiag.Store(msg)
			log.Printf("engine: %s", msg)
		}
	}
	exitSink := func(code int) {
		engineExitCode.Store(int32(code))
		engineExited.Store(true)
	}

	var eng engine.Engine = engine.NewDemo(printSink, exitSink)
	if engineExited.Load() && engineExitCode.Load() != 0 {
		reportEngineDiag(&lastDiag)
		return 1
	}

	in := input.New(backend, eng.KeyDown, eng.KeyUp, input.Options{
		ArrowDelay:  time.Duration(cfg.Input.ArrowDelayMs) * time.Millisecond,
		ActionDelay: time.Duration(cfg.Input.ActionDelayMs) * time.Millisecond,
	})

	cells := in.ScreenCells()
	log.Printf("terminal: %dx%d cells", cells.Cols, cells.Rows)

	out := bufio.NewWriterSize(os.Stdout, 256*1024)
	r := render.New(out, enc, differ, cells.Rows, cells.Cols, render.Options{
		Policy:        renderPolicy(cfg.Render.Policy),
		ChunkSize:     cfg.Render.ChunkBytes,
		DiffThreshold: cfg.Render.DiffThresholdPercent,
		Compress:      cfg.Render.Compress,
	})
	out.Flush()

	for in.Running() && !signalReceived.Load() && !engineExited.Load() {
		eng.Update()
		if err := r.Frame(eng.Framebuffer()); err != nil {
			log.Printf("frame transmit failed: %v", err)
			break
		}
		out.Flush()
	}

	// Unconditional: a signal may have arrived after the loop check, and
	// RequestExit is idempotent.
	in.RequestExit()

	// Teardown in reverse creation order
	r.Close()
	out.Flush()
	in.Close()

	if engineExited.Load() {
		reportEngineDiag(&lastDiag)
		if engineExitCode.Load() != 0 {
			return 1
		}
	}
	return 0
}

func renderPolicy(name string) render.Policy {
	switch name {
	case "animate":
		return render.PolicyAnimate
	case "retransmit":
		return render.PolicyRetransmit
	default: // auto
		if terminal.IsKitty() {
			return render.PolicyAnimate
		}
		return render.PolicyRetransmit
	}
}

func reportEngineDiag(lastDiag *atomic.Value) {
	if msg, ok := lastDiag.Load().(string); ok && msg != "" {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}
}

func printUnsupportedTerminal() {
	fmt.Fprintf(os.Stderr,
		"\n"+
			"ERROR: Terminal does not support the kitty graphics protocol\n"+
			"       TERM=%s\n"+
			"       TERM_PROGRAM=%s\n"+
			"\n"+
			"kitty-doom requires a terminal with kitty graphics protocol support.\n"+
			"\n"+
			"Recommended terminals:\n"+
			"  - Kitty:   https://sw.kovidgoyal.net/kitty/\n"+
			"  - Ghostty: https://ghostty.org\n"+
			"\n"+
			"Running in unsupported terminals would corrupt the display.\n"+
			"\n",
		os.Getenv("TERM"), os.Getenv("TERM_PROGRAM"))
}
