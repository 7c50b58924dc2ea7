// Package render turns raw RGB frames into kitty graphics protocol escape
// sequences and decides which frames are worth transmitting at all.
package render

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/klauspost/compress/zlib"

	"github.com/lixenwraith/kitty-doom/codec"
	"github.com/lixenwraith/kitty-doom/engine"
)

// defaultChunkSize is the encoded-payload size per protocol chunk. Every
// chunk except the last carries m=1 ("more data follows").
const defaultChunkSize = 4096

// Policy selects how frames after the first are delivered. The two modes
// are mutually exclusive compatibility strategies, not protocol variants:
// kitty proper handles lightweight frame updates with an animate trailer,
// other implementations only render reliably when each frame is a fresh
// transmit preceded by a delete.
type Policy uint8

const (
	// PolicyRetransmit deletes the previous image and transmits anew each
	// frame (a=T). Works everywhere the protocol works.
	PolicyRetransmit Policy = iota

	// PolicyAnimate updates the existing image in place (a=f) and advances
	// it with an animate command (a=a). Kitty only.
	PolicyAnimate
)

func (p Policy) String() string {
	if p == PolicyAnimate {
		return "animate"
	}
	return "retransmit"
}

// Options configures a renderer session. Zero values take defaults.
type Options struct {
	Policy    Policy
	ChunkSize int

	// DiffThreshold elides frames whose change percentage is strictly
	// below it. Zero disables elision entirely.
	DiffThreshold int

	// Compress deflates the pixel payload (protocol o=z) before encoding.
	Compress bool
}

// Renderer is one per-process image session: an opaque image id, a frame
// counter, and the scratch buffers whose lifetime matches the session's.
type Renderer struct {
	w    io.Writer
	enc  codec.Encoding
	diff Differ

	rows, cols int
	imageID    int64
	frame      int

	policy    Policy
	chunkSize int
	threshold int
	compress  bool

	encBuf []byte // base64 scratch, sized once for a full frame
	zBuf   []byte // deflate scratch, only allocated when compressing
	prev   []byte // previous transmitted frame, for differencing
}

// New creates a renderer session targeting rows x cols terminal cells.
// The image id is random so a stale image from a previous run is never
// silently updated.
func New(w io.Writer, enc codec.Encoding, diff Differ, rows, cols int, opts Options) *Renderer {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}

	r := &Renderer{
		w:         w,
		enc:       enc,
		diff:      diff,
		rows:      rows,
		cols:      cols,
		imageID:   int64(rand.Int31()),
		policy:    opts.Policy,
		chunkSize: opts.ChunkSize,
		threshold: opts.DiffThreshold,
		compress:  opts.Compress,
		encBuf:    make([]byte, codec.EncodedLen(engine.FrameBytes)),
		prev:      make([]byte, engine.FrameBytes),
	}

	// Session preamble: window title, clean screen, cursor at home
	io.WriteString(r.w, "\x1b]21;Kitty DOOM\x1b\\")
	io.WriteString(r.w, "\x1b[2J\x1b[H")

	return r
}

// ImageID exposes the session image id, for tests and diagnostics.
func (r *Renderer) ImageID() int64 {
	return r.imageID
}

// Frame transmits one packed RGB frame. Frames that differ from the last
// transmitted frame by less than the configured threshold are elided; the
// first frame is always sent.
func (r *Renderer) Frame(rgb []byte) error {
	if len(rgb) < engine.FrameBytes {
		return fmt.Errorf("short frame: %d bytes, want %d", len(rgb), engine.FrameBytes)
	}
	rgb = rgb[:engine.FrameBytes]

	if r.frame == 0 {
		if _, err := io.WriteString(r.w, "\x1b[H"); err != nil {
			return err
		}
	}

	if r.frame > 0 && r.threshold > 0 {
		if r.diff.Percent(r.prev, rgb, engine.FrameWidth*engine.FrameHeight) < r.threshold {
			return nil
		}
	}

	payload := rgb
	if r.compress {
		var err error
		if payload, err = r.deflate(rgb); err != nil {
			return err
		}
	}

	if len(r.encBuf) < codec.EncodedLen(len(payload)) {
		r.encBuf = make([]byte, codec.EncodedLen(len(payload)))
	}
	n := r.enc.Encode(r.encBuf, payload)
	encoded := r.encBuf[:n]

	var err error
	if r.policy == PolicyAnimate {
		err = r.sendAnimate(encoded)
	} else {
		err = r.sendRetransmit(encoded)
	}
	if err != nil {
		return err
	}

	// First frame leaves the cursor below the image
	if r.frame == 0 {
		if _, err := io.WriteString(r.w, "\r\n"); err != nil {
			return err
		}
	}

	copy(r.prev, rgb)
	r.frame++
	return nil
}

// sendRetransmit writes the compatibility-mode frame: delete the previous
// image, then a full a=T transmit.
func (r *Renderer) sendRetransmit(encoded []byte) error {
	if r.frame > 0 {
		if _, err := fmt.Fprintf(r.w, "\x1b[H\x1b_Ga=d,i=%d;\x1b\\", r.imageID); err != nil {
			return err
		}
	}
	return r.writeChunks(encoded, r.transmitHeader, func(more int) string {
		return fmt.Sprintf("\x1b_Gm=%d;", more)
	})
}

// sendAnimate writes the kitty-native frame: a=T for frame 0, then in-place
// frame updates followed by an animate/advance command.
func (r *Renderer) sendAnimate(encoded []byte) error {
	var header func(more int) string
	var cont func(more int) string

	if r.frame == 0 {
		header = r.transmitHeader
		cont = func(more int) string {
			return fmt.Sprintf("\x1b_Gm=%d;", more)
		}
	} else {
		header = func(more int) string {
			return fmt.Sprintf("\x1b_Ga=f,r=1,i=%d,f=24,x=0,y=0,s=%d,v=%d,%sm=%d;",
				r.imageID, engine.FrameWidth, engine.FrameHeight, r.compressField(), more)
		}
		cont = func(more int) string {
			return fmt.Sprintf("\x1b_Ga=f,r=1,m=%d;", more)
		}
	}

	if err := r.writeChunks(encoded, header, cont); err != nil {
		return err
	}

	if r.frame > 0 {
		if _, err := fmt.Fprintf(r.w, "\x1b_Ga=a,c=1,i=%d;\x1b\\", r.imageID); err != nil {
			return err
		}
	}
	return nil
}

// transmitHeader is the full-metadata a=T header used for frame 0 in both
// policies and for every frame under retransmit.
func (r *Renderer) transmitHeader(more int) string {
	return fmt.Sprintf("\x1b_Ga=T,i=%d,f=24,s=%d,v=%d,%sq=2,c=%d,r=%d,m=%d;",
		r.imageID, engine.FrameWidth, engine.FrameHeight, r.compressField(),
		r.cols, r.rows, more)
}

func (r *Renderer) compressField() string {
	if r.compress {
		return "o=z,"
	}
	return ""
}

// writeChunks splits encoded payload into protocol chunks. The first chunk
// carries the header, continuation chunks only the more-data flag.
func (r *Renderer) writeChunks(encoded []byte, header, cont func(more int) string) error {
	for off := 0; off == 0 || off < len(encoded); {
		more := 0
		if off+r.chunkSize < len(encoded) {
			more = 1
		}

		var lead string
		if off == 0 {
			lead = header(more)
		} else {
			lead = cont(more)
		}
		if _, err := io.WriteString(r.w, lead); err != nil {
			return err
		}

		end := off + r.chunkSize
		if end > len(encoded) {
			end = len(encoded)
		}
		if _, err := r.w.Write(encoded[off:end]); err != nil {
			return err
		}
		if _, err := io.WriteString(r.w, "\x1b\\"); err != nil {
			return err
		}

		if end == off { // zero-length payload still sends one chunk
			break
		}
		off = end
	}
	return nil
}

// deflate compresses the pixel payload for o=z transmission.
func (r *Renderer) deflate(rgb []byte) ([]byte, error) {
	buf := newSliceWriter(r.zBuf[:0])
	zw := zlib.NewWriter(buf)
	if _, err := zw.Write(rgb); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	r.zBuf = buf.b
	return buf.b, nil
}

// Close deletes the session image and restores the screen and title.
func (r *Renderer) Close() error {
	_, err := fmt.Fprintf(r.w, "\x1b_Ga=d,i=%d;\x1b\\", r.imageID)
	io.WriteString(r.w, "\x1b[H\x1b[2J")
	io.WriteString(r.w, "\x1b]21\x1b\\")
	return err
}

// sliceWriter appends into a reusable byte slice.
type sliceWriter struct {
	b []byte
}

func newSliceWriter(b []byte) *sliceWriter {
	return &sliceWriter{b: b}
}

func (s *sliceWriter) Write(p []byte) (int, error) {
	s.b = append(s.b, p...)
	return len(p), nil
}
