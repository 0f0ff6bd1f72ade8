package recording

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// magic identifies a dotscreen frame stream, followed by one version byte.
const magic = "DSFR"

// streamVersion is bumped on incompatible layout changes.
const streamVersion = 1

var (
	// ErrBadMagic is returned when a stream does not start with the
	// expected header.
	ErrBadMagic = errors.New("recording: not a dotscreen frame stream")

	// ErrTruncated is returned when a stream ends inside a frame.
	ErrTruncated = errors.New("recording: truncated frame stream")

	// ErrRecorderClosed is returned when writing to a closed recorder.
	ErrRecorderClosed = errors.New("recording: recorder is closed")
)

// frameHeaderSize is the fixed per-frame header: width, height (u32),
// time (f64), compressed payload length (u32).
const frameHeaderSize = 4 + 4 + 8 + 4

// Recorder writes a frame stream. It reuses one zstd encoder and one
// compression scratch buffer across frames, so steady-state recording
// allocates only what the writer underneath needs.
//
// A Recorder is not safe for concurrent use.
type Recorder struct {
	w      io.Writer
	enc    *zstd.Encoder
	comp   []byte
	hdr    [frameHeaderSize]byte
	frames int
	closed bool
}

// NewRecorder creates a recorder and writes the stream header to w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		return nil, fmt.Errorf("recording: create encoder: %w", err)
	}

	if _, err := w.Write([]byte{magic[0], magic[1], magic[2], magic[3], streamVersion}); err != nil {
		enc.Close()
		return nil, fmt.Errorf("recording: write header: %w", err)
	}
	return &Recorder{w: w, enc: enc}, nil
}

// WriteFrame appends one frame. pix must be width*height*4 bytes of RGBA.
func (r *Recorder) WriteFrame(t float64, width, height int, pix []byte) error {
	if r.closed {
		return ErrRecorderClosed
	}
	if len(pix) != width*height*4 {
		return fmt.Errorf("recording: frame is %dx%d but payload is %d bytes", width, height, len(pix))
	}

	r.comp = r.enc.EncodeAll(pix, r.comp[:0])

	binary.BigEndian.PutUint32(r.hdr[0:], uint32(width))
	binary.BigEndian.PutUint32(r.hdr[4:], uint32(height))
	binary.BigEndian.PutUint64(r.hdr[8:], math.Float64bits(t))
	binary.BigEndian.PutUint32(r.hdr[16:], uint32(len(r.comp)))

	if _, err := r.w.Write(r.hdr[:]); err != nil {
		return fmt.Errorf("recording: write frame header: %w", err)
	}
	if _, err := r.w.Write(r.comp); err != nil {
		return fmt.Errorf("recording: write frame payload: %w", err)
	}
	r.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close releases the encoder. It does not close the underlying writer.
// Close is idempotent.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.enc.Close()
}
