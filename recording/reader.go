package recording

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Frame is one decoded entry of a frame stream.
type Frame struct {
	Time   float64
	Width  int
	Height int

	// Pix is the decompressed RGBA payload. It is owned by the caller;
	// the reader does not reuse it.
	Pix []byte
}

// Reader decodes a frame stream written by Recorder.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r       io.Reader
	dec     *zstd.Decoder
	comp    []byte
	hdr     [frameHeaderSize]byte
	version byte
}

// NewReader validates the stream header and prepares a decoder.
func NewReader(r io.Reader) (*Reader, error) {
	var head [5]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if string(head[:4]) != magic {
		return nil, ErrBadMagic
	}
	if head[4] != streamVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadMagic, head[4])
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("recording: create decoder: %w", err)
	}
	return &Reader{r: r, dec: dec, version: head[4]}, nil
}

// ReadFrame decodes the next frame. It returns io.EOF at a clean end of
// stream and ErrTruncated when the stream ends mid-frame.
func (rd *Reader) ReadFrame() (Frame, error) {
	if _, err := io.ReadFull(rd.r, rd.hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("%w: frame header: %v", ErrTruncated, err)
	}

	width := int(binary.BigEndian.Uint32(rd.hdr[0:]))
	height := int(binary.BigEndian.Uint32(rd.hdr[4:]))
	t := math.Float64frombits(binary.BigEndian.Uint64(rd.hdr[8:]))
	compLen := int(binary.BigEndian.Uint32(rd.hdr[16:]))

	if cap(rd.comp) < compLen {
		rd.comp = make([]byte, compLen)
	}
	rd.comp = rd.comp[:compLen]
	if _, err := io.ReadFull(rd.r, rd.comp); err != nil {
		return Frame{}, fmt.Errorf("%w: frame payload: %v", ErrTruncated, err)
	}

	pix, err := rd.dec.DecodeAll(rd.comp, nil)
	if err != nil {
		return Frame{}, fmt.Errorf("recording: zstd decode: %w", err)
	}
	if len(pix) != width*height*4 {
		return Frame{}, fmt.Errorf("recording: frame is %dx%d but payload decoded to %d bytes",
			width, height, len(pix))
	}

	return Frame{Time: t, Width: width, Height: height, Pix: pix}, nil
}

// Close releases the decoder. It does not close the underlying reader.
func (rd *Reader) Close() {
	rd.dec.Close()
}
