package recording

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// testFrame builds a dithered-looking RGBA payload.
func testFrame(w, h int, seed byte) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		v := byte(0)
		if (i/4+int(seed))%3 == 0 {
			v = 255
		}
		pix[i+0] = v
		pix[i+1] = v
		pix[i+2] = v
		pix[i+3] = 255
	}
	return pix
}

// TestRoundTrip verifies frames survive a write and read cycle.
func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatal(err)
	}

	times := []float64{0, 1.0 / 60, 2.0 / 60}
	for i, tm := range times {
		if err := rec.WriteFrame(tm, 16, 12, testFrame(16, 12, byte(i))); err != nil {
			t.Fatalf("WriteFrame %d: %v", i, err)
		}
	}
	if rec.Frames() != 3 {
		t.Errorf("Frames(): got %d, want 3", rec.Frames())
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	rd, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	for i, tm := range times {
		f, err := rd.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame %d: %v", i, err)
		}
		if f.Width != 16 || f.Height != 12 {
			t.Errorf("frame %d: got %dx%d, want 16x12", i, f.Width, f.Height)
		}
		if f.Time != tm {
			t.Errorf("frame %d: time %v, want %v", i, f.Time, tm)
		}
		if !bytes.Equal(f.Pix, testFrame(16, 12, byte(i))) {
			t.Errorf("frame %d: payload mismatch", i)
		}
	}
	if _, err := rd.ReadFrame(); err != io.EOF {
		t.Errorf("past end: got %v, want io.EOF", err)
	}
}

// TestReader_BadMagic verifies foreign data is rejected up front.
func TestReader_BadMagic(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte("PNG\r\n123456"))); !errors.Is(err, ErrBadMagic) {
		t.Errorf("got %v, want ErrBadMagic", err)
	}
	if _, err := NewReader(bytes.NewReader([]byte{1, 2})); !errors.Is(err, ErrBadMagic) {
		t.Errorf("short stream: got %v, want ErrBadMagic", err)
	}
}

// TestReader_Truncated verifies a stream cut mid-frame reports ErrTruncated.
func TestReader_Truncated(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.WriteFrame(0, 8, 8, testFrame(8, 8, 0)); err != nil {
		t.Fatal(err)
	}
	rec.Close()

	cut := buf.Bytes()[:buf.Len()-5]
	rd, err := NewReader(bytes.NewReader(cut))
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	if _, err := rd.ReadFrame(); !errors.Is(err, ErrTruncated) {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}

// TestRecorder_Validation tests payload size checks and closed-recorder writes.
func TestRecorder_Validation(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if err := rec.WriteFrame(0, 8, 8, make([]byte, 10)); err == nil {
		t.Error("wrong payload size: expected error")
	}

	rec.Close()
	if err := rec.WriteFrame(0, 8, 8, testFrame(8, 8, 0)); !errors.Is(err, ErrRecorderClosed) {
		t.Errorf("write after close: got %v, want ErrRecorderClosed", err)
	}
}

// TestCompression verifies dithered frames actually shrink.
func TestCompression(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Close()

	raw := testFrame(64, 64, 0)
	if err := rec.WriteFrame(0, 64, 64, raw); err != nil {
		t.Fatal(err)
	}
	if buf.Len() >= len(raw) {
		t.Errorf("compressed stream (%d bytes) not smaller than raw frame (%d bytes)",
			buf.Len(), len(raw))
	}
}
