package dotscreen

import (
	"errors"
	"testing"
)

// gradientGen produces a horizontal brightness ramp scaled by time.
func gradientGen() Generator {
	return GeneratorFunc(func(x, y int, f Frame) RGB {
		v := float64(x) / float64(f.Width-1)
		return RGB{R: v, G: v, B: v}
	})
}

// TestNewSoftwareStage_NilGenerator verifies the nil-generator guard.
func TestNewSoftwareStage_NilGenerator(t *testing.T) {
	if _, err := NewSoftwareStage(nil, 4, 4); !errors.Is(err, ErrNilGenerator) {
		t.Errorf("got %v, want ErrNilGenerator", err)
	}
}

// TestSoftwareStage_RenderReadback verifies a render followed by a readback
// delivers the generator's pixels.
func TestSoftwareStage_RenderReadback(t *testing.T) {
	s, err := NewSoftwareStage(gradientGen(), 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()

	if err := s.Render(0, nil); err != nil {
		t.Fatal(err)
	}

	dst := make([]byte, 8*4*4)
	if err := s.Readback(dst); err != nil {
		t.Fatal(err)
	}

	// Left edge black, right edge white, on every row.
	for y := 0; y < 4; y++ {
		left := (y*8 + 0) * 4
		right := (y*8 + 7) * 4
		if dst[left] != 0 {
			t.Errorf("row %d left: got %d, want 0", y, dst[left])
		}
		if dst[right] != 255 {
			t.Errorf("row %d right: got %d, want 255", y, dst[right])
		}
		if dst[left+3] != 255 || dst[right+3] != 255 {
			t.Errorf("row %d: alpha not opaque", y)
		}
	}
}

// TestSoftwareStage_ReadbackSizeMismatch verifies buffer length validation.
func TestSoftwareStage_ReadbackSizeMismatch(t *testing.T) {
	s, err := NewSoftwareStage(gradientGen(), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()

	if err := s.Readback(make([]byte, 7)); !errors.Is(err, ErrBufferSize) {
		t.Errorf("got %v, want ErrBufferSize", err)
	}
}

// TestSoftwareStage_Resize verifies the stage renders at its new size.
func TestSoftwareStage_Resize(t *testing.T) {
	s, err := NewSoftwareStage(gradientGen(), 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()

	if err := s.Resize(16, 8); err != nil {
		t.Fatal(err)
	}
	if w, h := s.Size(); w != 16 || h != 8 {
		t.Fatalf("Size(): got %dx%d, want 16x8", w, h)
	}
	if err := s.Render(0, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Readback(make([]byte, 16*8*4)); err != nil {
		t.Fatal(err)
	}
}

// TestSoftwareStage_Release verifies Release is idempotent and later calls fail.
func TestSoftwareStage_Release(t *testing.T) {
	s, err := NewSoftwareStage(gradientGen(), 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	s.Release()
	s.Release()

	if err := s.Render(0, nil); !errors.Is(err, ErrStageReleased) {
		t.Errorf("Render after Release: got %v, want ErrStageReleased", err)
	}
	if err := s.Readback(make([]byte, 4*4*4)); !errors.Is(err, ErrStageReleased) {
		t.Errorf("Readback after Release: got %v, want ErrStageReleased", err)
	}
	if err := s.Resize(8, 8); !errors.Is(err, ErrStageReleased) {
		t.Errorf("Resize after Release: got %v, want ErrStageReleased", err)
	}
}

// TestGeneratorFunc verifies the adapter forwards the frame context.
func TestGeneratorFunc(t *testing.T) {
	var got Frame
	gen := GeneratorFunc(func(x, y int, f Frame) RGB {
		got = f
		return Black
	})
	gen.Pixel(0, 0, Frame{Width: 10, Height: 5, Time: 2.5})
	if got.Width != 10 || got.Height != 5 || got.Time != 2.5 {
		t.Errorf("frame not forwarded: %+v", got)
	}
}
