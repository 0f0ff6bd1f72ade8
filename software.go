package dotscreen

import "fmt"

// SoftwareStage is a CPU render stage. It evaluates the generator once per
// pixel into an internal pixmap and serves readback as a plain copy. It is
// the default stage and the fallback when no GPU device is available.
type SoftwareStage struct {
	gen      Generator
	target   *Pixmap
	released bool
}

// NewSoftwareStage creates a CPU stage with a w x h target.
func NewSoftwareStage(gen Generator, w, h int) (*SoftwareStage, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}
	return &SoftwareStage{
		gen:    gen,
		target: NewPixmap(w, h),
	}, nil
}

// Size returns the current target dimensions.
func (s *SoftwareStage) Size() (w, h int) {
	return s.target.Width(), s.target.Height()
}

// Resize replaces the target pixmap. The new pixmap is allocated before the
// old one is dropped, so a panic-free failure can never leave the stage
// without a target.
func (s *SoftwareStage) Resize(w, h int) error {
	if s.released {
		return ErrStageReleased
	}
	next := NewPixmap(w, h)
	s.target = next
	return nil
}

// Render evaluates the generator for every pixel of the target.
func (s *SoftwareStage) Render(t float64, p *Params) error {
	if s.released {
		return ErrStageReleased
	}
	w, h := s.target.Width(), s.target.Height()
	f := Frame{Width: w, Height: h, Time: t, Params: p}
	pix := s.target.Data()
	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			c := s.gen.Pixel(x, y, f)
			i := row + x*4
			pix[i+0] = uint8(clamp255(c.R * 255))
			pix[i+1] = uint8(clamp255(c.G * 255))
			pix[i+2] = uint8(clamp255(c.B * 255))
			pix[i+3] = 255
		}
	}
	return nil
}

// Readback copies the rendered pixels into dst.
func (s *SoftwareStage) Readback(dst []byte) error {
	if s.released {
		return ErrStageReleased
	}
	src := s.target.Data()
	if len(dst) != len(src) {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrBufferSize, len(src), len(dst))
	}
	copy(dst, src)
	return nil
}

// Release drops the target. Further calls on the stage return
// ErrStageReleased. Release is idempotent.
func (s *SoftwareStage) Release() {
	if s.released {
		return
	}
	s.released = true
	s.target = nil
}

// Verify SoftwareStage implements Stage.
var _ Stage = (*SoftwareStage)(nil)
