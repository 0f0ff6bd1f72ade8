package dotscreen

import (
	"image"
	"testing"
)

// TestOutputSurface_Sizes verifies buffer and display sizes stay decoupled.
func TestOutputSurface_Sizes(t *testing.T) {
	o := NewOutputSurface(480, 270, 1920, 1080)

	if w, h := o.Size(); w != 480 || h != 270 {
		t.Errorf("Size(): got %dx%d, want 480x270", w, h)
	}
	if w, h := o.DisplaySize(); w != 1920 || h != 1080 {
		t.Errorf("DisplaySize(): got %dx%d, want 1920x1080", w, h)
	}

	o.SetDisplaySize(800, 600)
	if w, h := o.Size(); w != 480 || h != 270 {
		t.Errorf("Size() after SetDisplaySize: got %dx%d, want unchanged 480x270", w, h)
	}
}

// TestOutputSurface_MagnifyBlocks verifies nearest-neighbor magnification
// produces hard-edged blocks with no blending.
func TestOutputSurface_MagnifyBlocks(t *testing.T) {
	o := NewOutputSurface(2, 2, 8, 8)
	pm := o.Pixmap()
	pm.SetPixel(0, 0, White)
	pm.SetPixel(1, 0, Black)
	pm.SetPixel(0, 1, Black)
	pm.SetPixel(1, 1, White)

	img := o.Magnify(nil)
	if img.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Fatalf("bounds: got %v, want 8x8", img.Bounds())
	}

	// Every display pixel must be exactly one of the two source values.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			r, _, _, a := img.At(x, y).RGBA()
			if r != 0 && r != 0xffff {
				t.Fatalf("pixel (%d, %d): blended value %d", x, y, r)
			}
			if a != 0xffff {
				t.Fatalf("pixel (%d, %d): alpha %d, want opaque", x, y, a)
			}
		}
	}

	// Corners map to the matching source corners.
	checks := []struct {
		x, y int
		want uint32
	}{
		{0, 0, 0xffff}, {7, 0, 0}, {0, 7, 0}, {7, 7, 0xffff},
	}
	for _, c := range checks {
		r, _, _, _ := img.At(c.x, c.y).RGBA()
		if r != c.want {
			t.Errorf("pixel (%d, %d): got %d, want %d", c.x, c.y, r, c.want)
		}
	}
}

// TestOutputSurface_MagnifyReuse verifies a correctly sized destination is
// reused rather than reallocated.
func TestOutputSurface_MagnifyReuse(t *testing.T) {
	o := NewOutputSurface(2, 2, 4, 4)

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	got := o.Magnify(dst)
	if got != dst {
		t.Error("expected existing destination to be reused")
	}

	wrong := image.NewRGBA(image.Rect(0, 0, 3, 3))
	if got := o.Magnify(wrong); got == wrong {
		t.Error("expected wrongly sized destination to be replaced")
	}
}
