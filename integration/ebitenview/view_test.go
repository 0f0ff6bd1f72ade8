package ebitenview

import "testing"

// TestScaleFor verifies the magnification math, including non-integer
// ratios from odd window sizes.
func TestScaleFor(t *testing.T) {
	tests := []struct {
		tw, th, sw, sh int
		sx, sy         float64
	}{
		{480, 270, 1920, 1080, 4, 4},
		{200, 150, 800, 600, 4, 4},
		{100, 100, 150, 100, 1.5, 1},
		{0, 10, 100, 100, 1, 1},
	}
	for _, tt := range tests {
		sx, sy := scaleFor(tt.tw, tt.th, tt.sw, tt.sh)
		if sx != tt.sx || sy != tt.sy {
			t.Errorf("scaleFor(%d, %d, %d, %d): got (%v, %v), want (%v, %v)",
				tt.tw, tt.th, tt.sw, tt.sh, sx, sy, tt.sx, tt.sy)
		}
	}
}
