package static

// bayer4 is the standard 4x4 Bayer ordered-dither matrix, normalized to
// thresholds in (0, 1). Indexed by pixel position modulo 4.
var bayer4 = [16]float64{
	0.5 / 16, 8.5 / 16, 2.5 / 16, 10.5 / 16,
	12.5 / 16, 4.5 / 16, 14.5 / 16, 6.5 / 16,
	3.5 / 16, 11.5 / 16, 1.5 / 16, 9.5 / 16,
	15.5 / 16, 7.5 / 16, 13.5 / 16, 5.5 / 16,
}

// threshold returns the ordered-dither threshold for a pixel position.
func threshold(x, y int) float64 {
	return bayer4[(y&3)<<2|(x&3)]
}
