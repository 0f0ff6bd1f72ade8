package static

import "math"

// hash2 maps an integer lattice point and seed to a pseudo-random uint32.
// It is a small avalanche mix, fully deterministic and allocation-free.
func hash2(x, y int32, seed uint32) uint32 {
	h := uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35 ^ seed*0x27d4eb2f
	h ^= h >> 15
	h *= 0x2c1b3c6d
	h ^= h >> 12
	h *= 0x297a2d39
	h ^= h >> 15
	return h
}

// hash01 maps a lattice point and seed to a float in [0, 1).
func hash01(x, y int32, seed uint32) float64 {
	return float64(hash2(x, y, seed)) / float64(math.MaxUint32+1)
}

// smooth is the Hermite fade 3t^2 - 2t^3 used to interpolate lattice values.
func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

// valueNoise samples coherent 2D value noise at (x, y). Lattice values come
// from hash01; the result is in [0, 1) and continuous in both coordinates.
func valueNoise(x, y float64, seed uint32) float64 {
	xf := math.Floor(x)
	yf := math.Floor(y)
	xi := int32(xf)
	yi := int32(yf)

	tx := smooth(x - xf)
	ty := smooth(y - yf)

	v00 := hash01(xi, yi, seed)
	v10 := hash01(xi+1, yi, seed)
	v01 := hash01(xi, yi+1, seed)
	v11 := hash01(xi+1, yi+1, seed)

	top := v00 + (v10-v00)*tx
	bot := v01 + (v11-v01)*tx
	return top + (bot-top)*ty
}

// fbm layers two octaves of value noise. Two octaves are enough texture for
// a static field that is mostly destroyed by the threshold pass anyway.
func fbm(x, y float64, seed uint32) float64 {
	return (valueNoise(x, y, seed)*2 + valueNoise(x*2.7, y*2.7, seed^0x9e3779b9)) / 3
}
