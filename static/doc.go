// Package static is the reference image generator: an animated analog-TV
// static effect composed per pixel from a vertical gradient, a time-advected
// value-noise field, scanline wobble, a periodic vertical tear, snow bursts,
// fine grain, and a global flicker, collapsed to two endpoint colors by a
// 4x4 ordered-dither threshold.
//
// The generator is a pure function of (x, y, frame): the same inputs always
// yield the same color, so stages may evaluate pixels in any order and
// repeated renders at the same time are reproducible.
//
// Usage:
//
//	gen := static.New()
//	p, err := dotscreen.New(1920, 1080, gen, dotscreen.WithDotSize(4))
package static
