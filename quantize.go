package dotscreen

import (
	"fmt"
	"math"
)

// Levels holds the per-channel quantization level counts for R, G, B.
// Channels are independently tunable; an 8/8/4 allocation deliberately
// biases banding toward blue, matching bit-weighted palettes.
type Levels [3]int

// DefaultLevels is the 3-3-2 bit-weighted allocation.
var DefaultLevels = Levels{8, 8, 4}

// Validate rejects any channel with fewer than 2 levels.
func (l Levels) Validate() error {
	for i, n := range l {
		if n < 2 {
			return fmt.Errorf("%w: channel %d has %d", ErrInvalidLevels, i, n)
		}
	}
	return nil
}

// Quantizer maps a continuous channel intensity in [0, 255] to the nearest
// of a fixed number of evenly spaced levels. The step is precomputed at
// construction; Quantize itself is branch-free and allocation-free since it
// runs once per channel per pixel per processed frame.
type Quantizer struct {
	step float64
}

// NewQuantizer creates a quantizer with the given level count.
// Level counts below 2 are a configuration error.
func NewQuantizer(levels int) (Quantizer, error) {
	if levels < 2 {
		return Quantizer{}, fmt.Errorf("%w: got %d", ErrInvalidLevels, levels)
	}
	return Quantizer{step: 255 / float64(levels-1)}, nil
}

// Quantize returns the nearest level for v. For v in [0, 255] the result is
// always one of the quantizer's levels; out-of-range inputs (which occur
// transiently during error diffusion) snap to the nearest multiple of the
// step and are clamped only at the final byte write-back.
func (q Quantizer) Quantize(v float64) float64 {
	return math.Round(v/q.step) * q.step
}

// Step returns the spacing between adjacent levels.
func (q Quantizer) Step() float64 {
	return q.step
}
