package dotscreen

import "fmt"

// Params is the full set of animation parameters read by the image generator
// each tick. It is an explicit configuration record: the pipeline stores one
// copy and hands it to the render stage by pointer for the duration of a
// single tick. There is no shared mutable global.
//
// Defaults come from DefaultParams. All fields can be changed at runtime via
// Pipeline.SetParams; a DotSize change additionally triggers a resize.
type Params struct {
	// DotSize is the user-facing block scale: how many display pixels
	// correspond to one low-resolution source pixel. Must be >= 1.
	DotSize float64

	// ColorA and ColorB are the two endpoint colors the ordered-dither
	// threshold collapses each shaded pixel to.
	ColorA RGB
	ColorB RGB

	// Invert swaps the endpoint colors.
	Invert bool

	// Strength multipliers for the noise field, the scanline/tear motion,
	// and the fine per-pixel grain.
	NoiseStrength  float64
	MotionStrength float64
	GrainStrength  float64

	// Independent speed multipliers, one per effect.
	NoiseSpeed   float64
	WobbleSpeed  float64
	TearSpeed    float64
	SnowSpeed    float64
	GrainSpeed   float64
	FlickerSpeed float64
}

// DefaultParams returns the documented parameter defaults.
func DefaultParams() Params {
	return Params{
		DotSize:        4,
		ColorA:         Black,
		ColorB:         White,
		Invert:         false,
		NoiseStrength:  0.35,
		MotionStrength: 0.25,
		GrainStrength:  0.12,
		NoiseSpeed:     1.0,
		WobbleSpeed:    1.0,
		TearSpeed:      0.6,
		SnowSpeed:      1.0,
		GrainSpeed:     1.0,
		FlickerSpeed:   1.0,
	}
}

// Validate checks the parameter record. Invalid configuration is rejected
// here, at setup time, so the per-pixel paths never have to re-check it.
func (p *Params) Validate() error {
	if p.DotSize < 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidDotSize, p.DotSize)
	}
	if p.NoiseStrength < 0 || p.MotionStrength < 0 || p.GrainStrength < 0 {
		return fmt.Errorf("dotscreen: strength multipliers must be >= 0")
	}
	return nil
}

// TargetSize derives the low-resolution target dimensions from display
// dimensions and the dot size: scale = max(1, floor(dotSize)), each dimension
// floor-divided by scale and clamped to a minimum of 2. The clamp guarantees
// the diffusion kernel always has at least one causal neighbor row.
//
// Fractional dot sizes floor to an integer scale, so 1920x1080 at dot size
// 2.5 yields 960x540, not 768x432. Integer block scales keep the
// nearest-neighbor magnification exact.
func TargetSize(displayW, displayH int, dotSize float64) (tw, th int) {
	scale := int(dotSize)
	if scale < 1 {
		scale = 1
	}
	tw = displayW / scale
	th = displayH / scale
	if tw < 2 {
		tw = 2
	}
	if th < 2 {
		th = 2
	}
	return tw, th
}
