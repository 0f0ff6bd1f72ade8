package static

import (
	"math"

	"github.com/gogpu/dotscreen"
)

// Generator composites the animated static effect. The zero value is not
// usable; create one with New. A Generator is stateless and safe for
// concurrent use.
type Generator struct {
	seed uint32
}

// New creates the reference static generator.
func New() *Generator {
	return &Generator{seed: 0x5f3759df}
}

// NewSeeded creates a generator with a custom noise seed. Two generators
// with the same seed produce identical frames.
func NewSeeded(seed uint32) *Generator {
	return &Generator{seed: seed}
}

// Pixel evaluates the effect for one target pixel.
//
// The shaded value is built additively, then collapsed to one of the two
// endpoint colors by the ordered-dither threshold. Every term is a pure
// function of the inputs, so frames are reproducible.
func (g *Generator) Pixel(x, y int, f dotscreen.Frame) dotscreen.RGB {
	p := f.Params
	if p == nil {
		def := dotscreen.DefaultParams()
		p = &def
	}
	t := f.Time

	fh := float64(f.Height)
	v := float64(y) / math.Max(fh-1, 1)

	// Scanline wobble shifts the horizontal sample position per row, and a
	// periodic tear shifts whole frames vertically for a short burst.
	sx := float64(x) + g.wobble(v, t, p)
	sy := float64(y) + g.tear(t, p)*fh

	// Vertical gradient, brighter toward the top.
	shade := 0.75 - 0.35*v

	// Coherent noise field advected upward over time.
	const noiseScale = 1.0 / 9.0
	n := fbm(sx*noiseScale, sy*noiseScale+t*2.1*p.NoiseSpeed, g.seed)
	shade += (n - 0.5) * 2 * p.NoiseStrength

	// Snow: short-lived bright bursts on scattered pixels.
	shade += g.snow(x, y, t, p)

	// Fine grain, re-rolled per frame.
	grainTick := uint32(int64(t * 60 * p.GrainSpeed))
	shade += (hash01(int32(x), int32(y), g.seed^grainTick^0x6b43a9b5) - 0.5) * p.GrainStrength

	// Global sinusoidal flicker.
	shade *= 1 + 0.06*math.Sin(t*11*p.FlickerSpeed)

	a, b := p.ColorA, p.ColorB
	if p.Invert {
		a, b = b, a
	}
	if shade > threshold(x, y) {
		return b
	}
	return a
}

// wobble returns the horizontal sample offset for a row: a slow sine sweep
// plus a sharper harmonic, both scaled by the motion strength.
func (g *Generator) wobble(v, t float64, p *dotscreen.Params) float64 {
	w := p.WobbleSpeed
	return p.MotionStrength * (3*math.Sin(v*21+t*2.4*w) + 1.2*math.Sin(v*67-t*5.9*w))
}

// tear returns the vertical sample offset as a fraction of the frame
// height. Most of the time it is zero; once per tear period the frame rolls
// through a full vertical wrap over a short window.
func (g *Generator) tear(t float64, p *dotscreen.Params) float64 {
	const period = 7.0
	const window = 0.45
	phase := math.Mod(t*p.TearSpeed, period)
	if phase >= window {
		return 0
	}
	return p.MotionStrength * smooth(phase/window)
}

// snow returns a brightness spike for a small random subset of pixels,
// re-drawn every snow tick.
func (g *Generator) snow(x, y int, t float64, p *dotscreen.Params) float64 {
	tick := uint32(int64(t * 18 * p.SnowSpeed))
	r := hash01(int32(x), int32(y), g.seed^tick^0x1b873593)
	if r < 0.997 {
		return 0
	}
	// The surviving 0.3% flash at a strength tied to the noise setting.
	return (r - 0.997) / 0.003 * (0.8 + p.NoiseStrength)
}

var _ dotscreen.Generator = (*Generator)(nil)
