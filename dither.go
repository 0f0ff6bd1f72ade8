package dotscreen

import (
	"fmt"
	"math"
)

// Diffuser applies Floyd-Steinberg error diffusion to an RGBA byte buffer,
// quantizing each color channel independently to its configured level count.
//
// The three float working planes are owned by the diffuser and reallocated
// only on resize, so a steady-state dither pass allocates nothing. Alpha is
// ignored on input and forced to fully opaque on output.
//
// A Diffuser is not safe for concurrent use; the pipeline serializes access.
type Diffuser struct {
	qr, qg, qb Quantizer

	width  int
	height int

	// Per-channel working planes, each width*height floats. Seeded from the
	// byte buffer at the start of a pass; values drift outside [0, 255] as
	// error accumulates and are clamped only at write-back.
	planeR []float64
	planeG []float64
	planeB []float64
}

// NewDiffuser creates a diffuser for the given per-channel level counts.
// The working planes start empty; call Resize before the first pass.
func NewDiffuser(levels Levels) (*Diffuser, error) {
	if err := levels.Validate(); err != nil {
		return nil, err
	}
	qr, _ := NewQuantizer(levels[0])
	qg, _ := NewQuantizer(levels[1])
	qb, _ := NewQuantizer(levels[2])
	return &Diffuser{qr: qr, qg: qg, qb: qb}, nil
}

// Size returns the current working plane dimensions.
func (d *Diffuser) Size() (w, h int) {
	return d.width, d.height
}

// Resize reallocates the working planes for a w x h target. Existing plane
// contents are discarded; they are scratch space live only for the duration
// of one pass.
func (d *Diffuser) Resize(w, h int) {
	if w == d.width && h == d.height && d.planeR != nil {
		return
	}
	n := w * h
	d.planeR = make([]float64, n)
	d.planeG = make([]float64, n)
	d.planeB = make([]float64, n)
	d.width = w
	d.height = h
}

// Diffuse quantizes pix (RGBA, 4 bytes per pixel, w x h) in place.
//
// Pixels are visited in raster order. At each pixel the accumulated channel
// value is snapped to the nearest level and the signed error is pushed onto
// the four causal neighbors with the classic 7/16, 3/16, 5/16, 1/16 weights.
// Error falling outside the image is dropped; there is no wraparound, so very
// small targets show slight boundary lightening or darkening.
func (d *Diffuser) Diffuse(pix []byte, w, h int) error {
	if w != d.width || h != d.height {
		return fmt.Errorf("%w: diffuser is %dx%d, buffer is %dx%d",
			ErrBufferSize, d.width, d.height, w, h)
	}
	if len(pix) != w*h*4 {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrBufferSize, w*h*4, len(pix))
	}

	// Seed the working planes from the byte buffer.
	for i, n := 0, w*h; i < n; i++ {
		d.planeR[i] = float64(pix[i*4+0])
		d.planeG[i] = float64(pix[i*4+1])
		d.planeB[i] = float64(pix[i*4+2])
	}

	diffusePlane(d.planeR, w, h, d.qr)
	diffusePlane(d.planeG, w, h, d.qg)
	diffusePlane(d.planeB, w, h, d.qb)

	// Write back with rounding and clamping; alpha forced opaque.
	for i, n := 0, w*h; i < n; i++ {
		pix[i*4+0] = uint8(clamp255(math.Round(d.planeR[i])))
		pix[i*4+1] = uint8(clamp255(math.Round(d.planeG[i])))
		pix[i*4+2] = uint8(clamp255(math.Round(d.planeB[i])))
		pix[i*4+3] = 255
	}
	return nil
}

// diffusePlane runs one Floyd-Steinberg pass over a single channel plane.
func diffusePlane(plane []float64, w, h int, q Quantizer) {
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			i := row + x
			old := plane[i]
			quant := q.Quantize(old)
			plane[i] = quant
			err := old - quant

			if x+1 < w {
				plane[i+1] += err * (7.0 / 16)
			}
			if y+1 < h {
				below := i + w
				if x > 0 {
					plane[below-1] += err * (3.0 / 16)
				}
				plane[below] += err * (5.0 / 16)
				if x+1 < w {
					plane[below+1] += err * (1.0 / 16)
				}
			}
		}
	}
}
