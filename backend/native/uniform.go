package native

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/dotscreen"
)

// uniformSize is the byte size of the shader's Uniforms struct:
// resolution + time + pad (16) plus five vec4s (80).
const uniformSize = 96

// packUniforms serializes the frame state into the std140 layout the shader
// expects. Little-endian float32, 16-byte aligned fields.
func packUniforms(w, h uint32, t float64, p *dotscreen.Params) []byte {
	buf := make([]byte, uniformSize)
	off := 0
	put := func(v float64) {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(v)))
		off += 4
	}

	put(float64(w)) // resolution
	put(float64(h))
	put(t) // time
	put(0) // pad

	ar, ag, ab := p.ColorA.R, p.ColorA.G, p.ColorA.B
	br, bg, bb := p.ColorB.R, p.ColorB.G, p.ColorB.B
	put(ar)
	put(ag)
	put(ab)
	put(1)
	put(br)
	put(bg)
	put(bb)
	put(1)

	invert := 0.0
	if p.Invert {
		invert = 1
	}
	put(p.NoiseStrength)
	put(p.MotionStrength)
	put(p.GrainStrength)
	put(invert)

	put(p.NoiseSpeed)
	put(p.WobbleSpeed)
	put(p.TearSpeed)
	put(p.SnowSpeed)

	put(p.GrainSpeed)
	put(p.FlickerSpeed)
	put(0)
	put(0)

	return buf
}
