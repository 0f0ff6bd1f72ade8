package dotscreen

import (
	"fmt"
	"image/color"
)

// RGB represents an opaque color with red, green, and blue components.
// Each component is in the range [0, 1].
type RGB struct {
	R, G, B float64
}

// NewRGB creates a color from RGB components.
func NewRGB(r, g, b float64) RGB {
	return RGB{R: r, G: g, B: b}
}

// Color converts RGB to the standard color.Color interface.
func (c RGB) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: 255,
	}
}

// FromColor converts a standard color.Color to RGB, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with or without a leading '#'.
// Malformed strings yield black; use ParseHex when errors matter.
func Hex(hex string) RGB {
	c, _ := ParseHex(hex)
	return c
}

// ParseHex parses a hex color string, reporting malformed input.
func ParseHex(hex string) (RGB, error) {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	var err error

	switch len(hex) {
	case 3: // RGB
		err = firstErr(
			parseHex(hex[0:1], &r),
			parseHex(hex[1:2], &g),
			parseHex(hex[2:3], &b),
		)
		r, g, b = r*17, g*17, b*17
	case 6: // RRGGBB
		err = firstErr(
			parseHex(hex[0:2], &r),
			parseHex(hex[2:4], &g),
			parseHex(hex[4:6], &b),
		)
	default:
		return RGB{}, fmt.Errorf("dotscreen: invalid hex color %q", hex)
	}
	if err != nil {
		return RGB{}, fmt.Errorf("dotscreen: invalid hex color %q", hex)
	}

	return RGB{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, nil
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) error {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return fmt.Errorf("dotscreen: invalid hex digit %q", c)
		}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Lerp performs linear interpolation between two colors.
func (c RGB) Lerp(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Bytes returns the color as 8-bit channel values, clamped to [0, 255].
func (c RGB) Bytes() (r, g, b uint8) {
	return uint8(clamp255(c.R * 255)), uint8(clamp255(c.G * 255)), uint8(clamp255(c.B * 255))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black = NewRGB(0, 0, 0)
	White = NewRGB(1, 1, 1)
)
