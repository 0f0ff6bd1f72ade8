// Package config loads pipeline and animation settings from a TOML file and
// optionally watches the file for live parameter updates.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/dotscreen"
)

// PipelineConfig holds the pipeline-level settings.
type PipelineConfig struct {
	DotSize              float64 `toml:"dot_size"`
	FramesBetweenProcess int     `toml:"frames_between_process"`
	// Levels are the per-channel quantization level counts, R G B.
	Levels [3]int `toml:"levels"`
}

// ColorsConfig holds the two endpoint colors as hex strings.
type ColorsConfig struct {
	A      string `toml:"a"`
	B      string `toml:"b"`
	Invert bool   `toml:"invert"`
}

// StrengthConfig holds the effect strength multipliers.
type StrengthConfig struct {
	Noise  float64 `toml:"noise"`
	Motion float64 `toml:"motion"`
	Grain  float64 `toml:"grain"`
}

// SpeedConfig holds the six per-effect speed multipliers.
type SpeedConfig struct {
	Noise   float64 `toml:"noise"`
	Wobble  float64 `toml:"wobble"`
	Tear    float64 `toml:"tear"`
	Snow    float64 `toml:"snow"`
	Grain   float64 `toml:"grain"`
	Flicker float64 `toml:"flicker"`
}

// Config is the full TOML schema.
type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Colors   ColorsConfig   `toml:"colors"`
	Strength StrengthConfig `toml:"strength"`
	Speed    SpeedConfig    `toml:"speed"`
}

// Default returns a config mirroring the library defaults.
func Default() *Config {
	p := dotscreen.DefaultParams()
	return &Config{
		Pipeline: PipelineConfig{
			DotSize:              p.DotSize,
			FramesBetweenProcess: 1,
			Levels:               [3]int(dotscreen.DefaultLevels),
		},
		Colors: ColorsConfig{A: "#000000", B: "#FFFFFF"},
		Strength: StrengthConfig{
			Noise:  p.NoiseStrength,
			Motion: p.MotionStrength,
			Grain:  p.GrainStrength,
		},
		Speed: SpeedConfig{
			Noise:   p.NoiseSpeed,
			Wobble:  p.WobbleSpeed,
			Tear:    p.TearSpeed,
			Snow:    p.SnowSpeed,
			Grain:   p.GrainSpeed,
			Flicker: p.FlickerSpeed,
		},
	}
}

// Load reads a TOML config from path. A missing file yields the defaults;
// present fields override them, absent fields keep them.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs the core validators over the loaded values.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if err := c.Levels().Validate(); err != nil {
		return err
	}
	if c.Pipeline.FramesBetweenProcess < 1 {
		return fmt.Errorf("config: frames_between_process must be >= 1, got %d",
			c.Pipeline.FramesBetweenProcess)
	}
	return nil
}

// Levels returns the per-channel level counts.
func (c *Config) Levels() dotscreen.Levels {
	return dotscreen.Levels(c.Pipeline.Levels)
}

// Params converts the config into an animation parameter record, parsing
// the hex colors and validating the result.
func (c *Config) Params() (dotscreen.Params, error) {
	colorA, err := dotscreen.ParseHex(c.Colors.A)
	if err != nil {
		return dotscreen.Params{}, fmt.Errorf("config: colors.a: %w", err)
	}
	colorB, err := dotscreen.ParseHex(c.Colors.B)
	if err != nil {
		return dotscreen.Params{}, fmt.Errorf("config: colors.b: %w", err)
	}

	p := dotscreen.Params{
		DotSize:        c.Pipeline.DotSize,
		ColorA:         colorA,
		ColorB:         colorB,
		Invert:         c.Colors.Invert,
		NoiseStrength:  c.Strength.Noise,
		MotionStrength: c.Strength.Motion,
		GrainStrength:  c.Strength.Grain,
		NoiseSpeed:     c.Speed.Noise,
		WobbleSpeed:    c.Speed.Wobble,
		TearSpeed:      c.Speed.Tear,
		SnowSpeed:      c.Speed.Snow,
		GrainSpeed:     c.Speed.Grain,
		FlickerSpeed:   c.Speed.Flicker,
	}
	if err := p.Validate(); err != nil {
		return dotscreen.Params{}, err
	}
	return p, nil
}

// Apply pushes the config onto a running pipeline: parameters first, then
// the processing throttle.
func (c *Config) Apply(p *dotscreen.Pipeline) error {
	params, err := c.Params()
	if err != nil {
		return err
	}
	if err := p.SetParams(params); err != nil {
		return err
	}
	return p.SetFramesBetweenProcess(c.Pipeline.FramesBetweenProcess)
}
