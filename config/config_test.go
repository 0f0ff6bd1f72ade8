package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/dotscreen"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dotscreen.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestDefault verifies the defaults mirror the library defaults.
func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate(): %v", err)
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	want := dotscreen.DefaultParams()
	if p != want {
		t.Errorf("Params(): got %+v, want %+v", p, want)
	}
	if cfg.Levels() != dotscreen.DefaultLevels {
		t.Errorf("Levels(): got %v, want %v", cfg.Levels(), dotscreen.DefaultLevels)
	}
}

// TestLoad_MissingFile verifies a missing file yields the defaults.
func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pipeline.DotSize != 4 {
		t.Errorf("dot_size: got %v, want default 4", cfg.Pipeline.DotSize)
	}
}

// TestLoad verifies present fields override defaults and absent fields keep them.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[pipeline]
dot_size = 6.0
levels = [4, 4, 2]

[colors]
a = "#102030"
invert = true

[speed]
tear = 0.3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Pipeline.DotSize != 6 {
		t.Errorf("dot_size: got %v, want 6", cfg.Pipeline.DotSize)
	}
	if cfg.Levels() != (dotscreen.Levels{4, 4, 2}) {
		t.Errorf("levels: got %v", cfg.Levels())
	}
	if !cfg.Colors.Invert {
		t.Error("invert: got false, want true")
	}
	// Absent fields keep their defaults.
	if cfg.Colors.B != "#FFFFFF" {
		t.Errorf("colors.b: got %q, want default", cfg.Colors.B)
	}
	if cfg.Pipeline.FramesBetweenProcess != 1 {
		t.Errorf("frames_between_process: got %d, want default 1", cfg.Pipeline.FramesBetweenProcess)
	}

	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.TearSpeed != 0.3 {
		t.Errorf("TearSpeed: got %v, want 0.3", p.TearSpeed)
	}
	wantA, _ := dotscreen.ParseHex("#102030")
	if p.ColorA != wantA {
		t.Errorf("ColorA: got %+v, want %+v", p.ColorA, wantA)
	}
}

// TestLoad_Invalid verifies the core validators reject bad values.
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"dot size below 1", "[pipeline]\ndot_size = 0.5\n"},
		{"levels below 2", "[pipeline]\nlevels = [1, 8, 4]\n"},
		{"throttle below 1", "[pipeline]\nframes_between_process = 0\n"},
		{"bad hex color", `[colors]` + "\na = \"#xyzxyz\"\n"},
		{"malformed toml", "[pipeline\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// TestApply verifies a config lands on a running pipeline.
func TestApply(t *testing.T) {
	gen := dotscreen.GeneratorFunc(func(x, y int, f dotscreen.Frame) dotscreen.RGB {
		return dotscreen.Black
	})
	p, err := dotscreen.New(640, 480, gen)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	cfg := Default()
	cfg.Pipeline.DotSize = 8
	cfg.Strength.Noise = 0.5
	if err := cfg.Apply(p); err != nil {
		t.Fatal(err)
	}

	got := p.Params()
	if got.DotSize != 8 {
		t.Errorf("DotSize: got %v, want 8", got.DotSize)
	}
	if got.NoiseStrength != 0.5 {
		t.Errorf("NoiseStrength: got %v, want 0.5", got.NoiseStrength)
	}
	if w, h := p.Size(); w != 80 || h != 60 {
		t.Errorf("Size() after dot size change: got %dx%d, want 80x60", w, h)
	}
}
