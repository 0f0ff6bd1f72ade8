package dotscreen

// Frame carries the per-tick inputs the image generator reads for every
// pixel: the target resolution, the elapsed time, and the animation
// parameters. The Params pointer is valid only for the duration of the call.
type Frame struct {
	Width  int
	Height int
	Time   float64
	Params *Params
}

// Generator produces one color per pixel coordinate of the offscreen target.
// It is a pure function of (x, y, frame): implementations must not retain
// state between calls, so a stage is free to evaluate pixels in any order.
type Generator interface {
	Pixel(x, y int, f Frame) RGB
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(x, y int, f Frame) RGB

// Pixel calls fn(x, y, f).
func (fn GeneratorFunc) Pixel(x, y int, f Frame) RGB {
	return fn(x, y, f)
}

// Stage is the offscreen render stage: it owns a low-resolution render
// target, fills it from the image generator once per tick, and exposes the
// rendered pixels for readback.
//
// Implementations: SoftwareStage (CPU, this package) and the wgpu-backed
// stage in backend/native.
type Stage interface {
	// Size returns the current target dimensions.
	Size() (w, h int)

	// Resize replaces the render target with one of the new dimensions.
	// Implementations must allocate the replacement before releasing the
	// old target, so a failed resize leaves the previous target usable.
	Resize(w, h int) error

	// Render fills the target from the generator for elapsed time t.
	Render(t float64, p *Params) error

	// Readback copies the rendered RGBA pixels into dst, which must be
	// exactly w*h*4 bytes. The call blocks until the pixels are available;
	// for GPU stages this drains the pipeline and is the dominant latency
	// cost of a processed tick. A failed readback must leave dst untouched.
	Readback(dst []byte) error

	// Release frees the target and any stage-held resources.
	// The stage must not be used afterwards. Release is idempotent.
	Release()
}
