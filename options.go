package dotscreen

// Option configures a Pipeline during creation.
// Use functional options to customize pipeline behavior.
//
// Example:
//
//	// Default software rendering
//	p, err := dotscreen.New(1920, 1080, gen)
//
//	// Custom GPU stage (dependency injection)
//	p, err := dotscreen.New(1920, 1080, gen, dotscreen.WithStage(gpuStage))
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	stage                Stage
	levels               Levels
	params               Params
	framesBetweenProcess int
}

// defaultOptions returns the default pipeline options.
func defaultOptions() pipelineOptions {
	return pipelineOptions{
		stage:                nil, // Will be set to SoftwareStage if nil
		levels:               DefaultLevels,
		params:               DefaultParams(),
		framesBetweenProcess: 1,
	}
}

// WithStage sets a custom render stage for the pipeline.
// Use this for dependency injection of GPU or custom stages; the stage
// must already be sized for the pipeline's target dimensions (the pipeline
// resizes it on creation regardless).
//
// For GPU-accelerated rendering see backend/native, which renders the
// generator on gogpu/wgpu.
func WithStage(s Stage) Option {
	return func(o *pipelineOptions) {
		o.stage = s
	}
}

// WithLevels sets the per-channel quantization level counts.
// Each count must be >= 2; validation happens in New.
func WithLevels(r, g, b int) Option {
	return func(o *pipelineOptions) {
		o.levels = Levels{r, g, b}
	}
}

// WithDotSize sets the block scale: display pixels per low-resolution pixel.
func WithDotSize(size float64) Option {
	return func(o *pipelineOptions) {
		o.params.DotSize = size
	}
}

// WithFramesBetweenProcess sets the processing throttle. A value of n means
// readback, diffusion, and compositing run on the first tick and every n-th
// tick after it; rendering still happens every tick. The default of 1
// processes every tick.
func WithFramesBetweenProcess(n int) Option {
	return func(o *pipelineOptions) {
		o.framesBetweenProcess = n
	}
}

// WithParams replaces the full animation parameter record. The DotSize field
// of the record wins over any earlier WithDotSize.
func WithParams(p Params) Option {
	return func(o *pipelineOptions) {
		o.params = p
	}
}
