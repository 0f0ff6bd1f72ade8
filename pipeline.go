package dotscreen

import (
	"fmt"
	"sync"
)

// Pipeline drives the render, readback, dither, and composite loop.
//
// Each Step renders one animation frame at the low target resolution.
// On processing ticks (controlled by WithFramesBetweenProcess) the rendered
// frame is read back, error-diffused against the configured palette, and
// written into the output surface. The output surface keeps the last
// processed frame between processing ticks, so presentation always has a
// complete image.
//
// Step, Resize, and Close are safe for concurrent use; a single mutex
// serializes them, so a resize never interleaves with a frame in flight.
type Pipeline struct {
	mu sync.Mutex

	stage    Stage
	diffuser *Diffuser
	out      *OutputSurface

	// raw receives stage readback, target width * height * 4 bytes.
	raw []byte

	params               Params
	levels               Levels
	framesBetweenProcess int

	sinceProcess int
	time         float64

	displayW int
	displayH int

	closed bool
}

// New creates a Pipeline presenting at displayW by displayH pixels,
// rendering gen at the reduced target resolution derived from the dot size.
//
// With no options the pipeline uses a CPU SoftwareStage, 8/8/4 quantization
// levels, and default animation parameters. gen must not be nil unless a
// custom stage is injected with WithStage.
func New(displayW, displayH int, gen Generator, opts ...Option) (*Pipeline, error) {
	if displayW <= 0 || displayH <= 0 {
		return nil, fmt.Errorf("dotscreen: invalid display size %dx%d", displayW, displayH)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.params.Validate(); err != nil {
		return nil, err
	}
	if err := o.levels.Validate(); err != nil {
		return nil, err
	}
	if o.framesBetweenProcess < 1 {
		return nil, fmt.Errorf("%w: frames between process %d", ErrInvalidInterval, o.framesBetweenProcess)
	}

	tw, th := TargetSize(displayW, displayH, o.params.DotSize)

	stage := o.stage
	if stage == nil {
		var err error
		stage, err = NewSoftwareStage(gen, tw, th)
		if err != nil {
			return nil, err
		}
	} else if err := stage.Resize(tw, th); err != nil {
		return nil, fmt.Errorf("dotscreen: sizing stage: %w", err)
	}

	diffuser, err := NewDiffuser(o.levels)
	if err != nil {
		stage.Release()
		return nil, err
	}
	diffuser.Resize(tw, th)

	p := &Pipeline{
		stage:                stage,
		diffuser:             diffuser,
		out:                  NewOutputSurface(tw, th, displayW, displayH),
		raw:                  make([]byte, tw*th*4),
		params:               o.params,
		levels:               o.levels,
		framesBetweenProcess: o.framesBetweenProcess,
		sinceProcess:         o.framesBetweenProcess - 1,
		displayW:             displayW,
		displayH:             displayH,
	}

	Logger().Debug("dotscreen: pipeline created",
		"display", fmt.Sprintf("%dx%d", displayW, displayH),
		"target", fmt.Sprintf("%dx%d", tw, th),
		"dotSize", o.params.DotSize)

	return p, nil
}

// Step advances the animation by dt seconds and renders one frame.
//
// Rendering happens on every call. Processing (readback, diffusion,
// composite) runs only when the throttle counter fires. A failed readback
// is logged and skipped; the pipeline stays live and the output surface
// keeps its previous contents.
func (p *Pipeline) Step(dt float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPipelineClosed
	}

	p.time += dt

	if err := p.stage.Render(p.time, &p.params); err != nil {
		return fmt.Errorf("dotscreen: render: %w", err)
	}

	p.sinceProcess++
	if p.sinceProcess < p.framesBetweenProcess {
		return nil
	}
	p.sinceProcess = 0

	if err := p.stage.Readback(p.raw); err != nil {
		// Transient readback failures (device busy, lost frame) must not
		// kill the loop. Skip processing and present the previous frame.
		Logger().Warn("dotscreen: readback failed, skipping frame", "error", err)
		return nil
	}

	tw, th := p.out.Size()
	if err := p.diffuser.Diffuse(p.raw, tw, th); err != nil {
		return fmt.Errorf("dotscreen: diffuse: %w", err)
	}

	if err := p.out.Pixmap().CopyFrom(p.raw); err != nil {
		return fmt.Errorf("dotscreen: composite: %w", err)
	}

	return nil
}

// Resize adapts the pipeline to a new display size. The new target
// resolution is derived from the current dot size. All per-frame resources
// are reallocated before old ones are released, so a failure partway leaves
// the pipeline on its previous configuration.
func (p *Pipeline) Resize(displayW, displayH int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPipelineClosed
	}
	if displayW <= 0 || displayH <= 0 {
		return fmt.Errorf("dotscreen: invalid display size %dx%d", displayW, displayH)
	}

	return p.reconfigure(displayW, displayH, p.params.DotSize)
}

// SetDotSize changes the block scale and resizes the target resolution to
// match. Values below 1 are rejected.
func (p *Pipeline) SetDotSize(size float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPipelineClosed
	}
	if size < 1 {
		return fmt.Errorf("%w: %v", ErrInvalidDotSize, size)
	}

	if err := p.reconfigure(p.displayW, p.displayH, size); err != nil {
		return err
	}
	p.params.DotSize = size
	return nil
}

// reconfigure rebuilds target-sized resources for the given display size
// and dot size. Caller holds p.mu.
func (p *Pipeline) reconfigure(displayW, displayH int, dotSize float64) error {
	tw, th := TargetSize(displayW, displayH, dotSize)

	oldW, oldH := p.out.Size()
	if displayW == p.displayW && displayH == p.displayH && tw == oldW && th == oldH {
		return nil
	}

	if err := p.stage.Resize(tw, th); err != nil {
		return fmt.Errorf("dotscreen: resizing stage: %w", err)
	}
	p.diffuser.Resize(tw, th)
	p.out.resizeBuffer(tw, th)
	p.out.SetDisplaySize(displayW, displayH)
	p.raw = make([]byte, tw*th*4)

	p.displayW = displayW
	p.displayH = displayH
	// Prime the throttle so the first tick after a resize repaints the
	// fresh buffer instead of presenting blank frames.
	p.sinceProcess = p.framesBetweenProcess - 1

	Logger().Debug("dotscreen: pipeline resized",
		"display", fmt.Sprintf("%dx%d", displayW, displayH),
		"target", fmt.Sprintf("%dx%d", tw, th))

	return nil
}

// SetParams replaces the animation parameters without resizing. A change to
// the DotSize field takes effect through SetDotSize semantics.
func (p *Pipeline) SetParams(params Params) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPipelineClosed
	}
	if err := params.Validate(); err != nil {
		return err
	}

	if params.DotSize != p.params.DotSize {
		if err := p.reconfigure(p.displayW, p.displayH, params.DotSize); err != nil {
			return err
		}
	}
	p.params = params
	return nil
}

// Params returns a copy of the current animation parameters.
func (p *Pipeline) Params() Params {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.params
}

// SetFramesBetweenProcess changes the processing throttle. n must be >= 1.
func (p *Pipeline) SetFramesBetweenProcess(n int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPipelineClosed
	}
	if n < 1 {
		return fmt.Errorf("%w: frames between process %d", ErrInvalidInterval, n)
	}
	p.framesBetweenProcess = n
	p.sinceProcess = n - 1
	return nil
}

// Output returns the surface holding the last processed frame. The surface
// stays valid across Resize; its buffer is swapped in place. Reading the
// buffer through this accessor is not synchronized against Resize or dot
// size changes; presenters that run alongside reconfiguration use Present.
func (p *Pipeline) Output() *OutputSurface {
	return p.out
}

// Present calls fn with the output pixel buffer while holding the pipeline
// lock, so a concurrent Resize or dot size change cannot swap the buffer
// out from under the read. fn must not call back into the pipeline.
func (p *Pipeline) Present(fn func(*Pixmap)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.out.Pixmap())
}

// Size returns the current low target resolution.
func (p *Pipeline) Size() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out.Size()
}

// DisplaySize returns the current display resolution.
func (p *Pipeline) DisplaySize() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayW, p.displayH
}

// Time returns the accumulated animation time in seconds.
func (p *Pipeline) Time() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.time
}

// Close releases the render stage. Close is idempotent; any Step or Resize
// after Close returns ErrPipelineClosed.
func (p *Pipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.stage.Release()
}
