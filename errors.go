package dotscreen

import "errors"

// Pipeline and configuration errors.
var (
	// ErrInvalidLevels is returned when a per-channel quantization level
	// count is below 2. Levels are validated at setup, never per pixel.
	ErrInvalidLevels = errors.New("dotscreen: quantization levels must be >= 2")

	// ErrInvalidDotSize is returned for a dot size below 1.
	ErrInvalidDotSize = errors.New("dotscreen: dot size must be >= 1")

	// ErrInvalidInterval is returned for a frames-between-process count below 1.
	ErrInvalidInterval = errors.New("dotscreen: frames between process must be >= 1")

	// ErrNilGenerator is returned when a pipeline or stage is created
	// without an image generator.
	ErrNilGenerator = errors.New("dotscreen: generator is nil")

	// ErrPipelineClosed is returned when stepping or resizing a pipeline
	// after Close.
	ErrPipelineClosed = errors.New("dotscreen: pipeline is closed")

	// ErrStageReleased is returned when a render stage is used after Release.
	ErrStageReleased = errors.New("dotscreen: render stage has been released")

	// ErrBufferSize is returned when a pixel buffer does not match the
	// dimensions it is used with.
	ErrBufferSize = errors.New("dotscreen: pixel buffer size mismatch")
)
