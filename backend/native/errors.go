package native

import "errors"

var (
	// ErrNilDevice is returned when a stage is created without a device or queue.
	ErrNilDevice = errors.New("native: device and queue must not be nil")

	// ErrStageReleased is returned when a released stage is used.
	ErrStageReleased = errors.New("native: stage has been released")

	// ErrReadbackFailed wraps transient GPU readback failures. The pipeline
	// treats it as recoverable and skips the tick.
	ErrReadbackFailed = errors.New("native: texture readback failed")

	// ErrBufferSize is returned when a readback destination does not match
	// the target dimensions.
	ErrBufferSize = errors.New("native: readback buffer size mismatch")
)
