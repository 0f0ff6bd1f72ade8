// Package native is the wgpu-backed offscreen render stage. It renders the
// static effect with a fullscreen-triangle pass into an RGBA8 texture and
// serves Readback through a staging buffer copy.
//
// The stage takes an opened hal.Device and hal.Queue; it does not own the
// device. Any wgpu HAL backend works, including hal/noop for tests.
//
//	stage, err := native.NewStage(device, queue, 480, 270)
//	if err != nil { ... }
//	p, err := dotscreen.New(1920, 1080, nil, dotscreen.WithStage(stage))
//
// Unlike dotscreen.SoftwareStage the effect here is a WGSL port of the
// static generator compiled through naga, not a per-pixel Go callback: the
// generator output matches in character, not bit for bit.
package native
