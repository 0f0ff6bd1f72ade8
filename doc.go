// Package dotscreen renders a procedurally generated, animated image at low
// resolution, quantizes it to a limited per-channel palette with
// error-diffusion dithering, and presents the result as large, crisp pixel
// blocks filling an arbitrary-sized display surface in real time.
//
// # Overview
//
// The package is built around a per-frame pipeline:
//
//	time -> Generator (per pixel) -> offscreen target -> readback ->
//	Floyd-Steinberg diffusion -> output buffer -> nearest-neighbor display
//
// A Pipeline owns the offscreen render stage, the raw readback buffer, the
// diffusion working planes, and the output surface. All four always share the
// same low-resolution dimensions; resizing replaces them as one atomic unit.
//
// # Quick Start
//
//	gen := static.New()
//	p, err := dotscreen.New(1920, 1080, gen,
//	    dotscreen.WithDotSize(4),
//	    dotscreen.WithLevels(8, 8, 4),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Close()
//
//	for i := 0; i < 60; i++ {
//	    if err := p.Step(1.0 / 60.0); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	_ = p.Output().Pixmap().SavePNG("frame.png")
//
// # Render Stages
//
// The default stage evaluates the Generator on the CPU (SoftwareStage). The
// backend/native package provides a GPU stage on gogpu/wgpu that renders a
// fullscreen pass into an offscreen texture and reads it back through a
// staging buffer. Both implement the Stage interface and can be swapped in
// with WithStage.
//
// # Presentation
//
// The output buffer keeps its low resolution; the on-screen size is
// presentation metadata. OutputSurface.Magnify scales with nearest-neighbor
// sampling so the pixel blocks stay hard-edged. integration/ebitenview wires
// the pipeline to a window.
//
// # Concurrency
//
// A pipeline is driven by one tick at a time. Step, Resize, and Close
// serialize on an internal mutex, so resize events arriving from another
// goroutine can never observe a half-updated buffer set.
package dotscreen

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
