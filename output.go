package dotscreen

import (
	"image"

	"golang.org/x/image/draw"
)

// OutputSurface holds the processed, quantized frame. Its pixel buffer keeps
// the low resolution of the offscreen target; the on-screen size is separate
// presentation metadata, so magnification is done by the presenter with
// nearest-neighbor sampling rather than by resampling the buffer.
type OutputSurface struct {
	pixmap   *Pixmap
	displayW int
	displayH int
}

// NewOutputSurface creates an output surface with a w x h pixel buffer
// presented at displayW x displayH.
func NewOutputSurface(w, h, displayW, displayH int) *OutputSurface {
	return &OutputSurface{
		pixmap:   NewPixmap(w, h),
		displayW: displayW,
		displayH: displayH,
	}
}

// Pixmap returns the low-resolution pixel buffer.
func (o *OutputSurface) Pixmap() *Pixmap {
	return o.pixmap
}

// Size returns the pixel buffer dimensions.
func (o *OutputSurface) Size() (w, h int) {
	return o.pixmap.Width(), o.pixmap.Height()
}

// DisplaySize returns the presentation dimensions.
func (o *OutputSurface) DisplaySize() (w, h int) {
	return o.displayW, o.displayH
}

// SetDisplaySize updates the presentation dimensions without touching the
// pixel buffer.
func (o *OutputSurface) SetDisplaySize(w, h int) {
	o.displayW = w
	o.displayH = h
}

// resizeBuffer replaces the pixel buffer. Contents are discarded; the next
// processed tick rewrites the whole frame.
func (o *OutputSurface) resizeBuffer(w, h int) {
	o.pixmap = NewPixmap(w, h)
}

// Magnify renders the buffer into dst at the surface's display size using
// nearest-neighbor sampling, preserving hard block edges. If dst is nil or
// has the wrong dimensions a new image is allocated. The (possibly new)
// destination is returned.
func (o *OutputSurface) Magnify(dst *image.RGBA) *image.RGBA {
	bounds := image.Rect(0, 0, o.displayW, o.displayH)
	if dst == nil || dst.Bounds() != bounds {
		dst = image.NewRGBA(bounds)
	}
	draw.NearestNeighbor.Scale(dst, bounds, o.pixmap, o.pixmap.Bounds(), draw.Src, nil)
	return dst
}
