// Package ebitenview presents a dotscreen pipeline in an ebiten window.
//
// The view drives one pipeline Step per Update (one tick per display
// refresh), uploads the low-resolution output buffer to a GPU image, and
// draws it scaled to the window with nearest-neighbor filtering so the
// blocks stay hard-edged. Window resizes are forwarded to the pipeline's
// resize path.
package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/dotscreen"
)

// View is an ebiten.Game wrapping a pipeline.
type View struct {
	pipeline *dotscreen.Pipeline

	frame  *ebiten.Image
	frameW int
	frameH int

	lastW int
	lastH int
}

// New wraps a pipeline for windowed presentation. The caller keeps
// ownership of the pipeline and closes it after the window exits.
func New(p *dotscreen.Pipeline) *View {
	return &View{pipeline: p}
}

// Update advances the pipeline by one tick.
func (v *View) Update() error {
	return v.pipeline.Step(1.0 / float64(ebiten.TPS()))
}

// Draw uploads the current output buffer and blits it magnified to the
// screen. The upload image is recreated only when the target size changes.
// The buffer is read under the pipeline lock; a config reload changing the
// dot size on another goroutine cannot swap it mid-upload.
func (v *View) Draw(screen *ebiten.Image) {
	v.pipeline.Present(func(pm *dotscreen.Pixmap) {
		tw, th := pm.Width(), pm.Height()
		if v.frame == nil || v.frameW != tw || v.frameH != th {
			if v.frame != nil {
				v.frame.Deallocate()
			}
			v.frame = ebiten.NewImage(tw, th)
			v.frameW = tw
			v.frameH = th
		}
		v.frame.WritePixels(pm.Data())
	})
	tw, th := v.frameW, v.frameH

	sw := screen.Bounds().Dx()
	sh := screen.Bounds().Dy()
	sx, sy := scaleFor(tw, th, sw, sh)

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	op.GeoM.Scale(sx, sy)
	screen.DrawImage(v.frame, op)
}

// Layout reports the window size as the logical screen size and forwards
// size changes to the pipeline.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != v.lastW || outsideHeight != v.lastH) {
		v.lastW = outsideWidth
		v.lastH = outsideHeight
		if err := v.pipeline.Resize(outsideWidth, outsideHeight); err != nil {
			dotscreen.Logger().Warn("ebitenview: resize failed", "error", err)
		}
	}
	return outsideWidth, outsideHeight
}

// scaleFor returns the magnification factors mapping a tw x th buffer onto
// a sw x sh screen.
func scaleFor(tw, th, sw, sh int) (sx, sy float64) {
	if tw <= 0 || th <= 0 {
		return 1, 1
	}
	return float64(sw) / float64(tw), float64(sh) / float64(th)
}

// Run opens a resizable window at the pipeline's display size and runs the
// view until the window closes.
func Run(p *dotscreen.Pipeline, title string) error {
	w, h := p.DisplaySize()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(New(p))
}

var _ ebiten.Game = (*View)(nil)
