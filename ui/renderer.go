package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/sakurafall/tokei/pkg/background"
	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/sakurafall/tokei/util/log"
)

// backgroundView renders the image pipeline into a Fyne canvas. Two
// stacked image layers implement the crossfade: the incoming image
// fades in on the overlay, then becomes the base. A translucent shade
// on top supplies the dimming while a transition is in flight.
//
// All pipeline callbacks arrive on worker goroutines and are marshalled
// onto the Fyne render thread with fyne.Do.
type backgroundView struct {
	prefs fyne.Preferences

	base    *canvas.Image
	overlay *canvas.Image
	shade   *canvas.Rectangle
	content *fyne.Container

	// onShow fires on the render thread after each full image lands.
	onShow func(img image.Image, rec provider.ImageRecord)
}

func newBackgroundView(prefs fyne.Preferences) *backgroundView {
	base := canvas.NewImageFromImage(nil)
	base.FillMode = canvas.ImageFillStretch

	overlay := canvas.NewImageFromImage(nil)
	overlay.FillMode = canvas.ImageFillStretch
	overlay.Hide()

	shade := canvas.NewRectangle(color.NRGBA{})

	return &backgroundView{
		prefs:   prefs,
		base:    base,
		overlay: overlay,
		shade:   shade,
		content: container.NewStack(base, overlay, shade),
	}
}

// CanvasObject returns the view's root object for window composition.
func (v *backgroundView) CanvasObject() fyne.CanvasObject {
	return v.content
}

// SetTransitioning dims the view while a refresh is in flight.
func (v *backgroundView) SetTransitioning(active bool) {
	fyne.Do(func() {
		if active {
			v.shade.FillColor = color.NRGBA{A: 0x60}
		} else {
			v.shade.FillColor = color.NRGBA{}
		}
		v.shade.Refresh()
	})
}

// ShowPlaceholder swaps the low-res preview in immediately, no fade.
func (v *backgroundView) ShowPlaceholder(preview image.Image, tint color.NRGBA) {
	fyne.Do(func() {
		v.base.Image = preview
		v.base.Refresh()
		v.shade.FillColor = color.NRGBA{R: tint.R, G: tint.G, B: tint.B, A: 0x30}
		v.shade.Refresh()
	})
}

// ShowImage fits the full image to the current view and crossfades it
// over whatever is showing.
func (v *backgroundView) ShowImage(img image.Image, rec provider.ImageRecord) {
	fyne.Do(func() {
		fitted := v.fitToView(img)

		v.overlay.Image = fitted
		v.overlay.Translucency = 1
		v.overlay.Show()
		v.overlay.Refresh()

		fade := fyne.NewAnimation(crossfadeDuration, func(f float32) {
			v.overlay.Translucency = float64(1 - f)
			v.overlay.Refresh()
			if f >= 1 {
				v.base.Image = fitted
				v.base.Refresh()
				v.overlay.Hide()
			}
		})
		fade.Curve = fyne.AnimationEaseInOut
		fade.Start()

		if v.onShow != nil {
			v.onShow(img, rec)
		}
	})
}

// fitToView pre-renders img at the view's pixel size so letterboxing
// and content-aware cropping happen once, off the draw path.
func (v *backgroundView) fitToView(img image.Image) image.Image {
	size := v.content.Size()
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		w, h = defaultWindowWidth, defaultWindowHeight
	}

	fitted, err := background.FitImage(img, w, h, displayConfigFromPrefs(v.prefs))
	if err != nil {
		log.Printf("Image fit failed, rendering raw: %v", err)
		return img
	}
	return fitted
}
