package background

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
)

// resizer implements the smartcrop.Resizer interface on top of imaging.
type resizer struct {
	resampler imaging.ResampleFilter
}

// Resize satisfies smartcrop.Resizer.
func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

// FitImage renders src into a width x height view according to the
// display configuration: FitCover crops to fill using content-aware
// crop selection, FitContain letterboxes and fills the bars per the
// configured letterbox mode.
func FitImage(src image.Image, width, height int, cfg DisplayConfig) (image.Image, error) {
	if src == nil {
		return nil, fmt.Errorf("fit: nil source image")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("fit: invalid target %dx%d", width, height)
	}

	switch cfg.Fit {
	case FitContain:
		return containImage(src, width, height, cfg), nil
	default:
		return coverImage(src, width, height)
	}
}

// coverImage fills the whole view, choosing the crop window with
// smartcrop so the subject survives aggressive aspect changes.
func coverImage(src image.Image, width, height int) (image.Image, error) {
	r := &resizer{resampler: imaging.Lanczos}
	analyzer := smartcrop.NewAnalyzer(r)

	crop, err := analyzer.FindBestCrop(src, width, height)
	if err != nil {
		// Content analysis is an enhancement; center-crop still covers.
		return imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos), nil
	}

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	si, ok := src.(subImager)
	if !ok {
		return imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos), nil
	}
	return imaging.Resize(si.SubImage(crop), width, height, imaging.Lanczos), nil
}

// containImage letterboxes src inside the view and fills the bars.
func containImage(src image.Image, width, height int, cfg DisplayConfig) image.Image {
	fitted := imaging.Fit(src, width, height, imaging.Lanczos)

	var canvas *image.NRGBA
	switch cfg.Letterbox {
	case LetterboxBlur:
		// A stretched, heavily blurred copy of the image itself.
		fill := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)
		canvas = imaging.Blur(fill, 18)
	case LetterboxEdgeColor:
		canvas = imaging.New(width, height, SampleEdgeColor(src, defaultEdgeSamples))
	case LetterboxCustom:
		canvas = imaging.New(width, height, cfg.CustomColor)
	default: // LetterboxSolid
		canvas = imaging.New(width, height, color.NRGBA{A: 0xff})
	}

	return imaging.PasteCenter(canvas, fitted)
}
