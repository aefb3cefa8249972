package background

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// NeutralDark is the letterbox fill used when edge sampling cannot
// produce a color (empty image, degenerate bounds).
var NeutralDark = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1f, A: 0xff}

// SampleEdgeColor samples a fixed number of points along each of the
// four borders of img and returns the channel-wise average. The result
// is deterministic for a given image and sample count. samples <= 0
// uses the default.
func SampleEdgeColor(img image.Image, samples int) color.NRGBA {
	if img == nil {
		return NeutralDark
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return NeutralDark
	}
	if samples <= 0 {
		samples = defaultEdgeSamples
	}

	var rSum, gSum, bSum, n uint64
	add := func(x, y int) {
		r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
		rSum += uint64(r >> 8)
		gSum += uint64(g >> 8)
		bSum += uint64(b >> 8)
		n++
	}

	for i := 0; i < samples; i++ {
		x := i * (w - 1) / max(samples-1, 1)
		y := i * (h - 1) / max(samples-1, 1)
		add(x, 0)   // top
		add(x, h-1) // bottom
		add(0, y)   // left
		add(w-1, y) // right
	}

	return color.NRGBA{
		R: uint8(rSum / n),
		G: uint8(gSum / n),
		B: uint8(bSum / n),
		A: 0xff,
	}
}

// ForegroundFor returns a readable clock text color (near-white or
// near-black) for the given backdrop, judged by perceptual luminance.
func ForegroundFor(backdrop color.NRGBA) color.NRGBA {
	c, ok := colorful.MakeColor(backdrop)
	if !ok {
		return color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	}
	return color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
}
