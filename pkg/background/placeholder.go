package background

import (
	"fmt"
	"image"
	"image/color"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/buckket/go-blurhash"
	"github.com/nfnt/resize"
	"github.com/sakurafall/tokei/util/log"
)

// Placeholder is the compact perceptual preview shown briefly before
// the full image swaps in.
type Placeholder struct {
	Hash    string      // reversible blurhash string
	Preview image.Image // low-res decode of Hash
	Tint    color.NRGBA // dominant backdrop color of the preview
}

// MakePlaceholder downscales src to at most placeholderMaxDim on its
// longest side, encodes a blurhash, and decodes it back into a small
// displayable preview. Generation is best-effort: callers are expected
// to skip the placeholder step entirely on error.
func MakePlaceholder(src image.Image) (*Placeholder, error) {
	if src == nil {
		return nil, fmt.Errorf("placeholder: nil source image")
	}
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("placeholder: empty source image")
	}

	small := resize.Thumbnail(placeholderMaxDim, placeholderMaxDim, src, resize.Lanczos3)

	hash, err := blurhash.Encode(blurhashXComp, blurhashYComp, small)
	if err != nil {
		return nil, fmt.Errorf("placeholder: encoding blurhash: %w", err)
	}

	sb := small.Bounds()
	preview, err := blurhash.Decode(hash, sb.Dx(), sb.Dy(), 1)
	if err != nil {
		return nil, fmt.Errorf("placeholder: decoding blurhash: %w", err)
	}

	return &Placeholder{
		Hash:    hash,
		Preview: preview,
		Tint:    dominantColor(small),
	}, nil
}

// dominantColor runs a single-cluster k-means over the downscaled image
// to pick a backdrop tint. Failures fall back to the neutral dark used
// elsewhere; the tint is cosmetic.
func dominantColor(img image.Image) color.NRGBA {
	items, err := prominentcolor.Kmeans(img)
	if err != nil || len(items) == 0 {
		log.Debugf("Dominant color extraction failed, using neutral: %v", err)
		return NeutralDark
	}
	c := items[0].Color
	return color.NRGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}
