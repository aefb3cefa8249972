package background

import "image/color"

// Source identifies which provider adapter to use for a fetch.
type Source string

// The closed set of known providers, plus the two meta-sources.
const (
	SourceNekosBest Source = "nekos_best"
	SourceWaifuPics Source = "waifu_pics"
	SourceWaifuIm   Source = "waifu_im"
	SourceNekosMoe  Source = "nekos_moe"
	SourceNekosia   Source = "nekosia"

	// SourceRandom picks uniformly among the enabled real providers at
	// call time. SourceFallback skips the network and synthesizes a
	// placeholder record.
	SourceRandom   Source = "random"
	SourceFallback Source = "fallback"
)

// DefaultSource is the provider retried once when another provider fails.
const DefaultSource = SourceNekosBest

// IsMeta reports whether s is one of the meta-sources rather than a
// real provider tag.
func (s Source) IsMeta() bool {
	return s == SourceRandom || s == SourceFallback
}

// FetchConfig carries the per-request parameters for one image fetch.
// It is constructed fresh per fetch from current settings and never
// mutated by the core.
type FetchConfig struct {
	Source    Source
	AllowNSFW bool
	// Enabled is the set of real providers SourceRandom draws from.
	// Empty means every registered provider.
	Enabled []Source
}

// FitMode controls how the image fills the view.
type FitMode string

// Display fit modes.
const (
	FitCover   FitMode = "cover"
	FitContain FitMode = "contain"
)

// LetterboxMode controls how the bars around a contained image are filled.
type LetterboxMode string

// Letterbox fill modes.
const (
	LetterboxBlur      LetterboxMode = "blur"
	LetterboxEdgeColor LetterboxMode = "edge-color"
	LetterboxCustom    LetterboxMode = "custom"
	LetterboxSolid     LetterboxMode = "solid"
)

// DisplayConfig is the resolved configuration handed to the core by the
// settings collaborator. The core reads it, never writes it.
type DisplayConfig struct {
	Sources        []Source // enabled provider set, non-empty
	AllowNSFW      bool
	Fit            FitMode
	Letterbox      LetterboxMode
	CustomColor    color.NRGBA // used when Letterbox == LetterboxCustom
	AutoRefreshSec int         // 0 = disabled
}
