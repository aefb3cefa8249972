package ui

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/sakurafall/tokei/pkg/background"
)

// Preference keys. Values live in Fyne's per-app preference store; this
// package is the only writer, the pipeline only ever sees snapshots.
const (
	SourcePrefKey         = "image_source"
	EnabledSourcesPrefKey = "enabled_sources"
	AllowNSFWPrefKey      = "allow_nsfw"
	FitModePrefKey        = "fit_mode"
	LetterboxPrefKey      = "letterbox_mode"
	LetterboxColorPrefKey = "letterbox_color"
	AutoRefreshSecPrefKey = "auto_refresh_sec"
	ProxyBasePrefKey      = "image_proxy_base"

	Use24HourPrefKey   = "clock_24_hour"
	ShowSecondsPrefKey = "clock_show_seconds"

	WeatherLatPrefKey = "weather_lat"
	WeatherLonPrefKey = "weather_lon"
)

// defaultAutoRefreshSec refreshes the background every five minutes.
const defaultAutoRefreshSec = 300

// fetchConfigFromPrefs snapshots the image source settings.
func fetchConfigFromPrefs(p fyne.Preferences) background.FetchConfig {
	enabled := p.StringListWithFallback(EnabledSourcesPrefKey, nil)
	sources := make([]background.Source, 0, len(enabled))
	for _, s := range enabled {
		sources = append(sources, background.Source(s))
	}
	return background.FetchConfig{
		Source:    background.Source(p.StringWithFallback(SourcePrefKey, string(background.DefaultSource))),
		AllowNSFW: p.BoolWithFallback(AllowNSFWPrefKey, false),
		Enabled:   sources,
	}
}

// displayConfigFromPrefs snapshots the fit and letterbox settings.
func displayConfigFromPrefs(p fyne.Preferences) background.DisplayConfig {
	return background.DisplayConfig{
		AllowNSFW:      p.BoolWithFallback(AllowNSFWPrefKey, false),
		Fit:            background.FitMode(p.StringWithFallback(FitModePrefKey, string(background.FitCover))),
		Letterbox:      background.LetterboxMode(p.StringWithFallback(LetterboxPrefKey, string(background.LetterboxBlur))),
		CustomColor:    parseHexColor(p.StringWithFallback(LetterboxColorPrefKey, "")),
		AutoRefreshSec: p.IntWithFallback(AutoRefreshSecPrefKey, defaultAutoRefreshSec),
	}
}

// parseHexColor decodes an "RRGGBB" or "#RRGGBB" hex triplet. Anything
// else comes back as opaque black, the historical letterbox color.
func parseHexColor(s string) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.NRGBA{A: 0xff}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// coordFromPrefs reads a latitude or longitude stored as a string entry.
func coordFromPrefs(p fyne.Preferences, key string) float64 {
	v, err := strconv.ParseFloat(p.StringWithFallback(key, ""), 64)
	if err != nil {
		return 0
	}
	return v
}
