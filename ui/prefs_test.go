package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"github.com/sakurafall/tokei/pkg/background"
)

func TestParseHexColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff}, parseHexColor("#1a1a2e"))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x00, B: 0x7f, A: 0xff}, parseHexColor("FF007F"))

	// Anything malformed falls back to opaque black.
	black := color.NRGBA{A: 0xff}
	assert.Equal(t, black, parseHexColor(""))
	assert.Equal(t, black, parseHexColor("#fff"))
	assert.Equal(t, black, parseHexColor("not-a-color"))
}

func TestDisplayConfigFromPrefs_CustomLetterbox(t *testing.T) {
	a := test.NewApp()
	defer test.NewApp()
	p := a.Preferences()

	p.SetString(LetterboxPrefKey, string(background.LetterboxCustom))
	p.SetString(LetterboxColorPrefKey, "#336699")

	cfg := displayConfigFromPrefs(p)
	assert.Equal(t, background.LetterboxCustom, cfg.Letterbox)
	assert.Equal(t, color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}, cfg.CustomColor)
}
