package ui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"

	tokeiwidget "github.com/sakurafall/tokei/pkg/widget"
)

// clockOverlay draws the time, date, and auxiliary widget lines over
// the background view. Text color follows the sampled backdrop so the
// clock stays legible on any image.
type clockOverlay struct {
	prefs fyne.Preferences

	timeText    *canvas.Text
	dateText    *canvas.Text
	weatherText *canvas.Text
	quoteText   *canvas.Text
	box         *fyne.Container

	stop chan struct{}
}

func newClockOverlay(prefs fyne.Preferences) *clockOverlay {
	white := color.NRGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}

	timeText := canvas.NewText("", white)
	timeText.TextSize = 96
	timeText.TextStyle = fyne.TextStyle{Bold: true}
	timeText.Alignment = fyne.TextAlignCenter

	dateText := canvas.NewText("", white)
	dateText.TextSize = 28
	dateText.Alignment = fyne.TextAlignCenter

	weatherText := canvas.NewText("", white)
	weatherText.TextSize = 18
	weatherText.Alignment = fyne.TextAlignCenter

	quoteText := canvas.NewText("", white)
	quoteText.TextSize = 16
	quoteText.TextStyle = fyne.TextStyle{Italic: true}
	quoteText.Alignment = fyne.TextAlignCenter

	column := container.NewVBox(
		layout.NewSpacer(),
		timeText,
		dateText,
		weatherText,
		layout.NewSpacer(),
		quoteText,
	)

	return &clockOverlay{
		prefs:       prefs,
		timeText:    timeText,
		dateText:    dateText,
		weatherText: weatherText,
		quoteText:   quoteText,
		box:         column,
	}
}

// CanvasObject returns the overlay's root object for window composition.
func (c *clockOverlay) CanvasObject() fyne.CanvasObject {
	return c.box
}

// Start begins the per-second tick loop. Idempotent-unsafe; call once.
func (c *clockOverlay) Start() {
	c.stop = make(chan struct{})
	fyne.Do(c.update)

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fyne.Do(c.update)
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop halts the tick loop.
func (c *clockOverlay) Stop() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

// SetForeground recolors all overlay text. Called when a new background
// lands with a different edge tone.
func (c *clockOverlay) SetForeground(fg color.NRGBA) {
	fyne.Do(func() {
		for _, t := range []*canvas.Text{c.timeText, c.dateText, c.weatherText, c.quoteText} {
			t.Color = fg
			t.Refresh()
		}
	})
}

// SetWidgets updates the auxiliary widget lines from the latest snapshot.
func (c *clockOverlay) SetWidgets(snap tokeiwidget.Snapshot) {
	fyne.Do(func() {
		c.weatherText.Text = snap.Weather.String()
		c.weatherText.Refresh()
		c.quoteText.Text = snap.Quote.String()
		c.quoteText.Refresh()
	})
}

func (c *clockOverlay) update() {
	now := time.Now()

	use24 := c.prefs.BoolWithFallback(Use24HourPrefKey, true)
	seconds := c.prefs.BoolWithFallback(ShowSecondsPrefKey, false)

	timeLayout := "15:04"
	if seconds {
		timeLayout = "15:04:05"
	}
	if !use24 {
		timeLayout = "3:04 PM"
		if seconds {
			timeLayout = "3:04:05 PM"
		}
	}

	c.timeText.Text = now.Format(timeLayout)
	c.timeText.Refresh()
	c.dateText.Text = now.Format("Monday, January 2")
	c.dateText.Refresh()
}
