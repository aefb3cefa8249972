package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/disintegration/imaging"

	"github.com/sakurafall/tokei/util/log"
)

// SaveCurrentImage prompts for a destination and writes the currently
// displayed background to disk. The encoder follows the chosen file
// extension, defaulting to PNG.
func (ta *App) SaveCurrentImage() {
	ta.mu.Lock()
	img := ta.currentImg
	ta.mu.Unlock()

	if img == nil {
		fyne.Do(func() {
			dialog.ShowInformation("Nothing to save", "No background has loaded yet.", ta.win)
		})
		return
	}

	fyne.Do(func() {
		fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, ta.win)
				return
			}
			if writer == nil {
				return // cancelled
			}
			defer writer.Close()

			format, ferr := imaging.FormatFromFilename(writer.URI().Name())
			if ferr != nil {
				format = imaging.PNG
			}
			if err := imaging.Encode(writer, img, format); err != nil {
				log.Printf("Failed to save image: %v", err)
				dialog.ShowError(err, ta.win)
				return
			}
			log.Printf("Saved background to %s", writer.URI().String())
		}, ta.win)
		fd.SetFileName(fmt.Sprintf("tokei-%s.png", time.Now().Format("20060102-150405")))
		fd.Show()
	})
}
