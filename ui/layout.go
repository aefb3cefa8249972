package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// splitLayout places two widgets on one row. The first widget takes
// proportion of the available width; with opposed set, the second
// widget is pushed to the right edge instead of packed left.
type splitLayout struct {
	first      fyne.CanvasObject
	second     fyne.CanvasObject
	proportion float32
	opposed    bool
}

func (s *splitLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	f, sec := s.first.MinSize(), s.second.MinSize()
	return fyne.NewSize(f.Width+sec.Width, fyne.Max(f.Height, sec.Height))
}

func (s *splitLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	firstWidth := size.Width * s.proportion
	secondWidth := size.Width - firstWidth

	s.first.Resize(fyne.NewSize(firstWidth, s.first.MinSize().Height))
	s.first.Move(fyne.NewPos(0, 0))

	if s.opposed {
		secondWidth = s.second.MinSize().Width
	}
	s.second.Resize(fyne.NewSize(secondWidth, s.second.MinSize().Height))
	s.second.Move(fyne.NewPos(size.Width-secondWidth, 0))
}

// newSplitRow packs two widgets left to right, giving the first one the
// given share of the row width.
func newSplitRow(first, second fyne.CanvasObject, proportion float32) *fyne.Container {
	return container.New(&splitLayout{first: first, second: second, proportion: proportion}, first, second)
}

// newOpposedRow pins the first widget left and the second right.
func newOpposedRow(first, second fyne.CanvasObject) *fyne.Container {
	return container.New(&splitLayout{first: first, second: second, proportion: 0.5, opposed: true}, first, second)
}
