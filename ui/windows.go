//go:build windows

package ui

import "fyne.io/fyne/v2"

// windowsOS implements the OS interface for Windows. There is no Dock
// equivalent to manage, so the transforms are no-ops.
type windowsOS struct{}

func (w *windowsOS) TransformToForeground() {}

func (w *windowsOS) TransformToBackground() {}

func (w *windowsOS) SetupLifecycle(app fyne.App, ta *App) {}

func getOS() OS {
	return &windowsOS{}
}
