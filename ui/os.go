package ui

import "fyne.io/fyne/v2"

// OS abstracts the small set of platform behaviors the shell needs.
type OS interface {
	// TransformToForeground makes the app a regular foreground app.
	TransformToForeground()
	// TransformToBackground makes the app a background/tray-only app.
	TransformToBackground()
	// SetupLifecycle installs any platform-specific lifecycle hooks.
	SetupLifecycle(app fyne.App, ta *App)
}
