package ui

import "time"

// aboutSplashTime is how long the about splash stays on screen.
const aboutSplashTime = 3 * time.Second

// crossfadeDuration is the fade from placeholder to full image.
const crossfadeDuration = 400 * time.Millisecond

// updateMenuItemPrefix is the copy for the new update available tray menu item
const updateMenuItemPrefix = "Update to "

// Settings window dimensions.
const (
	settingsWindowWidth  = 720
	settingsWindowHeight = 760
)

// defaultWindowWidth and defaultWindowHeight size the clock window on
// first launch.
const (
	defaultWindowWidth  = 1280
	defaultWindowHeight = 720
)
