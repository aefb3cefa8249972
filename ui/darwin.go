//go:build darwin

package ui

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Foundation -framework AppKit

#import <AppKit/AppKit.h>

// policyRegular is a normal foreground app with a Dock icon; policyAccessory
// is a background app with no Dock presence.
static const long policyRegular = 0;
static const long policyAccessory = 1;

static void setActivationPolicy(long policy) {
    [NSApp setActivationPolicy:(NSApplicationActivationPolicy)policy];
    // Activating commits the policy change and brings the app forward
    // when transforming to the foreground.
    [NSApp activateIgnoringOtherApps:YES];
}

static void toForeground() { setActivationPolicy(policyRegular); }
static void toBackground() { setActivationPolicy(policyAccessory); }
*/
import "C"

import "fyne.io/fyne/v2"

type darwinOS struct{}

func (d *darwinOS) TransformToForeground() {
	C.toForeground()
}

func (d *darwinOS) TransformToBackground() {
	C.toBackground()
}

func (d *darwinOS) SetupLifecycle(app fyne.App, ta *App) {
	// Start tray-only; opening a window transforms to foreground.
	d.TransformToBackground()
}

func getOS() OS {
	return &darwinOS{}
}
