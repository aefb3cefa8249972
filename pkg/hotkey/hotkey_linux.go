//go:build linux

package hotkey

import "golang.design/x/hotkey"

// X11 has no ModAlt constant; Mod1 is bound to Alt on stock keymaps.
const (
	modPrimary = hotkey.ModCtrl
	modAlt     = hotkey.Mod1
)
