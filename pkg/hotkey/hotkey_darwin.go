//go:build darwin

package hotkey

import "golang.design/x/hotkey"

// macOS conventions: Cmd where other platforms use Ctrl.
const (
	modPrimary = hotkey.ModCmd
	modAlt     = hotkey.ModOption
)
