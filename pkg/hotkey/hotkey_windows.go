//go:build windows

package hotkey

import "golang.design/x/hotkey"

const (
	modPrimary = hotkey.ModCtrl
	modAlt     = hotkey.ModAlt
)
