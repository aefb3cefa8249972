// Package hotkey registers the app's global keyboard shortcuts.
package hotkey

import (
	"time"

	"golang.design/x/hotkey"

	"github.com/sakurafall/tokei/util/log"
)

// Actions are the callbacks wired to the global shortcuts. Nil fields
// leave that shortcut unregistered.
type Actions struct {
	Refresh func() // primary+Alt+R: fetch a new background now
	Save    func() // primary+Alt+S: save the current background to disk
}

// StartListeners registers the global hotkeys and starts listening for
// them in background goroutines. Registration failures are logged and
// skipped so a hotkey conflict never takes the app down.
func StartListeners(a Actions) {
	if a.Refresh != nil {
		hk := hotkey.New([]hotkey.Modifier{modPrimary, modAlt}, hotkey.KeyR)
		registerAndListen(hk, "Refresh Background", a.Refresh)
	}
	if a.Save != nil {
		hk := hotkey.New([]hotkey.Modifier{modPrimary, modAlt}, hotkey.KeyS)
		registerAndListen(hk, "Save Background", a.Save)
	}
}

func registerAndListen(hk *hotkey.Hotkey, name string, action func()) {
	if err := hk.Register(); err != nil {
		log.Printf("Failed to register hotkey %s: %v", name, err)
		return
	}
	log.Printf("Registered hotkey: %s", name)

	go func() {
		for range hk.Keydown() {
			log.Debugf("Hotkey pressed: %s", name)
			action()
			// Debounce held keys.
			time.Sleep(200 * time.Millisecond)
		}
	}()
}
