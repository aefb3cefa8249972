package background

import (
	"sync"
	"time"

	"github.com/sakurafall/tokei/util/log"
)

// AutoRefresher drives periodic background refreshes. The ticker is
// torn down and recreated whenever the interval setting changes, and
// always stopped on Stop so no stale callback fires into a torn-down
// view.
type AutoRefresher struct {
	refresh func()

	mu       sync.Mutex
	interval time.Duration
	stop     chan struct{}
}

// NewAutoRefresher creates a scheduler that invokes refresh on each tick.
func NewAutoRefresher(refresh func()) *AutoRefresher {
	return &AutoRefresher{refresh: refresh}
}

// SetInterval reconfigures the refresh period in seconds. Zero or
// negative disables auto-refresh. The previous ticker, if any, is
// cleared before a new one starts.
func (a *AutoRefresher) SetInterval(seconds int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
	if seconds <= 0 {
		a.interval = 0
		return
	}

	a.interval = time.Duration(seconds) * time.Second
	a.stop = make(chan struct{})
	go a.loop(a.interval, a.stop)
	log.Debugf("Auto refresh every %ds", seconds)
}

// Interval returns the currently configured period (0 = disabled).
func (a *AutoRefresher) Interval() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interval
}

// Stop clears the ticker. Safe to call repeatedly.
func (a *AutoRefresher) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopLocked()
	a.interval = 0
}

func (a *AutoRefresher) stopLocked() {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
}

func (a *AutoRefresher) loop(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.refresh()
		case <-stop:
			return
		}
	}
}
