package background

import (
	"context"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/sakurafall/tokei/util"
	"github.com/sakurafall/tokei/util/log"
)

// State is the transition pipeline's position in its refresh sequence.
type State int

// Pipeline states. StateError is orthogonal: reachable from any point.
const (
	StateIdle State = iota
	StateTransitioning
	StateLoading
	StatePlaceholder
	StateSettled
	StateError
)

// Renderer is the view the pipeline drives. One renderer per mounted
// background; the pipeline is its only writer.
type Renderer interface {
	// SetTransitioning toggles the blur/fade styling around a refresh.
	SetTransitioning(active bool)
	// ShowPlaceholder displays the low-res perceptual preview.
	ShowPlaceholder(preview image.Image, tint color.NRGBA)
	// ShowImage swaps in the full image with its attribution record.
	ShowImage(img image.Image, rec provider.ImageRecord)
}

// Transitioner owns the visible background lifecycle for one view:
// fetch, preload, placeholder, crossfade. Refresh is fire-and-forget
// and safely re-entrant; a newer refresh supersedes any in flight, and
// superseded results are discarded via a generation counter.
type Transitioner struct {
	fetcher  *Fetcher
	loader   *Loader
	renderer Renderer

	// Config supplies the fetch parameters, read fresh per refresh.
	Config func() FetchConfig

	// OnImageLoad and OnImageError fire exactly once per refresh that
	// reaches a terminal state; never both, and neither after Close.
	OnImageLoad  func(provider.ImageRecord)
	OnImageError func(error)

	// Pacing. Zero values fall back to the defaults in const.go.
	TransitionDelay time.Duration
	PlaceholderHold time.Duration

	gen    *util.SafeCounter
	closed *util.SafeFlag
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state State
}

// NewTransitioner wires a pipeline to its view.
func NewTransitioner(fetcher *Fetcher, loader *Loader, renderer Renderer, config func() FetchConfig) *Transitioner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Transitioner{
		fetcher:         fetcher,
		loader:          loader,
		renderer:        renderer,
		Config:          config,
		TransitionDelay: DefaultTransitionDelay,
		PlaceholderHold: DefaultPlaceholderHold,
		gen:             util.NewSafeInt(),
		closed:          util.NewSafeBool(),
		ctx:             ctx,
		cancel:          cancel,
	}
}

// State returns the pipeline's current state.
func (t *Transitioner) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Refresh starts a new background transition. Calling it while a
// previous refresh is in flight restarts the sequence; the old
// operation's eventual completion is discarded.
func (t *Transitioner) Refresh() {
	if t.closed.Value() {
		return
	}
	g := t.gen.Increment()
	go t.run(g)
}

// Close cancels in-flight work and pending timers. No callbacks fire
// after Close returns. Safe to call repeatedly.
func (t *Transitioner) Close() {
	if !t.closed.CompareAndSwap(false, true) {
		return
	}
	t.gen.Increment() // orphan any in-flight generation
	t.cancel()
}

// alive reports whether generation g is still the current refresh and
// the pipeline has not been closed.
func (t *Transitioner) alive(g int) bool {
	return !t.closed.Value() && t.gen.Value() == g
}

// setState records s if generation g still owns the pipeline.
func (t *Transitioner) setState(g int, s State) bool {
	if !t.alive(g) {
		return false
	}
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
	return true
}

// pause waits d unless the pipeline is torn down first.
func (t *Transitioner) pause(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-t.ctx.Done():
		return false
	}
}

func (t *Transitioner) run(g int) {
	if !t.setState(g, StateTransitioning) {
		return
	}
	t.renderer.SetTransitioning(true)

	// Let the fade styling begin before anything else changes.
	if !t.pause(t.TransitionDelay) || !t.alive(g) {
		return
	}

	rec := t.fetcher.GetRandomImage(t.ctx, t.Config())
	if !t.setState(g, StateLoading) {
		return
	}

	img, err := t.loader.Load(t.ctx, &rec)
	if err != nil {
		t.fail(g, err)
		return
	}
	if !t.alive(g) {
		return
	}

	// Best-effort preview; a failed placeholder never fails the refresh.
	if ph, perr := MakePlaceholder(img); perr != nil {
		log.Debugf("Skipping placeholder: %v", perr)
	} else if t.setState(g, StatePlaceholder) {
		t.renderer.ShowPlaceholder(ph.Preview, ph.Tint)
		if !t.pause(t.PlaceholderHold) || !t.alive(g) {
			return
		}
	} else {
		return
	}

	if !t.alive(g) {
		return
	}
	t.renderer.ShowImage(img, rec)
	t.renderer.SetTransitioning(false)
	if t.OnImageLoad != nil {
		t.OnImageLoad(rec)
	}
	t.setState(g, StateSettled)
}

// fail reaches the terminal error state: flags cleared, previous image
// left in place, error surfaced once.
func (t *Transitioner) fail(g int, err error) {
	if !t.alive(g) {
		return
	}
	t.renderer.SetTransitioning(false)
	log.Printf("Background refresh failed: %v", err)
	if t.OnImageError != nil {
		t.OnImageError(err)
	}
	t.setState(g, StateError)
}
