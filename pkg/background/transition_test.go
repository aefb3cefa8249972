package background

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// memoryTransport serves canned image bytes for any URL, keyed by path.
type memoryTransport struct {
	mu        sync.Mutex
	responses map[string][]byte // path -> body; missing path = 404
}

func (m *memoryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	body, ok := m.responses[req.URL.Path]
	m.mu.Unlock()
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}, nil
}

// recordingRenderer captures every pipeline -> view interaction.
type recordingRenderer struct {
	mu            sync.Mutex
	transitioning []bool
	placeholders  int
	shown         []provider.ImageRecord
}

func (r *recordingRenderer) SetTransitioning(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitioning = append(r.transitioning, active)
}

func (r *recordingRenderer) ShowPlaceholder(preview image.Image, tint color.NRGBA) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.placeholders++
}

func (r *recordingRenderer) ShowImage(img image.Image, rec provider.ImageRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shown = append(r.shown, rec)
}

func (r *recordingRenderer) shownRecords() []provider.ImageRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]provider.ImageRecord(nil), r.shown...)
}

// blockingProvider lets tests hold a fetch in flight until released.
type blockingProvider struct {
	rec     provider.ImageRecord
	release chan struct{} // nil = return immediately
	mu      sync.Mutex
	calls   int
}

func (b *blockingProvider) Name() string { return "nekos_best" }

func (b *blockingProvider) Fetch(ctx context.Context, allowNSFW bool) (provider.ImageRecord, error) {
	b.mu.Lock()
	b.calls++
	first := b.calls == 1
	b.mu.Unlock()
	if first && b.release != nil {
		<-b.release
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rec, nil
}

func (b *blockingProvider) setRecord(rec provider.ImageRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rec = rec
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 15), G: uint8(y * 28), B: 0x40, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestTransitioner(t *testing.T, p provider.ImageProvider, transport http.RoundTripper) (*Transitioner, *recordingRenderer) {
	t.Helper()
	client := &http.Client{Transport: transport}
	fetcher := &Fetcher{
		providers:     map[Source]provider.ImageProvider{SourceNekosBest: p},
		defaultSource: SourceNekosBest,
		limiter:       rate.NewLimiter(rate.Inf, 1),
	}
	renderer := &recordingRenderer{}
	tr := NewTransitioner(fetcher, NewLoader(client), renderer, func() FetchConfig {
		return FetchConfig{Source: SourceNekosBest}
	})
	// Pacing delays exist for visuals, not correctness; keep tests fast.
	tr.TransitionDelay = time.Millisecond
	tr.PlaceholderHold = time.Millisecond
	return tr, renderer
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestTransitioner_RefreshSuccess(t *testing.T) {
	data := encodePNG(t)
	transport := &memoryTransport{responses: map[string][]byte{"/img.png": data}}
	p := &blockingProvider{rec: provider.ImageRecord{URL: "https://cdn/img.png", AnimeName: "Foo"}}

	tr, renderer := newTestTransitioner(t, p, transport)

	var loaded []provider.ImageRecord
	var mu sync.Mutex
	tr.OnImageLoad = func(rec provider.ImageRecord) {
		mu.Lock()
		loaded = append(loaded, rec)
		mu.Unlock()
	}
	tr.OnImageError = func(err error) { t.Errorf("unexpected error callback: %v", err) }

	tr.Refresh()
	waitFor(t, func() bool { return tr.State() == StateSettled })

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, loaded, 1)
	assert.Equal(t, "Foo", loaded[0].AnimeName)

	shown := renderer.shownRecords()
	require.Len(t, shown, 1)
	assert.Equal(t, "https://cdn/img.png", shown[0].URL)
	assert.Equal(t, 1, renderer.placeholders)

	// Transitioning toggled on, then off.
	assert.Equal(t, []bool{true, false}, renderer.transitioning)
}

func TestTransitioner_RefreshFailureKeepsPreviousImage(t *testing.T) {
	// No response registered: every load 404s.
	transport := &memoryTransport{responses: map[string][]byte{}}
	p := &blockingProvider{rec: provider.ImageRecord{URL: "https://cdn/missing.png"}}

	tr, renderer := newTestTransitioner(t, p, transport)

	var errs []error
	var mu sync.Mutex
	tr.OnImageError = func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}
	tr.OnImageLoad = func(rec provider.ImageRecord) { t.Errorf("unexpected load callback") }

	tr.Refresh()
	waitFor(t, func() bool { return tr.State() == StateError })

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "missing.png")

	// The view was never asked to swap anything in.
	assert.Empty(t, renderer.shownRecords())
	assert.Equal(t, 0, renderer.placeholders)

	// Flags cleared so the UI is not stuck in a loading state.
	assert.Equal(t, []bool{true, false}, renderer.transitioning)
}

func TestTransitioner_RapidRefreshAppliesOnlySecond(t *testing.T) {
	data := encodePNG(t)
	transport := &memoryTransport{responses: map[string][]byte{
		"/first.png":  data,
		"/second.png": data,
	}}
	release := make(chan struct{})
	p := &blockingProvider{
		rec:     provider.ImageRecord{URL: "https://cdn/first.png"},
		release: release,
	}

	tr, renderer := newTestTransitioner(t, p, transport)

	var loaded []provider.ImageRecord
	var mu sync.Mutex
	tr.OnImageLoad = func(rec provider.ImageRecord) {
		mu.Lock()
		loaded = append(loaded, rec)
		mu.Unlock()
	}

	tr.Refresh() // will block inside the provider
	waitFor(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.calls == 1
	})

	p.setRecord(provider.ImageRecord{URL: "https://cdn/second.png"})
	tr.Refresh() // supersedes the first
	waitFor(t, func() bool { return tr.State() == StateSettled })

	close(release) // let the first fetch complete late
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, loaded, 1)
	assert.Equal(t, "https://cdn/second.png", loaded[0].URL)

	shown := renderer.shownRecords()
	require.Len(t, shown, 1)
	assert.Equal(t, "https://cdn/second.png", shown[0].URL)
}

func TestTransitioner_CloseSuppressesCallbacks(t *testing.T) {
	data := encodePNG(t)
	transport := &memoryTransport{responses: map[string][]byte{"/img.png": data}}
	release := make(chan struct{})
	p := &blockingProvider{
		rec:     provider.ImageRecord{URL: "https://cdn/img.png"},
		release: release,
	}

	tr, _ := newTestTransitioner(t, p, transport)
	tr.OnImageLoad = func(rec provider.ImageRecord) { t.Errorf("callback after Close") }
	tr.OnImageError = func(err error) { t.Errorf("callback after Close") }

	tr.Refresh()
	waitFor(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.calls == 1
	})

	tr.Close()
	close(release)
	time.Sleep(50 * time.Millisecond)

	// Refresh after Close is a no-op.
	tr.Refresh()
	time.Sleep(20 * time.Millisecond)
}
