package background

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

// fakeProvider returns a canned record or error and counts calls.
type fakeProvider struct {
	name  string
	rec   provider.ImageRecord
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Fetch(ctx context.Context, allowNSFW bool) (provider.ImageRecord, error) {
	f.calls++
	if f.err != nil {
		return provider.ImageRecord{}, f.err
	}
	return f.rec, nil
}

func newTestFetcher(providers map[Source]provider.ImageProvider) *Fetcher {
	f := &Fetcher{
		providers:     providers,
		defaultSource: DefaultSource,
		limiter:       rate.NewLimiter(rate.Inf, 1),
	}
	f.pick = func(sources []Source) Source { return sources[0] }
	return f
}

func TestFetcher_RandomDrawsOnlyFromEnabledSet(t *testing.T) {
	a := &fakeProvider{name: "nekos_best", rec: provider.ImageRecord{URL: "https://a/img"}}
	b := &fakeProvider{name: "waifu_im", rec: provider.ImageRecord{URL: "https://b/img"}}
	disabled := &fakeProvider{name: "nekos_moe", rec: provider.ImageRecord{URL: "https://c/img"}}

	f := NewFetcher(nil, nil)
	f.providers = map[Source]provider.ImageProvider{
		SourceNekosBest: a,
		SourceWaifuIm:   b,
		SourceNekosMoe:  disabled,
	}
	f.limiter = rate.NewLimiter(rate.Inf, 1)

	cfg := FetchConfig{Source: SourceRandom, Enabled: []Source{SourceNekosBest, SourceWaifuIm}}
	for i := 0; i < 100; i++ {
		rec := f.GetRandomImage(context.Background(), cfg)
		assert.Contains(t, []string{"https://a/img", "https://b/img"}, rec.URL)
	}
	assert.Zero(t, disabled.calls)
	assert.Equal(t, 100, a.calls+b.calls)
}

func TestFetcher_MetaSourcesExcludedFromDraw(t *testing.T) {
	a := &fakeProvider{name: "nekos_best", rec: provider.ImageRecord{URL: "https://a/img"}}
	f := newTestFetcher(map[Source]provider.ImageProvider{SourceNekosBest: a})

	cfg := FetchConfig{Source: SourceRandom, Enabled: []Source{SourceRandom, SourceFallback, SourceNekosBest}}
	rec := f.GetRandomImage(context.Background(), cfg)
	assert.Equal(t, "https://a/img", rec.URL)
}

func TestFetcher_AlwaysResolves_AllProvidersFailing(t *testing.T) {
	failing := &provider.ProviderError{Provider: "waifu_pics", RequestURL: "https://api.waifu.pics/sfw/waifu", Err: errors.New("down")}
	wp := &fakeProvider{name: "waifu_pics", err: failing}
	def := &fakeProvider{name: "nekos_best", err: &provider.ProviderError{Provider: "nekos_best", Err: errors.New("also down")}}

	var reported []error
	f := newTestFetcher(map[Source]provider.ImageProvider{
		SourceWaifuPics: wp,
		SourceNekosBest: def,
	})
	f.OnError = func(err error) { reported = append(reported, err) }

	rec := f.GetRandomImage(context.Background(), FetchConfig{Source: SourceWaifuPics})

	assert.NotEmpty(t, rec.URL)
	assert.True(t, strings.HasPrefix(rec.URL, fallbackImageURL))
	assert.Len(t, reported, 2) // the chosen provider, then the default retry
}

func TestFetcher_FailedProviderRetriesDefaultOnce(t *testing.T) {
	wp := &fakeProvider{name: "waifu_pics", err: &provider.ProviderError{Provider: "waifu_pics", Err: errors.New("timeout")}}
	def := &fakeProvider{name: "nekos_best", rec: provider.ImageRecord{URL: "https://nekos.best/img.png", AnimeName: "Foo"}}

	var reported []error
	f := newTestFetcher(map[Source]provider.ImageProvider{
		SourceWaifuPics: wp,
		SourceNekosBest: def,
	})
	f.OnError = func(err error) { reported = append(reported, err) }

	rec := f.GetRandomImage(context.Background(), FetchConfig{Source: SourceWaifuPics, AllowNSFW: true})

	assert.Equal(t, "https://nekos.best/img.png", rec.URL)
	assert.Equal(t, 1, wp.calls)
	assert.Equal(t, 1, def.calls)

	// The waifu_pics failure goes to telemetry, not to the caller.
	assert.Len(t, reported, 1)
	var perr *provider.ProviderError
	assert.True(t, errors.As(reported[0], &perr))
	assert.Equal(t, "waifu_pics", perr.Provider)
}

func TestFetcher_DefaultRetryWaitsOnRateLimiter(t *testing.T) {
	wp := &fakeProvider{name: "waifu_pics", err: &provider.ProviderError{Provider: "waifu_pics", Err: errors.New("timeout")}}
	def := &fakeProvider{name: "nekos_best", rec: provider.ImageRecord{URL: "https://nekos.best/img.png"}}

	f := newTestFetcher(map[Source]provider.ImageProvider{
		SourceWaifuPics: wp,
		SourceNekosBest: def,
	})
	// A single token: the primary attempt spends it, so the retry has to
	// wait out the limiter and the expiring context sends it to fallback.
	f.limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	rec := f.GetRandomImage(ctx, FetchConfig{Source: SourceWaifuPics})

	assert.Equal(t, 1, wp.calls)
	assert.Zero(t, def.calls)
	assert.True(t, strings.HasPrefix(rec.URL, fallbackImageURL))
}

func TestFetcher_DefaultFailureGoesStraightToFallback(t *testing.T) {
	def := &fakeProvider{name: "nekos_best", err: &provider.ProviderError{Provider: "nekos_best", Err: errors.New("down")}}
	f := newTestFetcher(map[Source]provider.ImageProvider{SourceNekosBest: def})

	rec := f.GetRandomImage(context.Background(), FetchConfig{Source: SourceNekosBest})

	assert.Equal(t, 1, def.calls) // no self-retry
	assert.True(t, strings.HasPrefix(rec.URL, fallbackImageURL))
}

func TestFetcher_FallbackSourceSkipsNetwork(t *testing.T) {
	def := &fakeProvider{name: "nekos_best", rec: provider.ImageRecord{URL: "https://a/img"}}
	f := newTestFetcher(map[Source]provider.ImageProvider{SourceNekosBest: def})

	rec := f.GetRandomImage(context.Background(), FetchConfig{Source: SourceFallback})

	assert.Zero(t, def.calls)
	assert.True(t, strings.HasPrefix(rec.URL, fallbackImageURL))
	assert.Contains(t, rec.URL, "?t=")
}

func TestFetcher_UnknownSourceFallsBack(t *testing.T) {
	f := newTestFetcher(map[Source]provider.ImageProvider{})
	rec := f.GetRandomImage(context.Background(), FetchConfig{Source: Source("no_such")})
	assert.True(t, strings.HasPrefix(rec.URL, fallbackImageURL))
}
