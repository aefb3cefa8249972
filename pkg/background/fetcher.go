package background

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sakurafall/tokei/pkg/provider"
	"github.com/sakurafall/tokei/util/log"
	"golang.org/x/time/rate"
)

// Fetcher chooses a provider, fetches one image record, and exhausts a
// fallback ladder so the caller always gets a displayable record. It
// never returns an error; failures along the way go to the log and the
// optional OnError side channel.
type Fetcher struct {
	providers     map[Source]provider.ImageProvider
	defaultSource Source
	limiter       *rate.Limiter

	// OnError receives every provider failure for telemetry. It is never
	// the user-facing error path; the ladder guarantees a record.
	OnError func(error)

	// pick selects one source from a non-empty set. Overridable in tests.
	pick func(sources []Source) Source
}

// NewFetcher instantiates every registered provider with the given
// client and proxy and returns a ready Fetcher.
func NewFetcher(client *http.Client, proxy *Proxy) *Fetcher {
	providers := make(map[Source]provider.ImageProvider, len(providerRegistry))
	for tag, factory := range providerRegistry {
		providers[tag] = factory(client, proxy)
	}
	return &Fetcher{
		providers:     providers,
		defaultSource: DefaultSource,
		limiter:       rate.NewLimiter(rate.Every(providerRateInterval), providerRateBurst),
		pick: func(sources []Source) Source {
			return sources[rand.IntN(len(sources))]
		},
	}
}

// GetRandomImage resolves cfg to a concrete provider, fetches, and
// falls back first to the default provider and then to a synthesized
// placeholder record. It always returns a record with a non-empty URL.
func (f *Fetcher) GetRandomImage(ctx context.Context, cfg FetchConfig) provider.ImageRecord {
	reqID := uuid.NewString()[:8]

	src := cfg.Source
	if src == SourceRandom {
		enabled := f.realSources(cfg.Enabled)
		if len(enabled) == 0 {
			log.Printf("[%s] No enabled providers for random draw, using fallback", reqID)
			return f.fallbackRecord()
		}
		src = f.pick(enabled)
		log.Debugf("[%s] Random draw selected %s", reqID, src)
	}
	if src == SourceFallback {
		return f.fallbackRecord()
	}

	if err := f.limiter.Wait(ctx); err != nil {
		f.report(reqID, fmt.Errorf("rate limiter wait: %w", err))
		return f.fallbackRecord()
	}

	p, ok := f.providers[src]
	if !ok {
		f.report(reqID, fmt.Errorf("unknown provider source %q", src))
		return f.fallbackRecord()
	}

	rec, err := p.Fetch(ctx, cfg.AllowNSFW)
	if err == nil {
		return rec
	}
	f.report(reqID, err)

	// One retry against the default provider, unless it was already the
	// one that failed.
	if src != f.defaultSource {
		if dp, ok := f.providers[f.defaultSource]; ok {
			if werr := f.limiter.Wait(ctx); werr != nil {
				f.report(reqID, fmt.Errorf("rate limiter wait: %w", werr))
				return f.fallbackRecord()
			}
			rec, derr := dp.Fetch(ctx, cfg.AllowNSFW)
			if derr == nil {
				return rec
			}
			f.report(reqID, derr)
		}
	}

	return f.fallbackRecord()
}

// realSources filters the requested set down to registered non-meta
// providers. An empty request means every registered provider.
func (f *Fetcher) realSources(requested []Source) []Source {
	if len(requested) == 0 {
		out := make([]Source, 0, len(f.providers))
		for tag := range f.providers {
			out = append(out, tag)
		}
		return out
	}
	out := make([]Source, 0, len(requested))
	for _, s := range requested {
		if s.IsMeta() {
			continue
		}
		if _, ok := f.providers[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// fallbackRecord synthesizes a record from a generic image service.
// This path has no network dependency and must never fail.
func (f *Fetcher) fallbackRecord() provider.ImageRecord {
	return provider.ImageRecord{
		URL: fmt.Sprintf("%s?t=%d", fallbackImageURL, time.Now().UnixNano()),
	}
}

func (f *Fetcher) report(reqID string, err error) {
	log.Printf("[%s] Image fetch: %v", reqID, err)
	if f.OnError != nil {
		f.OnError(err)
	}
}
