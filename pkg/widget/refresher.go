package widget

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sakurafall/tokei/util/log"
)

// Snapshot holds the latest text for every widget. Fields for widgets
// whose refresh failed are zero, rendering as empty overlay lines.
type Snapshot struct {
	Weather Weather
	Quote   Quote
}

// Refresher fetches all widgets concurrently and hands complete
// snapshots to the display layer.
type Refresher struct {
	weather *WeatherClient
	quote   *QuoteClient

	// Lat and Lon locate the weather lookup. Zero values disable it.
	Lat, Lon float64
}

// NewRefresher creates a combined widget refresher.
func NewRefresher(weather *WeatherClient, quote *QuoteClient) *Refresher {
	return &Refresher{weather: weather, quote: quote}
}

// Refresh fetches every widget in parallel. Individual failures are
// logged and leave that widget's field zero; Refresh itself never
// returns an error so a down API cannot block the clock.
func (r *Refresher) Refresh(ctx context.Context) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	if r.weather != nil && (r.Lat != 0 || r.Lon != 0) {
		g.Go(func() error {
			w, err := r.weather.Current(ctx, r.Lat, r.Lon)
			if err != nil {
				log.Debugf("Weather refresh skipped: %v", err)
				return nil
			}
			snap.Weather = w
			return nil
		})
	}
	if r.quote != nil {
		g.Go(func() error {
			q, err := r.quote.Random(ctx)
			if err != nil {
				log.Debugf("Quote refresh skipped: %v", err)
				return nil
			}
			snap.Quote = q
			return nil
		})
	}

	_ = g.Wait() // goroutines never return errors
	return snap
}
