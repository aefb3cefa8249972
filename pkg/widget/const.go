package widget

import "time"

const (
	// OpenWeatherAPIURL is the OpenWeatherMap current-weather endpoint.
	OpenWeatherAPIURL = "https://api.openweathermap.org/data/2.5/weather"

	// HitokotoAPIURL serves a random short quote.
	HitokotoAPIURL = "https://v1.hitokoto.cn"

	// maxResponseBytes caps how much of an API response body is read.
	maxResponseBytes = 1 << 20 // 1 MiB

	// refreshTimeout bounds a combined widget refresh so a stalled API
	// never holds up the display.
	refreshTimeout = 10 * time.Second
)
