package background

import "time"

// Fallback image service used when every provider fails. The timestamp
// query parameter busts caches so repeated fallbacks still vary.
const fallbackImageURL = "https://picsum.photos/1920/1080"

// Transition pacing. The initial delay lets the fade styling begin
// before state changes; the placeholder hold avoids a jarring pop from
// blur straight to sharp detail. Both are UX pacing, not correctness
// requirements.
const (
	DefaultTransitionDelay = 300 * time.Millisecond
	DefaultPlaceholderHold = 500 * time.Millisecond
)

// Provider rate limiting. These are free unauthenticated APIs; one
// request every couple of seconds with a small burst is plenty for a
// wallpaper clock.
const (
	providerRateInterval = 2 * time.Second
	providerRateBurst    = 3
)

// Placeholder generation bounds.
const (
	placeholderMaxDim = 100 // max dimension for the downscaled hash input
	blurhashXComp     = 4
	blurhashYComp     = 3
)

// Edge sampling.
const defaultEdgeSamples = 16

// maxImageBytes bounds how much image data the preloader will read.
const maxImageBytes = 64 << 20
