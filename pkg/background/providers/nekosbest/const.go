package nekosbest

// nekos.best API URLs
const (
	// NekosBestAPIURL returns a single random neko image with full attribution.
	NekosBestAPIURL = "https://nekos.best/api/v2/neko"
)

// maxResponseBytes bounds how much of a response an adapter will read.
const maxResponseBytes = 1 << 20
