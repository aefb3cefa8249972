package nekosmoe

// nekos.moe API URLs. The API returns post metadata only; the display
// URL is synthesized from the post ID.
const (
	NekosMoeAPIURL   = "https://nekos.moe/api/v1/random/image?nsfw=%t"
	NekosMoeImageURL = "https://nekos.moe/image/%s"
	NekosMoePostURL  = "https://nekos.moe/post/%s"
)

// maxResponseBytes bounds how much of a response an adapter will read.
const maxResponseBytes = 1 << 20
