package waifupics

// waifu.pics API URLs. The rating segment is the provider's own NSFW
// query expression.
const (
	WaifuPicsSFWURL  = "https://api.waifu.pics/sfw/waifu"
	WaifuPicsNSFWURL = "https://api.waifu.pics/nsfw/waifu"
)

// maxResponseBytes bounds how much of a response an adapter will read.
const maxResponseBytes = 1 << 20
