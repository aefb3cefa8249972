package waifuim

// waifu.im API URLs. NSFW filtering is expressed through the is_nsfw
// query parameter.
const (
	WaifuImAPIURL = "https://api.waifu.im/search?included_tags=waifu&is_nsfw=%t"
)

// maxResponseBytes bounds how much of a response an adapter will read.
const maxResponseBytes = 1 << 20
