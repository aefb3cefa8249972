package nekosia

// nekosia.cat API URLs
const (
	// NekosiaAPIURL returns one random SFW catgirl image; the payload
	// nests the image URL under image.original.url.
	NekosiaAPIURL = "https://api.nekosia.cat/api/v1/images/catgirl"
)

// maxResponseBytes bounds how much of a response an adapter will read.
const maxResponseBytes = 1 << 20
