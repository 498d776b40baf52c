package clients

import "time"

const (
	// Review pages are requested with the bare browser token; some storefronts
	// serve a stripped page to anything that looks like a bot.
	BROWSER_USER_AGENT = "Mozilla/5.0"
	USER_AGENT         = "reviewlens-client/1.0 (+https://github.com/spacesedan/reviewlens)"

	DEFAULT_FETCH_TIMEOUT     = 30 * time.Second
	DEFAULT_INFERENCE_TIMEOUT = 60 * time.Second
)
