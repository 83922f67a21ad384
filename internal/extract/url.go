package extract

import "mvdan.cc/xurls/v2"

// urlRegex only matches links with a scheme, so bare words never count
var urlRegex = xurls.Strict()

// FirstURL returns the first link found in text
func FirstURL(text string) (string, bool) {
	url := urlRegex.FindString(text)
	return url, url != ""
}
