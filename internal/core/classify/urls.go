package classify

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	twitterBase = "https://twitter.com"

	// canonicalAccount stands in for any handle when canonical URLs are requested,
	// and for reply targets whose author is gone from the archive
	canonicalAccount = "twitter"

	// webPlaceholder is the path segment like records use instead of the author
	webPlaceholder = "i/web"
)

// trailingShortURL matches a t.co link at the very end of a tweet's text
var trailingShortURL = regexp.MustCompile(`(https://t\.co/\S+)$`)

// StatusURL builds https://twitter.com/<account>/status/<id>
func StatusURL(account, id string) string {
	return twitterBase + "/" + account + "/status/" + id
}

// accountFor picks the handle to put in a URL
func accountFor(handle string, canonical bool) string {
	if canonical {
		return canonicalAccount
	}
	return handle
}

// trailingLink returns the t.co link ending text, if any
func trailingLink(text string) (string, bool) {
	m := trailingShortURL.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// statusTarget splits an expanded twitter.com status URL into its author and
// tweet id. The author is the segment between the domain and /status/; the id
// is the last path segment, query and fragment excluded.
func statusTarget(expanded string) (author, id string, ok bool) {
	if !strings.HasPrefix(expanded, twitterBase) {
		return "", "", false
	}
	rest := strings.TrimPrefix(expanded[len(twitterBase):], "/")
	author, _, found := strings.Cut(rest, "/status/")
	if !found || author == "" {
		return "", "", false
	}

	u, err := url.Parse(expanded)
	if err != nil {
		return "", "", false
	}
	path := strings.TrimSuffix(u.Path, "/")
	id = path[strings.LastIndex(path, "/")+1:]
	if id == "" || id == "status" {
		return "", "", false
	}
	return author, id, true
}
