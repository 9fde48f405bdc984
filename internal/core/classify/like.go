package classify

import (
	"strings"

	"taupe/internal/core/archive"
	perr "taupe/internal/platform/errors"
)

// Like converts one like record. The archive writes some liked URLs with an
// i/web placeholder in place of the author; it is replaced with the owner's
// handle (or the canonical account), which approximates attribution only.
func Like(rec archive.Like, handle string, canonical bool) (Row, error) {
	if rec.ExpandedURL == "" {
		return Row{}, perr.MissingField("expandedUrl", "like %s has no expandedUrl", rec.TweetID)
	}
	return Row{
		Category:      CategoryLike,
		ReferencedURL: strings.ReplaceAll(rec.ExpandedURL, webPlaceholder, accountFor(handle, canonical)),
	}, nil
}
