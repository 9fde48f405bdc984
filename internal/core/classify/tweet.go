package classify

import (
	"strings"

	"taupe/internal/core/archive"
	perr "taupe/internal/platform/errors"
	"taupe/internal/platform/logger"
	pstrings "taupe/internal/platform/strings"
	ptime "taupe/internal/platform/time"
)

const retweetPrefix = "RT @"

// Tweet classifies one tweet record owned by handle. The checks run in
// priority order and the first match wins: reply, retweet, quote, tweet.
func Tweet(rec archive.Tweet, handle string, canonical bool) (Row, error) {
	if rec.IDStr == "" {
		return Row{}, perr.MissingField("id_str", "tweet %s has no id_str", rec.ID)
	}
	if rec.FullText == nil {
		return Row{}, perr.MissingField("full_text", "tweet %s has no full_text", rec.IDStr)
	}
	if rec.CreatedAt == "" {
		return Row{}, perr.MissingField("created_at", "tweet %s has no created_at", rec.IDStr)
	}
	ts, err := ptime.ParseArchive(rec.CreatedAt)
	if err != nil {
		return Row{}, perr.WithField(
			perr.Wrapf(err, perr.ErrorCodeMalformedArchive, "tweet %s has an unreadable created_at", rec.IDStr),
			"created_at",
		)
	}

	row := Row{
		Timestamp: ptime.ISO(ts),
		OwnURL:    StatusURL(accountFor(handle, canonical), rec.IDStr),
		Category:  CategoryTweet,
	}
	text := *rec.FullText

	if replyTo := pstrings.Deref(rec.InReplyToStatusIDStr); replyTo != "" {
		row.Category = CategoryReply
		row.ReferencedURL = StatusURL(replyAuthor(rec, canonical), replyTo)
		return row, nil
	}

	if strings.HasPrefix(text, retweetPrefix) {
		// the export carries nothing that identifies the retweeted status
		row.Category = CategoryRetweet
		return row, nil
	}

	if ref, ok := quoteTarget(rec, text, canonical); ok {
		row.Category = CategoryQuote
		row.ReferencedURL = ref
	}
	return row, nil
}

// replyAuthor falls back to the generic account when the archive dropped the
// screen name, which happens when the replied-to account was deleted
func replyAuthor(rec archive.Tweet, canonical bool) string {
	if canonical {
		return canonicalAccount
	}
	if name := pstrings.Deref(rec.InReplyToScreenName); name != "" {
		return name
	}
	logger.Named("classify").Debug().
		Str("tweet_id", string(rec.ID)).
		Msg("reply target has no screen name; author was probably deleted")
	return canonicalAccount
}

// quoteTarget resolves a trailing t.co link through the tweet's URL entities.
// Only the first entity with a matching short URL is considered.
func quoteTarget(rec archive.Tweet, text string, canonical bool) (string, bool) {
	link, ok := trailingLink(text)
	if !ok {
		return "", false
	}
	for _, ent := range rec.Entities.URLs {
		if ent.URL != link {
			continue
		}
		author, id, ok := statusTarget(ent.ExpandedURL)
		if !ok {
			return "", false
		}
		return StatusURL(accountFor(author, canonical), id), true
	}
	return "", false
}
