// Package projection selects and renders the output line for each row
// according to the requested extraction mode
package projection

import (
	"strings"

	"taupe/internal/core/archive"
	"taupe/internal/core/classify"
	"taupe/internal/core/normalize"
	perr "taupe/internal/platform/errors"
)

// Mode is an extraction mode
type Mode int

// Modes. The zero value is not a valid mode
const (
	ModeUnknown Mode = iota
	ModeAllTweets
	ModeMyTweets
	ModeRetweets
	ModeQuoteTweets
	ModeReplyTweets
	ModeLikes
)

// Default is used when no mode is requested
const Default = ModeAllTweets

var names = map[Mode]string{
	ModeAllTweets:   "all-tweets",
	ModeMyTweets:    "my-tweets",
	ModeRetweets:    "retweets",
	ModeQuoteTweets: "quote-tweets",
	ModeReplyTweets: "reply-tweets",
	ModeLikes:       "likes",
}

// synonyms maps folded spellings to their mode
var synonyms = map[string]Mode{
	"all-tweets": ModeAllTweets, "all": ModeAllTweets, "tweets": ModeAllTweets, "everything": ModeAllTweets,
	"my-tweets": ModeMyTweets, "mine": ModeMyTweets, "my": ModeMyTweets, "own": ModeMyTweets, "own-tweets": ModeMyTweets,
	"retweets": ModeRetweets, "retweet": ModeRetweets, "rt": ModeRetweets, "rts": ModeRetweets,
	"quote-tweets": ModeQuoteTweets, "quotes": ModeQuoteTweets, "quote": ModeQuoteTweets, "quoted": ModeQuoteTweets, "qt": ModeQuoteTweets,
	"reply-tweets": ModeReplyTweets, "replies": ModeReplyTweets, "reply": ModeReplyTweets,
	"likes": ModeLikes, "like": ModeLikes, "liked": ModeLikes, "favorites": ModeLikes, "favourites": ModeLikes, "faves": ModeLikes,
}

// Modes lists the canonical modes in display order
func Modes() []Mode {
	return []Mode{ModeAllTweets, ModeMyTweets, ModeRetweets, ModeQuoteTweets, ModeReplyTweets, ModeLikes}
}

// Names lists the canonical mode names in display order
func Names() []string {
	out := make([]string, 0, len(names))
	for _, m := range Modes() {
		out = append(out, m.String())
	}
	return out
}

// String returns the canonical mode name
func (m Mode) String() string {
	if n, ok := names[m]; ok {
		return n
	}
	return "unknown"
}

// Source reports which archive member feeds the mode
func (m Mode) Source() archive.Member {
	if m == ModeLikes {
		return archive.LikesMember
	}
	return archive.TweetsMember
}

// MarshalText renders the canonical name
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText accepts any synonym
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode resolves a mode name or synonym, case-insensitively
func ParseMode(s string) (Mode, error) {
	if m, ok := synonyms[normalize.Slug(s)]; ok {
		return m, nil
	}
	return ModeUnknown, perr.WithField(
		perr.UnsupportedModef("unsupported extraction mode %q (want one of %s)", s, strings.Join(Names(), ", ")),
		"mode",
	)
}

// Valid reports whether s names a mode
func Valid(s string) bool {
	_, ok := synonyms[normalize.Slug(s)]
	return ok
}

// Project renders row for mode. ok is false when the row is dropped.
func Project(m Mode, row classify.Row) (line string, ok bool) {
	switch m {
	case ModeAllTweets:
		f := row.Fields()
		return strings.Join(f[:], ","), true
	case ModeMyTweets:
		return row.OwnURL, true
	case ModeRetweets:
		if row.Category == classify.CategoryRetweet {
			return row.OwnURL, true
		}
	case ModeQuoteTweets:
		if row.Category == classify.CategoryQuote {
			return row.ReferencedURL, true
		}
	case ModeReplyTweets:
		if row.Category == classify.CategoryReply {
			return row.ReferencedURL, true
		}
	case ModeLikes:
		if row.Category == classify.CategoryLike {
			return row.ReferencedURL, true
		}
	}
	return "", false
}

// ProjectAll renders rows in order, skipping dropped ones
func ProjectAll(m Mode, rows []classify.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if line, ok := Project(m, r); ok {
			out = append(out, line)
		}
	}
	return out
}
