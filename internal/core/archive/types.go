package archive

import (
	"encoding/json"
	"strings"
)

// Member names one of the data files inside an archive and the length of the
// loader assignment that precedes its JSON payload
type Member struct {
	Name      string
	PrefixLen int
}

// Well-known members. The likes offset stops one byte short of the JSON
// ("window.YTD.like.part0 =" without the trailing space); the decoder skips
// the leftover whitespace.
var (
	AccountMember = Member{Name: "data/account.js", PrefixLen: 27}
	LikesMember   = Member{Name: "data/like.js", PrefixLen: 23}
	TweetsMember  = Member{Name: "data/tweets.js", PrefixLen: 26}
)

// ID is a record identifier. Archives store ids as strings but some older
// exports carry bare numbers, so both decode.
type ID string

// UnmarshalJSON accepts a JSON string, number or null
func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Tweet is one record of data/tweets.js. Only fields the classifier reads are modeled
type Tweet struct {
	ID                   ID       `json:"id"`
	IDStr                string   `json:"id_str"`
	CreatedAt            string   `json:"created_at"`
	FullText             *string  `json:"full_text"`
	InReplyToStatusIDStr *string  `json:"in_reply_to_status_id_str,omitempty"`
	InReplyToScreenName  *string  `json:"in_reply_to_screen_name,omitempty"`
	Entities             Entities `json:"entities"`
}

// Entities holds the entity collections of a tweet
type Entities struct {
	URLs []URLEntity `json:"urls"`
}

// URLEntity maps a shortened in-text URL to its expanded destination
type URLEntity struct {
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url"`
	DisplayURL  string `json:"display_url,omitempty"`
}

// Like is one record of data/like.js
type Like struct {
	TweetID     ID     `json:"tweetId"`
	FullText    string `json:"fullText,omitempty"`
	ExpandedURL string `json:"expandedUrl"`
}

// Account is one record of data/account.js
type Account struct {
	Username           string `json:"username"`
	AccountID          ID     `json:"accountId"`
	AccountDisplayName string `json:"accountDisplayName,omitempty"`
	CreatedAt          string `json:"createdAt,omitempty"`
}

// each member is an array of single-key wrapper objects
type (
	tweetItem struct {
		Tweet Tweet `json:"tweet"`
	}
	likeItem struct {
		Like Like `json:"like"`
	}
	accountItem struct {
		Account Account `json:"account"`
	}
)
