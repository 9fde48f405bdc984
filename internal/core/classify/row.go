// Package classify turns decoded archive records into normalized rows
package classify

// Category is the kind of record a Row describes
type Category string

// Categories, exactly one per row
const (
	CategoryTweet   Category = "tweet"
	CategoryReply   Category = "reply"
	CategoryRetweet Category = "retweet"
	CategoryQuote   Category = "quote"
	CategoryLike    Category = "like"
)

// Categories lists every category in a stable order
func Categories() []Category {
	return []Category{CategoryTweet, CategoryReply, CategoryRetweet, CategoryQuote, CategoryLike}
}

// Row is one normalized record. ReferencedURL is set only for replies,
// quotes and likes. Likes carry no Timestamp or OwnURL.
type Row struct {
	Timestamp     string   `json:"timestamp"`
	OwnURL        string   `json:"own_url"`
	Category      Category `json:"category"`
	ReferencedURL string   `json:"referenced_url"`
}

// Fields returns the row's four fields in order
func (r Row) Fields() [4]string {
	return [4]string{r.Timestamp, r.OwnURL, string(r.Category), r.ReferencedURL}
}

// Less orders rows lexicographically by their fields
func (r Row) Less(o Row) bool {
	a, b := r.Fields(), o.Fields()
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
